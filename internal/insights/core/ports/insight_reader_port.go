package ports

import (
	"context"

	"insights-display-service/internal/insights/core/domain"
)

type InsightFilter struct {
	EventName string
	From      int64
	To        int64
	Channel   *string // optional

	BreakdownType domain.BreakdownType
	Breakdown     string // property key; interval when BreakdownType = time
	HistogramBins int    // > 0 only for histogram breakdowns

	Math         domain.Math
	MathProperty string // required for MathSum
}

type InsightReaderPort interface {
	QueryInsight(ctx context.Context, f InsightFilter) (*domain.InsightResult, error)
}
