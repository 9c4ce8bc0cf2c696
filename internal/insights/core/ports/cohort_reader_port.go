package ports

import (
	"context"

	"insights-display-service/internal/insights/core/domain"
)

type CohortReaderPort interface {
	// FindCohorts returns the cohorts with the given ids; nil ids means all.
	FindCohorts(ctx context.Context, ids []int64) ([]domain.Cohort, error)
}
