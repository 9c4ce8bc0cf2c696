package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"insights-display-service/internal/insights/core/domain"
	"insights-display-service/internal/insights/core/labels"
	"insights-display-service/internal/insights/core/ports"
	"insights-display-service/internal/observability"
)

var (
	ErrInvalidInsightQuery = errors.New("invalid insight query")
	ErrInvalidTimeRange    = errors.New("invalid time range")
	ErrInvalidBreakdown    = errors.New("invalid breakdown")
	ErrInvalidInterval     = errors.New("invalid interval for time breakdown")
	ErrInvalidHistogram    = errors.New("invalid histogram breakdown")
	ErrInvalidMath         = errors.New("invalid math")
)

const (
	MinHistogramBins = 2
	MaxHistogramBins = 100
)

// validIntervals maps a time breakdown interval to its period.
var validIntervals = map[string]string{
	"hour":  labels.PeriodHour,
	"day":   labels.PeriodDay,
	"week":  labels.PeriodWeek,
	"month": labels.PeriodMonth,
}

type GetInsightInput struct {
	EventName string
	From      int64
	To        int64
	Channel   *string

	BreakdownType string // "", "event", "cohort", "time"
	Breakdown     string // property key, or interval for time
	Histogram     bool
	HistogramBins int // 0 = default

	Math         string // "", "total", "sum"
	MathProperty string
}

type LabeledGroup struct {
	Value          domain.Value
	Label          string
	Count          int64
	UniqueUsers    int64
	Aggregate      *float64
	FormattedValue string
	InProgress     bool // time bucket containing now
}

type LabeledInsight struct {
	Result         *domain.InsightResult
	SeriesLabel    string
	BreakdownTitle string
	FormattedTotal string
	Groups         []LabeledGroup
}

// LabelOptions carries the display configuration shared by the label use
// cases.
type LabelOptions struct {
	Formatter            labels.ValueFormatter
	RenderCount          labels.CountRenderer
	DefaultHistogramBins int
	EventLabels          map[string]string
	Now                  func() time.Time
}

type GetInsightUseCase struct {
	reader  ports.InsightReaderPort
	cohorts ports.CohortReaderPort
	opts    LabelOptions
}

func NewGetInsightUseCase(reader ports.InsightReaderPort, cohorts ports.CohortReaderPort, opts LabelOptions) *GetInsightUseCase {
	if opts.DefaultHistogramBins == 0 {
		opts.DefaultHistogramBins = 10
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &GetInsightUseCase{reader: reader, cohorts: cohorts, opts: opts}
}

// Execute doğrular, filter'a çevirir, okur ve grupları etiketler.
func (uc *GetInsightUseCase) Execute(ctx context.Context, in GetInsightInput) (*LabeledInsight, error) {
	started := time.Now()
	metricType := observability.BreakdownTypeLabel(in.BreakdownType)

	filter, err := uc.toFilter(in)
	if err != nil {
		observability.InsightQueries.WithLabelValues(metricType, "invalid").Inc()
		return nil, err
	}

	res, err := uc.reader.QueryInsight(ctx, filter)
	if err != nil {
		observability.InsightQueries.WithLabelValues(metricType, "error").Inc()
		return nil, err
	}

	out, err := uc.label(ctx, filter, res)
	if err != nil {
		observability.InsightQueries.WithLabelValues(metricType, "error").Inc()
		return nil, err
	}

	observability.InsightQueries.WithLabelValues(metricType, "ok").Inc()
	observability.InsightQueryDuration.Observe(time.Since(started).Seconds())
	return out, nil
}

func (uc *GetInsightUseCase) toFilter(in GetInsightInput) (ports.InsightFilter, error) {
	if in.EventName == "" {
		return ports.InsightFilter{}, ErrInvalidInsightQuery
	}

	if in.From <= 0 || in.To <= 0 || in.From > in.To {
		return ports.InsightFilter{}, ErrInvalidTimeRange
	}

	filter := ports.InsightFilter{
		EventName:     in.EventName,
		From:          in.From,
		To:            in.To,
		Channel:       in.Channel,
		BreakdownType: domain.BreakdownType(in.BreakdownType),
		Breakdown:     in.Breakdown,
		Math:          domain.MathTotal,
	}

	switch filter.BreakdownType {
	case domain.BreakdownNone, domain.BreakdownCohort:
		// breakdown key kullanılmıyor
	case domain.BreakdownEvent:
		if in.Breakdown == "" {
			return ports.InsightFilter{}, fmt.Errorf("%w: breakdown property is required", ErrInvalidBreakdown)
		}
	case domain.BreakdownTime:
		if _, ok := validIntervals[in.Breakdown]; !ok {
			return ports.InsightFilter{}, ErrInvalidInterval
		}
	default:
		return ports.InsightFilter{}, fmt.Errorf("%w: unknown breakdown type %q", ErrInvalidBreakdown, in.BreakdownType)
	}

	if in.Histogram {
		if filter.BreakdownType != domain.BreakdownEvent {
			return ports.InsightFilter{}, fmt.Errorf("%w: only property breakdowns can be bucketed", ErrInvalidHistogram)
		}
		bins := in.HistogramBins
		if bins == 0 {
			bins = uc.opts.DefaultHistogramBins
		}
		if bins < MinHistogramBins || bins > MaxHistogramBins {
			return ports.InsightFilter{}, fmt.Errorf("%w: bins must be between %d and %d", ErrInvalidHistogram, MinHistogramBins, MaxHistogramBins)
		}
		filter.HistogramBins = bins
	}

	switch domain.Math(in.Math) {
	case "", domain.MathTotal:
	case domain.MathSum:
		if in.MathProperty == "" {
			return ports.InsightFilter{}, fmt.Errorf("%w: sum needs a property", ErrInvalidMath)
		}
		filter.Math = domain.MathSum
		filter.MathProperty = in.MathProperty
	default:
		return ports.InsightFilter{}, fmt.Errorf("%w: %q", ErrInvalidMath, in.Math)
	}

	return filter, nil
}

func (uc *GetInsightUseCase) label(ctx context.Context, f ports.InsightFilter, res *domain.InsightResult) (*LabeledInsight, error) {
	var cohorts []domain.Cohort
	if f.BreakdownType == domain.BreakdownCohort {
		var err error
		cohorts, err = uc.cohorts.FindCohorts(ctx, cohortIDs(res.Groups))
		if err != nil {
			return nil, err
		}
	}

	groups := res.Groups
	if f.BreakdownType == domain.BreakdownTime {
		groups = sortTimeGroups(groups)
	}

	title := labels.FormatBreakdownType(domain.BreakdownFilter{
		Breakdown:     domain.String(f.Breakdown),
		BreakdownType: f.BreakdownType,
	})

	series, ok := labels.EntityDisplayName(domain.EntityFilter{
		Type: domain.EntityEvents,
		ID:   domain.String(f.EventName),
		Name: f.EventName,
	}, uc.opts.EventLabels, false)
	if !ok {
		series = f.EventName
	}

	out := &LabeledInsight{
		Result:         res,
		SeriesLabel:    series,
		BreakdownTitle: title,
		FormattedTotal: uc.formatAggregate(f, res.Aggregate),
		Groups:         make([]LabeledGroup, 0, len(groups)),
	}

	now := uc.opts.Now()
	for _, g := range groups {
		label, err := labels.FormatBreakdownLabel(cohorts, uc.opts.Formatter, g.Value, f.Breakdown, f.BreakdownType, f.HistogramBins > 0)
		if err != nil {
			observability.BreakdownLabelErrors.Inc()
			return nil, fmt.Errorf("label breakdown value %q: %w", g.Value.String(), err)
		}
		observability.BreakdownLabels.WithLabelValues(observability.BreakdownTypeLabel(string(f.BreakdownType))).Inc()

		out.Groups = append(out.Groups, LabeledGroup{
			Value:          g.Value,
			Label:          label,
			Count:          g.Count,
			UniqueUsers:    g.UniqueUsers,
			Aggregate:      g.Aggregate,
			FormattedValue: uc.formatAggregate(f, g.Aggregate),
			InProgress:     inProgress(f, g.Value, now),
		})
	}

	return out, nil
}

func (uc *GetInsightUseCase) formatAggregate(f ports.InsightFilter, v *float64) string {
	return labels.FormatAggregationValue(f.MathProperty, v, uc.opts.RenderCount, uc.opts.Formatter).String()
}

func inProgress(f ports.InsightFilter, value domain.Value, now time.Time) bool {
	if f.BreakdownType != domain.BreakdownTime {
		return false
	}
	key, ok := value.AsString()
	if !ok {
		return false
	}
	return labels.IsLatestPeriod(&key, validIntervals[f.Breakdown], now)
}

func cohortIDs(groups []domain.ResultGroup) []int64 {
	ids := make([]int64, 0, len(groups))
	for _, g := range groups {
		if n, ok := g.Value.AsNumber(); ok && n != 0 {
			ids = append(ids, int64(n))
		}
	}
	return ids
}

// sortTimeGroups orders time buckets chronologically without touching the
// reader's slice.
func sortTimeGroups(groups []domain.ResultGroup) []domain.ResultGroup {
	keys := make([]*string, len(groups))
	index := make(map[*string]int, len(groups))
	for i, g := range groups {
		var key *string
		if s, ok := g.Value.AsString(); ok {
			key = &s
		} else {
			key = new(string)
		}
		keys[i] = key
		index[key] = i
	}

	labels.SortDates(keys)

	sorted := make([]domain.ResultGroup, len(groups))
	for i, key := range keys {
		sorted[i] = groups[index[key]]
	}
	return sorted
}
