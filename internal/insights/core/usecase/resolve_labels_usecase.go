package usecase

import (
	"context"
	"errors"
	"fmt"

	"insights-display-service/internal/insights/core/domain"
	"insights-display-service/internal/insights/core/labels"
	"insights-display-service/internal/insights/core/ports"
	"insights-display-service/internal/observability"
)

var ErrInvalidLabelRequest = errors.New("invalid label request")

const MaxLabelValues = 1000

type ResolveBreakdownLabelsInput struct {
	Values        []domain.Value
	Breakdown     string
	BreakdownType string
	Histogram     bool
}

// ResolveLabelsUseCase labels breakdown values supplied by the caller, for
// clients that already hold query results.
type ResolveLabelsUseCase struct {
	cohorts ports.CohortReaderPort
	opts    LabelOptions
}

func NewResolveLabelsUseCase(cohorts ports.CohortReaderPort, opts LabelOptions) *ResolveLabelsUseCase {
	return &ResolveLabelsUseCase{cohorts: cohorts, opts: opts}
}

func (uc *ResolveLabelsUseCase) ResolveBreakdownLabels(ctx context.Context, in ResolveBreakdownLabelsInput) ([]string, error) {
	if len(in.Values) == 0 || len(in.Values) > MaxLabelValues {
		return nil, fmt.Errorf("%w: between 1 and %d values required", ErrInvalidLabelRequest, MaxLabelValues)
	}

	bt := domain.BreakdownType(in.BreakdownType)
	switch bt {
	case domain.BreakdownNone, domain.BreakdownEvent, domain.BreakdownCohort, domain.BreakdownTime:
	default:
		return nil, fmt.Errorf("%w: unknown breakdown type %q", ErrInvalidLabelRequest, in.BreakdownType)
	}

	var cohorts []domain.Cohort
	if bt == domain.BreakdownCohort {
		ids := make([]int64, 0, len(in.Values))
		for _, v := range in.Values {
			if isAllUsers(v) {
				continue
			}
			n, ok := v.AsNumber()
			if !ok {
				// string id'ler de gelebilir, o zaman hepsini çek
				ids = nil
				break
			}
			ids = append(ids, int64(n))
		}

		var err error
		cohorts, err = uc.cohorts.FindCohorts(ctx, ids)
		if err != nil {
			return nil, err
		}
	}

	out := make([]string, len(in.Values))
	for i, v := range in.Values {
		label, err := labels.FormatBreakdownLabel(cohorts, uc.opts.Formatter, v, in.Breakdown, bt, in.Histogram)
		if err != nil {
			observability.BreakdownLabelErrors.Inc()
			return nil, err
		}
		out[i] = label
	}
	observability.BreakdownLabels.WithLabelValues(observability.BreakdownTypeLabel(in.BreakdownType)).Add(float64(len(out)))

	return out, nil
}

// HumanizePathTypes describes the path event types a paths insight
// includes.
func (uc *ResolveLabelsUseCase) HumanizePathTypes(include []string) []string {
	types := make([]domain.PathType, len(include))
	for i, t := range include {
		types[i] = domain.PathType(t)
	}
	return labels.HumanizePathsEventTypes(types)
}

// isAllUsers reports the tokens that label as "All Users" without a lookup.
func isAllUsers(v domain.Value) bool {
	if n, ok := v.AsNumber(); ok {
		return n == 0
	}
	s, ok := v.AsString()
	return ok && s == "all"
}
