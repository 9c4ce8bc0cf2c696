package usecase_test

import (
	"context"
	"errors"
	"testing"

	"insights-display-service/internal/insights/core/domain"
	"insights-display-service/internal/insights/core/labels"
	"insights-display-service/internal/insights/core/usecase"
)

// ------------------------------------------------------------
// BREAKDOWN LABELS
// ------------------------------------------------------------

func TestResolveBreakdownLabels_Cohort(t *testing.T) {
	cohorts := &fakeCohortReader{
		FindFn: func(ctx context.Context, ids []int64) ([]domain.Cohort, error) {
			return []domain.Cohort{{ID: 3, Name: "Trial"}}, nil
		},
	}
	uc := usecase.NewResolveLabelsUseCase(cohorts, usecase.LabelOptions{})

	out, err := uc.ResolveBreakdownLabels(context.Background(), usecase.ResolveBreakdownLabelsInput{
		Values:        []domain.Value{domain.String("all"), domain.String("3"), domain.Number(3)},
		BreakdownType: "cohort",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// string id geldiği için bütün cohort'lar istenmeli
	if cohorts.lastIDs != nil {
		t.Fatalf("expected nil ids (all cohorts), got %v", cohorts.lastIDs)
	}
	want := []string{"All Users", "Trial", "Trial"}
	for i, w := range want {
		if out[i] != w {
			t.Fatalf("value %d: expected %q, got %q", i, w, out[i])
		}
	}
}

func TestResolveBreakdownLabels_NumericCohortIDs(t *testing.T) {
	cohorts := &fakeCohortReader{}
	uc := usecase.NewResolveLabelsUseCase(cohorts, usecase.LabelOptions{})

	_, err := uc.ResolveBreakdownLabels(context.Background(), usecase.ResolveBreakdownLabelsInput{
		Values:        []domain.Value{domain.Number(4), domain.Number(5)},
		BreakdownType: "cohort",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cohorts.lastIDs) != 2 || cohorts.lastIDs[0] != 4 || cohorts.lastIDs[1] != 5 {
		t.Fatalf("expected ids [4 5], got %v", cohorts.lastIDs)
	}
}

func TestResolveBreakdownLabels_AllUsersTokensKeepIDLookup(t *testing.T) {
	cohorts := &fakeCohortReader{
		FindFn: func(ctx context.Context, ids []int64) ([]domain.Cohort, error) {
			return []domain.Cohort{{ID: 5, Name: "Churned"}}, nil
		},
	}
	uc := usecase.NewResolveLabelsUseCase(cohorts, usecase.LabelOptions{})

	out, err := uc.ResolveBreakdownLabels(context.Background(), usecase.ResolveBreakdownLabelsInput{
		Values:        []domain.Value{domain.Number(0), domain.Number(5), domain.String("all")},
		BreakdownType: "cohort",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// 0 ve "all" lookup gerektirmez, sadece 5 istenmeli
	if len(cohorts.lastIDs) != 1 || cohorts.lastIDs[0] != 5 {
		t.Fatalf("expected ids [5], got %v", cohorts.lastIDs)
	}
	want := []string{"All Users", "Churned", "All Users"}
	for i, w := range want {
		if out[i] != w {
			t.Fatalf("value %d: expected %q, got %q", i, w, out[i])
		}
	}
}

func TestResolveBreakdownLabels_OnlyAllUsersSkipsFetchAll(t *testing.T) {
	cohorts := &fakeCohortReader{}
	uc := usecase.NewResolveLabelsUseCase(cohorts, usecase.LabelOptions{})

	out, err := uc.ResolveBreakdownLabels(context.Background(), usecase.ResolveBreakdownLabelsInput{
		Values:        []domain.Value{domain.String("all")},
		BreakdownType: "cohort",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cohorts.lastIDs == nil || len(cohorts.lastIDs) != 0 {
		t.Fatalf("expected empty non-nil ids, got %#v", cohorts.lastIDs)
	}
	if out[0] != "All Users" {
		t.Fatalf("expected All Users, got %q", out[0])
	}
}

func TestResolveBreakdownLabels_PropertyValues(t *testing.T) {
	cohorts := &fakeCohortReader{}
	formatter := labels.NewPropertyFormatter(map[string]labels.PropertyFormat{
		"size": labels.FormatBytes,
	})
	uc := usecase.NewResolveLabelsUseCase(cohorts, usecase.LabelOptions{Formatter: formatter})

	out, err := uc.ResolveBreakdownLabels(context.Background(), usecase.ResolveBreakdownLabelsInput{
		Values: []domain.Value{
			domain.Number(2048),
			domain.Strings("a", "b"),
			domain.Null(),
		},
		Breakdown:     "size",
		BreakdownType: "event",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"2.0 KiB", "a::b", ""}
	for i, w := range want {
		if out[i] != w {
			t.Fatalf("value %d: expected %q, got %q", i, w, out[i])
		}
	}
	if cohorts.called {
		t.Fatalf("cohorts should not be loaded for property breakdowns")
	}
}

func TestResolveBreakdownLabels_Invalid(t *testing.T) {
	uc := usecase.NewResolveLabelsUseCase(&fakeCohortReader{}, usecase.LabelOptions{})

	_, err := uc.ResolveBreakdownLabels(context.Background(), usecase.ResolveBreakdownLabelsInput{})
	if !errors.Is(err, usecase.ErrInvalidLabelRequest) {
		t.Fatalf("expected ErrInvalidLabelRequest for empty values, got %v", err)
	}

	_, err = uc.ResolveBreakdownLabels(context.Background(), usecase.ResolveBreakdownLabelsInput{
		Values:        []domain.Value{domain.Number(1)},
		BreakdownType: "person",
	})
	if !errors.Is(err, usecase.ErrInvalidLabelRequest) {
		t.Fatalf("expected ErrInvalidLabelRequest for unknown type, got %v", err)
	}

	_, err = uc.ResolveBreakdownLabels(context.Background(), usecase.ResolveBreakdownLabelsInput{
		Values:        []domain.Value{domain.String("[1]")},
		BreakdownType: "event",
		Histogram:     true,
	})
	if !errors.Is(err, labels.ErrMalformedBucket) {
		t.Fatalf("expected ErrMalformedBucket, got %v", err)
	}
}

// ------------------------------------------------------------
// PATH TYPES
// ------------------------------------------------------------

func TestHumanizePathTypes(t *testing.T) {
	uc := usecase.NewResolveLabelsUseCase(&fakeCohortReader{}, usecase.LabelOptions{})

	got := uc.HumanizePathTypes([]string{"custom_event", "$pageview"})
	if len(got) != 2 || got[0] != "page views" || got[1] != "custom events" {
		t.Fatalf("unexpected labels: %v", got)
	}

	if got := uc.HumanizePathTypes(nil); len(got) != 0 {
		t.Fatalf("expected empty labels, got %v", got)
	}
}
