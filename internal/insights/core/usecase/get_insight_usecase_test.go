package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"insights-display-service/internal/insights/core/domain"
	"insights-display-service/internal/insights/core/labels"
	"insights-display-service/internal/insights/core/ports"
	"insights-display-service/internal/insights/core/usecase"
)

// fakeInsightReader, InsightReaderPort'u test için fake'ler.
type fakeInsightReader struct {
	QueryFn    func(ctx context.Context, f ports.InsightFilter) (*domain.InsightResult, error)
	lastFilter ports.InsightFilter
	called     bool
}

func (f *fakeInsightReader) QueryInsight(ctx context.Context, flt ports.InsightFilter) (*domain.InsightResult, error) {
	f.called = true
	f.lastFilter = flt
	if f.QueryFn != nil {
		return f.QueryFn(ctx, flt)
	}
	return &domain.InsightResult{EventName: flt.EventName}, nil
}

type fakeCohortReader struct {
	FindFn  func(ctx context.Context, ids []int64) ([]domain.Cohort, error)
	lastIDs []int64
	called  bool
}

func (f *fakeCohortReader) FindCohorts(ctx context.Context, ids []int64) ([]domain.Cohort, error) {
	f.called = true
	f.lastIDs = ids
	if f.FindFn != nil {
		return f.FindFn(ctx, ids)
	}
	return nil, nil
}

func ptr(v float64) *float64 { return &v }

func baseInput() usecase.GetInsightInput {
	return usecase.GetInsightInput{
		EventName: "product_view",
		From:      100,
		To:        200,
	}
}

// ------------------------------------------------------------
// SUCCESS (no breakdown)
// ------------------------------------------------------------

func TestGetInsight_Success_NoBreakdown(t *testing.T) {
	reader := &fakeInsightReader{
		QueryFn: func(ctx context.Context, flt ports.InsightFilter) (*domain.InsightResult, error) {
			if flt.EventName != "product_view" {
				t.Fatalf("expected event_name=product_view, got %s", flt.EventName)
			}
			if flt.Math != domain.MathTotal {
				t.Fatalf("expected math=total by default, got %s", flt.Math)
			}
			if flt.HistogramBins != 0 {
				t.Fatalf("expected no histogram bins, got %d", flt.HistogramBins)
			}
			return &domain.InsightResult{
				EventName:   flt.EventName,
				TotalCount:  1500,
				UniqueUsers: 40,
				Aggregate:   ptr(1500),
			}, nil
		},
	}
	cohorts := &fakeCohortReader{}

	uc := usecase.NewGetInsightUseCase(reader, cohorts, usecase.LabelOptions{
		EventLabels: map[string]string{"product_view": "Product viewed"},
	})

	out, err := uc.Execute(context.Background(), baseInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Result.TotalCount != 1500 {
		t.Fatalf("unexpected result: %+v", out.Result)
	}
	if out.FormattedTotal != "1,500" {
		t.Fatalf("expected formatted total 1,500, got %q", out.FormattedTotal)
	}
	if out.SeriesLabel != "Product viewed" {
		t.Fatalf("expected mapped series label, got %q", out.SeriesLabel)
	}
	if out.BreakdownTitle != "Breakdown Value" {
		t.Fatalf("expected default title, got %q", out.BreakdownTitle)
	}
	if cohorts.called {
		t.Fatalf("cohorts should not be loaded without a cohort breakdown")
	}
}

// ------------------------------------------------------------
// SUCCESS (property breakdown + formatter)
// ------------------------------------------------------------

func TestGetInsight_Success_PropertyBreakdown(t *testing.T) {
	reader := &fakeInsightReader{
		QueryFn: func(ctx context.Context, flt ports.InsightFilter) (*domain.InsightResult, error) {
			if flt.BreakdownType != domain.BreakdownEvent || flt.Breakdown != "$browser" {
				t.Fatalf("unexpected breakdown: %s/%s", flt.BreakdownType, flt.Breakdown)
			}
			return &domain.InsightResult{
				EventName: flt.EventName,
				Groups: []domain.ResultGroup{
					{Value: domain.String("Chrome"), Count: 10},
					{Value: domain.String(""), Count: 3},
					{Value: domain.String("nan"), Count: 1},
				},
			}, nil
		},
	}

	uc := usecase.NewGetInsightUseCase(reader, &fakeCohortReader{}, usecase.LabelOptions{})

	in := baseInput()
	in.BreakdownType = "event"
	in.Breakdown = "$browser"

	out, err := uc.Execute(context.Background(), in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.SeriesLabel != "product_view" {
		t.Fatalf("expected raw event name as series label, got %q", out.SeriesLabel)
	}
	if out.BreakdownTitle != "$browser" {
		t.Fatalf("expected title=$browser, got %q", out.BreakdownTitle)
	}
	want := []string{"Chrome", "None", "Other"}
	if len(out.Groups) != len(want) {
		t.Fatalf("expected %d groups, got %d", len(want), len(out.Groups))
	}
	for i, w := range want {
		if out.Groups[i].Label != w {
			t.Fatalf("group %d: expected label %q, got %q", i, w, out.Groups[i].Label)
		}
		if out.Groups[i].FormattedValue != "-" {
			t.Fatalf("group %d: expected placeholder for missing aggregate, got %q", i, out.Groups[i].FormattedValue)
		}
	}
}

// ------------------------------------------------------------
// SUCCESS (cohort breakdown)
// ------------------------------------------------------------

func TestGetInsight_Success_CohortBreakdown(t *testing.T) {
	reader := &fakeInsightReader{
		QueryFn: func(ctx context.Context, flt ports.InsightFilter) (*domain.InsightResult, error) {
			return &domain.InsightResult{
				EventName: flt.EventName,
				Groups: []domain.ResultGroup{
					{Value: domain.Number(0), Count: 50},
					{Value: domain.Number(7), Count: 20},
					{Value: domain.Number(99), Count: 5},
				},
			}, nil
		},
	}
	cohorts := &fakeCohortReader{
		FindFn: func(ctx context.Context, ids []int64) ([]domain.Cohort, error) {
			return []domain.Cohort{{ID: 7, Name: "Power users"}}, nil
		},
	}

	uc := usecase.NewGetInsightUseCase(reader, cohorts, usecase.LabelOptions{})

	in := baseInput()
	in.BreakdownType = "cohort"

	out, err := uc.Execute(context.Background(), in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !cohorts.called {
		t.Fatalf("expected FindCohorts to be called")
	}
	if len(cohorts.lastIDs) != 2 || cohorts.lastIDs[0] != 7 || cohorts.lastIDs[1] != 99 {
		t.Fatalf("expected ids [7 99], got %v", cohorts.lastIDs)
	}
	if out.BreakdownTitle != "Cohort" {
		t.Fatalf("expected title=Cohort, got %q", out.BreakdownTitle)
	}

	want := []string{"All Users", "Power users", "99"}
	for i, w := range want {
		if out.Groups[i].Label != w {
			t.Fatalf("group %d: expected label %q, got %q", i, w, out.Groups[i].Label)
		}
	}
}

func TestGetInsight_CohortReaderError(t *testing.T) {
	reader := &fakeInsightReader{
		QueryFn: func(ctx context.Context, flt ports.InsightFilter) (*domain.InsightResult, error) {
			return &domain.InsightResult{Groups: []domain.ResultGroup{{Value: domain.Number(3)}}}, nil
		},
	}
	cohorts := &fakeCohortReader{
		FindFn: func(ctx context.Context, ids []int64) ([]domain.Cohort, error) {
			return nil, errors.New("cohort store down")
		},
	}

	uc := usecase.NewGetInsightUseCase(reader, cohorts, usecase.LabelOptions{})

	in := baseInput()
	in.BreakdownType = "cohort"

	out, err := uc.Execute(context.Background(), in)
	if err == nil || err.Error() != "cohort store down" {
		t.Fatalf("expected cohort store error, got %v", err)
	}
	if out != nil {
		t.Fatalf("expected nil result on error")
	}
}

// ------------------------------------------------------------
// SUCCESS (time breakdown is sorted chronologically)
// ------------------------------------------------------------

func TestGetInsight_Success_TimeBreakdownSorted(t *testing.T) {
	reader := &fakeInsightReader{
		QueryFn: func(ctx context.Context, flt ports.InsightFilter) (*domain.InsightResult, error) {
			if flt.Breakdown != "hour" {
				t.Fatalf("expected interval=hour, got %s", flt.Breakdown)
			}
			return &domain.InsightResult{
				Groups: []domain.ResultGroup{
					{Value: domain.String("2025-12-07T11:00:00Z"), Count: 200},
					{Value: domain.String("2025-12-07T09:00:00Z"), Count: 50},
					{Value: domain.String("2025-12-07T10:00:00Z"), Count: 100},
				},
			}, nil
		},
	}

	uc := usecase.NewGetInsightUseCase(reader, &fakeCohortReader{}, usecase.LabelOptions{
		Now: func() time.Time { return time.Date(2025, 12, 7, 11, 30, 0, 0, time.UTC) },
	})

	in := baseInput()
	in.BreakdownType = "time"
	in.Breakdown = "hour"

	out, err := uc.Execute(context.Background(), in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []int64{50, 100, 200}
	for i, w := range want {
		if out.Groups[i].Count != w {
			t.Fatalf("group %d: expected count %d, got %d", i, w, out.Groups[i].Count)
		}
	}
	if out.Groups[0].Label != "2025-12-07T09:00:00Z" {
		t.Fatalf("unexpected first label %q", out.Groups[0].Label)
	}
	if out.Groups[0].InProgress || !out.Groups[2].InProgress {
		t.Fatalf("expected only the 11:00 bucket in progress: %+v", out.Groups)
	}
}

// ------------------------------------------------------------
// SUCCESS (histogram buckets)
// ------------------------------------------------------------

func TestGetInsight_Success_Histogram(t *testing.T) {
	reader := &fakeInsightReader{
		QueryFn: func(ctx context.Context, flt ports.InsightFilter) (*domain.InsightResult, error) {
			if flt.HistogramBins != 10 {
				t.Fatalf("expected default 10 bins, got %d", flt.HistogramBins)
			}
			return &domain.InsightResult{
				Groups: []domain.ResultGroup{
					{Value: domain.String("[0,30]"), Count: 4},
					{Value: domain.String("[30,nan]"), Count: 1},
				},
			}, nil
		},
	}
	formatter := labels.NewPropertyFormatter(map[string]labels.PropertyFormat{
		"duration": labels.FormatDuration,
	})

	uc := usecase.NewGetInsightUseCase(reader, &fakeCohortReader{}, usecase.LabelOptions{Formatter: formatter})

	in := baseInput()
	in.BreakdownType = "event"
	in.Breakdown = "duration"
	in.Histogram = true

	out, err := uc.Execute(context.Background(), in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Groups[0].Label != "0s – 30s" {
		t.Fatalf("unexpected bucket label %q", out.Groups[0].Label)
	}
	if out.Groups[1].Label != "30s – " {
		t.Fatalf("unexpected open bucket label %q", out.Groups[1].Label)
	}
}

func TestGetInsight_MalformedBucket(t *testing.T) {
	reader := &fakeInsightReader{
		QueryFn: func(ctx context.Context, flt ports.InsightFilter) (*domain.InsightResult, error) {
			return &domain.InsightResult{
				Groups: []domain.ResultGroup{{Value: domain.String("[1,2,3]")}},
			}, nil
		},
	}

	uc := usecase.NewGetInsightUseCase(reader, &fakeCohortReader{}, usecase.LabelOptions{})

	in := baseInput()
	in.BreakdownType = "event"
	in.Breakdown = "duration"
	in.Histogram = true

	_, err := uc.Execute(context.Background(), in)
	if !errors.Is(err, labels.ErrMalformedBucket) {
		t.Fatalf("expected ErrMalformedBucket, got %v", err)
	}
}

// ------------------------------------------------------------
// SUCCESS (sum math)
// ------------------------------------------------------------

func TestGetInsight_Success_SumFormatted(t *testing.T) {
	reader := &fakeInsightReader{
		QueryFn: func(ctx context.Context, flt ports.InsightFilter) (*domain.InsightResult, error) {
			if flt.Math != domain.MathSum || flt.MathProperty != "revenue" {
				t.Fatalf("unexpected math: %s(%s)", flt.Math, flt.MathProperty)
			}
			return &domain.InsightResult{Aggregate: ptr(1234.5)}, nil
		},
	}
	formatter := labels.NewPropertyFormatter(map[string]labels.PropertyFormat{
		"revenue": labels.FormatCurrency,
	})

	uc := usecase.NewGetInsightUseCase(reader, &fakeCohortReader{}, usecase.LabelOptions{Formatter: formatter})

	in := baseInput()
	in.Math = "sum"
	in.MathProperty = "revenue"

	out, err := uc.Execute(context.Background(), in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.FormattedTotal != "$1,234.50" {
		t.Fatalf("expected $1,234.50, got %q", out.FormattedTotal)
	}
}

// ------------------------------------------------------------
// VALIDATION
// ------------------------------------------------------------

func TestGetInsight_ValidationErrors(t *testing.T) {
	tests := []struct {
		name string
		edit func(in *usecase.GetInsightInput)
		want error
	}{
		{"missing event", func(in *usecase.GetInsightInput) { in.EventName = "" }, usecase.ErrInvalidInsightQuery},
		{"from after to", func(in *usecase.GetInsightInput) { in.From, in.To = 200, 100 }, usecase.ErrInvalidTimeRange},
		{"unknown breakdown", func(in *usecase.GetInsightInput) { in.BreakdownType = "person" }, usecase.ErrInvalidBreakdown},
		{"event without property", func(in *usecase.GetInsightInput) { in.BreakdownType = "event" }, usecase.ErrInvalidBreakdown},
		{"bad interval", func(in *usecase.GetInsightInput) {
			in.BreakdownType = "time"
			in.Breakdown = "minute"
		}, usecase.ErrInvalidInterval},
		{"histogram on cohort", func(in *usecase.GetInsightInput) {
			in.BreakdownType = "cohort"
			in.Histogram = true
		}, usecase.ErrInvalidHistogram},
		{"too few bins", func(in *usecase.GetInsightInput) {
			in.BreakdownType = "event"
			in.Breakdown = "duration"
			in.Histogram = true
			in.HistogramBins = 1
		}, usecase.ErrInvalidHistogram},
		{"sum without property", func(in *usecase.GetInsightInput) { in.Math = "sum" }, usecase.ErrInvalidMath},
		{"unknown math", func(in *usecase.GetInsightInput) { in.Math = "avg" }, usecase.ErrInvalidMath},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reader := &fakeInsightReader{}
			uc := usecase.NewGetInsightUseCase(reader, &fakeCohortReader{}, usecase.LabelOptions{})

			in := baseInput()
			tt.edit(&in)

			out, err := uc.Execute(context.Background(), in)
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
			if out != nil {
				t.Fatalf("expected nil result on error")
			}
			if reader.called {
				t.Fatalf("repository should not be called on invalid input")
			}
		})
	}
}

// ------------------------------------------------------------
// REPOSITORY ERROR PROPAGATION
// ------------------------------------------------------------

func TestGetInsight_RepositoryError(t *testing.T) {
	reader := &fakeInsightReader{
		QueryFn: func(ctx context.Context, f ports.InsightFilter) (*domain.InsightResult, error) {
			return nil, errors.New("db failure")
		},
	}

	uc := usecase.NewGetInsightUseCase(reader, &fakeCohortReader{}, usecase.LabelOptions{})

	out, err := uc.Execute(context.Background(), baseInput())
	if err == nil || err.Error() != "db failure" {
		t.Fatalf("expected db failure, got %v", err)
	}
	if out != nil {
		t.Fatalf("expected nil result on error")
	}
}
