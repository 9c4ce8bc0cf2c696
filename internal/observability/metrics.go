// Package observability holds the service's prometheus collectors.
package observability

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// InsightQueries counts insight queries by breakdown type and result
	// ("ok", "invalid", "error").
	InsightQueries = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "insights_queries_total",
		Help: "Insight queries by breakdown type and result",
	}, []string{"breakdown_type", "result"})

	InsightQueryDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "insights_query_duration_seconds",
		Help:    "Insight query duration including labelling",
		Buckets: prometheus.DefBuckets,
	})

	// BreakdownLabels counts resolved breakdown labels by breakdown type.
	BreakdownLabels = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "insights_breakdown_labels_total",
		Help: "Breakdown labels resolved by breakdown type",
	}, []string{"breakdown_type"})

	BreakdownLabelErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "insights_breakdown_label_errors_total",
		Help: "Breakdown values that could not be labelled",
	})

	// FilterChanges counts tracked filter changes by status ("created",
	// "duplicate", "unchanged").
	FilterChanges = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "insights_filter_changes_total",
		Help: "Tracked insight filter changes by status",
	}, []string{"status"})

	FilterChangedFields = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "insights_filter_changed_fields",
		Help:    "Changed keys per tracked filter change",
		Buckets: []float64{1, 2, 3, 5, 10, 20},
	})
)

// Handler exposes the default registry for fiber.
func Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.Handler())
}

// BreakdownTypeLabel is the metric label for a breakdown type; the empty
// type is "none".
func BreakdownTypeLabel(bt string) string {
	if bt == "" {
		return "none"
	}
	return bt
}
