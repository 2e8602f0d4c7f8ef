// Package metrics holds the Prometheus collectors for aggregation, export
// and HTTP traffic.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// AggregationsTotal counts computed snapshots.
	// Labels: range, granularity
	AggregationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "remindr",
			Subsystem: "analytics",
			Name:      "aggregations_total",
			Help:      "Total number of analytics snapshots computed",
		},
		[]string{"range", "granularity"},
	)

	// AggregationDuration tracks load plus aggregation time
	AggregationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "remindr",
			Subsystem: "analytics",
			Name:      "aggregation_duration_seconds",
			Help:      "Duration of snapshot computation in seconds",
			Buckets:   prometheus.DefBuckets,
		},
	)

	// StaleResultsTotal counts snapshots discarded because a newer request superseded them
	StaleResultsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "remindr",
			Subsystem: "analytics",
			Name:      "stale_results_total",
			Help:      "Total number of snapshot results discarded as stale",
		},
	)

	// ExportRowsTotal counts CSV data rows written
	ExportRowsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "remindr",
			Subsystem: "export",
			Name:      "rows_total",
			Help:      "Total number of activity rows exported to CSV",
		},
	)

	// HTTPRequestsTotal counts served requests.
	// Labels: method, route, status
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "remindr",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests by route and status",
		},
		[]string{"method", "route", "status"},
	)
)

// ObserveAggregation records one computed snapshot
func ObserveAggregation(rng, granularity string, took time.Duration) {
	AggregationsTotal.WithLabelValues(rng, granularity).Inc()
	AggregationDuration.Observe(took.Seconds())
}

// ObserveRequest records one served HTTP request. Unmatched routes share a
// single label value to bound cardinality.
func ObserveRequest(method, route string, status int) {
	if route == "" {
		route = "unmatched"
	}
	HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
}
