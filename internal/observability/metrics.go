// Package observability provides Prometheus metrics for monitoring.
package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for the pipeline.
type Metrics struct {
	// Day metrics
	DaysProcessed prometheus.Counter
	DaysFailed    prometheus.Counter

	// Symbol metrics
	SeriesWritten  prometheus.Counter
	SymbolsSkipped *prometheus.CounterVec

	// Latency metrics
	AggregationDuration prometheus.Histogram
	DayDuration         prometheus.Histogram
}

// Skip reasons for the SymbolsSkipped counter.
const (
	SkipReasonNoTicks   = "no_tick_data"
	SkipReasonMalformed = "malformed_tick_record"
	SkipReasonWrite     = "write_failed"
)

// NewMetrics creates a new Metrics instance with all metrics registered
// on the default registry.
func NewMetrics(namespace string) *Metrics {
	if namespace == "" {
		namespace = "nfo_bars"
	}

	return &Metrics{
		DaysProcessed: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "days_processed_total",
			Help:      "Trading days fully processed",
		}),
		DaysFailed: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "days_failed_total",
			Help:      "Trading days abandoned before completion",
		}),
		SeriesWritten: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "series_written_total",
			Help:      "Bar series written to the sink",
		}),
		SymbolsSkipped: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "symbols_skipped_total",
			Help:      "Symbols skipped, by reason",
		}, []string{"reason"}),
		AggregationDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "aggregation_duration_seconds",
			Help:      "Per-symbol aggregation latency",
			Buckets:   prometheus.DefBuckets,
		}),
		DayDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "day_duration_seconds",
			Help:      "End-to-end per-day processing latency",
			Buckets:   prometheus.ExponentialBuckets(0.1, 2, 12),
		}),
	}
}

// Handler returns the HTTP handler exposing the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
