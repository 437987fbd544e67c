// Package metrics defines the Prometheus instruments for the
// extraction and storage pipeline. All collectors register on the
// default registry at init.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ExtractionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "runbrief_extractions_total",
		Help: "Page extractions by location code and outcome.",
	}, []string{"code", "status"})

	ExtractionDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "runbrief_extraction_duration_seconds",
		Help:    "Wall time of a single page extraction, including retries.",
		Buckets: prometheus.ExponentialBuckets(0.5, 2, 8),
	})

	RecordsUpserted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "runbrief_records_upserted_total",
		Help: "Hourly records written, by location code.",
	}, []string{"code"})

	BatchRuns = promauto.NewCounter(prometheus.CounterOpts{
		Name: "runbrief_batch_runs_total",
		Help: "Completed batch update sweeps.",
	})

	BatchFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "runbrief_batch_location_failures_total",
		Help: "Locations that failed within a batch sweep.",
	})

	BreakerOpens = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "runbrief_breaker_opens_total",
		Help: "Circuit breaker transitions to open, by location code.",
	}, []string{"code"})
)
