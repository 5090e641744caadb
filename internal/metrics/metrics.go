// Package metrics declares the Prometheus collectors the HTTP server
// exposes on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	QueriesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "aqe_queries_total",
		Help: "Total number of queries executed, partitioned by outcome.",
	}, []string{"outcome"})

	QueryDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "aqe_query_duration_seconds",
		Help:    "Query execution latency in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"approximate"})

	RowsScanned = promauto.NewCounter(prometheus.CounterOpts{
		Name: "aqe_rows_scanned_total",
		Help: "Total number of input rows fed to a sampler or scanned directly.",
	})

	RowsSampled = promauto.NewCounter(prometheus.CounterOpts{
		Name: "aqe_rows_sampled_total",
		Help: "Total number of rows passed to aggregation across all queries (all scanned rows for an exact scan).",
	})

	DatasetsLoaded = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "aqe_datasets_loaded",
		Help: "Number of datasets currently held in memory.",
	})

	LastSampleRate = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "aqe_last_sample_rate",
		Help: "Sampler rate observed by the most recently executed query (1 for an exact scan).",
	})

	SketchesRegistered = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "aqe_sketches_registered",
		Help: "Number of standalone sketches registered, partitioned by type.",
	}, []string{"type"})
)
