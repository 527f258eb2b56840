package batch

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus metrics for batch executor runs.
var (
	batchRunsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bridge_batch_runs_total",
		Help: "Total number of batch runs started",
	})

	batchItemsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bridge_batch_items_total",
		Help: "Total batch input items by outcome",
	}, []string{"outcome"}) // "succeeded", "failed"

	batchGroupsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bridge_batch_groups_total",
		Help: "Total number of batch groups executed",
	})

	batchDurationSeconds = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "bridge_batch_duration_seconds",
		Help:    "Batch run duration in seconds",
		Buckets: []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60},
	})
)
