package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests by method, path and status code",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency by method and path",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	CapacityRejectionsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "section_capacity_rejections_total",
			Help: "Reserve calls rejected because they would exceed section capacity",
		},
	)

	PutawayBatchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "putaway_batches_total",
			Help: "Reconciled putaway batches by outcome",
		},
		[]string{"outcome"},
	)
)
