package api

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus metrics for API client operations.
var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "analytics_requests_total",
		Help: "Total API requests by resource and status",
	}, []string{"resource", "status"})

	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "analytics_request_duration_seconds",
		Help:    "API request duration in seconds by resource",
		Buckets: []float64{0.1, 0.5, 1, 2, 5, 10},
	}, []string{"resource"})

	retriesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "analytics_retries_total",
		Help: "Total number of retry attempts",
	})

	retryBackoffSeconds = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "analytics_retry_backoff_seconds",
		Help:    "Backoff duration between retry attempts",
		Buckets: []float64{0.5, 1, 2, 5, 10, 30, 60},
	})

	retryExhaustedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "analytics_retry_exhausted_total",
		Help: "Total number of times retry attempts were exhausted",
	})

	recordsFetchedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "analytics_records_fetched_total",
		Help: "Total raw records fetched by resource",
	}, []string{"resource"})

	paginationAbortedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "analytics_pagination_aborted_total",
		Help: "Pagination runs aborted early with partial results by resource",
	}, []string{"resource"})
)
