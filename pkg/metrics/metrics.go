// Package metrics provides the centralized Prometheus metrics registry for
// the analytics pipeline. All metrics are defined in their respective
// packages (api, cache, process) to maintain modularity and avoid circular
// dependencies.
//
// This package provides documentation and reference for all available metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Registry is the default Prometheus registry used by the pipeline.
// All metrics are automatically registered via promauto in their respective packages.
var Registry = prometheus.DefaultRegisterer

// Metrics Documentation
//
// Request Metrics (pkg/api):
//   - analytics_requests_total{resource, status} (Counter): Total requests by resource and HTTP status
//   - analytics_request_duration_seconds{resource} (Histogram): Request duration by resource
//   - analytics_records_fetched_total{resource} (Counter): Records fetched across all pages
//   - analytics_pagination_aborted_total{resource} (Counter): Paginated fetches that stopped early on error
//
// Retry Metrics (pkg/api):
//   - analytics_retries_total (Counter): Retry attempts
//   - analytics_retry_backoff_seconds (Histogram): Backoff duration before each retry
//   - analytics_retry_exhausted_total (Counter): Requests that exhausted max retries
//
// Cache Metrics (pkg/cache):
//   - analytics_cache_hits_total (Counter): Page cache hits
//   - analytics_cache_misses_total (Counter): Page cache misses
//   - analytics_cache_errors_total{operation} (Counter): Cache operation errors
//
// Processing Metrics (pkg/process):
//   - analytics_normalized_records_total{kind} (Counter): Records that passed validation
//   - analytics_dropped_records_total{kind, reason} (Counter): Records dropped during validation
//
// Example Prometheus Queries:
//
//   # Cache Hit Rate
//   sum(rate(analytics_cache_hits_total[5m])) /
//   (sum(rate(analytics_cache_hits_total[5m])) + sum(rate(analytics_cache_misses_total[5m])))
//
//   # Drop Rate by Reason
//   rate(analytics_dropped_records_total[5m])
//
//   # P95 Request Latency
//   histogram_quantile(0.95, rate(analytics_request_duration_seconds_bucket[5m]))
//
//   # Retry Exhaustion Rate
//   rate(analytics_retry_exhausted_total[5m]) / rate(analytics_requests_total[5m])
