// Package metrics provides the centralized Prometheus registry reference
// for the bridge. All metrics are defined in their respective packages
// (cache, batch, trakt, ratelimit) to maintain modularity and avoid
// circular dependencies.
//
// This package provides documentation and reference for all available metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Registry is the default Prometheus registry used by the bridge.
// All metrics are automatically registered via promauto in their respective packages.
var Registry = prometheus.DefaultRegisterer

// Metrics Documentation
//
// Cache Metrics (pkg/cache):
//   - bridge_cache_hits_total{layer} (Counter): Cache hits by backend layer
//   - bridge_cache_misses_total{layer} (Counter): Cache misses
//   - bridge_cache_evictions_total{layer} (Counter): LRU evictions at capacity
//   - bridge_cache_expirations_total{layer} (Counter): TTL removals (lazy + pruned)
//   - bridge_cache_entries{layer} (Gauge): Resident entries
//   - bridge_cache_errors_total{operation} (Counter): Backend operation errors
//
// Batch Metrics (pkg/batch):
//   - bridge_batch_runs_total (Counter): Batch runs started
//   - bridge_batch_items_total{outcome} (Counter): Items by outcome (succeeded, failed)
//   - bridge_batch_groups_total (Counter): Groups executed
//   - bridge_batch_duration_seconds (Histogram): Batch run duration
//
// Rate Limit Metrics (pkg/ratelimit):
//   - bridge_ratelimit_remaining (Gauge): Requests left in the upstream window
//   - bridge_ratelimit_blocks_total (Counter): Requests blocked at critical budget
//   - bridge_ratelimit_throttles_total (Counter): Requests throttled at warning budget
//
// Request Metrics (pkg/trakt):
//   - bridge_upstream_requests_total{endpoint, status} (Counter): Upstream requests
//   - bridge_upstream_request_duration_seconds{endpoint} (Histogram): Request duration
//   - bridge_upstream_errors_total{class} (Counter): Errors by class
//
// Retry Metrics (pkg/trakt):
//   - bridge_upstream_retries_total{error_class} (Counter): Retry attempts
//   - bridge_upstream_retry_backoff_seconds{error_class} (Histogram): Backoff durations
//   - bridge_upstream_retry_exhausted_total{error_class} (Counter): Exhausted retries
//
// Example Prometheus Queries:
//
//   # Cache Hit Rate
//   sum(rate(bridge_cache_hits_total[5m])) /
//   (sum(rate(bridge_cache_hits_total[5m])) + sum(rate(bridge_cache_misses_total[5m])))
//
//   # Batch Failure Ratio
//   rate(bridge_batch_items_total{outcome="failed"}[5m]) /
//   rate(bridge_batch_items_total[5m])
//
//   # Rate Limit Budget
//   bridge_ratelimit_remaining < 20
//
//   # P95 Upstream Latency
//   histogram_quantile(0.95, rate(bridge_upstream_request_duration_seconds_bucket[5m]))
