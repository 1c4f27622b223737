// Package metrics provides the centralized Prometheus metrics registry
// for the pollution proxy. All metrics are defined in their respective
// packages (client, cache, auth, describe) to maintain modularity and
// avoid circular dependencies.
//
// This package provides documentation and reference for all available
// metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Registry is the default Prometheus registry used by the proxy.
// All metrics are automatically registered via promauto in their
// respective packages.
var Registry = prometheus.DefaultRegisterer

// Metrics Documentation
//
// Request Metrics (pkg/client):
//   - pollution_upstream_requests_total{endpoint, status} (Counter): Requests by endpoint and HTTP status
//   - pollution_upstream_request_duration_seconds{endpoint} (Histogram): Request duration by endpoint
//   - pollution_upstream_errors_total{class} (Counter): Errors by class (client, server, network)
//
// Cache Metrics (pkg/cache):
//   - pollution_cache_hits_total{layer="redis"} (Counter): Cache hits by layer
//   - pollution_cache_misses_total (Counter): Cache misses
//   - pollution_cache_size_bytes{layer="redis"} (Gauge): Bytes moved through the cache
//   - pollution_cache_errors_total{operation} (Counter): Cache operation errors
//
// Auth Metrics (pkg/auth):
//   - pollution_auth_logins_total (Counter): Successful login exchanges
//   - pollution_auth_refreshes_total (Counter): Successful refresh exchanges
//   - pollution_auth_rejections_total (Counter): Requests rejected again after a refresh
//
// Enrichment Metrics (pkg/describe):
//   - pollution_description_failures_total (Counter): Failed description lookups
//
// Example Prometheus Queries:
//
//   # Cache Hit Rate
//   sum(rate(pollution_cache_hits_total[5m])) /
//   (sum(rate(pollution_cache_hits_total[5m])) + sum(rate(pollution_cache_misses_total[5m])))
//
//   # Refresh Rate (token churn)
//   rate(pollution_auth_refreshes_total[5m])
//
//   # Request Error Rate
//   rate(pollution_upstream_errors_total[5m])
//
//   # P95 Request Latency
//   histogram_quantile(0.95, rate(pollution_upstream_request_duration_seconds_bucket[5m]))
