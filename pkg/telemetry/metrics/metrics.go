// Package metrics collects Prometheus metrics for request handling,
// upstream completion calls, and the summary cache.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"guestreview/genius/pkg/config"
)

// Collector manages metric registration and provides a unified
// interface for recording metrics across all components. A nil
// *Collector is valid and records nothing, so wiring stays
// unconditional even when metrics are disabled.
//
// Metrics:
//   - genius_requests_total: request count by route, method, status
//   - genius_request_duration_seconds: request latency histogram by route
//   - genius_upstream_requests_total: completion calls by operation and outcome
//   - genius_upstream_retries_total: rate-limit and failure retries by operation
//   - genius_cache_hits_total / genius_cache_misses_total: summary cache traffic
//   - genius_cache_entries: current summary cache size
//   - genius_cache_sweep_removed_total: entries reclaimed by the sweeper
type Collector struct {
	config   *config.MetricsConfig
	registry *prometheus.Registry

	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec

	upstreamTotal   *prometheus.CounterVec
	upstreamRetries *prometheus.CounterVec

	cacheHits    prometheus.Counter
	cacheMisses  prometheus.Counter
	cacheEntries prometheus.Gauge
	cacheSwept   prometheus.Counter
}

// NewCollector creates a metrics collector with the specified
// configuration and Prometheus registry. If registry is nil, a fresh
// registry is used. Returns nil when metrics are disabled.
func NewCollector(cfg *config.MetricsConfig, registry *prometheus.Registry) *Collector {
	if cfg == nil || !cfg.Enabled {
		return nil
	}
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	namespace := cfg.Namespace
	if namespace == "" {
		namespace = config.DefaultMetricsNamespace
	}
	buckets := cfg.RequestDurationBuckets
	if len(buckets) == 0 {
		buckets = []float64{0.1, 0.25, 0.5, 1.0, 2.0, 5.0, 10.0, 30.0}
	}

	c := &Collector{
		config:   cfg,
		registry: registry,

		requestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: cfg.Subsystem,
				Name:      "requests_total",
				Help:      "Total number of HTTP requests handled",
			},
			[]string{"route", "method", "status"},
		),

		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: cfg.Subsystem,
				Name:      "request_duration_seconds",
				Help:      "Duration of HTTP requests in seconds",
				Buckets:   buckets,
			},
			[]string{"route"},
		),

		upstreamTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: cfg.Subsystem,
				Name:      "upstream_requests_total",
				Help:      "Total number of upstream completion calls",
			},
			[]string{"operation", "outcome"},
		),

		upstreamRetries: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: cfg.Subsystem,
				Name:      "upstream_retries_total",
				Help:      "Total number of upstream retries",
			},
			[]string{"operation"},
		),

		cacheHits: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: cfg.Subsystem,
				Name:      "cache_hits_total",
				Help:      "Total number of summary cache hits",
			},
		),

		cacheMisses: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: cfg.Subsystem,
				Name:      "cache_misses_total",
				Help:      "Total number of summary cache misses",
			},
		),

		cacheEntries: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: cfg.Subsystem,
				Name:      "cache_entries",
				Help:      "Current number of entries in the summary cache",
			},
		),

		cacheSwept: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: cfg.Subsystem,
				Name:      "cache_sweep_removed_total",
				Help:      "Total number of expired cache entries removed by the sweeper",
			},
		),
	}

	registry.MustRegister(
		c.requestsTotal,
		c.requestDuration,
		c.upstreamTotal,
		c.upstreamRetries,
		c.cacheHits,
		c.cacheMisses,
		c.cacheEntries,
		c.cacheSwept,
	)

	return c
}

// RecordRequest records a completed HTTP request.
func (c *Collector) RecordRequest(route, method string, status int, duration time.Duration) {
	if c == nil {
		return
	}
	c.requestsTotal.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	c.requestDuration.WithLabelValues(route).Observe(duration.Seconds())
}

// RecordUpstream records one upstream completion call.
// operation is "chat" or "summary"; outcome is "success", "rate_limited",
// or "error".
func (c *Collector) RecordUpstream(operation, outcome string) {
	if c == nil {
		return
	}
	c.upstreamTotal.WithLabelValues(operation, outcome).Inc()
}

// RecordRetry records one upstream retry.
func (c *Collector) RecordRetry(operation string) {
	if c == nil {
		return
	}
	c.upstreamRetries.WithLabelValues(operation).Inc()
}

// RecordCacheHit records a summary cache hit.
func (c *Collector) RecordCacheHit() {
	if c == nil {
		return
	}
	c.cacheHits.Inc()
}

// RecordCacheMiss records a summary cache miss.
func (c *Collector) RecordCacheMiss() {
	if c == nil {
		return
	}
	c.cacheMisses.Inc()
}

// SetCacheEntries records the current summary cache size.
func (c *Collector) SetCacheEntries(n int) {
	if c == nil {
		return
	}
	c.cacheEntries.Set(float64(n))
}

// RecordCacheSweep records entries removed by a sweep.
func (c *Collector) RecordCacheSweep(removed int) {
	if c == nil {
		return
	}
	c.cacheSwept.Add(float64(removed))
}
