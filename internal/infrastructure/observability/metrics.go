// Package observability holds the process metrics, the operation instrumenter and the
// signal notifier that turns memory-layer warnings into log records.
package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/avatarctic/study-assistant-api/internal/core/domain/memory"
)

// Metrics holds all Prometheus collectors for the API.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	// HTTP metrics
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// Operation instrumentation
	OperationDuration    prometheus.Histogram
	OperationMemoryDelta prometheus.Histogram
	OperationWarnings    prometheus.Counter

	// Memory pressure
	HostMemoryUsedPercent prometheus.Gauge
	HostMemoryAvailable   prometheus.Gauge
	PressureClears        prometheus.Counter

	// Signals
	SignalsEmitted *prometheus.CounterVec
	SignalsDropped prometheus.Counter

	namespace string
	factory   promauto.Factory
}

// NewMetrics creates the collectors under namespace and registers them with reg.
// Pass prometheus.DefaultRegisterer in production and a fresh registry in tests.
func NewMetrics(namespace string, reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		HTTPRequestsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "The total number of HTTP requests",
		}, []string{"method", "endpoint", "status"}),
		HTTPRequestDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "The HTTP request latencies in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "endpoint"}),

		OperationDuration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "operation_duration_seconds",
			Help:      "Duration of instrumented operations in seconds",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		}),
		OperationMemoryDelta: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "operation_heap_delta_bytes",
			Help:      "Heap growth observed across instrumented operations",
			Buckets:   prometheus.ExponentialBuckets(64*1024, 4, 8),
		}),
		OperationWarnings: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "operation_memory_warnings_total",
			Help:      "Operations whose heap growth exceeded the warning threshold",
		}),

		HostMemoryUsedPercent: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "host_memory_used_percent",
			Help:      "Host memory utilization at the last sample",
		}),
		HostMemoryAvailable: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "host_memory_available",
			Help:      "1 when the last host memory sample succeeded, 0 while pressure handling is failing open",
		}),
		PressureClears: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pressure_clears_total",
			Help:      "Cache clears triggered by host memory pressure",
		}),

		SignalsEmitted: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "signals_emitted_total",
			Help:      "Observability signals accepted by the notifier",
		}, []string{"kind"}),
		SignalsDropped: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "signals_dropped_total",
			Help:      "Observability signals dropped because the notifier buffer was full",
		}),

		namespace: namespace,
		factory:   f,
	}
}

// RegisterCacheStats exposes cache counters as scrape-time gauges.
func (m *Metrics) RegisterCacheStats(stats func() memory.CacheStats) {
	if m == nil || stats == nil {
		return
	}
	m.gaugeFunc("cache_entries", "Entries currently held by the response cache", func() float64 { return float64(stats().Size) })
	m.gaugeFunc("cache_capacity", "Maximum entries the response cache holds", func() float64 { return float64(stats().MaxSize) })
	m.gaugeFunc("cache_hits", "Cache hits since the last clear", func() float64 { return float64(stats().Hits) })
	m.gaugeFunc("cache_misses", "Cache misses since the last clear", func() float64 { return float64(stats().Misses) })
	m.gaugeFunc("cache_evictions", "Capacity evictions since the last clear", func() float64 { return float64(stats().Evictions) })
	m.gaugeFunc("cache_hit_ratio", "hits / (hits + misses), 0 with no lookups", func() float64 { return stats().HitRate })
}

// RegisterPoolStats exposes resource pool state as scrape-time gauges.
func (m *Metrics) RegisterPoolStats(stats func() memory.PoolStats) {
	if m == nil || stats == nil {
		return
	}
	m.gaugeFunc("pool_resources_active", "Resources created and not discarded", func() float64 { return float64(stats().Active) })
	m.gaugeFunc("pool_resources_idle", "Resources waiting to be reused", func() float64 { return float64(stats().Idle) })
	m.gaugeFunc("pool_resources_in_use", "Resources checked out", func() float64 { return float64(stats().InUse) })
	m.gaugeFunc("pool_waiters", "Callers blocked in Acquire", func() float64 { return float64(stats().Waiting) })
}

func (m *Metrics) gaugeFunc(name, help string, fn func() float64) {
	m.factory.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Name:      name,
		Help:      help,
	}, fn)
}

// RecordHTTPRequest records one served request.
func (m *Metrics) RecordHTTPRequest(method, endpoint, status string, duration time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequestsTotal.WithLabelValues(method, endpoint, status).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// RecordOperation records an instrumented operation.
func (m *Metrics) RecordOperation(duration time.Duration, heapDelta int64, warned bool) {
	if m == nil {
		return
	}
	m.OperationDuration.Observe(duration.Seconds())
	if heapDelta > 0 {
		m.OperationMemoryDelta.Observe(float64(heapDelta))
	} else {
		m.OperationMemoryDelta.Observe(0)
	}
	if warned {
		m.OperationWarnings.Inc()
	}
}

// RecordHostMemory updates the host gauges from a sample. A failed sample zeroes the
// utilization so a stale value is not mistaken for a live one.
func (m *Metrics) RecordHostMemory(r memory.Reading) {
	if m == nil {
		return
	}
	if !r.Available {
		m.HostMemoryAvailable.Set(0)
		m.HostMemoryUsedPercent.Set(0)
		return
	}
	m.HostMemoryAvailable.Set(1)
	m.HostMemoryUsedPercent.Set(r.UsedPercent)
}

// RecordPressureClear counts one pressure-triggered cache clear.
func (m *Metrics) RecordPressureClear() {
	if m == nil {
		return
	}
	m.PressureClears.Inc()
}

func (m *Metrics) recordSignal(kind memory.SignalKind) {
	if m == nil {
		return
	}
	m.SignalsEmitted.WithLabelValues(string(kind)).Inc()
}

func (m *Metrics) recordDropped() {
	if m == nil {
		return
	}
	m.SignalsDropped.Inc()
}
