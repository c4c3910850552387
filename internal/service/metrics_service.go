package service

import (
	"net/http"
	"runtime"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/noah-isme/course-kiosk-api/internal/dto"
)

// MetricsService owns the Prometheus registry for the kiosk API and keeps a
// few counters in memory for the JSON summary.
type MetricsService struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	cacheLatency    prometheus.Histogram
	cacheWrite      prometheus.Histogram
	cacheHitRatio   prometheus.Gauge
	cacheHits       prometheus.Counter
	cacheMisses     prometheus.Counter
	catalogLoad     *prometheus.HistogramVec
	catalogClasses  prometheus.Gauge
	catalogVersion  prometheus.Gauge
	integrityErrors prometheus.Counter
	invalidRecords  *prometheus.CounterVec
	projections     *prometheus.CounterVec

	cacheHitCount        uint64
	cacheMissCount       uint64
	requestCount         uint64
	requestDurationTotal uint64
	projectionCount      uint64
	version              uint64
}

// NewMetricsService registers the kiosk collectors on a private registry.
func NewMetricsService() *MetricsService {
	registry := prometheus.NewRegistry()

	m := &MetricsService{
		registry: registry,
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path", "status"}),
		requestTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"method", "path", "status"}),
		cacheLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "kiosk_cache_latency_seconds",
			Help:    "Latency of projection cache lookups",
			Buckets: prometheus.DefBuckets,
		}),
		cacheWrite: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "kiosk_cache_write_seconds",
			Help:    "Latency of projection cache writes",
			Buckets: prometheus.DefBuckets,
		}),
		cacheHitRatio: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "kiosk_cache_hit_ratio",
			Help: "Ratio of cache hits to total cache lookups",
		}),
		cacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "kiosk_cache_hits_total",
			Help: "Total projection cache hits",
		}),
		cacheMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "kiosk_cache_misses_total",
			Help: "Total projection cache misses",
		}),
		catalogLoad: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "kiosk_catalog_load_seconds",
			Help:    "Duration of catalog loads by outcome",
			Buckets: prometheus.DefBuckets,
		}, []string{"source", "result"}),
		catalogClasses: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "kiosk_catalog_classes",
			Help: "Enriched classes in the active snapshot",
		}),
		catalogVersion: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "kiosk_catalog_version",
			Help: "Version of the active snapshot",
		}),
		integrityErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "kiosk_integrity_errors_total",
			Help: "Class records referencing unknown courses, teachers or rooms",
		}),
		invalidRecords: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "kiosk_invalid_records_total",
			Help: "Records rejected by validation, by kind",
		}, []string{"kind"}),
		projections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "kiosk_projections_total",
			Help: "Schedule projections computed, by kind",
		}, []string{"kind"}),
	}

	registry.MustRegister(
		m.requestDuration, m.requestTotal,
		m.cacheLatency, m.cacheWrite,
		m.cacheHitRatio, m.cacheHits, m.cacheMisses,
		m.catalogLoad, m.catalogClasses, m.catalogVersion,
		m.integrityErrors, m.invalidRecords, m.projections,
		collectors.NewGoCollector(),
	)
	m.handler = promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
	return m
}

// Handler exposes the Prometheus HTTP handler.
func (m *MetricsService) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// Registry returns the underlying registry.
func (m *MetricsService) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

func (m *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	labelStatus := strconv.Itoa(status)
	m.requestDuration.WithLabelValues(method, path, labelStatus).Observe(duration.Seconds())
	m.requestTotal.WithLabelValues(method, path, labelStatus).Inc()
	atomic.AddUint64(&m.requestCount, 1)
	atomic.AddUint64(&m.requestDurationTotal, uint64(duration.Nanoseconds()))
}

// RecordCacheOperation counts a lookup and refreshes the hit ratio.
func (m *MetricsService) RecordCacheOperation(hit bool, duration time.Duration) {
	if m == nil {
		return
	}
	m.cacheLatency.Observe(duration.Seconds())
	if hit {
		m.cacheHits.Inc()
		atomic.AddUint64(&m.cacheHitCount, 1)
	} else {
		m.cacheMisses.Inc()
		atomic.AddUint64(&m.cacheMissCount, 1)
	}
	hits := atomic.LoadUint64(&m.cacheHitCount)
	total := hits + atomic.LoadUint64(&m.cacheMissCount)
	if total > 0 {
		m.cacheHitRatio.Set(float64(hits) / float64(total))
	}
}

func (m *MetricsService) ObserveCacheWrite(duration time.Duration) {
	if m == nil {
		return
	}
	m.cacheWrite.Observe(duration.Seconds())
}

// ObserveCatalogLoad records a load attempt against source.
func (m *MetricsService) ObserveCatalogLoad(source string, ok bool, duration time.Duration) {
	if m == nil {
		return
	}
	result := "ok"
	if !ok {
		result = "error"
	}
	m.catalogLoad.WithLabelValues(source, result).Observe(duration.Seconds())
}

// SetCatalog publishes the size and version of the active snapshot.
func (m *MetricsService) SetCatalog(version uint64, classes int) {
	if m == nil {
		return
	}
	atomic.StoreUint64(&m.version, version)
	m.catalogVersion.Set(float64(version))
	m.catalogClasses.Set(float64(classes))
}

func (m *MetricsService) AddIntegrityErrors(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.integrityErrors.Add(float64(n))
}

func (m *MetricsService) AddInvalidRecord(kind string) {
	if m == nil {
		return
	}
	m.invalidRecords.WithLabelValues(kind).Inc()
}

// IncProjection counts one computed (not cached) projection of kind.
func (m *MetricsService) IncProjection(kind string) {
	if m == nil {
		return
	}
	m.projections.WithLabelValues(kind).Inc()
	atomic.AddUint64(&m.projectionCount, 1)
}

// Snapshot returns aggregated counters for the JSON summary endpoint.
func (m *MetricsService) Snapshot() dto.SystemMetrics {
	if m == nil {
		return dto.SystemMetrics{}
	}
	hits := atomic.LoadUint64(&m.cacheHitCount)
	misses := atomic.LoadUint64(&m.cacheMissCount)
	requests := atomic.LoadUint64(&m.requestCount)
	reqDuration := atomic.LoadUint64(&m.requestDurationTotal)

	var cacheRatio float64
	if lookups := hits + misses; lookups > 0 {
		cacheRatio = float64(hits) / float64(lookups)
	}
	var avgRequestMs float64
	if requests > 0 {
		avgRequestMs = float64(reqDuration) / float64(requests) / float64(time.Millisecond)
	}

	return dto.SystemMetrics{
		CacheHitRatio:            cacheRatio,
		CacheHits:                hits,
		CacheMisses:              misses,
		RequestsTotal:            requests,
		AverageRequestDurationMs: avgRequestMs,
		Projections:              atomic.LoadUint64(&m.projectionCount),
		CatalogVersion:           atomic.LoadUint64(&m.version),
		Goroutines:               runtime.NumGoroutine(),
		GeneratedAt:              time.Now().UTC(),
	}
}
