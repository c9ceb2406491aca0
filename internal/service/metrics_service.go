package service

import (
	"fmt"
	"net/http"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/noah-isme/pawcare-grooming-api/internal/models"
)

// MetricsService owns the Prometheus registry and keeps running totals for the JSON snapshot.
type MetricsService struct {
	registry            *prometheus.Registry
	handler             http.Handler
	requestDuration     *prometheus.HistogramVec
	requestTotal        *prometheus.CounterVec
	cacheLatency        prometheus.Observer
	cacheWrite          prometheus.Observer
	cacheHitRatio       prometheus.Gauge
	cacheLookups        *prometheus.CounterVec
	dbQueryDuration     *prometheus.HistogramVec
	availabilityChecks  *prometheus.CounterVec
	availabilityDetails *prometheus.CounterVec
	bookings            *prometheus.CounterVec
	eventsPublished     *prometheus.CounterVec

	cacheHitCount        uint64
	cacheMissCount       uint64
	requestCount         uint64
	requestDurationTotal uint64
	dbQueryCount         uint64
	dbQueryDurationTotal uint64
	checkCount           uint64
	rejectionCount       uint64
}

// NewMetricsService registers the service collectors plus Go runtime collectors.
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
			Name:    "cache_latency_seconds",
			Help:    "Latency for cache lookups",
			Buckets: prometheus.DefBuckets,
		}),
		cacheWrite: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "cache_write_seconds",
			Help:    "Latency for cache writes",
			Buckets: prometheus.DefBuckets,
		}),
		cacheHitRatio: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "cache_hit_ratio",
			Help: "Ratio of cache hits to total cache lookups",
		}),
		cacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "cache_lookups_total",
			Help: "Cache lookups by outcome",
		}, []string{"result"}),
		dbQueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "Duration of database queries",
			Buckets: prometheus.DefBuckets,
		}, []string{"query"}),
		availabilityChecks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "availability_checks_total",
			Help: "Stylist availability verdicts by result",
		}, []string{"result"}),
		availabilityDetails: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "availability_conflicts_total",
			Help: "Conflict details emitted by type",
		}, []string{"type"}),
		bookings: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "appointment_bookings_total",
			Help: "Booking attempts by outcome",
		}, []string{"outcome"}),
		eventsPublished: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "appointment_events_total",
			Help: "Appointment lifecycle events by type and outcome",
		}, []string{"type", "outcome"}),
	}

	registry.MustRegister(
		m.requestDuration,
		m.requestTotal,
		m.cacheLatency.(prometheus.Collector),
		m.cacheWrite.(prometheus.Collector),
		m.cacheHitRatio,
		m.cacheLookups,
		m.dbQueryDuration,
		m.availabilityChecks,
		m.availabilityDetails,
		m.bookings,
		m.eventsPublished,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m.handler = promhttp.HandlerFor(registry, promhttp.HandlerOpts{Registry: registry})
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

// ObserveHTTPRequest records request metrics and aggregates simple stats for snapshots.
func (m *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	labelStatus := fmt.Sprintf("%d", status)
	m.requestDuration.WithLabelValues(method, path, labelStatus).Observe(duration.Seconds())
	m.requestTotal.WithLabelValues(method, path, labelStatus).Inc()
	atomic.AddUint64(&m.requestCount, 1)
	atomic.AddUint64(&m.requestDurationTotal, uint64(duration.Nanoseconds()))
}

// RecordCacheOperation records a cache lookup and refreshes the hit ratio.
func (m *MetricsService) RecordCacheOperation(hit bool, duration time.Duration) {
	if m == nil {
		return
	}
	m.cacheLatency.Observe(duration.Seconds())
	if hit {
		m.cacheLookups.WithLabelValues("hit").Inc()
		atomic.AddUint64(&m.cacheHitCount, 1)
	} else {
		m.cacheLookups.WithLabelValues("miss").Inc()
		atomic.AddUint64(&m.cacheMissCount, 1)
	}
	hits := atomic.LoadUint64(&m.cacheHitCount)
	total := hits + atomic.LoadUint64(&m.cacheMissCount)
	if total > 0 {
		m.cacheHitRatio.Set(float64(hits) / float64(total))
	}
}

// ObserveCacheWrite tracks the duration for cache write operations.
func (m *MetricsService) ObserveCacheWrite(duration time.Duration) {
	if m == nil {
		return
	}
	m.cacheWrite.Observe(duration.Seconds())
}

// ObserveDBQuery records database query timing.
func (m *MetricsService) ObserveDBQuery(label string, duration time.Duration) {
	if m == nil {
		return
	}
	m.dbQueryDuration.WithLabelValues(label).Observe(duration.Seconds())
	atomic.AddUint64(&m.dbQueryCount, 1)
	atomic.AddUint64(&m.dbQueryDurationTotal, uint64(duration.Nanoseconds()))
}

// RecordAvailability counts a verdict and every conflict detail it carries.
func (m *MetricsService) RecordAvailability(check models.StylistAvailabilityCheck) {
	if m == nil {
		return
	}
	atomic.AddUint64(&m.checkCount, 1)
	result := "available"
	if !check.IsAvailable {
		result = "unavailable"
		atomic.AddUint64(&m.rejectionCount, 1)
	}
	m.availabilityChecks.WithLabelValues(result).Inc()
	for _, detail := range check.Conflict.Conflicts {
		m.availabilityDetails.WithLabelValues(string(detail.Type)).Inc()
	}
}

// RecordBooking counts a booking attempt outcome such as booked or rejected.
func (m *MetricsService) RecordBooking(outcome string) {
	if m == nil {
		return
	}
	m.bookings.WithLabelValues(outcome).Inc()
}

// RecordEvent counts a lifecycle event publication.
func (m *MetricsService) RecordEvent(eventType models.AppointmentEventType, err error) {
	if m == nil {
		return
	}
	outcome := "queued"
	if err != nil {
		outcome = "failed"
	}
	m.eventsPublished.WithLabelValues(string(eventType), outcome).Inc()
}

// Snapshot returns aggregated metrics suitable for the JSON metrics endpoint.
func (m *MetricsService) Snapshot() models.SystemMetrics {
	if m == nil {
		return models.SystemMetrics{}
	}
	hits := atomic.LoadUint64(&m.cacheHitCount)
	misses := atomic.LoadUint64(&m.cacheMissCount)
	requests := atomic.LoadUint64(&m.requestCount)
	reqDuration := atomic.LoadUint64(&m.requestDurationTotal)
	dbCount := atomic.LoadUint64(&m.dbQueryCount)
	dbDuration := atomic.LoadUint64(&m.dbQueryDurationTotal)

	snapshot := models.SystemMetrics{
		CacheHits:              hits,
		CacheMisses:            misses,
		RequestsTotal:          requests,
		AvailabilityChecks:     atomic.LoadUint64(&m.checkCount),
		AvailabilityRejections: atomic.LoadUint64(&m.rejectionCount),
		DBQueryCount:           dbCount,
		Goroutines:             runtime.NumGoroutine(),
		GeneratedAt:            time.Now().UTC(),
	}
	if lookups := hits + misses; lookups > 0 {
		snapshot.CacheHitRatio = float64(hits) / float64(lookups)
	}
	if requests > 0 {
		snapshot.AverageRequestDurationMs = float64(reqDuration) / float64(requests) / float64(time.Millisecond)
	}
	if dbCount > 0 {
		snapshot.AverageDBQueryDurationMs = float64(dbDuration) / float64(dbCount) / float64(time.Millisecond)
	}
	return snapshot
}
