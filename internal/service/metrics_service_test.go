package service

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/pawcare-grooming-api/internal/models"
)

func TestMetricsServiceSnapshot(t *testing.T) {
	m := NewMetricsService()
	m.ObserveHTTPRequest(http.MethodGet, "/api/v1/stylists/:id", http.StatusOK, 20*time.Millisecond)
	m.ObserveHTTPRequest(http.MethodGet, "/api/v1/stylists/:id", http.StatusOK, 40*time.Millisecond)
	m.RecordCacheOperation(true, time.Millisecond)
	m.RecordCacheOperation(false, time.Millisecond)
	m.RecordCacheOperation(true, time.Millisecond)
	m.ObserveDBQuery("appointments.by_stylist_date", 10*time.Millisecond)
	m.RecordAvailability(models.StylistAvailabilityCheck{IsAvailable: true})
	m.RecordAvailability(models.StylistAvailabilityCheck{
		Conflict: models.StylistConflict{HasConflict: true, Conflicts: []models.ConflictDetail{{Type: models.ConflictOverlap}, {Type: models.ConflictSkill}}},
	})

	snapshot := m.Snapshot()
	assert.EqualValues(t, 2, snapshot.RequestsTotal)
	assert.InDelta(t, 30.0, snapshot.AverageRequestDurationMs, 0.001)
	assert.EqualValues(t, 2, snapshot.CacheHits)
	assert.EqualValues(t, 1, snapshot.CacheMisses)
	assert.InDelta(t, 2.0/3.0, snapshot.CacheHitRatio, 0.0001)
	assert.EqualValues(t, 1, snapshot.DBQueryCount)
	assert.EqualValues(t, 2, snapshot.AvailabilityChecks)
	assert.EqualValues(t, 1, snapshot.AvailabilityRejections)
	assert.Positive(t, snapshot.Goroutines)
}

func TestMetricsServiceHandlerExposesCounters(t *testing.T) {
	m := NewMetricsService()
	m.RecordAvailability(models.StylistAvailabilityCheck{
		Conflict: models.StylistConflict{HasConflict: true, Conflicts: []models.ConflictDetail{{Type: models.ConflictCapacity}}},
	})
	m.RecordBooking("rejected")

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.True(t, strings.Contains(body, `availability_checks_total{result="unavailable"} 1`))
	assert.True(t, strings.Contains(body, `availability_conflicts_total{type="capacity"} 1`))
	assert.True(t, strings.Contains(body, `appointment_bookings_total{outcome="rejected"} 1`))
}

func TestMetricsServiceNilSafe(t *testing.T) {
	var m *MetricsService
	m.ObserveHTTPRequest(http.MethodGet, "/", http.StatusOK, time.Millisecond)
	m.RecordAvailability(models.StylistAvailabilityCheck{})
	assert.Equal(t, models.SystemMetrics{}, m.Snapshot())

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
