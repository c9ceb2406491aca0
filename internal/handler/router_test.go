package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/pawcare-grooming-api/internal/service"
	"github.com/noah-isme/pawcare-grooming-api/pkg/config"
)

func newTestRouter(checks map[string]ReadinessCheck) (*service.MetricsService, http.Handler) {
	cfg := &config.Config{Env: config.EnvProduction, APIPrefix: "/api/v1", Metrics: config.MetricsConfig{Enabled: true}}
	metrics := service.NewMetricsService()
	r := NewRouter(cfg, zap.NewNop(), metrics, Handlers{
		Availability: NewAvailabilityHandler(&availabilityServiceMock{}),
		Appointments: NewAppointmentHandler(&appointmentServiceMock{}),
		Stylists:     NewStylistHandler(&stylistServiceMock{}),
		Settings:     NewFacilitySettingsHandler(nil),
		Export:       NewExportHandler(&exportServiceMock{}),
		System:       NewMetricsHandler(metrics, checks),
	})
	return metrics, r
}

func TestRouterServesRoutes(t *testing.T) {
	metrics, r := newTestRouter(nil)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/appointments/appt-7", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/nowhere", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/docs/index.html", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "http_requests_total")
	assert.EqualValues(t, 3, metrics.Snapshot().RequestsTotal)
}

func TestRouterReadiness(t *testing.T) {
	_, r := newTestRouter(map[string]ReadinessCheck{
		"postgres": func(ctx context.Context) error { return nil },
		"redis":    func(ctx context.Context) error { return errors.New("dial tcp: refused") },
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ready", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), `"postgres":"ok"`)
	assert.Contains(t, w.Body.String(), "degraded")

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}
