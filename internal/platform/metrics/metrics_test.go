package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Observe(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.ObserveSlotConflict("create")
	m.ObserveSlotConflict("create")
	m.ObserveSlotConflict("update")
	m.ObserveAppointmentWrite("create")
	m.ObserveMailSent("sendgrid", nil)
	m.ObserveMailSent("sendgrid", errors.New("boom"))
	m.ObservePanic()

	assert.Equal(t, 2.0, testutil.ToFloat64(m.slotConflicts.WithLabelValues("create")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.slotConflicts.WithLabelValues("update")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.bookings.WithLabelValues("create")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.mailSent.WithLabelValues("sendgrid", "error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.panics))
}

func TestMetrics_NilSafe(t *testing.T) {
	var m *Metrics
	m.ObserveSlotConflict("create")
	m.ObserveAppointmentWrite("update")
	m.ObserveMailSent("fake", nil)
	m.ObservePanic()

	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	require.NoError(t, m.Middleware()(func(c echo.Context) error { return nil })(c))
}

func TestMetrics_MiddlewareAndHandler(t *testing.T) {
	m := New(nil)

	e := echo.New()
	e.Use(m.Middleware())
	e.GET("/api/v1/appointments", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]any{"data": []any{}})
	})
	e.GET("/api/v1/conflict", func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusConflict, "taken")
	})
	e.GET("/metrics", m.Handler())

	for _, path := range []string{"/api/v1/appointments", "/api/v1/appointments", "/api/v1/conflict"} {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	}

	assert.Equal(t, 2.0, testutil.ToFloat64(m.requestsTotal.WithLabelValues("GET", "/api/v1/appointments", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requestsTotal.WithLabelValues("GET", "/api/v1/conflict", "409")))

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.True(t, strings.Contains(body, "dentaldesk_http_requests_total"))
	assert.True(t, strings.Contains(body, "go_goroutines"))
}
