package metrics_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"routeengine/internal/metrics"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObservePass_CountsByOutcome(t *testing.T) {
	metrics.RegisterDefault()
	before := map[string]float64{
		metrics.OutcomeOK:      testutil.ToFloat64(metrics.PassRuns.WithLabelValues("test-pass", metrics.OutcomeOK)),
		metrics.OutcomePartial: testutil.ToFloat64(metrics.PassRuns.WithLabelValues("test-pass", metrics.OutcomePartial)),
		metrics.OutcomeError:   testutil.ToFloat64(metrics.PassRuns.WithLabelValues("test-pass", metrics.OutcomeError)),
	}

	metrics.ObservePass("test-pass", time.Now(), false, nil)
	metrics.ObservePass("test-pass", time.Now(), true, nil)
	metrics.ObservePass("test-pass", time.Now(), true, errors.New("boom"))

	for outcome, n := range before {
		assert.InDelta(t, n+1, testutil.ToFloat64(metrics.PassRuns.WithLabelValues("test-pass", outcome)), 0, outcome)
	}
}

func TestEchoMiddleware_RecordsRouteTemplate(t *testing.T) {
	metrics.RegisterDefault()
	e := echo.New()
	e.Use(metrics.EchoMiddleware())
	e.GET("/api/v1/things/:id", func(c echo.Context) error {
		return c.NoContent(http.StatusNoContent)
	})
	counter := metrics.HTTPRequests.WithLabelValues(http.MethodGet, "/api/v1/things/:id", "204")
	before := testutil.ToFloat64(counter)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/things/42", nil))

	require.Equal(t, http.StatusNoContent, rec.Code)
	assert.InDelta(t, before+1, testutil.ToFloat64(counter), 0)
}

func TestHandler_ExposesRegisteredCollectors(t *testing.T) {
	metrics.RegisterDefault()
	metrics.StopsRemoved.Add(0)

	rec := httptest.NewRecorder()
	metrics.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "route_dedup_stops_removed_total")
}
