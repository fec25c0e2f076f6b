// Package metrics holds the Prometheus collectors of the routing engine.
package metrics

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Pass names used as the "pass" label.
const (
	PassSequence    = "sequence"
	PassDedup       = "dedup"
	PassReconcile   = "reconcile"
	PassMaterialize = "materialize"
	PassRestore     = "restore"
	PassAssign      = "assign"
)

// Pass outcomes.
const (
	OutcomeOK      = "ok"
	OutcomePartial = "partial"
	OutcomeError   = "error"
)

var (
	// Registry is the dedicated registry exposed on /metrics.
	Registry = prometheus.NewRegistry()

	// HTTPRequests counts requests by method, route and status.
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "http_requests_total", Help: "Total HTTP requests."},
		[]string{"method", "path", "status"},
	)
	// HTTPDuration records request durations in seconds.
	HTTPDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	// PassRuns counts engine passes (sequence, dedup, reconcile, ...) by outcome.
	PassRuns = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "route_pass_runs_total", Help: "Routing passes by pass and outcome."},
		[]string{"pass", "outcome"},
	)
	// PassDuration records pass durations in seconds.
	PassDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "route_pass_duration_seconds",
			Help:    "Routing pass duration in seconds.",
			Buckets: []float64{.01, .05, .1, .25, .5, 1, 2.5, 5, 10, 30},
		},
		[]string{"pass"},
	)
	// StopsRemoved counts duplicate stops removed by deduplication.
	StopsRemoved = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "route_dedup_stops_removed_total", Help: "Duplicate stops removed."},
	)
	// StopsSequenced counts stops ordered by sequencing passes.
	StopsSequenced = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "route_stops_sequenced_total", Help: "Stops ordered by sequencing."},
	)
	// AssignStepFailures counts advisory assignment steps that failed after the client was saved.
	AssignStepFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "route_assign_step_failures_total", Help: "Failed assignment follow-up steps."},
		[]string{"step"},
	)
	// PublishFailures counts route runs that could not be published.
	PublishFailures = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "route_run_publish_failures_total", Help: "Route runs not published."},
	)
)

var regOnce sync.Once

// RegisterDefault registers every collector on Registry once.
func RegisterDefault() {
	regOnce.Do(func() {
		Registry.MustRegister(
			HTTPRequests,
			HTTPDuration,
			PassRuns,
			PassDuration,
			StopsRemoved,
			StopsSequenced,
			AssignStepFailures,
			PublishFailures,
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	})
}

// Handler serves Registry in the Prometheus exposition format.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{Registry: Registry})
}

// ObservePass records one pass. partial marks a pass that finished with warnings.
func ObservePass(pass string, started time.Time, partial bool, err error) {
	outcome := OutcomeOK
	switch {
	case err != nil:
		outcome = OutcomeError
	case partial:
		outcome = OutcomePartial
	}
	PassRuns.WithLabelValues(pass, outcome).Inc()
	PassDuration.WithLabelValues(pass).Observe(time.Since(started).Seconds())
}

// EchoMiddleware records HTTPRequests and HTTPDuration using the route template as path.
func EchoMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)

			status := c.Response().Status
			if err != nil {
				if he, ok := err.(*echo.HTTPError); ok {
					status = he.Code
				} else if status < http.StatusBadRequest {
					status = http.StatusInternalServerError
				}
			}
			path := c.Path()
			if path == "" {
				path = "unmatched"
			}
			labels := []string{c.Request().Method, path, strconv.Itoa(status)}
			HTTPRequests.WithLabelValues(labels...).Inc()
			HTTPDuration.WithLabelValues(labels...).Observe(time.Since(start).Seconds())
			return err
		}
	}
}
