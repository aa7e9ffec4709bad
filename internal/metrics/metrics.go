// Package metrics exports Prometheus metrics for runs, scraper search
// attempts and the HTTP entry point.
package metrics

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/custodia-labs/bindays/internal/core/domain"
	"github.com/custodia-labs/bindays/internal/core/ports/driven"
)

// Ensure Recorder implements the interfaces.
var (
	_ driven.RunRecorder    = Recorder{}
	_ driven.SearchRecorder = Recorder{}
)

var (
	runsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bindays_runs_total",
		Help: "Total number of runs by outcome.",
	}, []string{"outcome"})

	eventsCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bindays_calendar_events_created_total",
		Help: "Total number of calendar reminders created.",
	})

	lastSuccess = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "bindays_last_success_timestamp_seconds",
		Help: "Unix time of the last successful run.",
	})

	searchAttemptsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bindays_search_attempts_total",
		Help: "Total number of address search attempts by result.",
	}, []string{"result"})

	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bindays_http_requests_total",
		Help: "Total number of HTTP requests processed.",
	}, []string{"method", "route", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "bindays_http_request_duration_seconds",
		Help:    "Histogram of latencies for HTTP requests.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})
)

// Recorder records runs and search attempts into the default registry.
type Recorder struct{}

// NewRecorder returns a recorder.
func NewRecorder() Recorder {
	return Recorder{}
}

// RecordRun counts a run outcome and the reminders it created.
func (Recorder) RecordRun(outcome string, eventsCreated int) {
	runsTotal.WithLabelValues(outcome).Inc()
	if eventsCreated > 0 {
		eventsCreatedTotal.Add(float64(eventsCreated))
	}
	if outcome == domain.OutcomeSuccess {
		lastSuccess.SetToCurrentTime()
	}
}

// RecordSearchAttempt counts a search attempt.
func (Recorder) RecordSearchAttempt(found bool) {
	result := "empty"
	if found {
		result = "found"
	}
	searchAttemptsTotal.WithLabelValues(result).Inc()
}

// Middleware records request metrics labelled by chi route pattern.
func Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			// The pattern is only complete once routing has finished.
			route := routePattern(r)
			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}

			httpRequestsTotal.WithLabelValues(r.Method, route, strconv.Itoa(status)).Inc()
			httpRequestDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
		})
	}
}

// Handler exposes the Prometheus metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}

func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if pattern := strings.TrimSpace(rctx.RoutePattern()); pattern != "" {
			return pattern
		}
	}
	return "unmatched"
}
