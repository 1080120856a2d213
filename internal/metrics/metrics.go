// Package metrics exposes Prometheus counters for the sweeper.
//
// A Metrics value owns its own registry so tests can create as many as they
// like without colliding on the global default registerer.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/JonMunkholm/sweeper/internal/core"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "sweeper"

// Metrics implements core.Recorder and serves HTTP request metrics.
type Metrics struct {
	registry *prometheus.Registry

	filesLoaded     *prometheus.CounterVec
	actions         *prometheus.CounterVec
	xpAwarded       prometheus.Counter
	exports         *prometheus.CounterVec
	sessionsExpired prometheus.Counter

	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec
}

var _ core.Recorder = (*Metrics)(nil)

// New creates and registers all collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		filesLoaded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "files_loaded_total",
			Help:      "Uploaded files by detected format and load result.",
		}, []string{"format", "result"}),
		actions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "actions_total",
			Help:      "File actions by name and result.",
		}, []string{"action", "result"}),
		xpAwarded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "xp_awarded_total",
			Help:      "Reward points committed across all sessions.",
		}),
		exports: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "exports_total",
			Help:      "Converted files served for download by format.",
		}, []string{"format"}),
		sessionsExpired: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sessions_expired_total",
			Help:      "Sessions removed by the idle sweeper.",
		}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route pattern and status.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route pattern.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.filesLoaded,
		m.actions,
		m.xpAwarded,
		m.exports,
		m.sessionsExpired,
		m.httpRequests,
		m.httpDuration,
	)
	return m
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// FileLoaded counts one uploaded file.
func (m *Metrics) FileLoaded(format string, err error) {
	if format == "" {
		format = "unknown"
	}
	m.filesLoaded.WithLabelValues(format, result(err)).Inc()
}

// ActionApplied counts one action and the points it awarded.
func (m *Metrics) ActionApplied(action core.Action, points int, err error) {
	m.actions.WithLabelValues(string(action), result(err)).Inc()
	if err == nil && points > 0 {
		m.xpAwarded.Add(float64(points))
	}
}

// SessionsExpired counts sessions removed by a sweep.
func (m *Metrics) SessionsExpired(n int) {
	if n > 0 {
		m.sessionsExpired.Add(float64(n))
	}
}

// ExportServed counts a converted file written to a client.
func (m *Metrics) ExportServed(format string) {
	m.exports.WithLabelValues(format).Inc()
}

// TrackSessions exposes the live session count as a gauge.
func (m *Metrics) TrackSessions(count func() int) {
	m.registry.MustRegister(prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "sessions_live",
		Help:      "Sessions currently held in memory.",
	}, func() float64 { return float64(count()) }))
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Middleware records request counts and latency labelled by chi route pattern.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if p := rctx.RoutePattern(); p != "" {
				route = p
			}
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		m.httpRequests.WithLabelValues(r.Method, route, strconv.Itoa(status)).Inc()
		m.httpDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}

func result(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
