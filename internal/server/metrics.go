package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the server's Prometheus collectors on a private registry.
type Metrics struct {
	registry        *prometheus.Registry
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	builds          *prometheus.CounterVec
	buildDuration   prometheus.Histogram
	providers       prometheus.Gauge
	projects        prometheus.Gauge
}

func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "housingdash_http_requests_total",
			Help: "Total count of HTTP requests processed by route and status.",
		}, []string{"route", "status"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "housingdash_http_request_duration_seconds",
			Help:    "Histogram of HTTP request durations by route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"}),
		builds: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "housingdash_report_builds_total",
			Help: "Total report generations by result.",
		}, []string{"result"}),
		buildDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "housingdash_report_build_duration_seconds",
			Help:    "Histogram of report generation durations.",
			Buckets: prometheus.ExponentialBuckets(0.0005, 2, 12),
		}),
		providers: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "housingdash_providers",
			Help: "Providers in the current report.",
		}),
		projects: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "housingdash_active_projects",
			Help: "Generated projects in the current report.",
		}),
	}

	m.registry.MustRegister(
		m.requestsTotal,
		m.requestDuration,
		m.builds,
		m.buildDuration,
		m.providers,
		m.projects,
	)
	return m
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(status int) {
	s.status = status
	s.ResponseWriter.WriteHeader(status)
}

// Middleware records request counts and durations labelled by chi route
// pattern, so path parameters do not create new series.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()

		next.ServeHTTP(recorder, r)

		route := "unmatched"
		if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
			route = rc.RoutePattern()
		}
		m.requestsTotal.WithLabelValues(route, strconv.Itoa(recorder.status)).Inc()
		m.requestDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	})
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Build records one report generation.
func (m *Metrics) Build(duration time.Duration, err error) {
	if m == nil {
		return
	}
	m.buildDuration.Observe(duration.Seconds())
	if err != nil {
		m.builds.WithLabelValues("error").Inc()
		return
	}
	m.builds.WithLabelValues("ok").Inc()
}

// Current records the size of the report now being served.
func (m *Metrics) Current(providers, projects int) {
	if m == nil {
		return
	}
	m.providers.Set(float64(providers))
	m.projects.Set(float64(projects))
}
