package server

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/fjvico/homepage/internal/loader"
)

// Metrics holds the collectors for one server. They are registered on
// their own registry so tests can build several servers.
type Metrics struct {
	Registry *prometheus.Registry

	httpRequests   *prometheus.CounterVec
	httpDuration   *prometheus.HistogramVec
	languageLoads  *prometheus.CounterVec
	renderDuration prometheus.Histogram
}

func NewMetrics() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		httpRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "homepage",
				Subsystem: "http",
				Name:      "requests_total",
				Help:      "Total HTTP requests.",
			},
			[]string{"method", "path", "status"},
		),
		httpDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "homepage",
				Subsystem: "http",
				Name:      "request_duration_seconds",
				Help:      "HTTP request duration in seconds.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "path", "status"},
		),
		languageLoads: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "homepage",
				Subsystem: "content",
				Name:      "language_loads_total",
				Help:      "Language file loads by code and outcome.",
			},
			[]string{"lang", "outcome"},
		),
		renderDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: "homepage",
				Subsystem: "content",
				Name:      "render_duration_seconds",
				Help:      "Time to fetch, apply and render one page.",
				Buckets:   prometheus.DefBuckets,
			},
		),
	}
	m.Registry.MustRegister(
		m.httpRequests,
		m.httpDuration,
		m.languageLoads,
		m.renderDuration,
		collectors.NewGoCollector(),
	)
	return m
}

// ObserveLoad is a loader observer.
func (m *Metrics) ObserveLoad(res loader.Result) {
	m.languageLoads.WithLabelValues(res.Code, res.Outcome.String()).Inc()
}

func (m *Metrics) observeRender(d time.Duration) {
	m.renderDuration.Observe(d.Seconds())
}

func (m *Metrics) observeHTTP(method, path string, status int, d time.Duration) {
	labels := []string{method, path, strconv.Itoa(status)}
	m.httpRequests.WithLabelValues(labels...).Inc()
	m.httpDuration.WithLabelValues(labels...).Observe(d.Seconds())
}
