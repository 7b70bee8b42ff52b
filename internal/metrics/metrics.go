// Package metrics provides Prometheus metrics for the kiosk.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"toga/internal/domain"
)

const namespace = "toga"

// Metrics holds all Prometheus metrics of the kiosk
type Metrics struct {
	registry *prometheus.Registry

	// Backend attempt metrics
	AttemptDuration *prometheus.HistogramVec
	AttemptErrors   *prometheus.CounterVec
	AttemptsTotal   *prometheus.CounterVec

	// Kiosk session metrics
	SessionsActive prometheus.Gauge
	SessionsTotal  prometheus.Counter
}

// New creates the metrics on their own registry, so several instances can
// coexist (tests, one per process)
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,

		AttemptDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "attempt_duration_seconds",
			Help:      "Duration of backend calls in seconds",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 20, 40, 60, 90, 120},
		}, []string{"kind"}),
		AttemptErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "attempt_errors_total",
			Help:      "Total number of failed backend calls by error kind",
		}, []string{"kind", "error_kind"}),
		AttemptsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "attempts_total",
			Help:      "Total number of backend calls by outcome",
		}, []string{"kind", "outcome"}),

		SessionsActive: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "sessions_active",
			Help:      "Number of kiosk sessions currently open",
		}),
		SessionsTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sessions_total",
			Help:      "Total number of kiosk sessions opened",
		}),
	}
}

// RecordAttempt records one finished backend call
func (m *Metrics) RecordAttempt(a domain.Attempt) {
	kind := string(a.Kind)
	m.AttemptsTotal.WithLabelValues(kind, string(a.Outcome)).Inc()
	m.AttemptDuration.WithLabelValues(kind).Observe(a.Duration.Seconds())
	if a.ErrorKind != domain.KindNone {
		m.AttemptErrors.WithLabelValues(kind, string(a.ErrorKind)).Inc()
	}
}

// SessionStarted records a kiosk session being opened
func (m *Metrics) SessionStarted() {
	m.SessionsTotal.Inc()
	m.SessionsActive.Inc()
}

// SessionEnded records a kiosk session being closed
func (m *Metrics) SessionEnded() {
	m.SessionsActive.Dec()
}

// Registry exposes the underlying registry
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the metrics in the Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
