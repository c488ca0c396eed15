// Package metrics exposes prometheus counters for requests and use case outcomes.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	UseCaseOutcomes     *prometheus.CounterVec

	registry *prometheus.Registry
}

// New registers every metric on registry. A nil registry gets a fresh one.
func New(registry *prometheus.Registry) *Metrics {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}
	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "plazoleta_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "plazoleta_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
		UseCaseOutcomes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "plazoleta_usecase_outcomes_total",
				Help: "Authorization and validation outcomes per use case",
			},
			[]string{"operation", "outcome"},
		),
		registry: registry,
	}
	registry.MustRegister(m.HTTPRequestsTotal, m.HTTPRequestDuration, m.UseCaseOutcomes)
	return m
}

// RecordOutcome counts one use case result. outcome is "ok" or an error kind.
func (m *Metrics) RecordOutcome(operation, outcome string) {
	if m == nil {
		return
	}
	m.UseCaseOutcomes.WithLabelValues(operation, outcome).Inc()
}

// Handler serves the registry in the prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
