package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics bundles the gateway's Prometheus collectors. Each server carries
// its own registry so embedding hosts (and tests) can run several gateways
// in one process.
type Metrics struct {
	registry    *prometheus.Registry
	requests    *prometheus.CounterVec
	rateLimited *prometheus.CounterVec
	duration    *prometheus.HistogramVec
}

// NewMetrics creates and registers the gateway collectors.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gatepost_requests_total",
				Help: "Total number of requests handled, by route, method and status code",
			},
			[]string{"route", "method", "code"},
		),
		rateLimited: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gatepost_rate_limited_total",
				Help: "Total number of requests rejected by rate limiting",
			},
			[]string{"route"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name: "gatepost_request_duration_seconds",
				Help: "Duration of handled requests",
			},
			[]string{"route"},
		),
	}
	m.registry.MustRegister(m.requests, m.rateLimited, m.duration)
	return m
}

// Handler serves the /metrics endpoint for this gateway's registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) observe(route, method string, code int, elapsed time.Duration) {
	m.requests.WithLabelValues(route, method, strconv.Itoa(code)).Inc()
	m.duration.WithLabelValues(route).Observe(elapsed.Seconds())
}

func (m *Metrics) limited(route string) {
	m.rateLimited.WithLabelValues(route).Inc()
}
