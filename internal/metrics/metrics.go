package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics bundles the application's Prometheus collectors. Each
// instance owns its registry so tests can construct metrics without
// colliding on the default global registry.
type Metrics struct {
	registry *prometheus.Registry

	RequestsTotal    *prometheus.CounterVec
	RequestDuration  *prometheus.HistogramVec
	ComparisonsTotal prometheus.Counter
	GoodDealsTotal   prometheus.Counter
}

// New creates and registers all application collectors.
func New() *Metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,
		RequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "pricescout_http_requests_total",
			Help: "Total number of HTTP requests by method, path and status.",
		}, []string{"method", "path", "status"}),
		RequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "pricescout_http_request_duration_seconds",
			Help:    "HTTP request duration by method and path.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path"}),
		ComparisonsTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "pricescout_comparisons_total",
			Help: "Total number of price comparisons computed.",
		}),
		GoodDealsTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "pricescout_good_deals_total",
			Help: "Comparisons where the current item was the better deal.",
		}),
	}
}

// Handler returns the /metrics endpoint handler for this registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
