package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Lookup outcomes
const (
	LookupFound    = "found"
	LookupNotFound = "not_found"
	LookupError    = "error"
)

// Metrics holds the service collectors on a private registry
type Metrics struct {
	registry *prometheus.Registry

	ReceiptsProcessed *prometheus.CounterVec
	ReceiptPoints     prometheus.Histogram
	RuleTriggered     *prometheus.CounterVec
	Lookups           *prometheus.CounterVec

	HTTPRequests        *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
}

// New creates the collectors and registers them with a fresh registry
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		ReceiptsProcessed: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "receipts_processed_total",
				Help: "Total number of receipts submitted for scoring",
			},
			[]string{"status"},
		),
		ReceiptPoints: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "receipt_points",
				Help:    "Distribution of points awarded per receipt",
				Buckets: []float64{0, 10, 25, 50, 75, 100, 150, 250, 500, 1000},
			},
		),
		RuleTriggered: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "receipt_rule_triggered_total",
				Help: "Number of receipts on which each scoring rule awarded points",
			},
			[]string{"rule"},
		),
		Lookups: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "receipt_points_lookups_total",
				Help: "Total number of points lookups by outcome",
			},
			[]string{"result"},
		),
		HTTPRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "Duration of HTTP requests",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2, 5},
			},
			[]string{"method", "route"},
		),
	}
}

// Registry exposes the underlying registry, mainly for tests
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
