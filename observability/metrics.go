package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters and histograms for the dashboards.
type Metrics struct {
	Uploads     prometheus.Counter
	ManualLoads prometheus.Counter
	Exports     prometheus.Counter
	ParseErrors prometheus.Counter

	// Forecast fetch metrics.
	FetchRequests *prometheus.CounterVec // labels: kind={uv_index,weather}, outcome={success,error}
	FetchDuration *prometheus.HistogramVec
}

// NewMetrics creates and registers all dashboard metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.Uploads,
		m.ManualLoads,
		m.Exports,
		m.ParseErrors,
		m.FetchRequests,
		m.FetchDuration,
	)
	return m
}

// NewMetricsForTesting creates Metrics without registering them, avoiding
// "already registered" panics across tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		Uploads: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "uvboard",
			Name:      "uploads_total",
			Help:      "Total CSV uploads accepted.",
		}),
		ManualLoads: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "uvboard",
			Name:      "manual_loads_total",
			Help:      "Total manual data loads accepted.",
		}),
		Exports: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "uvboard",
			Name:      "exports_total",
			Help:      "Total filtered CSV exports served.",
		}),
		ParseErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "uvboard",
			Name:      "parse_errors_total",
			Help:      "Total rejected loads across manual and upload input.",
		}),
		FetchRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "uvboard",
			Name:      "fetch_requests_total",
			Help:      "Forecast API requests by kind and outcome.",
		}, []string{"kind", "outcome"}),
		FetchDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "uvboard",
			Name:      "fetch_duration_seconds",
			Help:      "Forecast API request duration in seconds.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"kind"}),
	}
}
