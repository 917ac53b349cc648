package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// gallery renderer.
type Metrics struct {
	RendersTotal   *prometheus.CounterVec // labels: entry, outcome={success,error}
	RenderDuration *prometheus.HistogramVec
	GalleryReady   prometheus.Gauge
	DatasetOpens   *prometheus.CounterVec // labels: file, outcome={success,error}
}

// NewMetrics creates and registers all gallery metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.RendersTotal,
		m.RenderDuration,
		m.GalleryReady,
		m.DatasetOpens,
	)
	return m
}

// NewMetricsForTesting creates Metrics without registering them, to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		RendersTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "gallery",
			Name:      "renders_total",
			Help:      "Completed plot renders by entry and outcome.",
		}, []string{"entry", "outcome"}),
		RenderDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "gallery",
			Name:      "render_duration_seconds",
			Help:      "Duration of a complete read-compute-draw cycle.",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		}, []string{"entry"}),
		GalleryReady: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "gallery",
			Name:      "ready",
			Help:      "1 when input files have been verified, 0 otherwise.",
		}),
		DatasetOpens: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "gallery",
			Name:      "dataset_opens_total",
			Help:      "NetCDF dataset opens by file and outcome.",
		}, []string{"file", "outcome"}),
	}
}
