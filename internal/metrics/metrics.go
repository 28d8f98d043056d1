// Package metrics records per-run counters and writes them in the Prometheus
// text exposition format, for node_exporter's textfile collector or batch
// job scraping.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "bbox"

// Recorder holds the collectors for one CLI run on a private registry.
type Recorder struct {
	registry *prometheus.Registry

	pages    *prometheus.CounterVec
	warnings prometheus.Counter
	runs     *prometheus.CounterVec
	duration prometheus.Histogram
	bytes    *prometheus.GaugeVec
}

// New creates a Recorder with all collectors registered.
func New() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		pages: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "pages_processed_total",
				Help:      "Pages bordered, by rendering strategy",
			},
			[]string{"strategy"},
		),
		warnings: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "warnings_total",
				Help:      "Recoverable problems reported during processing",
			},
		),
		runs: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "runs_total",
				Help:      "Runs by result (success, error, cancelled)",
			},
			[]string{"result"},
		),
		duration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "run_duration_seconds",
				Help:      "Wall time of a run, from reading input to writing output",
				Buckets:   prometheus.DefBuckets,
			},
		),
		bytes: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "document_bytes",
				Help:      "Size of the input and output documents",
			},
			[]string{"direction"},
		),
	}
	r.registry.MustRegister(r.pages, r.warnings, r.runs, r.duration, r.bytes)
	return r
}

// AddPages counts n pages rendered with strategy.
func (r *Recorder) AddPages(strategy string, n int) {
	r.pages.WithLabelValues(strategy).Add(float64(n))
}

// AddWarnings counts n warnings.
func (r *Recorder) AddWarnings(n int) {
	r.warnings.Add(float64(n))
}

// SetSizes records input and output document sizes in bytes.
func (r *Recorder) SetSizes(in, out int64) {
	r.bytes.WithLabelValues("input").Set(float64(in))
	r.bytes.WithLabelValues("output").Set(float64(out))
}

// ObserveRun records the outcome and wall time of a run.
func (r *Recorder) ObserveRun(result string, d time.Duration) {
	r.runs.WithLabelValues(result).Inc()
	r.duration.Observe(d.Seconds())
}

// Registry exposes the underlying registry, e.g. for promhttp.
func (r *Recorder) Registry() *prometheus.Registry { return r.registry }

// WriteFile writes all metrics to path atomically.
func (r *Recorder) WriteFile(path string) error {
	return prometheus.WriteToTextfile(path, r.registry)
}
