package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	targetsTotal     *prometheus.CounterVec
	errorsTotal      *prometheus.CounterVec
	significantPeaks prometheus.Histogram
	harmonicsTotal   *prometheus.CounterVec
	latency          *prometheus.HistogramVec
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		targetsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "starspin_targets_total",
				Help: "Total number of targets processed, by outcome",
			},
			[]string{"outcome"},
		),
		errorsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "starspin_errors_total",
				Help: "Total number of errors encountered",
			},
			[]string{"type"},
		),
		significantPeaks: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "starspin_significant_peaks",
				Help:    "Number of significant periodogram peaks per target",
				Buckets: []float64{0, 1, 2, 3, 5, 10, 20},
			},
		),
		harmonicsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "starspin_harmonics_total",
				Help: "Harmonic classifications, by type",
			},
			[]string{"type"},
		),
		latency: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "starspin_operation_duration_seconds",
				Help:    "Duration of operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
	}
}

// RecordTarget records a processed target with its outcome.
func (r *Recorder) RecordTarget(outcome string) {
	r.targetsTotal.WithLabelValues(outcome).Inc()
}

// RecordError records an error occurrence.
func (r *Recorder) RecordError(kind string) {
	r.errorsTotal.WithLabelValues(kind).Inc()
}

// RecordSignificantPeaks records how many peaks survived the significance cut.
func (r *Recorder) RecordSignificantPeaks(n int) {
	r.significantPeaks.Observe(float64(n))
}

// RecordHarmonic records a harmonic classification outcome.
func (r *Recorder) RecordHarmonic(kind string) {
	r.harmonicsTotal.WithLabelValues(kind).Inc()
}

// RecordLatency records operation latency in seconds.
func (r *Recorder) RecordLatency(op string, seconds float64) {
	r.latency.WithLabelValues(op).Observe(seconds)
}
