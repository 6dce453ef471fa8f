package bench

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/anisomesh/anisomesh/engine"
	"github.com/anisomesh/anisomesh/evaluate"
)

// Metrics is the Prometheus instrumentation of the Benchmark/Plot
// component (SPEC_FULL.md §B): per-implementation pass-timing histograms
// and min/harmonic-mean quality gauges, plus a degenerate-element
// counter. Implementation is the only label; a run only ever drives one
// mesh at a time so there is nothing else to slice by.
type Metrics struct {
	passDuration      *prometheus.HistogramVec
	minQuality        *prometheus.GaugeVec
	avgQuality        *prometheus.GaugeVec
	harmonicQuality   *prometheus.GaugeVec
	degenerateElems   *prometheus.CounterVec
}

// NewMetrics builds and registers the collectors against reg. Pass a
// fresh prometheus.NewRegistry() in tests to avoid colliding with the
// global default registry.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		passDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "anisomesh",
			Subsystem: "bench",
			Name:      "pass_duration_seconds",
			Help:      "Wall-clock duration of one global optimization pass.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"implementation"}),
		minQuality: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "anisomesh",
			Subsystem: "bench",
			Name:      "minimum_quality",
			Help:      "Minimum per-element quality of the most recent pass.",
		}, []string{"implementation"}),
		avgQuality: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "anisomesh",
			Subsystem: "bench",
			Name:      "average_quality",
			Help:      "Arithmetic-mean per-element quality of the most recent pass.",
		}, []string{"implementation"}),
		harmonicQuality: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "anisomesh",
			Subsystem: "bench",
			Name:      "harmonic_mean_quality",
			Help:      "Harmonic-mean per-element quality of the most recent pass.",
		}, []string{"implementation"}),
		degenerateElems: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "anisomesh",
			Subsystem: "bench",
			Name:      "degenerate_elements_total",
			Help:      "Cumulative count of zero-volume/zero-area elements skipped.",
		}, []string{"implementation"}),
	}
	reg.MustRegister(m.passDuration, m.minQuality, m.avgQuality, m.harmonicQuality, m.degenerateElems)
	return m
}

// Observe records one pass's timing and quality report, and adds stats's
// degenerate counts (if stats is non-nil) to the running total.
func (m *Metrics) Observe(impl engine.Implementation, report evaluate.Report, elapsed time.Duration, stats *evaluate.Stats) {
	label := prometheus.Labels{"implementation": impl.String()}
	m.passDuration.With(label).Observe(elapsed.Seconds())
	m.minQuality.With(label).Set(report.MinimumQuality)
	m.avgQuality.With(label).Set(report.AverageQuality)
	m.harmonicQuality.With(label).Set(report.HarmonicMean)
	if stats != nil {
		if n := stats.Total(); n > 0 {
			m.degenerateElems.With(label).Add(float64(n))
		}
	}
}
