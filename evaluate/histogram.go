package evaluate

import (
	"github.com/anisomesh/anisomesh/engine"
	"github.com/anisomesh/anisomesh/measure"
	"github.com/anisomesh/anisomesh/mesh"
	"github.com/anisomesh/anisomesh/metric"
)

// DefaultHistogramBuckets is the fixed bucket count over [0,1] used by the
// benchmark plots (spec.md §5).
const DefaultHistogramBuckets = 20

// QualityHistogram is a fixed-width bucket count of per-element quality
// values over [0,1], the raw material for the optimization plot's
// per-pass snapshot (spec.md §5).
type QualityHistogram struct {
	Buckets []int
	Total   int
}

// NewQualityHistogram returns an empty histogram with n buckets.
func NewQualityHistogram(n int) QualityHistogram {
	if n <= 0 {
		n = DefaultHistogramBuckets
	}
	return QualityHistogram{Buckets: make([]int, n)}
}

// Add bins a single quality value, clamping to [0,1] first.
func (h *QualityHistogram) Add(q float64) {
	q = clampQuality(q)
	idx := int(q * float64(len(h.Buckets)))
	if idx >= len(h.Buckets) {
		idx = len(h.Buckets) - 1
	}
	h.Buckets[idx]++
	h.Total++
}

// Report is the summary statistics computed alongside a histogram over one
// full evaluation pass (spec.md §5's "minimum / average / harmonic-mean
// quality" per-pass metrics).
type Report struct {
	Histogram     QualityHistogram
	MinimumQuality  float64
	AverageQuality  float64
	HarmonicMean    float64
}

// EvaluateMesh runs evaluator over every element of msh (Serial and Thread
// implementations are evaluation-equivalent, spec.md invariant 5; this
// orchestration only has a Serial body since evaluation has no write-write
// hazard to schedule around — the implementation argument is ignored and
// every implementation runs this same serial loop).
// stats, if given (at most one), accumulates degenerate-element counts
// for this pass.
func EvaluateMesh(msh *mesh.Mesh, sampler metric.Sampler, m measure.Measurer, evaluator Evaluator, _ engine.Implementation, stats ...*Stats) Report {
	var st *Stats
	if len(stats) > 0 {
		st = stats[0]
	}

	hist := NewQualityHistogram(DefaultHistogramBuckets)
	minQ := 1.0
	sum := 0.0
	sumInv := 0.0
	n := 0

	msh.ForEachElem(func(ref mesh.ElemRef) {
		q := evalOne(evaluator, sampler, m, msh, ref, st)
		hist.Add(q)
		if q < minQ {
			minQ = q
		}
		sum += q
		if q > 0 {
			sumInv += 1 / q
		} else {
			sumInv += 1 / ValidityEpsilon
		}
		n++
	})

	if n == 0 {
		return Report{Histogram: hist}
	}
	return Report{
		Histogram:      hist,
		MinimumQuality: minQ,
		AverageQuality: sum / float64(n),
		HarmonicMean:   float64(n) / sumInv,
	}
}
