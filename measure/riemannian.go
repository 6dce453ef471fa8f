package measure

import (
	"math"

	"github.com/anisomesh/anisomesh/mesh"
	"github.com/anisomesh/anisomesh/metric"
	"github.com/anisomesh/anisomesh/vec3"
)

// Riemannian measures length and volume in the metric field sampled by a
// metric.Sampler (spec.md §4.2).
type Riemannian struct{}

// NewRiemannian returns the metric-aware Measurer.
func NewRiemannian() Riemannian { return Riemannian{} }

func (Riemannian) RiemannianDistance(sampler metric.Sampler, a, b vec3.Vec, hint *metric.Hint) float64 {
	d := b.Sub(a)
	total := 0.0
	for i, t := range gaussNodes {
		p := a.Add(d.Scale(t))
		m, err := sampler.MetricAt(p, hint)
		if err != nil {
			// OutOfDomain: fall back to the Euclidean contribution for
			// this quadrature point (spec.md §7).
			total += gaussWeights[i] * d.Length()
			continue
		}
		q := m.QuadForm(d.X, d.Y, d.Z)
		if q < 0 {
			q = 0
		}
		total += gaussWeights[i] * math.Sqrt(q)
	}
	return total
}

func (Riemannian) metricScale(sampler metric.Sampler, c vec3.Vec, hint *metric.Hint) float64 {
	m, err := sampler.MetricAt(c, hint)
	if err != nil {
		return 1
	}
	det := m.Det()
	if det <= 0 {
		return 1
	}
	return math.Sqrt(det)
}

func (r Riemannian) TetVolume(sampler metric.Sampler, v [4]vec3.Vec, hint *metric.Hint) float64 {
	euclid := tetVolumeEuclid(v)
	scale := r.metricScale(sampler, centroid(v[:]), hint)
	return euclid * scale
}

func (r Riemannian) PriVolume(sampler metric.Sampler, v [6]vec3.Vec, hint *metric.Hint) float64 {
	euclid := priVolumeEuclid(v)
	scale := r.metricScale(sampler, centroid(v[:]), hint)
	return euclid * scale
}

func (r Riemannian) HexVolume(sampler metric.Sampler, v [8]vec3.Vec, hint *metric.Hint) float64 {
	euclid := hexVolumeEuclid(v)
	scale := r.metricScale(sampler, centroid(v[:]), hint)
	return euclid * scale
}

func (Riemannian) ComputeLocalElementSize(m *mesh.Mesh, vID int) float64 {
	return computeLocalElementSize(m, vID)
}

func (Riemannian) ComputeVertexEquilibrium(m *mesh.Mesh, sampler metric.Sampler, vID int) vec3.Vec {
	return computeVertexEquilibrium(m, vID)
}

func (Riemannian) IsMetricWise() bool { return true }
