package measure

import (
	"github.com/anisomesh/anisomesh/mesh"
	"github.com/anisomesh/anisomesh/metric"
	"github.com/anisomesh/anisomesh/vec3"
)

// Euclidean is the non-metric-wise measurer: it never consults the
// sampler and falls back to plain Euclidean distance/volume (spec.md
// §4.1's isMetricWise() contract). Useful for a zero-config default and
// for raw-throughput benchmarking independent of any metric field.
type Euclidean struct{}

func (Euclidean) RiemannianDistance(_ metric.Sampler, a, b vec3.Vec, _ *metric.Hint) float64 {
	return a.Sub(b).Length()
}

func (Euclidean) TetVolume(_ metric.Sampler, v [4]vec3.Vec, _ *metric.Hint) float64 {
	return tetVolumeEuclid(v)
}

func (Euclidean) PriVolume(_ metric.Sampler, v [6]vec3.Vec, _ *metric.Hint) float64 {
	return priVolumeEuclid(v)
}

func (Euclidean) HexVolume(_ metric.Sampler, v [8]vec3.Vec, _ *metric.Hint) float64 {
	return hexVolumeEuclid(v)
}

func (Euclidean) ComputeLocalElementSize(m *mesh.Mesh, vID int) float64 {
	return computeLocalElementSize(m, vID)
}

func (Euclidean) ComputeVertexEquilibrium(m *mesh.Mesh, _ metric.Sampler, vID int) vec3.Vec {
	return computeVertexEquilibrium(m, vID)
}

func (Euclidean) IsMetricWise() bool { return false }
