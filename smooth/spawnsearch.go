package smooth

import (
	"math/rand"

	"github.com/anisomesh/anisomesh/crew"
	"github.com/anisomesh/anisomesh/mesh"
	"github.com/anisomesh/anisomesh/vec3"
)

// SpawnSearch proposes random positions inside a ball around the current
// position, shrinking the radius linearly with each successive sample
// (spec.md §4.4), plus the current position itself. When Rand is nil each
// call seeds a fresh source from vId, so a vertex's proposals do not
// depend on the order in which vertices are visited (spec.md S5); a
// non-nil Rand is shared by every call.
type SpawnSearch struct {
	SampleCount int
	Rand        *rand.Rand
}

func (s SpawnSearch) Name() string { return "Spawn Search" }

func (s SpawnSearch) Propose(msh *mesh.Mesh, cr crew.Crew, opts Options, vID int) []mesh.Vertex {
	samples := s.SampleCount
	if samples <= 0 {
		samples = 8
	}
	r := s.Rand
	if r == nil {
		r = rand.New(rand.NewSource(int64(vID) + 1))
	}

	pos := msh.Verts[vID].P
	radius := cr.Measurer.ComputeLocalElementSize(msh, vID) * opts.MoveCoeff
	if radius <= 0 {
		return nil
	}

	out := make([]mesh.Vertex, 0, samples+1)
	out = append(out, mesh.Vertex{P: pos})
	for i := 0; i < samples; i++ {
		shrink := 1.0 - float64(i)/float64(samples)
		dir := vec3.Vec{X: r.Float64()*2 - 1, Y: r.Float64()*2 - 1, Z: r.Float64()*2 - 1}
		if dir.LengthSq() == 0 {
			continue
		}
		dir = dir.Normalized().Scale(radius * shrink * r.Float64())
		out = append(out, mesh.Vertex{P: pos.Add(dir)})
	}
	return out
}
