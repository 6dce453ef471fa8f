package smooth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/anisomesh/anisomesh/crew"
	"github.com/anisomesh/anisomesh/engine"
	"github.com/anisomesh/anisomesh/evaluate"
	"github.com/anisomesh/anisomesh/measure"
	"github.com/anisomesh/anisomesh/mesh"
	"github.com/anisomesh/anisomesh/smooth"
	"github.com/anisomesh/anisomesh/vec3"
)

// jitteredCube builds the S2 scenario: a unit hexahedron with vertex 6
// jittered by (0.3, 0.2, -0.1).
func jitteredCube(t *testing.T) (*mesh.Mesh, vec3.Vec) {
	t.Helper()
	m := mesh.New()
	coords := [8]vec3.Vec{
		{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0}, {X: 1, Y: 1, Z: 0}, {X: 0, Y: 1, Z: 0},
		{X: 0, Y: 0, Z: 1}, {X: 1, Y: 0, Z: 1}, {X: 1, Y: 1, Z: 1}, {X: 0, Y: 1, Z: 1},
	}
	original6 := coords[6]
	coords[6] = coords[6].Add(vec3.Vec{X: 0.3, Y: 0.2, Z: -0.1})

	var ids [8]int
	for i, c := range coords {
		fixed := i != 6
		id := m.AddVert(c)
		ids[i] = id
		m.Topos[id].IsFixed = fixed
	}
	m.AddHex(ids)
	m.CompileTopology(nil)
	return m, original6
}

func TestQualityLaplaceImprovesJitteredCube(t *testing.T) {
	m, original6 := jitteredCube(t)
	cr, err := crew.New(nil, measure.Euclidean{}, evaluate.MeanRatio{})
	assert.NoError(t, err)

	before := evaluate.EvaluateMesh(m, cr.Sampler, cr.Measurer, cr.Evaluator, engine.Serial)

	opts := smooth.DefaultOptions()
	opts.MoveCoeff = 0.7
	opts.GainThreshold = 1e-6
	opts.MaxPasses = 20
	opts.MinIteration = 1

	smooth.Smooth(smooth.QualityLaplace{}, m, cr, engine.Serial, opts)

	after := evaluate.EvaluateMesh(m, cr.Sampler, cr.Measurer, cr.Evaluator, engine.Serial)

	assert.Greater(t, after.MinimumQuality, before.MinimumQuality)
	assert.Greater(t, after.AverageQuality, before.AverageQuality)

	dist := m.Verts[6].P.Sub(original6).Length()
	assert.Less(t, dist, 0.3)
}

func TestSpringLaplaceSingleCandidate(t *testing.T) {
	m, _ := jitteredCube(t)
	candidates := smooth.SpringLaplace{}.Propose(m, crew.Crew{}, smooth.DefaultOptions(), 6)
	assert.Len(t, candidates, 1)
}

// latticeMesh builds a 3x3x2-cell grid of unit hexahedra, jitters every
// interior vertex, and fixes every boundary vertex, giving several
// independent groups with more than one vertex each.
func latticeMesh(t *testing.T) *mesh.Mesh {
	t.Helper()
	nx, ny, nz := 3, 3, 2
	m := mesh.New()

	id := func(x, y, z int) int { return (x*(ny+1)+y)*(nz+1) + z }
	ids := make([]int, (nx+1)*(ny+1)*(nz+1))
	for x := 0; x <= nx; x++ {
		for y := 0; y <= ny; y++ {
			for z := 0; z <= nz; z++ {
				p := vec3.Vec{X: float64(x), Y: float64(y), Z: float64(z)}
				interior := x > 0 && x < nx && y > 0 && y < ny && z > 0 && z < nz
				if interior {
					p = p.Add(vec3.Vec{X: 0.05, Y: -0.03, Z: 0.02})
				}
				vID := m.AddVert(p)
				ids[id(x, y, z)] = vID
				m.Topos[vID].IsFixed = !interior
			}
		}
	}

	for x := 0; x < nx; x++ {
		for y := 0; y < ny; y++ {
			for z := 0; z < nz; z++ {
				corners := [8]int{
					ids[id(x, y, z)], ids[id(x+1, y, z)], ids[id(x+1, y+1, z)], ids[id(x, y+1, z)],
					ids[id(x, y, z+1)], ids[id(x+1, y, z+1)], ids[id(x+1, y+1, z+1)], ids[id(x, y+1, z+1)],
				}
				m.AddHex(corners)
			}
		}
	}

	m.CompileTopology(nil)
	return m
}

// TestSerialAndThreadBackendsConverge asserts spec.md §5's parallel-
// equivalence requirement: the per-group dispatch loop is deterministic
// within a group regardless of how the group's vertices are scheduled, so
// the Serial and Thread implementations must reach the same final mesh
// quality over a multi-group lattice.
func TestSerialAndThreadBackendsConverge(t *testing.T) {
	cr, err := crew.New(nil, measure.Euclidean{}, evaluate.MeanRatio{})
	assert.NoError(t, err)

	opts := smooth.DefaultOptions()
	opts.MoveCoeff = 0.5
	opts.MaxPasses = 10
	opts.MinIteration = 3

	serialMesh := latticeMesh(t)
	smooth.Smooth(smooth.QualityLaplace{}, serialMesh, cr, engine.Serial, opts)
	serialReport := evaluate.EvaluateMesh(serialMesh, cr.Sampler, cr.Measurer, cr.Evaluator, engine.Serial)

	threadMesh := latticeMesh(t)
	smooth.Smooth(smooth.QualityLaplace{}, threadMesh, cr, engine.Thread, opts)
	threadReport := evaluate.EvaluateMesh(threadMesh, cr.Sampler, cr.Measurer, cr.Evaluator, engine.Thread)

	assert.InDelta(t, serialReport.MinimumQuality, threadReport.MinimumQuality, 1e-9)
	assert.InDelta(t, serialReport.AverageQuality, threadReport.AverageQuality, 1e-9)
	assert.Len(t, serialMesh.Verts, len(threadMesh.Verts))
	for i := range serialMesh.Verts {
		assert.InDelta(t, serialMesh.Verts[i].P.X, threadMesh.Verts[i].P.X, 1e-9)
		assert.InDelta(t, serialMesh.Verts[i].P.Y, threadMesh.Verts[i].P.Y, 1e-9)
		assert.InDelta(t, serialMesh.Verts[i].P.Z, threadMesh.Verts[i].P.Z, 1e-9)
	}
}
