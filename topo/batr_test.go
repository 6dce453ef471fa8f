package topo_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/anisomesh/anisomesh/crew"
	"github.com/anisomesh/anisomesh/evaluate"
	"github.com/anisomesh/anisomesh/measure"
	"github.com/anisomesh/anisomesh/mesh"
	"github.com/anisomesh/anisomesh/topo"
	"github.com/anisomesh/anisomesh/vec3"
)

// twoTetsSharingAFace builds two tets (A,B,C,D1) and (A,B,D2,C) sharing
// face A-B-C, with edge A-B the only one exceeding maxEdgeLength (10 vs.
// the next-longest edge at ~6.16) — the S3 scenario of spec.md §8.
func twoTetsSharingAFace(t *testing.T) (*mesh.Mesh, int, int) {
	t.Helper()
	m := mesh.New()
	a := m.AddVert(vec3.Vec{X: 0, Y: 0, Z: 0})
	b := m.AddVert(vec3.Vec{X: 10, Y: 0, Z: 0})
	c := m.AddVert(vec3.Vec{X: 5, Y: 2, Z: 0})
	d1 := m.AddVert(vec3.Vec{X: 5, Y: 2, Z: 3})
	d2 := m.AddVert(vec3.Vec{X: 5, Y: 2, Z: -3})
	m.AddTet([4]int{a, b, c, d1})
	m.AddTet([4]int{a, b, d2, c})
	m.CompileTopology(nil)
	return m, a, b
}

func TestBatrEdgeSplitIncreasesCounts(t *testing.T) {
	m, _, _ := twoTetsSharingAFace(t)
	cr, err := crew.New(nil, measure.Euclidean{}, evaluate.MeanRatio{})
	assert.NoError(t, err)

	opts := topo.DefaultOptions()
	opts.MinEdgeLength = 0.1
	opts.MaxEdgeLength = 8

	stats := topo.Batr{}.Restructure(m, cr, opts)
	assert.GreaterOrEqual(t, stats.SplitCount, 1)
	assert.GreaterOrEqual(t, len(m.Tets), 4)
	assert.GreaterOrEqual(t, len(m.Verts), 6)

	for _, tet := range m.Tets {
		vp := [4]vec3.Vec{
			m.Verts[tet.V[0]].P, m.Verts[tet.V[1]].P,
			m.Verts[tet.V[2]].P, m.Verts[tet.V[3]].P,
		}
		vol := cr.Measurer.TetVolume(cr.Sampler, vp, nil)
		assert.Greater(t, vol, 0.0)
	}
}

func TestBatrMergePressureLeavesNoInvertedTets(t *testing.T) {
	// Two tets sharing face a-b-c, with every edge below MinEdgeLength so
	// the merge phase keeps collapsing edges. The shortest edge a-b lies in
	// both tets, so collapsing it removes both; the loop below checks that
	// no tet surviving the merges has negative volume.
	m := mesh.New()
	a := m.AddVert(vec3.Vec{X: 0, Y: 0, Z: 0})
	b := m.AddVert(vec3.Vec{X: 0.2, Y: 0, Z: 0})
	c := m.AddVert(vec3.Vec{X: 0, Y: 1, Z: 0})
	d := m.AddVert(vec3.Vec{X: 0, Y: 0, Z: 1})
	m.AddTet([4]int{a, b, c, d})
	e := m.AddVert(vec3.Vec{X: 0.1, Y: 0.5, Z: -1})
	m.AddTet([4]int{a, b, e, c})
	m.CompileTopology(nil)

	cr, err := crew.New(nil, measure.Euclidean{}, evaluate.MeanRatio{})
	assert.NoError(t, err)

	opts := topo.DefaultOptions()
	opts.MinEdgeLength = 100 // force every edge to look "too short", maximizing merge pressure
	opts.MaxEdgeLength = 1000

	topo.Batr{}.Restructure(m, cr, opts)

	// Whatever survives must still be conformal: a non-conformal merge is
	// rejected and restored rather than committed (spec.md §7, §8 "BATR
	// topology edit rejection").
	for _, tet := range m.Tets {
		vp := [4]vec3.Vec{
			m.Verts[tet.V[0]].P, m.Verts[tet.V[1]].P,
			m.Verts[tet.V[2]].P, m.Verts[tet.V[3]].P,
		}
		vol := cr.Measurer.TetVolume(cr.Sampler, vp, nil)
		assert.GreaterOrEqual(t, vol, 0.0)
	}
}
