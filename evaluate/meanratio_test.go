package evaluate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/anisomesh/anisomesh/evaluate"
	"github.com/anisomesh/anisomesh/measure"
	"github.com/anisomesh/anisomesh/mesh"
	"github.com/anisomesh/anisomesh/vec3"
)

func TestMeanRatioValidate(t *testing.T) {
	var e evaluate.MeanRatio
	assert.NoError(t, e.Validate())
}

func TestMeanRatioRegularTet(t *testing.T) {
	var e evaluate.MeanRatio
	euclid := measure.Euclidean{}
	verts := [4]vec3.Vec{
		{X: 0, Y: 0, Z: 0},
		{X: 1, Y: 0, Z: 0},
		{X: 0.5, Y: 0.8660254037844386, Z: 0},
		{X: 0.5, Y: 0.28867513459481287, Z: 0.816496580927726},
	}
	q := e.TetQuality(nil, euclid, verts, mesh.Tet{})
	assert.InDelta(t, 1.0, q, evaluate.ValidityEpsilon*10)
}

func TestMeanRatioDegenerateTetIsZero(t *testing.T) {
	var e evaluate.MeanRatio
	euclid := measure.Euclidean{}
	verts := [4]vec3.Vec{
		{X: 0, Y: 0, Z: 0},
		{X: 1, Y: 0, Z: 0},
		{X: 2, Y: 0, Z: 0},
		{X: 3, Y: 0, Z: 0},
	}
	q := e.TetQuality(nil, euclid, verts, mesh.Tet{})
	assert.Zero(t, q)
}

func TestPatchQualityHarmonicMean(t *testing.T) {
	var e evaluate.MeanRatio
	euclid := measure.Euclidean{}

	m := mesh.New()
	a := m.AddVert(vec3.Vec{X: 0, Y: 0, Z: 0})
	b := m.AddVert(vec3.Vec{X: 1, Y: 0, Z: 0})
	c := m.AddVert(vec3.Vec{X: 0.5, Y: 0.8660254037844386, Z: 0})
	d := m.AddVert(vec3.Vec{X: 0.5, Y: 0.28867513459481287, Z: 0.816496580927726})
	d2 := m.AddVert(vec3.Vec{X: 0.5, Y: 0.28867513459481287, Z: -0.816496580927726})
	m.AddTet([4]int{a, b, c, d})
	m.AddTet([4]int{a, c, b, d2})
	m.CompileTopology(nil)

	q := e.PatchQuality(m, nil, euclid, a)
	assert.InDelta(t, 1.0, q, 1e-6)
}

func TestQualityHistogramBuckets(t *testing.T) {
	h := evaluate.NewQualityHistogram(10)
	h.Add(0)
	h.Add(0.55)
	h.Add(1)
	h.Add(-1) // clamps to 0
	h.Add(2)  // clamps to 1

	assert.Equal(t, 5, h.Total)
	assert.Equal(t, 2, h.Buckets[0])
	assert.Equal(t, 1, h.Buckets[5])
	assert.Equal(t, 2, h.Buckets[9])
}
