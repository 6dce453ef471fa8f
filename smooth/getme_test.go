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

func jitteredTet(t *testing.T) *mesh.Mesh {
	t.Helper()
	m := mesh.New()
	v0 := m.AddVert(vec3.Vec{X: 0, Y: 0, Z: 0})
	v1 := m.AddVert(vec3.Vec{X: 1, Y: 0, Z: 0})
	v2 := m.AddVert(vec3.Vec{X: 0.4, Y: 1, Z: 0})
	v3 := m.AddVert(vec3.Vec{X: 0.2, Y: 0.3, Z: 1.4})
	m.Topos[v0].IsFixed = true
	m.Topos[v1].IsFixed = true
	m.Topos[v2].IsFixed = true
	m.AddTet([4]int{v0, v1, v2, v3})
	m.CompileTopology(nil)
	return m
}

func TestGetmeImprovesJitteredTet(t *testing.T) {
	m := jitteredTet(t)
	cr, err := crew.New(nil, measure.Euclidean{}, evaluate.MeanRatio{})
	assert.NoError(t, err)

	before := evaluate.EvaluateMesh(m, cr.Sampler, cr.Measurer, cr.Evaluator, engine.Serial)

	opts := smooth.DefaultOptions()
	opts.MaxPasses = 10
	opts.MinIteration = 1
	opts.GainThreshold = 1e-6

	getme := smooth.NewGetme()
	getme.Smooth(m, cr, engine.Serial, opts)

	after := evaluate.EvaluateMesh(m, cr.Sampler, cr.Measurer, cr.Evaluator, engine.Serial)
	assert.GreaterOrEqual(t, after.MinimumQuality, before.MinimumQuality)
}

func TestGetmeLeavesFullyFixedElementUntouched(t *testing.T) {
	m := jitteredTet(t)
	for i := range m.Topos {
		m.Topos[i].IsFixed = true
	}
	before := make([]vec3.Vec, len(m.Verts))
	for i, v := range m.Verts {
		before[i] = v.P
	}

	cr, err := crew.New(nil, measure.Euclidean{}, evaluate.MeanRatio{})
	assert.NoError(t, err)

	opts := smooth.DefaultOptions()
	opts.MaxPasses = 3
	getme := smooth.NewGetme()
	getme.Smooth(m, cr, engine.Serial, opts)

	for i, v := range m.Verts {
		assert.Equal(t, before[i], v.P)
	}
}
