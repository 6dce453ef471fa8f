package evaluate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/anisomesh/anisomesh/engine"
	"github.com/anisomesh/anisomesh/evaluate"
	"github.com/anisomesh/anisomesh/measure"
	"github.com/anisomesh/anisomesh/mesh"
	"github.com/anisomesh/anisomesh/vec3"
)

func TestEvaluateMeshRegularTet(t *testing.T) {
	m := mesh.New()
	a := m.AddVert(vec3.Vec{X: 0, Y: 0, Z: 0})
	b := m.AddVert(vec3.Vec{X: 1, Y: 0, Z: 0})
	c := m.AddVert(vec3.Vec{X: 0.5, Y: 0.8660254037844386, Z: 0})
	d := m.AddVert(vec3.Vec{X: 0.5, Y: 0.28867513459481287, Z: 0.816496580927726})
	m.AddTet([4]int{a, b, c, d})
	m.CompileTopology(nil)

	report := evaluate.EvaluateMesh(m, nil, measure.Euclidean{}, evaluate.MeanRatio{}, engine.Serial)

	assert.InDelta(t, 1.0, report.MinimumQuality, 1e-6)
	assert.InDelta(t, 1.0, report.AverageQuality, 1e-6)
	assert.InDelta(t, 1.0, report.HarmonicMean, 1e-6)
	assert.Equal(t, 1, report.Histogram.Total)
	assert.Equal(t, 1, report.Histogram.Buckets[len(report.Histogram.Buckets)-1])
}
