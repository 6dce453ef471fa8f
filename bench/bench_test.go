package bench_test

import (
	"bytes"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anisomesh/anisomesh/bench"
	"github.com/anisomesh/anisomesh/crew"
	"github.com/anisomesh/anisomesh/engine"
	"github.com/anisomesh/anisomesh/evaluate"
	"github.com/anisomesh/anisomesh/measure"
	"github.com/anisomesh/anisomesh/mesh"
	"github.com/anisomesh/anisomesh/vec3"
)

func unitTet() *mesh.Mesh {
	m := mesh.New()
	a := m.AddVert(vec3.Vec{X: 0, Y: 0, Z: 0})
	b := m.AddVert(vec3.Vec{X: 1, Y: 0, Z: 0})
	c := m.AddVert(vec3.Vec{X: 0, Y: 1, Z: 0})
	d := m.AddVert(vec3.Vec{X: 0, Y: 0, Z: 1})
	m.AddTet([4]int{a, b, c, d})
	m.CompileTopology(nil)
	return m
}

func TestOptimizationPlotAppendsInOrder(t *testing.T) {
	var plot bench.OptimizationPlot
	assert.Equal(t, 0, plot.Len())

	plot.Append(evaluate.Report{MinimumQuality: 0.1}, 0)
	plot.Append(evaluate.Report{MinimumQuality: 0.2}, 0)

	assert.Equal(t, 2, plot.Len())
	last, ok := plot.Last()
	assert.True(t, ok)
	assert.Equal(t, 0.2, last.Report.MinimumQuality)

	samples := plot.Samples()
	assert.Len(t, samples, 2)
	assert.Equal(t, 0.1, samples[0].Report.MinimumQuality)
}

func TestMetricsObserveUpdatesGauges(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := bench.NewMetrics(reg)

	report := evaluate.Report{MinimumQuality: 0.4, AverageQuality: 0.6, HarmonicMean: 0.5}
	m.Observe(engine.Serial, report, 0, nil)

	families, err := reg.Gather()
	require.NoError(t, err)

	var found bool
	for _, f := range families {
		if f.GetName() == "anisomesh_bench_minimum_quality" {
			found = true
			require.Len(t, f.GetMetric(), 1)
			assert.Equal(t, 0.4, f.GetMetric()[0].GetGauge().GetValue())
		}
	}
	assert.True(t, found, "expected minimum_quality gauge to be registered")
}

func TestBenchmarkSpinRecordsOneSamplePerCycle(t *testing.T) {
	m := unitTet()
	cr, err := crew.New(nil, measure.Euclidean{}, evaluate.MeanRatio{})
	require.NoError(t, err)

	var plot bench.OptimizationPlot
	b := bench.Benchmark{Plot: &plot}

	report := b.Spin(engine.Context{}, m, cr, engine.Serial, 5)
	assert.Equal(t, 5, plot.Len())
	// unitTet is the right-corner tet, whose mean ratio is 2^(4/3)/3.
	assert.InDelta(t, 0.8399473665965821, report.MinimumQuality, 1e-6)
}

func TestDumpHistogramSVGWritesNonEmptyOutput(t *testing.T) {
	hist := evaluate.NewQualityHistogram(4)
	hist.Add(0.1)
	hist.Add(0.9)

	var buf bytes.Buffer
	bench.DumpHistogramSVG(&buf, hist)
	assert.Contains(t, buf.String(), "<svg")
}
