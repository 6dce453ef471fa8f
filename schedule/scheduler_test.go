package schedule_test

import (
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/anisomesh/anisomesh/crew"
	"github.com/anisomesh/anisomesh/engine"
	"github.com/anisomesh/anisomesh/evaluate"
	"github.com/anisomesh/anisomesh/gpubackend"
	"github.com/anisomesh/anisomesh/measure"
	"github.com/anisomesh/anisomesh/mesh"
	"github.com/anisomesh/anisomesh/schedule"
	"github.com/anisomesh/anisomesh/smooth"
	"github.com/anisomesh/anisomesh/topo"
	"github.com/anisomesh/anisomesh/vec3"
)

func jitteredCube(t *testing.T) *mesh.Mesh {
	t.Helper()
	m := mesh.New()
	coords := [8]vec3.Vec{
		{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0}, {X: 1, Y: 1, Z: 0}, {X: 0, Y: 1, Z: 0},
		{X: 0, Y: 0, Z: 1}, {X: 1, Y: 0, Z: 1}, {X: 1, Y: 1, Z: 1}, {X: 0, Y: 1, Z: 1},
	}
	coords[6] = coords[6].Add(vec3.Vec{X: 0.3, Y: 0.2, Z: -0.1})

	var ids [8]int
	for i, c := range coords {
		id := m.AddVert(c)
		ids[i] = id
		m.Topos[id].IsFixed = i != 6
	}
	m.AddHex(ids)
	m.CompileTopology(nil)
	return m
}

func TestSchedulerImprovesQualityOverGlobalPasses(t *testing.T) {
	m := jitteredCube(t)
	cr, err := crew.New(nil, measure.Euclidean{}, evaluate.MeanRatio{})
	assert.NoError(t, err)

	before := evaluate.EvaluateMesh(m, cr.Sampler, cr.Measurer, cr.Evaluator, engine.Serial)

	sched := schedule.Schedule{
		RelocationPassCount: 3,
		GlobalPassCount:     5,
	}
	smoothOpts := smooth.DefaultOptions()
	smoothOpts.MoveCoeff = 0.7

	sc := schedule.Scheduler{
		Smoother:   smooth.QualityLaplace{},
		Topologist: topo.Batr{},
		SmoothOpts: smoothOpts,
		TopoOpts:   topo.DefaultOptions(),
	}

	result := sc.Run(m, cr, engine.Context{}, engine.Serial, sched)
	assert.Len(t, result.Passes, 5)

	last := result.Passes[len(result.Passes)-1]
	assert.Greater(t, last.MinimumQuality, before.MinimumQuality)
}

func TestSchedulerAutoPilotStopsEarly(t *testing.T) {
	m := jitteredCube(t)
	cr, err := crew.New(nil, measure.Euclidean{}, evaluate.MeanRatio{})
	assert.NoError(t, err)

	sched := schedule.Schedule{
		AutoPilotEnabled:    true,
		MinQualThreshold:    0, // already satisfied after pass 1
		QualMeanThreshold:   0,
		RelocationPassCount: 1,
		GlobalPassCount:     20,
	}
	sc := schedule.Scheduler{
		Smoother: smooth.QualityLaplace{},
		SmoothOpts: smooth.DefaultOptions(),
	}

	result := sc.Run(m, cr, engine.Context{}, engine.Serial, sched)
	assert.Len(t, result.Passes, 1)
}

func TestSchedulerReuploadsGeometryAfterTopologyPassOnGPUImpl(t *testing.T) {
	m := jitteredCube(t)
	cr, err := crew.New(nil, measure.Euclidean{}, evaluate.MeanRatio{})
	assert.NoError(t, err)

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	mockGPU := gpubackend.NewMockGPUBackend(ctrl)
	mockGPU.EXPECT().UploadGeometry(m).Return(nil).Times(2)

	sched := schedule.Schedule{
		RelocationPassCount:    1,
		GlobalPassCount:        2,
		TopoOperationEnabled:   true,
		TopoOperationPassCount: 1,
	}
	sc := schedule.Scheduler{
		Smoother:   smooth.QualityLaplace{},
		Topologist: topo.Batr{},
		SmoothOpts: smooth.DefaultOptions(),
		TopoOpts:   topo.DefaultOptions(),
	}

	ctx := engine.Context{GPU: mockGPU}
	result := sc.Run(m, cr, ctx, engine.GLSL, sched)
	assert.Len(t, result.Passes, 2)
}
