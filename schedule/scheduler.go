package schedule

import (
	"github.com/anisomesh/anisomesh/crew"
	"github.com/anisomesh/anisomesh/engine"
	"github.com/anisomesh/anisomesh/evaluate"
	"github.com/anisomesh/anisomesh/mesh"
	"github.com/anisomesh/anisomesh/smooth"
	"github.com/anisomesh/anisomesh/topo"
)

// Scheduler bundles the algorithm choices a Run call dispatches to: the
// vertex-wise smoother, an optional element-wise (GETMe) smoother, and
// the topologist. The orchestrator itself is single-threaded (spec.md
// §5); parallelism lives inside whichever of these a pass calls.
type Scheduler struct {
	Smoother   smooth.VertexAlgorithm
	Getme      *smooth.Getme
	Topologist topo.Batr

	SmoothOpts smooth.Options
	TopoOpts   topo.Options
}

// Result accumulates one evaluate.Report per completed global pass.
type Result struct {
	Passes []evaluate.Report
}

// Run executes global passes until sched.GlobalPassCount is exhausted or
// the auto-pilot predicate holds (spec.md §4.6). ctx.GPU, if non-nil, is
// re-uploaded after any topology pass when impl selects a GPU backend
// (spec.md §4.6: "mesh buffers are re-uploaded to the GPU... between
// topology and relocation passes").
func (s Scheduler) Run(msh *mesh.Mesh, cr crew.Crew, ctx engine.Context, impl engine.Implementation, sched Schedule) Result {
	var result Result

	relocOpts := s.SmoothOpts
	relocOpts.MaxPasses = 1

	refineOpts := s.SmoothOpts
	refineOpts.MaxPasses = 1

	globalPasses := sched.GlobalPassCount
	if globalPasses <= 0 {
		globalPasses = DefaultSchedule().GlobalPassCount
	}

	for g := 0; g < globalPasses; g++ {
		for i := 0; i < sched.RelocationPassCount; i++ {
			smooth.Smooth(s.Smoother, msh, cr, impl, relocOpts)
		}

		if s.Getme != nil {
			for i := 0; i < sched.RefinementSweepCount; i++ {
				s.Getme.Smooth(msh, cr, impl, refineOpts)
			}
		}

		if sched.TopoOperationEnabled {
			passes := sched.TopoOperationPassCount
			if passes <= 0 {
				passes = 1
			}
			for i := 0; i < passes; i++ {
				s.Topologist.Restructure(msh, cr, s.TopoOpts)
			}
			if (impl == engine.GLSL || impl == engine.CUDA) && ctx.GPU != nil {
				_ = ctx.GPU.UploadGeometry(msh)
			}
		}

		report := evaluate.EvaluateMesh(msh, cr.Sampler, cr.Measurer, cr.Evaluator, impl)
		result.Passes = append(result.Passes, report)

		if sched.AutoPilotEnabled &&
			report.MinimumQuality >= sched.MinQualThreshold &&
			report.AverageQuality >= sched.QualMeanThreshold {
			break
		}
	}

	return result
}
