package bench

import (
	"time"

	"github.com/anisomesh/anisomesh/crew"
	"github.com/anisomesh/anisomesh/engine"
	"github.com/anisomesh/anisomesh/evaluate"
	"github.com/anisomesh/anisomesh/mesh"
)

// markFraction mirrors AbstractEvaluator::{gpuSpin,cpuSpin}'s 100-step
// progress marker.
const markFraction = 100

// Benchmark drives a raw-throughput evaluation loop independent of any
// optimization pass, the Go form of the original's gpuSpin/cpuSpin
// (SPEC_FULL.md §C): repeat evaluation cycleCount times and report
// progress, with no mesh mutation in between.
type Benchmark struct {
	Plot    *OptimizationPlot
	Metrics *Metrics
}

// Spin evaluates msh cycles times under impl, recording one Sample per
// cycle (and, if Metrics is set, observing it there too). It returns the
// last cycle's report. ctx.Logf, if set, receives a progress line every
// 1% of cycles, matching the original's MARK_SIZE=100 cadence.
func (b Benchmark) Spin(ctx engine.Context, msh *mesh.Mesh, cr crew.Crew, impl engine.Implementation, cycles int) evaluate.Report {
	if cycles <= 0 {
		cycles = 1
	}
	mark := cycles / markFraction
	if mark == 0 {
		mark = 1
	}

	var report evaluate.Report
	for i := 0; i < cycles; i++ {
		start := time.Now()
		report = evaluate.EvaluateMesh(msh, cr.Sampler, cr.Measurer, cr.Evaluator, impl)
		elapsed := time.Since(start)

		if b.Plot != nil {
			b.Plot.Append(report, elapsed)
		}
		if b.Metrics != nil {
			b.Metrics.Observe(impl, report, elapsed, nil)
		}
		if ctx.Logf != nil && i%mark == 0 {
			ctx.Logf("benchmark progress: %.0f%%", 100*float64(i)/float64(cycles))
		}
	}
	return report
}
