// Package bench implements the Benchmark/Plot component named in
// SPEC_FULL.md §B/§C: an append-only per-pass quality history
// (OptimizationPlot), Prometheus instrumentation of pass timing and
// quality, an SVG histogram-strip dump for local inspection, and the
// gpuSpin/cpuSpin-style raw-throughput loop (Benchmark.Spin) carried
// over from the original source's AbstractEvaluator.
package bench

import (
	"sync"
	"time"

	"github.com/anisomesh/anisomesh/evaluate"
)

// Sample is one pass's report paired with how long the pass took.
type Sample struct {
	Report   evaluate.Report
	Elapsed  time.Duration
}

// OptimizationPlot is an append-only history of per-pass reports, the Go
// analogue of original_source/DataStructures/OptimizationPlot.cpp: every
// global pass appends one Sample, never overwrites or truncates.
type OptimizationPlot struct {
	mu      sync.Mutex
	samples []Sample
}

// Append records one pass's report and elapsed wall time.
func (p *OptimizationPlot) Append(report evaluate.Report, elapsed time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.samples = append(p.samples, Sample{Report: report, Elapsed: elapsed})
}

// Samples returns a copy of the recorded history in append order.
func (p *OptimizationPlot) Samples() []Sample {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]Sample, len(p.samples))
	copy(out, p.samples)
	return out
}

// Last returns the most recently appended sample and whether one exists.
func (p *OptimizationPlot) Last() (Sample, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.samples) == 0 {
		return Sample{}, false
	}
	return p.samples[len(p.samples)-1], true
}

// Len reports how many samples have been recorded.
func (p *OptimizationPlot) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.samples)
}
