// Package smooth implements the vertex-wise and element-wise smoother
// family of spec.md §4.4: interchangeable candidate-position generators
// driven by a common per-independent-group dispatch loop, plus the
// element-wise GETMe accumulator.
package smooth

import (
	"github.com/anisomesh/anisomesh/crew"
	"github.com/anisomesh/anisomesh/engine"
	"github.com/anisomesh/anisomesh/evaluate"
	"github.com/anisomesh/anisomesh/mesh"
)

// Options are the tunable parameters shared by every vertex-wise
// algorithm (spec.md §4.4, §4.6).
type Options struct {
	MoveCoeff   float64
	MinIteration int
	GainThreshold float64
	MaxPasses   int

	// SecurityCycleCount bounds Nelder-Mead's outer simplex cycles.
	SecurityCycleCount int
	// LocalSizeToNodeShift scales the initial simplex by the vertex's
	// local element size (spec.md §4.4 "simplex shifts scaled by local
	// element size").
	LocalSizeToNodeShift float64
}

// DefaultOptions mirrors the original source's typical tuning.
func DefaultOptions() Options {
	return Options{
		MoveCoeff:            0.4,
		MinIteration:         5,
		GainThreshold:        1e-4,
		MaxPasses:            100,
		SecurityCycleCount:   5,
		LocalSizeToNodeShift: 0.4,
	}
}

// VertexAlgorithm is a candidate-position generator for the vertex-wise
// smoother loop (spec.md §4.4 table). It returns zero or more candidate
// positions for vId; the driver evaluates each, keeps the best, and
// restores the original position if none improves on it.
type VertexAlgorithm interface {
	Name() string
	Propose(msh *mesh.Mesh, cr crew.Crew, opts Options, vID int) []mesh.Vertex
}

// isSmoothable reports whether vId may be relocated: not fixed, and has
// at least one incident element (source: AbstractSmoother::isSmoothable).
func isSmoothable(msh *mesh.Mesh, vID int) bool {
	topo := msh.Topos[vID]
	if topo.IsFixed {
		return false
	}
	return len(topo.NeighborElems) > 0
}

// PassStats summarizes one relocation pass, the raw material for the
// termination check and the OptimizationPlot (spec.md §4.4, §6).
type PassStats struct {
	Report evaluate.Report
}

// gain returns the current-minus-previous min/avg/harmonic deltas used by
// the termination predicate (source: AbstractSmoother::evaluateMeshQuality).
func gain(prev, cur evaluate.Report) (minGain, avgGain, sumGain float64) {
	minGain = cur.MinimumQuality - prev.MinimumQuality
	avgGain = cur.AverageQuality - prev.AverageQuality
	sumGain = minGain + avgGain
	return
}

// shouldContinue implements spec.md §4.4's termination policy: keep
// iterating until passId >= MinIteration and every one of minGain,
// meanGain (avgGain), sumGain falls below GainThreshold.
func shouldContinue(passID int, opts Options, prev, cur evaluate.Report) bool {
	if passID < opts.MinIteration {
		return true
	}
	minGain, avgGain, sumGain := gain(prev, cur)
	return minGain > opts.GainThreshold ||
		avgGain > opts.GainThreshold ||
		sumGain > opts.GainThreshold
}

// Result is the outcome of a full vertex-wise smoothing run.
type Result struct {
	Passes []PassStats
}

// Smooth runs alg's vertex-wise loop to convergence (spec.md §4.4,
// §4.6's per-smoother micro-convergence), dispatching each pass according
// to impl.
func Smooth(alg VertexAlgorithm, msh *mesh.Mesh, cr crew.Crew, impl engine.Implementation, opts Options) Result {
	var result Result
	var prev evaluate.Report

	maxPasses := opts.MaxPasses
	if maxPasses <= 0 {
		maxPasses = DefaultOptions().MaxPasses
	}

	for pass := 0; pass < maxPasses; pass++ {
		runOnePass(alg, msh, cr, impl, opts)

		cur := evaluate.EvaluateMesh(msh, cr.Sampler, cr.Measurer, cr.Evaluator, impl)
		result.Passes = append(result.Passes, PassStats{Report: cur})

		if pass > 0 && !shouldContinue(pass, opts, prev, cur) {
			break
		}
		prev = cur
	}
	return result
}

// runOnePass dispatches one relocation pass across the mesh's independent
// groups, serially in group-id order (spec.md §5's deliberately observable
// cross-group ordering); within a group the implementation decides how
// vertices are scheduled.
func runOnePass(alg VertexAlgorithm, msh *mesh.Mesh, cr crew.Crew, impl engine.Implementation, opts Options) {
	for _, group := range msh.IndependentGroups {
		switch impl {
		case engine.Thread:
			runGroupThread(alg, msh, cr, opts, group)
		default:
			runGroupSerial(alg, msh, cr, opts, group)
		}
	}
}

func runGroupSerial(alg VertexAlgorithm, msh *mesh.Mesh, cr crew.Crew, opts Options, group []int) {
	for _, vID := range group {
		smoothOneVertex(alg, msh, cr, opts, vID)
	}
}

// smoothOneVertex implements the per-vertex body common to every
// vertex-wise algorithm (spec.md §4.4):
//  1. skip if unsmoothable
//  2. gather candidates from alg
//  3. project each candidate to the boundary if needed
//  4. overwrite, recompute patch quality, keep the best, where the
//     original position counts as a candidate
func smoothOneVertex(alg VertexAlgorithm, msh *mesh.Mesh, cr crew.Crew, opts Options, vID int) {
	if !isSmoothable(msh, vID) {
		return
	}

	original := msh.Verts[vID]
	candidates := alg.Propose(msh, cr, opts, vID)
	if len(candidates) == 0 {
		return
	}

	topo := msh.Topos[vID]
	msh.Verts[vID] = original
	bestQuality := cr.Evaluator.PatchQuality(msh, cr.Sampler, cr.Measurer, vID)
	best := original

	for _, cand := range candidates {
		p := cand.P
		if topo.IsBoundary {
			p = msh.SnapToBoundary(vID, p)
		}
		msh.Verts[vID].P = p

		q := cr.Evaluator.PatchQuality(msh, cr.Sampler, cr.Measurer, vID)
		if q > bestQuality {
			bestQuality = q
			best = msh.Verts[vID]
		}
	}

	msh.Verts[vID] = best
}
