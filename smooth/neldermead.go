package smooth

import (
	"gonum.org/v1/gonum/optimize"

	"github.com/anisomesh/anisomesh/crew"
	"github.com/anisomesh/anisomesh/mesh"
	"github.com/anisomesh/anisomesh/vec3"
)

// NelderMead runs gonum's downhill-simplex method to locally maximize
// patch quality, standing in for the source's hand-rolled 3-D simplex
// (alpha=1 reflection, beta=0.5 contraction, gamma=2 expansion, delta=0.5
// shrink are gonum/optimize's own NelderMead defaults; this adapter only
// supplies the objective and the simplex's initial size, spec.md §4.4).
type NelderMead struct{}

func (NelderMead) Name() string { return "Nelder-Mead" }

func (NelderMead) Propose(msh *mesh.Mesh, cr crew.Crew, opts Options, vID int) []mesh.Vertex {
	original := msh.Verts[vID].P
	defer func() { msh.Verts[vID].P = original }()

	localSize := cr.Measurer.ComputeLocalElementSize(msh, vID)
	if localSize <= 0 {
		return nil
	}
	simplexSize := localSize * opts.LocalSizeToNodeShift
	if simplexSize <= 0 {
		simplexSize = localSize
	}

	objective := func(x []float64) float64 {
		msh.Verts[vID].P = vec3.Vec{X: x[0], Y: x[1], Z: x[2]}
		return -cr.Evaluator.PatchQuality(msh, cr.Sampler, cr.Measurer, vID)
	}

	problem := optimize.Problem{Func: objective}
	method := &optimize.NelderMead{SimplexSize: simplexSize}
	settings := &optimize.Settings{MajorIterations: opts.SecurityCycleCount}

	result, err := optimize.Minimize(problem, []float64{original.X, original.Y, original.Z}, settings, method)
	if err != nil || result == nil {
		return nil
	}
	return []mesh.Vertex{{P: vec3.Vec{X: result.X[0], Y: result.X[1], Z: result.X[2]}}}
}
