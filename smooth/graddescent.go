package smooth

import (
	"gonum.org/v1/gonum/optimize"

	"github.com/anisomesh/anisomesh/crew"
	"github.com/anisomesh/anisomesh/mesh"
	"github.com/anisomesh/anisomesh/vec3"
)

// GradientDescent proposes a position found by a numerical-gradient
// descent on patch quality with backtracking line search, standing in
// for the source's hand-rolled central-difference gradient + line search
// (spec.md §4.4) with gonum/optimize's GradientDescent method.
type GradientDescent struct{}

func (GradientDescent) Name() string { return "Gradient Descent" }

func (GradientDescent) Propose(msh *mesh.Mesh, cr crew.Crew, opts Options, vID int) []mesh.Vertex {
	original := msh.Verts[vID].P
	defer func() { msh.Verts[vID].P = original }()

	localSize := cr.Measurer.ComputeLocalElementSize(msh, vID)
	if localSize <= 0 {
		return nil
	}
	h := localSize * 1e-3

	objective := func(x []float64) float64 {
		msh.Verts[vID].P = vec3.Vec{X: x[0], Y: x[1], Z: x[2]}
		return -cr.Evaluator.PatchQuality(msh, cr.Sampler, cr.Measurer, vID)
	}
	gradient := func(grad, x []float64) {
		for i := 0; i < 3; i++ {
			xp := append([]float64(nil), x...)
			xm := append([]float64(nil), x...)
			xp[i] += h
			xm[i] -= h
			grad[i] = (objective(xp) - objective(xm)) / (2 * h)
		}
	}

	problem := optimize.Problem{Func: objective, Grad: gradient}
	method := &optimize.GradientDescent{Linesearcher: &optimize.Backtracking{}}
	settings := &optimize.Settings{MajorIterations: opts.SecurityCycleCount}

	result, err := optimize.Minimize(problem, []float64{original.X, original.Y, original.Z}, settings, method)
	if err != nil || result == nil {
		return nil
	}
	return []mesh.Vertex{{P: vec3.Vec{X: result.X[0], Y: result.X[1], Z: result.X[2]}}}
}
