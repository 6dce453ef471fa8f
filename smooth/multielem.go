package smooth

import (
	"math"

	"gonum.org/v1/gonum/optimize"

	"github.com/anisomesh/anisomesh/crew"
	"github.com/anisomesh/anisomesh/evaluate"
	"github.com/anisomesh/anisomesh/mesh"
	"github.com/anisomesh/anisomesh/vec3"
)

// minIncidentQuality scores vId by the minimum quality across ALL of its
// incident elements, rather than the harmonic-mean patch quality — the
// "reduced coordinate basis" objective spec.md §4.4 describes for the
// Multi-Elem variants (still only vId's 3 coordinates move).
func minIncidentQuality(msh *mesh.Mesh, cr crew.Crew, vID int) float64 {
	refs := msh.Topos[vID].NeighborElems
	if len(refs) == 0 {
		return 0
	}
	min := math.Inf(1)
	for _, ref := range refs {
		q := evaluate.ElementQuality(cr.Evaluator, cr.Sampler, cr.Measurer, msh, ref)
		if q < min {
			min = q
		}
	}
	return min
}

// MultiElemNM is the Multi-Elem Nelder-Mead variant of spec.md §4.4.
type MultiElemNM struct{}

func (MultiElemNM) Name() string { return "Multi-Elem Nelder-Mead" }

func (MultiElemNM) Propose(msh *mesh.Mesh, cr crew.Crew, opts Options, vID int) []mesh.Vertex {
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
		return -minIncidentQuality(msh, cr, vID)
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

// MultiElemGD is the Multi-Elem Gradient-Descent variant of spec.md §4.4.
type MultiElemGD struct{}

func (MultiElemGD) Name() string { return "Multi-Elem Gradient Descent" }

func (MultiElemGD) Propose(msh *mesh.Mesh, cr crew.Crew, opts Options, vID int) []mesh.Vertex {
	original := msh.Verts[vID].P
	defer func() { msh.Verts[vID].P = original }()

	localSize := cr.Measurer.ComputeLocalElementSize(msh, vID)
	if localSize <= 0 {
		return nil
	}
	h := localSize * 1e-3

	objective := func(x []float64) float64 {
		msh.Verts[vID].P = vec3.Vec{X: x[0], Y: x[1], Z: x[2]}
		return -minIncidentQuality(msh, cr, vID)
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
