package smooth

import (
	"github.com/anisomesh/anisomesh/crew"
	"github.com/anisomesh/anisomesh/mesh"
)

// QualityLaplace proposes four positions on the line between the current
// position and the patch equilibrium, sampled at 0, 1-m, 1, 1+m of the
// interval (0 = current position, 1 = equilibrium, m = MoveCoeff), matching the source's QualityLaplaceSmoother
// (original_source/Smoothers/VertexWise/QualityLaplaceSmoother.cpp).
type QualityLaplace struct{}

func (QualityLaplace) Name() string { return "Quality Laplace" }

func (QualityLaplace) Propose(msh *mesh.Mesh, cr crew.Crew, opts Options, vID int) []mesh.Vertex {
	pos := msh.Verts[vID].P
	patchCenter := cr.Measurer.ComputeVertexEquilibrium(msh, cr.Sampler, vID)
	centerDist := patchCenter.Sub(pos)

	m := opts.MoveCoeff
	return []mesh.Vertex{
		{P: pos},
		{P: patchCenter.Sub(centerDist.Scale(m))},
		{P: patchCenter},
		{P: patchCenter.Add(centerDist.Scale(m))},
	}
}
