package evaluate

import (
	"github.com/anisomesh/anisomesh/measure"
	"github.com/anisomesh/anisomesh/mesh"
	"github.com/anisomesh/anisomesh/metric"
	"github.com/anisomesh/anisomesh/vec3"
)

// ElementQuality dispatches to the right Evaluator method for ref's kind;
// exported so element-wise and multi-element smoothers can score a single
// incident element directly (spec.md §4.4's "optimize over all incident
// elements simultaneously").
func ElementQuality(evaluator Evaluator, sampler metric.Sampler, m measure.Measurer, msh *mesh.Mesh, ref mesh.ElemRef) float64 {
	return evalOne(evaluator, sampler, m, msh, ref, nil)
}

// evalOne dispatches to the right Evaluator method for ref's kind, so
// EvaluateMesh can walk a mesh's three element arrays uniformly. A
// non-positive quality bumps stats's per-kind degenerate counter when
// stats is non-nil.
func evalOne(evaluator Evaluator, sampler metric.Sampler, m measure.Measurer, msh *mesh.Mesh, ref mesh.ElemRef, stats *Stats) float64 {
	pos := msh.ElemPositions(ref)
	var q float64
	var kind byte
	switch ref.Kind {
	case mesh.KindTet:
		var v [4]vec3.Vec
		copy(v[:], pos)
		q = evaluator.TetQuality(sampler, m, v, msh.Tets[ref.ID])
		kind = kindTet
	case mesh.KindPri:
		var v [6]vec3.Vec
		copy(v[:], pos)
		q = evaluator.PriQuality(sampler, m, v, msh.Pris[ref.ID])
		kind = kindPri
	default:
		var v [8]vec3.Vec
		copy(v[:], pos)
		q = evaluator.HexQuality(sampler, m, v, msh.Hexs[ref.ID])
		kind = kindHex
	}
	if q <= 0 {
		stats.addKind(kind)
	}
	return q
}
