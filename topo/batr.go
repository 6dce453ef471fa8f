package topo

import (
	"github.com/anisomesh/anisomesh/crew"
	"github.com/anisomesh/anisomesh/mesh"
)

// Batr is the BATR topologist of spec.md §4.5.
type Batr struct{}

// Restructure runs edge split/merge, then face swap, then edge swap,
// repeating the three-phase cycle only while every phase still finds work
// (source's restructureMesh: "while(true) { if !A break; if !B break; if
// !C break }"): a cycle ends at the first phase that changes nothing, so
// the phases after it do not run in that cycle. Each phase recompiles
// topology before the next runs.
func (Batr) Restructure(msh *mesh.Mesh, cr crew.Crew, opts Options) Stats {
	var total Stats
	for {
		s1 := edgeSplitMerge(msh, cr, opts)
		total.add(s1)
		if !s1.changed() {
			break
		}

		s2 := faceSwap(msh, cr, opts)
		total.add(s2)
		if !s2.changed() {
			break
		}

		s3 := edgeSwap(msh, cr, opts)
		total.add(s3)
		if !s3.changed() {
			break
		}
	}
	return total
}
