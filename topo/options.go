// Package topo implements the BATR topologist of spec.md §4.5: edge
// split/merge, face swap (2→3) and edge swap, each under a
// quality-nondecreasing or conformality guard. It is scoped to
// tetrahedral meshes, mirroring the original BatrTopologist's own guard
// (it only engages when the mesh holds tets and no pris/hexs); see
// DESIGN.md.
package topo

// Options configures one Restructure call.
type Options struct {
	// MinEdgeLength/MaxEdgeLength bound the edge-split/merge phase.
	MinEdgeLength float64
	MaxEdgeLength float64
	// MaxPassCount caps each phase's internal fixed-point loop (spec.md
	// §4.5: "20 passes").
	MaxPassCount int
}

// DefaultOptions mirrors the source's defaults: a 20-pass cap per phase
// and a [0.5, 1.5] edge length window around an implicit unit edge target.
func DefaultOptions() Options {
	return Options{
		MinEdgeLength: 0.5,
		MaxEdgeLength: 1.5,
		MaxPassCount:  20,
	}
}
