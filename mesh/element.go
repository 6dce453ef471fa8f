// Package mesh implements the vertex/element/topology data model of
// spec.md §3: three polyhedron variants (Tet, Pri, Hex), per-vertex
// topology, the boundary constraint lattice and independent vertex
// groups.
package mesh

// Kind tags the three polyhedron variants a Mesh can hold.
type Kind uint8

const (
	KindTet Kind = iota
	KindPri
	KindHex
)

func (k Kind) String() string {
	switch k {
	case KindTet:
		return "tet"
	case KindPri:
		return "pri"
	case KindHex:
		return "hex"
	default:
		return "unknown"
	}
}

// ElemRef identifies one element by kind and index into its array.
type ElemRef struct {
	Kind Kind
	ID   int
}

// Tet is a 4-node tetrahedron: 4 vertices, 6 edges, 4 triangular faces.
type Tet struct {
	V [4]int
	// RefMetric optionally indexes a per-element reference metric
	// (spec.md §3: "a reference metric index").
	RefMetric int
}

// Pri is a 6-node triangular prism: 6 vertices, 9 edges, 8 triangular
// faces (2 triangular caps + 3 quad faces split in two).
type Pri struct {
	V         [6]int
	RefMetric int
}

// Hex is an 8-node hexahedron: 8 vertices, 12 edges, 12 triangular faces
// (6 quad faces split in two).
type Hex struct {
	V         [8]int
	RefMetric int
}

// tetEdges are the 6 local edges of a Tet, as (local) vertex index pairs.
var tetEdges = [6][2]int{
	{0, 1}, {0, 2}, {0, 3}, {1, 2}, {1, 3}, {2, 3},
}

// tetFaces are the 4 local triangular faces of a Tet, outward-oriented.
var tetFaces = [4][3]int{
	{1, 2, 3}, {0, 3, 2}, {0, 1, 3}, {0, 2, 1},
}

// priEdges are the 9 local edges of a Pri.
var priEdges = [9][2]int{
	{0, 1}, {1, 2}, {2, 0}, // bottom cap
	{3, 4}, {4, 5}, {5, 3}, // top cap
	{0, 3}, {1, 4}, {2, 5}, // verticals
}

// priFaces are the 8 local triangular faces of a Pri (quads pre-split).
var priFaces = [8][3]int{
	{0, 2, 1}, // bottom cap
	{3, 4, 5}, // top cap
	{0, 1, 4}, {0, 4, 3}, // side 0-1
	{1, 2, 5}, {1, 5, 4}, // side 1-2
	{2, 0, 3}, {2, 3, 5}, // side 2-0
}

// priDecomp is the canonical 3-tet decomposition of a Pri used for volume
// computation and GPU streaming (spec.md §3).
var priDecomp = [3][4]int{
	{0, 1, 2, 5},
	{0, 1, 5, 4},
	{0, 4, 5, 3},
}

// hexEdges are the 12 local edges of a Hex.
var hexEdges = [12][2]int{
	{0, 1}, {1, 2}, {2, 3}, {3, 0}, // bottom
	{4, 5}, {5, 6}, {6, 7}, {7, 4}, // top
	{0, 4}, {1, 5}, {2, 6}, {3, 7}, // verticals
}

// hexFaces are the 12 local triangular faces of a Hex (6 quads pre-split).
var hexFaces = [12][3]int{
	{0, 3, 2}, {0, 2, 1}, // bottom
	{4, 5, 6}, {4, 6, 7}, // top
	{0, 1, 5}, {0, 5, 4}, // side 0
	{1, 2, 6}, {1, 6, 5}, // side 1
	{2, 3, 7}, {2, 7, 6}, // side 2
	{3, 0, 4}, {3, 4, 7}, // side 3
}

// hexDecomp is the canonical 6-tet decomposition of a Hex used for volume
// computation and GPU streaming (spec.md §3).
var hexDecomp = [6][4]int{
	{0, 1, 3, 4},
	{1, 2, 3, 6},
	{1, 3, 4, 6},
	{3, 4, 6, 7},
	{1, 4, 5, 6},
	{0, 3, 4, 1},
}

// Edges returns the local edge table for k.
func (k Kind) Edges() [][2]int {
	switch k {
	case KindTet:
		return sliceOf(tetEdges[:])
	case KindPri:
		return sliceOf(priEdges[:])
	default:
		return sliceOf(hexEdges[:])
	}
}

// Faces returns the local triangular-face table for k.
func (k Kind) Faces() [][3]int {
	switch k {
	case KindTet:
		return sliceOf(tetFaces[:])
	case KindPri:
		return sliceOf(priFaces[:])
	default:
		return sliceOf(hexFaces[:])
	}
}

// VertCount returns the number of corner vertices of k.
func (k Kind) VertCount() int {
	switch k {
	case KindTet:
		return 4
	case KindPri:
		return 6
	default:
		return 8
	}
}

func sliceOf[T any](a []T) []T {
	out := make([]T, len(a))
	copy(out, a)
	return out
}
