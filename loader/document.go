// Package loader implements the persisted mesh file format of spec.md
// §6: a JSON document naming vertices, tet/pri/hex index arrays, optional
// per-vertex topology hints, and an optional named boundary constraint
// model. Load produces a *mesh.Mesh and hands it off without retaining
// any alias into it, matching the "Mesh loader... does not retain
// aliases" collaborator contract of spec.md §6.
package loader

// Document is the on-disk JSON shape of spec.md §6. All index arrays are
// 0-based.
type Document struct {
	Verts [][3]float64 `json:"verts"`
	Tets  [][4]int     `json:"tets,omitempty"`
	Pris  [][6]int     `json:"pris,omitempty"`
	Hexs  [][8]int     `json:"hexs,omitempty"`

	Topos []TopoHint `json:"topos,omitempty"`

	Boundary *Boundary `json:"boundary,omitempty"`
}

// TopoHint is the optional per-vertex override of spec.md §6
// ("topos: [{isFixed, isBoundary, boundaryId}, ...]"). BoundaryID indexes
// Document.Boundary.Shapes when IsBoundary is true.
type TopoHint struct {
	IsFixed    bool `json:"isFixed"`
	IsBoundary bool `json:"isBoundary"`
	BoundaryID int  `json:"boundaryId"`
}

// BoundaryKind names the constraint models spec.md §6 recognizes.
type BoundaryKind string

const (
	Box      BoundaryKind = "Box"
	TetShape BoundaryKind = "Tet"
	Sphere   BoundaryKind = "Sphere"
	External BoundaryKind = "External"
)

// Boundary names the constraint model and its shape parameters.
type Boundary struct {
	Shapes []Shape `json:"shapes"`
}

// Shape is one named boundary primitive. Only the fields relevant to
// Kind are populated; the rest are zero.
type Shape struct {
	Kind BoundaryKind `json:"kind"`

	// Box: axis-aligned, Min/Max opposite corners.
	Min [3]float64 `json:"min,omitempty"`
	Max [3]float64 `json:"max,omitempty"`

	// Tet: four corner vertices of the bounding tetrahedron.
	Corners [4][3]float64 `json:"corners,omitempty"`

	// Sphere: center and radius.
	Center [3]float64 `json:"center,omitempty"`
	Radius float64    `json:"radius,omitempty"`
}
