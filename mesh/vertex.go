package mesh

import (
	"github.com/anisomesh/anisomesh/metric"
	"github.com/anisomesh/anisomesh/vec3"
)

// Vertex is a mesh node: its position and an optional cached metric
// tensor, used by smoothers/measurers to avoid resampling at a position
// that hasn't moved since the last pass (spec.md §3).
type Vertex struct {
	P        vec3.Vec
	Cached   *metric.Tensor
	CacheHit bool
}

// Topo is a vertex's topology record (spec.md §3).
type Topo struct {
	IsFixed    bool
	IsBoundary bool
	// Constraint is the identity (VolumeConstraintID) when the vertex is
	// unconstrained, and indexes the owning Mesh's constraint Arena
	// otherwise.
	Constraint ConstraintID

	// NeighborVerts lists this vertex's unique undirected graph edges,
	// i.e. every vertex joined to this one by an element edge; vertices
	// across a prism or hex face or body diagonal are not listed.
	NeighborVerts []int
	// NeighborElems back-references every element incident to this
	// vertex.
	NeighborElems []ElemRef
}

// SnapToBoundary projects p onto this vertex's constraint surface. It is
// the identity when the vertex is unconstrained.
func (m *Mesh) SnapToBoundary(vID int, p vec3.Vec) vec3.Vec {
	return m.Constraints.Project(m.Topos[vID].Constraint, p)
}
