package mesh

import "github.com/anisomesh/anisomesh/vec3"

// ConstraintID indexes a node in a Mesh's constraint Arena. The zero value
// is VolumeConstraintID, the always-present free constraint.
type ConstraintID int

// VolumeConstraintID is the free constraint: Project is the identity.
// It is always present at index 0 of a fresh Arena.
const VolumeConstraintID ConstraintID = 0

// ConstraintKind names the four constraint dimensions of spec.md §3.
type ConstraintKind uint8

const (
	Volume ConstraintKind = iota
	Vertex
	Edge
	Face
)

// Constraint is a projector R3 -> R3 plus its place in the lattice: Parents
// are the coarser constraints this one specializes (an Edge constraint
// shared by two Face constraints has both as parents; a Vertex shared by
// several Edges has all of them as parents).
type Constraint struct {
	Kind    ConstraintKind
	Parents []ConstraintID
	Project func(vec3.Vec) vec3.Vec
}

// Arena owns every constraint node referenced by a Mesh's vertices,
// replacing the source's cyclic Mesh<->VertexConstraint<->EdgeConstraint
// <->FaceConstraint references (spec.md §9) with plain index lookups.
type Arena struct {
	nodes []Constraint
}

// NewArena returns an Arena pre-populated with the free VolumeConstraint.
func NewArena() *Arena {
	return &Arena{nodes: []Constraint{{
		Kind:    Volume,
		Project: func(p vec3.Vec) vec3.Vec { return p },
	}}}
}

// Add registers a new constraint and returns its id.
func (a *Arena) Add(c Constraint) ConstraintID {
	a.nodes = append(a.nodes, c)
	return ConstraintID(len(a.nodes) - 1)
}

// AddVertexConstraint pins a point in space; parents are the edges (if
// any) the vertex sits on.
func (a *Arena) AddVertexConstraint(p vec3.Vec, parents ...ConstraintID) ConstraintID {
	return a.Add(Constraint{
		Kind:    Vertex,
		Parents: parents,
		Project: func(vec3.Vec) vec3.Vec { return p },
	})
}

// AddEdgeConstraint registers a 1-D curve projector; parents are the faces
// (if any) the edge bounds.
func (a *Arena) AddEdgeConstraint(project func(vec3.Vec) vec3.Vec, parents ...ConstraintID) ConstraintID {
	return a.Add(Constraint{Kind: Edge, Parents: parents, Project: project})
}

// AddFaceConstraint registers a 2-D surface projector.
func (a *Arena) AddFaceConstraint(project func(vec3.Vec) vec3.Vec) ConstraintID {
	return a.Add(Constraint{Kind: Face, Project: project})
}

// Project applies the constraint's projector.
func (a *Arena) Project(id ConstraintID, p vec3.Vec) vec3.Vec {
	return a.nodes[id].Project(p)
}

// Kind returns the constraint's dimension.
func (a *Arena) Kind(id ConstraintID) ConstraintKind {
	return a.nodes[id].Kind
}

// IsConstrained reports whether id is anything other than the free volume
// constraint.
func (a *Arena) IsConstrained(id ConstraintID) bool {
	return id != VolumeConstraintID
}

// isDescendant reports whether x specializes ancestor, i.e. ancestor is
// reachable by walking x's Parents chain (breadth-first, since a node may
// have more than one parent).
func (a *Arena) isDescendant(x, ancestor ConstraintID) bool {
	if x == ancestor {
		return true
	}
	queue := append([]ConstraintID(nil), a.nodes[x].Parents...)
	seen := map[ConstraintID]bool{x: true}
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		if seen[c] {
			continue
		}
		seen[c] = true
		if c == ancestor {
			return true
		}
		queue = append(queue, a.nodes[c].Parents...)
	}
	return false
}

// Meet returns the most specific constraint consistent with both a and b:
// whichever one specializes the other (every constraint specializes the
// free VolumeConstraintID); for two unrelated constraints, the most
// general registered constraint that specializes both, or
// VolumeConstraintID if none does. This single lattice operation serves
// both of the spec's named uses: Split, combining two Face constraints into
// their shared Edge when a new vertex is inserted on a boundary, and Merge,
// combining the constraints of two vertices being collapsed into one
// (spec.md §3, §4.5).
func (a *Arena) Meet(x, y ConstraintID) ConstraintID {
	if x == y || y == VolumeConstraintID {
		return x
	}
	if x == VolumeConstraintID {
		return y
	}
	if a.isDescendant(x, y) {
		return x
	}
	if a.isDescendant(y, x) {
		return y
	}
	best := VolumeConstraintID
	for i := range a.nodes {
		c := ConstraintID(i)
		if c == VolumeConstraintID || !a.isDescendant(c, x) || !a.isDescendant(c, y) {
			continue
		}
		if best == VolumeConstraintID || a.nodes[c].Kind > a.nodes[best].Kind {
			best = c
		}
	}
	return best
}

// Split combines two constraints when subdividing a boundary feature.
func (a *Arena) Split(x, y ConstraintID) ConstraintID { return a.Meet(x, y) }

// Merge combines two vertices' constraints when they collapse into one.
func (a *Arena) Merge(x, y ConstraintID) ConstraintID { return a.Meet(x, y) }
