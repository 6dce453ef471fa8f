package mesh

import (
	"sort"

	"github.com/anisomesh/anisomesh/vec3"
)

// Mesh is the vertex array, three element arrays (tet/pri/hex), per-vertex
// topology, boundary constraints and independent vertex groups of
// spec.md §3. Mutations are only ever performed by a smoother (vertex
// positions) or a topologist (vertex/element counts + neighbor lists);
// both must restore every invariant in §8 before returning.
type Mesh struct {
	Verts []Vertex
	Topos []Topo

	Tets []Tet
	Pris []Pri
	Hexs []Hex

	Constraints *Arena

	// IndependentGroups partitions vertex ids into sets with pairwise
	// disjoint incident-element sets (spec.md §3), rebuilt by
	// CompileTopology.
	IndependentGroups [][]int
}

// New returns an empty mesh with a fresh constraint arena.
func New() *Mesh {
	return &Mesh{Constraints: NewArena()}
}

// ElemVerts returns the vertex ids of the element referenced by ref.
func (m *Mesh) ElemVerts(ref ElemRef) []int {
	switch ref.Kind {
	case KindTet:
		v := m.Tets[ref.ID].V
		return v[:]
	case KindPri:
		v := m.Pris[ref.ID].V
		return v[:]
	default:
		v := m.Hexs[ref.ID].V
		return v[:]
	}
}

// ElemPositions returns the current vertex positions of ref, in local
// vertex order.
func (m *Mesh) ElemPositions(ref ElemRef) []vec3.Vec {
	ids := m.ElemVerts(ref)
	out := make([]vec3.Vec, len(ids))
	for i, id := range ids {
		out[i] = m.Verts[id].P
	}
	return out
}

// ElemCount returns the total element count across all three arrays.
func (m *Mesh) ElemCount() int {
	return len(m.Tets) + len(m.Pris) + len(m.Hexs)
}

// AddVert appends a new vertex and its (initially empty) topology record,
// returning its id.
func (m *Mesh) AddVert(p vec3.Vec) int {
	m.Verts = append(m.Verts, Vertex{P: p})
	m.Topos = append(m.Topos, Topo{Constraint: VolumeConstraintID})
	return len(m.Verts) - 1
}

// AddTet appends a tet element and returns its ElemRef.
func (m *Mesh) AddTet(v [4]int) ElemRef {
	m.Tets = append(m.Tets, Tet{V: v})
	return ElemRef{Kind: KindTet, ID: len(m.Tets) - 1}
}

// AddPri appends a pri element and returns its ElemRef.
func (m *Mesh) AddPri(v [6]int) ElemRef {
	m.Pris = append(m.Pris, Pri{V: v})
	return ElemRef{Kind: KindPri, ID: len(m.Pris) - 1}
}

// AddHex appends a hex element and returns its ElemRef.
func (m *Mesh) AddHex(v [8]int) ElemRef {
	m.Hexs = append(m.Hexs, Hex{V: v})
	return ElemRef{Kind: KindHex, ID: len(m.Hexs) - 1}
}

// ForEachElem calls f for every element in the mesh, tet/pri/hex order.
func (m *Mesh) ForEachElem(f func(ref ElemRef)) {
	for i := range m.Tets {
		f(ElemRef{Kind: KindTet, ID: i})
	}
	for i := range m.Pris {
		f(ElemRef{Kind: KindPri, ID: i})
	}
	for i := range m.Hexs {
		f(ElemRef{Kind: KindHex, ID: i})
	}
}

// CompileTopology rebuilds neighborVerts, neighborElems and the
// independent vertex groups from the current element arrays. It must be
// called after any mutation to the element/vertex-index arrays (by a
// topologist) to restore the invariants of spec.md §8 (1), (2), (4).
func (m *Mesh) CompileTopology(log logFn) {
	n := len(m.Verts)
	neighborSets := make([]map[int]bool, n)
	for i := range neighborSets {
		neighborSets[i] = map[int]bool{}
	}
	addElemRef := func(ref ElemRef, verts []int) {
		for _, v := range verts {
			m.Topos[v].NeighborElems = append(m.Topos[v].NeighborElems, ref)
		}
		for _, k := range ref.Kind.Edges() {
			a, b := verts[k[0]], verts[k[1]]
			neighborSets[a][b] = true
			neighborSets[b][a] = true
		}
	}

	for i := range m.Topos {
		m.Topos[i].NeighborElems = m.Topos[i].NeighborElems[:0]
	}

	m.ForEachElem(func(ref ElemRef) {
		addElemRef(ref, m.ElemVerts(ref))
	})

	for v := 0; v < n; v++ {
		neighbors := make([]int, 0, len(neighborSets[v]))
		for u := range neighborSets[v] {
			neighbors = append(neighbors, u)
		}
		sort.Ints(neighbors)
		m.Topos[v].NeighborVerts = neighbors
	}

	m.IndependentGroups = BuildIndependentGroups(m, log)
}

// logFn is the minimal logging hook CompileTopology and the topologist
// take, so this package does not depend on a concrete logger.
type logFn func(format string, args ...interface{})
