package mesh

import (
	"sort"
	"strconv"

	"github.com/katalvlaran/lvlath/graph/algorithms"
	"github.com/katalvlaran/lvlath/graph/core"
)

// BuildIndependentGroups partitions vertex ids into sets such that no two
// vertices in the same set share an incident element (spec.md §3). It is
// built greedily: iterate vertices by ascending id; for every vertex not
// yet classified, walk its connected component with a breadth-first
// traversal and assign each vertex visited the lowest group id not
// already used by a conflict neighbor that has been classified, opening a
// new group only when every existing group is already taken by a
// conflict neighbor.
//
// The conflict graph connects every pair of vertices that co-occur in
// any element's vertex list, not merely NeighborVerts edge-adjacency:
// two corners of a Hex or Pri can share the element (e.g. a face or
// space diagonal) without being connected by any entry in hexEdges/
// priEdges, and leaving such a pair uncolored would violate spec.md §5's
// Thread backend guarantee ("no synchronization is needed inside a
// group"). The traversal itself is github.com/katalvlaran/lvlath's BFS
// (graph/algorithms), run once per connected component over that
// conflict graph; classification is driven from its OnVisit hook.
func BuildIndependentGroups(m *Mesh, log logFn) [][]int {
	n := len(m.Verts)
	if n == 0 {
		return nil
	}

	g := core.NewGraph(false, false)
	for v := 0; v < n; v++ {
		g.AddVertex(&core.Vertex{ID: strconv.Itoa(v)})
	}
	m.ForEachElem(func(ref ElemRef) {
		verts := m.ElemVerts(ref)
		for i := 0; i < len(verts); i++ {
			for j := i + 1; j < len(verts); j++ {
				a, b := verts[i], verts[j]
				if a == b {
					continue
				}
				if a > b {
					a, b = b, a
				}
				if !g.HasEdge(strconv.Itoa(a), strconv.Itoa(b)) {
					g.AddEdge(strconv.Itoa(a), strconv.Itoa(b), 0)
				}
			}
		}
	})

	group := make([]int, n)
	for i := range group {
		group[i] = -1
	}

	assign := func(v *core.Vertex, depth int) error {
		idx, err := strconv.Atoi(v.ID)
		if err != nil {
			return nil
		}
		if group[idx] != -1 {
			return nil
		}
		used := map[int]bool{}
		for _, nb := range g.Neighbors(v.ID) {
			nbIdx, err := strconv.Atoi(nb.ID)
			if err != nil {
				continue
			}
			if group[nbIdx] != -1 {
				used[group[nbIdx]] = true
			}
		}
		gid := 0
		for used[gid] {
			gid++
		}
		group[idx] = gid
		return nil
	}

	for v := 0; v < n; v++ {
		if group[v] != -1 {
			continue
		}
		if _, err := algorithms.BFS(g, strconv.Itoa(v), &algorithms.BFSOptions{
			OnVisit: assign,
		}); err != nil && log != nil {
			log("mesh: independent-group BFS from vertex %d: %v", v, err)
		}
	}

	groupCount := 0
	for _, gid := range group {
		if gid+1 > groupCount {
			groupCount = gid + 1
		}
	}
	groups := make([][]int, groupCount)
	for v, gid := range group {
		groups[gid] = append(groups[gid], v)
	}
	for _, gr := range groups {
		sort.Ints(gr)
	}
	return groups
}
