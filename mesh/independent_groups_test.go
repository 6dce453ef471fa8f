package mesh_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/anisomesh/anisomesh/mesh"
	"github.com/anisomesh/anisomesh/vec3"
)

// gridMesh builds an nx x ny x nz lattice of unit hexahedra sharing
// vertices across cell boundaries, so most vertices carry many incident
// elements and the independent-group partition has real work to do.
func gridMesh(t *testing.T, nx, ny, nz int) *mesh.Mesh {
	t.Helper()
	m := mesh.New()

	id := func(x, y, z int) int { return (x*(ny+1)+y)*(nz+1) + z }
	ids := make([]int, (nx+1)*(ny+1)*(nz+1))
	for x := 0; x <= nx; x++ {
		for y := 0; y <= ny; y++ {
			for z := 0; z <= nz; z++ {
				ids[id(x, y, z)] = m.AddVert(vec3.Vec{X: float64(x), Y: float64(y), Z: float64(z)})
			}
		}
	}

	for x := 0; x < nx; x++ {
		for y := 0; y < ny; y++ {
			for z := 0; z < nz; z++ {
				corners := [8]int{
					ids[id(x, y, z)], ids[id(x+1, y, z)], ids[id(x+1, y+1, z)], ids[id(x, y+1, z)],
					ids[id(x, y, z+1)], ids[id(x+1, y, z+1)], ids[id(x+1, y+1, z+1)], ids[id(x, y+1, z+1)],
				}
				m.AddHex(corners)
			}
		}
	}

	m.CompileTopology(nil)
	return m
}

// TestIndependentGroupsArePairwiseDisjointAcrossSharedElements exhaustively
// checks spec.md §3's invariant: within a single independent group, no two
// vertices may share an incident element, over a lattice dense enough that
// most vertices border many hexes.
func TestIndependentGroupsArePairwiseDisjointAcrossSharedElements(t *testing.T) {
	m := gridMesh(t, 3, 3, 2)

	assert.NotEmpty(t, m.IndependentGroups)

	seen := map[int]int{}
	for gid, group := range m.IndependentGroups {
		for _, v := range group {
			assert.NotContains(t, seen, v, "vertex %d assigned to more than one group", v)
			seen[v] = gid
		}
	}
	assert.Len(t, seen, len(m.Verts), "every vertex must be classified into exactly one group")

	sharesElement := func(a, b int) bool {
		for _, ea := range m.Topos[a].NeighborElems {
			for _, eb := range m.Topos[b].NeighborElems {
				if ea == eb {
					return true
				}
			}
		}
		return false
	}

	for gid, group := range m.IndependentGroups {
		for i := 0; i < len(group); i++ {
			for j := i + 1; j < len(group); j++ {
				assert.False(t, sharesElement(group[i], group[j]),
					"group %d: vertices %d and %d share an incident element", gid, group[i], group[j])
			}
		}
	}
}
