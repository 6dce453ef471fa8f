package topo

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/anisomesh/anisomesh/mesh"
)

func TestSharedFaceFindsOppositeVertices(t *testing.T) {
	t1 := mesh.Tet{V: [4]int{0, 1, 2, 3}}
	t2 := mesh.Tet{V: [4]int{0, 1, 2, 4}}

	shared, a, b, ok := sharedFace(t1, t2)
	assert.True(t, ok)
	assert.Equal(t, 3, a)
	assert.Equal(t, 4, b)
	sharedSet := map[int]bool{shared[0]: true, shared[1]: true, shared[2]: true}
	assert.True(t, sharedSet[0] && sharedSet[1] && sharedSet[2])
}

func TestSharedFaceRejectsEdgeOnlyOverlap(t *testing.T) {
	t1 := mesh.Tet{V: [4]int{0, 1, 2, 3}}
	t2 := mesh.Tet{V: [4]int{0, 1, 4, 5}}

	_, _, _, ok := sharedFace(t1, t2)
	assert.False(t, ok)
}

func TestRingOfFindsTriangularRing(t *testing.T) {
	m := mesh.New()
	m.AddTet([4]int{0, 1, 2, 3})
	m.AddTet([4]int{0, 1, 3, 4})
	m.AddTet([4]int{0, 1, 4, 2})

	ring, tetIdxs, err := ringOf(m, 0, 1)
	assert.NoError(t, err)
	assert.Len(t, ring, 3)
	assert.Len(t, tetIdxs, 3)

	seen := map[int]bool{}
	for _, r := range ring {
		seen[r] = true
	}
	assert.True(t, seen[2] && seen[3] && seen[4])
}

func TestRingOfRejectsNonManifoldEdge(t *testing.T) {
	m := mesh.New()
	m.AddTet([4]int{0, 1, 2, 3})

	_, _, err := ringOf(m, 0, 1)
	assert.Error(t, err)
}

func TestFanTrianglesCoversPolygon(t *testing.T) {
	tris := fanTriangles([]int{10, 20, 30, 40, 50})
	assert.Len(t, tris, 3)
	assert.Equal(t, [3]int{10, 20, 30}, tris[0])
	assert.Equal(t, [3]int{10, 30, 40}, tris[1])
	assert.Equal(t, [3]int{10, 40, 50}, tris[2])
}

func TestCanonicalEdgeIsOrderless(t *testing.T) {
	assert.Equal(t, canonicalEdge(3, 7), canonicalEdge(7, 3))
}
