package loader_test

import (
	"encoding/binary"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anisomesh/anisomesh/loader"
	"github.com/anisomesh/anisomesh/vec3"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadJSONBuildsOneTet(t *testing.T) {
	path := writeFile(t, "tet.json", `{
		"verts": [[0,0,0],[1,0,0],[0,1,0],[0,0,1]],
		"tets": [[0,1,2,3]],
		"topos": [{"isFixed": true}, {"isFixed": true}, {"isFixed": true}, {}]
	}`)

	m, err := loader.Load(path)
	require.NoError(t, err)
	assert.Len(t, m.Verts, 4)
	assert.Len(t, m.Tets, 1)
	assert.True(t, m.Topos[0].IsFixed)
	assert.False(t, m.Topos[3].IsFixed)
	assert.NotEmpty(t, m.Topos[0].NeighborVerts)
}

func TestLoadJSONRejectsOutOfRangeIndex(t *testing.T) {
	path := writeFile(t, "bad.json", `{
		"verts": [[0,0,0],[1,0,0],[0,1,0]],
		"tets": [[0,1,2,9]]
	}`)

	_, err := loader.Load(path)
	assert.Error(t, err)
}

func TestLoadJSONWithBoxBoundaryProjectsOntoFace(t *testing.T) {
	path := writeFile(t, "boxed.json", `{
		"verts": [[0,0,0],[1,0,0],[0,1,0],[0,0,1]],
		"tets": [[0,1,2,3]],
		"topos": [{"isBoundary": true, "boundaryId": 0}],
		"boundary": {"shapes": [{"kind": "Box", "min": [0,0,0], "max": [1,1,1]}]}
	}`)

	m, err := loader.Load(path)
	require.NoError(t, err)
	assert.True(t, m.Topos[0].IsBoundary)
	assert.NotEqual(t, 0, int(m.Topos[0].Constraint))

	projected := m.SnapToBoundary(0, vec3.Vec{X: 5, Y: 5, Z: 5})
	assert.Equal(t, 1.0, projected.X)
	assert.Equal(t, 1.0, projected.Y)
	assert.Equal(t, 1.0, projected.Z)
}

func TestLoadLegacyBinaryRoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "legacy.amsh")
	var buf []byte
	buf = append(buf, 'A', 'M', 'S', 'H')
	buf = appendUint32(buf, 4) // verts
	buf = appendUint32(buf, 1) // tets
	buf = appendUint32(buf, 0) // pris
	buf = appendUint32(buf, 0) // hexs

	verts := [][3]float64{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
	for _, v := range verts {
		for _, c := range v {
			buf = appendFloat64(buf, c)
		}
	}
	tet := [4]int32{0, 1, 2, 3}
	for _, id := range tet {
		buf = appendUint32(buf, uint32(id))
	}

	require.NoError(t, os.WriteFile(path, buf, 0o644))

	m, err := loader.Load(path)
	require.NoError(t, err)
	assert.Len(t, m.Verts, 4)
	assert.Len(t, m.Tets, 1)
}

func appendUint32(buf []byte, v uint32) []byte {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	return append(buf, b[:]...)
}

func appendFloat64(buf []byte, v float64) []byte {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], math.Float64bits(v))
	return append(buf, b[:]...)
}
