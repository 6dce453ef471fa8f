package loader

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/anisomesh/anisomesh/mesh"
	"github.com/anisomesh/anisomesh/vec3"
)

// legacyMagic identifies the legacy binary carry-forward format of
// spec.md §6 ("a legacy binary carry-forward format (suffix identifying
// the mesher provenance) is accepted on load"). The spec leaves the exact
// byte layout unspecified; this module picks one fixed, documented
// layout (magic, four little-endian uint32 element counts, then raw
// float64/int32 arrays) rather than reverse-engineering a mesher this
// pack doesn't include (see DESIGN.md).
var legacyMagic = [4]byte{'A', 'M', 'S', 'H'}

// legacyExt is the suffix that selects the legacy binary reader; every
// other extension is parsed as the JSON Document format.
const legacyExt = ".amsh"

// Load reads a mesh file at path, selecting JSON or the legacy binary
// format by extension, and builds a *mesh.Mesh from it. The returned
// mesh is freshly built from the file's contents; nothing in the
// returned value aliases loader-internal state.
func Load(path string) (*mesh.Mesh, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loader: read %s: %w", path, err)
	}

	if strings.EqualFold(filepath.Ext(path), legacyExt) {
		return loadLegacyBinary(data)
	}
	return loadJSON(data)
}

func loadJSON(data []byte) (*mesh.Mesh, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("loader: parse mesh document: %w", err)
	}
	return build(doc)
}

// build turns a Document into a *mesh.Mesh: vertices first (so index
// arrays resolve), then elements, then topology hints and boundary
// constraints, finishing with a CompileTopology call to populate
// derived neighbor/independent-group state.
func build(doc Document) (*mesh.Mesh, error) {
	m := mesh.New()

	for _, v := range doc.Verts {
		m.AddVert(vec3.Vec{X: v[0], Y: v[1], Z: v[2]})
	}
	n := len(m.Verts)

	for _, t := range doc.Tets {
		if err := checkIndices(t[:], n); err != nil {
			return nil, fmt.Errorf("loader: tet: %w", err)
		}
		m.AddTet(t)
	}
	for _, p := range doc.Pris {
		if err := checkIndices(p[:], n); err != nil {
			return nil, fmt.Errorf("loader: pri: %w", err)
		}
		m.AddPri(p)
	}
	for _, h := range doc.Hexs {
		if err := checkIndices(h[:], n); err != nil {
			return nil, fmt.Errorf("loader: hex: %w", err)
		}
		m.AddHex(h)
	}

	var constraintIDs []mesh.ConstraintID
	if doc.Boundary != nil {
		constraintIDs = make([]mesh.ConstraintID, len(doc.Boundary.Shapes))
		for i, s := range doc.Boundary.Shapes {
			id, err := addShapeConstraint(m.Constraints, s)
			if err != nil {
				return nil, fmt.Errorf("loader: boundary shape %d: %w", i, err)
			}
			constraintIDs[i] = id
		}
	}

	for i, hint := range doc.Topos {
		if i >= n {
			break
		}
		m.Topos[i].IsFixed = hint.IsFixed
		m.Topos[i].IsBoundary = hint.IsBoundary
		if hint.IsBoundary && hint.BoundaryID >= 0 && hint.BoundaryID < len(constraintIDs) {
			m.Topos[i].Constraint = constraintIDs[hint.BoundaryID]
		}
	}

	m.CompileTopology(nil)
	return m, nil
}

func checkIndices(ids []int, n int) error {
	for _, id := range ids {
		if id < 0 || id >= n {
			return fmt.Errorf("vertex index %d out of range [0,%d)", id, n)
		}
	}
	return nil
}

// loadLegacyBinary reads the fixed layout documented on legacyMagic.
func loadLegacyBinary(data []byte) (*mesh.Mesh, error) {
	if len(data) < 4+4*4 || data[0] != legacyMagic[0] || data[1] != legacyMagic[1] ||
		data[2] != legacyMagic[2] || data[3] != legacyMagic[3] {
		return nil, fmt.Errorf("loader: not a recognized legacy mesh file (bad magic)")
	}
	r := data[4:]
	vertCount := binary.LittleEndian.Uint32(r[0:4])
	tetCount := binary.LittleEndian.Uint32(r[4:8])
	priCount := binary.LittleEndian.Uint32(r[8:12])
	hexCount := binary.LittleEndian.Uint32(r[12:16])
	r = r[16:]

	doc := Document{
		Verts: make([][3]float64, vertCount),
		Tets:  make([][4]int, tetCount),
		Pris:  make([][6]int, priCount),
		Hexs:  make([][8]int, hexCount),
	}

	var err error
	for i := range doc.Verts {
		for c := 0; c < 3; c++ {
			if r, doc.Verts[i][c], err = readFloat64(r); err != nil {
				return nil, fmt.Errorf("loader: legacy verts: %w", err)
			}
		}
	}
	for i := range doc.Tets {
		for c := 0; c < 4; c++ {
			var id int
			if r, id, err = readInt32(r); err != nil {
				return nil, fmt.Errorf("loader: legacy tets: %w", err)
			}
			doc.Tets[i][c] = id
		}
	}
	for i := range doc.Pris {
		for c := 0; c < 6; c++ {
			var id int
			if r, id, err = readInt32(r); err != nil {
				return nil, fmt.Errorf("loader: legacy pris: %w", err)
			}
			doc.Pris[i][c] = id
		}
	}
	for i := range doc.Hexs {
		for c := 0; c < 8; c++ {
			var id int
			if r, id, err = readInt32(r); err != nil {
				return nil, fmt.Errorf("loader: legacy hexs: %w", err)
			}
			doc.Hexs[i][c] = id
		}
	}

	return build(doc)
}

func readFloat64(r []byte) ([]byte, float64, error) {
	if len(r) < 8 {
		return nil, 0, fmt.Errorf("truncated record")
	}
	bits := binary.LittleEndian.Uint64(r[:8])
	return r[8:], math.Float64frombits(bits), nil
}

func readInt32(r []byte) ([]byte, int, error) {
	if len(r) < 4 {
		return nil, 0, fmt.Errorf("truncated record")
	}
	return r[4:], int(int32(binary.LittleEndian.Uint32(r[:4]))), nil
}
