package evaluate

import (
	"math"

	"github.com/anisomesh/anisomesh/measure"
	"github.com/anisomesh/anisomesh/mesh"
	"github.com/anisomesh/anisomesh/metric"
	"github.com/anisomesh/anisomesh/vec3"
)

// MeanRatio is the mean-ratio shape measure of spec.md §4.3:
//
//	q = k * V^(2/3) / sum(edge_i^2)
//
// normalized per polyhedron kind so a genuinely regular instance of that
// kind (equilateral triangle cross-section for the prism, unit cube for
// the hex) scores exactly 1. The source's own self-test coordinates for
// the prism and hex are not actually regular; this module derives k from
// shapes that are, which is why Validate below uses its own reference
// vertices rather than replicating those (see DESIGN.md).
type MeanRatio struct{}

// kTet/kPri/kHex are the per-kind normalizing constants, computed once
// from a regular reference instance of each polyhedron kind.
var (
	kTet = regularTetK()
	kPri = regularPriK()
	kHex = regularHexK()
)

func regularTetK() float64 {
	v := regularTetVerts()
	sumSq := sumEdgeSqEuclid(v[:], mesh.KindTet.Edges())
	vol := math.Abs(tetVolumeRaw(v[0], v[1], v[2], v[3]))
	return sumSq / math.Pow(vol, 2.0/3.0)
}

func regularPriK() float64 {
	v := regularPriVerts()
	sumSq := sumEdgeSqEuclid(v[:], mesh.KindPri.Edges())
	vol := math.Abs(priVolumeRaw(v))
	return sumSq / math.Pow(vol, 2.0/3.0)
}

func regularHexK() float64 {
	v := regularHexVerts()
	sumSq := sumEdgeSqEuclid(v[:], mesh.KindHex.Edges())
	vol := math.Abs(hexVolumeRaw(v))
	return sumSq / math.Pow(vol, 2.0/3.0)
}

// regularTetVerts returns a unit-edge-length regular tetrahedron.
func regularTetVerts() [4]vec3.Vec {
	return [4]vec3.Vec{
		{X: 0, Y: 0, Z: 0},
		{X: 1, Y: 0, Z: 0},
		{X: 0.5, Y: math.Sqrt(3) / 2, Z: 0},
		{X: 0.5, Y: math.Sqrt(3) / 6, Z: math.Sqrt(6) / 3},
	}
}

// regularPriVerts returns a right prism over a unit-edge equilateral
// triangle with height 1, the prism's "most regular" instance.
func regularPriVerts() [6]vec3.Vec {
	return [6]vec3.Vec{
		{X: 0, Y: 0, Z: 0},
		{X: 1, Y: 0, Z: 0},
		{X: 0.5, Y: math.Sqrt(3) / 2, Z: 0},
		{X: 0, Y: 0, Z: 1},
		{X: 1, Y: 0, Z: 1},
		{X: 0.5, Y: math.Sqrt(3) / 2, Z: 1},
	}
}

// regularHexVerts returns a unit cube.
func regularHexVerts() [8]vec3.Vec {
	return [8]vec3.Vec{
		{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0}, {X: 1, Y: 1, Z: 0}, {X: 0, Y: 1, Z: 0},
		{X: 0, Y: 0, Z: 1}, {X: 1, Y: 0, Z: 1}, {X: 1, Y: 1, Z: 1}, {X: 0, Y: 1, Z: 1},
	}
}

func sumEdgeSqEuclid(v []vec3.Vec, edges [][2]int) float64 {
	total := 0.0
	for _, e := range edges {
		d := v[e[0]].Sub(v[e[1]])
		total += d.LengthSq()
	}
	return total
}

func tetVolumeRaw(a, b, c, d vec3.Vec) float64 {
	return b.Sub(a).Cross(c.Sub(a)).Dot(d.Sub(a)) / 6
}

func priVolumeRaw(v [6]vec3.Vec) float64 {
	decomp := [3][4]int{{0, 1, 2, 5}, {0, 1, 5, 4}, {0, 4, 5, 3}}
	total := 0.0
	for _, d := range decomp {
		total += tetVolumeRaw(v[d[0]], v[d[1]], v[d[2]], v[d[3]])
	}
	return total
}

func hexVolumeRaw(v [8]vec3.Vec) float64 {
	decomp := [6][4]int{
		{0, 1, 3, 4}, {1, 2, 3, 6}, {1, 3, 4, 6},
		{3, 4, 6, 7}, {1, 4, 5, 6}, {0, 3, 4, 1},
	}
	total := 0.0
	for _, d := range decomp {
		total += tetVolumeRaw(v[d[0]], v[d[1]], v[d[2]], v[d[3]])
	}
	return total
}

func sumEdgeSqMeasured(sampler metric.Sampler, m measure.Measurer, verts []vec3.Vec, edges [][2]int) float64 {
	total := 0.0
	for _, e := range edges {
		d := m.RiemannianDistance(sampler, verts[e[0]], verts[e[1]], nil)
		total += d * d
	}
	return total
}

func (MeanRatio) TetQuality(sampler metric.Sampler, m measure.Measurer, verts [4]vec3.Vec, _ mesh.Tet) float64 {
	vol := m.TetVolume(sampler, verts, nil)
	if vol <= 0 {
		return 0
	}
	sumSq := sumEdgeSqMeasured(sampler, m, verts[:], mesh.KindTet.Edges())
	return clampQuality(kTet * math.Pow(vol, 2.0/3.0) / sumSq)
}

func (MeanRatio) PriQuality(sampler metric.Sampler, m measure.Measurer, verts [6]vec3.Vec, _ mesh.Pri) float64 {
	vol := m.PriVolume(sampler, verts, nil)
	if vol <= 0 {
		return 0
	}
	sumSq := sumEdgeSqMeasured(sampler, m, verts[:], mesh.KindPri.Edges())
	return clampQuality(kPri * math.Pow(vol, 2.0/3.0) / sumSq)
}

func (MeanRatio) HexQuality(sampler metric.Sampler, m measure.Measurer, verts [8]vec3.Vec, _ mesh.Hex) float64 {
	vol := m.HexVolume(sampler, verts, nil)
	if vol <= 0 {
		return 0
	}
	sumSq := sumEdgeSqMeasured(sampler, m, verts[:], mesh.KindHex.Edges())
	return clampQuality(kHex * math.Pow(vol, 2.0/3.0) / sumSq)
}

func clampQuality(q float64) float64 {
	if q < 0 {
		return 0
	}
	if q > 1 {
		return 1
	}
	return q
}

// PatchQuality is the harmonic mean of vID's incident elements' quality,
// so one degenerate neighbor dominates the score (spec.md §4.3).
func (e MeanRatio) PatchQuality(msh *mesh.Mesh, sampler metric.Sampler, m measure.Measurer, vID int) float64 {
	refs := msh.Topos[vID].NeighborElems
	if len(refs) == 0 {
		return 0
	}
	sumInv := 0.0
	for _, ref := range refs {
		q := evalOne(e, sampler, m, msh, ref, nil)
		if q <= 0 {
			return 0
		}
		sumInv += 1 / q
	}
	return float64(len(refs)) / sumInv
}

// Validate self-tests MeanRatio against its own regular reference shapes
// under the Euclidean measurer, failing fatally if any deviates from 1 by
// more than ValidityEpsilon (spec.md §7).
func (e MeanRatio) Validate() error {
	euclid := measure.Euclidean{}

	tet := regularTetVerts()
	if math.Abs(e.TetQuality(nil, euclid, tet, mesh.Tet{}) - 1) > ValidityEpsilon {
		return ErrInvalidMeasure
	}
	pri := regularPriVerts()
	if math.Abs(e.PriQuality(nil, euclid, pri, mesh.Pri{}) - 1) > ValidityEpsilon {
		return ErrInvalidMeasure
	}
	hex := regularHexVerts()
	if math.Abs(e.HexQuality(nil, euclid, hex, mesh.Hex{}) - 1) > ValidityEpsilon {
		return ErrInvalidMeasure
	}
	return nil
}
