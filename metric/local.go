package metric

import (
	"math"

	"github.com/anisomesh/anisomesh/vec3"
	"github.com/dhconnelly/rtreego"
)

// TetField is the source mesh fed to a Local sampler: one reference
// tetrahedron per source cell, the metric sampled at its four corners,
// and face-adjacency used for the hint-cell walk.
type TetField struct {
	// Verts[i] are the four corner positions of source tet i.
	Verts [][4]vec3.Vec
	// Metrics[i][k] is the metric tensor at Verts[i][k].
	Metrics [][4]Tensor
	// Neighbors[i][k] is the tet sharing the face opposite corner k of
	// tet i, or -1 if that face is on the mesh boundary.
	Neighbors [][4]int
}

// Local walks from a hint cell across face neighbors toward the query
// point (spec.md §4.1). It fails with ErrOutOfDomain if the walk escapes
// the mesh; the Riemannian measurer then falls back to the Euclidean
// length for that query point.
type Local struct {
	field    *TetField
	index    *rtreego.Rtree
	tetBoxes []*tetBox
}

// tetBox is an rtreego.Spatial wrapping a source tet's bounding box; it
// backs the initial/fallback lookup when the hint is absent or stale
// (dhconnelly/rtreego, carried over from the teacher's solid bounding-box
// index and repurposed here as the mesh's spatial acceleration structure).
type tetBox struct {
	tetID int
	rect  *rtreego.Rect
}

func (b *tetBox) Bounds() *rtreego.Rect { return b.rect }

// NewLocal builds a Local sampler over a source tet field and indexes
// each tet's bounding box for cold-start / recovery lookups.
func NewLocal(field *TetField) *Local {
	l := &Local{
		field: field,
		index: rtreego.NewTree(3, 4, 16),
	}
	for i, verts := range field.Verts {
		min, max := tetBounds(verts)
		widths := []float64{
			max[0] - min[0] + 1e-9,
			max[1] - min[1] + 1e-9,
			max[2] - min[2] + 1e-9,
		}
		rect, err := rtreego.NewRect(rtreego.Point{min[0], min[1], min[2]}, widths)
		if err != nil {
			continue
		}
		tb := &tetBox{tetID: i, rect: rect}
		l.tetBoxes = append(l.tetBoxes, tb)
		l.index.Insert(tb)
	}
	return l
}

func tetBounds(v [4]vec3.Vec) (min, max [3]float64) {
	min = [3]float64{v[0].X, v[0].Y, v[0].Z}
	max = min
	for _, p := range v[1:] {
		min[0], max[0] = math.Min(min[0], p.X), math.Max(max[0], p.X)
		min[1], max[1] = math.Min(min[1], p.Y), math.Max(max[1], p.Y)
		min[2], max[2] = math.Min(min[2], p.Z), math.Max(max[2], p.Z)
	}
	return
}

// barycentric returns the barycentric coordinates of p in the tet
// (v0,v1,v2,v3), ordered so that coordinate k is the weight of the
// vertex opposite the face indexed k in TetField.Neighbors.
func barycentric(p, v0, v1, v2, v3 vec3.Vec) [4]float64 {
	total := signedVolume6(v0, v1, v2, v3)
	if total == 0 {
		return [4]float64{0, 0, 0, 0}
	}
	b0 := signedVolume6(p, v1, v2, v3) / total
	b1 := signedVolume6(v0, p, v2, v3) / total
	b2 := signedVolume6(v0, v1, p, v3) / total
	b3 := signedVolume6(v0, v1, v2, p) / total
	return [4]float64{b0, b1, b2, b3}
}

func signedVolume6(a, b, c, d vec3.Vec) float64 {
	return b.Sub(a).Cross(c.Sub(a)).Dot(d.Sub(a))
}

const (
	localWalkEpsilon  = 1e-9
	localWalkMaxSteps = 64
)

// MetricAt implements Sampler.
func (l *Local) MetricAt(p vec3.Vec, hint *Hint) (Tensor, error) {
	cell := -1
	if hint != nil {
		cell = hint.Cell
	}
	if cell < 0 || cell >= len(l.field.Verts) {
		cell = l.nearestCell(p)
	}

	for step := 0; step < localWalkMaxSteps; step++ {
		verts := l.field.Verts[cell]
		bary := barycentric(p, verts[0], verts[1], verts[2], verts[3])

		worst, worstVal := -1, -localWalkEpsilon
		for k, b := range bary {
			if b < worstVal {
				worst, worstVal = k, b
			}
		}
		if worst == -1 {
			if hint != nil {
				hint.Cell = cell
			}
			return l.interpolate(cell, bary), nil
		}

		next := l.field.Neighbors[cell][worst]
		if next < 0 {
			return Tensor{}, ErrOutOfDomain
		}
		cell = next
	}
	return Tensor{}, ErrOutOfDomain
}

func (l *Local) nearestCell(p vec3.Vec) int {
	if len(l.tetBoxes) == 0 {
		return 0
	}
	nearest := l.index.NearestNeighbor(rtreego.Point{p.X, p.Y, p.Z})
	if tb, ok := nearest.(*tetBox); ok {
		return tb.tetID
	}
	return 0
}

// interpolate blends the four corner metrics by barycentric weight. This
// is a coordinate-wise convex combination, not a geodesic (log-Euclidean)
// interpolation; it is adequate for the quadrature step sizes Measurer
// integrates with.
func (l *Local) interpolate(cell int, bary [4]float64) Tensor {
	m := l.field.Metrics[cell]
	entries := [6]float64{}
	pick := func(i, j int) float64 {
		return bary[0]*m[0].At(i, j) + bary[1]*m[1].At(i, j) +
			bary[2]*m[2].At(i, j) + bary[3]*m[3].At(i, j)
	}
	entries[0] = pick(0, 0)
	entries[1] = pick(0, 1)
	entries[2] = pick(0, 2)
	entries[3] = pick(1, 1)
	entries[4] = pick(1, 2)
	entries[5] = pick(2, 2)
	return NewTensor(entries[0], entries[1], entries[2], entries[3], entries[4], entries[5])
}

func (l *Local) IsMetricWise() bool { return true }
