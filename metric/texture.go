package metric

import (
	"math"

	"github.com/anisomesh/anisomesh/vec3"
)

// DefaultTextureDepth is the depth NewTexture falls back to when given a
// depth below 2: a 32^3 grid falls in the documented 16-64 range.
// config.Default's metricDiscretizationDepth is 16.
const DefaultTextureDepth = 32

// Texture discretizes a metric field on a regular 3-D grid and samples it
// by trilinear interpolation (spec.md §4.1).
type Texture struct {
	min, max vec3.Vec
	depth    [3]int
	cell     vec3.Vec
	values   []Tensor // depth.X*depth.Y*depth.Z grid, x-major
}

// NewTexture discretizes field over [min,max] at the given per-axis
// depth (metricDiscretizationDepth, §6).
func NewTexture(field func(vec3.Vec) Tensor, min, max vec3.Vec, depth int) *Texture {
	if depth < 2 {
		depth = DefaultTextureDepth
	}
	t := &Texture{
		min:   min,
		max:   max,
		depth: [3]int{depth, depth, depth},
	}
	t.cell = vec3.Vec{
		X: (max.X - min.X) / float64(depth-1),
		Y: (max.Y - min.Y) / float64(depth-1),
		Z: (max.Z - min.Z) / float64(depth-1),
	}
	t.values = make([]Tensor, depth*depth*depth)
	for i := 0; i < depth; i++ {
		for j := 0; j < depth; j++ {
			for k := 0; k < depth; k++ {
				p := vec3.Vec{
					X: min.X + float64(i)*t.cell.X,
					Y: min.Y + float64(j)*t.cell.Y,
					Z: min.Z + float64(k)*t.cell.Z,
				}
				t.values[t.index(i, j, k)] = field(p)
			}
		}
	}
	return t
}

func (t *Texture) index(i, j, k int) int {
	return (i*t.depth[1]+j)*t.depth[2] + k
}

func (t *Texture) MetricAt(p vec3.Vec, hint *Hint) (Tensor, error) {
	if p.X < t.min.X || p.Y < t.min.Y || p.Z < t.min.Z ||
		p.X > t.max.X || p.Y > t.max.Y || p.Z > t.max.Z {
		return Tensor{}, ErrOutOfDomain
	}

	fx := (p.X - t.min.X) / t.cell.X
	fy := (p.Y - t.min.Y) / t.cell.Y
	fz := (p.Z - t.min.Z) / t.cell.Z

	i0 := clampInt(int(math.Floor(fx)), 0, t.depth[0]-2)
	j0 := clampInt(int(math.Floor(fy)), 0, t.depth[1]-2)
	k0 := clampInt(int(math.Floor(fz)), 0, t.depth[2]-2)
	tx, ty, tz := fx-float64(i0), fy-float64(j0), fz-float64(k0)

	lerpT := func(a, b Tensor, w float64) Tensor {
		entries := [6]float64{}
		get := func(m Tensor, i, j int) float64 { return m.At(i, j) }
		idxPairs := [6][2]int{{0, 0}, {0, 1}, {0, 2}, {1, 1}, {1, 2}, {2, 2}}
		for n, ij := range idxPairs {
			entries[n] = get(a, ij[0], ij[1])*(1-w) + get(b, ij[0], ij[1])*w
		}
		return NewTensor(entries[0], entries[1], entries[2], entries[3], entries[4], entries[5])
	}

	c000 := t.values[t.index(i0, j0, k0)]
	c100 := t.values[t.index(i0+1, j0, k0)]
	c010 := t.values[t.index(i0, j0+1, k0)]
	c110 := t.values[t.index(i0+1, j0+1, k0)]
	c001 := t.values[t.index(i0, j0, k0+1)]
	c101 := t.values[t.index(i0+1, j0, k0+1)]
	c011 := t.values[t.index(i0, j0+1, k0+1)]
	c111 := t.values[t.index(i0+1, j0+1, k0+1)]

	c00 := lerpT(c000, c100, tx)
	c10 := lerpT(c010, c110, tx)
	c01 := lerpT(c001, c101, tx)
	c11 := lerpT(c011, c111, tx)
	c0 := lerpT(c00, c10, ty)
	c1 := lerpT(c01, c11, ty)
	return lerpT(c0, c1, tz), nil
}

func (t *Texture) IsMetricWise() bool { return true }

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
