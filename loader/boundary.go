package loader

import (
	"fmt"
	"math"

	"github.com/anisomesh/anisomesh/mesh"
	"github.com/anisomesh/anisomesh/vec3"
)

// addShapeConstraint registers s as a Face constraint in arena and
// returns its id. Sphere projects radially onto its surface, Box clamps
// into the box, and Tet snaps to the nearest of its four corners;
// External is the identity projector, since its actual
// surface is owned by a collaborator this module never sees (spec.md
// §6's "External" boundary model names an outside authority, not a
// concrete primitive).
func addShapeConstraint(arena *mesh.Arena, s Shape) (mesh.ConstraintID, error) {
	switch s.Kind {
	case Box:
		return arena.AddFaceConstraint(boxProjector(s.Min, s.Max)), nil
	case TetShape:
		return arena.AddFaceConstraint(tetProjector(s.Corners)), nil
	case Sphere:
		return arena.AddFaceConstraint(sphereProjector(s.Center, s.Radius)), nil
	case External:
		return arena.AddFaceConstraint(func(p vec3.Vec) vec3.Vec { return p }), nil
	default:
		return 0, fmt.Errorf("unrecognized boundary kind %q", s.Kind)
	}
}

// boxProjector clamps p to the closest point on (or inside the surface
// of) the axis-aligned box [min,max].
func boxProjector(min, max [3]float64) func(vec3.Vec) vec3.Vec {
	return func(p vec3.Vec) vec3.Vec {
		return vec3.Vec{
			X: clamp(p.X, min[0], max[0]),
			Y: clamp(p.Y, min[1], max[1]),
			Z: clamp(p.Z, min[2], max[2]),
		}
	}
}

// sphereProjector radially projects p onto the sphere's surface.
func sphereProjector(center [3]float64, radius float64) func(vec3.Vec) vec3.Vec {
	c := vec3.Vec{X: center[0], Y: center[1], Z: center[2]}
	return func(p vec3.Vec) vec3.Vec {
		d := p.Sub(c)
		length := d.Length()
		if length == 0 {
			return c.Add(vec3.Vec{X: radius})
		}
		return c.Add(d.Scale(radius / length))
	}
}

// tetProjector snaps p to its closest point among the bounding tet's
// four corner vertices, a coarse stand-in for a true nearest-point-on-
// the-tet-surface query (this module has no general polygon-clip
// routine to spare for a one-off boundary primitive).
func tetProjector(corners [4][3]float64) func(vec3.Vec) vec3.Vec {
	verts := make([]vec3.Vec, 4)
	for i, c := range corners {
		verts[i] = vec3.Vec{X: c[0], Y: c[1], Z: c[2]}
	}
	return func(p vec3.Vec) vec3.Vec {
		best := verts[0]
		bestDist := math.MaxFloat64
		for _, v := range verts {
			d := v.Sub(p).LengthSq()
			if d < bestDist {
				bestDist = d
				best = v
			}
		}
		return best
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
