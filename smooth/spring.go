package smooth

import (
	"github.com/anisomesh/anisomesh/crew"
	"github.com/anisomesh/anisomesh/mesh"
	"github.com/anisomesh/anisomesh/vec3"
)

// SpringLaplace proposes a single position: the weighted centroid of the
// neighbor vertices, weight = squared distance (spec.md §4.4).
type SpringLaplace struct{}

func (SpringLaplace) Name() string { return "Spring Laplace" }

func (SpringLaplace) Propose(msh *mesh.Mesh, _ crew.Crew, _ Options, vID int) []mesh.Vertex {
	neighbors := msh.Topos[vID].NeighborVerts
	if len(neighbors) == 0 {
		return nil
	}

	pos := msh.Verts[vID].P
	center := vec3.Zero
	totalWeight := 0.0
	for _, n := range neighbors {
		np := msh.Verts[n].P
		w := pos.Sub(np).LengthSq()
		center = center.Add(np.Scale(w))
		totalWeight += w
	}
	if totalWeight == 0 {
		return nil
	}
	center = center.Scale(1 / totalWeight)

	return []mesh.Vertex{{P: center}}
}
