package topo

import (
	"math"

	"github.com/anisomesh/anisomesh/crew"
	"github.com/anisomesh/anisomesh/internal/errs"
	"github.com/anisomesh/anisomesh/mesh"
	"github.com/anisomesh/anisomesh/vec3"
)

// edgeSwap is phase 3 of spec.md §4.5: for every interior edge v-n whose
// ring of incident tets forms a simple cycle of size 3, 4 or 5, replace
// the bipyramid (apexes v, n; equator the ring polygon) with a canonical
// retriangulation — a fan of the ring polygon from ring[0], each fan
// triangle paired with both v and n — accepting only if the worst new
// tet improves on the worst old one.
func edgeSwap(msh *mesh.Mesh, cr crew.Crew, opts Options) Stats {
	var stats Stats
	maxPasses := opts.MaxPassCount
	if maxPasses <= 0 {
		maxPasses = DefaultOptions().MaxPassCount
	}

	for pass := 0; pass < maxPasses; pass++ {
		if !edgeSwapOnePass(msh, cr, &stats) {
			break
		}
		msh.CompileTopology(nil)
	}
	return stats
}

func edgeSwapOnePass(msh *mesh.Mesh, cr crew.Crew, stats *Stats) bool {
	for vID := range msh.Verts {
		for _, nID := range msh.Topos[vID].NeighborVerts {
			if nID < vID {
				continue
			}
			ring, tetIdxs, err := ringOf(msh, vID, nID)
			if err != nil {
				continue
			}
			if len(ring) < 3 || len(ring) > 5 {
				continue
			}
			if tryEdgeSwap(msh, cr, vID, nID, ring, tetIdxs) {
				stats.EdgeSwapCount++
				return true
			}
		}
	}
	return false
}

// ringOf walks the tets sharing edge v-n and orders their opposite
// vertex pairs into a single cycle. It reports errs.ErrNoBase if the
// edge isn't interior to a simple manifold ring (non-manifold
// configuration, or the edge is a boundary/dangling edge with no
// triangulated neighborhood to anchor a retriangulation on) — the
// source's findBaseTetrahedron left this case undefined, reading past
// the end of its ring vector (SPEC_FULL §D).
func ringOf(msh *mesh.Mesh, v, n int) (ring []int, tetIdxs []int, err error) {
	adj := map[int][]int{}
	for idx, tet := range msh.Tets {
		iv, in := slotOf(tet.V, v), slotOf(tet.V, n)
		if iv < 0 || in < 0 {
			continue
		}
		tetIdxs = append(tetIdxs, idx)

		var others []int
		for k, id := range tet.V {
			if k != iv && k != in {
				others = append(others, id)
			}
		}
		if len(others) != 2 {
			return nil, nil, errs.ErrNoBase
		}
		adj[others[0]] = append(adj[others[0]], others[1])
		adj[others[1]] = append(adj[others[1]], others[0])
	}
	if len(tetIdxs) == 0 {
		return nil, nil, errs.ErrNoBase
	}
	for _, nbrs := range adj {
		if len(nbrs) != 2 {
			return nil, nil, errs.ErrNoBase
		}
	}

	start := -1
	for k := range adj {
		start = k
		break
	}
	ring = []int{start}
	prev, cur := -1, start
	for {
		nbrs := adj[cur]
		next := nbrs[0]
		if next == prev {
			next = nbrs[1]
		}
		if next == start {
			break
		}
		ring = append(ring, next)
		prev, cur = cur, next
		if len(ring) > len(tetIdxs) {
			return nil, nil, errs.ErrNoBase
		}
	}
	if len(ring) != len(tetIdxs) {
		return nil, nil, errs.ErrNoBase
	}
	return ring, tetIdxs, nil
}

func fanTriangles(ring []int) [][3]int {
	var tris [][3]int
	for i := 1; i+1 < len(ring); i++ {
		tris = append(tris, [3]int{ring[0], ring[i], ring[i+1]})
	}
	return tris
}

func tryEdgeSwap(msh *mesh.Mesh, cr crew.Crew, v, n int, ring, tetIdxs []int) bool {
	oldMin := math.Inf(1)
	for _, idx := range tetIdxs {
		if q := tetQualityOf(msh, cr, msh.Tets[idx].V); q < oldMin {
			oldMin = q
		}
	}

	tris := fanTriangles(ring)
	if len(tris) == 0 {
		return false
	}

	// Wind the fan so the v-apex tets have positive signed volume; n lies
	// across the ring from v, so its tets take the opposite winding.
	fanVolume := 0.0
	for _, tri := range tris {
		verts := [4]vec3.Vec{msh.Verts[v].P, msh.Verts[tri[0]].P, msh.Verts[tri[1]].P, msh.Verts[tri[2]].P}
		fanVolume += cr.Measurer.TetVolume(cr.Sampler, verts, nil)
	}

	newMin := math.Inf(1)
	candidates := make([][4]int, 0, 2*len(tris))
	for _, tri := range tris {
		if fanVolume < 0 {
			tri[1], tri[2] = tri[2], tri[1]
		}
		t1 := [4]int{v, tri[0], tri[1], tri[2]}
		t2 := [4]int{n, tri[0], tri[2], tri[1]}
		if q := tetQualityOf(msh, cr, t1); q < newMin {
			newMin = q
		}
		if q := tetQualityOf(msh, cr, t2); q < newMin {
			newMin = q
		}
		candidates = append(candidates, t1, t2)
	}

	if newMin <= oldMin {
		return false
	}

	dead := map[int]bool{}
	for _, idx := range tetIdxs {
		dead[idx] = true
	}
	newTets := make([]mesh.Tet, 0, len(msh.Tets)-len(tetIdxs)+len(candidates))
	for idx, tet := range msh.Tets {
		if dead[idx] {
			continue
		}
		newTets = append(newTets, tet)
	}
	for _, ids := range candidates {
		newTets = append(newTets, mesh.Tet{V: ids})
	}
	msh.Tets = newTets
	return true
}
