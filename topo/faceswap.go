package topo

import (
	"github.com/anisomesh/anisomesh/crew"
	"github.com/anisomesh/anisomesh/mesh"
	"github.com/anisomesh/anisomesh/vec3"
)

// faceSwap is phase 2 of spec.md §4.5 (2→3 face swap): every interior tet
// triangle shared by exactly two tets is a flip candidate; the edit
// commits only when all three resulting tets' qualities strictly exceed
// the worse of the two original qualities (the anti-monotone guard).
func faceSwap(msh *mesh.Mesh, cr crew.Crew, opts Options) Stats {
	var stats Stats
	maxPasses := opts.MaxPassCount
	if maxPasses <= 0 {
		maxPasses = DefaultOptions().MaxPassCount
	}

	for pass := 0; pass < maxPasses; pass++ {
		if !faceSwapOnePass(msh, cr, &stats) {
			break
		}
		msh.CompileTopology(nil)
	}
	return stats
}

func faceSwapOnePass(msh *mesh.Mesh, cr crew.Crew, stats *Stats) bool {
	n := len(msh.Tets)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			shared, a, b, ok := sharedFace(msh.Tets[i], msh.Tets[j])
			if !ok {
				continue
			}
			if trySwapFace(msh, cr, i, j, shared, a, b) {
				stats.FaceSwapCount++
				return true
			}
		}
	}
	return false
}

// sharedFace reports the 3 vertex ids two tets hold in common and each
// tet's remaining (opposite) vertex, if they share exactly a triangular
// face.
func sharedFace(t1, t2 mesh.Tet) (shared [3]int, a, b int, ok bool) {
	common := []int{}
	aSet := map[int]bool{}
	for _, id := range t2.V {
		aSet[id] = true
	}
	for _, id := range t1.V {
		if aSet[id] {
			common = append(common, id)
		}
	}
	if len(common) != 3 {
		return shared, 0, 0, false
	}
	sharedSet := map[int]bool{common[0]: true, common[1]: true, common[2]: true}
	for _, id := range t1.V {
		if !sharedSet[id] {
			a = id
		}
	}
	for _, id := range t2.V {
		if !sharedSet[id] {
			b = id
		}
	}
	copy(shared[:], common)
	return shared, a, b, true
}

func tetQualityOf(msh *mesh.Mesh, cr crew.Crew, ids [4]int) float64 {
	verts := [4]vec3.Vec{msh.Verts[ids[0]].P, msh.Verts[ids[1]].P, msh.Verts[ids[2]].P, msh.Verts[ids[3]].P}
	return cr.Evaluator.TetQuality(cr.Sampler, cr.Measurer, verts, mesh.Tet{V: ids})
}

// trySwapFace evaluates the 2→3 flip of tets i,j (sharing triangle
// shared, with opposite vertices a,b) and commits it if every candidate
// strictly improves on the worse of the two old qualities.
func trySwapFace(msh *mesh.Mesh, cr crew.Crew, i, j int, shared [3]int, a, b int) bool {
	oldMin := tetQualityOf(msh, cr, msh.Tets[i].V)
	if q := tetQualityOf(msh, cr, msh.Tets[j].V); q < oldMin {
		oldMin = q
	}

	p, q, r := shared[0], shared[1], shared[2]
	// sharedFace reports the triangle in t1's slot order, which may wind
	// either way around a-b; flip it so the candidates have positive volume.
	orient := [4]vec3.Vec{msh.Verts[a].P, msh.Verts[b].P, msh.Verts[p].P, msh.Verts[q].P}
	if cr.Measurer.TetVolume(cr.Sampler, orient, nil) < 0 {
		p, q = q, p
	}
	candidates := [3][4]int{
		{a, b, p, q},
		{a, b, q, r},
		{a, b, r, p},
	}
	for _, ids := range candidates {
		if tetQualityOf(msh, cr, ids) <= oldMin {
			return false
		}
	}

	newTets := make([]mesh.Tet, 0, len(msh.Tets)+1)
	for k, tet := range msh.Tets {
		if k == i || k == j {
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
