package topo

import (
	"math"

	"github.com/anisomesh/anisomesh/crew"
	"github.com/anisomesh/anisomesh/mesh"
	"github.com/anisomesh/anisomesh/vec3"
)

// edgeSplitMerge is phase 1 of spec.md §4.5: for the single most extreme
// short/long edge in the mesh, merge (collapse) or split it, recompiling
// topology after every accepted edit, until no edge violates the length
// window or the pass cap is reached.
func edgeSplitMerge(msh *mesh.Mesh, cr crew.Crew, opts Options) Stats {
	var stats Stats
	maxPasses := opts.MaxPassCount
	if maxPasses <= 0 {
		maxPasses = DefaultOptions().MaxPassCount
	}

	rejected := map[[2]int]bool{}
	for pass := 0; pass < maxPasses; pass++ {
		v, n, wantMerge, found := pickExtremumEdge(msh, cr, opts, rejected)
		if !found {
			break
		}

		if wantMerge {
			if tryMerge(msh, cr, v, n) {
				stats.MergeCount++
				msh.CompileTopology(nil)
				rejected = map[[2]int]bool{}
				continue
			}
			rejected[canonicalEdge(v, n)] = true
			continue
		}

		performSplit(msh, v, n)
		stats.SplitCount++
		msh.CompileTopology(nil)
		rejected = map[[2]int]bool{}
	}
	return stats
}

func canonicalEdge(a, b int) [2]int {
	if a < b {
		return [2]int{a, b}
	}
	return [2]int{b, a}
}

// skipEdge mirrors the source's eligibility guard: an edge where fixing
// one endpoint would conflict with the other's constraint is left alone
// entirely (neither merged nor split).
func skipEdge(v, n mesh.Topo) bool {
	if v.IsFixed && (n.IsFixed || n.IsBoundary) {
		return true
	}
	if n.IsFixed && (v.IsFixed || v.IsBoundary) {
		return true
	}
	if v.IsBoundary && n.IsBoundary && v.Constraint != n.Constraint {
		return true
	}
	return false
}

// pickExtremumEdge finds the shortest under-length edge if any exists,
// else the longest over-length edge, scanning every undirected edge once
// (spec.md §4.5: "the single shortest... and the single longest").
func pickExtremumEdge(msh *mesh.Mesh, cr crew.Crew, opts Options, rejected map[[2]int]bool) (v, n int, merge, found bool) {
	bestShort, bestLong := math.Inf(1), math.Inf(-1)
	var shortV, shortN, longV, longN int
	foundShort, foundLong := false, false

	for vID := range msh.Verts {
		vTopo := msh.Topos[vID]
		for _, nID := range vTopo.NeighborVerts {
			if nID < vID {
				continue
			}
			if rejected[canonicalEdge(vID, nID)] {
				continue
			}
			nTopo := msh.Topos[nID]
			if skipEdge(vTopo, nTopo) {
				continue
			}

			dist := cr.Measurer.RiemannianDistance(cr.Sampler, msh.Verts[vID].P, msh.Verts[nID].P, nil)
			if dist < opts.MinEdgeLength && dist < bestShort {
				bestShort, shortV, shortN, foundShort = dist, vID, nID, true
			}
			if dist > opts.MaxEdgeLength && dist > bestLong {
				bestLong, longV, longN, foundLong = dist, vID, nID, true
			}
		}
	}

	if foundShort {
		return shortV, shortN, true, true
	}
	if foundLong {
		return longV, longN, false, true
	}
	return 0, 0, false, false
}

// mergedPosition picks the collapsed position: a fixed endpoint wins
// outright, otherwise a boundary endpoint's projection wins, otherwise
// the midpoint (spec.md §4.5).
func mergedPosition(msh *mesh.Mesh, v, n int) vec3.Vec {
	vp, np := msh.Verts[v].P, msh.Verts[n].P
	mid := vp.Add(np).Scale(0.5)
	vTopo, nTopo := msh.Topos[v], msh.Topos[n]
	switch {
	case vTopo.IsFixed:
		return vp
	case nTopo.IsFixed:
		return np
	case vTopo.IsBoundary:
		return msh.SnapToBoundary(v, mid)
	case nTopo.IsBoundary:
		return msh.SnapToBoundary(n, mid)
	default:
		return mid
	}
}

func slotOf(ids [4]int, id int) int {
	for i, x := range ids {
		if x == id {
			return i
		}
	}
	return -1
}

// tryMerge collapses n into v at their merged position. Tets referencing
// both endpoints collapse and are dropped; tets referencing exactly one
// of them are re-pointed at v. If that re-pointing would invert any of
// those exclusive tets, the whole edit is rejected and positions are
// restored (spec.md §7 NonConformal).
func tryMerge(msh *mesh.Mesh, cr crew.Crew, v, n int) bool {
	originalV, originalN := msh.Verts[v].P, msh.Verts[n].P
	mid := mergedPosition(msh, v, n)
	msh.Verts[v].P = mid
	msh.Verts[n].P = mid

	for _, tet := range msh.Tets {
		hasV, hasN := slotOf(tet.V, v) >= 0, slotOf(tet.V, n) >= 0
		if hasV == hasN {
			continue // neither touches the edge, or both (it collapses)
		}
		vp := [4]vec3.Vec{}
		for k, id := range tet.V {
			vp[k] = msh.Verts[id].P
		}
		if cr.Measurer.TetVolume(cr.Sampler, vp, nil) <= 0 {
			msh.Verts[v].P, msh.Verts[n].P = originalV, originalN
			return false
		}
	}

	newTets := make([]mesh.Tet, 0, len(msh.Tets))
	for _, tet := range msh.Tets {
		vv := tet.V
		for k := range vv {
			if vv[k] == n {
				vv[k] = v
			}
		}
		dup := map[int]bool{}
		collapsed := false
		for _, id := range vv {
			if dup[id] {
				collapsed = true
				break
			}
			dup[id] = true
		}
		if collapsed {
			continue
		}
		tet.V = vv
		newTets = append(newTets, tet)
	}
	msh.Tets = newTets

	vTopo, nTopo := &msh.Topos[v], &msh.Topos[n]
	if nTopo.IsFixed {
		vTopo.IsFixed = true
	} else if !vTopo.IsBoundary && nTopo.IsBoundary {
		vTopo.IsBoundary = true
	}
	vTopo.Constraint = msh.Constraints.Merge(vTopo.Constraint, nTopo.Constraint)
	return true
}

// performSplit inserts the midpoint of v-n as a new vertex w and, for
// every tet sharing that edge, replaces it with two tets each holding
// half the original signed volume (spec.md §4.5's "split into two along
// the new edge"): substituting w for one endpoint in its own array slot
// leaves the determinant — hence the sign and exactly half the
// magnitude — unchanged, so no conformality check is needed here.
func performSplit(msh *mesh.Mesh, v, n int) {
	vTopo, nTopo := msh.Topos[v], msh.Topos[n]
	mid := msh.Verts[v].P.Add(msh.Verts[n].P).Scale(0.5)

	boundary := vTopo.IsBoundary && nTopo.IsBoundary
	constraint := msh.Topos[v].Constraint
	if boundary {
		constraint = msh.Constraints.Meet(vTopo.Constraint, nTopo.Constraint)
		mid = msh.Constraints.Project(constraint, mid)
	}

	w := msh.AddVert(mid)
	if boundary {
		msh.Topos[w].IsBoundary = true
		msh.Topos[w].Constraint = constraint
	}

	newTets := make([]mesh.Tet, 0, len(msh.Tets)+1)
	for _, tet := range msh.Tets {
		iv, in := slotOf(tet.V, v), slotOf(tet.V, n)
		if iv < 0 || in < 0 {
			newTets = append(newTets, tet)
			continue
		}
		tetA, tetB := tet, tet
		tetA.V[iv] = w
		tetB.V[in] = w
		newTets = append(newTets, tetA, tetB)
	}
	msh.Tets = newTets
}
