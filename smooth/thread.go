package smooth

import (
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/anisomesh/anisomesh/crew"
	"github.com/anisomesh/anisomesh/mesh"
)

// runGroupThread parallelizes one independent group across a worker pool
// sized to hardware concurrency; each worker owns a disjoint contiguous
// vertex range, so no synchronization is needed within the group (spec.md
// §5 "Thread backend"). The group boundary is the implicit barrier:
// errgroup.Wait blocks the caller until every worker in this group
// finishes before the next group starts.
func runGroupThread(alg VertexAlgorithm, msh *mesh.Mesh, cr crew.Crew, opts Options, group []int) {
	workers := runtime.GOMAXPROCS(0)
	if workers > len(group) {
		workers = len(group)
	}
	if workers <= 1 {
		runGroupSerial(alg, msh, cr, opts, group)
		return
	}

	chunk := (len(group) + workers - 1) / workers
	var g errgroup.Group
	for w := 0; w < workers; w++ {
		lo := w * chunk
		if lo >= len(group) {
			break
		}
		hi := lo + chunk
		if hi > len(group) {
			hi = len(group)
		}
		sub := group[lo:hi]
		g.Go(func() error {
			runGroupSerial(alg, msh, cr, opts, sub)
			return nil
		})
	}
	_ = g.Wait()
}

// sweepThread parallelizes GETMe's per-element accumulation pass: element
// processing is embarrassingly parallel (each element only reads mesh
// state and writes into its own vertices' accumulators, which lock
// internally), so unlike the vertex-wise loop it needs no independent
// groups at all (spec.md §4.4).
func (g Getme) sweepThread(msh *mesh.Mesh, accumulate func(ref mesh.ElemRef)) {
	refs := make([]mesh.ElemRef, 0, msh.ElemCount())
	msh.ForEachElem(func(ref mesh.ElemRef) { refs = append(refs, ref) })

	workers := runtime.GOMAXPROCS(0)
	if workers > len(refs) {
		workers = len(refs)
	}
	if workers <= 1 {
		for _, ref := range refs {
			accumulate(ref)
		}
		return
	}

	chunk := (len(refs) + workers - 1) / workers
	var eg errgroup.Group
	for w := 0; w < workers; w++ {
		lo := w * chunk
		if lo >= len(refs) {
			break
		}
		hi := lo + chunk
		if hi > len(refs) {
			hi = len(refs)
		}
		sub := refs[lo:hi]
		eg.Go(func() error {
			for _, ref := range sub {
				accumulate(ref)
			}
			return nil
		})
	}
	_ = eg.Wait()
}
