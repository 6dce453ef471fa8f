package smooth

import (
	"math"
	"sync"

	"github.com/anisomesh/anisomesh/crew"
	"github.com/anisomesh/anisomesh/engine"
	"github.com/anisomesh/anisomesh/evaluate"
	"github.com/anisomesh/anisomesh/mesh"
	"github.com/anisomesh/anisomesh/vec3"
)

// GetmeLambda is the GETMe transform's default normal-nudge factor
// (original_source/Smoothers/ElementWise/GetmeSmoother.cpp's _lambda).
const GetmeLambda = 0.78

// VertexAccum accumulates weighted position proposals for one vertex
// across every incident element's GETMe contribution (spec.md §4.4:
// "accumulator weight is q'/(1+q)"). Accumulation is a commutative sum,
// so no independent groups are needed to make it thread-safe; the Thread
// backend guards each entry with its own mutex (spec.md §5), matching the
// source's per-vertex VertexAccum plus lock/atomic discipline.
type VertexAccum struct {
	mu        sync.Mutex
	sumWeight float64
	weighted  vec3.Vec
}

// addPosition is safe for concurrent use (spec.md §5: "guarded by a lock
// per vertex"); the Serial backend pays an uncontended lock/unlock.
func (a *VertexAccum) addPosition(p vec3.Vec, weight float64) {
	a.mu.Lock()
	a.weighted = a.weighted.Add(p.Scale(weight))
	a.sumWeight += weight
	a.mu.Unlock()
}

func (a *VertexAccum) mean(fallback vec3.Vec) vec3.Vec {
	if a.sumWeight == 0 {
		return fallback
	}
	return a.weighted.Scale(1 / a.sumWeight)
}

// Getme is the element-wise smoother of spec.md §4.4: GETMe (Geometric
// Element Transformation Method).
type Getme struct {
	Lambda float64
}

// NewGetme returns a Getme smoother with the source's default lambda.
func NewGetme() Getme { return Getme{Lambda: GetmeLambda} }

// Smooth runs one or more GETMe sweeps to convergence, mirroring the
// vertex-wise Smooth driver's termination policy (spec.md §4.4, §4.6).
func (g Getme) Smooth(msh *mesh.Mesh, cr crew.Crew, impl engine.Implementation, opts Options) Result {
	var result Result
	var prev evaluate.Report

	maxPasses := opts.MaxPasses
	if maxPasses <= 0 {
		maxPasses = DefaultOptions().MaxPasses
	}
	lambda := g.Lambda
	if lambda == 0 {
		lambda = GetmeLambda
	}

	for pass := 0; pass < maxPasses; pass++ {
		g.sweep(msh, cr, impl, lambda)

		cur := evaluate.EvaluateMesh(msh, cr.Sampler, cr.Measurer, cr.Evaluator, impl)
		result.Passes = append(result.Passes, PassStats{Report: cur})

		if pass > 0 && !shouldContinue(pass, opts, prev, cur) {
			break
		}
		prev = cur
	}
	return result
}

// sweep accumulates every element's proposal then commits the weighted
// mean to each vertex once (spec.md §4.4's accumulate-then-average shape;
// Thread dispatch processes elements concurrently into the same
// accumulator array, each entry independently locked).
func (g Getme) sweep(msh *mesh.Mesh, cr crew.Crew, impl engine.Implementation, lambda float64) {
	accums := make([]VertexAccum, len(msh.Verts))

	accumulate := func(ref mesh.ElemRef) {
		g.accumulateElement(msh, cr, ref, lambda, accums)
	}

	if impl == engine.Thread {
		g.sweepThread(msh, accumulate)
	} else {
		msh.ForEachElem(accumulate)
	}

	for vID := range msh.Verts {
		if msh.Topos[vID].IsFixed {
			continue
		}
		p := accums[vID].mean(msh.Verts[vID].P)
		if msh.Topos[vID].IsBoundary {
			p = msh.SnapToBoundary(vID, p)
		}
		msh.Verts[vID].P = p
	}
}

func (g Getme) accumulateElement(msh *mesh.Mesh, cr crew.Crew, ref mesh.ElemRef, lambda float64, accums []VertexAccum) {
	switch ref.Kind {
	case mesh.KindTet:
		g.accumulateTet(msh, cr, ref, lambda, accums)
	case mesh.KindPri:
		g.accumulatePri(msh, cr, ref, lambda, accums)
	default:
		g.accumulateHex(msh, cr, ref, lambda, accums)
	}
}

func nudge(p, n vec3.Vec, lambda float64) vec3.Vec {
	nl := n.Length()
	if nl <= 0 {
		return p
	}
	return p.Add(n.Scale(lambda / math.Sqrt(nl)))
}

func rescaleAboutCenter(vpp []vec3.Vec, center vec3.Vec, volumeVar float64) {
	for i, p := range vpp {
		vpp[i] = center.Add(p.Sub(center).Scale(volumeVar))
	}
}

func centerOf(v []vec3.Vec) vec3.Vec {
	c := vec3.Zero
	for _, p := range v {
		c = c.Add(p)
	}
	return c.Scale(1 / float64(len(v)))
}

// accumulateTet is a direct adaptation of GetmeSmoother::smoothTets: each
// vertex moves along the opposite face's area normal, then the element is
// rescaled about its centroid to preserve volume.
func (g Getme) accumulateTet(msh *mesh.Mesh, cr crew.Crew, ref mesh.ElemRef, lambda float64, accums []VertexAccum) {
	tet := msh.Tets[ref.ID]
	vi := tet.V
	vp := [4]vec3.Vec{msh.Verts[vi[0]].P, msh.Verts[vi[1]].P, msh.Verts[vi[2]].P, msh.Verts[vi[3]].P}

	n := [4]vec3.Vec{
		vp[3].Sub(vp[1]).Cross(vp[2].Sub(vp[1])),
		vp[3].Sub(vp[2]).Cross(vp[0].Sub(vp[2])),
		vp[1].Sub(vp[3]).Cross(vp[0].Sub(vp[3])),
		vp[1].Sub(vp[0]).Cross(vp[2].Sub(vp[0])),
	}

	vpp := make([]vec3.Vec, 4)
	for i := range vpp {
		vpp[i] = nudge(vp[i], n[i], lambda)
	}

	volume := cr.Measurer.TetVolume(cr.Sampler, vp, nil)
	var vppArr [4]vec3.Vec
	copy(vppArr[:], vpp)
	volumePrime := cr.Measurer.TetVolume(cr.Sampler, vppArr, nil)
	volumeVar := volumeRatioCubeRoot(volume, volumePrime)

	center := centerOf(vp[:])
	rescaleAboutCenter(vpp, center, volumeVar)
	copy(vppArr[:], vpp)

	for i := range vpp {
		if msh.Topos[vi[i]].IsBoundary {
			vpp[i] = msh.SnapToBoundary(vi[i], vpp[i])
		}
	}
	copy(vppArr[:], vpp)

	quality := cr.Evaluator.TetQuality(cr.Sampler, cr.Measurer, vp, tet)
	qualityPrime := cr.Evaluator.TetQuality(cr.Sampler, cr.Measurer, vppArr, tet)
	weight := qualityPrime / (1 + quality)

	for i, id := range vi {
		accums[id].addPosition(vpp[i], weight)
	}
}

// accumulatePri adapts GetmeSmoother::smoothPris: auxiliary face-center
// points replace the tet's opposite-vertex role, and each vertex's base
// point blends the two auxiliary centers of its two adjacent quad faces.
func (g Getme) accumulatePri(msh *mesh.Mesh, cr crew.Crew, ref mesh.ElemRef, lambda float64, accums []VertexAccum) {
	pri := msh.Pris[ref.ID]
	vi := pri.V
	vp := [6]vec3.Vec{}
	for i, id := range vi {
		vp[i] = msh.Verts[id].P
	}

	aux := [5]vec3.Vec{
		vp[0].Add(vp[1]).Add(vp[2]).Scale(1.0 / 3.0),
		vp[0].Add(vp[1]).Add(vp[4]).Add(vp[3]).Scale(0.25),
		vp[1].Add(vp[2]).Add(vp[5]).Add(vp[4]).Scale(0.25),
		vp[2].Add(vp[0]).Add(vp[3]).Add(vp[5]).Scale(0.25),
		vp[3].Add(vp[4]).Add(vp[5]).Scale(1.0 / 3.0),
	}

	n := [6]vec3.Vec{
		aux[1].Sub(aux[0]).Cross(aux[3].Sub(aux[0])),
		aux[2].Sub(aux[0]).Cross(aux[1].Sub(aux[0])),
		aux[3].Sub(aux[0]).Cross(aux[2].Sub(aux[0])),
		aux[3].Sub(aux[4]).Cross(aux[1].Sub(aux[4])),
		aux[1].Sub(aux[4]).Cross(aux[2].Sub(aux[4])),
		aux[2].Sub(aux[4]).Cross(aux[3].Sub(aux[4])),
	}

	t := (4.0 / 5.0) * (1.0 - math.Pow(4.0/39.0, 0.25)*lambda)
	it := 1.0 - t
	bases := [6]vec3.Vec{
		aux[0].Scale(it).Add(aux[3].Add(aux[1]).Scale(t / 2)),
		aux[0].Scale(it).Add(aux[1].Add(aux[2]).Scale(t / 2)),
		aux[0].Scale(it).Add(aux[2].Add(aux[3]).Scale(t / 2)),
		aux[4].Scale(it).Add(aux[3].Add(aux[1]).Scale(t / 2)),
		aux[4].Scale(it).Add(aux[1].Add(aux[2]).Scale(t / 2)),
		aux[4].Scale(it).Add(aux[2].Add(aux[3]).Scale(t / 2)),
	}

	vpp := make([]vec3.Vec, 6)
	for i := range vpp {
		vpp[i] = nudge(bases[i], n[i], lambda)
	}

	volume := cr.Measurer.PriVolume(cr.Sampler, vp, nil)
	var vppArr [6]vec3.Vec
	copy(vppArr[:], vpp)
	volumePrime := cr.Measurer.PriVolume(cr.Sampler, vppArr, nil)
	volumeVar := volumeRatioCubeRoot(volume, volumePrime)

	center := centerOf(vp[:])
	rescaleAboutCenter(vpp, center, volumeVar)
	copy(vppArr[:], vpp)

	for i := range vpp {
		if msh.Topos[vi[i]].IsBoundary {
			vpp[i] = msh.SnapToBoundary(vi[i], vpp[i])
		}
	}
	copy(vppArr[:], vpp)

	quality := cr.Evaluator.PriQuality(cr.Sampler, cr.Measurer, vp, pri)
	qualityPrime := cr.Evaluator.PriQuality(cr.Sampler, cr.Measurer, vppArr, pri)
	weight := qualityPrime / (1 + quality)

	for i, id := range vi {
		accums[id].addPosition(vpp[i], weight)
	}
}

// accumulateHex adapts GetmeSmoother::smoothHexs: six auxiliary
// face-center points, each vertex's base point the mean of its three
// adjacent face centers.
func (g Getme) accumulateHex(msh *mesh.Mesh, cr crew.Crew, ref mesh.ElemRef, lambda float64, accums []VertexAccum) {
	hex := msh.Hexs[ref.ID]
	vi := hex.V
	vp := [8]vec3.Vec{}
	for i, id := range vi {
		vp[i] = msh.Verts[id].P
	}

	aux := [6]vec3.Vec{
		vp[0].Add(vp[1]).Add(vp[2]).Add(vp[3]).Scale(0.25),
		vp[0].Add(vp[4]).Add(vp[5]).Add(vp[1]).Scale(0.25),
		vp[1].Add(vp[5]).Add(vp[6]).Add(vp[2]).Scale(0.25),
		vp[2].Add(vp[6]).Add(vp[7]).Add(vp[3]).Scale(0.25),
		vp[0].Add(vp[3]).Add(vp[7]).Add(vp[4]).Scale(0.25),
		vp[4].Add(vp[7]).Add(vp[6]).Add(vp[5]).Scale(0.25),
	}

	n := [8]vec3.Vec{
		aux[1].Sub(aux[0]).Cross(aux[4].Sub(aux[0])),
		aux[2].Sub(aux[0]).Cross(aux[1].Sub(aux[0])),
		aux[3].Sub(aux[0]).Cross(aux[2].Sub(aux[0])),
		aux[4].Sub(aux[0]).Cross(aux[3].Sub(aux[0])),
		aux[4].Sub(aux[5]).Cross(aux[1].Sub(aux[5])),
		aux[1].Sub(aux[5]).Cross(aux[2].Sub(aux[5])),
		aux[2].Sub(aux[5]).Cross(aux[3].Sub(aux[5])),
		aux[3].Sub(aux[5]).Cross(aux[4].Sub(aux[5])),
	}

	bases := [8]vec3.Vec{
		aux[0].Add(aux[1]).Add(aux[4]).Scale(1.0 / 3.0),
		aux[0].Add(aux[2]).Add(aux[1]).Scale(1.0 / 3.0),
		aux[0].Add(aux[3]).Add(aux[2]).Scale(1.0 / 3.0),
		aux[0].Add(aux[4]).Add(aux[3]).Scale(1.0 / 3.0),
		aux[5].Add(aux[4]).Add(aux[1]).Scale(1.0 / 3.0),
		aux[5].Add(aux[1]).Add(aux[2]).Scale(1.0 / 3.0),
		aux[5].Add(aux[2]).Add(aux[3]).Scale(1.0 / 3.0),
		aux[5].Add(aux[3]).Add(aux[4]).Scale(1.0 / 3.0),
	}

	vpp := make([]vec3.Vec, 8)
	for i := range vpp {
		vpp[i] = nudge(bases[i], n[i], lambda)
	}

	volume := cr.Measurer.HexVolume(cr.Sampler, vp, nil)
	var vppArr [8]vec3.Vec
	copy(vppArr[:], vpp)
	volumePrime := cr.Measurer.HexVolume(cr.Sampler, vppArr, nil)
	volumeVar := volumeRatioCubeRoot(volume, volumePrime)

	center := centerOf(vp[:])
	rescaleAboutCenter(vpp, center, volumeVar)
	copy(vppArr[:], vpp)

	for i := range vpp {
		if msh.Topos[vi[i]].IsBoundary {
			vpp[i] = msh.SnapToBoundary(vi[i], vpp[i])
		}
	}
	copy(vppArr[:], vpp)

	quality := cr.Evaluator.HexQuality(cr.Sampler, cr.Measurer, vp, hex)
	qualityPrime := cr.Evaluator.HexQuality(cr.Sampler, cr.Measurer, vppArr, hex)
	weight := qualityPrime / (1 + quality)

	for i, id := range vi {
		accums[id].addPosition(vpp[i], weight)
	}
}

func volumeRatioCubeRoot(volume, volumePrime float64) float64 {
	if volumePrime == 0 {
		return 1
	}
	ratio := math.Abs(volume / volumePrime)
	return math.Cbrt(ratio)
}
