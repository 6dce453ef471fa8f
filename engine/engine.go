// Package engine holds the cross-cutting dispatch/backend types that
// would otherwise be global state: the Implementation selector, the
// IndependentDispatch schedule derived from a mesh's independent groups,
// and the GPUBackend collaborator contract (spec.md §6, §9 "Global GPU /
// logger state... Confine to a single engine context object threaded
// into every backend call; no process-wide singletons").
package engine

import (
	"math"

	"github.com/anisomesh/anisomesh/mesh"
)

// Implementation selects which backend runs a smoother or evaluator pass.
// Every smoother/evaluator must support all four (spec.md §4.4).
type Implementation uint8

const (
	Serial Implementation = iota
	Thread
	GLSL
	CUDA
)

func (i Implementation) String() string {
	switch i {
	case Serial:
		return "Serial"
	case Thread:
		return "Thread"
	case GLSL:
		return "GLSL"
	case CUDA:
		return "CUDA"
	default:
		return "Unknown"
	}
}

// WorkgroupSize is the GPU backend's vertices/elements per workgroup
// (spec.md §5).
const WorkgroupSize = 256

// IndependentDispatch describes one independent group's GPU dispatch:
// a base offset into a flattened vertex/element id buffer, how many ids
// it covers, and how many workgroups of WorkgroupSize are needed to cover
// them (spec.md §4.4, §5).
type IndependentDispatch struct {
	Base            int
	Count           int
	WorkgroupCount  int
}

// BuildDispatches turns a mesh's independent-group sizes into a sequence
// of IndependentDispatch records, one per group, offsets accumulating in
// group order (spec.md §4.4: "Independent groups translate to a sequence
// of IndependentDispatch{base, count, workgroupCount}").
func BuildDispatches(groupSizes []int, workgroupSize int) []IndependentDispatch {
	if workgroupSize <= 0 {
		workgroupSize = WorkgroupSize
	}
	out := make([]IndependentDispatch, len(groupSizes))
	base := 0
	for i, count := range groupSizes {
		wg := int(math.Ceil(float64(count) / float64(workgroupSize)))
		out[i] = IndependentDispatch{Base: base, Count: count, WorkgroupCount: wg}
		base += count
	}
	return out
}

// GPUBackend is the inbound collaborator contract of spec.md §6: the core
// only calls it, it never manages GL/CUDA state itself.
type GPUBackend interface {
	UploadGeometry(m *mesh.Mesh) error
	BindBuffers(firstFreeIndex int) error
	MemoryBarrier()
	DispatchCompute(wx, wy, wz int) error
}

// Context threads the selected GPU backend and any diagnostic logger
// through every backend call, replacing process-wide singletons (spec.md
// §9).
type Context struct {
	GPU    GPUBackend
	Logf   func(format string, args ...interface{})
}

func (c Context) log(format string, args ...interface{}) {
	if c.Logf != nil {
		c.Logf(format, args...)
	}
}
