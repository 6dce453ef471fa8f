// Package gpubackend implements the engine.GPUBackend collaborator
// contract of spec.md §6. Null is a no-op backend usable wherever a
// caller wants the GPU/CUDA dispatch path exercised without an actual
// compute device (CLI dry runs, Serial/Thread-only test fixtures); the
// generated mock in mock_gpubackend.go serves scheduler unit tests that
// assert on call sequencing instead.
package gpubackend

import "github.com/anisomesh/anisomesh/mesh"

// Null is an engine.GPUBackend that performs no device work. Every call
// succeeds immediately; it exists so code paths that branch on
// engine.GLSL/engine.CUDA can run without a real OpenGL/CUDA context.
type Null struct {
	Logf func(format string, args ...interface{})
}

func (n Null) log(format string, args ...interface{}) {
	if n.Logf != nil {
		n.Logf(format, args...)
	}
}

// UploadGeometry is a no-op; it logs the vertex/element counts it would
// have uploaded.
func (n Null) UploadGeometry(m *mesh.Mesh) error {
	n.log("gpubackend: upload %d verts, %d tets, %d pris, %d hexs",
		len(m.Verts), len(m.Tets), len(m.Pris), len(m.Hexs))
	return nil
}

// BindBuffers is a no-op.
func (n Null) BindBuffers(firstFreeIndex int) error {
	n.log("gpubackend: bind buffers at index %d", firstFreeIndex)
	return nil
}

// MemoryBarrier is a no-op.
func (n Null) MemoryBarrier() {}

// DispatchCompute is a no-op.
func (n Null) DispatchCompute(wx, wy, wz int) error {
	n.log("gpubackend: dispatch %dx%dx%d", wx, wy, wz)
	return nil
}
