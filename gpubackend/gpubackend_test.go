package gpubackend_test

import (
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/anisomesh/anisomesh/gpubackend"
	"github.com/anisomesh/anisomesh/mesh"
	"github.com/anisomesh/anisomesh/vec3"
)

func TestNullUploadGeometryNeverErrors(t *testing.T) {
	m := mesh.New()
	a := m.AddVert(vec3.Vec{})
	b := m.AddVert(vec3.Vec{X: 1})
	c := m.AddVert(vec3.Vec{Y: 1})
	d := m.AddVert(vec3.Vec{Z: 1})
	m.AddTet([4]int{a, b, c, d})

	var logged string
	n := gpubackend.Null{Logf: func(format string, args ...interface{}) { logged = format }}
	assert.NoError(t, n.UploadGeometry(m))
	assert.NoError(t, n.BindBuffers(0))
	assert.NoError(t, n.DispatchCompute(1, 1, 1))
	n.MemoryBarrier()
	assert.NotEmpty(t, logged)
}

func TestMockGPUBackendRecordsUploadGeometry(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mock := gpubackend.NewMockGPUBackend(ctrl)
	m := mesh.New()
	mock.EXPECT().UploadGeometry(m).Return(nil).Times(1)

	assert.NoError(t, mock.UploadGeometry(m))
}
