// Package metric defines the Riemannian metric tensor and the pluggable
// MetricSampler abstraction (spec.md §4.1) that couples geometry to the
// metric field.
package metric

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Tensor is a 3x3 symmetric positive-definite matrix M(p) sampled at a
// point. It wraps gonum's mat.SymDense the way the teacher wraps gonum
// types for its own geometry (gonum.org/v1/gonum is already a dependency
// of the source this module was grown from).
type Tensor struct {
	sym *mat.SymDense
}

// Identity is the Euclidean metric.
func Identity() Tensor {
	return NewTensor(1, 0, 0, 1, 0, 1)
}

// NewTensor builds a tensor from the upper-triangular entries of the
// symmetric matrix: [m00, m01, m02, m11, m12, m22].
func NewTensor(m00, m01, m02, m11, m12, m22 float64) Tensor {
	sym := mat.NewSymDense(3, []float64{
		m00, m01, m02,
		m01, m11, m12,
		m02, m12, m22,
	})
	return Tensor{sym: sym}
}

// Diag builds an axis-aligned anisotropic tensor (no shear).
func Diag(sx, sy, sz float64) Tensor {
	return NewTensor(sx, 0, 0, sy, 0, sz)
}

// IsSPD reports whether the tensor is symmetric positive definite, via
// Cholesky factorization. A metric that fails this check cannot be used
// to measure distances (§7 InvalidMeasure at init time for the evaluator,
// and a loader-time check for a sampled field).
func (t Tensor) IsSPD() bool {
	var chol mat.Cholesky
	return chol.Factorize(t.sym)
}

// At returns M[i][j].
func (t Tensor) At(i, j int) float64 {
	return t.sym.At(i, j)
}

// QuadForm returns d^T M d for a displacement d (given as x,y,z).
func (t Tensor) QuadForm(dx, dy, dz float64) float64 {
	d := mat.NewVecDense(3, []float64{dx, dy, dz})
	var md mat.VecDense
	md.MulVec(t.sym, d)
	return d.Dot(&md)
}

// Det returns det(M), used to scale a Euclidean volume/length element
// into the Riemannian one (Measurer assumes M roughly constant over a
// single element and samples it once at the centroid).
func (t Tensor) Det() float64 {
	return mat.Det(t.sym)
}

// String renders the tensor for diagnostics/logging.
func (t Tensor) String() string {
	return fmt.Sprintf("[[%.4g %.4g %.4g] [%.4g %.4g %.4g] [%.4g %.4g %.4g]]",
		t.At(0, 0), t.At(0, 1), t.At(0, 2),
		t.At(1, 0), t.At(1, 1), t.At(1, 2),
		t.At(2, 0), t.At(2, 1), t.At(2, 2))
}
