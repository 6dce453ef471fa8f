package metric

import "github.com/anisomesh/anisomesh/vec3"

// Analytic samples a closed-form metric field. It carries no state beyond
// the field function itself.
type Analytic struct {
	// Field is the closed-form p -> M(p) map.
	Field func(p vec3.Vec) Tensor
}

// NewAnalytic wraps a field function. Field must always return an SPD
// tensor; NewAnalytic does not check this (Tensor.IsSPD is available to
// callers that want to).
func NewAnalytic(field func(p vec3.Vec) Tensor) *Analytic {
	return &Analytic{Field: field}
}

// Uniform returns an Analytic sampler scaling the Euclidean metric by K
// (metricScaling) and stretching it by an anisotropy factor A along Z
// (metricAspectRatio), matching the two configuration options in §6.
func Uniform(scaling, aspectRatio float64) *Analytic {
	return NewAnalytic(func(vec3.Vec) Tensor {
		return Diag(scaling, scaling, scaling*aspectRatio)
	})
}

func (a *Analytic) MetricAt(p vec3.Vec, hint *Hint) (Tensor, error) {
	return a.Field(p), nil
}

func (a *Analytic) IsMetricWise() bool { return true }
