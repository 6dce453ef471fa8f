package metric

import (
	"errors"

	"github.com/anisomesh/anisomesh/vec3"
)

// ErrOutOfDomain is returned by a Sampler whose backing domain (a source
// mesh, a texture's bounding box, ...) does not cover the query point.
// Per spec.md §7, callers fall back to the Euclidean metric and log once.
var ErrOutOfDomain = errors.New("metric: query point is out of domain")

// Hint accelerates repeated nearby queries. Local reads and updates it in
// place; Analytic, KdTree and Texture ignore it.
type Hint struct {
	// Cell is a sampler-defined index (e.g. a tet id) used as the search
	// origin for the next query.
	Cell int
}

// Sampler returns the metric tensor at any point of a 3-D domain.
type Sampler interface {
	// MetricAt returns M(p). A non-nil hint is read and updated in place
	// to accelerate the next nearby query; nil means no hint. Returns
	// ErrOutOfDomain if p falls outside the sampler's backing domain.
	MetricAt(p vec3.Vec, hint *Hint) (Tensor, error)

	// IsMetricWise reports whether this sampler carries a genuine
	// Riemannian field. Measurers fall back to Euclidean distance for
	// samplers that report false (spec.md §4.1).
	IsMetricWise() bool
}
