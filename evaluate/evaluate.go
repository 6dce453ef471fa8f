// Package evaluate implements per-element and mesh-wide quality
// evaluation (spec.md §4.3): a mean-ratio-style shape measure in [0,1],
// patch (harmonic-mean) quality, and the fixed-bucket quality histogram.
package evaluate

import (
	"errors"

	"github.com/anisomesh/anisomesh/mesh"
	"github.com/anisomesh/anisomesh/measure"
	"github.com/anisomesh/anisomesh/metric"
	"github.com/anisomesh/anisomesh/vec3"
)

// ErrInvalidMeasure is returned by Validate (and is fatal at
// initialization, spec.md §7) when a regular tet/pri/hex does not
// evaluate to quality 1 within ValidityEpsilon.
var ErrInvalidMeasure = errors.New("evaluate: quality measure failed self-test")

// ValidityEpsilon is the self-test and invariant-6 tolerance.
const ValidityEpsilon = 1e-6

// Evaluator is the pluggable per-element/mesh-wide quality measure of
// spec.md §4.3.
type Evaluator interface {
	TetQuality(sampler metric.Sampler, m measure.Measurer, verts [4]vec3.Vec, tet mesh.Tet) float64
	PriQuality(sampler metric.Sampler, m measure.Measurer, verts [6]vec3.Vec, pri mesh.Pri) float64
	HexQuality(sampler metric.Sampler, m measure.Measurer, verts [8]vec3.Vec, hex mesh.Hex) float64

	// PatchQuality is the harmonic mean of quality over vId's incident
	// elements, so a single bad element dominates the score.
	PatchQuality(msh *mesh.Mesh, sampler metric.Sampler, m measure.Measurer, vID int) float64

	// Validate self-tests against a regular tet, pri and hex and returns
	// ErrInvalidMeasure if any is not 1 within ValidityEpsilon.
	Validate() error
}
