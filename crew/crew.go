// Package crew holds the MeshCrew bundle (spec.md §9): the sampler,
// measurer and evaluator trio passed to every smoother/topologist
// callback, replacing the source's AbstractSampler/AbstractEvaluator
// virtual-dispatch hierarchy with a plain value of three capability
// interfaces.
package crew

import (
	"github.com/anisomesh/anisomesh/evaluate"
	"github.com/anisomesh/anisomesh/measure"
	"github.com/anisomesh/anisomesh/metric"
)

// Crew bundles the three collaborators every optimization pass needs.
// It holds trait objects rather than a type tag because samplers,
// measurers and evaluators are each a small, stable interface rather
// than a closed enum (spec.md §9).
type Crew struct {
	Sampler  metric.Sampler
	Measurer measure.Measurer
	Evaluator evaluate.Evaluator
}

// New bundles sampler, measurer and evaluator into a Crew, validating the
// evaluator's self-test eagerly so a bad quality measure fails at
// construction rather than mid-run (spec.md §7 InvalidMeasure).
func New(sampler metric.Sampler, measurer measure.Measurer, evaluator evaluate.Evaluator) (Crew, error) {
	if err := evaluator.Validate(); err != nil {
		return Crew{}, err
	}
	return Crew{Sampler: sampler, Measurer: measurer, Evaluator: evaluator}, nil
}
