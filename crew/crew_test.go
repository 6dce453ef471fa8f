package crew_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/anisomesh/anisomesh/crew"
	"github.com/anisomesh/anisomesh/evaluate"
	"github.com/anisomesh/anisomesh/measure"
)

func TestNewValidatesEvaluator(t *testing.T) {
	c, err := crew.New(nil, measure.Euclidean{}, evaluate.MeanRatio{})
	assert.NoError(t, err)
	assert.False(t, c.Measurer.IsMetricWise())
}

type brokenEvaluator struct{ evaluate.MeanRatio }

func (brokenEvaluator) Validate() error { return evaluate.ErrInvalidMeasure }

func TestNewRejectsBrokenEvaluator(t *testing.T) {
	_, err := crew.New(nil, measure.Euclidean{}, brokenEvaluator{})
	assert.ErrorIs(t, err, evaluate.ErrInvalidMeasure)
}

