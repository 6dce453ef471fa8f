package obs_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/anisomesh/anisomesh/internal/obs"
)

func TestOutOfDomainLogsOnlyFirstOccurrence(t *testing.T) {
	var buf bytes.Buffer
	l := obs.New(obs.Config{Output: &buf})

	l.OutOfDomain("query outside metric field bounds")
	l.OutOfDomain("query outside metric field bounds")
	l.OutOfDomain("query outside metric field bounds")

	lines := strings.Count(buf.String(), "\n")
	assert.Equal(t, 1, lines)
}

func TestDegenerateLogsOncePerKind(t *testing.T) {
	var buf bytes.Buffer
	l := obs.New(obs.Config{Output: &buf})

	l.Degenerate("tet", "zero volume")
	l.Degenerate("tet", "zero volume")
	l.Degenerate("hex", "zero volume")

	lines := strings.Count(buf.String(), "\n")
	assert.Equal(t, 2, lines)
}

func TestErrorIncludesUnderlyingError(t *testing.T) {
	var buf bytes.Buffer
	l := obs.New(obs.Config{Output: &buf})

	l.Error("failed to load mesh", errors.New("bad json"))
	assert.Contains(t, buf.String(), "bad json")
}

func TestLogfWritesFormattedMessage(t *testing.T) {
	var buf bytes.Buffer
	l := obs.New(obs.Config{Output: &buf})

	l.Logf("pass %d complete", 3)
	assert.Contains(t, buf.String(), "pass 3 complete")
}
