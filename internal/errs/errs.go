// Package errs names the error kinds of spec.md §7 and the policy each
// carries, so callers across packages can errors.Is/errors.As against a
// single vocabulary instead of ad-hoc string errors.
package errs

import "errors"

// Kind tags one of the six error classes spec.md §7 defines.
type Kind uint8

const (
	// InvalidMeasure: a quality measure's self-test on a regular element
	// did not return 1. Fatal at initialization.
	InvalidMeasure Kind = iota
	// OutOfDomain: a metric sampler query landed outside the mesh's
	// domain. Policy: fall back to Euclidean, log once.
	OutOfDomain
	// NonConformal: a topology edit would create a non-positive-volume
	// element. Policy: reject the edit, restore, continue.
	NonConformal
	// BoundaryViolation: a boundary projection failed to converge.
	// Policy: skip that vertex this pass.
	BoundaryViolation
	// Degenerate: a zero-length edge or zero-area triangle was measured.
	// Policy: skip the element in the accumulator, log.
	Degenerate
	// ImplementationMissing: the selected backend name has no registered
	// implementation. Policy: surface to caller, abort the run.
	ImplementationMissing
)

func (k Kind) String() string {
	switch k {
	case InvalidMeasure:
		return "InvalidMeasure"
	case OutOfDomain:
		return "OutOfDomain"
	case NonConformal:
		return "NonConformal"
	case BoundaryViolation:
		return "BoundaryViolation"
	case Degenerate:
		return "Degenerate"
	case ImplementationMissing:
		return "ImplementationMissing"
	default:
		return "Unknown"
	}
}

// Error wraps a Kind with the concrete offending detail, so log sites and
// errors.As callers both get something useful.
type Error struct {
	Kind   Kind
	Detail string
}

func (e *Error) Error() string {
	if e.Detail == "" {
		return e.Kind.String()
	}
	return e.Kind.String() + ": " + e.Detail
}

func New(kind Kind, detail string) *Error {
	return &Error{Kind: kind, Detail: detail}
}

// Is supports errors.Is(err, errs.ErrNonConformal) et al. by comparing
// Kind rather than pointer identity.
func (e *Error) Is(target error) bool {
	var other *Error
	if !errors.As(target, &other) {
		return false
	}
	return e.Kind == other.Kind
}

// Sentinel values for errors.Is comparisons against a bare Kind, e.g.
// errors.Is(err, errs.ErrNonConformal).
var (
	ErrInvalidMeasure         = &Error{Kind: InvalidMeasure}
	ErrOutOfDomain            = &Error{Kind: OutOfDomain}
	ErrNonConformal           = &Error{Kind: NonConformal}
	ErrBoundaryViolation      = &Error{Kind: BoundaryViolation}
	ErrDegenerate             = &Error{Kind: Degenerate}
	ErrImplementationMissing  = &Error{Kind: ImplementationMissing}
)

// ErrNoBase is returned when a topology edit (e.g. an edge swap) cannot
// locate a base element to anchor its retriangulation on — the source
// left this case as undefined behavior reading past the end of a vector;
// here it is a reportable, recoverable error instead (SPEC_FULL §D).
var ErrNoBase = errors.New("topo: no base element for retriangulation")
