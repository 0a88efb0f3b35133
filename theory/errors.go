package theory

import "errors"

// Sentinel errors returned by this package. Callers should use errors.Is,
// since every error returned from a public method wraps one of these with
// call-specific context via fmt.Errorf's %w, following the wrapping style
// of gophersat's explain and bf packages.
var (
	// ErrMalformedAtom is returned by New when an atom cannot be reduced
	// to a difference (kind, u, v, c): typically an empty X.
	ErrMalformedAtom = errors.New("theory: malformed atom")

	// ErrUnknownLiteral is returned by Push, Justify and Value when a
	// Literal or variable name does not correspond to anything seen at
	// New, or (for Equal atoms) to a polarity the theory cannot encode.
	// Justify also returns it for a literal whose edge is still dormant.
	ErrUnknownLiteral = errors.New("theory: unknown literal")

	// ErrTrailEmpty is returned by Pop when there is nothing to undo.
	ErrTrailEmpty = errors.New("theory: pop on empty trail")

	// ErrWrongState is returned when a call is made in a state its
	// contract forbids: Propagations while UnSat, UnsatCore while Sat,
	// Push while UnSat.
	ErrWrongState = errors.New("theory: call invalid in current state")

	// ErrInconsistentTrail is returned by Justify when the literal's own
	// edge is a Consequence with an empty witness. This can only happen if
	// the engine's own invariants were violated; it is not a usage error.
	// Edges met while unwinding a witness are not checked: a dormant one is
	// skipped, and UnsatCore never returns this error.
	ErrInconsistentTrail = errors.New("theory: inconsistent consequence chain")
)
