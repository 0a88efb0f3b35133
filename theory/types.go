package theory

import "fmt"

// Domain selects the numeric universe atoms are interpreted over. It
// affects only how strict inequalities are normalized (see Kind).
type Domain byte

const (
	// Real is the default: strict and non-strict edges are kept distinct.
	Real = Domain(iota)
	// Integer rewrites every strict edge "< c" to a non-strict "<= c-1"
	// at creation time. No strict edge is ever materialized on this domain.
	Integer
)

func (d Domain) String() string {
	switch d {
	case Real:
		return "Real"
	case Integer:
		return "Integer"
	default:
		panic("invalid domain")
	}
}

// Kind is the relation of a difference-logic atom.
type Kind byte

const (
	// LessEq is "x - y <= c".
	LessEq = Kind(iota)
	// LessStrict is "x - y < c".
	LessStrict
	// Equal is "x - y = c".
	Equal
)

func (k Kind) String() string {
	switch k {
	case LessEq:
		return "<="
	case LessStrict:
		return "<"
	case Equal:
		return "="
	default:
		panic("invalid kind")
	}
}

// Strictness distinguishes a "<" edge (Strict) from a "<=" edge (NonStrict).
type Strictness bool

const (
	// NonStrict corresponds to "<=".
	NonStrict Strictness = false
	// Strict corresponds to "<".
	Strict Strictness = true
)

func (s Strictness) String() string {
	if s == Strict {
		return "<"
	}
	return "<="
}

// Vertex is a non-negative id in the potential-function graph. Id 0 is the
// synthetic zero vertex: it stands for the constant 0, letting unary bounds
// "x <= c" be encoded as the difference "x - 0 <= c".
type Vertex int32

// ZeroVertex is the reserved id of the synthetic zero vertex.
const ZeroVertex Vertex = 0

// Atom is a difference-logic literal as given by the host at construction
// time: "X - Y <kind> C", or, if Y is empty, the unary bound "X <kind> C"
// (encoded internally against ZeroVertex).
//
// Equal atoms only ever produce one usable Literal (Lit(i, false)); the DL
// theory cannot express "X - Y != C" as a single edge, so Lit(i, true) is
// never wired to an edge for an Equal atom and pushing it fails with
// ErrUnknownLiteral.
type Atom struct {
	Kind Kind
	X    string
	Y    string
	C    float64
}

func (a Atom) String() string {
	lhs := a.X
	if a.Y != "" {
		lhs = fmt.Sprintf("%s - %s", a.X, a.Y)
	}
	return fmt.Sprintf("%s %s %g", lhs, a.Kind, a.C)
}

// Literal identifies an atom given at construction, or its negation. Atom
// index i has two literals: Lit(i, false) is the atom itself, Lit(i, true)
// is its negation. This mirrors gophersat's solver.Lit encoding (variable
// index shifted left one bit, sign in the low bit).
type Literal int32

// Lit builds the literal for atom index idx, negated if neg is true.
func Lit(idx int, neg bool) Literal {
	if neg {
		return Literal(2*idx + 1)
	}
	return Literal(2 * idx)
}

// AtomIndex returns the index, into the slice passed to New, of the atom
// underlying l.
func (l Literal) AtomIndex() int { return int(l / 2) }

// Negated reports whether l is the negation of its underlying atom.
func (l Literal) Negated() bool { return l&1 == 1 }

// Negation returns the complementary literal for the same atom.
func (l Literal) Negation() Literal { return l ^ 1 }

func (l Literal) String() string {
	sign := ""
	if l.Negated() {
		sign = "!"
	}
	return fmt.Sprintf("%sa%d", sign, l.AtomIndex())
}

// Status is the current satisfiability verdict of an Engine.
type Status byte

const (
	// Sat means every literal pushed so far is jointly satisfiable.
	Sat = Status(iota)
	// UnSat means the last Push detected a negative cycle.
	UnSat
)

func (s Status) String() string {
	switch s {
	case Sat:
		return "Sat"
	case UnSat:
		return "UnSat"
	default:
		panic("invalid status")
	}
}

// Equality is a Nelson-Oppen equality between two shared terms, returned by
// Engine.Propagations.
type Equality struct {
	A, B string
}

func (e Equality) String() string { return fmt.Sprintf("%s = %s", e.A, e.B) }

// Stats are counters about the resolution of the problem, provided for
// information purposes only; the engine never consults them.
type Stats struct {
	NbPush          int
	NbPop           int
	NbPropagated    int
	NbUnsatDetected int
}

// DebugEdge is a snapshot of one active edge, exported for introspection
// tools (debug DOT rendering, logging) that should not need to know about
// the engine's internal vertex ids.
type DebugEdge struct {
	From, To string
	Weight   float64
	Strict   bool
	Lit      Literal
	Status   string
}
