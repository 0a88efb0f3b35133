package theory

import (
	"fmt"

	"github.com/google/uuid"
)

// mutation is one potential-function change, recorded so Pop can undo it.
type mutation struct {
	v     Vertex
	oldPi float64
}

// edgeFlip is one edge status change, recorded so Pop can undo it. It
// holds the edge pointer directly rather than a (u, v, idx) triple: the
// graph's cell matrix is fully built in New and never appended to again,
// so pointers into it stay valid for the engine's whole lifetime.
type edgeFlip struct {
	ed         *edge
	oldStatus  edgeStatus
	oldWitness []Literal
}

// trailFrame is the undo record for one Push call. An Equal atom asserts
// two edges (u->v and v->u) under a single literal; both sub-assertions
// share one frame, so a single Pop undoes both together.
type trailFrame struct {
	lit          Literal
	mutations    []mutation
	flips        []edgeFlip
	unsatWitness []Literal
}

// Engine incrementally maintains satisfiability of a conjunction of
// difference-logic atoms pushed onto a trail, using a potential function
// to certify consistency and a dense edge graph to detect and explain
// contradictions. It performs no I/O beyond the one-time random read
// behind uuid.New in the constructor; Push and Pop never block.
type Engine struct {
	ID uuid.UUID

	domain   Domain
	atoms    []Atom
	names    map[string]Vertex
	varNames []string
	n        int

	g  *graph
	pi []float64

	status Status
	trail  []trailFrame

	// unsatCore holds the literals of the negative cycle found by the
	// Push that last drove the engine into UnSat. It is cleared by Pop.
	unsatCore []Literal

	// unsatTrigger is the literal passed to that same Push, returned as
	// the triggering literal by UnsatCoreWithInfo.
	unsatTrigger Literal

	stats Stats
}

// New builds an Engine over the given atoms. Every distinct term name
// seen across the atoms is assigned a vertex id in first-seen order,
// alongside the reserved ZeroVertex for unary bounds. The returned engine
// starts Sat with every edge dormant; nothing is pushed yet.
func New(domain Domain, atoms []Atom) (*Engine, error) {
	e := &Engine{
		ID:       uuid.New(),
		domain:   domain,
		atoms:    append([]Atom(nil), atoms...),
		names:    make(map[string]Vertex),
		varNames: nil,
		status:   Sat,
	}
	e.n = 1
	for i, a := range atoms {
		if a.X == "" {
			return nil, fmt.Errorf("theory.New: atom %d: %w", i, ErrMalformedAtom)
		}
		e.vertexFor(a.X)
		if a.Y != "" {
			e.vertexFor(a.Y)
		}
	}
	e.n = len(e.names) + 1
	e.g = newGraph(e.n)
	e.pi = make([]float64, e.n)

	for i, a := range atoms {
		norm, err := e.normalize(a)
		if err != nil {
			return nil, fmt.Errorf("theory.New: atom %d: %w", i, err)
		}
		u, v, c := norm.u, norm.v, norm.c
		switch norm.kind {
		case LessEq:
			e.g.addEdge(domain, u, v, c, NonStrict, Lit(i, false))
			e.g.addEdge(domain, v, u, -c, Strict, Lit(i, true))
		case LessStrict:
			e.g.addEdge(domain, u, v, c, Strict, Lit(i, false))
			e.g.addEdge(domain, v, u, -c, NonStrict, Lit(i, true))
		case Equal:
			e.g.addEdge(domain, u, v, c, NonStrict, Lit(i, false))
			e.g.addEdge(domain, v, u, -c, NonStrict, Lit(i, false))
		default:
			return nil, fmt.Errorf("theory.New: atom %d: unknown kind: %w", i, ErrMalformedAtom)
		}
	}
	return e, nil
}

// IsSat reports the engine's current status.
func (e *Engine) IsSat() bool { return e.status == Sat }

// Status returns the engine's current verdict.
func (e *Engine) Status() Status { return e.status }

// Stats returns a snapshot of the engine's resolution counters.
func (e *Engine) Stats() Stats { return e.stats }

// Push asserts lit. It returns true if the theory remains satisfiable
// after the assertion, false if lit conflicts with the trail (in which
// case the engine transitions to UnSat and UnsatCore becomes available).
// Every Push, successful or not, extends the trail by exactly one frame,
// so a matching Pop always undoes it.
func (e *Engine) Push(lit Literal) (bool, error) {
	if e.status == UnSat {
		return false, fmt.Errorf("theory: Push: %w", ErrWrongState)
	}
	refs, ok := e.g.refsFor(lit)
	if !ok {
		return false, fmt.Errorf("theory: Push(%v): %w", lit, ErrUnknownLiteral)
	}
	frame := trailFrame{lit: lit}
	ok2 := true
	for _, ref := range refs {
		ed := e.g.at(ref)
		if !e.applyDifference(ed, ref.u, ref.v, &frame) {
			ok2 = false
			break
		}
	}
	e.trail = append(e.trail, frame)
	e.stats.NbPush++
	if !ok2 {
		e.status = UnSat
		e.unsatCore = frame.unsatWitness
		e.unsatTrigger = lit
		e.stats.NbUnsatDetected++
		return false, nil
	}
	return true, nil
}

// Pop undoes the most recent Push, restoring the potential function and
// every edge status it changed. If the trail was driven to UnSat by that
// Push, popping it returns the engine to Sat.
func (e *Engine) Pop() error {
	if len(e.trail) == 0 {
		return fmt.Errorf("theory: Pop: %w", ErrTrailEmpty)
	}
	frame := e.trail[len(e.trail)-1]
	e.trail = e.trail[:len(e.trail)-1]
	for i := len(frame.mutations) - 1; i >= 0; i-- {
		m := frame.mutations[i]
		e.pi[m.v] = m.oldPi
	}
	for i := len(frame.flips) - 1; i >= 0; i-- {
		fl := frame.flips[i]
		fl.ed.status = fl.oldStatus
		fl.ed.witness = fl.oldWitness
	}
	e.status = Sat
	e.unsatCore = nil
	e.unsatTrigger = 0
	e.stats.NbPop++
	return nil
}

// Value returns a real value for name consistent with every atom
// currently on the trail, derived from the potential function. It is only
// meaningful while the engine is Sat.
func (e *Engine) Value(name string) (float64, error) {
	v, ok := e.names[name]
	if !ok {
		return 0, fmt.Errorf("theory: Value(%q): %w", name, ErrUnknownLiteral)
	}
	return e.pi[v] - e.pi[ZeroVertex], nil
}

// ActiveLiterals returns every literal whose edge is currently Assigned or
// a Consequence, in no particular order.
func (e *Engine) ActiveLiterals() []Literal {
	return e.g.activeLiterals()
}

// vertexName returns the term name for v, or "0" for the zero vertex.
func (e *Engine) vertexName(v Vertex) string {
	if v == ZeroVertex {
		return "0"
	}
	return e.varNames[v-1]
}

func edgeStatusName(s edgeStatus) string {
	switch s {
	case assigned:
		return "assigned"
	case consequence:
		return "consequence"
	default:
		return "unassigned"
	}
}

// DebugEdges returns every active edge in the graph, with vertex ids
// resolved back to their term names, for introspection tooling.
func (e *Engine) DebugEdges() []DebugEdge {
	var out []DebugEdge
	for u := 0; u < e.n; u++ {
		for v := 0; v < e.n; v++ {
			for i := range e.g.cell[u][v] {
				ed := &e.g.cell[u][v][i]
				if !ed.active() {
					continue
				}
				out = append(out, DebugEdge{
					From:   e.vertexName(Vertex(u)),
					To:     e.vertexName(Vertex(v)),
					Weight: ed.weight,
					Strict: ed.strict == Strict,
					Lit:    ed.lit,
					Status: edgeStatusName(ed.status),
				})
			}
		}
	}
	return out
}

func (e *Engine) String() string {
	return fmt.Sprintf("theory.Engine{id: %s, domain: %s, vars: %d, status: %s, pushed: %d}",
		e.ID, e.domain, len(e.varNames), e.status, len(e.trail))
}
