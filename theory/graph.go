package theory

// edgeStatus is the lifecycle state of an edge, mirroring the lifecycle a
// gophersat solver.Clause goes through as watched literals get bound: it
// starts dormant, then is either explicitly enforced or found to follow
// from other enforced edges.
type edgeStatus byte

const (
	unassigned edgeStatus = iota
	assigned
	consequence
)

// edge is one directed constraint u -> v, "x_u - x_v <= weight" (NonStrict)
// or "x_u - x_v < weight" (Strict). witness is non-nil only when status is
// consequence, and holds the literals of the active edges (Assigned or
// Consequence) on the path that entails this one -- never pointers back into the matrix, only literal
// ids, so the acyclicity of the Consequence DAG is just a data invariant
// to check, not something the representation enforces (see design notes).
type edge struct {
	to      Vertex
	weight  float64
	strict  Strictness
	lit     Literal
	status  edgeStatus
	witness []Literal
}

// active reports whether the edge currently constrains the potential
// function, i.e. it is not dormant.
func (e *edge) active() bool { return e.status != unassigned }

// weaker reports whether e's bound is entailed by an edge of the given
// (weight, strictness), i.e. an assertion of that edge would make e
// redundant. This reproduces the source's asymmetric comparison verbatim:
// e is entailed by (w, s) when w < e.weight, or w == e.weight and (s is
// Strict or e is not Strict).
func (e *edge) weaker(w float64, s Strictness) bool {
	if w < e.weight {
		return true
	}
	return w == e.weight && (s == Strict || e.strict != Strict)
}

// litRef locates one specific edge in the matrix.
type litRef struct {
	u, v Vertex
	idx  int
}

// graph is the dense n x n adjacency of parallel edges described in the
// spec: cell[u][v] holds every edge that was ever created from u to v,
// dormant or not. It is never resized after construction. A literal maps
// to one edge per direction it was created in -- one for LessEq/LessStrict
// atoms, two (u->v and v->u) for Equal atoms, which is why byLit is
// slice-valued.
type graph struct {
	n     int
	cell  [][][]edge
	byLit map[Literal][]litRef
}

func newGraph(n int) *graph {
	cell := make([][][]edge, n)
	for i := range cell {
		cell[i] = make([][]edge, n)
	}
	return &graph{n: n, cell: cell, byLit: make(map[Literal][]litRef)}
}

// addEdge appends a new dormant edge u -> v to the matrix and indexes it by
// literal. On the Integer domain, a Strict edge is immediately rewritten to
// NonStrict with weight-1, since "Strict is never created on integers".
func (g *graph) addEdge(dom Domain, u, v Vertex, w float64, s Strictness, lit Literal) {
	if dom == Integer && s == Strict {
		w--
		s = NonStrict
	}
	idx := len(g.cell[u][v])
	g.cell[u][v] = append(g.cell[u][v], edge{to: v, weight: w, strict: s, lit: lit, status: unassigned})
	g.byLit[lit] = append(g.byLit[lit], litRef{u: u, v: v, idx: idx})
}

// at dereferences a litRef.
func (g *graph) at(ref litRef) *edge { return &g.cell[ref.u][ref.v][ref.idx] }

// refsFor returns every edge created for a literal (one, or two for an
// Equal atom's positive literal), and whether the literal is known at all.
func (g *graph) refsFor(lit Literal) ([]litRef, bool) {
	refs, ok := g.byLit[lit]
	return refs, ok
}

// edgeFor finds, within the specific direction u->v, the edge carrying lit.
// Every literal appears at most once per direction (invariant 2), so this
// is unambiguous.
func (g *graph) edgeFor(u, v Vertex, lit Literal) (*edge, int, bool) {
	row := g.cell[u][v]
	for i := range row {
		if row[i].lit == lit {
			return &row[i], i, true
		}
	}
	return nil, -1, false
}

// strongest returns the minimum-weight active edge from u to v, tie-broken
// by strictness (Strict beats NonStrict, per the glossary's definition of
// "strongest edge"), and whether one exists.
func (g *graph) strongest(u, v Vertex) (*edge, bool) {
	var best *edge
	row := g.cell[u][v]
	for i := range row {
		e := &row[i]
		if !e.active() {
			continue
		}
		if best == nil || e.weight < best.weight || (e.weight == best.weight && e.strict == Strict && best.strict != Strict) {
			best = e
		}
	}
	return best, best != nil
}

// forEachActiveTarget calls f once per vertex v reachable by at least one
// active edge from u, passing the strongest such edge -- the forward
// (out-edge) adjacency of §4.G.
func (g *graph) forEachActiveTarget(u Vertex, f func(v Vertex, e *edge)) {
	for v := 0; v < g.n; v++ {
		if e, ok := g.strongest(u, Vertex(v)); ok {
			f(Vertex(v), e)
		}
	}
}

// forEachActiveSource calls f once per vertex u with at least one active
// edge into v, passing the strongest such edge -- the backward (in-edge)
// adjacency of §4.G, used for "distance to a vertex" queries.
func (g *graph) forEachActiveSource(v Vertex, f func(u Vertex, e *edge)) {
	for u := 0; u < g.n; u++ {
		if e, ok := g.strongest(Vertex(u), v); ok {
			f(Vertex(u), e)
		}
	}
}

// activeLiterals returns every literal whose edge is currently Assigned or
// Consequence.
func (g *graph) activeLiterals() []Literal {
	var out []Literal
	for lit, refs := range g.byLit {
		if len(refs) > 0 && g.at(refs[0]).active() {
			out = append(out, lit)
		}
	}
	return out
}
