package theory

import "fmt"

// normalized is the canonical (kind, u, v, c) form of an atom: "x_u - x_v
// <kind> c". kind is the atom's own kind (LessEq, LessStrict or Equal),
// except that LessStrict becomes LessEq on the Integer domain; New turns an
// Equal into two opposite NonStrict edges sharing one literal.
type normalized struct {
	kind Kind
	u, v Vertex
	c    float64
}

// vertexFor returns the vertex id for a variable name, assigning the next
// free id on first sight. It is only ever called while building the graph
// in New; the mapping is frozen afterwards.
func (e *Engine) vertexFor(name string) Vertex {
	if name == "" {
		return ZeroVertex
	}
	if v, ok := e.names[name]; ok {
		return v
	}
	v := Vertex(len(e.names) + 1)
	e.names[name] = v
	e.varNames = append(e.varNames, name)
	return v
}

// normalize reduces atom a to its canonical form. It never fails once the
// vertex mapping is fixed: the only rejected shape, per §4.B, is one where
// X is empty (a difference needs at least one named term). On the Integer
// domain a LessStrict atom is rewritten to LessEq(c-1) immediately, as
// required by §3's creation rules.
func (e *Engine) normalize(a Atom) (normalized, error) {
	if a.X == "" {
		return normalized{}, fmt.Errorf("%w: empty left-hand term in %v", ErrMalformedAtom, a)
	}
	u := e.vertexFor(a.X)
	v := e.vertexFor(a.Y)
	kind, c := a.Kind, a.C
	if e.domain == Integer && kind == LessStrict {
		kind = LessEq
		c--
	}
	return normalized{kind: kind, u: u, v: v, c: c}, nil
}
