package theory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGraphEqualAtomSharesLiteralAcrossBothDirections(t *testing.T) {
	g := newGraph(2)
	lit := Lit(0, false)
	g.addEdge(Real, 0, 1, 5, NonStrict, lit)
	g.addEdge(Real, 1, 0, -5, NonStrict, lit)

	refs, ok := g.refsFor(lit)
	require.True(t, ok)
	require.Len(t, refs, 2)

	fwd, _, ok := g.edgeFor(0, 1, lit)
	require.True(t, ok)
	assert.Equal(t, 5.0, fwd.weight)

	back, _, ok := g.edgeFor(1, 0, lit)
	require.True(t, ok)
	assert.Equal(t, -5.0, back.weight)
}

func TestGraphStrongestPrefersTighterBound(t *testing.T) {
	g := newGraph(2)
	litA := Lit(0, false)
	litB := Lit(1, false)
	g.addEdge(Real, 0, 1, 5, NonStrict, litA)
	g.addEdge(Real, 0, 1, 3, NonStrict, litB)
	g.at(litRef{u: 0, v: 1, idx: 0}).status = assigned
	g.at(litRef{u: 0, v: 1, idx: 1}).status = assigned

	best, ok := g.strongest(0, 1)
	require.True(t, ok)
	assert.Equal(t, 3.0, best.weight)
}

func TestGraphStrongestPrefersStrictOnTie(t *testing.T) {
	g := newGraph(2)
	litA := Lit(0, false)
	litB := Lit(1, false)
	g.addEdge(Real, 0, 1, 3, NonStrict, litA)
	g.addEdge(Real, 0, 1, 3, Strict, litB)
	g.at(litRef{u: 0, v: 1, idx: 0}).status = assigned
	g.at(litRef{u: 0, v: 1, idx: 1}).status = assigned

	best, ok := g.strongest(0, 1)
	require.True(t, ok)
	assert.True(t, best.strict == Strict)
}

func TestGraphIntegerDomainRewritesStrictEdge(t *testing.T) {
	g := newGraph(2)
	lit := Lit(0, false)
	g.addEdge(Integer, 0, 1, 5, Strict, lit)

	ed, _, ok := g.edgeFor(0, 1, lit)
	require.True(t, ok)
	assert.Equal(t, 4.0, ed.weight)
	assert.Equal(t, NonStrict, ed.strict)
}
