package theory

import "math"

// distEntry is one vertex's entry in a shortest-path tree: the real
// (value, strictness) distance to/from the search root along active edges
// only, and enough of the predecessor link to walk the tree back into a
// literal path.
type distEntry struct {
	reached  bool
	val      float64
	strict   bool
	pred     Vertex
	predEdge *edge
}

// forwardDijkstra computes, for every vertex reachable from src by active
// edges, the shortest real distance src -> x. It runs Dijkstra over
// Johnson-reweighted edge lengths (nonnegative given invariant (1) on
// every active edge) purely to get the extraction order right in the
// presence of negative real weights; the real (value, strictness) distance
// is accumulated directly along the discovered tree, not recovered from
// the reweighted key, so no back-conversion formula is needed.
func (e *Engine) forwardDijkstra(src Vertex) []distEntry {
	return e.dijkstraCore(src, true)
}

// backwardDijkstra computes, for every vertex x with an active path to
// dst, the shortest real distance x -> dst. It is the mirror of
// forwardDijkstra run on the reverse graph.
func (e *Engine) backwardDijkstra(dst Vertex) []distEntry {
	return e.dijkstraCore(dst, false)
}

func (e *Engine) dijkstraCore(root Vertex, forward bool) []distEntry {
	n := e.n
	key := make([]float64, n)
	for i := range key {
		key[i] = math.Inf(1)
	}
	key[root] = 0
	dist := make([]distEntry, n)
	dist[root] = distEntry{reached: true, pred: root}

	pq := newPQueue(key, math.Inf(1))
	pq.insert(root)
	settled := make([]bool, n)

	relax := func(x, y Vertex, ed *edge) {
		if settled[y] {
			return
		}
		// rw is always computed in the edge's own direction, regardless
		// of which way the search is walking the graph.
		var rw float64
		if forward {
			rw = effective(ed.weight, ed.strict == Strict) - e.pi[x] + e.pi[y]
		} else {
			rw = effective(ed.weight, ed.strict == Strict) - e.pi[y] + e.pi[x]
		}
		nd := key[x] + rw
		if nd < key[y] {
			key[y] = nd
			dist[y] = distEntry{
				reached:  true,
				val:      dist[x].val + ed.weight,
				strict:   dist[x].strict || ed.strict == Strict,
				pred:     x,
				predEdge: ed,
			}
			pq.insertOrDecrease(y)
		}
	}

	for !pq.empty() {
		x := pq.extractMin()
		if settled[x] {
			continue
		}
		settled[x] = true
		if forward {
			e.g.forEachActiveTarget(x, func(y Vertex, ed *edge) { relax(x, y, ed) })
		} else {
			e.g.forEachActiveSource(x, func(y Vertex, ed *edge) { relax(x, y, ed) })
		}
	}
	return dist
}

// pathLitsForward walks a forwardDijkstra(src) tree from src to t and
// returns the literals of the active edges traversed, in traversal order
// (src -> ... -> t).
func pathLitsForward(tree []distEntry, src, t Vertex) []Literal {
	if !tree[t].reached {
		return nil
	}
	var rev []Literal
	for x := t; x != src; x = tree[x].pred {
		rev = append(rev, tree[x].predEdge.lit)
	}
	out := make([]Literal, len(rev))
	for i, l := range rev {
		out[len(rev)-1-i] = l
	}
	return out
}

// pathLitsBackward walks a backwardDijkstra(dst) tree from s to dst and
// returns the literals of the active edges traversed, in traversal order
// (s -> ... -> dst).
func pathLitsBackward(tree []distEntry, dst, s Vertex) []Literal {
	if !tree[s].reached {
		return nil
	}
	var out []Literal
	for x := s; x != dst; x = tree[x].pred {
		out = append(out, tree[x].predEdge.lit)
	}
	return out
}
