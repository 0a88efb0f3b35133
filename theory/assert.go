package theory

import "math"

// applyDifference asserts the single directed edge u -> v (whose bound and
// strictness are already stored on ed) under lit, folding the mutation
// into frame. It is idempotent: re-asserting an already-active edge is a
// no-op. It returns false, leaving frame carrying whatever partial work
// was done, if the assertion closes a negative cycle.
func (e *Engine) applyDifference(ed *edge, u, v Vertex, frame *trailFrame) bool {
	if ed.active() {
		return true
	}
	e.flipEdge(ed, assigned, nil, frame)

	gap := e.pi[u] - e.pi[v] - effective(ed.weight, ed.strict == Strict)
	if gap > 1e-12 {
		witness, ok := e.restoreInvariant(u, v, gap, frame)
		if !ok {
			frame.unsatWitness = append(append([]Literal{}, witness...), ed.lit)
			return false
		}
	}
	e.propagateConsequences(u, v, ed, frame)
	return true
}

// flipEdge records ed's current status and witness for undo, then applies
// the new ones.
func (e *Engine) flipEdge(ed *edge, status edgeStatus, witness []Literal, frame *trailFrame) {
	frame.flips = append(frame.flips, edgeFlip{ed: ed, oldStatus: ed.status, oldWitness: ed.witness})
	ed.status = status
	ed.witness = witness
}

// restoreInvariant runs the Cotton-Maler potential fixup after asserting
// edge u -> v violated the invariant by gap = π(u) - π(v) - bound(u,v).
// It searches backward from u along active in-edges, in Johnson-reweighted
// Dijkstra order, decreasing the potential of every vertex whose distance
// to u is within the gap budget. If the search re-reaches v within the
// budget, the new edge closes a negative cycle through v and u and the
// assertion is rejected; the returned literals are that cycle's path from
// v to u (the closing edge u->v is added by the caller).
func (e *Engine) restoreInvariant(u, v Vertex, gap float64, frame *trailFrame) ([]Literal, bool) {
	n := e.n
	key := make([]float64, n)
	for i := range key {
		key[i] = math.Inf(1)
	}
	key[u] = 0
	dist := make([]distEntry, n)
	dist[u] = distEntry{reached: true, pred: u}

	pq := newPQueue(key, math.Inf(1))
	pq.insert(u)
	settled := make([]bool, n)

	for !pq.empty() {
		x := pq.extractMin()
		if settled[x] {
			continue
		}
		settled[x] = true
		if x == v && key[x] < gap-1e-12 {
			return pathLitsBackward(dist, u, v), false
		}
		if key[x] >= gap {
			break
		}
		e.g.forEachActiveSource(x, func(y Vertex, ed *edge) {
			if settled[y] {
				return
			}
			rw := effective(ed.weight, ed.strict == Strict) - e.pi[y] + e.pi[x]
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
		})
	}

	for x := 0; x < n; x++ {
		if dist[Vertex(x)].reached && key[x] < gap {
			delta := gap - key[x]
			old := e.pi[x]
			e.pi[x] = old - delta
			frame.mutations = append(frame.mutations, mutation{v: Vertex(x), oldPi: old})
		}
	}
	return nil, true
}

// propagateConsequences looks for dormant edges a -> b that are now
// entailed by a path running through the newly asserted edge u -> v, and
// marks them Consequence with the witness path that entails them. It
// reuses the full shortest-path scan (component G) rather than a bespoke
// local search, since T-propagation can reach arbitrarily far from u
// and v once potentials have settled.
func (e *Engine) propagateConsequences(u, v Vertex, ed *edge, frame *trailFrame) {
	toU := e.backwardDijkstra(u)
	fromV := e.forwardDijkstra(v)

	for a := 0; a < e.n; a++ {
		if !toU[a].reached {
			continue
		}
		for b := 0; b < e.n; b++ {
			if !fromV[b].reached {
				continue
			}
			row := e.g.cell[a][b]
			for i := range row {
				cand := &row[i]
				if cand.active() {
					continue
				}
				totalVal := toU[a].val + ed.weight + fromV[b].val
				totalStrict := toU[a].strict || ed.strict == Strict || fromV[b].strict
				if !cand.weaker(totalVal, Strictness(totalStrict)) {
					continue
				}
				witness := pathLitsBackward(toU, u, Vertex(a))
				witness = append(witness, ed.lit)
				witness = append(witness, pathLitsForward(fromV, v, Vertex(b))...)
				e.flipEdge(cand, consequence, witness, frame)
				e.stats.NbPropagated++
			}
		}
	}
}
