package theory

import "fmt"

// tagDL is the provenance tag every Explanation this theory produces
// carries, identifying difference logic as the theory that deduced it.
const tagDL = "DL"

// Explanation is why a literal holds: Literal is the literal being
// explained (the literal passed to Justify, or the literal whose Push
// drove the engine to UnSat for UnsatCoreWithInfo). Conjunction is the
// transitive set of Assigned ancestor literals that ultimately entail it.
// Deductions is every intermediate Consequence literal that had to be
// unwound to reach them, i.e. every Consequence literal strictly between
// Literal and the Assigned ancestors in Conjunction.
type Explanation struct {
	Literal     Literal
	Conjunction []Literal
	Deductions  []Literal
	Tag         string
}

// Justify explains lit's current edge status. An Assigned literal is its
// own explanation: Conjunction is just {lit}, Deductions is empty. A
// Consequence literal is explained by recursively justifying every
// literal in its witness path: each witness literal that is itself
// Assigned contributes to Conjunction, and each that is itself a
// Consequence contributes to Deductions and is expanded in turn, so that
// Conjunction never contains anything but Assigned literals even when the
// witness path runs through other Consequence edges. It fails if lit's
// edge is dormant, or if a Consequence edge was left without a witness.
func (e *Engine) Justify(lit Literal) (Explanation, error) {
	refs, ok := e.g.refsFor(lit)
	if !ok {
		return Explanation{}, fmt.Errorf("theory: Justify(%v): %w", lit, ErrUnknownLiteral)
	}
	ed := e.g.at(refs[0])
	switch ed.status {
	case assigned:
		return Explanation{Literal: lit, Conjunction: []Literal{lit}, Tag: tagDL}, nil
	case consequence:
		if len(ed.witness) == 0 {
			return Explanation{}, fmt.Errorf("theory: Justify(%v): %w", lit, ErrInconsistentTrail)
		}
		givenSeen := make(map[Literal]bool)
		dedSeen := make(map[Literal]bool)
		var givens, deds []Literal
		for _, w := range ed.witness {
			e.justifyRec(w, givenSeen, dedSeen, &givens, &deds)
		}
		return Explanation{Literal: lit, Conjunction: givens, Deductions: deds, Tag: tagDL}, nil
	default:
		return Explanation{}, fmt.Errorf("theory: Justify(%v): edge is dormant: %w", lit, ErrUnknownLiteral)
	}
}

// justifyRec walks lit's own justification: if lit is Assigned it is
// added to givens; if it is a Consequence it is added to deds and its
// witness is walked in turn. seen maps prevent revisiting a literal
// reached along two different branches of the same witness DAG.
func (e *Engine) justifyRec(lit Literal, givenSeen, dedSeen map[Literal]bool, givens, deds *[]Literal) {
	refs, ok := e.g.refsFor(lit)
	if !ok {
		return
	}
	ed := e.g.at(refs[0])
	switch ed.status {
	case assigned:
		if !givenSeen[lit] {
			givenSeen[lit] = true
			*givens = append(*givens, lit)
		}
	case consequence:
		if dedSeen[lit] {
			return
		}
		dedSeen[lit] = true
		*deds = append(*deds, lit)
		for _, w := range ed.witness {
			e.justifyRec(w, givenSeen, dedSeen, givens, deds)
		}
	}
}

// UnsatCore returns the conjunction of transitively-collected Assigned
// literals (including the triggering literal itself, which is always
// Assigned) that make up the negative cycle detected by the last Push. It
// fails unless the engine is currently UnSat. For the triggering literal
// and the intermediate deductions as well, use UnsatCoreWithInfo.
func (e *Engine) UnsatCore() ([]Literal, error) {
	info, err := e.UnsatCoreWithInfo()
	if err != nil {
		return nil, err
	}
	return info.Conjunction, nil
}

// UnsatCoreWithInfo justifies every literal on the negative cycle that
// drove the engine to UnSat and returns the full explanation: the
// triggering literal, the transitive conjunction of Assigned ancestors,
// and every intermediate Consequence literal unwound to reach them.
func (e *Engine) UnsatCoreWithInfo() (Explanation, error) {
	if e.status != UnSat {
		return Explanation{}, fmt.Errorf("theory: UnsatCoreWithInfo: %w", ErrWrongState)
	}
	givenSeen := make(map[Literal]bool)
	dedSeen := make(map[Literal]bool)
	var givens, deds []Literal
	for _, l := range e.unsatCore {
		e.justifyRec(l, givenSeen, dedSeen, &givens, &deds)
	}
	return Explanation{Literal: e.unsatTrigger, Conjunction: givens, Deductions: deds, Tag: tagDL}, nil
}

// UnsatCoreMinimal shrinks UnsatCore to a locally irreducible subset: it
// repeatedly tries dropping one literal at a time and keeps the drop if a
// fresh replay of the remaining literals is still unsat, following the
// same deletion strategy as a classic MUS extractor. The result is not
// guaranteed globally minimum, only that no single literal can be removed
// from it without losing unsatisfiability.
func (e *Engine) UnsatCoreMinimal() ([]Literal, error) {
	core, err := e.UnsatCore()
	if err != nil {
		return nil, err
	}
	for i := 0; i < len(core); i++ {
		trial := make([]Literal, 0, len(core)-1)
		trial = append(trial, core[:i]...)
		trial = append(trial, core[i+1:]...)
		if e.replayUnsat(trial) {
			core = trial
			i--
		}
	}
	return core, nil
}

// replayUnsat pushes lits, in order, onto a fresh engine built from the
// same atoms and reports whether it reaches UnSat before running out of
// literals.
func (e *Engine) replayUnsat(lits []Literal) bool {
	fresh, err := New(e.domain, e.atoms)
	if err != nil {
		return false
	}
	for _, l := range lits {
		ok, err := fresh.Push(l)
		if err != nil {
			return false
		}
		if !ok {
			return true
		}
	}
	return false
}

// Propagations checks every pair of names in sharedTerms and returns an
// Equality for every pair the current trail forces to the same value:
// terms a, b are forced equal once the active graph pins both dist(a,b)
// and dist(b,a) to zero, squeezing their difference to exactly zero. A
// pair pinned to some other constant difference (dist(a,b) == -dist(b,a)
// == 5, say) is not an equality and must not be reported as one. This is
// the Nelson-Oppen interface a congruence-closure theory uses to learn
// equalities shared terms must satisfy.
func (e *Engine) Propagations(sharedTerms []string) ([]Equality, error) {
	if e.status != Sat {
		return nil, fmt.Errorf("theory: Propagations: %w", ErrWrongState)
	}
	verts := make([]Vertex, 0, len(sharedTerms))
	names := make([]string, 0, len(sharedTerms))
	for _, t := range sharedTerms {
		if v, ok := e.names[t]; ok {
			verts = append(verts, v)
			names = append(names, t)
		}
	}
	dists := make([][]distEntry, len(verts))
	for i, v := range verts {
		dists[i] = e.forwardDijkstra(v)
	}
	var out []Equality
	for i := 0; i < len(verts); i++ {
		for j := i + 1; j < len(verts); j++ {
			ab := dists[i][verts[j]]
			ba := dists[j][verts[i]]
			if !ab.reached || !ba.reached {
				continue
			}
			if ab.val <= 1e-9 && ba.val <= 1e-9 {
				out = append(out, Equality{A: names[i], B: names[j]})
			}
		}
	}
	return out, nil
}
