/*
Package theory implements an incremental satisfiability procedure for
Difference Logic (DL): conjunctions of atoms of the form

	x - y <= c
	x - y <  c
	x - y =  c

over the integer or real domain. It is meant to be driven by an external
SAT/SMT search procedure the way any DPLL(T) theory plugin is: the host
asserts and retracts literals one at a time, and the theory reports
satisfiability, entailed literals and, on contradiction, a small
unsatisfiable core.

Describing a problem

An Engine is built from a domain and the full set of atoms that may ever be
pushed during its lifetime:

	e, err := theory.New(theory.Real, []theory.Atom{
	    {Kind: theory.LessEq, X: "x", Y: "y", C: 3},
	    {Kind: theory.LessEq, X: "y", Y: "z", C: 2},
	    {Kind: theory.LessEq, X: "z", Y: "x", C: -6},
	})

Each atom in the slice determines two literals: Lit(i, false) for the atom
itself, and Lit(i, true) for its negation (Equal atoms only produce the
positive literal, see Atom's doc comment).

Solving a problem

	ok, err := e.Push(theory.Lit(0, false))
	ok, err = e.Push(theory.Lit(1, false))
	ok, err = e.Push(theory.Lit(2, false)) // ok == false: negative cycle

	core, _ := e.UnsatCore()

Pop undoes the most recent Push, restoring the potential function and edge
statuses exactly as they were before it.

	e.Pop()
*/
package theory
