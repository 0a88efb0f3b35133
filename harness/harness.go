// Package harness wraps a theory.Engine with the structured logging a
// standalone process needs but a library has no business doing on its
// own: every Push, Pop and unsat detection is logged with the engine's
// correlation id attached, so a multi-engine process (one per SMT case,
// say) can be followed in a shared log stream.
package harness

import (
	"os"

	"github.com/rs/zerolog"

	"github.com/crillab/godl/theory"
)

// Harness pairs an Engine with a logger scoped to it.
type Harness struct {
	Engine *theory.Engine
	log    zerolog.Logger
}

// New builds a Harness around a fresh Engine for the given atoms, logging
// to w (os.Stderr if nil).
func New(domain theory.Domain, atoms []theory.Atom, w *os.File) (*Harness, error) {
	if w == nil {
		w = os.Stderr
	}
	e, err := theory.New(domain, atoms)
	if err != nil {
		return nil, err
	}
	log := zerolog.New(w).With().
		Timestamp().
		Str("engine", e.ID.String()).
		Logger()
	log.Info().Int("atoms", len(atoms)).Str("domain", domain.String()).Msg("engine created")
	return &Harness{Engine: e, log: log}, nil
}

// Push asserts lit and logs the outcome.
func (h *Harness) Push(lit theory.Literal) (bool, error) {
	ok, err := h.Engine.Push(lit)
	ev := h.log.Info()
	if err != nil {
		ev = h.log.Error()
	} else if !ok {
		ev = h.log.Warn()
	}
	ev.Stringer("lit", lit).Bool("sat", ok).AnErr("err", err).Msg("push")
	if err == nil && !ok {
		if core, cerr := h.Engine.UnsatCore(); cerr == nil {
			h.log.Warn().Interface("core", core).Msg("unsat core")
		}
	}
	return ok, err
}

// Pop undoes the last Push and logs it.
func (h *Harness) Pop() error {
	err := h.Engine.Pop()
	ev := h.log.Info()
	if err != nil {
		ev = h.log.Error()
	}
	ev.AnErr("err", err).Msg("pop")
	return err
}

// Stats logs and returns the engine's resolution counters.
func (h *Harness) Stats() theory.Stats {
	s := h.Engine.Stats()
	h.log.Info().
		Int("push", s.NbPush).
		Int("pop", s.NbPop).
		Int("propagated", s.NbPropagated).
		Int("unsat_detected", s.NbUnsatDetected).
		Msg("stats")
	return s
}
