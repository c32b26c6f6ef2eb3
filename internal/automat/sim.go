package automat

import (
	"fmt"

	"cellcore/internal/core"
)

// Seeder prepares the initial cells of an automaton after its random source
// has been reseeded, typically through Randomize or SetCells.
type Seeder[T comparable] func(a *Automaton[T]) error

// Sim binds a name and a seeding strategy to an automaton so that it can be
// driven through the core.Sim registry.
type Sim[T comparable] struct {
	name string
	a    *Automaton[T]
	seed Seeder[T]
}

// NewSim wraps a. A nil seeder leaves the cells untouched on Reset and only
// restarts the automaton.
func NewSim[T comparable](name string, a *Automaton[T], seed Seeder[T]) *Sim[T] {
	return &Sim[T]{name: name, a: a, seed: seed}
}

// Name returns the simulation identifier.
func (s *Sim[T]) Name() string { return s.name }

// Size returns the grid dimensions.
func (s *Sim[T]) Size() core.Size { return s.a.Size() }

// Cells exposes the current buffer.
func (s *Sim[T]) Cells() []T { return s.a.Cells() }

// Step advances the automaton by one generation.
func (s *Sim[T]) Step() { s.a.Step() }

// Generation returns the number of steps since the last reset.
func (s *Sim[T]) Generation() int { return s.a.Steps() }

// Parameters reports the wrapped automaton's parameters.
func (s *Sim[T]) Parameters() core.ParameterSnapshot { return s.a.Parameters() }

// SetIntParameter forwards to the wrapped automaton.
func (s *Sim[T]) SetIntParameter(key string, value int) bool { return s.a.SetIntParameter(key, value) }

// Terminal reports whether a 1-D automaton has run out of rows.
func (s *Sim[T]) Terminal() bool { return s.a.Terminal() }

// Automaton exposes the wrapped controller.
func (s *Sim[T]) Automaton() *Automaton[T] { return s.a }

// Reset reseeds the random source and reruns the seeder.
func (s *Sim[T]) Reset(seed int64) error {
	s.a.Reseed(seed)
	if s.seed == nil {
		s.a.Restart()
		return nil
	}
	if err := s.seed(s.a); err != nil {
		return fmt.Errorf("reset %s: %w", s.name, err)
	}
	return nil
}

var (
	_ core.Sim                = (*Sim[uint8])(nil)
	_ core.ParameterProvider  = (*Sim[uint8])(nil)
	_ core.IntParameterSetter = (*Sim[uint8])(nil)
)
