package core

import (
	"fmt"
	"sort"
	"strings"
)

// Kind selects the dimensionality of an automaton. It is fixed at
// configuration time and decides neighbor count and step semantics.
type Kind uint8

const (
	// OneDimensional automata derive each row from the row above it.
	OneDimensional Kind = iota
	// TwoDimensional automata update the whole grid every generation.
	TwoDimensional
)

// Neighbors returns the neighborhood size including the cell itself.
func (k Kind) Neighbors() int {
	switch k {
	case OneDimensional:
		return 3
	case TwoDimensional:
		return 9
	default:
		return 0
	}
}

// Valid reports whether k is a known kind.
func (k Kind) Valid() bool { return k == OneDimensional || k == TwoDimensional }

// String returns the short name ParseKind accepts.
func (k Kind) String() string {
	switch k {
	case OneDimensional:
		return "1d"
	case TwoDimensional:
		return "2d"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// ParseKind accepts "1d", "2d", "one_dimensional" and "two_dimensional".
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1d", "one_dimensional", "elementary":
		return OneDimensional, nil
	case "2d", "two_dimensional":
		return TwoDimensional, nil
	}
	return 0, fmt.Errorf("%w: unknown automaton kind %q", ErrMalformedInput, s)
}

// Size describes the dimensions of a simulation grid.
type Size struct {
	W int
	H int
}

// Sim defines the minimal contract a runnable automaton preset must implement.
type Sim interface {
	Name() string
	Size() Size
	Reset(seed int64) error
	Step()
	Cells() []uint8
	Generation() int
}

// Factory constructs a Sim using an optional configuration map.
type Factory func(cfg map[string]string) (Sim, error)

var sims = map[string]Factory{}

// Register adds a simulation factory under the provided name.
func Register(name string, f Factory) {
	if name == "" || f == nil {
		return
	}
	sims[name] = f
}

// Sims exposes the registry of available simulation factories.
func Sims() map[string]Factory {
	return sims
}

// Names lists the registered simulations in sorted order.
func Names() []string {
	names := make([]string, 0, len(sims))
	for name := range sims {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
