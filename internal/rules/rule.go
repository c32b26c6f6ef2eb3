// Package rules implements the transition rules an automaton can run.
//
// Every rule reads the current grid through an Env and writes the next state.
// 2-D rules write into Env.Next and rely on the controller to swap buffers;
// the elementary rule writes the next row of Env.Cur in place.
package rules

import (
	"fmt"
	"strings"

	"cellcore/internal/core"
	"cellcore/internal/ruleset"
	"cellcore/internal/topology"
)

// Kind tags the rule variants.
type Kind uint8

const (
	// KindElementary is the 1-D binary ruleset rule.
	KindElementary Kind = iota
	// KindLife is Conway's B3/S23.
	KindLife
	// KindSand is the granular fall rule.
	KindSand
	// KindCustom marks rules supplied through Func.
	KindCustom
)

// String returns the name ParseKind accepts.
func (k Kind) String() string {
	switch k {
	case KindElementary:
		return "elementary"
	case KindLife:
		return "life"
	case KindSand:
		return "sand"
	case KindCustom:
		return "custom"
	default:
		return fmt.Sprintf("rule(%d)", uint8(k))
	}
}

// ParseKind maps a rule name to its Kind. Custom rules cannot be named.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "elementary", "wolfram":
		return KindElementary, nil
	case "life", "gol", "conway":
		return KindLife, nil
	case "sand", "granular":
		return KindSand, nil
	}
	return 0, fmt.Errorf("%w: unknown rule %q", core.ErrMalformedInput, s)
}

// Env is everything a rule may read or write during one generation.
type Env[T comparable] struct {
	Cur        []T
	Next       []T
	Topo       *topology.Topology
	Zero       T
	Fill       []T
	Generation int
	Ruleset    ruleset.Ruleset
	RNG        *core.RNG
}

// Default returns the selected fill value used for births and drawing.
func (e *Env[T]) Default() T { return e.Fill[0] }

// Rule computes one generation.
type Rule[T comparable] interface {
	Kind() Kind
	// Dims reports the automaton kind the rule can drive.
	Dims() core.Kind
	Apply(env *Env[T])
}

// Resetter is implemented by rules that keep per-cell state of their own.
// The controller calls Reset with the grid length whenever the cells are
// replaced wholesale.
type Resetter interface {
	Reset(n int)
}

// CellResetter is implemented by rules whose per-cell state must be dropped
// when a single cell is written from outside the rule.
type CellResetter interface {
	ResetCell(idx int)
}

// New returns the built-in rule of kind k.
func New[T comparable](k Kind) (Rule[T], error) {
	switch k {
	case KindElementary:
		return Elementary[T]{}, nil
	case KindLife:
		return Life[T]{}, nil
	case KindSand:
		return &Sand[T]{}, nil
	}
	return nil, fmt.Errorf("%w: no built-in rule for %v", core.ErrPrecondition, k)
}

// Func adapts a plain function into a custom rule.
type Func[T comparable] struct {
	Name string
	For  core.Kind
	Fn   func(env *Env[T])
}

// Kind implements Rule.
func (f Func[T]) Kind() Kind { return KindCustom }

// Dims implements Rule.
func (f Func[T]) Dims() core.Kind { return f.For }

// Apply implements Rule.
func (f Func[T]) Apply(env *Env[T]) {
	if f.Fn != nil {
		f.Fn(env)
	}
}

// String returns the rule name.
func (f Func[T]) String() string {
	if f.Name == "" {
		return KindCustom.String()
	}
	return f.Name
}

// CountNeighbors returns how many Moore neighbors of the cell at (x, y) match.
func CountNeighbors[T comparable](env *Env[T], x, y int, match func(T) bool) int {
	idx := x + y*env.Topo.Width()
	self := env.Topo.Self()
	n := 0
	for k := 0; k < env.Topo.Len(); k++ {
		if k == self {
			continue
		}
		ni, ok := env.Topo.Neighbor(idx, x, y, k)
		if ok && match(env.Cur[ni]) {
			n++
		}
	}
	return n
}
