package briansbrain

import (
	"strconv"

	"cellcore/internal/automat"
	"cellcore/internal/core"
	"cellcore/internal/rules"
	"cellcore/internal/topology"
)

const (
	stateDead  = 0
	stateOn    = 1
	stateDying = 2
)

// Config controls the Brian's Brain preset.
type Config struct {
	Width  int
	Height int
	Edge   topology.Edge
}

// DefaultConfig returns a wrapped 256x256 board.
func DefaultConfig() Config {
	return Config{Width: 256, Height: 256, Edge: topology.Toroidal}
}

// FromMap populates the config from a string map.
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	if v, ok := cfg["w"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Width = parsed
		}
	}
	if v, ok := cfg["h"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Height = parsed
		}
	}
	if v, ok := cfg["edge"]; ok {
		if parsed, err := topology.ParseEdge(v); err == nil {
			c.Edge = parsed
		}
	}
	return c
}

// Rule fires dead cells with exactly two firing neighbors; firing cells start
// dying and dying cells die.
var Rule = rules.Func[uint8]{Name: "briansbrain", For: core.TwoDimensional, Fn: step}

func step(env *rules.Env[uint8]) {
	w, h := env.Topo.Width(), env.Topo.Height()
	on := func(v uint8) bool { return v == stateOn }
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			idx := y*w + x
			switch env.Cur[idx] {
			case stateOn:
				env.Next[idx] = stateDying
			case stateDying:
				env.Next[idx] = stateDead
			default:
				env.Next[idx] = stateDead
				if rules.CountNeighbors(env, x, y, on) == 2 {
					env.Next[idx] = stateOn
				}
			}
		}
	}
}

// New builds the preset.
func New(c Config, opts ...automat.Option) (*automat.Sim[uint8], error) {
	a, err := automat.New(automat.Config[uint8]{
		Kind:   core.TwoDimensional,
		Width:  c.Width,
		Height: c.Height,
		Zero:   stateDead,
		Fill:   []uint8{stateOn, stateDying},
		Edge:   c.Edge,
	}, opts...)
	if err != nil {
		return nil, err
	}
	if err := a.SetRule(Rule); err != nil {
		return nil, err
	}
	return automat.NewSim("briansbrain", a, func(a *automat.Automaton[uint8]) error {
		// Roughly one cell in eight starts firing.
		rng := a.RNG()
		cells := make([]uint8, c.Width*c.Height)
		for i := range cells {
			if rng.IntN(8) == 0 {
				cells[i] = stateOn
			}
		}
		return a.SetCells(cells)
	}), nil
}

func init() {
	core.Register("briansbrain", func(cfg map[string]string) (core.Sim, error) {
		s, err := New(FromMap(cfg))
		if err != nil {
			return nil, err
		}
		return s, nil
	})
}
