package elementary

import (
	"strconv"

	"cellcore/internal/automat"
	"cellcore/internal/core"
	"cellcore/internal/topology"
)

// Config holds parameters for the elementary cellular automaton.
type Config struct {
	Width  int
	Height int
	Rule   uint8
	// Bits, when set, overrides Rule with an MSB-first bit string.
	Bits   string
	Random bool
	Edge   topology.Edge
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{Width: 256, Height: 256, Rule: 110}
}

// FromMap populates a Config from a string map.
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
	if v, ok := cfg["rule"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 && parsed <= 255 {
			c.Rule = uint8(parsed)
		}
	}
	if v, ok := cfg["bits"]; ok {
		c.Bits = v
	}
	if v, ok := cfg["random"]; ok {
		if parsed, err := strconv.ParseBool(v); err == nil {
			c.Random = parsed
		}
	}
	if v, ok := cfg["edge"]; ok {
		if parsed, err := topology.ParseEdge(v); err == nil {
			c.Edge = parsed
		}
	}
	return c
}

// New builds the preset. A malformed Bits string is an error.
func New(c Config, opts ...automat.Option) (*automat.Sim[uint8], error) {
	a, err := automat.New(automat.Config[uint8]{
		Kind:   core.OneDimensional,
		Width:  c.Width,
		Height: c.Height,
		Fill:   []uint8{1},
		Edge:   c.Edge,
	}, opts...)
	if err != nil {
		return nil, err
	}
	if err := a.SetRulesetDecimal(uint64(c.Rule)); err != nil {
		return nil, err
	}
	if c.Bits != "" {
		if err := a.SetRulesetBits(c.Bits); err != nil {
			return nil, err
		}
	}
	return automat.NewSim("elementary", a, seeder(c)), nil
}

// seeder lights the centre of the first row, or randomizes it.
func seeder(c Config) automat.Seeder[uint8] {
	return func(a *automat.Automaton[uint8]) error {
		if c.Random {
			return a.Randomize()
		}
		cells := make([]uint8, c.Width*c.Height)
		cells[c.Width/2] = 1
		return a.SetCells(cells)
	}
}

func init() {
	core.Register("elementary", func(cfg map[string]string) (core.Sim, error) {
		s, err := New(FromMap(cfg))
		if err != nil {
			return nil, err
		}
		return s, nil
	})
}
