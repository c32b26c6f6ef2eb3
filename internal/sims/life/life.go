package life

import (
	"fmt"
	"strconv"
	"strings"

	"cellcore/internal/automat"
	"cellcore/internal/core"
	"cellcore/internal/topology"
)

// Seed patterns accepted by Config.Pattern.
const (
	PatternRandom  = "random"
	PatternGlider  = "glider"
	PatternBlinker = "blinker"
)

// Config controls the Game of Life preset.
type Config struct {
	Width   int
	Height  int
	Edge    topology.Edge
	Pattern string
}

// DefaultConfig returns a wrapped 256x256 board seeded at random.
func DefaultConfig() Config {
	return Config{Width: 256, Height: 256, Edge: topology.Toroidal, Pattern: PatternRandom}
}

// FromMap populates the config from a string map (flag-style key/value pairs).
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
	if v, ok := cfg["pattern"]; ok && v != "" {
		c.Pattern = strings.ToLower(v)
	}
	return c
}

var shapes = map[string][][2]int{
	PatternGlider:  {{1, 0}, {2, 1}, {0, 2}, {1, 2}, {2, 2}},
	PatternBlinker: {{0, -1}, {0, 0}, {0, 1}},
}

// New builds the preset. Unknown patterns are rejected.
func New(c Config, opts ...automat.Option) (*automat.Sim[uint8], error) {
	if _, ok := shapes[c.Pattern]; !ok && c.Pattern != PatternRandom {
		return nil, fmt.Errorf("%w: unknown life pattern %q", core.ErrMalformedInput, c.Pattern)
	}
	a, err := automat.New(automat.Config[uint8]{
		Kind:   core.TwoDimensional,
		Width:  c.Width,
		Height: c.Height,
		Fill:   []uint8{1},
		Edge:   c.Edge,
	}, opts...)
	if err != nil {
		return nil, err
	}
	return automat.NewSim("life", a, seeder(c)), nil
}

func seeder(c Config) automat.Seeder[uint8] {
	if c.Pattern == PatternRandom {
		return func(a *automat.Automaton[uint8]) error { return a.Randomize() }
	}
	return func(a *automat.Automaton[uint8]) error {
		cells := make([]uint8, c.Width*c.Height)
		// Gliders start in the top-left corner, everything else is centred.
		ox, oy := 1, 1
		if c.Pattern != PatternGlider {
			ox, oy = c.Width/2, c.Height/2
		}
		for _, p := range shapes[c.Pattern] {
			x, y := ox+p[0], oy+p[1]
			if x >= 0 && x < c.Width && y >= 0 && y < c.Height {
				cells[y*c.Width+x] = 1
			}
		}
		return a.SetCells(cells)
	}
}

func init() {
	core.Register("life", func(cfg map[string]string) (core.Sim, error) {
		s, err := New(FromMap(cfg))
		if err != nil {
			return nil, err
		}
		return s, nil
	})
}
