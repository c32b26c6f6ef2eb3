// Package sand registers a falling-sand preset built on the granular rule.
package sand

import (
	"fmt"
	"strconv"

	"cellcore/internal/automat"
	"cellcore/internal/core"
	"cellcore/internal/topology"
)

// Grain colours. Any of them is a grain; they only differ when rendered.
var grains = []uint8{1, 2, 3}

// Config controls the sand preset.
type Config struct {
	Width  int
	Height int
	Edge   topology.Edge
	// Density is the chance that a cell in the upper half starts with a grain.
	Density float64
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{Width: 128, Height: 128, Density: 0.35}
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
	if v, ok := cfg["density"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 && parsed <= 1 {
			c.Density = parsed
		}
	}
	return c
}

// New builds the preset with the sand rule selected.
func New(c Config, opts ...automat.Option) (*automat.Sim[uint8], error) {
	if c.Density < 0 || c.Density > 1 {
		return nil, fmt.Errorf("%w: density %v outside [0,1]", core.ErrPrecondition, c.Density)
	}
	a, err := automat.New(automat.Config[uint8]{
		Kind:   core.TwoDimensional,
		Width:  c.Width,
		Height: c.Height,
		Fill:   grains,
		Edge:   c.Edge,
	}, opts...)
	if err != nil {
		return nil, err
	}
	if err := a.UseSand(); err != nil {
		return nil, err
	}
	return automat.NewSim("sand", a, func(a *automat.Automaton[uint8]) error {
		rng := a.RNG()
		cells := make([]uint8, c.Width*c.Height)
		for i := range cells[:c.Width*(c.Height/2)] {
			if rng.Float64() < c.Density {
				cells[i] = grains[rng.IntN(len(grains))]
			}
		}
		return a.SetCells(cells)
	}), nil
}

func init() {
	core.Register("sand", func(cfg map[string]string) (core.Sim, error) {
		s, err := New(FromMap(cfg))
		if err != nil {
			return nil, err
		}
		return s, nil
	})
}
