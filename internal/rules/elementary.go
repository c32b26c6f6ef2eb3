package rules

import "cellcore/internal/core"

// Elementary implements a one-dimensional Wolfram code projected vertically:
// generation g lives in row g and produces row g+1 of the same buffer.
type Elementary[T comparable] struct{}

// Kind implements Rule.
func (Elementary[T]) Kind() Kind { return KindElementary }

// Dims implements Rule.
func (Elementary[T]) Dims() core.Kind { return core.OneDimensional }

// Apply fills row Generation+1 from row Generation. It does nothing once the
// last row has been reached.
func (Elementary[T]) Apply(env *Env[T]) {
	w, h := env.Topo.Width(), env.Topo.Height()
	y := env.Generation
	if y < 0 || y >= h-1 {
		return
	}
	fill := env.Default()
	for x := 0; x < w; x++ {
		idx := y*w + x
		pattern := 0
		for n := 0; n < 3; n++ {
			ni, ok := env.Topo.Neighbor(idx, x, y, n)
			if ok && env.Cur[ni] == fill {
				pattern |= 1 << (2 - n)
			}
		}
		out := env.Zero
		if env.Ruleset.Bit(pattern) {
			out = fill
		}
		env.Cur[idx+w] = out
	}
}
