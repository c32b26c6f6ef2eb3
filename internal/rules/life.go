package rules

import "cellcore/internal/core"

// Life implements Conway's Game of Life. Any non-zero cell is alive and
// births use the default fill value.
type Life[T comparable] struct{}

// Kind implements Rule.
func (Life[T]) Kind() Kind { return KindLife }

// Dims implements Rule.
func (Life[T]) Dims() core.Kind { return core.TwoDimensional }

// Apply writes the next generation into env.Next.
func (Life[T]) Apply(env *Env[T]) {
	w, h := env.Topo.Width(), env.Topo.Height()
	alive := func(v T) bool { return v != env.Zero }
	fill := env.Default()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			idx := y*w + x
			neighbors := CountNeighbors(env, x, y, alive)
			env.Next[idx] = env.Zero
			if neighbors == 3 || (alive(env.Cur[idx]) && neighbors == 2) {
				env.Next[idx] = fill
			}
		}
	}
}
