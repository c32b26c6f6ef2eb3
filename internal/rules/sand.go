package rules

import "cellcore/internal/core"

// Mask entries of the three cells below a 2-D cell.
const (
	belowLeft  = 6
	below      = 7
	belowRight = 8
)

// Sand implements a granular fall rule. Every non-zero cell is a grain that
// is either falling or settled. Falling grains move straight down when they
// can, otherwise diagonally down in a random order; a grain that cannot move
// settles in place. A settled grain resumes falling when the cell directly
// below it empties. All movement goes through MoveIfEmpty.
//
// The bottom row is always a floor; a Toroidal edge only wraps sideways.
type Sand[T comparable] struct {
	settled []bool
	next    []bool
}

// Kind implements Rule.
func (*Sand[T]) Kind() Kind { return KindSand }

// Dims implements Rule.
func (*Sand[T]) Dims() core.Kind { return core.TwoDimensional }

// Reset marks every grain as falling again.
func (s *Sand[T]) Reset(n int) {
	s.settled = make([]bool, n)
	s.next = make([]bool, n)
}

// ResetCell marks the grain at idx as falling.
func (s *Sand[T]) ResetCell(idx int) {
	if idx >= 0 && idx < len(s.settled) {
		s.settled[idx] = false
	}
}

// Settled reports whether the grain at idx has come to rest.
func (s *Sand[T]) Settled(idx int) bool {
	return idx >= 0 && idx < len(s.settled) && s.settled[idx]
}

// Apply writes the next generation into env.Next, which must be all zero.
func (s *Sand[T]) Apply(env *Env[T]) {
	w, h := env.Topo.Width(), env.Topo.Height()
	if len(s.settled) != len(env.Cur) {
		s.Reset(len(env.Cur))
	}
	for i := range s.next {
		s.next[i] = false
	}

	for y := h - 1; y >= 0; y-- {
		for x := 0; x < w; x++ {
			src := y*w + x
			if env.Cur[src] == env.Zero {
				continue
			}
			floor := y == h-1
			down, downOK := env.Topo.Neighbor(src, x, y, below)
			downOK = downOK && !floor
			if s.settled[src] && !(downOK && env.Cur[down] == env.Zero) {
				env.Next[src] = env.Cur[src]
				s.next[src] = true
				continue
			}

			if downOK && MoveIfEmpty(env, src, down) {
				continue
			}
			if floor {
				env.Next[src] = env.Cur[src]
				s.next[src] = true
				continue
			}
			first, second := belowLeft, belowRight
			if env.RNG.Bool() {
				first, second = second, first
			}
			if dst, ok := env.Topo.Neighbor(src, x, y, first); ok && MoveIfEmpty(env, src, dst) {
				continue
			}
			if dst, ok := env.Topo.Neighbor(src, x, y, second); ok && MoveIfEmpty(env, src, dst) {
				continue
			}
			env.Next[src] = env.Cur[src]
			s.next[src] = true
		}
	}
	s.settled, s.next = s.next, s.settled
}

// MoveIfEmpty copies the grain at src to dst in env.Next when dst is empty in
// both the current and the next generation. It never overwrites an occupied
// cell and leaves env.Next untouched on failure.
func MoveIfEmpty[T comparable](env *Env[T], src, dst int) bool {
	if dst < 0 || dst >= len(env.Cur) || src < 0 || src >= len(env.Cur) {
		return false
	}
	if env.Cur[dst] != env.Zero || env.Next[dst] != env.Zero {
		return false
	}
	env.Next[dst] = env.Cur[src]
	return true
}
