package core

import "fmt"

// Buffers owns the three equally sized grids of an automaton: the current
// state, a scratch grid that rules write the next state into, and a snapshot
// of the state captured by the last allocate, randomize or SetCells call.
type Buffers[T comparable] struct {
	zero    T
	cur     *Grid[T]
	scratch *Grid[T]
	initial *Grid[T]
}

// NewBuffers allocates current, scratch and initial grids filled with zero.
func NewBuffers[T comparable](w, h int, zero T) (*Buffers[T], error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("%w: grid dimensions must be positive, got %dx%d", ErrPrecondition, w, h)
	}
	return &Buffers[T]{
		zero:    zero,
		cur:     NewGrid(w, h, zero),
		scratch: NewGrid(w, h, zero),
		initial: NewGrid(w, h, zero),
	}, nil
}

// Size returns the grid dimensions.
func (b *Buffers[T]) Size() Size { return Size{W: b.cur.W, H: b.cur.H} }

// Len returns the number of cells in each grid.
func (b *Buffers[T]) Len() int { return b.cur.Len() }

// Zero returns the empty cell value.
func (b *Buffers[T]) Zero() T { return b.zero }

// Current exposes the current state. The slice stays valid until the next Swap.
func (b *Buffers[T]) Current() []T { return b.cur.Cells() }

// Scratch exposes the write target for the next state.
func (b *Buffers[T]) Scratch() []T { return b.scratch.Cells() }

// Initial exposes the restart snapshot.
func (b *Buffers[T]) Initial() []T { return b.initial.Cells() }

// Grid returns the current grid.
func (b *Buffers[T]) Grid() *Grid[T] { return b.cur }

// Clear resets the current grid to zero. The restart snapshot is kept.
func (b *Buffers[T]) Clear() { b.cur.Fill(b.zero) }

// ClearScratch resets the scratch grid to zero.
func (b *Buffers[T]) ClearScratch() { b.scratch.Fill(b.zero) }

// Randomize sets each of the first limit cells to a uniformly chosen fill
// value with probability one half and to zero otherwise. Cells at or past
// limit become zero. The result is captured as the restart snapshot.
func (b *Buffers[T]) Randomize(rng *RNG, fill []T, limit int) error {
	if len(fill) == 0 {
		return fmt.Errorf("%w: randomize needs at least one fill value", ErrPrecondition)
	}
	cells := b.cur.Cells()
	for i := range cells {
		if i < limit && rng.Bool() {
			cells[i] = fill[rng.IntN(len(fill))]
			continue
		}
		cells[i] = b.zero
	}
	b.initial.CopyFrom(b.cur)
	return nil
}

// SetCells overwrites the current grid and the restart snapshot with values.
func (b *Buffers[T]) SetCells(values []T) error {
	if len(values) != b.cur.Len() {
		return fmt.Errorf("%w: expected %d cells, got %d", ErrPrecondition, b.cur.Len(), len(values))
	}
	copy(b.cur.Cells(), values)
	copy(b.initial.Cells(), values)
	return nil
}

// Swap exchanges the current and scratch grids without copying.
func (b *Buffers[T]) Swap() {
	b.cur, b.scratch = b.scratch, b.cur
}

// RestoreInitial copies the restart snapshot back into the current grid.
func (b *Buffers[T]) RestoreInitial() {
	b.cur.CopyFrom(b.initial)
}

// Clone returns a deep copy of all three grids.
func (b *Buffers[T]) Clone() *Buffers[T] {
	c := &Buffers[T]{
		zero:    b.zero,
		cur:     NewGrid(b.cur.W, b.cur.H, b.zero),
		scratch: NewGrid(b.cur.W, b.cur.H, b.zero),
		initial: NewGrid(b.cur.W, b.cur.H, b.zero),
	}
	c.cur.CopyFrom(b.cur)
	c.scratch.CopyFrom(b.scratch)
	c.initial.CopyFrom(b.initial)
	return c
}
