// Package topology precomputes the neighbor offsets of 1-D row automata and
// 2-D Moore-neighborhood automata and resolves them against a boundary policy.
//
// Offsets are flat: the neighbor of the cell at index i under mask entry k is
// i + mask[k]. That is only correct away from the grid edges, so Neighbor
// uses the flat offset for interior cells and explicit coordinates for cells
// on the border, where the Edge policy decides what lies beyond the grid.
package topology

import (
	"fmt"
	"strings"

	"cellcore/internal/core"
)

// Edge selects how neighbors beyond the grid border are resolved.
type Edge uint8

const (
	// Bounded treats cells beyond the border as absent.
	Bounded Edge = iota
	// Toroidal wraps both axes; 1-D rows wrap within the row.
	Toroidal
)

// String returns the name ParseEdge accepts.
func (e Edge) String() string {
	switch e {
	case Bounded:
		return "bounded"
	case Toroidal:
		return "toroidal"
	default:
		return fmt.Sprintf("edge(%d)", uint8(e))
	}
}

// ParseEdge accepts "bounded" and "toroidal". An empty string selects Bounded.
func ParseEdge(s string) (Edge, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "bounded", "clamped":
		return Bounded, nil
	case "toroidal", "wrap", "torus":
		return Toroidal, nil
	}
	return 0, fmt.Errorf("%w: unknown edge policy %q", core.ErrMalformedInput, s)
}

// Build returns the flat neighbor offsets for kind on a grid of the given
// width. 1-D automata get {-1, 0, +1}; 2-D automata get the 3x3 Moore block
// scanned row-major, so entry 4 is always the self offset.
func Build(kind core.Kind, width int) []int {
	switch kind {
	case core.OneDimensional:
		return []int{-1, 0, 1}
	case core.TwoDimensional:
		mask := make([]int, 0, 9)
		for y := -1; y <= 1; y++ {
			for x := -1; x <= 1; x++ {
				mask = append(mask, x+y*width)
			}
		}
		return mask
	default:
		return nil
	}
}

// SelfIndex returns the mask entry that refers to the cell itself.
func SelfIndex(kind core.Kind) int {
	if kind == core.TwoDimensional {
		return 4
	}
	return 1
}

// Topology is the immutable neighborhood description of one automaton.
type Topology struct {
	kind core.Kind
	w, h int
	edge Edge
	mask []int
	dx   []int
	dy   []int
}

// New builds the topology for a w by h grid.
func New(kind core.Kind, w, h int, edge Edge) (*Topology, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: unknown automaton kind %v", core.ErrPrecondition, kind)
	}
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("%w: grid dimensions must be positive, got %dx%d", core.ErrPrecondition, w, h)
	}
	t := &Topology{kind: kind, w: w, h: h, edge: edge, mask: Build(kind, w)}
	switch kind {
	case core.OneDimensional:
		t.dx = []int{-1, 0, 1}
		t.dy = []int{0, 0, 0}
	case core.TwoDimensional:
		for y := -1; y <= 1; y++ {
			for x := -1; x <= 1; x++ {
				t.dx = append(t.dx, x)
				t.dy = append(t.dy, y)
			}
		}
	}
	return t, nil
}

// Kind returns the automaton kind the topology was built for.
func (t *Topology) Kind() core.Kind { return t.kind }

// Width returns the grid width.
func (t *Topology) Width() int { return t.w }

// Height returns the grid height.
func (t *Topology) Height() int { return t.h }

// Edge returns the boundary policy.
func (t *Topology) Edge() Edge { return t.edge }

// Len returns the number of mask entries, 3 or 9.
func (t *Topology) Len() int { return len(t.mask) }

// Self returns the mask entry of the cell itself.
func (t *Topology) Self() int { return SelfIndex(t.kind) }

// Mask returns a copy of the flat offsets.
func (t *Topology) Mask() []int { return append([]int(nil), t.mask...) }

// Neighbor resolves mask entry k for the cell at (x, y), whose flat index is
// idx. It reports false when the neighbor lies beyond a Bounded border.
func (t *Topology) Neighbor(idx, x, y, k int) (int, bool) {
	if x > 0 && x < t.w-1 && (t.kind == core.OneDimensional || (y > 0 && y < t.h-1)) {
		return idx + t.mask[k], true
	}
	nx, ny := x+t.dx[k], y+t.dy[k]
	if nx >= 0 && nx < t.w && ny >= 0 && ny < t.h {
		return nx + ny*t.w, true
	}
	if t.edge != Toroidal {
		return 0, false
	}
	return core.Wrap(nx, t.w) + core.Wrap(ny, t.h)*t.w, true
}
