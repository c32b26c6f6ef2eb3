// Package render turns a cell buffer into text frames or images for the
// command line tools.
package render

import (
	"bufio"
	"fmt"
	"io"

	"cellcore/internal/core"
)

// DefaultRunes renders value 0 as '.', 1 as '#' and higher values with
// progressively lighter marks.
var DefaultRunes = []rune{'.', '#', 'o', '+', '*'}

// Text writes one line per row: '#' for occupied cells and '.' for zero.
func Text(w io.Writer, cells []uint8, width int) error {
	return Palette(w, cells, width, []rune{'.', '#'})
}

// Palette writes one line per row, indexing palette by cell value. Values
// beyond the palette use its last entry.
func Palette(w io.Writer, cells []uint8, width int, palette []rune) error {
	if width <= 0 || len(cells)%width != 0 {
		return fmt.Errorf("%w: %d cells do not form rows of width %d", core.ErrPrecondition, len(cells), width)
	}
	if len(palette) == 0 {
		return fmt.Errorf("%w: empty palette", core.ErrPrecondition)
	}
	bw := bufio.NewWriter(w)
	last := len(palette) - 1
	for i, c := range cells {
		if _, err := bw.WriteRune(palette[min(int(c), last)]); err != nil {
			return err
		}
		if (i+1)%width == 0 {
			if err := bw.WriteByte('\n'); err != nil {
				return err
			}
		}
	}
	return bw.Flush()
}
