// Package ruleset encodes transition tables of elementary automata as a
// 64-bit mask with one bit per neighborhood pattern.
package ruleset

import (
	"fmt"
	"strconv"
	"strings"

	"cellcore/internal/core"
)

const (
	// Width is the number of addressable bits in a Ruleset.
	Width = 64
	// Patterns is the number of meaningful bits for a 3-cell neighborhood.
	Patterns = 8
)

// Ruleset is a bit-per-pattern transition table. Bit i holds the outcome for
// neighborhood pattern i.
type Ruleset uint64

// FromDecimal stores v verbatim, e.g. 90 for rule 90.
func FromDecimal(v uint64) Ruleset { return Ruleset(v) }

// Parse decodes a most-significant-bit-first string of '0' and '1'
// characters. The string must hold between 1 and 64 characters.
func Parse(s string) (Ruleset, error) {
	if len(s) == 0 {
		return 0, fmt.Errorf("%w: empty ruleset bit string", core.ErrMalformedInput)
	}
	if len(s) > Width {
		return 0, fmt.Errorf("%w: ruleset bit string has %d characters, at most %d allowed", core.ErrMalformedInput, len(s), Width)
	}
	var r Ruleset
	for pos := 0; pos < len(s); pos++ {
		bit := len(s) - 1 - pos
		switch s[pos] {
		case '1':
			r |= 1 << uint(bit)
		case '0':
		default:
			return 0, fmt.Errorf("%w: non-binary character %q at position %d in ruleset %q", core.ErrMalformedInput, s[pos], pos, s)
		}
	}
	return r, nil
}

// Bit reports whether bit i is set. Indices outside [0, 64) read as false.
func (r Ruleset) Bit(i int) bool {
	if i < 0 || i >= Width {
		return false
	}
	return r>>uint(i)&1 == 1
}

// Set returns r with bit i forced to on.
func (r Ruleset) Set(i int, on bool) Ruleset {
	if i < 0 || i >= Width {
		return r
	}
	if on {
		return r | 1<<uint(i)
	}
	return r &^ (1 << uint(i))
}

// Flip returns r with bit i toggled.
func (r Ruleset) Flip(i int) Ruleset {
	if i < 0 || i >= Width {
		return r
	}
	return r ^ 1<<uint(i)
}

// Format renders the low n bits most-significant first, the inverse of Parse.
func (r Ruleset) Format(n int) string {
	if n <= 0 {
		return ""
	}
	if n > Width {
		n = Width
	}
	var b strings.Builder
	b.Grow(n)
	for i := n - 1; i >= 0; i-- {
		if r.Bit(i) {
			b.WriteByte('1')
		} else {
			b.WriteByte('0')
		}
	}
	return b.String()
}

// String returns the decimal form.
func (r Ruleset) String() string { return strconv.FormatUint(uint64(r), 10) }

// PatternLabel renders elementary pattern p as left, self and right cells,
// e.g. "110" for pattern 6.
func PatternLabel(p int) string {
	return Ruleset(p).Format(3)
}
