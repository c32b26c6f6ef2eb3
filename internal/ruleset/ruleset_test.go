package ruleset

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"cellcore/internal/core"
)

func TestParse(t *testing.T) {
	cases := []struct {
		in   string
		want Ruleset
	}{
		{"0", 0},
		{"1", 1},
		{"1101", 13},
		{"01011010", 90},
		{"01101110", 110},
		{strings.Repeat("1", 64), Ruleset(^uint64(0))},
	}
	for _, tc := range cases {
		got, err := Parse(tc.in)
		require.NoErrorf(t, err, "Parse(%q)", tc.in)
		require.Equalf(t, tc.want, got, "Parse(%q)", tc.in)
	}
}

func TestParseRejectsMalformed(t *testing.T) {
	for _, in := range []string{"", "10a1", "2", " 101", strings.Repeat("0", 65)} {
		_, err := Parse(in)
		require.ErrorIsf(t, err, core.ErrMalformedInput, "Parse(%q)", in)
	}
}

func TestFromDecimalBits(t *testing.T) {
	r := FromDecimal(90)
	want := map[int]bool{1: true, 3: true, 4: true, 6: true}
	for i := 0; i < Patterns; i++ {
		require.Equalf(t, want[i], r.Bit(i), "bit %d of rule 90", i)
	}
	require.False(t, r.Bit(-1))
	require.False(t, r.Bit(64))
	require.Equal(t, "90", r.String())
}

func TestFlipAndSet(t *testing.T) {
	var r Ruleset
	r = r.Flip(3)
	require.Equal(t, Ruleset(8), r)
	r = r.Flip(3)
	require.Equal(t, Ruleset(0), r)
	r = r.Set(63, true)
	require.True(t, r.Bit(63))
	r = r.Set(63, false)
	require.Equal(t, Ruleset(0), r)
	require.Equal(t, Ruleset(0), r.Flip(64))
}

func TestRoundTripAllElementaryRules(t *testing.T) {
	for v := 0; v < 256; v++ {
		s := Ruleset(v).Format(Patterns)
		parsed, err := Parse(s)
		require.NoError(t, err)

		// Rebuild the mask bit by bit through Flip and read it back with Bit.
		var rebuilt Ruleset
		for i := 0; i < Patterns; i++ {
			if parsed.Bit(i) {
				rebuilt = rebuilt.Flip(i)
			}
		}
		var b strings.Builder
		for i := Patterns - 1; i >= 0; i-- {
			if rebuilt.Bit(i) {
				b.WriteByte('1')
			} else {
				b.WriteByte('0')
			}
		}
		require.Equal(t, s, b.String())
		require.Equal(t, Ruleset(v), rebuilt)
	}
}

func TestPatternLabel(t *testing.T) {
	require.Equal(t, "000", PatternLabel(0))
	require.Equal(t, "110", PatternLabel(6))
	require.Equal(t, "111", PatternLabel(7))
}
