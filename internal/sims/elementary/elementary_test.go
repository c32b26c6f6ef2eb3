package elementary

import (
	"testing"

	"github.com/stretchr/testify/require"

	"cellcore/internal/core"
	"cellcore/internal/topology"
)

func TestFromMap(t *testing.T) {
	c := FromMap(map[string]string{
		"w":      "31",
		"h":      "-4",
		"rule":   "300",
		"bits":   "01011010",
		"random": "true",
		"edge":   "toroidal",
	})
	require.Equal(t, Config{
		Width:  31,
		Height: 256,
		Rule:   110,
		Bits:   "01011010",
		Random: true,
		Edge:   topology.Toroidal,
	}, c)
	require.Equal(t, DefaultConfig(), FromMap(nil))
}

func TestRule90FromCentre(t *testing.T) {
	s, err := New(Config{Width: 15, Height: 8, Rule: 90})
	require.NoError(t, err)
	require.NoError(t, s.Reset(1))

	for i := 0; i < 10; i++ {
		s.Step()
	}

	last := s.Cells()[7*15:]
	for x, v := range last {
		require.Equalf(t, uint8((x+1)%2), v, "column %d", x)
	}
	require.Equal(t, 7, s.Generation())
}

func TestBitsOverrideRule(t *testing.T) {
	s, err := New(Config{Width: 8, Height: 4, Rule: 0, Bits: "1011010"})
	require.NoError(t, err)
	require.Equal(t, uint64(90), uint64(s.Automaton().Ruleset()))

	_, err = New(Config{Width: 8, Height: 4, Bits: "01012"})
	require.ErrorIs(t, err, core.ErrMalformedInput)
}

func TestRandomFirstRow(t *testing.T) {
	s, err := New(Config{Width: 64, Height: 3, Rule: 30, Random: true})
	require.NoError(t, err)
	require.NoError(t, s.Reset(9))

	cells := s.Cells()
	live := 0
	for _, v := range cells[:64] {
		live += int(v)
	}
	require.Positive(t, live)
	require.Equal(t, make([]uint8, 128), cells[64:])

	first := append([]uint8(nil), cells...)
	require.NoError(t, s.Reset(9))
	require.Equal(t, first, s.Cells())
}

func TestRegistered(t *testing.T) {
	f, ok := core.Sims()["elementary"]
	require.True(t, ok)
	s, err := f(map[string]string{"w": "5", "h": "5"})
	require.NoError(t, err)
	require.Equal(t, core.Size{W: 5, H: 5}, s.Size())
}
