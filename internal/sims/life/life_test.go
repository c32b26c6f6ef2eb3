package life

import (
	"testing"

	"github.com/stretchr/testify/require"

	"cellcore/internal/core"
	"cellcore/internal/topology"
)

func TestBlinkerOscillation(t *testing.T) {
	s, err := New(Config{Width: 5, Height: 5, Pattern: PatternBlinker})
	require.NoError(t, err)
	require.NoError(t, s.Reset(1))

	w := s.Size().W
	check := func(step string, expects map[[2]int]bool) {
		cells := s.Cells()
		for y := 0; y < 5; y++ {
			for x := 0; x < 5; x++ {
				alive := cells[y*w+x] == 1
				if expects[[2]int{x, y}] != alive {
					t.Fatalf("%s: cell (%d,%d) alive=%v, expected %v", step, x, y, alive, expects[[2]int{x, y}])
				}
			}
		}
	}

	check("initial", map[[2]int]bool{{2, 1}: true, {2, 2}: true, {2, 3}: true})
	s.Step()
	check("first step", map[[2]int]bool{{1, 2}: true, {2, 2}: true, {3, 2}: true})
	s.Step()
	check("second step", map[[2]int]bool{{2, 1}: true, {2, 2}: true, {2, 3}: true})
}

func TestGliderKeepsFiveCells(t *testing.T) {
	s, err := New(Config{Width: 8, Height: 8, Edge: topology.Toroidal, Pattern: PatternGlider})
	require.NoError(t, err)
	require.NoError(t, s.Reset(1))

	for i := 0; i < 40; i++ {
		s.Step()
		live := 0
		for _, v := range s.Cells() {
			live += int(v)
		}
		require.Equalf(t, 5, live, "step %d", i)
	}
}

func TestFromMap(t *testing.T) {
	c := FromMap(map[string]string{"w": "12", "edge": "bounded", "pattern": "Glider"})
	require.Equal(t, Config{Width: 12, Height: 256, Edge: topology.Bounded, Pattern: PatternGlider}, c)
	require.Equal(t, topology.Toroidal, FromMap(map[string]string{"edge": "nope"}).Edge)
}

func TestUnknownPattern(t *testing.T) {
	_, err := New(Config{Width: 4, Height: 4, Pattern: "spaceship"})
	require.ErrorIs(t, err, core.ErrMalformedInput)
}

func TestRandomIsSeedStable(t *testing.T) {
	s, err := core.Sims()["life"](map[string]string{"w": "16", "h": "16"})
	require.NoError(t, err)
	require.NoError(t, s.Reset(42))
	first := append([]uint8(nil), s.Cells()...)
	s.Step()
	require.NoError(t, s.Reset(42))
	require.Equal(t, first, s.Cells())
	require.Equal(t, "life", s.Name())
}
