package rules

import (
	"testing"

	"github.com/stretchr/testify/require"

	"cellcore/internal/core"
	"cellcore/internal/ruleset"
	"cellcore/internal/topology"
)

func newEnv(t *testing.T, kind core.Kind, w, h int, edge topology.Edge) *Env[uint8] {
	t.Helper()
	topo, err := topology.New(kind, w, h, edge)
	require.NoError(t, err)
	return &Env[uint8]{
		Cur:  make([]uint8, w*h),
		Next: make([]uint8, w*h),
		Topo: topo,
		Zero: 0,
		Fill: []uint8{1},
		RNG:  core.NewRNG(1),
	}
}

// step applies a 2-D rule and swaps the buffers the way the controller does.
func step(env *Env[uint8], r Rule[uint8]) {
	r.Apply(env)
	env.Cur, env.Next = env.Next, env.Cur
	for i := range env.Next {
		env.Next[i] = env.Zero
	}
}

func TestBlinkerOscillation(t *testing.T) {
	env := newEnv(t, core.TwoDimensional, 5, 5, topology.Bounded)
	w := env.Topo.Width()
	set := func(x, y int) { env.Cur[y*w+x] = 1 }
	set(2, 1)
	set(2, 2)
	set(2, 3)

	step(env, Life[uint8]{})

	expects := map[[2]int]bool{
		{1, 2}: true,
		{2, 2}: true,
		{3, 2}: true,
	}
	for y := 0; y < 5; y++ {
		for x := 0; x < 5; x++ {
			alive := env.Cur[y*w+x] == 1
			_, shouldBeAlive := expects[[2]int{x, y}]
			if shouldBeAlive != alive {
				t.Fatalf("cell (%d,%d) alive=%v, expected %v", x, y, alive, shouldBeAlive)
			}
		}
	}

	step(env, Life[uint8]{})

	expects = map[[2]int]bool{
		{2, 1}: true,
		{2, 2}: true,
		{2, 3}: true,
	}
	for y := 0; y < 5; y++ {
		for x := 0; x < 5; x++ {
			alive := env.Cur[y*w+x] == 1
			_, shouldBeAlive := expects[[2]int{x, y}]
			if shouldBeAlive != alive {
				t.Fatalf("after second step cell (%d,%d) alive=%v, expected %v", x, y, alive, shouldBeAlive)
			}
		}
	}
}

func TestLifeRuleTable(t *testing.T) {
	// Centre cell of a 3x3 grid with n live neighbors placed in scan order.
	neighbors := []int{0, 1, 2, 3, 5, 6, 7, 8}
	for _, alive := range []bool{false, true} {
		for n := 0; n <= 8; n++ {
			env := newEnv(t, core.TwoDimensional, 3, 3, topology.Bounded)
			if alive {
				env.Cur[4] = 2 // any non-zero value is alive
			}
			for i := 0; i < n; i++ {
				env.Cur[neighbors[i]] = 1
			}
			Life[uint8]{}.Apply(env)

			want := uint8(0)
			if n == 3 || (alive && n == 2) {
				want = 1
			}
			require.Equalf(t, want, env.Next[4], "alive=%v neighbors=%d", alive, n)
		}
	}
}

func TestLifeZeroGridStaysZero(t *testing.T) {
	env := newEnv(t, core.TwoDimensional, 6, 4, topology.Toroidal)
	for i := 0; i < 10; i++ {
		step(env, Life[uint8]{})
		for idx, v := range env.Cur {
			require.Zerof(t, v, "step %d cell %d", i, idx)
		}
	}
}

func TestElementaryWritesNextRow(t *testing.T) {
	env := newEnv(t, core.OneDimensional, 5, 3, topology.Bounded)
	env.Ruleset = ruleset.FromDecimal(90)
	env.Cur[2] = 1

	Elementary[uint8]{}.Apply(env)

	require.Equal(t, []uint8{0, 0, 1, 0, 0}, env.Cur[0:5], "source row untouched")
	require.Equal(t, []uint8{0, 1, 0, 1, 0}, env.Cur[5:10])
	require.Equal(t, []uint8{0, 0, 0, 0, 0}, env.Cur[10:15])
}

func TestElementaryTerminalRowIsNoop(t *testing.T) {
	env := newEnv(t, core.OneDimensional, 3, 2, topology.Bounded)
	env.Ruleset = ruleset.FromDecimal(255)
	env.Generation = 1

	Elementary[uint8]{}.Apply(env)

	require.Equal(t, make([]uint8, 6), env.Cur)
}

func TestElementaryMatchesOnlyDefaultFill(t *testing.T) {
	env := newEnv(t, core.OneDimensional, 3, 2, topology.Bounded)
	env.Fill = []uint8{1, 2}
	env.Ruleset = ruleset.FromDecimal(1 << 2) // only pattern 010 is born
	env.Cur[1] = 2

	Elementary[uint8]{}.Apply(env)
	require.Equal(t, []uint8{0, 0, 0}, env.Cur[3:6], "a secondary fill value is not the default fill")

	env.Cur[1] = 1
	Elementary[uint8]{}.Apply(env)
	require.Equal(t, []uint8{0, 1, 0}, env.Cur[3:6])
}

func TestElementaryToroidalWrapsRow(t *testing.T) {
	env := newEnv(t, core.OneDimensional, 4, 2, topology.Toroidal)
	env.Ruleset = ruleset.FromDecimal(90)
	env.Cur[0] = 1

	Elementary[uint8]{}.Apply(env)

	require.Equal(t, []uint8{0, 1, 0, 1}, env.Cur[4:8])
}

func TestNewBuiltins(t *testing.T) {
	for _, k := range []Kind{KindElementary, KindLife, KindSand} {
		r, err := New[uint8](k)
		require.NoError(t, err)
		require.Equal(t, k, r.Kind())
	}
	_, err := New[uint8](KindCustom)
	require.ErrorIs(t, err, core.ErrPrecondition)

	k, err := ParseKind("Conway")
	require.NoError(t, err)
	require.Equal(t, KindLife, k)
	_, err = ParseKind("brain")
	require.ErrorIs(t, err, core.ErrMalformedInput)
}

func TestFuncRule(t *testing.T) {
	calls := 0
	f := Func[uint8]{Name: "count", For: core.TwoDimensional, Fn: func(*Env[uint8]) { calls++ }}
	var r Rule[uint8] = f
	r.Apply(nil)
	require.Equal(t, 1, calls)
	require.Equal(t, KindCustom, r.Kind())
	require.Equal(t, core.TwoDimensional, r.Dims())
	require.Equal(t, "count", f.String())
}
