package sweep

import (
	"bytes"
	"context"
	"testing"

	"github.com/apex/log"
	"github.com/apex/log/handlers/discard"
	"github.com/stretchr/testify/require"

	"cellcore/internal/core"
)

var quiet = &log.Logger{Handler: discard.Default, Level: log.ErrorLevel}

func TestRunKnownRules(t *testing.T) {
	results, err := Run(context.Background(), Options{
		From: 0, To: 255, Width: 15, Height: 8, Seed: 1, Workers: 4, Logger: quiet,
	})
	require.NoError(t, err)
	require.Len(t, results, 256)
	for i, r := range results {
		require.Equal(t, uint8(i), r.Rule)
	}

	// Rule 0 kills the seed on the first step and every later row is blank.
	require.Equal(t, Result{Rule: 0, Live: 1, FinalLive: 0, Extinct: true, RepeatsAt: 2}, results[0])

	// Rule 90 draws the Sierpinski triangle: 1+2+2+4+2+4+4+8 cells.
	require.Equal(t, Result{Rule: 90, Live: 27, FinalLive: 8, RepeatsAt: -1}, results[90])

	// Rule 204 is the identity, so row 1 already repeats row 0.
	require.Equal(t, 1, results[204].RepeatsAt)
	require.Equal(t, 8, results[204].Live)
}

func TestRunSubRange(t *testing.T) {
	results, err := Run(context.Background(), Options{From: 30, To: 32, Width: 9, Height: 4, Logger: quiet})
	require.NoError(t, err)
	require.Len(t, results, 3)
	require.Equal(t, uint8(30), results[0].Rule)
	require.Equal(t, uint8(32), results[2].Rule)
}

func TestRunIsDeterministic(t *testing.T) {
	opts := Options{From: 100, To: 120, Width: 32, Height: 16, Random: true, Seed: 7, Workers: 3, Logger: quiet}
	first, err := Run(context.Background(), opts)
	require.NoError(t, err)
	opts.Workers = 1
	second, err := Run(context.Background(), opts)
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Run(ctx, Options{From: 0, To: 255, Width: 8, Height: 8, Logger: quiet})
	require.ErrorIs(t, err, context.Canceled)
}

func TestValidate(t *testing.T) {
	for _, o := range []Options{
		{From: -1, To: 3, Width: 1, Height: 1},
		{From: 0, To: 256, Width: 1, Height: 1},
		{From: 5, To: 4, Width: 1, Height: 1},
		{From: 0, To: 1, Width: 0, Height: 1},
	} {
		_, err := Run(context.Background(), o)
		require.ErrorIs(t, err, core.ErrPrecondition)
	}
	require.NoError(t, DefaultOptions().Validate())
}

func TestTop(t *testing.T) {
	results := []Result{{Rule: 1, Live: 3}, {Rule: 2, Live: 9}, {Rule: 3, Live: 9}, {Rule: 4, Live: 1}}
	top := Top(results, 2)
	require.Equal(t, []Result{{Rule: 2, Live: 9}, {Rule: 3, Live: 9}}, top)
	require.Len(t, Top(results, -1), 4)
	require.Equal(t, uint8(1), results[0].Rule, "input order is kept")
}

func TestSummarize(t *testing.T) {
	results := []Result{
		{Rule: 0, Live: 1, Extinct: true, RepeatsAt: 2},
		{Rule: 1, Live: 5, FinalLive: 2, RepeatsAt: -1},
		{Rule: 2, Live: 3, Extinct: true, RepeatsAt: -1},
	}

	s := Summarize(results, 1)
	require.Equal(t, 3, s.Rules)
	require.Equal(t, 2, s.Extinct)
	require.Equal(t, []Result{results[1]}, s.Shown)

	var buf bytes.Buffer
	require.NoError(t, s.Write(&buf))
	require.Equal(t, "rule=1 live=5 final=2 extinct=false repeats=-1\n3 rules swept, 2 extinct by the last row\n", buf.String())

	require.Equal(t, results, Summarize(results, -1).Shown, "negative n keeps rule order")
	require.Empty(t, Summarize(results, 0).Shown)
}
