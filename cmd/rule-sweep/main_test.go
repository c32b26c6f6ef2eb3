package main

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"cellcore/internal/app"
)

func TestRunPrintsSummary(t *testing.T) {
	var stdout, stderr bytes.Buffer
	err := run(context.Background(), &stdout, &stderr, []string{
		"-from", "0", "-to", "0", "-width", "15", "-height", "8", "-top", "-1", "-log-format", "discard",
	})
	require.NoError(t, err)
	require.Equal(t, "rule=0 live=1 final=0 extinct=true repeats=2\n1 rules swept, 1 extinct by the last row\n", stdout.String())

	stdout.Reset()
	err = run(context.Background(), &stdout, &stderr, []string{
		"-from", "90", "-to", "90", "-width", "15", "-height", "8", "-log-format", "discard",
	})
	require.NoError(t, err)
	require.Equal(t, "rule=90 live=27 final=8 extinct=false repeats=-1\n1 rules swept, 0 extinct by the last row\n", stdout.String())
}

func TestRunUsageErrors(t *testing.T) {
	for _, args := range [][]string{
		{"-from", "10", "-to", "300"},
		{"-edge", "mobius"},
		{"-log-level", "loud"},
		{"-bogus"},
	} {
		var stdout, stderr bytes.Buffer
		err := run(context.Background(), &stdout, &stderr, args)
		var exitErr *app.ExitError
		require.ErrorAsf(t, err, &exitErr, "args %v", args)
		require.Equal(t, 2, exitErr.Code)
		require.Empty(t, stdout.String())
	}
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var stdout, stderr bytes.Buffer
	err := run(ctx, &stdout, &stderr, []string{"-width", "8", "-height", "8", "-log-format", "discard"})
	require.ErrorIs(t, err, context.Canceled)
}
