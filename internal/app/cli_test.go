package app

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		wantExit bool
		wantCode int
		check    func(t *testing.T, cfg *Config)
	}{
		{
			name: "defaults",
			check: func(t *testing.T, cfg *Config) {
				require.Equal(t, NewConfig(), cfg)
			},
		},
		{
			name: "positional scenario",
			args: []string{"-every", "3", "gallery.hcl"},
			check: func(t *testing.T, cfg *Config) {
				require.Equal(t, "gallery.hcl", cfg.Scenario)
				require.Equal(t, 3, cfg.Every)
			},
		},
		{name: "help", args: []string{"-h"}, wantExit: true},
		{name: "unknown flag", args: []string{"-frobnicate"}, wantCode: 2},
		{name: "bad log level", args: []string{"-log-level", "chatty"}, wantCode: 2},
		{name: "bad log format", args: []string{"-log-format", "xml"}, wantCode: 2},
		{name: "unknown sim", args: []string{"-sim", "nope"}, wantCode: 2},
		{name: "extra args", args: []string{"a.hcl", "b.hcl"}, wantCode: 2},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var out bytes.Buffer
			cfg, exit, err := Parse(tc.args, &out)
			if tc.wantCode != 0 {
				var exitErr *ExitError
				require.ErrorAs(t, err, &exitErr)
				require.Equal(t, tc.wantCode, exitErr.Code)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.wantExit, exit)
			if tc.wantExit {
				require.Contains(t, out.String(), "Usage:")
				return
			}
			tc.check(t, cfg)
		})
	}
}
