package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/apex/log"
	"github.com/stretchr/testify/require"

	"cellcore/internal/core"
)

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer
	l, err := New("debug", "json", &buf)
	require.NoError(t, err)

	l.WithField("rule", 90).Debug("stepped")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	require.Equal(t, "stepped", entry["message"])
	require.Equal(t, "debug", entry["level"])
	require.Equal(t, float64(90), entry["fields"].(map[string]any)["rule"])
}

func TestLevelFilters(t *testing.T) {
	var buf bytes.Buffer
	l, err := New("warn", "text", &buf)
	require.NoError(t, err)
	l.Info("hidden")
	require.Zero(t, buf.Len())
	l.Warn("shown")
	require.Contains(t, buf.String(), "shown")
}

func TestNewRejectsUnknown(t *testing.T) {
	_, err := New("loud", "text", &bytes.Buffer{})
	require.ErrorIs(t, err, core.ErrMalformedInput)
	_, err = New("info", "xml", &bytes.Buffer{})
	require.ErrorIs(t, err, core.ErrMalformedInput)
}

func TestSetupInstallsDefault(t *testing.T) {
	def := log.Log.(*log.Logger)
	saved := *def
	t.Cleanup(func() { *def = saved })

	var buf bytes.Buffer
	_, err := Setup("info", "text", &buf)
	require.NoError(t, err)
	log.Info("hello")
	require.Contains(t, buf.String(), "hello")
}
