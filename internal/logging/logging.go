// Package logging configures the apex/log handlers used by the command line
// tools.
package logging

import (
	"fmt"
	"io"
	"strings"

	"github.com/apex/log"
	"github.com/apex/log/handlers/discard"
	"github.com/apex/log/handlers/json"
	"github.com/apex/log/handlers/text"

	"cellcore/internal/core"
)

// Formats accepted by New.
const (
	FormatText    = "text"
	FormatJSON    = "json"
	FormatDiscard = "discard"
)

// New returns a logger writing to w at the given level. format is one of
// "text", "json" or "discard".
func New(level, format string, w io.Writer) (*log.Logger, error) {
	lvl, err := log.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", core.ErrMalformedInput, err)
	}
	var h log.Handler
	switch strings.ToLower(format) {
	case "", FormatText:
		h = text.New(w)
	case FormatJSON:
		h = json.New(w)
	case FormatDiscard:
		h = discard.New()
	default:
		return nil, fmt.Errorf("%w: unknown log format %q", core.ErrMalformedInput, format)
	}
	return &log.Logger{Handler: h, Level: lvl}, nil
}

// Setup builds a logger with New and installs it as the package default.
func Setup(level, format string, w io.Writer) (*log.Logger, error) {
	l, err := New(level, format, w)
	if err != nil {
		return nil, err
	}
	log.SetHandler(l.Handler)
	log.SetLevel(l.Level)
	return l, nil
}
