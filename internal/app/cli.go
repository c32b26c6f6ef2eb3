package app

import (
	"errors"
	"flag"
	"fmt"
	"io"

	"cellcore/internal/logging"
)

// ExitError is a usage error carrying the process exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Parse processes command-line arguments. It returns the populated Config,
// true when the program should exit cleanly (for -h), or an ExitError.
func Parse(args []string, output io.Writer) (*Config, bool, error) {
	cfg := NewConfig()
	fs := flag.NewFlagSet("ca", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.Usage = func() {
		fmt.Fprint(output, `
ca - run a cellular automaton and print its generations.

Usage:
  ca [options] [SCENARIO]

Arguments:
  SCENARIO
    Optional HCL or YAML scenario file, same as -scenario.

Options:
`)
		fs.PrintDefaults()
	}
	cfg.Bind(fs)

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	if cfg.Scenario == "" && fs.NArg() > 0 {
		cfg.Scenario = fs.Arg(0)
	}
	if fs.NArg() > 1 {
		return nil, false, &ExitError{Code: 2, Message: fmt.Sprintf("unexpected arguments: %v", fs.Args()[1:])}
	}
	if _, err := logging.New(cfg.LogLevel, cfg.LogFormat, io.Discard); err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	if err := cfg.Validate(); err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	return cfg, false, nil
}
