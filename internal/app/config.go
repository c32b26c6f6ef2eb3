package app

import (
	"flag"
	"fmt"
	"strings"

	"cellcore/internal/core"
)

// KVList collects repeatable key=value flags.
type KVList []string

func (l *KVList) String() string {
	return strings.Join(*l, ",")
}

// Set appends one key=value pair.
func (l *KVList) Set(value string) error {
	if !strings.Contains(value, "=") {
		return fmt.Errorf("%w: expected key=value, got %q", core.ErrMalformedInput, value)
	}
	*l = append(*l, value)
	return nil
}

// Map returns the pairs as a map. Later keys win.
func (l KVList) Map() map[string]string {
	m := make(map[string]string, len(l))
	for _, kv := range l {
		key, value, _ := strings.Cut(kv, "=")
		m[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}
	return m
}

// Config represents the command-line parameters for the application.
type Config struct {
	Sim      string
	Scenario string
	// Name picks an automaton from a scenario file holding several.
	Name string
	// Steps is the number of generations to run. Zero uses the scenario's
	// step count or DefaultSteps; a negative value runs until cancelled.
	Steps int
	TPS   int
	Seed  int64
	// Every prints a frame every N generations; zero prints only the last.
	Every   int
	Palette string
	PNG     string
	// Mono writes the PNG in two colours instead of the value palette.
	Mono      bool
	LogLevel  string
	LogFormat string
	Params    KVList
}

// DefaultSteps is used when neither the flags nor a scenario set a step count.
const DefaultSteps = 64

// NewConfig returns a Config populated with sensible defaults.
func NewConfig() *Config {
	return &Config{Sim: "life", Seed: 42, LogLevel: "info", LogFormat: "text"}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.StringVar(&c.Sim, "sim", c.Sim, "registered simulation to run ("+strings.Join(core.Names(), ", ")+")")
	fs.StringVar(&c.Scenario, "scenario", c.Scenario, "HCL or YAML scenario file; overrides -sim")
	fs.StringVar(&c.Name, "name", c.Name, "automaton to run from the scenario file (default first)")
	fs.IntVar(&c.Steps, "steps", c.Steps, "generations to run (0 = scenario or default, <0 = until interrupted)")
	fs.IntVar(&c.TPS, "tps", c.TPS, "generations per second (0 = as fast as possible)")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "seed for simulation reset")
	fs.IntVar(&c.Every, "every", c.Every, "print a frame every N generations (0 = final frame only)")
	fs.StringVar(&c.Palette, "palette", c.Palette, "runes used to print cell values, indexed by value")
	fs.StringVar(&c.PNG, "png", c.PNG, "write the final frame to this PNG file")
	fs.BoolVar(&c.Mono, "png-mono", c.Mono, "write the PNG in black and white")
	fs.StringVar(&c.LogLevel, "log-level", c.LogLevel, "log level (debug, info, warn, error)")
	fs.StringVar(&c.LogFormat, "log-format", c.LogFormat, "log format (text, json, discard)")
	fs.Var(&c.Params, "set", "simulation parameter in key=value form (repeatable)")
}

// Validate checks the flag combination before anything is built.
func (c *Config) Validate() error {
	if c.Scenario == "" {
		if _, ok := core.Sims()[c.Sim]; !ok {
			return fmt.Errorf("%w: unknown sim %q (available: %s)", core.ErrPrecondition, c.Sim, strings.Join(core.Names(), ", "))
		}
	}
	if c.TPS < 0 {
		return fmt.Errorf("%w: tps must not be negative", core.ErrPrecondition)
	}
	if c.Every < 0 {
		return fmt.Errorf("%w: every must not be negative", core.ErrPrecondition)
	}
	if c.Mono && c.PNG == "" {
		return fmt.Errorf("%w: -png-mono needs -png", core.ErrPrecondition)
	}
	if c.Steps < 0 && c.TPS == 0 && c.Every == 0 {
		return fmt.Errorf("%w: an unbounded run needs -tps or -every", core.ErrPrecondition)
	}
	return nil
}
