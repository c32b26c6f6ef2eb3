// Package scenario loads automaton definitions from HCL or YAML files and
// wires them into the controller.
//
// Both formats describe the same model. A file holds one or more automata;
// each names its kind, dimensions, boundary policy, value domain, rule and
// an optional initial pattern.
package scenario

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/apex/log"

	"cellcore/internal/automat"
	"cellcore/internal/core"
	"cellcore/internal/rules"
	"cellcore/internal/ruleset"
	"cellcore/internal/topology"
)

// Rule selects the transition rule and, for elementary automata, the ruleset.
// Bits takes precedence over Decimal when both are set.
type Rule struct {
	Type    rules.Kind
	Decimal uint64
	Bits    string
}

// Scenario is one fully resolved automaton definition.
type Scenario struct {
	Name      string
	Kind      core.Kind
	Width     int
	Height    int
	Edge      topology.Edge
	Zero      uint8
	Fill      []uint8
	Rule      Rule
	Seed      int64
	Randomize bool
	Steps     int
	// Cells is nil unless the file supplies an initial pattern.
	Cells []uint8
}

// document is the format-neutral shape both decoders produce.
type document struct {
	Name      string
	Kind      string
	Width     int
	Height    int
	Edge      string
	Zero      *int
	Fill      []int
	RuleType  string
	Decimal   *int64
	Bits      string
	Seed      *int64
	Randomize bool
	Steps     int
	Rows      []string
	Values    []int
}

// Load reads every automaton defined in path. The format is chosen from the
// file extension: .hcl, .yaml or .yml.
func Load(path string) ([]Scenario, error) {
	var (
		docs []document
		err  error
	)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".hcl":
		docs, err = loadHCLFile(path)
	case ".yaml", ".yml":
		docs, err = loadYAMLFile(path)
	default:
		return nil, fmt.Errorf("%w: unsupported scenario format %q", core.ErrMalformedInput, ext)
	}
	if err != nil {
		return nil, err
	}
	out, err := resolveAll(docs)
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", path, err)
	}
	log.WithFields(log.Fields{"path": path, "automata": len(out)}).Debug("scenarios loaded")
	return out, nil
}

// Find returns the scenario called name. An empty name selects the first.
func Find(all []Scenario, name string) (Scenario, error) {
	if len(all) == 0 {
		return Scenario{}, fmt.Errorf("%w: no automata defined", core.ErrPrecondition)
	}
	if name == "" {
		return all[0], nil
	}
	for _, sc := range all {
		if sc.Name == name {
			return sc, nil
		}
	}
	return Scenario{}, fmt.Errorf("%w: no automaton named %q", core.ErrPrecondition, name)
}

func resolveAll(docs []document) ([]Scenario, error) {
	if len(docs) == 0 {
		return nil, fmt.Errorf("%w: no automata defined", core.ErrPrecondition)
	}
	seen := make(map[string]bool, len(docs))
	out := make([]Scenario, 0, len(docs))
	for _, d := range docs {
		if seen[d.Name] {
			return nil, fmt.Errorf("%w: duplicate automaton %q", core.ErrMalformedInput, d.Name)
		}
		seen[d.Name] = true
		sc, err := resolve(d)
		if err != nil {
			return nil, fmt.Errorf("automaton %q: %w", d.Name, err)
		}
		out = append(out, sc)
	}
	return out, nil
}

func resolve(d document) (Scenario, error) {
	kind, err := core.ParseKind(d.Kind)
	if err != nil {
		return Scenario{}, err
	}
	edge, err := topology.ParseEdge(d.Edge)
	if err != nil {
		return Scenario{}, err
	}
	if d.Width <= 0 || d.Height <= 0 {
		return Scenario{}, fmt.Errorf("%w: dimensions must be positive, got %dx%d", core.ErrPrecondition, d.Width, d.Height)
	}
	if d.Steps < 0 {
		return Scenario{}, fmt.Errorf("%w: negative step count %d", core.ErrPrecondition, d.Steps)
	}
	sc := Scenario{
		Name:      d.Name,
		Kind:      kind,
		Width:     d.Width,
		Height:    d.Height,
		Edge:      edge,
		Fill:      []uint8{1},
		Seed:      1,
		Randomize: d.Randomize,
		Steps:     d.Steps,
	}
	if d.Zero != nil {
		if sc.Zero, err = cellValue(*d.Zero); err != nil {
			return Scenario{}, err
		}
	}
	if len(d.Fill) > 0 {
		sc.Fill = make([]uint8, len(d.Fill))
		for i, v := range d.Fill {
			if sc.Fill[i], err = cellValue(v); err != nil {
				return Scenario{}, err
			}
		}
	}
	if d.Seed != nil {
		sc.Seed = *d.Seed
	}

	sc.Rule.Type = rules.KindLife
	if kind == core.OneDimensional {
		sc.Rule.Type = rules.KindElementary
	}
	if d.RuleType != "" {
		if sc.Rule.Type, err = rules.ParseKind(d.RuleType); err != nil {
			return Scenario{}, err
		}
	}
	if d.Decimal != nil {
		if *d.Decimal < 0 {
			return Scenario{}, fmt.Errorf("%w: negative ruleset %d", core.ErrMalformedInput, *d.Decimal)
		}
		sc.Rule.Decimal = uint64(*d.Decimal)
	}
	if d.Bits != "" {
		if _, err := ruleset.Parse(d.Bits); err != nil {
			return Scenario{}, err
		}
		sc.Rule.Bits = d.Bits
	}

	switch {
	case d.Rows != nil && d.Values != nil:
		return Scenario{}, fmt.Errorf("%w: cells mix pattern rows and values", core.ErrMalformedInput)
	case d.Rows != nil:
		if sc.Cells, err = ParsePattern(d.Rows, sc.Width, sc.Height, sc.Zero, sc.Fill); err != nil {
			return Scenario{}, err
		}
	case d.Values != nil:
		if len(d.Values) != sc.Width*sc.Height {
			return Scenario{}, fmt.Errorf("%w: expected %d cell values, got %d", core.ErrPrecondition, sc.Width*sc.Height, len(d.Values))
		}
		sc.Cells = make([]uint8, len(d.Values))
		for i, v := range d.Values {
			if sc.Cells[i], err = cellValue(v); err != nil {
				return Scenario{}, err
			}
		}
	}
	return sc, nil
}

func cellValue(v int) (uint8, error) {
	if v < 0 || v > 255 {
		return 0, fmt.Errorf("%w: cell value %d outside [0,255]", core.ErrMalformedInput, v)
	}
	return uint8(v), nil
}

// ParsePattern turns text rows into cells. '.' is zero, '#' is the default
// fill and a digit is that literal value. Short rows and missing rows are
// padded with zero.
func ParsePattern(rows []string, w, h int, zero uint8, fill []uint8) ([]uint8, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("%w: dimensions must be positive, got %dx%d", core.ErrPrecondition, w, h)
	}
	if len(rows) > h {
		return nil, fmt.Errorf("%w: pattern has %d rows, grid has %d", core.ErrPrecondition, len(rows), h)
	}
	cells := make([]uint8, w*h)
	for i := range cells {
		cells[i] = zero
	}
	for y, row := range rows {
		if len(row) > w {
			return nil, fmt.Errorf("%w: pattern row %d has %d columns, grid has %d", core.ErrPrecondition, y, len(row), w)
		}
		for x := 0; x < len(row); x++ {
			c := row[x]
			switch {
			case c == '.':
			case c == '#':
				if len(fill) == 0 {
					return nil, fmt.Errorf("%w: '#' needs a fill value", core.ErrPrecondition)
				}
				cells[y*w+x] = fill[0]
			case c >= '0' && c <= '9':
				cells[y*w+x] = c - '0'
			default:
				return nil, fmt.Errorf("%w: unexpected %q at row %d column %d", core.ErrMalformedInput, c, y, x)
			}
		}
	}
	return cells, nil
}

// Build configures a controller for sc. The scenario seed feeds the random
// source; Reset re-randomizes when Randomize is set and otherwise restores
// the file's pattern.
func Build(sc Scenario, opts ...automat.Option) (*automat.Sim[uint8], error) {
	opts = append([]automat.Option{automat.WithSeed(sc.Seed)}, opts...)
	a, err := automat.New(automat.Config[uint8]{
		Kind:   sc.Kind,
		Width:  sc.Width,
		Height: sc.Height,
		Zero:   sc.Zero,
		Fill:   sc.Fill,
		Edge:   sc.Edge,
		Cells:  sc.Cells,
	}, opts...)
	if err != nil {
		return nil, err
	}
	if err := a.UseRule(sc.Rule.Type); err != nil {
		return nil, err
	}
	if err := a.SetRulesetDecimal(sc.Rule.Decimal); err != nil {
		return nil, err
	}
	if sc.Rule.Bits != "" {
		if err := a.SetRulesetBits(sc.Rule.Bits); err != nil {
			return nil, err
		}
	}

	var seed automat.Seeder[uint8]
	switch {
	case sc.Randomize:
		seed = func(a *automat.Automaton[uint8]) error { return a.Randomize() }
	case sc.Cells != nil:
		cells := append([]uint8(nil), sc.Cells...)
		seed = func(a *automat.Automaton[uint8]) error { return a.SetCells(cells) }
	}
	name := sc.Name
	if name == "" {
		name = "scenario"
	}
	return automat.NewSim(name, a, seed), nil
}
