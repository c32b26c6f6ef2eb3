package scenario

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"cellcore/internal/core"
)

type yamlFile struct {
	Automata []yamlAutomaton `yaml:"automata"`
}

type yamlAutomaton struct {
	Name      string    `yaml:"name"`
	Kind      string    `yaml:"kind"`
	Width     int       `yaml:"width"`
	Height    int       `yaml:"height"`
	Edge      string    `yaml:"edge"`
	Zero      *int      `yaml:"zero"`
	Fill      []int     `yaml:"fill"`
	Seed      *int64    `yaml:"seed"`
	Randomize bool      `yaml:"randomize"`
	Steps     int       `yaml:"steps"`
	Rule      yamlRule  `yaml:"rule"`
	Cells     yaml.Node `yaml:"cells"`
}

type yamlRule struct {
	Type    string `yaml:"type"`
	Decimal *int64 `yaml:"decimal"`
	Bits    string `yaml:"bits"`
}

func loadYAMLFile(path string) ([]document, error) {
	body, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario %s: %w", path, err)
	}
	return decodeYAML(body)
}

// ParseYAML decodes scenario source held in memory.
func ParseYAML(src []byte) ([]Scenario, error) {
	docs, err := decodeYAML(src)
	if err != nil {
		return nil, err
	}
	return resolveAll(docs)
}

func decodeYAML(src []byte) ([]document, error) {
	var f yamlFile
	if err := yaml.Unmarshal(src, &f); err != nil {
		return nil, fmt.Errorf("%w: decoding scenario YAML: %w", core.ErrMalformedInput, err)
	}
	docs := make([]document, 0, len(f.Automata))
	for _, a := range f.Automata {
		d := document{
			Name:      a.Name,
			Kind:      a.Kind,
			Width:     a.Width,
			Height:    a.Height,
			Edge:      a.Edge,
			Zero:      a.Zero,
			Fill:      a.Fill,
			Seed:      a.Seed,
			Randomize: a.Randomize,
			Steps:     a.Steps,
			RuleType:  a.Rule.Type,
			Decimal:   a.Rule.Decimal,
			Bits:      a.Rule.Bits,
		}
		if err := yamlCells(&a.Cells, &d); err != nil {
			return nil, fmt.Errorf("automaton %q cells: %w", a.Name, err)
		}
		docs = append(docs, d)
	}
	return docs, nil
}

// yamlCells reads a sequence of quoted or plain strings as pattern rows and a
// sequence of integers as cell values. Rows made only of digits must be quoted.
func yamlCells(n *yaml.Node, d *document) error {
	if n.Kind == 0 {
		return nil
	}
	if n.Kind != yaml.SequenceNode {
		return fmt.Errorf("%w: expected a sequence at line %d", core.ErrMalformedInput, n.Line)
	}
	if len(n.Content) == 0 {
		return nil
	}
	if n.Content[0].Tag == "!!str" {
		d.Rows = []string{}
		if err := n.Decode(&d.Rows); err != nil {
			return fmt.Errorf("%w: %w", core.ErrMalformedInput, err)
		}
		return nil
	}
	d.Values = []int{}
	if err := n.Decode(&d.Values); err != nil {
		return fmt.Errorf("%w: %w", core.ErrMalformedInput, err)
	}
	return nil
}
