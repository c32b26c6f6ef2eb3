package scenario

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"

	"cellcore/internal/core"
)

// hclFile is the top-level structure of a scenario file for decoding.
type hclFile struct {
	Automata []*hclAutomaton `hcl:"automaton,block"`
}

type hclAutomaton struct {
	Name      string   `hcl:"name,label"`
	Kind      string   `hcl:"kind"`
	Width     int      `hcl:"width"`
	Height    int      `hcl:"height"`
	Edge      *string  `hcl:"edge,optional"`
	Zero      *int     `hcl:"zero,optional"`
	Fill      []int    `hcl:"fill,optional"`
	Seed      *int64   `hcl:"seed,optional"`
	Randomize *bool    `hcl:"randomize,optional"`
	Steps     *int     `hcl:"steps,optional"`
	Rule      *hclRule `hcl:"rule,block"`
	// Cells is either a list of pattern rows or a flat list of values, so it
	// is kept as an expression and inspected after decoding.
	Cells hcl.Expression `hcl:"cells,optional"`
}

type hclRule struct {
	Type    *string `hcl:"type,optional"`
	Decimal *int64  `hcl:"decimal,optional"`
	Bits    *string `hcl:"bits,optional"`
}

func loadHCLFile(path string) ([]document, error) {
	file, diags := hclparse.NewParser().ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("%w: failed to parse HCL file %s: %w", core.ErrMalformedInput, path, diags)
	}
	return decodeHCL(file.Body, path)
}

// ParseHCL decodes scenario source held in memory. filename is only used in
// diagnostics.
func ParseHCL(src []byte, filename string) ([]Scenario, error) {
	file, diags := hclparse.NewParser().ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("%w: failed to parse HCL %s: %w", core.ErrMalformedInput, filename, diags)
	}
	docs, err := decodeHCL(file.Body, filename)
	if err != nil {
		return nil, err
	}
	return resolveAll(docs)
}

func decodeHCL(body hcl.Body, filename string) ([]document, error) {
	var parsed hclFile
	if diags := gohcl.DecodeBody(body, nil, &parsed); diags.HasErrors() {
		return nil, fmt.Errorf("%w: failed to decode HCL %s: %w", core.ErrMalformedInput, filename, diags)
	}
	docs := make([]document, 0, len(parsed.Automata))
	for _, a := range parsed.Automata {
		d := document{
			Name:   a.Name,
			Kind:   a.Kind,
			Width:  a.Width,
			Height: a.Height,
			Zero:   a.Zero,
			Fill:   a.Fill,
			Seed:   a.Seed,
		}
		if a.Edge != nil {
			d.Edge = *a.Edge
		}
		if a.Randomize != nil {
			d.Randomize = *a.Randomize
		}
		if a.Steps != nil {
			d.Steps = *a.Steps
		}
		if a.Rule != nil {
			if a.Rule.Type != nil {
				d.RuleType = *a.Rule.Type
			}
			if a.Rule.Bits != nil {
				d.Bits = *a.Rule.Bits
			}
			d.Decimal = a.Rule.Decimal
		}
		if a.Cells != nil {
			val, diags := a.Cells.Value(nil)
			if diags.HasErrors() {
				return nil, fmt.Errorf("%w: automaton %q cells: %w", core.ErrMalformedInput, a.Name, diags)
			}
			if err := decodeCells(val, &d); err != nil {
				return nil, fmt.Errorf("automaton %q cells: %w", a.Name, err)
			}
		}
		docs = append(docs, d)
	}
	return docs, nil
}

// decodeCells accepts a list of strings as pattern rows or a list of numbers
// as literal cell values.
func decodeCells(val cty.Value, d *document) error {
	if val.IsNull() {
		return nil
	}
	ty := val.Type()
	if !ty.IsTupleType() && !ty.IsListType() {
		return fmt.Errorf("%w: expected a list, got %s", core.ErrMalformedInput, ty.FriendlyName())
	}
	if val.LengthInt() == 0 {
		return nil
	}

	rows := false
	for it := val.ElementIterator(); it.Next(); {
		_, v := it.Element()
		if v.Type() == cty.String {
			rows = true
			break
		}
	}

	target := cty.List(cty.Number)
	if rows {
		target = cty.List(cty.String)
	}
	list, err := convert.Convert(val, target)
	if err != nil {
		return fmt.Errorf("%w: %w", core.ErrMalformedInput, err)
	}
	if rows {
		d.Rows = []string{}
		err = gocty.FromCtyValue(list, &d.Rows)
	} else {
		d.Values = []int{}
		err = gocty.FromCtyValue(list, &d.Values)
	}
	if err != nil {
		return fmt.Errorf("%w: %w", core.ErrMalformedInput, err)
	}
	return nil
}
