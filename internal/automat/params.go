package automat

import (
	"fmt"
	"strconv"

	"cellcore/internal/core"
	"cellcore/internal/ruleset"
)

// Parameters reports the display surface of the automaton.
func (a *Automaton[T]) Parameters() core.ParameterSnapshot {
	size := a.Size()
	rule := "none"
	if a.rule != nil {
		rule = a.rule.Kind().String()
	}
	groups := []core.ParameterGroup{
		{
			Name: "Automaton",
			Params: []core.Parameter{
				stringParam("kind", "Kind", a.kind.String()),
				intParam("w", "Width", size.W),
				intParam("h", "Height", size.H),
				stringParam("edge", "Edge", a.Edge().String()),
				intParam("generation", "Generation", a.gen),
				intParam("steps", "Steps", a.steps),
			},
		},
		{
			Name: "Rule",
			Params: []core.Parameter{
				stringParam("rule_kind", "Rule", rule),
				{
					Key:   "rule",
					Label: "Ruleset",
					Type:  core.ParamTypeInt,
					Value: a.rs.String(),
				},
				stringParam("bits", "Ruleset bits", a.rs.Format(ruleset.Patterns)),
			},
		},
	}
	return core.ParameterSnapshot{Groups: groups}
}

// ParameterControls lists the integer controls accepted by SetIntParameter.
// Only 1-D automata expose ruleset controls.
func (a *Automaton[T]) ParameterControls() []core.ParameterControl {
	if a.kind != core.OneDimensional {
		return nil
	}
	return []core.ParameterControl{
		{Key: "rule", Label: "Ruleset", Type: core.ParamTypeInt, Step: 1, Min: 0, Max: 255, HasMin: true, HasMax: true},
		{Key: "flip", Label: "Flip pattern", Type: core.ParamTypeInt, Step: 1, Min: 0, Max: ruleset.Patterns - 1, HasMin: true, HasMax: true},
	}
}

// SetIntParameter applies an integer control. "rule" stores a decimal
// ruleset, "flip" toggles one pattern bit and "generation" rewinds a 1-D
// automaton to an earlier row.
func (a *Automaton[T]) SetIntParameter(key string, value int) bool {
	switch key {
	case "rule":
		if value < 0 {
			return false
		}
		return a.SetRulesetDecimal(uint64(value)) == nil
	case "flip":
		return a.FlipRulesetBit(value) == nil
	case "generation":
		if a.kind != core.OneDimensional || value < 0 || value >= a.Size().H {
			return false
		}
		a.gen = value
		return true
	}
	return false
}

func intParam(key, label string, value int) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeInt,
		Value: strconv.Itoa(value),
	}
}

func stringParam(key, label, value string) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeString,
		Value: value,
	}
}

var (
	_ core.ParameterControlsProvider = (*Automaton[uint8])(nil)
	_ core.IntParameterSetter        = (*Automaton[uint8])(nil)
	_ fmt.Stringer                   = (*Automaton[uint8])(nil)
)
