// Package prompt fills form controls interactively in a terminal before they
// are serialized.
package prompt

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/tomasbasham/formjson"
)

// ErrAborted signals the user aborted input (e.g., Ctrl+C).
var ErrAborted = errors.New("prompt: aborted")

// InputConfig configures a text prompt.
type InputConfig struct {
	Message string
	Default string
}

// SelectConfig configures a single or multi-select prompt.
type SelectConfig struct {
	Message  string
	Options  []string
	Defaults []int // indices into Options
}

// Driver abstracts the terminal so the fill logic can be tested without one.
type Driver interface {
	Input(ctx context.Context, cfg InputConfig) (string, error)
	Select(ctx context.Context, cfg SelectConfig) (int, error)
	MultiSelect(ctx context.Context, cfg SelectConfig) ([]int, error)
}

// Fill asks for a value for every control and returns the edited copies, in
// the same order. Text controls take the typed value; selects end up with
// exactly the chosen options selected. Selects without options are left as
// they are.
func Fill(ctx context.Context, d Driver, controls []formjson.Control) ([]formjson.Control, error) {
	out := make([]formjson.Control, 0, len(controls))
	for _, c := range controls {
		filled, err := fillControl(ctx, d, c)
		if err != nil {
			return nil, err
		}
		out = append(out, filled)
	}
	return out, nil
}

func fillControl(ctx context.Context, d Driver, c formjson.Control) (formjson.Control, error) {
	switch v := c.(type) {
	case formjson.TextControl:
		value, err := d.Input(ctx, InputConfig{Message: label(v.Name), Default: v.Value})
		if err != nil {
			return nil, err
		}
		v.Value = value
		return v, nil
	case formjson.SelectControl:
		return fillSelect(ctx, d, v)
	default:
		return c, nil
	}
}

func fillSelect(ctx context.Context, d Driver, s formjson.SelectControl) (formjson.Control, error) {
	if len(s.Options) == 0 {
		return s, nil
	}

	cfg := SelectConfig{Message: label(s.Name)}
	for i, o := range s.Options {
		cfg.Options = append(cfg.Options, optionLabel(o, i))
		if o.Selected {
			cfg.Defaults = append(cfg.Defaults, i)
		}
	}

	var chosen []int
	if s.Multiple {
		indices, err := d.MultiSelect(ctx, cfg)
		if err != nil {
			return nil, err
		}
		chosen = indices
	} else {
		idx, err := d.Select(ctx, cfg)
		if err != nil {
			return nil, err
		}
		if idx >= 0 {
			chosen = []int{idx}
		}
	}

	options := make([]formjson.Option, len(s.Options))
	copy(options, s.Options)
	for i := range options {
		options[i].Selected = false
	}
	for _, idx := range chosen {
		if idx < 0 || idx >= len(options) {
			return nil, fmt.Errorf("prompt: option %d out of range for %q", idx, s.Name)
		}
		options[idx].Selected = true
	}
	s.Options = options
	return s, nil
}

// label turns a control name such as "seeking_talent" into the prompt
// message "Seeking Talent".
func label(name string) string {
	words := strings.FieldsFunc(name, func(r rune) bool {
		return r == '_' || r == '-'
	})
	if len(words) == 0 {
		return "(unnamed)"
	}
	return cases.Title(language.English).String(strings.Join(words, " "))
}

// optionLabel returns a display label for o. Labels are made unique by
// position because the terminal prompt answers with the label text.
func optionLabel(o formjson.Option, i int) string {
	text := o.Label
	if text == "" {
		text = o.Value
	}
	return fmt.Sprintf("%d. %s", i+1, text)
}
