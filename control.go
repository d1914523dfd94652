package formjson

// Option is a selectable choice within a [SelectControl].
type Option struct {
	Value    string
	Label    string
	Selected bool
	Disabled bool
}

// Control is a form control capable of holding a value and participating in
// submission. It is implemented by [TextControl] and [SelectControl] only.
type Control interface {
	controlName() string
}

// TextControl is any control without an options concept: text-like inputs,
// checkboxes, radios, textareas, buttons and outputs.
type TextControl struct {
	Name  string
	Value string
}

func (c TextControl) controlName() string { return c.Name }

// SelectControl is a control offering a discrete set of options, optionally
// permitting multiple simultaneous selections.
type SelectControl struct {
	Name     string
	Multiple bool
	Options  []Option
}

func (c SelectControl) controlName() string { return c.Name }

// Value returns the value of the first selected option, or the empty string
// when nothing is selected.
func (c SelectControl) Value() string {
	for _, o := range c.Options {
		if o.Selected {
			return o.Value
		}
	}
	return ""
}

// IsMultiSelect reports whether c offers options and permits multiple
// selections. Controls without options are never multi-select.
func IsMultiSelect(c Control) bool {
	switch s := c.(type) {
	case SelectControl:
		return s.Multiple
	case *SelectControl:
		return s != nil && s.Multiple
	default:
		return false
	}
}

// SelectValues returns the values of the selected options, preserving their
// relative order. The result is never nil.
func SelectValues(options []Option) []string {
	values := make([]string, 0, len(options))
	for _, o := range options {
		if o.Selected {
			values = append(values, o.Value)
		}
	}
	return values
}

// controlValue returns the single string value submitted for c.
func controlValue(c Control) string {
	switch v := c.(type) {
	case TextControl:
		return v.Value
	case *TextControl:
		return v.Value
	case SelectControl:
		return v.Value()
	case *SelectControl:
		return v.Value()
	default:
		return ""
	}
}

func selectOptions(c Control) []Option {
	switch v := c.(type) {
	case SelectControl:
		return v.Options
	case *SelectControl:
		return v.Options
	default:
		return nil
	}
}
