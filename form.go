package formjson

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/url"

	"gopkg.in/yaml.v3"
)

// Value is the serialized value of a control: either a single string or an
// ordered list of strings.
type Value struct {
	str    string
	list   []string
	isList bool
}

// StringValue returns a single-string [Value].
func StringValue(s string) Value {
	return Value{str: s}
}

// ListValue returns a list [Value]. A list with no elements is still a list.
func ListValue(values ...string) Value {
	list := make([]string, len(values))
	copy(list, values)
	return Value{list: list, isList: true}
}

// IsList reports whether v holds a list of strings.
func (v Value) IsList() bool { return v.isList }

// String returns the single string held by v, or the empty string for lists.
func (v Value) String() string { return v.str }

// List returns a copy of the list held by v, or nil for single strings.
func (v Value) List() []string {
	if !v.isList {
		return nil
	}
	list := make([]string, len(v.list))
	copy(list, v.list)
	return list
}

// Strings returns the values v contributes to a urlencoded submission.
func (v Value) Strings() []string {
	if v.isList {
		return v.List()
	}
	return []string{v.str}
}

// Interface returns v as a string or a []string.
func (v Value) Interface() any {
	if v.isList {
		return v.List()
	}
	return v.str
}

func (v Value) MarshalJSON() ([]byte, error) {
	if !v.isList {
		return jsonString(v.str)
	}

	var b bytes.Buffer
	b.WriteByte('[')
	for i, s := range v.list {
		if i > 0 {
			b.WriteByte(',')
		}
		elem, err := jsonString(s)
		if err != nil {
			return nil, err
		}
		b.Write(elem)
	}
	b.WriteByte(']')
	return b.Bytes(), nil
}

// jsonString encodes s without escaping HTML characters; submitted values
// are data, not markup.
func jsonString(s string) ([]byte, error) {
	var b bytes.Buffer
	enc := json.NewEncoder(&b)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return nil, err
	}
	return bytes.TrimRight(b.Bytes(), "\n"), nil
}

func (v Value) MarshalYAML() (interface{}, error) {
	return v.Interface(), nil
}

// Form is a serialized form: an ordered mapping from control name to
// [Value]. Keys keep the position of their first insertion; setting an
// existing key replaces its value in place.
//
// The zero value is an empty form ready to use.
type Form struct {
	keys    []string
	entries map[string]Value
}

// NewForm returns an empty [Form].
func NewForm() *Form {
	return &Form{entries: make(map[string]Value)}
}

// Set stores v under name, replacing any earlier value.
func (f *Form) Set(name string, v Value) {
	if f.entries == nil {
		f.entries = make(map[string]Value)
	}
	if _, ok := f.entries[name]; !ok {
		f.keys = append(f.keys, name)
	}
	f.entries[name] = v
}

// Get returns the value stored under name.
func (f *Form) Get(name string) (Value, bool) {
	if f == nil {
		return Value{}, false
	}
	v, ok := f.entries[name]
	return v, ok
}

// Len returns the number of entries in the form.
func (f *Form) Len() int {
	if f == nil {
		return 0
	}
	return len(f.keys)
}

// Keys returns the entry names in order.
func (f *Form) Keys() []string {
	if f == nil {
		return nil
	}
	keys := make([]string, len(f.keys))
	copy(keys, f.keys)
	return keys
}

// Map returns the form as a plain map of string or []string values.
func (f *Form) Map() map[string]any {
	m := make(map[string]any, f.Len())
	if f == nil {
		return m
	}
	for _, k := range f.keys {
		m[k] = f.entries[k].Interface()
	}
	return m
}

// Values returns the form as [url.Values]. List entries contribute one value
// per element; an empty list contributes nothing.
func (f *Form) Values() url.Values {
	values := url.Values{}
	if f == nil {
		return values
	}
	for _, k := range f.keys {
		for _, s := range f.entries[k].Strings() {
			values.Add(k, s)
		}
	}
	return values
}

func (f *Form) MarshalJSON() ([]byte, error) {
	if f == nil {
		return []byte("null"), nil
	}

	var b bytes.Buffer
	b.WriteByte('{')
	for i, k := range f.keys {
		if i > 0 {
			b.WriteByte(',')
		}
		key, err := jsonString(k)
		if err != nil {
			return nil, err
		}
		b.Write(key)
		b.WriteByte(':')
		val, err := f.entries[k].MarshalJSON()
		if err != nil {
			return nil, err
		}
		b.Write(val)
	}
	b.WriteByte('}')
	return b.Bytes(), nil
}

func (f *Form) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	if f == nil {
		return node, nil
	}
	for _, k := range f.keys {
		var key, val yaml.Node
		if err := key.Encode(k); err != nil {
			return nil, err
		}
		if err := val.Encode(f.entries[k].Interface()); err != nil {
			return nil, err
		}
		node.Content = append(node.Content, &key, &val)
	}
	return node, nil
}

// LogValue renders the form as a group of attributes in key order. Handlers
// drop empty groups, so an empty form is rendered as the string "{}".
func (f *Form) LogValue() slog.Value {
	if f.Len() == 0 {
		return slog.StringValue("{}")
	}
	attrs := make([]slog.Attr, 0, f.Len())
	for _, k := range f.keys {
		attrs = append(attrs, slog.Any(k, f.entries[k].Interface()))
	}
	return slog.GroupValue(attrs...)
}

// Serialize folds controls, in order, into a fresh [Form]. Multi-select
// controls contribute the values of their selected options; every other
// control contributes its raw string value. A control sharing a name with an
// earlier one overwrites its entry. Nil controls are skipped.
func Serialize(controls []Control) *Form {
	form := NewForm()
	for _, c := range controls {
		if isNilControl(c) {
			continue
		}
		if IsMultiSelect(c) {
			form.Set(c.controlName(), ListValue(SelectValues(selectOptions(c))...))
			continue
		}
		form.Set(c.controlName(), StringValue(controlValue(c)))
	}
	return form
}

func isNilControl(c Control) bool {
	switch v := c.(type) {
	case nil:
		return true
	case *TextControl:
		return v == nil
	case *SelectControl:
		return v == nil
	default:
		return false
	}
}
