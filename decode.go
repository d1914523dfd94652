package formjson

import (
	"fmt"
	"net/url"
	"reflect"
	"strconv"
	"strings"
)

// InvalidUnmarshalError describes an invalid argument passed to [Unmarshal].
// (The argument to [Unmarshal] must be a non-nil pointer.)
type InvalidUnmarshalError struct {
	Type reflect.Type
}

func (e *InvalidUnmarshalError) Error() string {
	if e.Type == nil {
		return "form: Unmarshal(nil)"
	}

	if e.Type.Kind() != reflect.Pointer {
		return "form: Unmarshal(non-pointer " + e.Type.String() + ")"
	}
	return "form: Unmarshal(nil " + e.Type.String() + ")"
}

// Unmarshaler is the interface implemented by types that can unmarshal a
// single submitted value of themselves.
type Unmarshaler interface {
	UnmarshalForm(string) error
}

// DecodeString is a convenience function that parses the urlencoded body in
// data and stores the result in the value pointed to by v.
func DecodeString(data string, v any) error {
	return Unmarshal([]byte(data), v)
}

// Unmarshal parses an application/x-www-form-urlencoded body and stores the
// result in the value pointed to by v, which must be a struct or a map with
// string keys. Struct fields bind by their `form` tag; keys without a field
// are ignored. A repeated key fills a slice field, while a scalar field takes
// the last value.
func Unmarshal(data []byte, v any) error {
	if len(data) == 0 {
		return fmt.Errorf("form: empty input")
	}

	// Trim surrounding whitespace so a trailing newline does not end up in
	// the last value.
	pairs, err := parsePairs(strings.TrimSpace(string(data)))
	if err != nil {
		return fmt.Errorf("form: invalid form data: %w", err)
	}
	return bind(pairs, v)
}

// Decode stores the entries of f in the value pointed to by v using the same
// rules as [Unmarshal].
func (f *Form) Decode(v any) error {
	var p pairs
	if f != nil {
		for _, k := range f.keys {
			p.add(k, f.entries[k].Strings()...)
		}
	}
	return bind(p, v)
}

// pairs keeps submitted values grouped by key, in first-seen key order.
type pairs struct {
	keys   []string
	values map[string][]string
}

func (p *pairs) add(key string, values ...string) {
	if p.values == nil {
		p.values = make(map[string][]string)
	}
	if _, ok := p.values[key]; !ok {
		p.keys = append(p.keys, key)
		p.values[key] = []string{}
	}
	p.values[key] = append(p.values[key], values...)
}

func parsePairs(s string) (pairs, error) {
	var p pairs
	for _, part := range strings.Split(s, "&") {
		if part == "" {
			continue
		}
		rawKey, rawVal, _ := strings.Cut(part, "=")
		key, err := url.QueryUnescape(rawKey)
		if err != nil {
			return pairs{}, err
		}
		val, err := url.QueryUnescape(rawVal)
		if err != nil {
			return pairs{}, err
		}
		p.add(key, val)
	}
	return p, nil
}

func bind(p pairs, v any) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return &InvalidUnmarshalError{reflect.TypeOf(v)}
	}

	rv = rv.Elem()
	switch rv.Kind() {
	case reflect.Struct:
		return bindStruct(p, rv)
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return fmt.Errorf("form: map keys must be strings")
		}
		return bindMap(p, rv)
	default:
		return fmt.Errorf("form: top-level value must be struct or map")
	}
}

func bindStruct(p pairs, v reflect.Value) error {
	for _, f := range fields(v.Type()) {
		vals, ok := p.values[f.Name]
		if !ok {
			continue
		}
		if err := assign(v.Field(f.Index), vals); err != nil {
			return fmt.Errorf("form: field %q: %w", f.Name, err)
		}
	}
	return nil
}

func bindMap(p pairs, v reflect.Value) error {
	if v.IsNil() {
		v.Set(reflect.MakeMap(v.Type()))
	}
	elemType := v.Type().Elem()
	for _, k := range p.keys {
		vals := p.values[k]
		elem := reflect.New(elemType).Elem()
		if elemType.Kind() == reflect.Interface {
			if elemType.NumMethod() != 0 {
				return fmt.Errorf("form: unsupported type: %v", elemType)
			}
			// Without type information a single value stays a string and a
			// repeated key becomes a list, matching the serialized shape.
			if len(vals) == 1 {
				elem.Set(reflect.ValueOf(vals[0]))
			} else {
				elem.Set(reflect.ValueOf(append([]string{}, vals...)))
			}
		} else if err := assign(elem, vals); err != nil {
			return fmt.Errorf("form: key %q: %w", k, err)
		}
		v.SetMapIndex(reflect.ValueOf(k).Convert(v.Type().Key()), elem)
	}
	return nil
}

// assign stores vals in v. Slices receive every value; anything else takes
// the last one.
func assign(v reflect.Value, vals []string) error {
	if u, ok := asUnmarshaler(v); ok {
		return u.UnmarshalForm(last(vals))
	}

	switch v.Kind() {
	case reflect.Pointer:
		if v.IsNil() {
			v.Set(reflect.New(v.Type().Elem()))
		}
		return assign(v.Elem(), vals)
	case reflect.Slice:
		slice := reflect.MakeSlice(v.Type(), len(vals), len(vals))
		for i, s := range vals {
			if err := assign(slice.Index(i), []string{s}); err != nil {
				return err
			}
		}
		v.Set(slice)
		return nil
	default:
		return setScalar(v, last(vals))
	}
}

func last(vals []string) string {
	if len(vals) == 0 {
		return ""
	}
	return vals[len(vals)-1]
}

func asUnmarshaler(v reflect.Value) (Unmarshaler, bool) {
	if v.CanAddr() {
		if u, ok := v.Addr().Interface().(Unmarshaler); ok {
			return u, true
		}
	}
	if v.Kind() != reflect.Pointer || !v.IsNil() {
		if u, ok := v.Interface().(Unmarshaler); ok {
			return u, true
		}
	}
	return nil, false
}

func setScalar(v reflect.Value, s string) error {
	switch v.Kind() {
	case reflect.String:
		v.SetString(s)
	case reflect.Bool:
		b, err := parseBool(s)
		if err != nil {
			return err
		}
		v.SetBool(b)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if s == "" {
			v.SetInt(0)
			return nil
		}
		i, err := strconv.ParseInt(s, 10, v.Type().Bits())
		if err != nil {
			return fmt.Errorf("parseInt: %w", err)
		}
		v.SetInt(i)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		if s == "" {
			v.SetUint(0)
			return nil
		}
		u, err := strconv.ParseUint(s, 10, v.Type().Bits())
		if err != nil {
			return fmt.Errorf("parseUint: %w", err)
		}
		v.SetUint(u)
	case reflect.Float32, reflect.Float64:
		if s == "" {
			v.SetFloat(0)
			return nil
		}
		f, err := strconv.ParseFloat(s, v.Type().Bits())
		if err != nil {
			return fmt.Errorf("parseFloat: %w", err)
		}
		v.SetFloat(f)
	case reflect.Interface:
		if v.NumMethod() != 0 {
			return fmt.Errorf("unsupported type: %v", v.Type())
		}
		v.Set(reflect.ValueOf(s))
	default:
		return fmt.Errorf("unsupported type: %v", v.Type())
	}
	return nil
}

// parseBool accepts the strconv spellings plus the values checkboxes submit
// by default.
func parseBool(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "":
		return false, nil
	case "on", "yes", "y":
		return true, nil
	case "off", "no", "n":
		return false, nil
	}
	b, err := strconv.ParseBool(s)
	if err != nil {
		return false, fmt.Errorf("parseBool: %w", err)
	}
	return b, nil
}
