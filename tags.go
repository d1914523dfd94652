package formjson

import (
	"reflect"
	"strings"
	"sync"
)

// cache of bindable fields per struct type, so repeated decodes into the same
// type only parse its tags once.
//
// This cache is safe for concurrent use.
var structFieldCache sync.Map

type field struct {
	Index int
	Name  string
}

// fields returns the exported, non-ignored fields of struct type t with the
// form name each binds to. The name comes from the `form` tag and defaults to
// the Go field name.
func fields(t reflect.Type) []field {
	if cached, ok := structFieldCache.Load(t); ok {
		return cached.([]field)
	}

	var out []field
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		name, ignore := parseTag(f.Tag.Get("form"))
		if ignore {
			continue
		}
		if name == "" {
			name = f.Name
		}
		out = append(out, field{Index: i, Name: name})
	}

	structFieldCache.Store(t, out)
	return out
}

// parseTag splits a `form` tag into its name and whether the field is
// ignored, either by a "-" name or an "ignore" flag.
func parseTag(str string) (string, bool) {
	str = strings.TrimSpace(str)
	if str == "-" {
		return "", true
	}

	parts := strings.Split(str, ",")
	name := strings.TrimSpace(parts[0])
	for _, p := range parts[1:] {
		if strings.TrimSpace(p) == "ignore" {
			return "", true
		}
	}
	return name, false
}
