package formjson

import (
	"fmt"
	"net/url"
	"strings"
)

// Format is an output encoding for serialized forms.
type Format int

const (
	FormatJSON Format = iota
	FormatYAML
	FormatURLEncoded
)

// ParseFormat returns the [Format] with the given name: "json", "yaml" (or
// "yml") and "urlencoded" (or "form").
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "json", "":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "urlencoded", "form":
		return FormatURLEncoded, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownFormat, name)
	}
}

func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatYAML:
		return "yaml"
	case FormatURLEncoded:
		return "urlencoded"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// EncodeToString is a convenience function that returns the urlencoded form
// of f as a string.
func EncodeToString(f *Form) (string, error) {
	b, err := Marshal(f)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Marshal returns f as the application/x-www-form-urlencoded body a browser
// would submit. Keys appear in form order and list values repeat their key;
// an empty list contributes nothing.
func Marshal(f *Form) ([]byte, error) {
	if f == nil {
		return []byte{}, nil
	}

	var b strings.Builder
	for _, k := range f.keys {
		key := url.QueryEscape(k)
		for _, v := range f.entries[k].Strings() {
			if b.Len() > 0 {
				b.WriteByte('&')
			}
			b.WriteString(key)
			b.WriteByte('=')
			b.WriteString(url.QueryEscape(v))
		}
	}
	return []byte(b.String()), nil
}
