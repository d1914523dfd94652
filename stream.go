package formjson

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Decoder reads form-urlencoded data from an [io.Reader] and decodes it into a
// Go value.
type Decoder struct {
	r io.Reader
}

// NewDecoder creates a new [Decoder] that reads from r.
func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{r: r}
}

// Decode reads the form-urlencoded data from the underlying [io.Reader] and
// decodes it into v.
func (d *Decoder) Decode(v any) error {
	body, err := io.ReadAll(d.r)
	if err != nil {
		return fmt.Errorf("form: failed to read body: %w", err)
	}

	return Unmarshal(body, v)
}

// Encoder writes serialized forms to an [io.Writer], one per line for JSON
// and urlencoded output and one document per form for YAML.
type Encoder struct {
	w      io.Writer
	format Format
	indent string
}

// NewEncoder creates a new [Encoder] that writes to w in the given format.
func NewEncoder(w io.Writer, format Format) *Encoder {
	return &Encoder{w: w, format: format}
}

// SetIndent sets the indentation used for JSON and YAML output. An empty
// indent produces compact JSON and the YAML default.
func (e *Encoder) SetIndent(indent string) {
	e.indent = indent
}

// Encode writes f to the underlying [io.Writer].
func (e *Encoder) Encode(f *Form) error {
	var (
		data []byte
		err  error
	)
	switch e.format {
	case FormatJSON:
		data, err = e.encodeJSON(f)
	case FormatYAML:
		data, err = e.encodeYAML(f)
	case FormatURLEncoded:
		data, err = Marshal(f)
		data = append(data, '\n')
	default:
		err = fmt.Errorf("%w: %s", ErrUnknownFormat, e.format)
	}
	if err != nil {
		return err
	}

	_, err = e.w.Write(data)
	return err
}

func (e *Encoder) encodeJSON(f *Form) ([]byte, error) {
	var b bytes.Buffer
	enc := json.NewEncoder(&b)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", e.indent)
	if err := enc.Encode(f); err != nil {
		return nil, fmt.Errorf("form: failed to encode json: %w", err)
	}
	return b.Bytes(), nil
}

func (e *Encoder) encodeYAML(f *Form) ([]byte, error) {
	var b bytes.Buffer
	enc := yaml.NewEncoder(&b)
	if e.indent != "" {
		enc.SetIndent(len(e.indent))
	}
	if err := enc.Encode(f); err != nil {
		return nil, fmt.Errorf("form: failed to encode yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("form: failed to encode yaml: %w", err)
	}
	return b.Bytes(), nil
}
