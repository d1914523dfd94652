package formjson_test

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/tomasbasham/formjson"
)

func TestSerialize(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		input    []formjson.Control
		want     map[string]any
		wantKeys []string
	}{
		"no controls": {
			input:    nil,
			want:     map[string]any{},
			wantKeys: []string{},
		},
		"unique names": {
			input: []formjson.Control{
				formjson.TextControl{Name: "name", Value: "The Musical Hop"},
				formjson.TextControl{Name: "city", Value: "San Francisco"},
			},
			want:     map[string]any{"name": "The Musical Hop", "city": "San Francisco"},
			wantKeys: []string{"name", "city"},
		},
		"duplicate names last write wins": {
			input: []formjson.Control{
				formjson.TextControl{Name: "a", Value: "1"},
				formjson.TextControl{Name: "a", Value: "2"},
			},
			want:     map[string]any{"a": "2"},
			wantKeys: []string{"a"},
		},
		"overwrite keeps first position": {
			input: []formjson.Control{
				formjson.TextControl{Name: "a", Value: "1"},
				formjson.TextControl{Name: "b", Value: "2"},
				formjson.TextControl{Name: "a", Value: "3"},
			},
			want:     map[string]any{"a": "3", "b": "2"},
			wantKeys: []string{"a", "b"},
		},
		"multi select": {
			input:    []formjson.Control{genresControl()},
			want:     map[string]any{"genres": []string{"rock", "pop"}},
			wantKeys: []string{"genres"},
		},
		"mixed form": {
			input: []formjson.Control{
				formjson.TextControl{Name: "title", Value: "Inception"},
				genresControl(),
			},
			want:     map[string]any{"title": "Inception", "genres": []string{"rock", "pop"}},
			wantKeys: []string{"title", "genres"},
		},
		"single select yields its value": {
			input: []formjson.Control{
				formjson.SelectControl{Name: "state", Options: []formjson.Option{
					{Value: "CA"},
					{Value: "NY", Selected: true},
				}},
			},
			want:     map[string]any{"state": "NY"},
			wantKeys: []string{"state"},
		},
		"multi select with nothing selected": {
			input:    []formjson.Control{formjson.SelectControl{Name: "genres", Multiple: true}},
			want:     map[string]any{"genres": []string{}},
			wantKeys: []string{"genres"},
		},
		"checkbox keeps literal value": {
			input:    []formjson.Control{formjson.TextControl{Name: "seeking_talent", Value: "y"}},
			want:     map[string]any{"seeking_talent": "y"},
			wantKeys: []string{"seeking_talent"},
		},
		"missing name keys by empty string": {
			input:    []formjson.Control{formjson.TextControl{Value: "orphan"}},
			want:     map[string]any{"": "orphan"},
			wantKeys: []string{""},
		},
		"nil controls are skipped": {
			input: []formjson.Control{
				nil,
				(*formjson.TextControl)(nil),
				&formjson.TextControl{Name: "a", Value: "1"},
			},
			want:     map[string]any{"a": "1"},
			wantKeys: []string{"a"},
		},
	}
	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got := formjson.Serialize(tt.input)
			if diff := cmp.Diff(tt.want, got.Map()); diff != "" {
				t.Errorf("(-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(tt.wantKeys, got.Keys()); diff != "" {
				t.Errorf("keys (-want +got):\n%s", diff)
			}
		})
	}
}

func TestForm_MarshalJSON(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		input *formjson.Form
		want  string
	}{
		"nil form": {
			input: nil,
			want:  `null`,
		},
		"empty form": {
			input: formjson.NewForm(),
			want:  `{}`,
		},
		"keys in insertion order": {
			input: formjson.Serialize([]formjson.Control{
				formjson.TextControl{Name: "title", Value: "Inception"},
				genresControl(),
			}),
			want: `{"title":"Inception","genres":["rock","pop"]}`,
		},
		"empty list is an array": {
			input: formjson.Serialize([]formjson.Control{
				formjson.SelectControl{Name: "genres", Multiple: true},
			}),
			want: `{"genres":[]}`,
		},
		"escaped keys": {
			input: formjson.Serialize([]formjson.Control{
				formjson.TextControl{Name: `a"b`, Value: "x"},
			}),
			want: `{"a\"b":"x"}`,
		},
	}
	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got, err := json.Marshal(tt.input)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if diff := cmp.Diff(tt.want, string(got)); diff != "" {
				t.Errorf("(-want +got):\n%s", diff)
			}
		})
	}
}

func TestForm_ZeroValue(t *testing.T) {
	t.Parallel()

	var f formjson.Form
	f.Set("a", formjson.StringValue("1"))
	f.Set("b", formjson.ListValue("x", "y"))

	got, ok := f.Get("b")
	if !ok {
		t.Fatal("expected key b")
	}
	if diff := cmp.Diff(formjson.ListValue("x", "y"), got, ValueComparer); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
	if f.Len() != 2 {
		t.Errorf("Len() = %d, want 2", f.Len())
	}
	if _, ok := f.Get("missing"); ok {
		t.Error("expected missing key to be absent")
	}
}

func TestForm_Values(t *testing.T) {
	t.Parallel()

	f := formjson.Serialize([]formjson.Control{
		formjson.TextControl{Name: "title", Value: "Inception"},
		genresControl(),
		formjson.SelectControl{Name: "empty", Multiple: true},
	})

	want := map[string][]string{
		"title":  {"Inception"},
		"genres": {"rock", "pop"},
	}
	if diff := cmp.Diff(want, map[string][]string(f.Values())); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestValue_ListIsCopied(t *testing.T) {
	t.Parallel()

	src := []string{"a", "b"}
	v := formjson.ListValue(src...)
	src[0] = "changed"

	list := v.List()
	list[1] = "changed"

	if diff := cmp.Diff([]string{"a", "b"}, v.List()); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}
