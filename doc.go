// Package formjson serializes HTML forms into plain key-value data.
//
// A submitted form is reduced to an ordered mapping from control name to the
// control's value. Controls that permit multiple selections contribute the
// ordered list of their selected option values; every other control
// contributes its raw string value. The package parses pages with
// golang.org/x/net/html, locates the form by its marker class and exposes a
// submit [Handler] that re-resolves the form on every submission. Serialized
// forms encode to JSON, YAML or application/x-www-form-urlencoded and can be
// bound back into Go types.
package formjson
