package formjson

import "errors"

var (
	// ErrFormNotFound is returned when no element carries the form marker
	// class.
	ErrFormNotFound = errors.New("form: marker element not found")
	// ErrNotForm is returned when the marker element is not a <form>.
	ErrNotForm = errors.New("form: marker element is not a form")
	// ErrUnknownFormat is returned by [ParseFormat] for unsupported names.
	ErrUnknownFormat = errors.New("form: unknown format")
)
