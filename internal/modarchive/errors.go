package modarchive

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound means the page does not have the expected top-level shape:
	// it is not a detail or results page, or the module does not exist.
	ErrNotFound = errors.New("module not found")
	// ErrMalformed means the page has the expected shape but a field is
	// missing or does not parse as its declared type.
	ErrMalformed = errors.New("malformed page")
)

// FieldError reports the field that could not be extracted.
type FieldError struct {
	Field string
	Value string
	Err   error
}

func (e *FieldError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("%v: %s: %v", ErrMalformed, e.Field, e.Err)
	}
	return fmt.Sprintf("%v: %s %q: %v", ErrMalformed, e.Field, e.Value, e.Err)
}

func (e *FieldError) Unwrap() []error { return []error{ErrMalformed, e.Err} }

func fieldErr(field, value string, err error) error {
	return &FieldError{Field: field, Value: value, Err: err}
}

var errMissing = errors.New("fragment missing")
