package paged

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidLayout reports a layout item the renderer cannot interpret.
	ErrInvalidLayout = errors.New("invalid layout")
	// ErrFont reports a font setup failure.
	ErrFont = errors.New("font error")
	// ErrImage reports an image decode or embed failure.
	ErrImage = errors.New("image error")
	// ErrStructureParse reports a malformed layout tree.
	ErrStructureParse = errors.New("malformed layout tree")
	// ErrDocumentGeneration reports a failure while finalizing the document.
	ErrDocumentGeneration = errors.New("document generation failed")
	// ErrInvalidColor reports a color value that cannot be parsed.
	ErrInvalidColor = errors.New("invalid color")
	// ErrInvalidGeometry reports an unusable rectangle or dimension.
	ErrInvalidGeometry = errors.New("invalid geometry")
	// ErrMissingField reports a required layout field that is absent.
	ErrMissingField = errors.New("missing field")
	// ErrInvalidValue reports a layout field of an unexpected kind.
	ErrInvalidValue = errors.New("invalid value")
)

// FieldError describes a layout field that is absent or of the wrong kind.
// It wraps ErrMissingField or ErrInvalidValue so callers can branch with
// errors.Is while still seeing the offending key.
type FieldError struct {
	Key      string
	Expected string
	Found    string
	kind     error
}

func missingField(key, expected string) *FieldError {
	return &FieldError{Key: key, Expected: expected, Found: "absent", kind: ErrMissingField}
}

func invalidValue(key, expected string, found any) *FieldError {
	return &FieldError{
		Key:      key,
		Expected: expected,
		Found:    fmt.Sprintf("%T (%v)", found, found),
		kind:     ErrInvalidValue,
	}
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("field %q: expected %s, found %s", e.Key, e.Expected, e.Found)
}

func (e *FieldError) Unwrap() error { return e.kind }
