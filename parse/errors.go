package parse

import (
	"errors"
	"fmt"

	"shape-caster/shape"
)

var (
	// ErrKeyMissing marks a non-nullable record field absent from the
	// input mapping (an explicit null counts as absent).
	ErrKeyMissing = errors.New("not found in data")
	// ErrTypeMismatch marks a value present but structurally incompatible
	// with every candidate shape after exhausting matchers and validators.
	ErrTypeMismatch = errors.New("not compatible with target shape")
	// ErrConfiguration marks an invalid parser factory configuration,
	// such as overriding a core generic validator kind.
	ErrConfiguration = errors.New("invalid parser configuration")
	// ErrConstruction marks an object builder or field catalog rejecting
	// an otherwise fully-resolved record. Fatal, never retried.
	ErrConstruction = errors.New("object construction failed")
)

// Error is a parse failure carrying the failing field path and the declared
// shape involved. It wraps one of the package sentinel errors.
type Error struct {
	// Path is the dotted field path from the root record; empty when the
	// failure is at the root value itself.
	Path string
	// Shape is the declared shape the value failed against.
	Shape *shape.Shape
	// Err is the underlying failure, matchable with errors.Is.
	Err error
}

func (e *Error) Error() string {
	switch {
	case errors.Is(e.Err, ErrKeyMissing):
		return fmt.Sprintf("'%s' not found in data", e.Path)
	case errors.Is(e.Err, ErrTypeMismatch):
		if e.Path == "" {
			return fmt.Sprintf("data not compatible with '%s'", e.Shape)
		}

		return fmt.Sprintf("'%s' in data not compatible with '%s'", e.Path, e.Shape)
	default:
		if e.Path == "" {
			return e.Err.Error()
		}

		return fmt.Sprintf("'%s': %v", e.Path, e.Err)
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

// withField prefixes err with a field name, preserving the innermost shape
// context so the final error names the exact point of non-conformance.
func withField(err error, name string, declared *shape.Shape) error {
	var perr *Error
	if errors.As(err, &perr) {
		path := name
		if perr.Path != "" {
			path = name + "." + perr.Path
		}

		failed := perr.Shape
		if failed == nil {
			failed = declared
		}

		return &Error{Path: path, Shape: failed, Err: perr.Err}
	}

	return &Error{Path: name, Shape: declared, Err: err}
}
