package scene

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound = errors.New("scene: not found")

	ErrDuplicateSlug = errors.New("scene: duplicate slug")

	ErrInvalidDescriptor = errors.New("scene: invalid descriptor")

	// ErrDefaultOutOfBounds indicates a default that violates its own spec.
	ErrDefaultOutOfBounds = errors.New("scene: default out of bounds")
)

// SpecError locates a bad parameter spec inside a descriptor.
type SpecError struct {
	Slug    string
	Param   string
	Reason  string
	Wrapped error
}

func (e *SpecError) Error() string {
	return fmt.Sprintf("%s.%s: %s", e.Slug, e.Param, e.Reason)
}

func (e *SpecError) Unwrap() error {
	if e.Wrapped == nil {
		return ErrDefaultOutOfBounds
	}
	return e.Wrapped
}
