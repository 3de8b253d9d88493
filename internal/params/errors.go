package params

import "errors"

var (
	// ErrKindMismatch indicates a value whose type does not match its spec.
	ErrKindMismatch = errors.New("params: kind mismatch")

	ErrOutOfRange = errors.New("params: value out of range")

	ErrUnknownParam = errors.New("params: unknown parameter")
)
