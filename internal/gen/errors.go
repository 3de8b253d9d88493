package gen

import "errors"

// ErrUnregistered indicates a generator name with no implementation.
var ErrUnregistered = errors.New("gen: generator not registered")
