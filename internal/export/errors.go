package export

import "errors"

var (
	// ErrNotFound indicates the artifact does not exist.
	ErrNotFound = errors.New("export not found")
	// ErrInvalidInput indicates missing or malformed input.
	ErrInvalidInput = errors.New("invalid input")
)
