package corpus

import (
	"errors"
	"fmt"
)

// ErrMalformed matches every MalformedSourceError via errors.Is
var ErrMalformed = errors.New("malformed knowledge document")

// MalformedSourceError reports a document that exists but cannot be used:
// invalid JSON or content that violates its schema.
type MalformedSourceError struct {
	Source string
	Path   string
	Cause  error
}

func (e *MalformedSourceError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("malformed source %s (%s): %v", e.Source, e.Path, e.Cause)
	}
	return fmt.Sprintf("malformed source %s (%s)", e.Source, e.Path)
}

func (e *MalformedSourceError) Unwrap() error {
	return e.Cause
}

// Is reports ErrMalformed as a match.
func (e *MalformedSourceError) Is(target error) bool {
	return target == ErrMalformed
}

// ReadError reports a document that exists but could not be read
type ReadError struct {
	Path  string
	Cause error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("failed to read %s: %v", e.Path, e.Cause)
}

func (e *ReadError) Unwrap() error {
	return e.Cause
}
