package dispatch

import "errors"

// ErrEmptyQuestion is returned when the question is blank
var ErrEmptyQuestion = errors.New("question is empty")

// UnknownIntentError is returned when a caller forces an intent that has no handler
type UnknownIntentError struct {
	Intent string
}

func (e *UnknownIntentError) Error() string {
	return "unknown intent: " + e.Intent
}
