package websearch

import (
	"errors"
	"fmt"
)

var (
	// ErrNoAPIKey is returned when no search API key is configured
	ErrNoAPIKey = errors.New("web search API key is not configured")
	// ErrNoResults is returned when the search succeeds with no organic results
	ErrNoResults = errors.New("web search returned no results")
)

// StatusError reports a non-success HTTP status from the search API
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("search API returned status %d: %s", e.StatusCode, e.Body)
	}
	return fmt.Sprintf("search API returned status %d", e.StatusCode)
}

// Retryable reports whether the status is worth another attempt
func (e *StatusError) Retryable() bool {
	return e.StatusCode == 429 || e.StatusCode >= 500
}
