package apierr

import (
	"errors"
	"fmt"

	"github.com/alnah/go-apiclient/internal/problem"
)

// Error is a classified API failure.
type Error struct {
	Problem    problem.Problem
	Method     string
	URL        string
	StatusCode int    // 0 when no response was received
	Body       []byte // response body, if any
	Err        error  // underlying transport error, if any
}

// Error implements the error interface.
func (e *Error) Error() string {
	switch {
	case e.StatusCode != 0:
		return fmt.Sprintf("%s %s: HTTP %d: %s", e.Method, e.URL, e.StatusCode, Sentinel(e.Problem.Kind))
	case e.Err != nil:
		return fmt.Sprintf("%s %s: %s: %v", e.Method, e.URL, Sentinel(e.Problem.Kind), e.Err)
	default:
		return fmt.Sprintf("%s %s: %s", e.Method, e.URL, Sentinel(e.Problem.Kind))
	}
}

// Unwrap returns the underlying transport error.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches the sentinel for the error's problem kind.
func (e *Error) Is(target error) bool {
	return target == Sentinel(e.Problem.Kind)
}

// Temporary reports whether a retry may succeed.
func (e *Error) Temporary() bool {
	return e.Problem.Temporary
}

// IsTemporary reports whether err is a classified temporary problem.
// It is the retry predicate used with RetryWithBackoff.
func IsTemporary(err error) bool {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Temporary()
	}
	return false
}
