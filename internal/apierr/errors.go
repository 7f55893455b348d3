// Package apierr is the error boundary between Go transport errors and the
// problem classifier. The API client converts every failed request into a
// *Error carrying a problem.Problem, and callers check it with errors.Is
// against the sentinels below or with IsTemporary to decide on a retry.
//
// Adapters wrap with fmt.Errorf("%s: %w", msg, sentinel) where no *Error
// is available.
package apierr

import (
	"errors"

	"github.com/alnah/go-apiclient/internal/problem"
)

// Sentinel errors, one per problem kind.
var (
	// ErrCannotConnect indicates the server could not be reached (temporary).
	ErrCannotConnect = errors.New("cannot connect")

	// ErrTimeout indicates the request timed out before a response (temporary).
	ErrTimeout = errors.New("request timeout")

	// ErrUnauthorized indicates a 401: credentials missing or rejected.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden indicates a 403.
	ErrForbidden = errors.New("forbidden")

	// ErrNotFound indicates a 404.
	ErrNotFound = errors.New("not found")

	// ErrServer indicates a 500.
	ErrServer = errors.New("server error")

	// ErrRejected indicates any other non-2xx status.
	ErrRejected = errors.New("request rejected")

	// ErrUnknown indicates a failure without response that is not otherwise classified.
	ErrUnknown = errors.New("unknown error")
)

// Client-side errors raised before a request is sent.
var (
	// ErrNoConnection indicates the device is offline.
	ErrNoConnection = errors.New("no internet connection available, please check your network connection")

	// ErrMethodNotSupported indicates an HTTP method the client does not implement.
	ErrMethodNotSupported = errors.New("rest method not supported")
)

var sentinels = map[problem.Kind]error{
	problem.CannotConnect: ErrCannotConnect,
	problem.Timeout:       ErrTimeout,
	problem.Unauthorized:  ErrUnauthorized,
	problem.Forbidden:     ErrForbidden,
	problem.NotFound:      ErrNotFound,
	problem.Server:        ErrServer,
	problem.Rejected:      ErrRejected,
	problem.Unknown:       ErrUnknown,
}

// Sentinel returns the sentinel error for kind.
func Sentinel(kind problem.Kind) error {
	if err, ok := sentinels[kind]; ok {
		return err
	}
	return ErrUnknown
}

// KindOf reports the problem kind of err, if err carries one.
// It recognizes *Error and the kind sentinels, wrapped or not.
func KindOf(err error) (problem.Kind, bool) {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Problem.Kind, true
	}
	for _, kind := range problem.Kinds() {
		if errors.Is(err, sentinels[kind]) {
			return kind, true
		}
	}
	return problem.Unknown, false
}
