// Package problem classifies failed API requests into a closed set of
// problem kinds.
//
// The classifier is a pure function: it reads only its argument, keeps no
// state and performs no I/O, so it is safe to call from any goroutine.
// Callers build a Failure from whatever their HTTP client observed and use
// the resulting Problem to pick a user-facing message or a retry policy.
package problem

import (
	"fmt"
	"regexp"
)

// Client-observed messages with special meaning.
const (
	// MessageCanceled marks a request aborted by the caller.
	MessageCanceled = "Canceled"

	// MessageNetworkError marks a request that never reached the server.
	MessageNetworkError = "Network Error"
)

// timeoutPattern matches "timeout of <N>ms exceeded".
var timeoutPattern = regexp.MustCompile(`^timeout of \d+ms exceeded$`)

// TimeoutMessage returns the client message for a request that timed out
// after ms milliseconds.
func TimeoutMessage(ms int64) string {
	return fmt.Sprintf("timeout of %dms exceeded", ms)
}

// ---------------------------------------------------------------------------
// Failure - what the caller observed
// ---------------------------------------------------------------------------

// Failure describes a failed request. It is either NoResponse or Response.
type Failure interface {
	message() string
	failure()
}

// NoResponse is a failure where no HTTP response was received: DNS failure,
// refused connection, socket timeout, offline device or cancellation.
type NoResponse struct {
	Message string
}

func (f NoResponse) message() string { return f.Message }
func (NoResponse) failure()          {}

// Response is a failure where the server answered with StatusCode.
// Message is the client-side error text, if any.
type Response struct {
	StatusCode int
	Message    string
}

func (f Response) message() string { return f.Message }
func (Response) failure()          {}

// Compile-time interface verification.
var (
	_ Failure = NoResponse{}
	_ Failure = Response{}
)

// ---------------------------------------------------------------------------
// Problem - the classification
// ---------------------------------------------------------------------------

// Problem is the semantic classification of a failed request.
type Problem struct {
	Kind Kind `json:"kind"`
	// Temporary is true when the condition may clear on its own and a
	// retry with the same request may succeed.
	Temporary bool `json:"temporary,omitempty"`
}

// String returns the kind, suffixed with "(temporary)" when applicable.
func (p Problem) String() string {
	if p.Temporary {
		return p.Kind.String() + " (temporary)"
	}
	return p.Kind.String()
}

// Classify maps a failure to a Problem. The boolean is false when the
// failure is a cancellation, which must be ignored rather than reported.
// A nil failure is classified as an unknown, temporary problem.
func Classify(f Failure) (Problem, bool) {
	if f == nil {
		f = NoResponse{}
	}

	if f.message() == MessageCanceled {
		return Problem{}, false
	}

	switch f := f.(type) {
	case NoResponse:
		return classifyNoResponse(f.Message), true
	case Response:
		return classifyStatus(f.StatusCode), true
	default:
		return Problem{Kind: Unknown, Temporary: true}, true
	}
}

func classifyNoResponse(msg string) Problem {
	switch {
	case msg == MessageNetworkError:
		return Problem{Kind: CannotConnect, Temporary: true}
	case timeoutPattern.MatchString(msg):
		return Problem{Kind: Timeout, Temporary: true}
	default:
		return Problem{Kind: Unknown, Temporary: true}
	}
}

// classifyStatus never marks a problem temporary: repeating the same
// request with the same credentials yields the same status.
func classifyStatus(code int) Problem {
	switch code {
	case 401:
		return Problem{Kind: Unauthorized}
	case 403:
		return Problem{Kind: Forbidden}
	case 404:
		return Problem{Kind: NotFound}
	case 500:
		return Problem{Kind: Server}
	default:
		return Problem{Kind: Rejected}
	}
}
