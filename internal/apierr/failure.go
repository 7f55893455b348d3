package apierr

import (
	"context"
	"errors"
	"net"
	"os"
	"syscall"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/alnah/go-apiclient/internal/problem"
)

// networkErrnos are socket errors that mean the server was never reached.
var networkErrnos = []error{
	syscall.ECONNREFUSED,
	syscall.ECONNRESET,
	syscall.ECONNABORTED,
	syscall.ENETUNREACH,
	syscall.ENETDOWN,
	syscall.EHOSTUNREACH,
}

// FailureFromError converts a transport error into a problem.Failure.
// timeout is the client timeout in effect; it only shapes the timeout
// message.
//
// Errors from go-openai clients carry the HTTP status of the response and
// become problem.Response.
func FailureFromError(err error, timeout time.Duration) problem.Failure {
	if err == nil {
		return problem.NoResponse{}
	}

	if errors.Is(err, context.Canceled) {
		return problem.NoResponse{Message: problem.MessageCanceled}
	}

	if code := openAIStatus(err); code != 0 {
		return problem.Response{StatusCode: code}
	}

	if isTimeout(err) {
		return problem.NoResponse{Message: problem.TimeoutMessage(timeout.Milliseconds())}
	}

	if isNetwork(err) {
		return problem.NoResponse{Message: problem.MessageNetworkError}
	}

	return problem.NoResponse{Message: err.Error()}
}

// Classify converts err and classifies it in one step.
// The boolean is false for cancellations.
func Classify(err error, timeout time.Duration) (problem.Problem, bool) {
	return problem.Classify(FailureFromError(err, timeout))
}

func openAIStatus(err error) int {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.HTTPStatusCode
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return reqErr.HTTPStatusCode
	}
	return 0
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, os.ErrDeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

func isNetwork(err error) bool {
	if errors.Is(err, ErrNoConnection) {
		return true
	}
	for _, errno := range networkErrnos {
		if errors.Is(err, errno) {
			return true
		}
	}
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return true
	}
	var opErr *net.OpError
	return errors.As(err, &opErr)
}
