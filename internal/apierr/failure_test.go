package apierr_test

// Coverage Notes:
// - Each conversion rule of FailureFromError is tested with a real Go error shape.
// - go-openai errors are built directly; no network is used.
// - Classify is tested end to end on a few representative errors.

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"syscall"
	"testing"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/alnah/go-apiclient/internal/apierr"
	"github.com/alnah/go-apiclient/internal/problem"
)

// timeoutError is a net.Error that reports a timeout.
type timeoutError struct{}

func (timeoutError) Error() string   { return "i/o timeout" }
func (timeoutError) Timeout() bool   { return true }
func (timeoutError) Temporary() bool { return true }

var _ net.Error = timeoutError{}

func TestFailureFromError(t *testing.T) {
	t.Parallel()

	const timeout = 10 * time.Second

	tests := []struct {
		name string
		err  error
		want problem.Failure
	}{
		{
			name: "nil",
			err:  nil,
			want: problem.NoResponse{},
		},
		{
			name: "context canceled",
			err:  context.Canceled,
			want: problem.NoResponse{Message: "Canceled"},
		},
		{
			name: "url error wrapping canceled",
			err:  &url.Error{Op: "Get", URL: "http://x", Err: context.Canceled},
			want: problem.NoResponse{Message: "Canceled"},
		},
		{
			name: "deadline exceeded",
			err:  context.DeadlineExceeded,
			want: problem.NoResponse{Message: "timeout of 10000ms exceeded"},
		},
		{
			name: "os deadline exceeded",
			err:  fmt.Errorf("read: %w", os.ErrDeadlineExceeded),
			want: problem.NoResponse{Message: "timeout of 10000ms exceeded"},
		},
		{
			name: "net timeout",
			err:  &url.Error{Op: "Get", URL: "http://x", Err: timeoutError{}},
			want: problem.NoResponse{Message: "timeout of 10000ms exceeded"},
		},
		{
			name: "connection refused",
			err:  &net.OpError{Op: "dial", Net: "tcp", Err: os.NewSyscallError("connect", syscall.ECONNREFUSED)},
			want: problem.NoResponse{Message: "Network Error"},
		},
		{
			name: "bare connection reset",
			err:  fmt.Errorf("read: %w", syscall.ECONNRESET),
			want: problem.NoResponse{Message: "Network Error"},
		},
		{
			name: "dns failure",
			err:  &url.Error{Op: "Get", URL: "http://nowhere.invalid", Err: &net.DNSError{Err: "no such host", Name: "nowhere.invalid", IsNotFound: true}},
			want: problem.NoResponse{Message: "Network Error"},
		},
		{
			name: "offline device",
			err:  apierr.ErrNoConnection,
			want: problem.NoResponse{Message: "Network Error"},
		},
		{
			name: "openai api error",
			err:  &openai.APIError{HTTPStatusCode: 401, Message: "invalid api key"},
			want: problem.Response{StatusCode: 401},
		},
		{
			name: "openai request error",
			err:  fmt.Errorf("chat: %w", &openai.RequestError{HTTPStatusCode: 503, Err: errors.New("unavailable")}),
			want: problem.Response{StatusCode: 503},
		},
		{
			name: "other error keeps message",
			err:  errors.New("unexpected EOF"),
			want: problem.NoResponse{Message: "unexpected EOF"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := apierr.FailureFromError(tt.err, timeout)
			if got != tt.want {
				t.Errorf("FailureFromError(%v) = %#v, want %#v", tt.err, got, tt.want)
			}
		})
	}
}

func TestClassify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		err    error
		want   problem.Problem
		wantOK bool
	}{
		{"canceled is ignored", context.Canceled, problem.Problem{}, false},
		{"timeout", context.DeadlineExceeded, problem.Problem{Kind: problem.Timeout, Temporary: true}, true},
		{"refused", syscall.ECONNREFUSED, problem.Problem{Kind: problem.CannotConnect, Temporary: true}, true},
		{"openai forbidden", &openai.APIError{HTTPStatusCode: 403}, problem.Problem{Kind: problem.Forbidden}, true},
		{"unknown", errors.New("tls: bad certificate"), problem.Problem{Kind: problem.Unknown, Temporary: true}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, ok := apierr.Classify(tt.err, time.Second)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("Classify(%v) = (%+v, %v), want (%+v, %v)", tt.err, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}
