// Package api is the HTTP client of the application backend.
//
// Every failed call is classified with package problem and returned as an
// *apierr.Error, except cancellations, which are returned as the bare
// context error and never logged.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"

	"github.com/alnah/go-apiclient/internal/apierr"
	"github.com/alnah/go-apiclient/internal/logging"
	"github.com/alnah/go-apiclient/internal/problem"
)

// DefaultTimeout bounds each request attempt.
const DefaultTimeout = 10 * time.Second

// maxLoggedBody caps the response body echoed in logs.
const maxLoggedBody = 512

// DefaultMaxResponseBytes caps the response body read per request.
const DefaultMaxResponseBytes = 10 << 20

// ErrInvalidParams indicates request params of an unsupported type.
var ErrInvalidParams = errors.New("invalid request params")

// ErrResponseTooLarge indicates a successful response whose body exceeds
// the client's size limit.
var ErrResponseTooLarge = errors.New("response body too large")

// Doer executes HTTP requests. *http.Client implements it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// TokenSource provides the bearer token for outgoing requests.
// An empty token sends no Authorization header.
type TokenSource interface {
	Token() string
}

// TokenFunc adapts a function to TokenSource.
type TokenFunc func() string

// Token calls f.
func (f TokenFunc) Token() string { return f() }

// Client calls the backend API.
type Client struct {
	baseURL    *url.URL
	httpClient Doer
	timeout    time.Duration
	tokens     TokenSource
	logger     *slog.Logger
	checker    Checker
	retry      apierr.RetryConfig
	metrics    *Metrics
	requestID  func() string
	maxBody    int64
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout sets the per-attempt timeout. Non-positive values are ignored.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithHTTPClient sets the HTTP client (for testing).
func WithHTTPClient(d Doer) Option {
	return func(c *Client) {
		c.httpClient = d
	}
}

// WithTokenSource sets the bearer token provider.
func WithTokenSource(ts TokenSource) Option {
	return func(c *Client) {
		c.tokens = ts
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithConnectivity sets the network checker consulted before each attempt.
func WithConnectivity(ch Checker) Option {
	return func(c *Client) {
		if ch != nil {
			c.checker = ch
		}
	}
}

// WithRetry enables retries of temporary problems.
func WithRetry(cfg apierr.RetryConfig) Option {
	return func(c *Client) {
		c.retry = cfg
	}
}

// WithMetrics records request and problem metrics.
func WithMetrics(m *Metrics) Option {
	return func(c *Client) {
		c.metrics = m
	}
}

// WithRequestID sets the X-Request-ID generator.
func WithRequestID(fn func() string) Option {
	return func(c *Client) {
		if fn != nil {
			c.requestID = fn
		}
	}
}

// WithMaxResponseBytes caps the response body read per request.
// Non-positive values keep DefaultMaxResponseBytes.
func WithMaxResponseBytes(n int64) Option {
	return func(c *Client) {
		if n > 0 {
			c.maxBody = n
		}
	}
}

// New creates a Client for the API rooted at baseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("base url %q must be absolute", baseURL)
	}

	c := &Client{
		baseURL:    u,
		httpClient: http.DefaultClient,
		timeout:    DefaultTimeout,
		tokens:     TokenFunc(func() string { return "" }),
		logger:     logging.Discard(),
		checker:    AlwaysOnline,
		requestID:  uuid.NewString,
		maxBody:    DefaultMaxResponseBytes,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Timeout returns the per-attempt timeout.
func (c *Client) Timeout() time.Duration {
	return c.timeout
}

// Get sends a GET with params as query string and decodes the response into out.
func (c *Client) Get(ctx context.Context, path string, params, out any) error {
	return c.Do(ctx, GET, path, params, out)
}

// Post sends body as JSON and decodes the response into out.
func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, POST, path, body, out)
}

// Put sends body as JSON and decodes the response into out.
func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, PUT, path, body, out)
}

// Delete sends a DELETE with params as query string.
func (c *Client) Delete(ctx context.Context, path string, params, out any) error {
	return c.Do(ctx, DELETE, path, params, out)
}

// Do sends a request and decodes a successful JSON response into out.
// GET and DELETE send params as query string (url.Values, map[string]string
// or map[string]any); POST and PUT send params as JSON, {} when nil.
// out may be nil to discard the response.
//
// Temporary problems are retried when the client was built WithRetry.
func (c *Client) Do(ctx context.Context, method Method, path string, params, out any) error {
	if !c.retry.Enabled() {
		return c.attempt(ctx, method, path, params, out)
	}

	cfg := c.retry
	onRetry := cfg.OnRetry
	cfg.OnRetry = func(retry int, delay time.Duration, err error) {
		c.logger.Warn("Retrying request",
			"method", method, "path", path, "retry", retry, "delay", delay, logging.Err(err))
		if onRetry != nil {
			onRetry(retry, delay, err)
		}
	}

	_, err := apierr.RetryWithBackoff(ctx, cfg, func() (struct{}, error) {
		return struct{}{}, c.attempt(ctx, method, path, params, out)
	}, apierr.IsTemporary)
	return err
}

// attempt performs a single request.
func (c *Client) attempt(ctx context.Context, method Method, path string, params, out any) error {
	target := c.baseURL.JoinPath(path).String()

	if !c.checker.Online(ctx) {
		c.logger.Error("Network Error", "method", method, "url", target, logging.Err(apierr.ErrNoConnection))
		return c.fail(method, target, problem.NoResponse{Message: problem.MessageNetworkError}, 0, nil, apierr.ErrNoConnection)
	}

	if !method.supported() {
		return fmt.Errorf("%s: %w", method, apierr.ErrMethodNotSupported)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := c.newRequest(ctx, method, path, params)
	if err != nil {
		return err
	}
	id := req.Header.Get("X-Request-ID")

	c.logger.Debug("Request", "method", method, "url", target, "request_id", id)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return c.transportError(ctx, method, target, id, start, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBody+1))
	c.metrics.observeRequest(method, resp.StatusCode, time.Since(start))
	if err != nil {
		return c.transportError(ctx, method, target, id, time.Time{}, err)
	}

	oversized := int64(len(body)) > c.maxBody
	if oversized {
		body = body[:c.maxBody]
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logStatus(method, target, id, resp.StatusCode, body)
		return c.fail(method, target, problem.Response{StatusCode: resp.StatusCode}, resp.StatusCode, body, nil)
	}

	if oversized {
		return fmt.Errorf("%s %s: %w (limit %d bytes)", method, target, ErrResponseTooLarge, c.maxBody)
	}
	if out == nil || len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode %s %s response: %w", method, target, err)
	}
	return nil
}

// transportError classifies an error raised before a complete response
// was read. start is zero when the request was already observed.
func (c *Client) transportError(ctx context.Context, method Method, target, id string, start time.Time, err error) error {
	if !start.IsZero() {
		c.metrics.observeRequest(method, 0, time.Since(start))
	}

	failure := apierr.FailureFromError(err, c.timeout)
	p, ok := problem.Classify(failure)
	if !ok {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return context.Canceled
	}

	c.logger.Error("Network Error", "method", method, "url", target, "request_id", id, logging.Err(err))
	c.metrics.observeProblem(p)
	return &apierr.Error{Problem: p, Method: method.String(), URL: target, Err: err}
}

// fail builds the classified error for a failure that is not a cancellation.
func (c *Client) fail(method Method, target string, f problem.Failure, code int, body []byte, cause error) error {
	p, _ := problem.Classify(f)
	c.metrics.observeProblem(p)
	return &apierr.Error{
		Problem:    p,
		Method:     method.String(),
		URL:        target,
		StatusCode: code,
		Body:       body,
		Err:        cause,
	}
}

// statusMessages are the log messages of the response statuses called out
// individually.
var statusMessages = map[int]string{
	http.StatusBadRequest:          "Bad Request",
	http.StatusUnauthorized:        "Unauthorized",
	http.StatusNotFound:            "Not Found",
	http.StatusInternalServerError: "Server Error",
}

func (c *Client) logStatus(method Method, target, id string, code int, body []byte) {
	msg, ok := statusMessages[code]
	if !ok {
		msg = "Unexpected Error"
	}
	if len(body) > maxLoggedBody {
		body = body[:maxLoggedBody]
	}
	c.logger.Error(msg, "method", method, "url", target, "status", code, "request_id", id, "body", string(body))
}

func (c *Client) newRequest(ctx context.Context, method Method, path string, params any) (*http.Request, error) {
	u := c.baseURL.JoinPath(path)

	var body io.Reader
	if method.hasBody() {
		if params == nil {
			params = struct{}{}
		}
		b, err := json.Marshal(params)
		if err != nil {
			return nil, fmt.Errorf("encode %s %s body: %w", method, u, err)
		}
		body = bytes.NewReader(b)
	} else {
		q, err := encodeQuery(params)
		if err != nil {
			return nil, err
		}
		if len(q) > 0 {
			u.RawQuery = q.Encode()
		}
	}

	req, err := http.NewRequestWithContext(ctx, method.String(), u.String(), body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", c.requestID())
	if token := c.tokens.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req, nil
}

func encodeQuery(params any) (url.Values, error) {
	switch p := params.(type) {
	case nil:
		return nil, nil
	case url.Values:
		return p, nil
	case map[string]string:
		q := make(url.Values, len(p))
		for k, v := range p {
			q.Set(k, v)
		}
		return q, nil
	case map[string]any:
		q := make(url.Values, len(p))
		for k, v := range p {
			q.Set(k, fmt.Sprint(v))
		}
		return q, nil
	default:
		return nil, fmt.Errorf("%T: %w", params, ErrInvalidParams)
	}
}
