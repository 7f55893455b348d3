package api

import (
	"context"
	"fmt"
	"net"
	"net/url"
	"time"
)

// Checker reports whether the device currently has network access.
// The client consults it before every attempt.
type Checker interface {
	Online(ctx context.Context) bool
}

// CheckerFunc adapts a function to Checker.
type CheckerFunc func(ctx context.Context) bool

// Online calls f.
func (f CheckerFunc) Online(ctx context.Context) bool {
	return f(ctx)
}

// AlwaysOnline is a Checker that never reports the device offline.
var AlwaysOnline Checker = CheckerFunc(func(context.Context) bool { return true })

const defaultDialTimeout = 3 * time.Second

// DialChecker considers the device online when a TCP connection to Addr
// succeeds within Timeout.
type DialChecker struct {
	Addr    string
	Timeout time.Duration
}

// NewDialChecker returns a DialChecker probing the host of rawURL,
// on the scheme's default port when none is given.
func NewDialChecker(rawURL string) (*DialChecker, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parse url: %w", err)
	}
	if u.Hostname() == "" {
		return nil, fmt.Errorf("url %q has no host", rawURL)
	}
	port := u.Port()
	if port == "" {
		port = "80"
		if u.Scheme == "https" {
			port = "443"
		}
	}
	return &DialChecker{Addr: net.JoinHostPort(u.Hostname(), port), Timeout: defaultDialTimeout}, nil
}

// Online dials Addr and closes the connection immediately.
func (c *DialChecker) Online(ctx context.Context) bool {
	timeout := c.Timeout
	if timeout <= 0 {
		timeout = defaultDialTimeout
	}
	d := net.Dialer{Timeout: timeout}
	conn, err := d.DialContext(ctx, "tcp", c.Addr)
	if err != nil {
		return false
	}
	_ = conn.Close()
	return true
}

// Compile-time interface verification.
var (
	_ Checker = (*DialChecker)(nil)
	_ Checker = CheckerFunc(nil)
)
