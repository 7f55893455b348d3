package apierr

import (
	"context"
	"fmt"
	"time"
)

// Default retry parameters used by the CLI when --retries is set.
const (
	DefaultBaseDelay = 500 * time.Millisecond
	DefaultMaxDelay  = 10 * time.Second
)

// RetryConfig holds the retry budget and backoff bounds of a request.
// The zero value performs a single attempt.
//
// Out-of-range values are clamped: a negative MaxRetries means no retry,
// a non-positive BaseDelay means 1ms and a non-positive MaxDelay means
// BaseDelay.
type RetryConfig struct {
	MaxRetries int
	BaseDelay  time.Duration
	MaxDelay   time.Duration

	// OnRetry, if set, is called before each retry wait with the 1-based
	// retry number, the upcoming delay and the error that triggered it.
	OnRetry func(retry int, delay time.Duration, err error)
}

// Enabled reports whether the config allows at least one retry.
func (c RetryConfig) Enabled() bool {
	return c.MaxRetries > 0
}

// backoff yields delays doubling from base up to limit.
type backoff struct {
	delay, limit time.Duration
}

func (c RetryConfig) backoff() *backoff {
	base := c.BaseDelay
	if base <= 0 {
		base = time.Millisecond
	}
	limit := c.MaxDelay
	if limit <= 0 {
		limit = base
	}
	return &backoff{delay: min(base, limit), limit: limit}
}

func (b *backoff) next() time.Duration {
	d := b.delay
	b.delay = min(b.delay*2, b.limit)
	return d
}

// sleep waits for d or until ctx is done.
func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// RetryWithBackoff calls fn until it succeeds, shouldRetry rejects its
// error, or cfg.MaxRetries retries are spent. A nil shouldRetry means
// IsTemporary.
//
// When the budget runs out the last error is wrapped with the retry
// count. With no budget at all (MaxRetries <= 0) the error of the single
// attempt is returned as is. Cancelling ctx during a wait returns
// ctx.Err().
func RetryWithBackoff[T any](
	ctx context.Context,
	cfg RetryConfig,
	fn func() (T, error),
	shouldRetry func(error) bool,
) (T, error) {
	if shouldRetry == nil {
		shouldRetry = IsTemporary
	}

	result, err := fn()
	if err == nil {
		return result, nil
	}
	var zero T
	if !cfg.Enabled() || !shouldRetry(err) {
		return zero, err
	}

	delays := cfg.backoff()
	for retry := 1; retry <= cfg.MaxRetries; retry++ {
		delay := delays.next()
		if cfg.OnRetry != nil {
			cfg.OnRetry(retry, delay, err)
		}
		if werr := sleep(ctx, delay); werr != nil {
			return zero, werr
		}

		if result, err = fn(); err == nil {
			return result, nil
		}
		if !shouldRetry(err) {
			return zero, err
		}
	}
	return zero, fmt.Errorf("max retries (%d) exceeded: %w", cfg.MaxRetries, err)
}
