// Package interrupt turns SIGINT/SIGTERM into context cancellation.
//
// The first signal cancels the context, so in-flight requests stop and are
// reported as canceled rather than as problems. A second signal within
// the abort window exits immediately.
package interrupt

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"
)

// ExitInterrupt is the exit code for interrupt (130 = 128 + SIGINT).
const ExitInterrupt = 130

// abortWindow is the time window for a second signal to force an exit.
const abortWindow = 2 * time.Second

const abortMessage = "\nAborted."

// Handler cancels a context on the first signal and exits on a quick
// second one.
type Handler struct {
	mu          sync.Mutex
	interrupted time.Time
	stopped     bool
	cancel      context.CancelFunc
	done        chan struct{}
	stopSignals func()

	exit   func(int)
	now    func() time.Time
	stderr io.Writer
}

// Options holds injectable dependencies for testing.
type Options struct {
	SigCh  <-chan os.Signal
	Exit   func(int)
	Now    func() time.Time
	Stderr io.Writer
}

// NewHandler listens for SIGINT and SIGTERM and returns a context that is
// canceled on the first one.
func NewHandler(parent context.Context) (*Handler, context.Context) {
	sigCh := make(chan os.Signal, 2)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	h, ctx := NewHandlerWithOptions(parent, Options{SigCh: sigCh})
	h.stopSignals = func() { signal.Stop(sigCh) }
	return h, ctx
}

// NewHandlerWithOptions creates a handler reading signals from opts.SigCh.
func NewHandlerWithOptions(parent context.Context, opts Options) (*Handler, context.Context) {
	ctx, cancel := context.WithCancel(parent)

	h := &Handler{
		cancel:      cancel,
		done:        make(chan struct{}),
		stopSignals: func() {},
		exit:        opts.Exit,
		now:         opts.Now,
		stderr:      opts.Stderr,
	}
	if h.exit == nil {
		h.exit = os.Exit
	}
	if h.now == nil {
		h.now = time.Now
	}
	if h.stderr == nil {
		h.stderr = os.Stderr
	}

	if opts.SigCh != nil {
		go h.listen(opts.SigCh)
	}
	return h, ctx
}

func (h *Handler) listen(sigCh <-chan os.Signal) {
	for {
		select {
		case <-h.done:
			return
		case _, ok := <-sigCh:
			if !ok {
				return
			}
			if h.handle() {
				return
			}
		}
	}
}

// handle processes one signal and reports whether the handler exited.
func (h *Handler) handle() bool {
	h.mu.Lock()
	if h.stopped {
		h.mu.Unlock()
		return true
	}
	now := h.now()

	if h.interrupted.IsZero() {
		h.interrupted = now
		h.cancel()
		h.mu.Unlock()
		return false
	}

	if now.Sub(h.interrupted) > abortWindow {
		// Too late to count as a double press; restart the window.
		h.interrupted = now
		h.mu.Unlock()
		return false
	}
	h.mu.Unlock()

	_, _ = fmt.Fprintln(h.stderr, abortMessage)
	h.exit(ExitInterrupt)
	return true
}

// Interrupted reports whether at least one signal was received.
func (h *Handler) Interrupted() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return !h.interrupted.IsZero()
}

// Stop releases the signal subscription. It is safe to call more than once.
func (h *Handler) Stop() {
	h.mu.Lock()
	if h.stopped {
		h.mu.Unlock()
		return
	}
	h.stopped = true
	h.mu.Unlock()

	h.stopSignals()
	h.cancel()
	close(h.done)
}
