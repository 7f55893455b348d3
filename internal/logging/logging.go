// Package logging builds the structured logger shared by the client and
// the CLI.
package logging

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/lmittmann/tint"
)

// ErrInvalidLevel indicates a log level name that is not recognized.
var ErrInvalidLevel = errors.New("invalid log level")

// ParseLevel parses "debug", "info", "warn" or "error" (case-insensitive).
// An empty string yields LevelWarn, the CLI default.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return slog.LevelWarn, nil
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("%q (use debug, info, warn, error): %w", s, ErrInvalidLevel)
	}
}

// New returns a logger writing human-readable, colorized lines to w.
// Colors are disabled when noColor is true, e.g. when w is not a terminal.
func New(w io.Writer, level slog.Level, noColor bool) *slog.Logger {
	return slog.New(tint.NewHandler(w, &tint.Options{
		Level:      level,
		TimeFormat: time.TimeOnly,
		NoColor:    noColor,
	}))
}

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// Err wraps an error as a tint error attribute, rendered in red.
func Err(err error) slog.Attr {
	return tint.Err(err)
}
