package main

import (
	"context"
	"errors"
	"strings"

	"github.com/alnah/go-apiclient/internal/apierr"
	"github.com/alnah/go-apiclient/internal/cli"
	"github.com/alnah/go-apiclient/internal/config"
	"github.com/alnah/go-apiclient/internal/interrupt"
	"github.com/alnah/go-apiclient/internal/lang"
	"github.com/alnah/go-apiclient/internal/logging"
	"github.com/alnah/go-apiclient/internal/problem"
)

// Exit codes.
const (
	ExitOK               = 0
	ExitGeneral          = 1
	ExitUsage            = 2
	ExitSetup            = 3
	ExitValidation       = 4
	ExitTemporaryProblem = 5
	ExitProblem          = 6
	ExitInterrupt        = interrupt.ExitInterrupt
)

// exitCode maps errors to exit codes.
func exitCode(err error) int {
	if err == nil {
		return ExitOK
	}

	// Check for context cancellation (interrupt).
	if errors.Is(err, context.Canceled) {
		return ExitInterrupt
	}

	// Classified request problems (ExitTemporaryProblem = 5, ExitProblem = 6).
	if kind, ok := apierr.KindOf(err); ok {
		switch kind {
		case problem.CannotConnect, problem.Timeout, problem.Unknown:
			return ExitTemporaryProblem
		default:
			return ExitProblem
		}
	}

	// Usage errors (ExitUsage = 2): Cobra flag/arg parsing errors.
	if isCobraUsageError(err) {
		return ExitUsage
	}

	// Setup errors (ExitSetup = 3).
	if errors.Is(err, cli.ErrAPIURLMissing) || errors.Is(err, config.ErrInvalidSyntax) {
		return ExitSetup
	}

	// Validation errors (ExitValidation = 4).
	if errors.Is(err, cli.ErrInvalidData) || errors.Is(err, cli.ErrInvalidQuery) ||
		errors.Is(err, cli.ErrInvalidStatus) || errors.Is(err, cli.ErrNothingToClassify) ||
		errors.Is(err, cli.ErrUnknownConfigKey) || errors.Is(err, cli.ErrCredentialsMissing) ||
		errors.Is(err, config.ErrInvalidValue) || errors.Is(err, lang.ErrInvalid) ||
		errors.Is(err, logging.ErrInvalidLevel) || errors.Is(err, apierr.ErrMethodNotSupported) {
		return ExitValidation
	}

	return ExitGeneral
}

// cobraUsageErrorPatterns contains error message substrings that indicate Cobra usage errors.
// Cobra doesn't expose typed errors, so string matching is the only reliable approach.
var cobraUsageErrorPatterns = []string{
	"required flag",             // Missing required flag
	"unknown flag",              // Flag doesn't exist
	"unknown shorthand",         // Short flag doesn't exist
	"unknown command",           // Subcommand doesn't exist
	"flag needs an argument",    // Flag provided without value
	"invalid argument",          // Invalid flag value type
	"if any flags in the group", // Mutually exclusive flag violation
	"accepts ",                  // Wrong number of arguments (e.g., "accepts 1 arg(s)")
	"requires at least",         // Too few arguments
	"requires at most",          // Too many arguments
}

// isCobraUsageError checks if an error is a Cobra usage/parsing error.
func isCobraUsageError(err error) bool {
	if err == nil {
		return false
	}
	errMsg := err.Error()
	for _, pattern := range cobraUsageErrorPatterns {
		if strings.Contains(errMsg, pattern) {
			return true
		}
	}
	return false
}
