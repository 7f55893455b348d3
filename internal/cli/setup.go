package cli

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/alnah/go-apiclient/internal/api"
	"github.com/alnah/go-apiclient/internal/apierr"
	"github.com/alnah/go-apiclient/internal/auth"
	"github.com/alnah/go-apiclient/internal/config"
	"github.com/alnah/go-apiclient/internal/i18n"
	"github.com/alnah/go-apiclient/internal/lang"
	"github.com/alnah/go-apiclient/internal/logging"
)

// EnvNoColor disables colored log output when set to any value.
const EnvNoColor = "NO_COLOR"

// debugEnabled reports whether the root --debug flag is set.
func debugEnabled(cmd *cobra.Command) bool {
	f := cmd.Flag("debug")
	return f != nil && f.Value.String() == "true"
}

// newLogger builds the stderr logger. --debug wins over the configured
// log-level.
func newLogger(env *Env, cfg config.Config, debug bool) (*slog.Logger, error) {
	level := slog.LevelDebug
	if !debug {
		var err error
		level, err = logging.ParseLevel(cfg.LogLevel)
		if err != nil {
			return nil, err
		}
	}
	return logging.New(env.Stderr, level, env.Getenv(EnvNoColor) != ""), nil
}

// newAPIClient creates a client for the configured API, authenticated with
// the saved session token. opts are applied after the defaults.
func newAPIClient(env *Env, cfg config.Config, logger *slog.Logger, opts ...api.Option) (*api.Client, error) {
	if cfg.APIURL == "" {
		return nil, fmt.Errorf("%w (set it with: apiclient config set api-url https://... or export %s)",
			ErrAPIURLMissing, config.EnvAPIURL)
	}

	base := []api.Option{
		api.WithTimeout(cfg.Timeout),
		api.WithLogger(logger),
		api.WithTokenSource(auth.NewStore(cfg.AuthToken)),
	}
	return env.ClientFactory.NewClient(cfg.APIURL, append(base, opts...)...)
}

// contentLanguage resolves the configured language, falling back to English.
func contentLanguage(cfg config.Config) lang.Language {
	return lang.Resolve(cfg.Language)
}

// reportProblem writes the localized message of a classified error,
// e.g. "Error: The requested content was not found.". An offline device
// gets an extra connection hint. Other errors, cancellations included,
// are left to the caller.
func reportProblem(env *Env, l lang.Language, err error) {
	var apiErr *apierr.Error
	if !errors.As(err, &apiErr) {
		return
	}
	_, _ = fmt.Fprintf(env.Stderr, "%s: %s\n",
		i18n.Text(l, i18n.ErrorScreenTitle), i18n.Message(l, apiErr.Problem.Kind))
	if errors.Is(err, apierr.ErrNoConnection) {
		_, _ = fmt.Fprintln(env.Stderr, i18n.Text(l, i18n.CommonInternetConnectionError))
	}
}

// reportEmpty tells the user a read returned no content.
func reportEmpty(env *Env, l lang.Language) {
	_, _ = fmt.Fprintln(env.Stderr, i18n.Text(l, i18n.EmptyStateContent))
}
