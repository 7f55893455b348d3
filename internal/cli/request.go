package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/alnah/go-apiclient/internal/api"
	"github.com/alnah/go-apiclient/internal/apierr"
)

// requestOptions holds the flags of the get, post, put and delete commands.
type requestOptions struct {
	method   api.Method
	paths    []string
	data     string
	query    []string
	parallel int
	retries  int
	metrics  bool
	debug    bool
}

// GetCmd creates the get command.
// The env parameter provides injectable dependencies for testing.
func GetCmd(env *Env) *cobra.Command {
	var opts requestOptions

	cmd := &cobra.Command{
		Use:   "get <path>...",
		Short: "Fetch one or more resources",
		Long: `Send GET requests to the configured API and print the JSON responses.

Several paths are fetched concurrently (--parallel) and printed in the order given.
Failures are classified (cannot-connect, timeout, unauthorized, forbidden,
not-found, server, rejected, unknown) and reported in the configured language.`,
		Example: `  apiclient get /users/42
  apiclient get /users -q page=2 -q limit=50
  apiclient get /users/1 /users/2 /users/3 --parallel 3
  apiclient get /health --retries 3`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.method = api.GET
			opts.paths = args
			opts.debug = debugEnabled(cmd)
			return runRequest(cmd.Context(), env, opts)
		},
	}

	cmd.Flags().StringArrayVarP(&opts.query, "query", "q", nil, "Query parameter as key=value (repeatable)")
	cmd.Flags().IntVarP(&opts.parallel, "parallel", "p", api.MaxRecommendedParallel, "Max concurrent requests for several paths (1-10)")
	addCommonRequestFlags(cmd, &opts)

	return cmd
}

// PostCmd creates the post command.
func PostCmd(env *Env) *cobra.Command {
	return bodyCmd(env, api.POST, "post", "Create a resource",
		`  apiclient post /users --data '{"name":"Ada"}'`)
}

// PutCmd creates the put command.
func PutCmd(env *Env) *cobra.Command {
	return bodyCmd(env, api.PUT, "put", "Replace a resource",
		`  apiclient put /users/42 --data '{"name":"Ada Lovelace"}'`)
}

// DeleteCmd creates the delete command.
func DeleteCmd(env *Env) *cobra.Command {
	var opts requestOptions

	cmd := &cobra.Command{
		Use:     "delete <path>",
		Short:   "Delete a resource",
		Example: `  apiclient delete /users/42`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.method = api.DELETE
			opts.paths = args
			opts.debug = debugEnabled(cmd)
			return runRequest(cmd.Context(), env, opts)
		},
	}

	cmd.Flags().StringArrayVarP(&opts.query, "query", "q", nil, "Query parameter as key=value (repeatable)")
	addCommonRequestFlags(cmd, &opts)

	return cmd
}

// bodyCmd creates a command sending a JSON body.
func bodyCmd(env *Env, method api.Method, use, short, example string) *cobra.Command {
	var opts requestOptions

	cmd := &cobra.Command{
		Use:   use + " <path>",
		Short: short,
		Long: fmt.Sprintf(`Send a %s request with a JSON body and print the JSON response.

Without --data an empty object {} is sent.`, method),
		Example: example,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.method = method
			opts.paths = args
			opts.debug = debugEnabled(cmd)
			return runRequest(cmd.Context(), env, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.data, "data", "d", "", "JSON request body")
	addCommonRequestFlags(cmd, &opts)

	return cmd
}

func addCommonRequestFlags(cmd *cobra.Command, opts *requestOptions) {
	cmd.Flags().IntVarP(&opts.retries, "retries", "r", 0, "Retries for temporary problems (cannot-connect, timeout, unknown)")
	cmd.Flags().BoolVar(&opts.metrics, "metrics", false, "Print request metrics to stderr when done")
}

// clampParallel constrains parallel request count to valid range [1, MaxRecommendedParallel].
func clampParallel(n int) int {
	if n < 1 {
		return 1
	}
	if n > api.MaxRecommendedParallel {
		return api.MaxRecommendedParallel
	}
	return n
}

// parseQuery converts key=value pairs to url.Values.
func parseQuery(pairs []string) (url.Values, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	q := make(url.Values, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("%q (use key=value): %w", pair, ErrInvalidQuery)
		}
		q.Add(key, value)
	}
	return q, nil
}

// parseBody validates the --data flag. Empty data sends {}.
func parseBody(data string) (any, error) {
	if strings.TrimSpace(data) == "" {
		return nil, nil
	}
	if !json.Valid([]byte(data)) {
		return nil, fmt.Errorf("--data: %w", ErrInvalidData)
	}
	return json.RawMessage(data), nil
}

// runRequest executes an API request command.
// Validation order: query -> body -> config -> log level -> api-url
func runRequest(ctx context.Context, env *Env, opts requestOptions) (err error) {
	// === VALIDATION (fail-fast) ===

	query, err := parseQuery(opts.query)
	if err != nil {
		return err
	}
	if query != nil && len(opts.paths) > 1 {
		return fmt.Errorf("--query applies to a single path: %w", ErrInvalidQuery)
	}

	var params any
	if query != nil {
		params = query
	}
	if opts.method == api.POST || opts.method == api.PUT {
		if params, err = parseBody(opts.data); err != nil {
			return err
		}
	}

	cfg, err := env.ConfigLoader.Load()
	if err != nil {
		return err
	}

	logger, err := newLogger(env, cfg, opts.debug)
	if err != nil {
		return err
	}

	// === SETUP ===

	clientOpts := []api.Option{}
	if opts.retries > 0 {
		clientOpts = append(clientOpts, api.WithRetry(apierr.RetryConfig{
			MaxRetries: opts.retries,
			BaseDelay:  apierr.DefaultBaseDelay,
			MaxDelay:   apierr.DefaultMaxDelay,
		}))
	}
	if opts.metrics {
		reg := prometheus.NewRegistry()
		clientOpts = append(clientOpts, api.WithMetrics(api.NewMetrics(reg)))
		defer func() {
			if werr := writeMetrics(env.Stderr, reg); werr != nil && err == nil {
				err = werr
			}
		}()
	}

	client, err := newAPIClient(env, cfg, logger, clientOpts...)
	if err != nil {
		return err
	}

	// === EXECUTION ===

	language := contentLanguage(cfg)

	if len(opts.paths) > 1 {
		results, err := api.GetAll[json.RawMessage](ctx, client, opts.paths, clampParallel(opts.parallel))
		if err != nil {
			reportProblem(env, language, err)
			return err
		}
		for _, raw := range results {
			if err := writeJSON(env.Stdout, raw); err != nil {
				return err
			}
		}
		return nil
	}

	var raw json.RawMessage
	if err := client.Do(ctx, opts.method, opts.paths[0], params, &raw); err != nil {
		reportProblem(env, language, err)
		return err
	}
	if opts.method == api.GET && isEmptyJSON(raw) {
		reportEmpty(env, language)
		return nil
	}
	return writeJSON(env.Stdout, raw)
}
