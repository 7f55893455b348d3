package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alnah/go-apiclient/internal/i18n"
	"github.com/alnah/go-apiclient/internal/lang"
	"github.com/alnah/go-apiclient/internal/problem"
)

type classifyOptions struct {
	status     int
	hasStatus  bool
	message    string
	hasMessage bool
	language   string
	json       bool
}

// classifyResult is the --json output of a classified failure.
type classifyResult struct {
	Kind      problem.Kind `json:"kind"`
	Temporary bool         `json:"temporary"`
	Message   string       `json:"message"`
}

// ClassifyCmd creates the classify command.
// The env parameter provides injectable dependencies for testing.
func ClassifyCmd(env *Env) *cobra.Command {
	var opts classifyOptions

	cmd := &cobra.Command{
		Use:   "classify",
		Short: "Classify a request failure",
		Long: `Classify a failed request into a problem kind, without sending anything.

With --status the failure is a response with that HTTP status.
With only --message it is a failure where no response arrived; the message
is matched as "Network Error", "timeout of <N>ms exceeded" or "Canceled".
Canceled failures are ignored rather than classified.`,
		Example: `  apiclient classify --status 404
  apiclient classify --message "Network Error" --lang de
  apiclient classify --message "timeout of 10000ms exceeded" --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.hasStatus = cmd.Flags().Changed("status")
			opts.hasMessage = cmd.Flags().Changed("message")
			return runClassify(env, opts)
		},
	}

	cmd.Flags().IntVarP(&opts.status, "status", "s", 0, "HTTP status code of the response")
	cmd.Flags().StringVarP(&opts.message, "message", "m", "", "Error message of the failure")
	cmd.Flags().StringVarP(&opts.language, "lang", "l", "", "Message language: en, de (default: config language)")
	cmd.Flags().BoolVar(&opts.json, "json", false, "Print the result as JSON")

	return cmd
}

// runClassify classifies the failure described by opts and prints it.
func runClassify(env *Env, opts classifyOptions) error {
	if !opts.hasStatus && !opts.hasMessage {
		return fmt.Errorf("set --status or --message: %w", ErrNothingToClassify)
	}
	if opts.hasStatus && (opts.status < 100 || opts.status > 599) {
		return fmt.Errorf("%d: %w", opts.status, ErrInvalidStatus)
	}

	language, err := classifyLanguage(env, opts.language)
	if err != nil {
		return err
	}

	var failure problem.Failure = problem.NoResponse{Message: opts.message}
	if opts.hasStatus {
		failure = problem.Response{StatusCode: opts.status, Message: opts.message}
	}

	p, ok := problem.Classify(failure)

	if opts.json {
		enc := json.NewEncoder(env.Stdout)
		if !ok {
			return enc.Encode(map[string]bool{"ignored": true})
		}
		return enc.Encode(classifyResult{
			Kind:      p.Kind,
			Temporary: p.Temporary,
			Message:   i18n.Message(language, p.Kind),
		})
	}

	if !ok {
		_, err := fmt.Fprintln(env.Stdout, "ignored")
		return err
	}
	_, err = fmt.Fprintf(env.Stdout, "%s\n%s\n", p, i18n.Message(language, p.Kind))
	return err
}

// classifyLanguage returns the --lang language, or the configured one.
// classify works offline, so a broken config only warns.
func classifyLanguage(env *Env, flag string) (lang.Language, error) {
	if flag != "" {
		return lang.Parse(flag)
	}
	cfg, err := env.ConfigLoader.Load()
	if err != nil {
		_, _ = fmt.Fprintf(env.Stderr, "Warning: failed to load config: %v\n", err)
		return lang.Fallback, nil
	}
	return contentLanguage(cfg), nil
}
