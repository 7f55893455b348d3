package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alnah/go-apiclient/internal/api"
	"github.com/alnah/go-apiclient/internal/auth"
)

// EnvPassword supplies the login password when --password is omitted.
const EnvPassword = "APICLIENT_PASSWORD"

type loginOptions struct {
	email    string
	password string
	debug    bool
}

// LoginCmd creates the login command.
// The env parameter provides injectable dependencies for testing.
func LoginCmd(env *Env) *cobra.Command {
	var opts loginOptions

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and save the session token",
		Long: `Exchange email and password for a session token.

The token is saved in the config file and sent as a bearer token by every
later request. Spaces are removed from email and password.
The password can also be given with the ` + EnvPassword + ` environment variable.`,
		Example: `  apiclient login --email ada@example.com --password secret
  APICLIENT_PASSWORD=secret apiclient login -e ada@example.com`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.debug = debugEnabled(cmd)
			return runLogin(cmd.Context(), env, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.email, "email", "e", "", "Account email")
	cmd.Flags().StringVarP(&opts.password, "password", "p", "", "Account password (env: "+EnvPassword+")")

	return cmd
}

// LogoutCmd creates the logout command.
func LogoutCmd(env *Env) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the saved session token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLogout(env)
		},
	}
}

// WhoamiCmd creates the whoami command.
func WhoamiCmd(env *Env) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show whether a session token is saved",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWhoami(env)
		},
	}
}

// runLogin logs in and saves the session.
func runLogin(ctx context.Context, env *Env, opts loginOptions) error {
	if opts.password == "" {
		opts.password = env.Getenv(EnvPassword)
	}
	if opts.email == "" || opts.password == "" {
		return ErrCredentialsMissing
	}

	cfg, err := env.ConfigLoader.Load()
	if err != nil {
		return err
	}
	logger, err := newLogger(env, cfg, opts.debug)
	if err != nil {
		return err
	}

	// The previous token, if any, is not sent with the login request.
	client, err := newAPIClient(env, cfg, logger, api.WithTokenSource(auth.NewStore("")))
	if err != nil {
		return err
	}

	store := auth.NewStore("")
	svc := auth.NewService(client, store, env.Session)
	if _, err := svc.Login(ctx, auth.LoginParams{Email: opts.email, Password: opts.password}); err != nil {
		reportProblem(env, contentLanguage(cfg), err)
		return err
	}

	_, err = fmt.Fprintf(env.Stderr, "Logged in as %s\n", store.Email())
	return err
}

// runLogout clears the saved session.
func runLogout(env *Env) error {
	if err := auth.NewService(nil, auth.NewStore(""), env.Session).Logout(); err != nil {
		return err
	}
	_, err := fmt.Fprintln(env.Stderr, "Logged out.")
	return err
}

// runWhoami reports the saved session.
func runWhoami(env *Env) error {
	token, err := env.Session.Load()
	if err != nil {
		return err
	}
	store := auth.NewStore(token)
	if !store.IsAuthenticated() {
		_, err = fmt.Fprintln(env.Stdout, "Not logged in.")
		return err
	}
	_, err = fmt.Fprintf(env.Stdout, "Logged in (token %s)\n", maskToken(store.Token()))
	return err
}
