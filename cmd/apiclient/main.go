package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/alnah/go-apiclient/internal/cli"
	"github.com/alnah/go-apiclient/internal/interrupt"
)

// Injected at build time via ldflags.
var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	// Load .env file if present (ignore error if missing).
	_ = godotenv.Load()

	// First Ctrl+C cancels in-flight requests, a second one exits.
	handler, ctx := interrupt.NewHandler(context.Background())

	rootCmd := newRootCmd(cli.DefaultEnv())
	err := rootCmd.ExecuteContext(ctx)
	handler.Stop()

	if err != nil {
		// Canceled requests are not reported.
		if !errors.Is(err, context.Canceled) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(exitCode(err))
	}
}

// newRootCmd builds the command tree on env.
func newRootCmd(env *cli.Env) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "apiclient",
		Short:   "Call a JSON API and classify what goes wrong",
		Version: fmt.Sprintf("%s (commit: %s)", version, commit),
		// Silence Cobra's default error/usage printing; we handle it ourselves.
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	rootCmd.PersistentFlags().Bool("debug", false, "Log every request and response problem")

	rootCmd.AddCommand(cli.ClassifyCmd(env))
	rootCmd.AddCommand(cli.GetCmd(env))
	rootCmd.AddCommand(cli.PostCmd(env))
	rootCmd.AddCommand(cli.PutCmd(env))
	rootCmd.AddCommand(cli.DeleteCmd(env))
	rootCmd.AddCommand(cli.LoginCmd(env))
	rootCmd.AddCommand(cli.LogoutCmd(env))
	rootCmd.AddCommand(cli.WhoamiCmd(env))
	rootCmd.AddCommand(cli.ConfigCmd(env))

	return rootCmd
}
