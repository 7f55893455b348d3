package cli

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/alnah/go-apiclient/internal/config"
	"github.com/alnah/go-apiclient/internal/lang"
	"github.com/alnah/go-apiclient/internal/logging"
)

// validConfigKeys lists all configuration keys managed by "config".
// The session token is managed by login and logout.
var validConfigKeys = []string{
	config.KeyAPIURL,
	config.KeyLanguage,
	config.KeyLogLevel,
	config.KeyTimeout,
}

// ConfigCmd creates the config command with subcommands.
// The env parameter provides injectable dependencies for testing.
func ConfigCmd(env *Env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration settings",
		Long: `Manage persistent configuration settings.

Configuration is stored in ~/.config/go-apiclient/config.
Settings can also be overridden via environment variables.

Supported settings:
  api-url     Base URL of the API (env: APICLIENT_API_URL)
  timeout     Request timeout, e.g. 15s or 15000 (env: APICLIENT_TIMEOUT)
  language    Message language: en, de (env: APICLIENT_LANGUAGE)
  log-level   debug, info, warn, error (env: APICLIENT_LOG_LEVEL)`,
		Example: `  apiclient config set api-url https://api.example.com/v1
  apiclient config get timeout
  apiclient config list`,
	}

	cmd.AddCommand(configSetCmd(env))
	cmd.AddCommand(configGetCmd(env))
	cmd.AddCommand(configListCmd(env))

	return cmd
}

// configSetCmd creates the "config set" subcommand.
func configSetCmd(env *Env) *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a configuration value",
		Long: `Set a configuration value.

Values are validated and stored in canonical form.`,
		Example: `  apiclient config set timeout 30s
  apiclient config set language de`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigSet(env, args[0], args[1])
		},
	}
}

// configGetCmd creates the "config get" subcommand.
func configGetCmd(env *Env) *cobra.Command {
	return &cobra.Command{
		Use:   "get <key>",
		Short: "Get a configuration value",
		Long: `Get a configuration value.

Prints the value to stdout, or nothing if not set.`,
		Example: `  apiclient config get api-url`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigGet(env, args[0])
		},
	}
}

// configListCmd creates the "config list" subcommand.
func configListCmd(env *Env) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all configuration values",
		Long: `List all configuration values.

Shows both values from the config file and environment variable overrides.`,
		Example: `  apiclient config list`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigList(env)
		},
	}
}

// normalizeConfigValue validates value for key and returns the form to store.
func normalizeConfigValue(key, value string) (string, error) {
	value = strings.TrimSpace(value)
	switch key {
	case config.KeyAPIURL:
		if err := config.ValidateAPIURL(value); err != nil {
			return "", err
		}
		return strings.TrimRight(value, "/"), nil
	case config.KeyTimeout:
		d, err := config.ParseTimeout(value)
		if err != nil {
			return "", err
		}
		return d.String(), nil
	case config.KeyLanguage:
		l, err := lang.Parse(value)
		if err != nil {
			return "", err
		}
		return l.Code(), nil
	case config.KeyLogLevel:
		if _, err := logging.ParseLevel(value); err != nil {
			return "", err
		}
		return strings.ToLower(value), nil
	default:
		return "", unknownKeyError(key)
	}
}

// runConfigSet handles the "config set" command.
func runConfigSet(env *Env, key, value string) error {
	if !isValidConfigKey(key) {
		return unknownKeyError(key)
	}

	value, err := normalizeConfigValue(key, value)
	if err != nil {
		return err
	}

	if err := config.Save(key, value); err != nil {
		return err
	}

	_, _ = fmt.Fprintf(env.Stderr, "Set %s = %s\n", key, value)
	return nil
}

// runConfigGet handles the "config get" command.
func runConfigGet(env *Env, key string) error {
	if !isValidConfigKey(key) {
		return unknownKeyError(key)
	}

	value, err := config.Get(key)
	if err != nil {
		return err
	}

	if value == "" {
		if name, ok := config.EnvFor(key); ok {
			value = env.Getenv(name)
		}
	}

	if value != "" {
		_, _ = fmt.Fprintln(env.Stdout, value)
	}

	return nil
}

// runConfigList handles the "config list" command.
func runConfigList(env *Env) error {
	data, err := config.List()
	if err != nil {
		return err
	}

	var lines []string
	for _, key := range validConfigKeys {
		if v := data[key]; v != "" {
			lines = append(lines, fmt.Sprintf("%s=%s", key, v))
			continue
		}
		if name, ok := config.EnvFor(key); ok {
			if v := env.Getenv(name); v != "" {
				lines = append(lines, fmt.Sprintf("%s=%s (from env)", key, v))
			}
		}
	}

	if len(lines) == 0 {
		_, _ = fmt.Fprintln(env.Stdout, "No configuration set.")
		_, _ = fmt.Fprintln(env.Stdout, "\nAvailable settings:")
		for _, key := range validConfigKeys {
			_, _ = fmt.Fprintf(env.Stdout, "  %s\n", key)
		}
		return nil
	}

	for _, line := range lines {
		_, _ = fmt.Fprintln(env.Stdout, line)
	}
	return nil
}

// isValidConfigKey checks if a key is a valid configuration key.
func isValidConfigKey(key string) bool {
	return slices.Contains(validConfigKeys, key)
}

func unknownKeyError(key string) error {
	return fmt.Errorf("%q (valid keys: %s): %w", key, strings.Join(validConfigKeys, ", "), ErrUnknownConfigKey)
}
