package cli

import (
	"io"
	"os"

	"github.com/alnah/go-apiclient/internal/api"
	"github.com/alnah/go-apiclient/internal/auth"
	"github.com/alnah/go-apiclient/internal/config"
)

// Env holds injectable dependencies for CLI commands.
// This is the central injection point for testing CLI commands in isolation.
//
// All fields have sensible defaults via DefaultEnv(). Tests can override
// specific fields using the With* options or by creating a custom Env.
type Env struct {
	// I/O and environment
	Stdout io.Writer
	Stderr io.Writer
	Getenv func(string) string

	// Factories and stores
	ConfigLoader  ConfigLoader
	ClientFactory ClientFactory
	Session       auth.SessionStore
}

// ConfigLoader loads and provides access to configuration.
type ConfigLoader interface {
	Load() (config.Config, error)
}

// ClientFactory creates API clients for a base URL.
type ClientFactory interface {
	NewClient(baseURL string, opts ...api.Option) (*api.Client, error)
}

// EnvOption configures an Env.
type EnvOption func(*Env)

// WithStdout sets the stdout writer.
func WithStdout(w io.Writer) EnvOption {
	return func(e *Env) {
		e.Stdout = w
	}
}

// WithStderr sets the stderr writer.
func WithStderr(w io.Writer) EnvOption {
	return func(e *Env) {
		e.Stderr = w
	}
}

// WithGetenv sets the environment variable getter.
func WithGetenv(fn func(string) string) EnvOption {
	return func(e *Env) {
		e.Getenv = fn
	}
}

// WithConfigLoader sets the config loader.
func WithConfigLoader(l ConfigLoader) EnvOption {
	return func(e *Env) {
		e.ConfigLoader = l
	}
}

// WithClientFactory sets the API client factory.
func WithClientFactory(f ClientFactory) EnvOption {
	return func(e *Env) {
		e.ClientFactory = f
	}
}

// WithSession sets the session store.
func WithSession(s auth.SessionStore) EnvOption {
	return func(e *Env) {
		e.Session = s
	}
}

// DefaultEnv returns an Env with production defaults.
func DefaultEnv() *Env {
	return &Env{
		Stdout:        os.Stdout,
		Stderr:        os.Stderr,
		Getenv:        os.Getenv,
		ConfigLoader:  &defaultConfigLoader{},
		ClientFactory: &defaultClientFactory{},
		Session:       auth.ConfigSession{},
	}
}

// NewEnv creates an Env with the given options applied to defaults.
func NewEnv(opts ...EnvOption) *Env {
	env := DefaultEnv()
	for _, opt := range opts {
		opt(env)
	}
	return env
}

// ---------------------------------------------------------------------------
// Default implementations - delegate to real packages
// ---------------------------------------------------------------------------

// defaultConfigLoader implements ConfigLoader using the config package.
type defaultConfigLoader struct{}

func (defaultConfigLoader) Load() (config.Config, error) {
	return config.Load()
}

// defaultClientFactory builds clients that dial the API host before each
// attempt, so an unreachable network is reported as cannot-connect
// without waiting for the request timeout.
type defaultClientFactory struct{}

func (defaultClientFactory) NewClient(baseURL string, opts ...api.Option) (*api.Client, error) {
	checker, err := api.NewDialChecker(baseURL)
	if err != nil {
		return nil, err
	}
	return api.New(baseURL, append([]api.Option{api.WithConnectivity(checker)}, opts...)...)
}

// Compile-time interface verification.
var (
	_ ConfigLoader  = (*defaultConfigLoader)(nil)
	_ ClientFactory = (*defaultClientFactory)(nil)
)
