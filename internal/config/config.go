package config

import (
	"bufio"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"
)

// Config keys.
const (
	KeyAPIURL    = "api-url"
	KeyTimeout   = "timeout"
	KeyLanguage  = "language"
	KeyLogLevel  = "log-level"
	KeyAuthToken = "auth-token"
)

// Environment variable fallbacks.
const (
	EnvAPIURL   = "APICLIENT_API_URL"
	EnvTimeout  = "APICLIENT_TIMEOUT"
	EnvLanguage = "APICLIENT_LANGUAGE"
	EnvLogLevel = "APICLIENT_LOG_LEVEL"
)

// DefaultTimeout is the request timeout when none is configured.
const DefaultTimeout = 10 * time.Second

// Errors returned by the config package.
var (
	// ErrInvalidSyntax indicates a config line that is not key=value.
	ErrInvalidSyntax = errors.New("invalid config syntax")

	// ErrInvalidValue indicates a value that fails key-specific validation.
	ErrInvalidValue = errors.New("invalid config value")
)

// envFallbacks maps config keys to their environment variable.
var envFallbacks = map[string]string{
	KeyAPIURL:   EnvAPIURL,
	KeyTimeout:  EnvTimeout,
	KeyLanguage: EnvLanguage,
	KeyLogLevel: EnvLogLevel,
}

// EnvFor returns the environment variable backing key, if any.
func EnvFor(key string) (string, bool) {
	env, ok := envFallbacks[key]
	return env, ok
}

// Config holds user configuration loaded from ~/.config/go-apiclient/config.
type Config struct {
	APIURL    string
	Timeout   time.Duration
	Language  string
	LogLevel  string
	AuthToken string
}

// dir returns the configuration directory path.
// Uses XDG_CONFIG_HOME if set, otherwise ~/.config/go-apiclient.
func dir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "go-apiclient"), nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".config", "go-apiclient"), nil
}

// path returns the full path to the config file.
func path() (string, error) {
	d, err := dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(d, "config"), nil
}

// Load reads the configuration file and environment variables.
// Precedence: config file values, then environment variable fallbacks,
// then defaults. Returns a default Config if the file doesn't exist.
func Load() (Config, error) {
	cfg := Config{Timeout: DefaultTimeout}

	p, err := path()
	if err != nil {
		return cfg, err
	}

	data, err := parseFile(p)
	if err != nil && !os.IsNotExist(err) {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}

	value := func(key string) string {
		if v := data[key]; v != "" {
			return v
		}
		if env, ok := envFallbacks[key]; ok {
			return os.Getenv(env)
		}
		return ""
	}

	cfg.APIURL = value(KeyAPIURL)
	cfg.Language = value(KeyLanguage)
	cfg.LogLevel = value(KeyLogLevel)
	cfg.AuthToken = data[KeyAuthToken]

	if raw := value(KeyTimeout); raw != "" {
		d, err := ParseTimeout(raw)
		if err != nil {
			return cfg, err
		}
		cfg.Timeout = d
	}

	return cfg, nil
}

// ParseTimeout parses a timeout given as a Go duration ("15s") or as a
// bare number of milliseconds ("15000").
func ParseTimeout(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	d, err := time.ParseDuration(s)
	if err != nil {
		d, err = time.ParseDuration(s + "ms")
	}
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("timeout %q must be a positive duration: %w", s, ErrInvalidValue)
	}
	return d, nil
}

// ValidateAPIURL checks that s is an absolute http(s) URL.
func ValidateAPIURL(s string) error {
	u, err := url.Parse(s)
	if err != nil {
		return fmt.Errorf("api-url %q: %w", s, ErrInvalidValue)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("api-url %q must use http or https: %w", s, ErrInvalidValue)
	}
	if u.Host == "" {
		return fmt.Errorf("api-url %q has no host: %w", s, ErrInvalidValue)
	}
	return nil
}

// parseFile reads a key=value config file.
// Format: one key=value per line, # comments, empty lines ignored.
func parseFile(p string) (map[string]string, error) {
	f, err := os.Open(p) // #nosec G304 -- config path is constructed from home dir
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	data := make(map[string]string)
	scanner := bufio.NewScanner(f)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		key, value, ok := strings.Cut(line, "=")
		if !ok {
			return nil, fmt.Errorf("line %d: %q: %w", lineNum, line, ErrInvalidSyntax)
		}
		data[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	return data, nil
}

// Save writes a single key=value to the config file.
// Creates the config directory and file if they don't exist.
// Preserves existing key=value pairs but discards comments.
func Save(key, value string) error {
	return update(func(data map[string]string) {
		data[key] = value
	})
}

// Delete removes key from the config file. Deleting a missing key is not
// an error.
func Delete(key string) error {
	return update(func(data map[string]string) {
		delete(data, key)
	})
}

func update(fn func(map[string]string)) error {
	p, err := path()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(p), 0750); err != nil { // #nosec G301 -- user config dir
		return fmt.Errorf("cannot create config directory: %w", err)
	}

	existing, err := parseFile(p)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to read config: %w", err)
	}
	if existing == nil {
		existing = make(map[string]string)
	}

	fn(existing)

	return writeFile(p, existing)
}

// writeFile writes the config map to a file, keys sorted.
// The file may hold the session token, so it is private to the user.
func writeFile(p string, data map[string]string) error {
	f, err := os.OpenFile(p, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0600) // #nosec G304 -- path from home dir
	if err != nil {
		return fmt.Errorf("cannot write config file: %w", err)
	}
	defer func() { _ = f.Close() }()

	keys := make([]string, 0, len(data))
	for key := range data {
		keys = append(keys, key)
	}
	slices.Sort(keys)

	for _, key := range keys {
		if _, err := fmt.Fprintf(f, "%s=%s\n", key, data[key]); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	return nil
}

// Get reads a single value from the config file.
// Returns empty string if the key doesn't exist.
func Get(key string) (string, error) {
	p, err := path()
	if err != nil {
		return "", err
	}

	data, err := parseFile(p)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", err
	}

	return data[key], nil
}

// List returns all config values as a map.
func List() (map[string]string, error) {
	p, err := path()
	if err != nil {
		return nil, err
	}

	data, err := parseFile(p)
	if err != nil {
		if os.IsNotExist(err) {
			return make(map[string]string), nil
		}
		return nil, err
	}

	return data, nil
}
