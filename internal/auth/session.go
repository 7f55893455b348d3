package auth

import (
	"fmt"

	"github.com/alnah/go-apiclient/internal/config"
)

// SessionStore persists the session token between runs.
type SessionStore interface {
	Load() (string, error)
	Save(token string) error
	Clear() error
}

// ConfigSession keeps the token in the user config file under
// config.KeyAuthToken.
type ConfigSession struct{}

// Load returns the saved token, empty when none is saved.
func (ConfigSession) Load() (string, error) {
	token, err := config.Get(config.KeyAuthToken)
	if err != nil {
		return "", fmt.Errorf("load session: %w", err)
	}
	return token, nil
}

// Save stores token.
func (ConfigSession) Save(token string) error {
	if err := config.Save(config.KeyAuthToken, token); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// Clear removes the saved token.
func (ConfigSession) Clear() error {
	if err := config.Delete(config.KeyAuthToken); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

var _ SessionStore = ConfigSession{}
