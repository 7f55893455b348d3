// Package auth holds the authentication state of the current user and the
// login call that establishes it.
package auth

import (
	"strings"
	"sync"
)

// Store is the in-memory authentication state.
// It is safe for concurrent use.
type Store struct {
	mu        sync.RWMutex
	authToken string
	email     string
	password  string
}

// NewStore returns a Store holding token, which may be empty.
func NewStore(token string) *Store {
	return &Store{authToken: token}
}

// IsAuthenticated reports whether a session token is held.
func (s *Store) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.authToken != ""
}

// Token returns the session token, empty when logged out.
// It makes Store usable as an api.TokenSource.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.authToken
}

// SetToken replaces the session token.
func (s *Store) SetToken(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.authToken = token
}

// Email returns the email entered for login.
func (s *Store) Email() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.email
}

// Password returns the password entered for login.
func (s *Store) Password() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.password
}

// SetEmail stores value with every space removed.
func (s *Store) SetEmail(value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.email = stripSpaces(value)
}

// SetPassword stores value with every space removed.
func (s *Store) SetPassword(value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.password = stripSpaces(value)
}

// Logout clears the token and the credentials.
func (s *Store) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.authToken = ""
	s.email = ""
	s.password = ""
}

func stripSpaces(s string) string {
	return strings.ReplaceAll(s, " ", "")
}
