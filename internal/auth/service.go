package auth

import (
	"context"
	"errors"
	"fmt"
)

// LoginPath is the endpoint that exchanges credentials for a token.
const LoginPath = "/login"

// ErrEmptyToken indicates a successful login response without a token.
var ErrEmptyToken = errors.New("login response has no token")

// Poster sends a JSON body and decodes the JSON response into out.
// *api.Client implements it.
type Poster interface {
	Post(ctx context.Context, path string, body, out any) error
}

// LoginParams are the credentials sent to the login endpoint.
type LoginParams struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResult is the outcome of a successful login.
type LoginResult struct {
	Token string
}

// loginResponse is the wire shape of the login response.
type loginResponse struct {
	Token string `json:"token"`
}

func (r loginResponse) result() LoginResult {
	return LoginResult{Token: r.Token}
}

// Service performs authentication calls and keeps Store and the saved
// session in sync.
type Service struct {
	client  Poster
	store   *Store
	session SessionStore
}

// NewService creates a Service. session may be nil to skip persistence.
func NewService(client Poster, store *Store, session SessionStore) *Service {
	return &Service{client: client, store: store, session: session}
}

// Login posts params to LoginPath. On success the token is stored and
// saved. Errors from the client are returned unchanged so callers can
// classify them.
func (s *Service) Login(ctx context.Context, params LoginParams) (LoginResult, error) {
	s.store.SetEmail(params.Email)
	s.store.SetPassword(params.Password)

	body := LoginParams{Email: s.store.Email(), Password: s.store.Password()}

	var resp loginResponse
	if err := s.client.Post(ctx, LoginPath, body, &resp); err != nil {
		return LoginResult{}, err
	}

	result := resp.result()
	if result.Token == "" {
		return LoginResult{}, ErrEmptyToken
	}

	s.store.SetToken(result.Token)
	if s.session != nil {
		if err := s.session.Save(result.Token); err != nil {
			return result, err
		}
	}
	return result, nil
}

// Logout clears the store and the saved session.
func (s *Service) Logout() error {
	s.store.Logout()
	if s.session == nil {
		return nil
	}
	if err := s.session.Clear(); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	return nil
}
