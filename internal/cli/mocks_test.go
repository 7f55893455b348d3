package cli

import (
	"sync"

	"github.com/alnah/go-apiclient/internal/api"
	"github.com/alnah/go-apiclient/internal/config"
)

// ---------------------------------------------------------------------------
// Mock ConfigLoader
// ---------------------------------------------------------------------------

type mockConfigLoader struct {
	LoadFunc func() (config.Config, error)

	mu        sync.Mutex
	loadCalls int
}

func (m *mockConfigLoader) Load() (config.Config, error) {
	m.mu.Lock()
	m.loadCalls++
	m.mu.Unlock()

	if m.LoadFunc != nil {
		return m.LoadFunc()
	}
	return config.Config{Timeout: config.DefaultTimeout}, nil
}

func (m *mockConfigLoader) LoadCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loadCalls
}

// ---------------------------------------------------------------------------
// Mock ClientFactory
// ---------------------------------------------------------------------------

// mockClientFactory builds real clients without the connectivity check and
// records the base URLs it was asked for.
type mockClientFactory struct {
	NewClientFunc func(baseURL string, opts ...api.Option) (*api.Client, error)

	mu       sync.Mutex
	baseURLs []string
}

func (m *mockClientFactory) NewClient(baseURL string, opts ...api.Option) (*api.Client, error) {
	m.mu.Lock()
	m.baseURLs = append(m.baseURLs, baseURL)
	m.mu.Unlock()

	if m.NewClientFunc != nil {
		return m.NewClientFunc(baseURL, opts...)
	}
	return api.New(baseURL, opts...)
}

func (m *mockClientFactory) BaseURLs() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.baseURLs...)
}

// ---------------------------------------------------------------------------
// Mock SessionStore
// ---------------------------------------------------------------------------

type mockSession struct {
	LoadErr  error
	SaveErr  error
	ClearErr error

	mu      sync.Mutex
	token   string
	cleared bool
}

func (m *mockSession) Load() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token, m.LoadErr
}

func (m *mockSession) Save(token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.token = token
	return nil
}

func (m *mockSession) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ClearErr != nil {
		return m.ClearErr
	}
	m.token = ""
	m.cleared = true
	return nil
}

func (m *mockSession) Token() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token
}

func (m *mockSession) Cleared() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cleared
}
