// Package auth supplies the bearer credential the transport attaches to
// every request. Request signing is deliberately absent: the Nimbus API
// authenticates with opaque API tokens.
package auth

import (
	"context"
	"errors"
	"os"
	"sync"
	"time"

	"github.com/nimbus-cloud/nimbus-client/internal/constants"
)

// Static errors for err113 compliance.
var (
	ErrNoToken              = errors.New("no API token available")
	ErrStaticTokenNoRefresh = errors.New("static token cannot be refreshed")
)

// TokenManager supplies the API token for outgoing requests.
type TokenManager interface {
	// GetToken returns a valid token or an error.
	GetToken(ctx context.Context) (string, error)

	// RefreshToken forces the manager to obtain a fresh token where the
	// source supports it.
	RefreshToken(ctx context.Context) error

	// SetToken replaces the current token.
	SetToken(token string, expiresAt time.Time)
}

// StaticTokenManager holds a fixed token handed in at construction.
type StaticTokenManager struct {
	mu    sync.RWMutex
	token string
}

// NewStaticTokenManager creates a manager around a fixed token.
func NewStaticTokenManager(token string) *StaticTokenManager {
	return &StaticTokenManager{token: token}
}

// GetToken returns the stored token.
func (m *StaticTokenManager) GetToken(ctx context.Context) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.token == "" {
		return "", ErrNoToken
	}

	return m.token, nil
}

// RefreshToken fails: a static token has no refresh source.
func (m *StaticTokenManager) RefreshToken(ctx context.Context) error {
	return ErrStaticTokenNoRefresh
}

// SetToken replaces the stored token.
func (m *StaticTokenManager) SetToken(token string, expiresAt time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = token
}

// EnvTokenManager reads the token from the environment on every call, so a
// rotated token is picked up without restarting.
type EnvTokenManager struct {
	// Variable overrides the default environment variable name.
	Variable string
}

// NewEnvTokenManager creates a manager reading NIMBUS_API_TOKEN.
func NewEnvTokenManager() *EnvTokenManager {
	return &EnvTokenManager{Variable: constants.EnvAPIToken}
}

// GetToken reads the environment variable.
func (m *EnvTokenManager) GetToken(ctx context.Context) (string, error) {
	variable := m.Variable
	if variable == "" {
		variable = constants.EnvAPIToken
	}

	token := os.Getenv(variable)
	if token == "" {
		return "", ErrNoToken
	}

	return token, nil
}

// RefreshToken is a no-op: the next GetToken re-reads the environment.
func (m *EnvTokenManager) RefreshToken(ctx context.Context) error {
	return nil
}

// SetToken is a no-op for the environment source.
func (m *EnvTokenManager) SetToken(token string, expiresAt time.Time) {}

// ChainTokenManager asks each manager in order and returns the first token.
type ChainTokenManager struct {
	managers []TokenManager
}

// NewChainTokenManager creates a chain over the given managers.
func NewChainTokenManager(managers ...TokenManager) *ChainTokenManager {
	return &ChainTokenManager{managers: managers}
}

// GetToken returns the first token any manager supplies.
func (m *ChainTokenManager) GetToken(ctx context.Context) (string, error) {
	for _, manager := range m.managers {
		token, err := manager.GetToken(ctx)
		if err == nil && token != "" {
			return token, nil
		}
	}

	return "", ErrNoToken
}

// RefreshToken refreshes every manager that supports it.
func (m *ChainTokenManager) RefreshToken(ctx context.Context) error {
	var lastErr error

	for _, manager := range m.managers {
		err := manager.RefreshToken(ctx)
		if err != nil && !errors.Is(err, ErrStaticTokenNoRefresh) {
			lastErr = err
		}
	}

	return lastErr
}

// SetToken pushes the token into every manager.
func (m *ChainTokenManager) SetToken(token string, expiresAt time.Time) {
	for _, manager := range m.managers {
		manager.SetToken(token, expiresAt)
	}
}
