package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaticTokenManager(t *testing.T) {
	t.Parallel()

	t.Run("returns the configured token", func(t *testing.T) {
		t.Parallel()

		manager := NewStaticTokenManager("tok-123")

		token, err := manager.GetToken(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "tok-123", token)
	})

	t.Run("empty token is an error", func(t *testing.T) {
		t.Parallel()

		manager := NewStaticTokenManager("")

		_, err := manager.GetToken(context.Background())
		assert.ErrorIs(t, err, ErrNoToken)
	})

	t.Run("set token replaces the stored value", func(t *testing.T) {
		t.Parallel()

		manager := NewStaticTokenManager("old")
		manager.SetToken("new", time.Time{})

		token, err := manager.GetToken(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "new", token)
	})

	t.Run("refresh is unsupported", func(t *testing.T) {
		t.Parallel()

		manager := NewStaticTokenManager("tok-123")
		assert.ErrorIs(t, manager.RefreshToken(context.Background()), ErrStaticTokenNoRefresh)
	})
}

func TestEnvTokenManager(t *testing.T) {
	// t.Setenv forbids t.Parallel.

	t.Run("reads the default variable", func(t *testing.T) {
		t.Setenv("NIMBUS_API_TOKEN", "env-token")

		manager := NewEnvTokenManager()

		token, err := manager.GetToken(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "env-token", token)
	})

	t.Run("picks up a rotated token without restart", func(t *testing.T) {
		t.Setenv("NIMBUS_API_TOKEN", "first")

		manager := NewEnvTokenManager()

		token, err := manager.GetToken(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "first", token)

		t.Setenv("NIMBUS_API_TOKEN", "second")
		require.NoError(t, manager.RefreshToken(context.Background()))

		token, err = manager.GetToken(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "second", token)
	})

	t.Run("unset variable is an error", func(t *testing.T) {
		t.Setenv("NIMBUS_API_TOKEN", "")

		manager := NewEnvTokenManager()

		_, err := manager.GetToken(context.Background())
		assert.ErrorIs(t, err, ErrNoToken)
	})

	t.Run("custom variable name", func(t *testing.T) {
		t.Setenv("OTHER_TOKEN", "other")

		manager := &EnvTokenManager{Variable: "OTHER_TOKEN"}

		token, err := manager.GetToken(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "other", token)
	})
}

func TestChainTokenManager(t *testing.T) {
	t.Parallel()

	t.Run("first manager with a token wins", func(t *testing.T) {
		t.Parallel()

		chain := NewChainTokenManager(
			NewStaticTokenManager(""),
			NewStaticTokenManager("fallback"),
		)

		token, err := chain.GetToken(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "fallback", token)
	})

	t.Run("no tokens anywhere is an error", func(t *testing.T) {
		t.Parallel()

		chain := NewChainTokenManager(NewStaticTokenManager(""))

		_, err := chain.GetToken(context.Background())
		assert.ErrorIs(t, err, ErrNoToken)
	})

	t.Run("set token reaches every manager", func(t *testing.T) {
		t.Parallel()

		first := NewStaticTokenManager("")
		second := NewStaticTokenManager("")
		chain := NewChainTokenManager(first, second)

		chain.SetToken("shared", time.Time{})

		token, err := first.GetToken(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "shared", token)

		token, err = second.GetToken(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "shared", token)
	})

	t.Run("refresh tolerates static members", func(t *testing.T) {
		t.Parallel()

		chain := NewChainTokenManager(NewStaticTokenManager("tok"), NewEnvTokenManager())
		assert.NoError(t, chain.RefreshToken(context.Background()))
	})
}
