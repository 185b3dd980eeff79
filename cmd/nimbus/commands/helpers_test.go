package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseKeyValuePairs(t *testing.T) {
	t.Parallel()

	t.Run("no pairs returns nil map", func(t *testing.T) {
		t.Parallel()

		result, err := parseKeyValuePairs(nil)
		require.NoError(t, err)
		assert.Nil(t, result)
	})

	t.Run("parses pairs", func(t *testing.T) {
		t.Parallel()

		result, err := parseKeyValuePairs([]string{"team=payments", "env=prod"})
		require.NoError(t, err)
		assert.Equal(t, map[string]string{"team": "payments", "env": "prod"}, result)
	})

	t.Run("value may contain equals signs", func(t *testing.T) {
		t.Parallel()

		result, err := parseKeyValuePairs([]string{"query=a=b"})
		require.NoError(t, err)
		assert.Equal(t, map[string]string{"query": "a=b"}, result)
	})

	t.Run("empty value is kept", func(t *testing.T) {
		t.Parallel()

		result, err := parseKeyValuePairs([]string{"flag="})
		require.NoError(t, err)
		assert.Equal(t, map[string]string{"flag": ""}, result)
	})

	t.Run("missing separator fails", func(t *testing.T) {
		t.Parallel()

		_, err := parseKeyValuePairs([]string{"not-a-pair"})
		require.ErrorIs(t, err, ErrAttributeFormat)
		assert.Contains(t, err.Error(), "not-a-pair")
	})
}

func TestTruncate(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "exactly-10", truncate("exactly-10", 10))
	assert.Equal(t, "this is...", truncate("this is too long", 10))
}

func TestOrNA(t *testing.T) {
	t.Parallel()

	assert.Equal(t, NotAvailable, orNA(""))
	assert.Equal(t, "value", orNA("value"))
}
