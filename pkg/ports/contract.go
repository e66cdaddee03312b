package ports

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunResultCacheContract runs a suite of tests to verify that a ResultCache implementation
// adheres to the defined interface contract.
func RunResultCacheContract(t *testing.T, cache ResultCache) {
	ctx := context.Background()
	key := "contract-test-" + time.Now().Format("20060102150405")

	t.Run("Miss", func(t *testing.T) {
		v, ok, err := cache.Get(ctx, key+"-missing")
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Nil(t, v)
	})

	t.Run("Set and Get", func(t *testing.T) {
		payload := map[string]any{
			"boards": []any{map[string]any{"name": "Deals", "id": "5026840561"}},
		}
		require.NoError(t, cache.Set(ctx, key, payload, 0), "Set should not return error")

		v, ok, err := cache.Get(ctx, key)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, payload, v, "round-tripped payload must match")
	})

	t.Run("Text Payload", func(t *testing.T) {
		require.NoError(t, cache.Set(ctx, key+"-text", "plain answer", time.Minute))

		v, ok, err := cache.Get(ctx, key+"-text")
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, "plain answer", v)
	})
}
