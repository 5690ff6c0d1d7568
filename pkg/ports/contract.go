package ports

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunCounterStoreContract runs a suite of tests to verify that a CounterStore
// implementation adheres to the defined interface contract.
func RunCounterStoreContract(t *testing.T, store CounterStore) {
	ctx := context.Background()
	key := "contract-" + time.Now().Format("20060102150405.000")
	window := time.Minute

	t.Run("Increment counts up", func(t *testing.T) {
		count, remaining, err := store.Increment(ctx, key, window)
		require.NoError(t, err, "Increment should not return error")
		assert.Equal(t, int64(1), count)
		assert.Greater(t, remaining, time.Duration(0), "a fresh counter carries its window TTL")
		assert.LessOrEqual(t, remaining, window)

		count, _, err = store.Increment(ctx, key, window)
		require.NoError(t, err)
		assert.Equal(t, int64(2), count)
	})

	t.Run("Keys are independent", func(t *testing.T) {
		other := key + "-other"
		defer func() { _ = store.Reset(ctx, other) }()

		count, _, err := store.Increment(ctx, other, window)
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})

	t.Run("Reset clears the counter", func(t *testing.T) {
		require.NoError(t, store.Reset(ctx, key))

		count, _, err := store.Increment(ctx, key, window)
		require.NoError(t, err)
		assert.Equal(t, int64(1), count, "Increment after Reset starts a fresh window")
	})
}
