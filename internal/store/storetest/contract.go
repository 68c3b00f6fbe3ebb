// Package storetest содержит общий контракт, которому обязан соответствовать
// любой адаптер store.Store.
package storetest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notes-keeper/internal/store"
)

// Run проверяет адаптер, созданный factory. factory вызывается для каждого подтеста
// и должна возвращать пустое хранилище.
func Run(t *testing.T, factory func(t *testing.T) store.Store) {
	t.Helper()

	t.Run("GetMissingKey", func(t *testing.T) {
		s := factory(t)

		value, ok, err := s.Get(context.Background(), "missing")

		require.NoError(t, err)
		assert.False(t, ok, "Expected missing key to be absent")
		assert.Empty(t, value)
	})

	t.Run("SetThenGet", func(t *testing.T) {
		ctx := context.Background()
		s := factory(t)

		require.NoError(t, s.Set(ctx, "note:1", `{"id":"1"}`))

		value, ok, err := s.Get(ctx, "note:1")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, `{"id":"1"}`, value)
	})

	t.Run("SetOverwrites", func(t *testing.T) {
		ctx := context.Background()
		s := factory(t)

		require.NoError(t, s.Set(ctx, "k", "first"))
		require.NoError(t, s.Set(ctx, "k", "second"))

		value, ok, err := s.Get(ctx, "k")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "second", value, "Expected last writer to win")
	})

	t.Run("EmptyValueIsPresent", func(t *testing.T) {
		ctx := context.Background()
		s := factory(t)

		require.NoError(t, s.Set(ctx, "empty", ""))

		value, ok, err := s.Get(ctx, "empty")
		require.NoError(t, err)
		assert.True(t, ok, "Expected empty value to be stored")
		assert.Equal(t, "", value)
	})

	t.Run("Delete", func(t *testing.T) {
		ctx := context.Background()
		s := factory(t)

		require.NoError(t, s.Set(ctx, "k", "v"))
		require.NoError(t, s.Delete(ctx, "k"))

		_, ok, err := s.Get(ctx, "k")
		require.NoError(t, err)
		assert.False(t, ok, "Expected deleted key to be absent")
	})

	t.Run("DeleteMissingKey", func(t *testing.T) {
		s := factory(t)

		assert.NoError(t, s.Delete(context.Background(), "missing"))
	})

	t.Run("KeysAreOrdered", func(t *testing.T) {
		ctx := context.Background()
		s := factory(t)

		for _, key := range []string{"note:c", "note:a", "other", "note:b"} {
			require.NoError(t, s.Set(ctx, key, key))
		}

		keys, err := s.Keys(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"note:a", "note:b", "note:c", "other"}, keys)

		again, err := s.Keys(ctx)
		require.NoError(t, err)
		assert.Equal(t, keys, again, "Expected stable enumeration order")
	})

	t.Run("KeysEmpty", func(t *testing.T) {
		keys, err := factory(t).Keys(context.Background())

		require.NoError(t, err)
		assert.Empty(t, keys)
	})

	t.Run("UnicodeRoundTrip", func(t *testing.T) {
		ctx := context.Background()
		s := factory(t)
		value := "заметка ✓\n\ttabs and \"quotes\""

		require.NoError(t, s.Set(ctx, "note:ü", value))

		got, ok, err := s.Get(ctx, "note:ü")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, value, got)
	})

	t.Run("Usage", func(t *testing.T) {
		ctx := context.Background()
		s := factory(t)

		require.NoError(t, s.Set(ctx, "a", "12345"))
		require.NoError(t, s.Set(ctx, "b", "ü")) // 2 байта в UTF-8

		used, err := store.Usage(ctx, s)
		require.NoError(t, err)
		assert.Equal(t, int64(7), used)
	})
}
