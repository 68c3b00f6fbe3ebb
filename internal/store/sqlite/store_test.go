package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notes-keeper/internal/store"
	"notes-keeper/internal/store/storetest"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	s, err := NewStore(context.Background(), filepath.Join(t.TempDir(), "notes.sqlite"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	return s
}

func TestStore_Contract(t *testing.T) {
	storetest.Run(t, func(t *testing.T) store.Store {
		return newTestStore(t)
	})
}

func TestStore_PersistsAcrossReopen(t *testing.T) {
	// Arrange
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "notes.sqlite")

	s, err := NewStore(ctx, path)
	require.NoError(t, err)
	require.NoError(t, s.Set(ctx, "note:1", "payload"))
	require.NoError(t, s.Close())

	// Act
	reopened, err := NewStore(ctx, path)
	require.NoError(t, err)
	defer reopened.Close()

	// Assert
	value, ok, err := reopened.Get(ctx, "note:1")
	require.NoError(t, err)
	assert.True(t, ok, "Expected value to survive reopen")
	assert.Equal(t, "payload", value)
}

func TestStore_ClosedDatabaseIsStorageFailure(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	require.NoError(t, s.Close())

	err := s.Set(ctx, "k", "v")

	require.Error(t, err)
	assert.ErrorIs(t, err, store.ErrStorageFailure)
}
