package store_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notes-keeper/internal/store"
	"notes-keeper/internal/store/memory"
)

func TestFailure_WrapsBothErrors(t *testing.T) {
	cause := errors.New("disk full")

	err := store.Failure("set", "note:1", cause)

	require.Error(t, err)
	assert.ErrorIs(t, err, store.ErrStorageFailure)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), `"note:1"`)
}

func TestFailure_NilIsNil(t *testing.T) {
	assert.NoError(t, store.Failure("set", "k", nil))
}

func TestUsage_EmptyStore(t *testing.T) {
	used, err := store.Usage(context.Background(), memory.NewStore(0))

	require.NoError(t, err)
	assert.Zero(t, used)
}

func TestFormatKB(t *testing.T) {
	tests := []struct {
		bytes int64
		want  string
	}{
		{0, "0.00"},
		{512, "0.50"},
		{1024, "1.00"},
		{1536, "1.50"},
		{10 * 1024 * 1024, "10240.00"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, store.FormatKB(tt.bytes), "FormatKB(%d)", tt.bytes)
	}
}
