package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore_SaveLoadRoundTrip(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	data := []byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a}
	require.NoError(t, store.Save(context.Background(), "abc123", data))

	loaded, err := store.Load(context.Background(), "abc123")
	require.NoError(t, err)
	assert.Equal(t, data, loaded)
}

func TestFileStore_Overwrite(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, store.Save(ctx, "abc123", []byte("first")))
	require.NoError(t, store.Save(ctx, "abc123", []byte("second")))

	loaded, err := store.Load(ctx, "abc123")
	require.NoError(t, err)
	assert.Equal(t, []byte("second"), loaded)
}

func TestFileStore_LoadMissing(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	_, err = store.Load(context.Background(), "nothing-here")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFileStore_IDCannotEscapeDir(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(dir)
	require.NoError(t, err)

	require.NoError(t, store.Save(context.Background(), "../../escape", []byte("x")))

	// The file lands inside the upload dir, not above it.
	_, err = os.Stat(filepath.Join(dir, "escape.png"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(filepath.Dir(dir), "escape.png"))
	assert.True(t, os.IsNotExist(err))
}

func TestFileStore_CreatesDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "uploads")

	_, err := NewFileStore(dir)
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
