package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreRetrieveRemove(t *testing.T) {
	blobs, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	path, err := blobs.Store([]byte("payload"), "test.jpg")
	require.NoError(t, err)

	data, err := blobs.Retrieve(path)
	require.NoError(t, err)
	assert.Equal(t, []byte("payload"), data)

	require.NoError(t, blobs.Remove(path))

	_, err = blobs.Retrieve(path)
	assert.ErrorIs(t, err, ErrNotFound)

	// Removing twice is fine
	assert.NoError(t, blobs.Remove(path))
}

func TestStoreStripsDirectoryComponents(t *testing.T) {
	dir := t.TempDir()
	blobs, err := NewLocalStorage(dir)
	require.NoError(t, err)

	path, err := blobs.Store([]byte("x"), "../escape.jpg")
	require.NoError(t, err)

	data, err := blobs.Retrieve(path)
	require.NoError(t, err)
	assert.Equal(t, []byte("x"), data)
	assert.Contains(t, path, dir)
}
