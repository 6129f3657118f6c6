package storage_test

import (
	"bytes"
	"context"
	"io"
	"path/filepath"
	"testing"

	"github.com/brushline/contractor-api/internal/config"
	"github.com/brushline/contractor-api/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestLocalStorageUploadDownloadDelete(t *testing.T) {
	store, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	content := []byte("before photo bytes")
	path, size, err := store.Upload(ctx, "before.jpg", "image/jpeg", bytes.NewReader(content))
	require.NoError(t, err)
	assert.Equal(t, int64(len(content)), size)
	assert.Equal(t, ".jpg", filepath.Ext(path))

	reader, err := store.Download(ctx, path)
	require.NoError(t, err)
	defer reader.Close()
	got, err := io.ReadAll(reader)
	require.NoError(t, err)
	assert.Equal(t, content, got)

	require.NoError(t, store.Delete(ctx, path))

	_, err = store.Download(ctx, path)
	assert.Error(t, err)

	// Deleting again is a no-op
	assert.NoError(t, store.Delete(ctx, path))
}

func TestLocalStorageUniquePaths(t *testing.T) {
	store, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	first, _, err := store.Upload(ctx, "doc.pdf", "application/pdf", bytes.NewBufferString("a"))
	require.NoError(t, err)
	second, _, err := store.Upload(ctx, "doc.pdf", "application/pdf", bytes.NewBufferString("b"))
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestNewStorageModes(t *testing.T) {
	logger := zap.NewNop()

	store, err := storage.NewStorage(&config.StorageConfig{Mode: "local", LocalBasePath: t.TempDir()}, logger)
	require.NoError(t, err)
	assert.NotNil(t, store)

	_, err = storage.NewStorage(&config.StorageConfig{Mode: "cloud"}, logger)
	assert.Error(t, err)

	_, err = storage.NewStorage(&config.StorageConfig{Mode: "carrier-pigeon"}, logger)
	assert.Error(t, err)
}
