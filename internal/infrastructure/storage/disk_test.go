package storage

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiskStorePutGet(t *testing.T) {
	store, err := NewDiskStore(t.TempDir())
	require.NoError(t, err)

	ctx := context.Background()
	payload := []byte("%PDF-1.4 fake body")

	err = store.Put(ctx, BucketReceipts, "org-1/REC-20250101-00042.pdf", bytes.NewReader(payload), "application/pdf")
	require.NoError(t, err)

	got, err := store.Get(ctx, BucketReceipts, "org-1/REC-20250101-00042.pdf")
	require.NoError(t, err)
	assert.Equal(t, payload, got)
}

func TestDiskStoreGetMissing(t *testing.T) {
	store, err := NewDiskStore(t.TempDir())
	require.NoError(t, err)

	_, err = store.Get(context.Background(), BucketLogos, "missing/logo.png")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDiskStoreDelete(t *testing.T) {
	store, err := NewDiskStore(t.TempDir())
	require.NoError(t, err)

	ctx := context.Background()
	err = store.Put(ctx, BucketLogos, "org-1/logo.png", bytes.NewReader([]byte("png bytes")), "image/png")
	require.NoError(t, err)

	err = store.Delete(ctx, BucketLogos, "org-1/logo.png")
	require.NoError(t, err)

	_, err = store.Get(ctx, BucketLogos, "org-1/logo.png")
	assert.ErrorIs(t, err, ErrNotFound)

	err = store.Delete(ctx, BucketLogos, "org-1/logo.png")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDiskStoreRejectsEscapingPaths(t *testing.T) {
	store, err := NewDiskStore(t.TempDir())
	require.NoError(t, err)

	ctx := context.Background()
	err = store.Put(ctx, BucketLogos, "../../etc/passwd", bytes.NewReader([]byte("nope")), "text/plain")
	assert.Error(t, err)

	_, err = store.Get(ctx, BucketLogos, "../secret")
	assert.Error(t, err)
}

type brokenReader struct{}

func (brokenReader) Read([]byte) (int, error) {
	return 0, errors.New("source went away")
}

func TestDiskStoreFailedPutLeavesNothingBehind(t *testing.T) {
	base := t.TempDir()
	store, err := NewDiskStore(base)
	require.NoError(t, err)

	ctx := context.Background()
	err = store.Put(ctx, BucketReceipts, "org-1/REC-20250101-00042.pdf", brokenReader{}, "application/pdf")
	require.Error(t, err)

	_, err = store.Get(ctx, BucketReceipts, "org-1/REC-20250101-00042.pdf")
	assert.ErrorIs(t, err, ErrNotFound)

	entries, err := os.ReadDir(filepath.Join(base, BucketReceipts, "org-1"))
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestDiskStoreFailedOverwriteKeepsOldObject(t *testing.T) {
	store, err := NewDiskStore(t.TempDir())
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, store.Put(ctx, BucketLogos, "org-1/logo.png", bytes.NewReader([]byte("v1")), "image/png"))

	err = store.Put(ctx, BucketLogos, "org-1/logo.png", io.MultiReader(bytes.NewReader([]byte("v2-partial")), brokenReader{}), "image/png")
	require.Error(t, err)

	got, err := store.Get(ctx, BucketLogos, "org-1/logo.png")
	require.NoError(t, err)
	assert.Equal(t, []byte("v1"), got)
}

func TestDiskStoreOverwrite(t *testing.T) {
	store, err := NewDiskStore(t.TempDir())
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, store.Put(ctx, BucketLogos, "org-1/logo.png", bytes.NewReader([]byte("v1")), "image/png"))
	require.NoError(t, store.Put(ctx, BucketLogos, "org-1/logo.png", bytes.NewReader([]byte("v2")), "image/png"))

	got, err := store.Get(ctx, BucketLogos, "org-1/logo.png")
	require.NoError(t, err)
	assert.Equal(t, []byte("v2"), got)
}
