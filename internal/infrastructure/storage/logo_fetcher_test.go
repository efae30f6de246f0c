package storage

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zragie/ngo-receipts-api/internal/domain/entity"
)

func strPtr(s string) *string { return &s }

func TestLogoFetcherPrefersStoredLogo(t *testing.T) {
	store, err := NewDiskStore(t.TempDir())
	require.NoError(t, err)

	ctx := context.Background()
	stored := []byte("stored logo bytes")
	require.NoError(t, store.Put(ctx, BucketLogos, "org-1/logo.png", bytes.NewReader(stored), "image/png"))

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("remote URL should not be contacted when a stored logo exists")
	}))
	defer server.Close()

	fetcher := NewLogoFetcher(store, time.Second)
	org := &entity.Organization{
		LogoPath: strPtr("org-1/logo.png"),
		LogoURL:  strPtr(server.URL),
	}

	assert.Equal(t, stored, fetcher.Fetch(ctx, org))
}

func TestLogoFetcherFallsBackToURL(t *testing.T) {
	store, err := NewDiskStore(t.TempDir())
	require.NoError(t, err)

	remote := []byte("remote logo bytes")
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(remote)
	}))
	defer server.Close()

	fetcher := NewLogoFetcher(store, time.Second)
	org := &entity.Organization{LogoURL: strPtr(server.URL)}

	assert.Equal(t, remote, fetcher.Fetch(context.Background(), org))
}

func TestLogoFetcherRetriesServerErrors(t *testing.T) {
	store, err := NewDiskStore(t.TempDir())
	require.NoError(t, err)

	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte("eventually served"))
	}))
	defer server.Close()

	fetcher := NewLogoFetcher(store, 5*time.Second)
	org := &entity.Organization{LogoURL: strPtr(server.URL)}

	got := fetcher.Fetch(context.Background(), org)
	assert.Equal(t, []byte("eventually served"), got)
	assert.GreaterOrEqual(t, calls.Load(), int32(2))
}

func TestLogoFetcherReturnsNilOnClientError(t *testing.T) {
	store, err := NewDiskStore(t.TempDir())
	require.NoError(t, err)

	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	fetcher := NewLogoFetcher(store, time.Second)
	org := &entity.Organization{LogoURL: strPtr(server.URL)}

	assert.Nil(t, fetcher.Fetch(context.Background(), org))
	assert.Equal(t, int32(1), calls.Load())
}

func TestLogoFetcherNoLogoConfigured(t *testing.T) {
	store, err := NewDiskStore(t.TempDir())
	require.NoError(t, err)

	fetcher := NewLogoFetcher(store, time.Second)
	assert.Nil(t, fetcher.Fetch(context.Background(), &entity.Organization{}))
	assert.Nil(t, fetcher.Fetch(context.Background(), nil))
}
