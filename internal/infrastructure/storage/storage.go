// Package storage provides the object store holding organization logos and
// generated receipt PDFs.
package storage

import (
	"context"
	"errors"
	"io"
)

// ErrNotFound is returned when no object exists at the requested path.
var ErrNotFound = errors.New("object not found")

// Buckets. Paths inside a bucket follow {organizationID}/{name}.
const (
	BucketLogos    = "logos"
	BucketReceipts = "receipts"
)

// ObjectStore persists binary artifacts under bucket-qualified paths.
type ObjectStore interface {
	Put(ctx context.Context, bucket, path string, r io.Reader, contentType string) error
	Get(ctx context.Context, bucket, path string) ([]byte, error)
	Delete(ctx context.Context, bucket, path string) error
}
