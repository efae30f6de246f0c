package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// DiskStore is an ObjectStore backed by the local filesystem, rooted at a
// base directory. Content types are tracked by file extension only.
type DiskStore struct {
	basePath string
}

// NewDiskStore creates a disk-backed object store rooted at basePath.
func NewDiskStore(basePath string) (*DiskStore, error) {
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}
	return &DiskStore{basePath: basePath}, nil
}

// Put stores an object through a temp file and rename, so a failed write
// never leaves a truncated object at the final path.
func (s *DiskStore) Put(ctx context.Context, bucket, path string, r io.Reader, contentType string) error {
	full, err := s.resolve(bucket, path)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return fmt.Errorf("failed to create object directory: %w", err)
	}

	f, err := os.CreateTemp(filepath.Dir(full), filepath.Base(full)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create object: %w", err)
	}

	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(f.Name())
		return fmt.Errorf("failed to write object: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return fmt.Errorf("failed to write object: %w", err)
	}

	if err := os.Rename(f.Name(), full); err != nil {
		os.Remove(f.Name())
		return fmt.Errorf("failed to store object: %w", err)
	}
	return nil
}

func (s *DiskStore) Get(ctx context.Context, bucket, path string) ([]byte, error) {
	full, err := s.resolve(bucket, path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(full)
	if os.IsNotExist(err) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read object: %w", err)
	}
	return data, nil
}

func (s *DiskStore) Delete(ctx context.Context, bucket, path string) error {
	full, err := s.resolve(bucket, path)
	if err != nil {
		return err
	}

	err = os.Remove(full)
	if os.IsNotExist(err) {
		return ErrNotFound
	}
	return err
}

// resolve maps a bucket-qualified object path to a location under basePath,
// rejecting paths that would escape it.
func (s *DiskStore) resolve(bucket, path string) (string, error) {
	clean := filepath.Clean(filepath.Join(bucket, filepath.FromSlash(path)))
	if strings.HasPrefix(clean, "..") || filepath.IsAbs(clean) {
		return "", fmt.Errorf("invalid object path %q", path)
	}
	return filepath.Join(s.basePath, clean), nil
}
