// Package local implements ObjectStorage on the filesystem. Buckets map
// to directories under a root; intended for development and tests.
package local

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"invana/internal/domain"
	"invana/internal/port"
)

type localClient struct {
	root string
}

// NewLocalClient creates a filesystem-backed ObjectStorage rooted at root.
func NewLocalClient(root string) port.ObjectStorage {
	return &localClient{root: root}
}

func (c *localClient) path(bucket, key string) string {
	return filepath.Join(c.root, bucket, filepath.FromSlash(key))
}

func (c *localClient) Upload(_ context.Context, input port.UploadInput) error {
	p := c.path(input.Bucket, input.Key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return fmt.Errorf("local upload mkdir: %w", err)
	}
	f, err := os.Create(p)
	if err != nil {
		return fmt.Errorf("local upload: %w", err)
	}
	defer f.Close()
	if _, err := io.Copy(f, input.Body); err != nil {
		return fmt.Errorf("local upload write: %w", err)
	}
	return nil
}

func (c *localClient) Download(_ context.Context, bucket, key string) ([]byte, error) {
	data, err := os.ReadFile(c.path(bucket, key))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("local download %s: %w", key, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("local download: %w", err)
	}
	return data, nil
}

func (c *localClient) Delete(_ context.Context, bucket, key string) error {
	if err := os.Remove(c.path(bucket, key)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("local delete: %w", err)
	}
	return nil
}
