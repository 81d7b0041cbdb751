// Package storage persists uploaded files on the local filesystem and hands
// back URLs under a configurable public prefix.
package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/linkupge/linkup-backend/internal/config"
)

type LocalStorage struct {
	basePath      string
	publicBaseURL string
}

func NewLocalStorage(cfg *config.StorageConfig) (*LocalStorage, error) {
	if err := os.MkdirAll(cfg.Path, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}
	return &LocalStorage{
		basePath:      cfg.Path,
		publicBaseURL: strings.TrimSuffix(cfg.PublicBaseURL, "/"),
	}, nil
}

// Save writes content under filename and returns its public URL. The
// filename must already be unique; callers generate collision-free names.
func (s *LocalStorage) Save(ctx context.Context, filename string, content io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	// Reject path traversal in generated names outright.
	if filepath.Base(filename) != filename {
		return "", fmt.Errorf("invalid filename %q", filename)
	}

	fullPath := filepath.Join(s.basePath, filename)
	f, err := os.Create(fullPath)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, content); err != nil {
		os.Remove(fullPath)
		return "", fmt.Errorf("failed to write file: %w", err)
	}

	return s.publicBaseURL + "/" + filename, nil
}

// PublicDir returns the directory served under the public base URL.
func (s *LocalStorage) PublicDir() string {
	return s.basePath
}
