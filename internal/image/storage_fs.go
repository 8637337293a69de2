// Copyright (c) 2026 Harmonia. All rights reserved.

package image

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// FsStorage implements [FileStorage] against a local directory tree, one
// file per blob at basePath/path (see [Image.Path]'s two-level hash
// sharding). No object-storage SDK appears among the retrieved examples'
// dependencies for this concern, so this mirrors the original's own
// filesystem-backed storage adapter (original_source/src/infra/storage.rs)
// rather than reaching for an unrelated client library.
type FsStorage struct {
	basePath string
}

// NewFsStorage constructs an [FsStorage] rooted at basePath. basePath is
// created if it does not already exist.
func NewFsStorage(basePath string) (*FsStorage, error) {
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("image: creating storage root %s: %w", basePath, err)
	}
	return &FsStorage{basePath: basePath}, nil
}

func (s *FsStorage) Write(ctx context.Context, path string, data []byte) error {
	full := filepath.Join(s.basePath, filepath.FromSlash(path))
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return fmt.Errorf("image: creating blob directory: %w", err)
	}
	if err := os.WriteFile(full, data, 0o644); err != nil {
		return fmt.Errorf("image: writing blob %s: %w", path, err)
	}
	return nil
}

func (s *FsStorage) Remove(ctx context.Context, path string) error {
	full := filepath.Join(s.basePath, filepath.FromSlash(path))
	if err := os.Remove(full); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("image: removing blob %s: %w", path, err)
	}
	return nil
}
