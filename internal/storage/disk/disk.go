// Package disk stores uploaded avatar files on the local filesystem.
package disk

import (
	"context"
	"os"
	"path/filepath"
)

type Store struct {
	dir string
}

func New(dir string) *Store {
	return &Store{dir: dir}
}

// Save writes content to <dir>/<filename>, creating the directory (and any
// parents) first. Directory creation is idempotent; generated filenames make
// overwrites a non-issue in practice.
func (s *Store) Save(ctx context.Context, filename string, content []byte) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(s.dir, filename), content, 0o644)
}
