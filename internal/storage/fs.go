package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// FileStore keeps images as <dir>/<id>.png on the local filesystem.
type FileStore struct {
	dir string
}

func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload dir: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

func (s *FileStore) path(id string) string {
	// filepath.Base guards against path traversal in the id.
	return filepath.Join(s.dir, filepath.Base(id)+".png")
}

func (s *FileStore) Save(_ context.Context, id string, data []byte) error {
	if err := os.WriteFile(s.path(id), data, 0o644); err != nil {
		return fmt.Errorf("failed to write image: %w", err)
	}
	return nil
}

func (s *FileStore) Load(_ context.Context, id string) ([]byte, error) {
	data, err := os.ReadFile(s.path(id))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to read image: %w", err)
	}
	return data, nil
}
