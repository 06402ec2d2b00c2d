package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// FileBlob stores each partition as a JSON file under a base directory.
type FileBlob struct {
	baseDir string
}

// NewFileBlob ensures the base directory exists and returns a handle.
func NewFileBlob(baseDir string) (*FileBlob, error) {
	if baseDir == "" {
		baseDir = "./data"
	}
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("create store directory: %w", err)
	}
	return &FileBlob{baseDir: baseDir}, nil
}

// Get reads the partition file. An absent file is not an error.
func (b *FileBlob) Get(_ context.Context, key string) ([]byte, error) {
	raw, err := os.ReadFile(b.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read partition %s: %w", key, err)
	}
	return raw, nil
}

// Put replaces the partition file. The write goes through a temp file and
// rename so a crash mid-write cannot leave a truncated partition behind.
func (b *FileBlob) Put(_ context.Context, key string, data []byte) error {
	path := b.path(key)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write partition %s: %w", key, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("commit partition %s: %w", key, err)
	}
	return nil
}

func (b *FileBlob) path(key string) string {
	return filepath.Join(b.baseDir, key+".json")
}
