package cache

import (
	"context"
	"os"
	"path/filepath"
)

// FileCache stores stamps as files under a directory. Stamps never expire
// on their own; a stale one is harmless because the pipeline re-checks the
// source hash and the converted output on every run.
type FileCache struct {
	dir string
}

// NewFileCache creates a file-based stamp store in the given directory.
// The directory will be created if it doesn't exist.
func NewFileCache(dir string) (Cache, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	return &FileCache{dir: dir}, nil
}

// Get retrieves a stamp. An absent file is a miss, not an error.
func (c *FileCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, err := os.ReadFile(c.path(key))
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

// Set stores a stamp, overwriting any previous value under the key.
func (c *FileCache) Set(ctx context.Context, key string, data []byte) error {
	path := c.path(key)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Close does nothing for a file-based store.
func (c *FileCache) Close() error {
	return nil
}

// path converts a stamp key to a file path.
// Uses a simple hash-based directory structure to avoid too many files in one dir.
func (c *FileCache) path(key string) string {
	hash := Hash([]byte(key))
	// Use first 2 chars as subdirectory for distribution
	subdir := hash[:2]
	filename := hash[2:] + ".stamp"
	return filepath.Join(c.dir, subdir, filename)
}

// Ensure FileCache implements Cache.
var _ Cache = (*FileCache)(nil)
