package store

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// FileKV persists values as files under a base directory, one file per key.
// Writes go through a temp file and rename so a crash mid-write never leaves
// a truncated snapshot behind.
type FileKV struct {
	dir string
}

// NewFileKV creates the base directory if needed and returns a file-backed KV.
func NewFileKV(dir string) (*FileKV, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create kv directory %s: %w", dir, err)
	}
	return &FileKV{dir: dir}, nil
}

func (f *FileKV) Set(key, value string) error {
	path := f.path(key)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, []byte(value), 0o600); err != nil {
		return fmt.Errorf("write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("rename %s: %w", path, err)
	}
	return nil
}

func (f *FileKV) Get(key string) (string, bool, error) {
	data, err := os.ReadFile(f.path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("read key %s: %w", key, err)
	}
	return string(data), true, nil
}

// path maps a key to a file name; separators are flattened so keys like
// "wallet/credentials" stay inside the base directory.
func (f *FileKV) path(key string) string {
	name := strings.NewReplacer("/", "_", string(filepath.Separator), "_").Replace(key)
	return filepath.Join(f.dir, name+".json")
}

var _ KV = (*FileKV)(nil)
