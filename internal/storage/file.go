package storage

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
)

// FileBackend stores one JSON document per key under a directory.
//
// This is the closest analogue to browser local storage: human-inspectable
// records, no daemon, no schema. Writes go through a temp file and rename
// so a crash mid-write never leaves a half-written record behind.
type FileBackend struct {
	dir string
}

// OpenFileDir creates the directory if needed and returns a backend over it.
func OpenFileDir(dir string) (*FileBackend, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}
	return &FileBackend{dir: dir}, nil
}

// Close is a no-op; the backend holds no open handles between calls.
func (b *FileBackend) Close() error {
	return nil
}

// Get returns the record stored at key, or ok=false if none exists.
func (b *FileBackend) Get(_ context.Context, key string) ([]byte, bool, error) {
	data, err := os.ReadFile(b.path(key))
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("read %q: %w", key, err)
	}
	return data, true, nil
}

// Put replaces the record at key with value, atomically.
func (b *FileBackend) Put(_ context.Context, key string, value []byte) error {
	target := b.path(key)
	tmp, err := os.CreateTemp(b.dir, ".cart-*")
	if err != nil {
		return fmt.Errorf("write %q: %w", key, err)
	}
	if _, err := tmp.Write(value); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write %q: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("write %q: %w", key, err)
	}
	if err := os.Rename(tmp.Name(), target); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("write %q: %w", key, err)
	}
	return nil
}

// path maps a key to a filename. Keys are path-escaped so tenant
// identifiers containing separators cannot escape the storage directory.
func (b *FileBackend) path(key string) string {
	return filepath.Join(b.dir, url.PathEscape(key)+".json")
}
