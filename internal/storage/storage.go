package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
)

// ErrNotFound is returned by Get when a key has never been written.
var ErrNotFound = errors.New("storage: key not found")

// Store is a string-keyed store of JSON documents.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, data []byte) error
	Delete(ctx context.Context, key string) error
}

// quarantiner is implemented by stores that can set a corrupt document aside.
type quarantiner interface {
	Quarantine(ctx context.Context, key string) (string, error)
}

// BaseDir returns the root data directory (~/.ftt).
func BaseDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".ftt"), nil
}

// LoadJSON reads key into v. A missing key returns ErrNotFound and leaves v
// untouched. A document that does not parse is quarantined when the store
// supports it, and an error is returned.
func LoadJSON(ctx context.Context, s Store, key string, v any) error {
	data, err := s.Get(ctx, key)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		if q, ok := s.(quarantiner); ok {
			if backup, qerr := q.Quarantine(ctx, key); qerr == nil {
				return fmt.Errorf("corrupt JSON in %q (backed up to %s): %w", key, backup, err)
			}
		}
		return fmt.Errorf("corrupt JSON in %q: %w", key, err)
	}
	return nil
}

// SaveJSON marshals v and writes it under key.
func SaveJSON(ctx context.Context, s Store, key string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("storage error marshalling %q: %w", key, err)
	}
	return s.Put(ctx, key, data)
}

var validKey = regexp.MustCompile(`^[a-z0-9_\-]+$`)

// FileStore keeps one JSON file per key under Dir.
type FileStore struct {
	Dir string
}

// NewFileStore returns a FileStore rooted at dir.
func NewFileStore(dir string) *FileStore {
	return &FileStore{Dir: dir}
}

func (fs *FileStore) path(key string) (string, error) {
	if !validKey.MatchString(key) {
		return "", fmt.Errorf("storage: invalid key %q", key)
	}
	return filepath.Join(fs.Dir, key+".json"), nil
}

// Get reads the file for key.
func (fs *FileStore) Get(_ context.Context, key string) ([]byte, error) {
	path, err := fs.path(key)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("storage error reading %s: %w", path, err)
	}
	return data, nil
}

// Put atomically writes the file for key.
func (fs *FileStore) Put(_ context.Context, key string, data []byte) error {
	path, err := fs.path(key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(fs.Dir, 0o700); err != nil {
		return fmt.Errorf("storage error creating directories: %w", err)
	}

	// Atomic write: write to temp file then rename.
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o600); err != nil {
		return fmt.Errorf("storage error writing temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("storage error renaming temp file: %w", err)
	}
	return nil
}

// Delete removes the file for key. Deleting a missing key is not an error.
func (fs *FileStore) Delete(_ context.Context, key string) error {
	path, err := fs.path(key)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("storage error removing %s: %w", path, err)
	}
	return nil
}

// Quarantine renames the file for key to <file>.corrupt and returns the new path.
func (fs *FileStore) Quarantine(_ context.Context, key string) (string, error) {
	path, err := fs.path(key)
	if err != nil {
		return "", err
	}
	backupPath := path + ".corrupt"
	if err := os.Rename(path, backupPath); err != nil {
		return "", err
	}
	return backupPath, nil
}
