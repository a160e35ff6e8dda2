package selection

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"
)

// FileStore is a Store backed by a single JSON file, the CLI's stand-in for
// the browser's local storage. Writes rewrite the whole file; the data is a
// handful of selection keys, never more.
type FileStore struct {
	path string

	mu     sync.Mutex
	values map[string]string
}

// NewFileStore creates a store over the given path. The file is created on
// first Set; a missing file reads as empty.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Get retrieves a previously stored value.
func (s *FileStore) Get(ctx context.Context, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.loadLocked(); err != nil {
		return "", false, err
	}
	v, ok := s.values[key]
	return v, ok, nil
}

// Set stores a value under the given key and rewrites the backing file.
func (s *FileStore) Set(ctx context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.loadLocked(); err != nil {
		return err
	}
	s.values[key] = value

	raw, err := json.MarshalIndent(s.values, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode selection state: %w", err)
	}
	if err := os.WriteFile(s.path, raw, 0o600); err != nil {
		return fmt.Errorf("failed to write selection state to %s: %w", s.path, err)
	}
	return nil
}

func (s *FileStore) loadLocked() error {
	if s.values != nil {
		return nil
	}
	s.values = make(map[string]string)

	raw, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read selection state from %s: %w", s.path, err)
	}
	if err := json.Unmarshal(raw, &s.values); err != nil {
		return fmt.Errorf("selection state file %s is corrupt: %w", s.path, err)
	}
	return nil
}
