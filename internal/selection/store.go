package selection

import (
	"context"
	"sync"
)

// Store persists UI selections between sessions. Implementations must be
// safe for concurrent use.
type Store interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
}

// MemoryStore is an ephemeral Store backed by a sync.Map. It is suitable
// for tests and for sessions where selections need not survive a restart.
type MemoryStore struct {
	values sync.Map
}

// NewMemoryStore creates a new, empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Get retrieves a previously stored value.
func (s *MemoryStore) Get(ctx context.Context, key string) (string, bool, error) {
	v, ok := s.values.Load(key)
	if !ok {
		return "", false, nil
	}
	return v.(string), true, nil
}

// Set stores a value under the given key.
func (s *MemoryStore) Set(ctx context.Context, key, value string) error {
	s.values.Store(key, value)
	return nil
}
