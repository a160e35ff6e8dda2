package selection

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"github.com/vk/xrprofiles/internal/ctxlog"
	"github.com/vk/xrprofiles/internal/profile"
)

// ErrSuperseded reports that a selection finished loading after a newer
// selection had already started. The result was discarded; the newer request
// owns the outcome.
var ErrSuperseded = errors.New("selection superseded by a newer request")

// CurrentProfileKey is the store key under which the active profile id is
// persisted.
const CurrentProfileKey = "profileId"

// LoadFunc resolves a profile id into its concrete profile. Loads may be
// slow (remote fetch); the Selector serializes nothing, it only arbitrates
// completion order.
type LoadFunc func(ctx context.Context, profileID string) (*profile.Profile, error)

// Selector owns the current profile selection. Concurrent Select calls race
// freely; the sequence number decides the winner, never completion order.
type Selector struct {
	store Store
	load  LoadFunc

	seq atomic.Uint64

	mu        sync.Mutex
	currentID string
	current   *profile.Profile
}

// NewSelector creates a Selector. The store may be nil when persistence is
// not wanted.
func NewSelector(store Store, load LoadFunc) *Selector {
	return &Selector{store: store, load: load}
}

// Select loads the given profile and, if no newer selection started in the
// meantime, makes it current and persists the choice. A stale completion
// returns ErrSuperseded and leaves the current selection untouched. A failed
// load likewise leaves the previous selection in place.
func (s *Selector) Select(ctx context.Context, profileID string) (*profile.Profile, error) {
	seq := s.seq.Add(1)

	p, err := s.load(ctx, profileID)

	s.mu.Lock()
	defer s.mu.Unlock()
	if seq != s.seq.Load() {
		return nil, ErrSuperseded
	}
	if err != nil {
		return nil, err
	}

	s.currentID = profileID
	s.current = p

	if s.store != nil {
		if err := s.store.Set(ctx, CurrentProfileKey, profileID); err != nil {
			// Persistence is best-effort; the in-memory selection stands.
			ctxlog.FromContext(ctx).Warn("Failed to persist profile selection.", "profileId", profileID, "error", err)
		}
	}
	return p, nil
}

// Current returns the active selection, if any.
func (s *Selector) Current() (string, *profile.Profile, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentID, s.current, s.current != nil
}

// Restore re-selects the profile persisted in the store. It returns false
// without error when nothing was persisted.
func (s *Selector) Restore(ctx context.Context) (*profile.Profile, bool, error) {
	if s.store == nil {
		return nil, false, nil
	}
	id, ok, err := s.store.Get(ctx, CurrentProfileKey)
	if err != nil || !ok {
		return nil, false, err
	}
	p, err := s.Select(ctx, id)
	if err != nil {
		return nil, false, err
	}
	return p, true, nil
}
