package registry

import (
	"fmt"
	"sort"

	"github.com/vk/xrprofiles/internal/profile"
)

// Registry holds the expanded profiles for a single application instance,
// keyed by profile id.
type Registry struct {
	profiles map[string]*profile.Profile
}

// New creates and initializes a new, empty Registry instance.
func New() *Registry {
	return &Registry{
		profiles: make(map[string]*profile.Profile),
	}
}

// Add registers an expanded profile. Profile ids are unique within a
// registry; a duplicate is a configuration error.
func (r *Registry) Add(p *profile.Profile) error {
	if _, exists := r.profiles[p.ID]; exists {
		return fmt.Errorf("profile %q is already registered", p.ID)
	}
	r.profiles[p.ID] = p
	return nil
}

// Profile returns the expanded profile with the given id.
func (r *Registry) Profile(id string) (*profile.Profile, bool) {
	p, ok := r.profiles[id]
	return p, ok
}

// IDs returns all registered profile ids in sorted order.
func (r *Registry) IDs() []string {
	ids := make([]string, 0, len(r.profiles))
	for id := range r.profiles {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Len returns the number of registered profiles.
func (r *Registry) Len() int {
	return len(r.profiles)
}
