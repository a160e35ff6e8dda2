package registry

import (
	"fmt"
	"sort"
	"strings"

	"github.com/vk/xrprofiles/internal/profile"
)

// validateDocument performs the invariant checks that JSON Schema cannot
// express. Every violation is fatal; expansion never proceeds on a document
// that fails here.
func validateDocument(doc *Document) error {
	var errs []string

	if doc.ProfileID == "" {
		errs = append(errs, "profileId must not be empty")
	}
	if len(doc.Layouts) == 0 {
		errs = append(errs, "document declares no layouts")
	}

	keys := make([]profile.Handedness, 0, len(doc.Layouts))
	for h := range doc.Layouts {
		keys = append(keys, h)
	}
	if err := profile.ValidateHandednessSet(keys); err != nil {
		errs = append(errs, err.Error())
	}

	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	for _, h := range keys {
		errs = append(errs, validateLayout(h, doc.Layouts[h])...)
	}

	if len(errs) > 0 {
		return fmt.Errorf("registry document %q validation failed:\n- %s", doc.ProfileID, strings.Join(errs, "\n- "))
	}
	return nil
}

func validateLayout(h profile.Handedness, l *RawLayout) []string {
	var errs []string

	if l == nil || len(l.Components) == 0 {
		errs = append(errs, fmt.Sprintf("layout %q declares no components", h))
		return errs
	}

	if _, ok := l.Components[l.SelectComponentID]; !ok {
		errs = append(errs, fmt.Sprintf("layout %q: selectComponentId %q does not name a declared component", h, l.SelectComponentID))
	}

	for _, id := range l.ComponentOrder {
		c := l.Components[id]
		if !c.Type.Valid() {
			errs = append(errs, fmt.Sprintf("layout %q: component %q has unknown type %q", h, id, c.Type))
		}
		names := make([]string, 0, len(c.VisualResponses))
		for name := range c.VisualResponses {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			if err := c.VisualResponses[name].Validate(); err != nil {
				errs = append(errs, fmt.Sprintf("layout %q: component %q: visual response %q: %v", h, id, name, err))
			}
		}
	}
	return errs
}
