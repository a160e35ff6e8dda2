package registry

import (
	"maps"

	"github.com/vk/xrprofiles/internal/profile"
)

// xr-standard reserves the first four button indices and the first two axis
// pairs for the well-known component types, whether or not a layout declares
// all of them.
var standardButtonSlots = map[profile.ComponentType]int{
	profile.ComponentTrigger:    0,
	profile.ComponentSqueeze:    1,
	profile.ComponentTouchpad:   2,
	profile.ComponentThumbstick: 3,
}

var standardAxisSlots = map[profile.ComponentType]int{
	profile.ComponentTouchpad:   0,
	profile.ComponentThumbstick: 2,
}

// Expand validates a registry document and converts it into a fully expanded
// Profile. The transformation is pure and deterministic: the same document
// always yields the same profile, and a document whose indices are already
// explicit passes through unchanged.
func Expand(doc *Document) (*profile.Profile, error) {
	if err := validateDocument(doc); err != nil {
		return nil, err
	}

	layouts := make(map[profile.Handedness]profile.Layout, len(doc.Layouts))
	for h, raw := range doc.Layouts {
		layouts[h] = expandLayout(raw)
	}
	return &profile.Profile{ID: doc.ProfileID, Layouts: layouts}, nil
}

func expandLayout(raw *RawLayout) profile.Layout {
	assigner := newIndexAssigner(raw.GamepadMapping)
	components := make(map[string]profile.Component, len(raw.Components))

	// Declaration order matters: later components take whatever indices the
	// earlier ones left free.
	for _, id := range raw.ComponentOrder {
		rc := raw.Components[id]
		c := profile.Component{
			ID:                 id,
			Type:               rc.Type,
			Reserved:           rc.Reserved,
			TouchPointNodeName: rc.TouchPointNodeName,
			GamepadIndices:     cloneIndices(rc.GamepadIndices),
			VisualResponses:    maps.Clone(rc.VisualResponses),
		}
		assigner.apply(&c)
		components[id] = c
	}

	return profile.Layout{
		SelectComponentID: raw.SelectComponentID,
		GamepadMapping:    raw.GamepadMapping,
		Components:        components,
	}
}

func cloneIndices(gi profile.GamepadIndices) profile.GamepadIndices {
	out := profile.GamepadIndices{}
	if gi.Button != nil {
		v := *gi.Button
		out.Button = &v
	}
	if gi.XAxis != nil {
		v := *gi.XAxis
		out.XAxis = &v
	}
	if gi.YAxis != nil {
		v := *gi.YAxis
		out.YAxis = &v
	}
	return out
}

// indexAssigner resolves implicit gamepad indices under the xr-standard
// convention. For any other mapping it leaves components untouched: only
// explicitly authored indices survive.
type indexAssigner struct {
	standard    bool
	buttonSlots map[profile.ComponentType]int
	axisSlots   map[profile.ComponentType]int
	nextButton  int
	nextAxis    int
}

func newIndexAssigner(mapping profile.GamepadMapping) *indexAssigner {
	a := &indexAssigner{
		standard:   mapping == profile.MappingXRStandard,
		nextButton: 4,
		nextAxis:   4,
	}
	if a.standard {
		a.buttonSlots = maps.Clone(standardButtonSlots)
		a.axisSlots = maps.Clone(standardAxisSlots)
	}
	return a
}

// apply fills in any indices the document left implicit. Reserved components
// participate: they occupy physical slots even though they are excluded from
// interactive wiring.
func (a *indexAssigner) apply(c *profile.Component) {
	if !a.standard {
		return
	}

	if c.GamepadIndices.Button == nil {
		idx, ok := a.buttonSlots[c.Type]
		if ok {
			delete(a.buttonSlots, c.Type)
		} else {
			idx = a.nextButton
			a.nextButton++
		}
		c.GamepadIndices.Button = &idx
	}

	if c.Type.HasAxes() && c.GamepadIndices.XAxis == nil && c.GamepadIndices.YAxis == nil {
		x, ok := a.axisSlots[c.Type]
		if ok {
			delete(a.axisSlots, c.Type)
		} else {
			x = a.nextAxis
			a.nextAxis += 2
		}
		y := x + 1
		c.GamepadIndices.XAxis = &x
		c.GamepadIndices.YAxis = &y
	}
}
