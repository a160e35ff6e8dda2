package motion

import (
	"fmt"
	"math"

	"github.com/vk/xrprofiles/internal/profile"
)

// Touch thresholds below which an input is considered at rest.
const (
	ButtonTouchThreshold = 0.05
	AxisTouchThreshold   = 0.1
)

// ComponentValues is the live state of one component after an Update.
type ComponentValues struct {
	State  profile.ComponentStateName
	Button float64
	XAxis  float64
	YAxis  float64
}

// Controller binds one layout of a concrete profile to live gamepad input.
// It is not safe for concurrent use; the viewer's frame loop owns it.
type Controller struct {
	profileID  string
	handedness profile.Handedness
	layout     profile.Layout
	values     map[string]ComponentValues
}

// NewController creates a runtime controller for the given handedness of a
// concrete profile. The layout must exist and must carry an asset path: a
// merged profile without one cannot be visualized, and per the merge
// contract that configuration error surfaces here, at consumption time.
func NewController(p *profile.Profile, h profile.Handedness) (*Controller, error) {
	layout, ok := p.Layout(h)
	if !ok {
		return nil, fmt.Errorf("profile %q has no layout for handedness %q", p.ID, h)
	}
	if layout.AssetPath == "" {
		return nil, fmt.Errorf("profile %q layout %q has no asset path", p.ID, h)
	}

	values := make(map[string]ComponentValues)
	for _, id := range layout.InteractiveComponentIDs() {
		values[id] = ComponentValues{State: profile.StateDefault}
	}
	return &Controller{
		profileID:  p.ID,
		handedness: h,
		layout:     layout,
		values:     values,
	}, nil
}

// ProfileID returns the id of the profile this controller was built from.
func (c *Controller) ProfileID() string { return c.profileID }

// Handedness returns the layout variant this controller drives.
func (c *Controller) Handedness() profile.Handedness { return c.handedness }

// AssetPath returns the 3D model the viewer should load for this controller.
func (c *Controller) AssetPath() string { return c.layout.AssetPath }

// Update recomputes every interactive component's values from the given
// frame. Indices outside the frame's arrays read as at-rest.
func (c *Controller) Update(g Gamepad) {
	buttons := g.Buttons()
	axes := g.Axes()

	for id := range c.values {
		component := c.layout.Components[id]
		v := ComponentValues{}

		if idx := component.GamepadIndices.Button; idx != nil && *idx < len(buttons) {
			b := buttons[*idx]
			v.Button = clamp(b.Value, 0, 1)
			v.State = buttonState(b, v.Button)
		} else {
			v.State = profile.StateDefault
		}

		if idx := component.GamepadIndices.XAxis; idx != nil && *idx < len(axes) {
			v.XAxis = clamp(axes[*idx], -1, 1)
		}
		if idx := component.GamepadIndices.YAxis; idx != nil && *idx < len(axes) {
			v.YAxis = clamp(axes[*idx], -1, 1)
		}
		if v.State == profile.StateDefault && axisTouched(v.XAxis, v.YAxis) {
			v.State = profile.StateTouched
		}

		c.values[id] = v
	}
}

// Component returns the current values of one interactive component.
func (c *Controller) Component(id string) (ComponentValues, bool) {
	v, ok := c.values[id]
	return v, ok
}

// Selecting reports whether the layout's designated select component is
// currently pressed.
func (c *Controller) Selecting() bool {
	v, ok := c.values[c.layout.SelectComponentID]
	return ok && v.State == profile.StatePressed
}

func buttonState(b GamepadButton, value float64) profile.ComponentStateName {
	switch {
	case b.Pressed || value >= 1:
		return profile.StatePressed
	case b.Touched || value > ButtonTouchThreshold:
		return profile.StateTouched
	}
	return profile.StateDefault
}

func axisTouched(x, y float64) bool {
	return math.Abs(x) > AxisTouchThreshold || math.Abs(y) > AxisTouchThreshold
}
