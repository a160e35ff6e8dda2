// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines the Layout structure, one handedness variant of a
// profile: its component map, the designated select component, and the asset
// supplied by the merge step.
package profile

import "sort"

// GamepadMapping describes how a layout's indices relate to a physical
// gamepad's native button/axis arrays.
type GamepadMapping string

const (
	// MappingNone means only explicitly authored indices are meaningful.
	MappingNone GamepadMapping = ""
	// MappingXRStandard is the standard WebXR gamepad index convention.
	MappingXRStandard GamepadMapping = "xr-standard"
)

// Layout is one handedness variant of a profile. Components holds every
// declared component, reserved ones included. AssetPath is empty until an
// asset override supplies it; consumers that need a model must treat an empty
// AssetPath as a fatal configuration error.
type Layout struct {
	SelectComponentID string               `json:"selectComponentId"`
	GamepadMapping    GamepadMapping       `json:"gamepadMapping,omitempty"`
	Components        map[string]Component `json:"components"`
	AssetPath         string               `json:"assetPath,omitempty"`
}

// Component returns the component with the given id.
func (l Layout) Component(id string) (Component, bool) {
	c, ok := l.Components[id]
	return c, ok
}

// InteractiveComponentIDs returns the ids of all non-reserved components in
// sorted order.
func (l Layout) InteractiveComponentIDs() []string {
	ids := make([]string, 0, len(l.Components))
	for id, c := range l.Components {
		if c.Reserved {
			continue
		}
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
