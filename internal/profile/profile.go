// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines the Profile structure, the top-level entity queried by
// the viewer and the motion-controller runtime.
package profile

import "sort"

// Profile is a fully expanded input profile: a stable identifier plus one
// Layout per declared handedness key.
type Profile struct {
	ID      string                `json:"profileId"`
	Layouts map[Handedness]Layout `json:"layouts"`
}

// Layout returns the layout for the given handedness key.
func (p *Profile) Layout(h Handedness) (Layout, bool) {
	l, ok := p.Layouts[h]
	return l, ok
}

// Handednesses returns the declared handedness keys in sorted order.
func (p *Profile) Handednesses() []Handedness {
	keys := make([]Handedness, 0, len(p.Layouts))
	for h := range p.Layouts {
		keys = append(keys, h)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}
