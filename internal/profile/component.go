// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines the Component structure, one physical control on a
// controller, together with its resolved gamepad data-source indices.
package profile

// ComponentType enumerates the five kinds of physical controls.
type ComponentType string

const (
	ComponentTrigger    ComponentType = "trigger"
	ComponentSqueeze    ComponentType = "squeeze"
	ComponentTouchpad   ComponentType = "touchpad"
	ComponentThumbstick ComponentType = "thumbstick"
	ComponentButton     ComponentType = "button"
)

// Valid reports whether t is a known component type.
func (t ComponentType) Valid() bool {
	switch t {
	case ComponentTrigger, ComponentSqueeze, ComponentTouchpad, ComponentThumbstick, ComponentButton:
		return true
	}
	return false
}

// HasAxes reports whether components of this type read axis data.
func (t ComponentType) HasAxes() bool {
	return t == ComponentTouchpad || t == ComponentThumbstick
}

// GamepadIndices locates a component's data sources within a flat gamepad
// input array. A nil index means the component does not read that channel.
type GamepadIndices struct {
	Button *int `json:"button,omitempty"`
	XAxis  *int `json:"xAxis,omitempty"`
	YAxis  *int `json:"yAxis,omitempty"`
}

// Component identifies one physical control. A reserved component is present
// on the hardware but not exposed for interaction; it keeps its place in the
// layout for documentation and index assignment but is excluded from runtime
// wiring.
type Component struct {
	ID                 string                    `json:"-"`
	Type               ComponentType             `json:"type"`
	Reserved           bool                      `json:"reserved,omitempty"`
	TouchPointNodeName string                    `json:"touchPointNodeName,omitempty"`
	GamepadIndices     GamepadIndices            `json:"gamepadIndices"`
	VisualResponses    map[string]VisualResponse `json:"visualResponses,omitempty"`
}
