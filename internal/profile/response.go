// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines the VisualResponse structure, a rule binding a
// component's live numeric state to a property of a named 3D model node.
package profile

import (
	"errors"
	"fmt"
)

// ResponseSource identifies which channel of a component's state drives a
// visual response.
type ResponseSource string

const (
	SourceButton ResponseSource = "button"
	SourceXAxis  ResponseSource = "xAxis"
	SourceYAxis  ResponseSource = "yAxis"
	SourceState  ResponseSource = "state"
)

// Valid reports whether s is a known response source channel.
func (s ResponseSource) Valid() bool {
	switch s {
	case SourceButton, SourceXAxis, SourceYAxis, SourceState:
		return true
	}
	return false
}

// ResponseProperty identifies how the target node reacts: a boolean
// visibility toggle, or a continuous interpolation between two extremes.
type ResponseProperty string

const (
	PropertyTransform  ResponseProperty = "transform"
	PropertyVisibility ResponseProperty = "visibility"
)

// Valid reports whether p is a known response property.
func (p ResponseProperty) Valid() bool {
	return p == PropertyTransform || p == PropertyVisibility
}

// ComponentStateName names a discrete interaction state of a component.
type ComponentStateName string

const (
	StateDefault ComponentStateName = "default"
	StateTouched ComponentStateName = "touched"
	StatePressed ComponentStateName = "pressed"
)

// VisualResponse binds one component state channel to one model node. For
// transform responses, MinNodeName and MaxNodeName are the reference nodes at
// the 0.0 and 1.0 extremes and ValueNodeName is the node positioned between
// them. For visibility responses only ValueNodeName is used. Node names are
// structural references; they are not verified against any actual 3D asset
// at validation time.
type VisualResponse struct {
	Source        ResponseSource       `json:"componentProperty"`
	States        []ComponentStateName `json:"states,omitempty"`
	Property      ResponseProperty     `json:"valueNodeProperty"`
	ValueNodeName string               `json:"valueNodeName"`
	MinNodeName   string               `json:"minNodeName,omitempty"`
	MaxNodeName   string               `json:"maxNodeName,omitempty"`
}

// Validate checks the structural invariants of a response that the document
// schema cannot express, chiefly the node-name triple of transform responses.
func (v VisualResponse) Validate() error {
	switch {
	case !v.Source.Valid():
		return fmt.Errorf("unknown source channel %q", v.Source)
	case !v.Property.Valid():
		return fmt.Errorf("unknown property %q", v.Property)
	case v.ValueNodeName == "":
		return errors.New("missing valueNodeName")
	case v.Property == PropertyTransform && (v.MinNodeName == "" || v.MaxNodeName == ""):
		return errors.New("transform response must name both extreme nodes")
	case v.Property == PropertyTransform && v.MinNodeName == v.MaxNodeName:
		return fmt.Errorf("transform response uses node %q for both extremes", v.MinNodeName)
	}
	return nil
}

// AppliesTo reports whether the response is active in the given state. A
// response with no states listed applies in every state.
func (v VisualResponse) AppliesTo(state ComponentStateName) bool {
	if len(v.States) == 0 {
		return true
	}
	for _, s := range v.States {
		if s == state {
			return true
		}
	}
	return false
}
