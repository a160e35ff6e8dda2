// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines the Handedness enumeration and the mutual-exclusivity
// rule for handedness keys within a single profile.
package profile

import (
	"fmt"
	"sort"
	"strings"
)

// Handedness identifies one layout variant of a profile.
type Handedness string

const (
	// HandednessNone is a controller not associated with either hand.
	HandednessNone Handedness = "none"
	// HandednessLeft is a dedicated left-hand controller.
	HandednessLeft Handedness = "left"
	// HandednessRight is a dedicated right-hand controller.
	HandednessRight Handedness = "right"
	// HandednessLeftRight is a single layout shared by both hands.
	HandednessLeftRight Handedness = "left-right"
	// HandednessLeftRightNone is a single layout shared by both hands and
	// by unassociated controllers.
	HandednessLeftRightNone Handedness = "left-right-none"
)

// Valid reports whether h is one of the five known handedness values.
func (h Handedness) Valid() bool {
	switch h {
	case HandednessNone, HandednessLeft, HandednessRight, HandednessLeftRight, HandednessLeftRightNone:
		return true
	}
	return false
}

// allowedHandednessSets enumerates the key combinations a profile may
// declare. No combination mixes "both hands treated together" and "hands
// treated separately" forms.
var allowedHandednessSets = map[string]struct{}{
	"none":            {},
	"left,right":      {},
	"left,none,right": {},
	"left-right":      {},
	"left-right-none": {},
}

// ValidateHandednessSet checks that the given handedness keys form one of
// the permitted combinations.
func ValidateHandednessSet(keys []Handedness) error {
	names := make([]string, 0, len(keys))
	for _, h := range keys {
		if !h.Valid() {
			return fmt.Errorf("unknown handedness %q", h)
		}
		names = append(names, string(h))
	}
	sort.Strings(names)
	joined := strings.Join(names, ",")
	if _, ok := allowedHandednessSets[joined]; !ok {
		return fmt.Errorf("handedness keys [%s] are not a permitted combination", joined)
	}
	return nil
}
