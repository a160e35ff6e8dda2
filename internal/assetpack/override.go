package assetpack

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/vk/xrprofiles/internal/profile"
	"github.com/vk/xrprofiles/internal/registry"
)

// Override is a parsed asset override document: the same shape as a profile's
// layouts but with every field optional. A nil *Override behaves like an
// all-empty one.
type Override struct {
	ProfileID string                                `json:"profileId"`
	Overrides map[profile.Handedness]LayoutOverride `json:"overrides"`
}

// LayoutOverride customizes one handedness variant. An empty AssetPath means
// the registry value (usually none) is kept; a nil Components map touches
// nothing.
type LayoutOverride struct {
	AssetPath  string                       `json:"assetPath,omitempty"`
	Components map[string]ComponentOverride `json:"components,omitempty"`
}

// ComponentOverride customizes one component. A non-nil VisualResponses map
// replaces the registry's response set for that component in its entirety.
type ComponentOverride struct {
	TouchPointNodeName string                            `json:"touchPointNodeName,omitempty"`
	VisualResponses    map[string]profile.VisualResponse `json:"visualResponses,omitempty"`
}

// ParseOverride decodes a raw override document. Callers are expected to
// have schema-validated the bytes first.
func ParseOverride(raw []byte) (*Override, error) {
	var ov Override
	if err := json.Unmarshal(raw, &ov); err != nil {
		return nil, fmt.Errorf("failed to decode override document: %w", err)
	}
	return &ov, nil
}

// OverridePathFor returns the conventional override document path for a
// registry document path: the ".json" suffix replaced by ".overrides.json".
func OverridePathFor(registryPath string) string {
	return strings.TrimSuffix(registryPath, ".json") + registry.OverrideSuffix
}
