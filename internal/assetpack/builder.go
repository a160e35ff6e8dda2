package assetpack

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"os"
	"sort"
	"strings"

	"github.com/vk/xrprofiles/internal/ctxlog"
	"github.com/vk/xrprofiles/internal/profile"
	"github.com/vk/xrprofiles/internal/schema"
)

// Builder merges expanded registry profiles with asset override documents.
type Builder struct {
	validator *schema.Validator
}

// NewBuilder creates a Builder around the given schema validator.
func NewBuilder(validator *schema.Validator) *Builder {
	return &Builder{validator: validator}
}

// LoadOverride reads and schema-validates an override document from disk.
// A missing file is not an error: profiles without asset overrides are
// common, so callers get back (nil, nil) and merge with an empty override.
func (b *Builder) LoadOverride(ctx context.Context, path string) (*Override, error) {
	raw, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read override document %s: %w", path, err)
	}
	if err := b.validator.ValidateOverrideDocument(raw); err != nil {
		return nil, fmt.Errorf("override document %s: %w", path, err)
	}
	ov, err := ParseOverride(raw)
	if err != nil {
		return nil, fmt.Errorf("override document %s: %w", path, err)
	}
	ctxlog.FromContext(ctx).Debug("Override document loaded.", "path", path, "profileId", ov.ProfileID)
	return ov, nil
}

// Build merges an expanded registry profile with an override document into
// the concrete profile. The transformation is pure: neither input is
// mutated, and the profile id is carried forward unchanged. Passing a nil
// override is equivalent to an all-empty one.
func (b *Builder) Build(ctx context.Context, expanded *profile.Profile, ov *Override) (*profile.Profile, error) {
	logger := ctxlog.FromContext(ctx)
	if ov == nil {
		ov = &Override{ProfileID: expanded.ID}
	}
	if ov.ProfileID != "" && ov.ProfileID != expanded.ID {
		return nil, fmt.Errorf("override targets profile %q, not %q", ov.ProfileID, expanded.ID)
	}

	// An override may only customize layouts the registry declares. Unknown
	// handedness keys are skipped, never materialized.
	for _, h := range sortedHandedness(ov.Overrides) {
		if _, ok := expanded.Layouts[h]; !ok {
			logger.Warn("Override names a handedness absent from the registry profile, skipping.",
				"profileId", expanded.ID, "handedness", h)
		}
	}

	var errs []string
	layouts := make(map[profile.Handedness]profile.Layout, len(expanded.Layouts))
	for h, layout := range expanded.Layouts {
		lo, ok := ov.Overrides[h]
		if !ok {
			layouts[h] = layout
			continue
		}
		merged, mergeErrs := mergeLayout(layout, lo)
		for _, e := range mergeErrs {
			errs = append(errs, fmt.Sprintf("layout %q: %s", h, e))
		}
		layouts[h] = merged
	}
	if len(errs) > 0 {
		sort.Strings(errs)
		return nil, fmt.Errorf("merge of profile %q failed:\n- %s", expanded.ID, strings.Join(errs, "\n- "))
	}

	return &profile.Profile{ID: expanded.ID, Layouts: layouts}, nil
}

// mergeLayout applies one layout override. Asset path: override wins when
// present, else the layout keeps having none. Components not mentioned in
// the override pass through unchanged.
func mergeLayout(layout profile.Layout, lo LayoutOverride) (profile.Layout, []string) {
	out := profile.Layout{
		SelectComponentID: layout.SelectComponentID,
		GamepadMapping:    layout.GamepadMapping,
		AssetPath:         layout.AssetPath,
		Components:        maps.Clone(layout.Components),
	}
	if lo.AssetPath != "" {
		out.AssetPath = lo.AssetPath
	}

	var errs []string
	for _, id := range sortedComponentIDs(lo.Components) {
		base, ok := out.Components[id]
		if !ok {
			// The original tooling ignored these silently, which buried
			// typos in override documents. Treated as fatal here.
			errs = append(errs, fmt.Sprintf("override names component %q, which the registry layout does not declare", id))
			continue
		}
		co := lo.Components[id]
		for name, r := range co.VisualResponses {
			if err := r.Validate(); err != nil {
				errs = append(errs, fmt.Sprintf("component %q: visual response %q: %v", id, name, err))
			}
		}
		out.Components[id] = mergeComponent(base, co)
	}
	return out, errs
}

// mergeComponent applies one component override. The visual-response set is
// all-or-nothing: a non-nil override set fully replaces the registry's.
func mergeComponent(base profile.Component, co ComponentOverride) profile.Component {
	if co.TouchPointNodeName != "" {
		base.TouchPointNodeName = co.TouchPointNodeName
	}
	if co.VisualResponses != nil {
		base.VisualResponses = maps.Clone(co.VisualResponses)
	}
	return base
}

func sortedHandedness(m map[profile.Handedness]LayoutOverride) []profile.Handedness {
	keys := make([]profile.Handedness, 0, len(m))
	for h := range m {
		keys = append(keys, h)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

func sortedComponentIDs(m map[string]ComponentOverride) []string {
	ids := make([]string, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
