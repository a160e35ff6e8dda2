package assetpack

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/xrprofiles/internal/profile"
	"github.com/vk/xrprofiles/internal/registry"
	"github.com/vk/xrprofiles/internal/schema"
)

func newTestBuilder(t *testing.T) *Builder {
	t.Helper()
	validator, err := schema.NewValidator()
	require.NoError(t, err)
	return NewBuilder(validator)
}

// expandedFixture builds the expanded form of the acme-controller registry
// document used throughout the merge tests.
func expandedFixture(t *testing.T) *profile.Profile {
	t.Helper()
	doc, err := registry.ParseDocument([]byte(`{
		"profileId": "acme-controller",
		"layouts": {
			"left-right": {
				"selectComponentId": "trigger",
				"gamepadMapping": "xr-standard",
				"components": {
					"trigger": {
						"type": "trigger",
						"visualResponses": {
							"pressed": {
								"componentProperty": "button",
								"valueNodeProperty": "transform",
								"valueNodeName": "trigger-value",
								"minNodeName": "trigger-min",
								"maxNodeName": "trigger-max"
							}
						}
					},
					"menu": { "type": "button" }
				}
			}
		}
	}`))
	require.NoError(t, err)
	p, err := registry.Expand(doc)
	require.NoError(t, err)
	return p
}

func TestBuild_NilOverrideIsIdentity(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	expanded := expandedFixture(t)

	// --- Act ---
	merged, err := newTestBuilder(t).Build(context.Background(), expanded, nil)

	// --- Assert ---
	require.NoError(t, err)
	if diff := cmp.Diff(expanded, merged); diff != "" {
		t.Fatalf("merging with no override must be the identity (-expanded +merged):\n%s", diff)
	}
}

func TestBuild_EmptyOverrideIsIdentity(t *testing.T) {
	t.Parallel()

	expanded := expandedFixture(t)
	ov, err := ParseOverride([]byte(`{"profileId": "acme-controller", "overrides": {}}`))
	require.NoError(t, err)

	merged, err := newTestBuilder(t).Build(context.Background(), expanded, ov)
	require.NoError(t, err)
	if diff := cmp.Diff(expanded, merged); diff != "" {
		t.Fatalf("merging with an empty override must be the identity (-expanded +merged):\n%s", diff)
	}
}

func TestBuild_AssetPathOverride(t *testing.T) {
	t.Parallel()

	expanded := expandedFixture(t)
	ov, err := ParseOverride([]byte(`{
		"profileId": "acme-controller",
		"overrides": { "left-right": { "assetPath": "model.glb" } }
	}`))
	require.NoError(t, err)

	merged, err := newTestBuilder(t).Build(context.Background(), expanded, ov)
	require.NoError(t, err)

	layout := merged.Layouts[profile.HandednessLeftRight]
	assert.Equal(t, "model.glb", layout.AssetPath)
	if diff := cmp.Diff(expanded.Layouts[profile.HandednessLeftRight].Components, layout.Components); diff != "" {
		t.Fatalf("components must pass through unchanged (-registry +merged):\n%s", diff)
	}
	assert.Equal(t, "acme-controller", merged.ID, "the profile id is carried forward")
}

func TestBuild_VisualResponsesReplacedWholesale(t *testing.T) {
	t.Parallel()

	expanded := expandedFixture(t)
	// The override supplies a single response named differently from the
	// registry's. The merged set must contain only the override's entry;
	// nothing from the registry set survives.
	ov, err := ParseOverride([]byte(`{
		"profileId": "acme-controller",
		"overrides": {
			"left-right": {
				"components": {
					"trigger": {
						"visualResponses": {
							"touched": {
								"componentProperty": "state",
								"states": ["touched", "pressed"],
								"valueNodeProperty": "visibility",
								"valueNodeName": "trigger-glow"
							}
						}
					}
				}
			}
		}
	}`))
	require.NoError(t, err)

	merged, err := newTestBuilder(t).Build(context.Background(), expanded, ov)
	require.NoError(t, err)

	trigger := merged.Layouts[profile.HandednessLeftRight].Components["trigger"]
	require.Len(t, trigger.VisualResponses, 1)
	_, hasRegistryResponse := trigger.VisualResponses["pressed"]
	assert.False(t, hasRegistryResponse, "response sets are never interleaved field by field")
	assert.Contains(t, trigger.VisualResponses, "touched")

	menu := merged.Layouts[profile.HandednessLeftRight].Components["menu"]
	assert.Empty(t, menu.VisualResponses, "components not mentioned in the override pass through unchanged")
}

func TestBuild_UnknownHandednessSkipped(t *testing.T) {
	t.Parallel()

	expanded := expandedFixture(t)
	ov, err := ParseOverride([]byte(`{
		"profileId": "acme-controller",
		"overrides": { "right": { "assetPath": "right.glb" } }
	}`))
	require.NoError(t, err)

	merged, err := newTestBuilder(t).Build(context.Background(), expanded, ov)
	require.NoError(t, err)

	_, ok := merged.Layouts[profile.HandednessRight]
	assert.False(t, ok, "an override must never introduce a handedness variant")
	assert.Len(t, merged.Layouts, 1)
}

func TestBuild_UnknownComponentIsFatal(t *testing.T) {
	t.Parallel()

	expanded := expandedFixture(t)
	ov, err := ParseOverride([]byte(`{
		"profileId": "acme-controller",
		"overrides": {
			"left-right": {
				"components": { "tirgger": { "touchPointNodeName": "touch" } }
			}
		}
	}`))
	require.NoError(t, err)

	_, err = newTestBuilder(t).Build(context.Background(), expanded, ov)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"tirgger"`)
}

func TestBuild_ProfileIDMismatch(t *testing.T) {
	t.Parallel()

	expanded := expandedFixture(t)
	ov, err := ParseOverride([]byte(`{"profileId": "other-controller", "overrides": {}}`))
	require.NoError(t, err)

	_, err = newTestBuilder(t).Build(context.Background(), expanded, ov)
	require.Error(t, err)
}

func TestBuild_DoesNotMutateInputs(t *testing.T) {
	t.Parallel()

	expanded := expandedFixture(t)
	before, err := newTestBuilder(t).Build(context.Background(), expanded, nil)
	require.NoError(t, err)

	ov, err := ParseOverride([]byte(`{
		"profileId": "acme-controller",
		"overrides": {
			"left-right": {
				"assetPath": "model.glb",
				"components": { "trigger": { "visualResponses": {} } }
			}
		}
	}`))
	require.NoError(t, err)

	_, err = newTestBuilder(t).Build(context.Background(), expanded, ov)
	require.NoError(t, err)

	if diff := cmp.Diff(before, expanded); diff != "" {
		t.Fatalf("merge must not mutate the expanded input (-before +after):\n%s", diff)
	}
}

func TestLoadOverride(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "acme-controller.overrides.json")
	require.NoError(t, os.WriteFile(path,
		[]byte(`{"profileId": "acme-controller", "overrides": {"left-right": {"assetPath": "model.glb"}}}`), 0o600))

	ov, err := newTestBuilder(t).LoadOverride(context.Background(), path)
	require.NoError(t, err)
	require.NotNil(t, ov)
	assert.Equal(t, "model.glb", ov.Overrides[profile.HandednessLeftRight].AssetPath)
}

func TestLoadOverride_MissingFileIsNotAnError(t *testing.T) {
	t.Parallel()

	ov, err := newTestBuilder(t).LoadOverride(context.Background(), filepath.Join(t.TempDir(), "none.overrides.json"))
	require.NoError(t, err)
	assert.Nil(t, ov)
}

func TestOverridePathFor(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "profiles/acme.overrides.json", OverridePathFor("profiles/acme.json"))
}
