package app

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testRegistryDoc = `{
	"profileId": "acme-controller",
	"layouts": {
		"left-right": {
			"selectComponentId": "trigger",
			"gamepadMapping": "xr-standard",
			"components": {
				"trigger": { "type": "trigger" },
				"thumbstick": { "type": "thumbstick" }
			}
		}
	}
}`

const testOverrideDoc = `{
	"profileId": "acme-controller",
	"overrides": {
		"left-right": { "assetPath": "acme-controller/controller.glb" }
	}
}`

// writeProfileDir lays out a profiles directory with one registry document
// and its override sibling.
func writeProfileDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "acme-controller.json"), []byte(testRegistryDoc), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "acme-controller.overrides.json"), []byte(testOverrideDoc), 0o600))
	return dir
}

func TestNewConfig(t *testing.T) {
	t.Parallel()

	t.Run("requires a source", func(t *testing.T) {
		t.Parallel()
		_, err := NewConfig(Config{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "profiles directory or a remote registry")
	})

	t.Run("rejects invalid port", func(t *testing.T) {
		t.Parallel()
		_, err := NewConfig(Config{ProfilesPath: "profiles", Port: 70000})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid port")
	})

	t.Run("watch needs a local directory", func(t *testing.T) {
		t.Parallel()
		_, err := NewConfig(Config{RemoteRegistry: "https://registry.example", Watch: true, Port: 8080})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "local profiles directory")
	})

	t.Run("watch needs the server", func(t *testing.T) {
		t.Parallel()
		_, err := NewConfig(Config{ProfilesPath: "profiles", Watch: true})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "set a port")
	})

	t.Run("accepts a minimal local setup", func(t *testing.T) {
		t.Parallel()
		cfg, err := NewConfig(Config{ProfilesPath: "profiles"})
		require.NoError(t, err)
		assert.Equal(t, "profiles", cfg.ProfilesPath)
	})
}

func TestRun_ValidateOnly(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	dir := writeProfileDir(t)
	out := &bytes.Buffer{}
	cfg, err := NewConfig(Config{
		ProfilesPath:      dir,
		ValidateOnly:      true,
		DefaultHandedness: "left-right",
		LogLevel:          "error",
	})
	require.NoError(t, err)
	a := NewApp(out, cfg)

	// --- Act ---
	runErr := a.Run(context.Background())

	// --- Assert ---
	require.NoError(t, runErr)
	report := out.String()
	assert.Contains(t, report, "1 profile(s) OK")
	assert.Contains(t, report, "acme-controller")
	assert.Contains(t, report, "select=trigger")
	assert.Contains(t, report, "thumbstick")
}

func TestRun_BuildFailureSurfacesOverrideErrors(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	// The override names a component the registry document never declared.
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "acme-controller.json"), []byte(testRegistryDoc), 0o600))
	badOverride := `{
		"profileId": "acme-controller",
		"overrides": {
			"left-right": {
				"assetPath": "acme-controller/controller.glb",
				"components": { "tirgger": {} }
			}
		}
	}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "acme-controller.overrides.json"), []byte(badOverride), 0o600))

	cfg, err := NewConfig(Config{ProfilesPath: dir, ValidateOnly: true, LogLevel: "error"})
	require.NoError(t, err)
	a := NewApp(&bytes.Buffer{}, cfg)

	// --- Act ---
	runErr := a.Run(context.Background())

	// --- Assert ---
	require.Error(t, runErr)
	assert.Contains(t, runErr.Error(), "tirgger")
}

func TestBuild_MergesOverrideAssetPath(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	dir := writeProfileDir(t)
	cfg, err := NewConfig(Config{ProfilesPath: dir})
	require.NoError(t, err)
	a := NewApp(&bytes.Buffer{}, cfg)

	// --- Act ---
	profiles, buildErr := a.build(context.Background())

	// --- Assert ---
	require.NoError(t, buildErr)
	require.Contains(t, profiles, "acme-controller")
	layout, ok := profiles["acme-controller"].Layout("left-right")
	require.True(t, ok)
	assert.Equal(t, "acme-controller/controller.glb", layout.AssetPath)
}

func TestBuild_RemoteRegistry(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	mux := http.NewServeMux()
	mux.HandleFunc("GET /profilesList.json", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{
			"acme-controller": { "path": "acme-controller/profile.json" },
			"retired-controller": { "path": "retired-controller/profile.json", "deprecated": true }
		}`))
	})
	mux.HandleFunc("GET /acme-controller/profile.json", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(testRegistryDoc))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	cfg, err := NewConfig(Config{RemoteRegistry: srv.URL})
	require.NoError(t, err)
	a := NewApp(&bytes.Buffer{}, cfg)

	// --- Act ---
	profiles, buildErr := a.build(context.Background())

	// --- Assert ---
	require.NoError(t, buildErr)
	assert.Contains(t, profiles, "acme-controller")
	assert.NotContains(t, profiles, "retired-controller", "deprecated entries stay out of the build")
}

func TestRebuild_KeepsPreviousSetOnFailure(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	dir := writeProfileDir(t)
	cfg, err := NewConfig(Config{ProfilesPath: dir, LogLevel: "error"})
	require.NoError(t, err)
	a := NewApp(&bytes.Buffer{}, cfg)

	ctx := context.Background()
	profiles, buildErr := a.build(ctx)
	require.NoError(t, buildErr)
	a.setProfiles(profiles)

	// Corrupt the registry document on disk.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "acme-controller.json"), []byte(`{"profileId":`), 0o600))

	// --- Act ---
	a.rebuild(ctx)

	// --- Assert ---
	got := a.Profiles()
	assert.Contains(t, got, "acme-controller", "the last good build should keep serving")
}

func TestRebuild_PublishesNewSet(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	dir := writeProfileDir(t)
	cfg, err := NewConfig(Config{ProfilesPath: dir, LogLevel: "error"})
	require.NoError(t, err)
	a := NewApp(&bytes.Buffer{}, cfg)

	ctx := context.Background()
	profiles, buildErr := a.build(ctx)
	require.NoError(t, buildErr)
	a.setProfiles(profiles)

	renamed := []byte(`{
		"profileId": "acme-controller-v2",
		"layouts": {
			"left-right": {
				"selectComponentId": "trigger",
				"gamepadMapping": "xr-standard",
				"components": { "trigger": { "type": "trigger" } }
			}
		}
	}`)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "acme-controller.json"), renamed, 0o600))
	require.NoError(t, os.Remove(filepath.Join(dir, "acme-controller.overrides.json")))

	// --- Act ---
	a.rebuild(ctx)

	// --- Assert ---
	got := a.Profiles()
	assert.Contains(t, got, "acme-controller-v2")
	assert.NotContains(t, got, "acme-controller")
}
