package registry

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/vk/xrprofiles/internal/ctxlog"
	"github.com/vk/xrprofiles/internal/fsutil"
	"github.com/vk/xrprofiles/internal/profile"
	"github.com/vk/xrprofiles/internal/schema"
)

// OverrideSuffix marks sibling asset override documents in a profiles
// directory. Loader skips them; the asset builder loads them separately.
const OverrideSuffix = ".overrides.json"

// Loader reads registry documents from disk, schema-validates them, and
// expands them.
type Loader struct {
	validator *schema.Validator
}

// NewLoader creates a Loader around the given schema validator.
func NewLoader(validator *schema.Validator) *Loader {
	return &Loader{validator: validator}
}

// LoadFile loads, validates, and expands a single registry document.
func (l *Loader) LoadFile(ctx context.Context, path string) (*profile.Profile, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read registry document %s: %w", path, err)
	}
	return l.LoadBytes(ctx, path, raw)
}

// LoadBytes validates and expands a registry document already in memory,
// e.g. one fetched from a remote registry. The name only labels errors and
// log lines.
func (l *Loader) LoadBytes(ctx context.Context, name string, raw []byte) (*profile.Profile, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Loading registry document.", "source", name)

	if err := l.validator.ValidateRegistryDocument(raw); err != nil {
		return nil, fmt.Errorf("registry document %s: %w", name, err)
	}
	doc, err := ParseDocument(raw)
	if err != nil {
		return nil, fmt.Errorf("registry document %s: %w", name, err)
	}
	expanded, err := Expand(doc)
	if err != nil {
		return nil, fmt.Errorf("registry document %s: %w", name, err)
	}

	logger.Debug("Registry document expanded.", "source", name, "profileId", expanded.ID)
	return expanded, nil
}

// LoadDir discovers every registry document under the given path and loads
// it into a fresh Registry. Override documents are left for the asset
// builder.
func (l *Loader) LoadDir(ctx context.Context, dir string) (*Registry, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Loading registry documents from path.", "path", dir)

	files, err := fsutil.FindFilesByExtension(dir, ".json")
	if err != nil {
		return nil, fmt.Errorf("failed to find registry documents in %s: %w", dir, err)
	}

	reg := New()
	loaded := 0
	for _, path := range files {
		if strings.HasSuffix(path, OverrideSuffix) {
			continue
		}
		expanded, err := l.LoadFile(ctx, path)
		if err != nil {
			return nil, err
		}
		if err := reg.Add(expanded); err != nil {
			return nil, fmt.Errorf("registry document %s: %w", path, err)
		}
		loaded++
	}

	if loaded == 0 {
		logger.Warn("No registry documents found in path, registry is empty.", "path", dir)
		return reg, nil
	}
	logger.Info("Registry loaded successfully.", "profiles_loaded", loaded)
	return reg, nil
}
