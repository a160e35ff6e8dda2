package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/vk/xrprofiles/internal/assetpack"
	"github.com/vk/xrprofiles/internal/ctxlog"
	"github.com/vk/xrprofiles/internal/fetch"
	"github.com/vk/xrprofiles/internal/fsutil"
	"github.com/vk/xrprofiles/internal/profile"
	"github.com/vk/xrprofiles/internal/registry"
	"github.com/vk/xrprofiles/internal/schema"
	"github.com/vk/xrprofiles/internal/selection"
	"github.com/vk/xrprofiles/internal/server"
)

// remoteFetchTimeout bounds each request against a remote registry.
const remoteFetchTimeout = 30 * time.Second

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW     io.Writer
	cfg      *Config
	logger   *slog.Logger
	loader   *registry.Loader
	builder  *assetpack.Builder
	server   *server.Server
	selector *selection.Selector

	mu       sync.RWMutex
	profiles map[string]*profile.Profile
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App instance, including its own isolated logger. Schema
// compilation failures are programmer errors, so it panics on them.
func NewApp(outW io.Writer, cfg *Config) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, outW)
	logger.Debug("Logger configured successfully.")

	validator, err := schema.NewValidator()
	if err != nil {
		// The schemas are embedded in the binary; failing to compile them is
		// a build defect, not a runtime condition.
		panic(fmt.Errorf("failed to compile embedded schemas: %w", err))
	}
	logger.Debug("Document schemas compiled.")

	var store selection.Store
	if cfg.StatePath != "" {
		store = selection.NewFileStore(cfg.StatePath)
	} else {
		store = selection.NewMemoryStore()
	}

	a := &App{
		outW:    outW,
		cfg:     cfg,
		logger:  logger,
		loader:  registry.NewLoader(validator),
		builder: assetpack.NewBuilder(validator),
		server:  server.New(logger, cfg.ProfilesPath),
	}
	a.selector = selection.NewSelector(store, a.lookupProfile)
	return a
}

// Profiles returns a snapshot of the most recently built concrete profiles.
func (a *App) Profiles() map[string]*profile.Profile {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.profiles
}

// lookupProfile resolves a profile id against the current build. It is the
// load function behind the selection workflow.
func (a *App) lookupProfile(_ context.Context, profileID string) (*profile.Profile, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	p, ok := a.profiles[profileID]
	if !ok {
		return nil, fmt.Errorf("profile %q is not in the current profile set", profileID)
	}
	return p, nil
}

// build runs the full pipeline: load registry documents from the configured
// sources, expand them, merge each with its asset override sibling, and
// return the resulting concrete profiles keyed by profile id.
func (a *App) build(ctx context.Context) (map[string]*profile.Profile, error) {
	logger := ctxlog.FromContext(ctx)

	reg := registry.New()
	overrides := map[string]*assetpack.Override{}

	if a.cfg.ProfilesPath != "" {
		if err := a.loadLocal(ctx, reg, overrides); err != nil {
			return nil, err
		}
	}
	if a.cfg.RemoteRegistry != "" {
		if err := a.loadRemote(ctx, reg); err != nil {
			return nil, err
		}
	}
	if reg.Len() == 0 {
		logger.Warn("No registry documents found in the configured sources.")
	}

	profiles := make(map[string]*profile.Profile, reg.Len())
	var errs []string
	for _, id := range reg.IDs() {
		expanded, _ := reg.Profile(id)
		concrete, err := a.builder.Build(ctx, expanded, overrides[id])
		if err != nil {
			errs = append(errs, err.Error())
			continue
		}
		profiles[id] = concrete
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("profile build failed:\n- %s", strings.Join(errs, "\n- "))
	}
	return profiles, nil
}

// loadLocal walks the profiles directory, loading each registry document and
// its override sibling, if one exists.
func (a *App) loadLocal(ctx context.Context, reg *registry.Registry, overrides map[string]*assetpack.Override) error {
	logger := ctxlog.FromContext(ctx)

	paths, err := fsutil.FindFilesByExtension(a.cfg.ProfilesPath, ".json")
	if err != nil {
		return fmt.Errorf("failed to scan profiles directory %s: %w", a.cfg.ProfilesPath, err)
	}

	for _, path := range paths {
		if strings.HasSuffix(path, registry.OverrideSuffix) {
			continue
		}
		expanded, err := a.loader.LoadFile(ctx, path)
		if err != nil {
			return err
		}
		if err := reg.Add(expanded); err != nil {
			return fmt.Errorf("registry document %s: %w", path, err)
		}

		ov, err := a.builder.LoadOverride(ctx, assetpack.OverridePathFor(path))
		if err != nil {
			return err
		}
		if ov != nil {
			overrides[expanded.ID] = ov
		}
	}

	logger.Debug("Local registry documents loaded.", "count", reg.Len(), "path", a.cfg.ProfilesPath)
	return nil
}

// loadRemote pulls the profile list from a hosted registry and loads every
// non-deprecated document it names. Remote documents carry no override
// siblings; they are served as published.
func (a *App) loadRemote(ctx context.Context, reg *registry.Registry) error {
	logger := ctxlog.FromContext(ctx)
	logger.Info("📡 Fetching remote registry.", "url", a.cfg.RemoteRegistry)

	client := fetch.NewClient(a.cfg.RemoteRegistry, remoteFetchTimeout)
	defer client.Close()

	list, err := client.ProfileList(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch remote profile list: %w", err)
	}

	ids := make([]string, 0, len(list))
	for id := range list {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	loaded := 0
	for _, id := range ids {
		entry := list[id]
		if entry.Deprecated {
			logger.Debug("Skipping deprecated remote profile.", "profileId", id)
			continue
		}
		raw, err := client.ProfileDocument(ctx, entry.Path)
		if err != nil {
			return fmt.Errorf("failed to fetch remote profile %q: %w", id, err)
		}
		expanded, err := a.loader.LoadBytes(ctx, entry.Path, raw)
		if err != nil {
			return err
		}
		if err := reg.Add(expanded); err != nil {
			return fmt.Errorf("remote profile %q: %w", id, err)
		}
		loaded++
	}

	logger.Debug("Remote registry documents loaded.", "count", loaded)
	return nil
}
