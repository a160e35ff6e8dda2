package app

import (
	"context"
	"fmt"
	"sort"

	"github.com/vk/xrprofiles/internal/ctxlog"
	"github.com/vk/xrprofiles/internal/profile"
)

// Run executes the main application logic: build the concrete profile set,
// then either report it and exit, or serve it.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	profiles, err := a.build(ctx)
	if err != nil {
		return fmt.Errorf("failed to build profiles: %w", err)
	}
	a.setProfiles(profiles)
	a.logger.Info("✅ Profiles built.", "count", len(profiles))

	if a.cfg.ValidateOnly || a.cfg.Port == 0 {
		a.printSummary(profiles)
		return nil
	}

	if restored, ok, err := a.selector.Restore(ctx); err != nil {
		a.logger.Warn("Could not restore the persisted profile selection.", "error", err)
	} else if ok {
		a.logger.Info("Restored profile selection.", "profileId", restored.ID)
	}

	if a.cfg.Watch {
		go func() {
			if err := a.watch(ctx); err != nil {
				a.logger.Error("Watcher stopped.", "error", err)
			}
		}()
	}

	return a.server.Start(ctx, a.cfg.Port)
}

// setProfiles publishes a freshly built profile set to the app and the server.
func (a *App) setProfiles(profiles map[string]*profile.Profile) {
	a.mu.Lock()
	a.profiles = profiles
	a.mu.Unlock()
	a.server.SetProfiles(profiles)
}

// printSummary writes a human-readable report of the built profiles. The
// configured default handedness picks which layout's components get listed.
func (a *App) printSummary(profiles map[string]*profile.Profile) {
	ids := make([]string, 0, len(profiles))
	for id := range profiles {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	fmt.Fprintf(a.outW, "%d profile(s) OK\n", len(ids))
	for _, id := range ids {
		p := profiles[id]
		fmt.Fprintf(a.outW, "  %s  layouts=%v\n", id, p.Handednesses())

		layout, ok := p.Layout(profile.Handedness(a.cfg.DefaultHandedness))
		if !ok {
			continue
		}
		fmt.Fprintf(a.outW, "    %s: select=%s components=%v\n",
			a.cfg.DefaultHandedness, layout.SelectComponentID, layout.InteractiveComponentIDs())
	}
}
