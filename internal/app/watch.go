package app

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/vk/xrprofiles/internal/ctxlog"
)

// rebuildDelay coalesces the burst of filesystem events an editor save or a
// directory copy produces into a single rebuild.
const rebuildDelay = 200 * time.Millisecond

// watch rebuilds the profile set whenever a JSON document under the profiles
// directory changes, then notifies livereload subscribers. A rebuild failure
// keeps the previous profile set serving.
func (a *App) watch(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create filesystem watcher: %w", err)
	}
	defer watcher.Close()

	if err := addDirsRecursively(watcher, a.cfg.ProfilesPath); err != nil {
		return err
	}
	logger.Info("👀 Watching profiles directory.", "path", a.cfg.ProfilesPath)

	// The timer starts drained; it only fires after a relevant event.
	timer := time.NewTimer(rebuildDelay)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			// New subdirectories need their own watch; fsnotify is not
			// recursive.
			if event.Op.Has(fsnotify.Create) {
				if err := addDirsRecursively(watcher, event.Name); err != nil {
					logger.Debug("Could not watch new path.", "path", event.Name, "error", err)
				}
			}
			if !strings.HasSuffix(event.Name, ".json") {
				continue
			}
			if event.Op.Has(fsnotify.Create | fsnotify.Write | fsnotify.Remove | fsnotify.Rename) {
				logger.Debug("Profile document changed.", "path", event.Name, "op", event.Op.String())
				timer.Reset(rebuildDelay)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("Filesystem watcher error.", "error", err)

		case <-timer.C:
			a.rebuild(ctx)
		}
	}
}

// rebuild reruns the pipeline and publishes the result. The current profile
// selection is re-resolved so viewers holding a selection see the new build.
func (a *App) rebuild(ctx context.Context) {
	logger := ctxlog.FromContext(ctx)
	logger.Info("🔄 Rebuilding profiles.")

	profiles, err := a.build(ctx)
	if err != nil {
		logger.Error("Rebuild failed; keeping the previous profile set.", "error", err)
		return
	}
	a.setProfiles(profiles)

	if id, _, ok := a.selector.Current(); ok {
		if _, err := a.selector.Select(ctx, id); err != nil {
			logger.Warn("Selected profile did not survive the rebuild.", "profileId", id, "error", err)
		}
	}

	a.server.Broadcast("reload")
	logger.Info("✅ Profiles rebuilt.", "count", len(profiles))
}

// addDirsRecursively watches path and, when it is a directory, every
// directory beneath it. Hidden directories are skipped to match how the
// profile loader scans.
func addDirsRecursively(watcher *fsnotify.Watcher, path string) error {
	return filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if name := d.Name(); strings.HasPrefix(name, ".") && p != path {
			return filepath.SkipDir
		}
		return watcher.Add(p)
	})
}
