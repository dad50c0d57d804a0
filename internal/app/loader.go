package app

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/philipparndt/trix3d/pkg/project"
	"github.com/philipparndt/trix3d/pkg/watcher"
)

// OpenProject loads a project file, replacing the scene and clearing history.
// On failure the current scene is kept.
func (a *App) OpenProject(path string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	_, err := a.load(path, true)
	return err
}

// load reads path and applies it. Unless forced, it reports false and keeps
// the scene when the content is what was last loaded or saved.
func (a *App) load(path string, force bool) (bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return false, fmt.Errorf("failed to open project: %w", err)
	}
	if !force && path == a.FileWatch.path && bytes.Equal(data, a.FileWatch.content) {
		return false, nil
	}

	entities, err := project.Decode(bytes.NewReader(data))
	if err != nil {
		return false, fmt.Errorf("%s: %w", path, err)
	}
	if err := a.history.LoadProject(entities); err != nil {
		return false, fmt.Errorf("%s: %w", path, err)
	}

	a.resetSessions()
	a.FileWatch.path = path
	a.FileWatch.content = data
	slog.Info("project loaded", "path", path, "entities", len(entities))
	return true, nil
}

// SaveProject writes the scene to path. Empty scenes are refused.
func (a *App) SaveProject(path string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	snap := a.history.Snapshot()
	if snap.IsEmpty() {
		return ErrEmptyScene
	}
	var buf bytes.Buffer
	if err := project.Encode(&buf, snap); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write project file: %w", err)
	}

	a.FileWatch.path = path
	a.FileWatch.content = buf.Bytes()
	slog.Info("project saved", "path", path, "entities", snap.Len())
	return nil
}

// Path returns the file last opened or saved.
func (a *App) Path() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.FileWatch.path
}

// Reload re-reads the current project file if its content changed.
func (a *App) Reload() (bool, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.FileWatch.path == "" {
		return false, nil
	}
	return a.load(a.FileWatch.path, false)
}

// Watch reloads the project whenever its file changes on disk, until ctx is
// done. onReload, if set, is called after every attempt that changed the
// scene or failed. Writes made by SaveProject do not trigger a reload.
func (a *App) Watch(ctx context.Context, onReload func(error)) error {
	a.mu.Lock()
	path := a.FileWatch.path
	if path == "" {
		a.mu.Unlock()
		return fmt.Errorf("watch: no project open")
	}
	if a.FileWatch.watcher != nil {
		a.FileWatch.watcher.Close()
	}
	fw, err := watcher.NewFileWatcher(a.cfg.Debounce())
	if err != nil {
		a.mu.Unlock()
		return err
	}
	a.FileWatch.watcher = fw
	a.mu.Unlock()

	err = fw.Watch([]string{path}, func(string) {
		changed, err := a.Reload()
		if err != nil {
			slog.Warn("project reload failed", "path", path, "error", err)
		}
		if onReload != nil && (changed || err != nil) {
			onReload(err)
		}
	})
	if err != nil {
		fw.Close()
		return fmt.Errorf("failed to watch project: %w", err)
	}

	slog.Info("watching project for changes", "path", path)
	fw.Start(ctx)
	go func() {
		<-ctx.Done()
		fw.Close()
	}()
	return nil
}

// Close stops watching the project file.
func (a *App) Close() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.FileWatch.watcher == nil {
		return nil
	}
	err := a.FileWatch.watcher.Close()
	a.FileWatch.watcher = nil
	return err
}
