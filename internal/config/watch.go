package config

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watch calls onChange whenever one of files (or its yml/yaml sibling) is
// written, created, removed or renamed, until ctx is done. Parent
// directories are watched so editor rename-and-replace saves are seen.
func Watch(ctx context.Context, files []string, logger *slog.Logger, onChange func(path string)) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("cannot create watcher: %w", err)
	}
	defer w.Close()

	watched := make(map[string]bool)
	dirs := make(map[string]bool)
	for _, f := range files {
		for _, c := range Candidates(f) {
			watched[filepath.Clean(c)] = true
		}
		dirs[filepath.Dir(f)] = true
	}

	added := 0
	for dir := range dirs {
		if err := w.Add(dir); err != nil {
			logger.Warn("cannot watch config directory", "dir", dir, "err", err)
			continue
		}
		added++
	}
	if added == 0 {
		return fmt.Errorf("no config directory could be watched")
	}

	const relevant = fsnotify.Write | fsnotify.Create | fsnotify.Remove | fsnotify.Rename

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !watched[filepath.Clean(ev.Name)] || ev.Op&relevant == 0 {
				continue
			}
			logger.Debug("config changed", "path", ev.Name, "op", ev.Op.String())
			onChange(ev.Name)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error", "err", err)
		}
	}
}
