package main

import (
	"fmt"
	"log/slog"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"
)

// configErrorMsg reports a config reload that failed. Watching continues.
type configErrorMsg struct {
	err error
}

// newConfigWatcher watches the directory holding path, so editors that save
// by renaming a temporary file are still seen.
func newConfigWatcher(path string) (*fsnotify.Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	if err := w.Add(filepath.Dir(path)); err != nil {
		w.Close()
		return nil, fmt.Errorf("watching %s: %w", path, err)
	}
	return w, nil
}

// watchConfig waits for the next write to path and reloads it. It returns nil
// once the watcher is closed.
func watchConfig(w *fsnotify.Watcher, path string) tea.Cmd {
	target := filepath.Clean(path)
	return func() tea.Msg {
		for {
			select {
			case ev, ok := <-w.Events:
				if !ok {
					return nil
				}
				if filepath.Clean(ev.Name) != target || !ev.Has(fsnotify.Write|fsnotify.Create) {
					continue
				}
				slog.Debug("config file changed", "file", ev.Name, "op", ev.Op.String())
				config, err := reloadConfig(path)
				if err != nil {
					return configErrorMsg{err: err}
				}
				return configChangedMsg{config: config}
			case err, ok := <-w.Errors:
				if !ok {
					return nil
				}
				return configErrorMsg{err: err}
			}
		}
	}
}
