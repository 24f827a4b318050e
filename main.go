package main

import (
	"log"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
)

func main() {
	config, err := ParseFlags(os.Args[1:])
	if err != nil {
		log.Fatal("Error:", err)
	}

	// The terminal belongs to the TUI, so records go to a file or nowhere.
	slog.SetDefault(slog.New(slog.DiscardHandler))
	if config.Debug {
		f, err := tea.LogToFile(config.LogFile, "brandstudio")
		if err != nil {
			log.Fatal("Error opening log:", err)
		}
		defer f.Close()
		slog.SetDefault(slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	stored, err := loadStore(config.StoreFile)
	if err != nil {
		log.Fatal("Error:", err)
	}

	m, err := newModel(config, stored)
	if err != nil {
		log.Fatal("Error:", err)
	}

	if config.Watch && config.path != "" {
		w, err := newConfigWatcher(config.path)
		if err != nil {
			slog.Warn("brand reload disabled", "err", err)
		} else {
			defer w.Close()
			m.watcher = w
		}
	}

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		log.Fatal("Error running TUI:", err)
	}
}
