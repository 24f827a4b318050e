package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
)

// loadStore reads the saved field contents. A missing file is an empty store.
func loadStore(filename string) (map[string]string, error) {
	data, err := os.ReadFile(filename)
	if errors.Is(err, fs.ErrNotExist) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading store %s: %w", filename, err)
	}
	content := map[string]string{}
	if err := json.Unmarshal(data, &content); err != nil {
		return nil, fmt.Errorf("parsing store %s: %w", filename, err)
	}
	return content, nil
}

func saveStore(filename string, content map[string]string) error {
	data, err := json.MarshalIndent(content, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding store: %w", err)
	}
	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("writing store %s: %w", filename, err)
	}
	return nil
}

// save persists the content map and clears the dirty flag.
func (m *model) save() error {
	if err := saveStore(m.config.StoreFile, m.content); err != nil {
		slog.Error("saving content failed", "file", m.config.StoreFile, "err", err)
		return err
	}
	slog.Info("content saved", "file", m.config.StoreFile, "fields", len(m.content))
	m.dirty = false
	return nil
}
