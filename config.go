package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/zam-dot/brandstudio/internal/history"
	"github.com/zam-dot/brandstudio/internal/palette"
)

// FieldConfig describes one editable field of the studio.
type FieldConfig struct {
	Name    string `toml:"name" json:"name"`
	Label   string `toml:"label" json:"label"`
	Content string `toml:"content" json:"content"`
	Height  int    `toml:"height" json:"height"`
}

// Config holds everything the studio reads at start-up.
type Config struct {
	Brand           palette.Brand `toml:"brand" json:"brand"`
	Fields          []FieldConfig `toml:"fields" json:"fields"`
	StoreFile       string        `toml:"store_file" json:"store_file"`
	ShowToolbar     bool          `toml:"toolbar" json:"toolbar"`
	ShowStatusPanel bool          `toml:"status_panel" json:"status_panel"`
	HistorySize     int           `toml:"history_size" json:"history_size"`
	SaveOnQuit      bool          `toml:"save_on_quit" json:"save_on_quit"`
	Watch           bool          `toml:"watch" json:"watch"`
	Style           string        `toml:"style" json:"style"`
	Debug           bool          `toml:"debug" json:"debug"`
	LogFile         string        `toml:"log_file" json:"log_file"`

	// path is the config file the studio was started with, if any.
	path string
}

func DefaultConfig() Config {
	return Config{
		Fields: []FieldConfig{
			{Name: "headline", Label: "Headline", Height: 2},
			{Name: "body", Label: "Body", Height: 6},
		},
		StoreFile:       "brandstudio.json",
		ShowToolbar:     true,
		ShowStatusPanel: true,
		HistorySize:     history.DefaultMaxSize,
		SaveOnQuit:      true,
		Watch:           true,
		Style:           "dark",
		LogFile:         "brandstudio.log",
	}
}

// Validate rejects configurations the studio cannot run with.
func (c Config) Validate() error {
	if len(c.Fields) == 0 {
		return errors.New("config: at least one field is required")
	}
	seen := make(map[string]bool, len(c.Fields))
	for i, f := range c.Fields {
		if strings.TrimSpace(f.Name) == "" {
			return fmt.Errorf("config: field %d has no name", i)
		}
		if seen[f.Name] {
			return fmt.Errorf("config: duplicate field %q", f.Name)
		}
		seen[f.Name] = true
	}
	if c.HistorySize < 1 {
		return fmt.Errorf("config: history_size must be positive, got %d", c.HistorySize)
	}
	return nil
}

func applyEnvOverrides(config Config) Config {
	if val := os.Getenv("BRANDSTUDIO_STORE"); val != "" {
		config.StoreFile = val
	}
	if val := os.Getenv("BRANDSTUDIO_TOOLBAR"); val != "" {
		config.ShowToolbar = val == "true"
	}
	if val := os.Getenv("BRANDSTUDIO_STATUS_PANEL"); val != "" {
		config.ShowStatusPanel = val == "true"
	}
	if val := os.Getenv("BRANDSTUDIO_HISTORY_SIZE"); val != "" {
		if size, err := strconv.Atoi(val); err == nil {
			config.HistorySize = size
		}
	}
	if val := os.Getenv("BRANDSTUDIO_STYLE"); val != "" {
		config.Style = val
	}
	if val := os.Getenv("BRANDSTUDIO_DEBUG"); val != "" {
		config.Debug = val == "true" || val == "1"
	}
	if val := os.Getenv("BRANDSTUDIO_PRIMARY"); val != "" {
		config.Brand.Primary = val
	}
	if val := os.Getenv("BRANDSTUDIO_SECONDARY"); val != "" {
		config.Brand.Secondary = val
	}
	if val := os.Getenv("BRANDSTUDIO_HIGHLIGHT"); val != "" {
		config.Brand.Highlight = val
	}
	if val := os.Getenv("BRANDSTUDIO_TEXT"); val != "" {
		config.Brand.Text = val
	}

	return config
}

// reloadConfig reads path again on top of the defaults. Environment
// overrides still apply; flags only count at start-up.
func reloadConfig(path string) (Config, error) {
	config, err := loadConfigFromFile(path, DefaultConfig())
	if err != nil {
		return Config{}, err
	}
	return applyEnvOverrides(config), nil
}

// ParseFlags builds the configuration from defaults, the config file, the
// environment and finally the flags given on the command line.
func ParseFlags(args []string) (Config, error) {
	fs := flag.NewFlagSet("brandstudio", flag.ContinueOnError)

	var (
		configFile  string
		flagged     = DefaultConfig()
		explicitSet = map[string]bool{}
	)
	fs.StringVar(&configFile, "config", "", "Path to a TOML or JSON config file")
	fs.StringVar(&flagged.StoreFile, "store", flagged.StoreFile, "Content store file")
	fs.BoolVar(&flagged.ShowToolbar, "toolbar", flagged.ShowToolbar, "Show the editor toolbars")
	fs.BoolVar(&flagged.ShowStatusPanel, "status", flagged.ShowStatusPanel, "Show the status panel")
	fs.IntVar(&flagged.HistorySize, "history", flagged.HistorySize, "Undo entries kept per field")
	fs.BoolVar(&flagged.Watch, "watch", flagged.Watch, "Reload the brand when the config file changes")
	fs.StringVar(&flagged.Style, "style", flagged.Style, "Glamour style for help and preview")
	fs.BoolVar(&flagged.Debug, "debug", flagged.Debug, "Write a debug log")
	fs.StringVar(&flagged.LogFile, "log", flagged.LogFile, "Debug log file")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	fs.Visit(func(f *flag.Flag) { explicitSet[f.Name] = true })

	config := DefaultConfig()
	if configFile != "" {
		fileConfig, err := loadConfigFromFile(configFile, config)
		if err != nil {
			return Config{}, err
		}
		config = fileConfig
	}
	config = applyEnvOverrides(config)

	// Flags given on the command line win over the file and the environment.
	for name, apply := range map[string]func(){
		"store":   func() { config.StoreFile = flagged.StoreFile },
		"toolbar": func() { config.ShowToolbar = flagged.ShowToolbar },
		"status":  func() { config.ShowStatusPanel = flagged.ShowStatusPanel },
		"history": func() { config.HistorySize = flagged.HistorySize },
		"watch":   func() { config.Watch = flagged.Watch },
		"style":   func() { config.Style = flagged.Style },
		"debug":   func() { config.Debug = flagged.Debug },
		"log":     func() { config.LogFile = flagged.LogFile },
	} {
		if explicitSet[name] {
			apply()
		}
	}

	if err := config.Validate(); err != nil {
		return Config{}, err
	}
	return config, nil
}

// loadConfigFromFile decodes filename on top of base. Files ending in .json
// are read as JSON, everything else as TOML.
func loadConfigFromFile(filename string, base Config) (Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return base, fmt.Errorf("reading config file %s: %w", filename, err)
	}

	config := base
	config.Fields = nil
	if strings.EqualFold(filepath.Ext(filename), ".json") {
		err = json.Unmarshal(data, &config)
	} else {
		err = toml.Unmarshal(data, &config)
	}
	if err != nil {
		return base, fmt.Errorf("parsing config file %s: %w", filename, err)
	}
	if len(config.Fields) == 0 {
		config.Fields = base.Fields
	}
	config.path = filename
	return config, nil
}
