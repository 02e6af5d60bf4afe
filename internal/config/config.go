// internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/kpauljoseph/neurocards/internal/anki"
	"github.com/kpauljoseph/neurocards/internal/export"
	"github.com/kpauljoseph/neurocards/internal/gesture"
)

const (
	DefaultAnkiDeckName = "NeuroCards"
	DefaultCellWidth    = 8.0
)

type Config struct {
	InputPath      string `yaml:"input_path" toml:"input_path"`
	ExportDir      string `yaml:"export_dir" toml:"export_dir"`
	ExportFileName string `yaml:"export_file_name" toml:"export_file_name"`
	WatchInput     bool   `yaml:"watch_input" toml:"watch_input"`
	LogDir         string `yaml:"log_dir" toml:"log_dir"`
	LogLevel       string `yaml:"log_level" toml:"log_level"`
	Gesture        struct {
		SwipeThreshold float64 `yaml:"swipe_threshold" toml:"swipe_threshold"`
		MoveThreshold  float64 `yaml:"move_threshold" toml:"move_threshold"`
		EdgeZone       float64 `yaml:"edge_zone" toml:"edge_zone"`
		// CellWidth converts terminal columns into the logical pixels the
		// thresholds are expressed in.
		CellWidth float64 `yaml:"cell_width" toml:"cell_width"`
	} `yaml:"gesture" toml:"gesture"`
	Anki struct {
		URL      string `yaml:"url" toml:"url"`
		DeckName string `yaml:"deck_name" toml:"deck_name"`
		Enabled  bool   `yaml:"enabled" toml:"enabled"`
	} `yaml:"anki" toml:"anki"`
}

func Default() *Config {
	var cfg Config
	cfg.applyDefaults()
	return &cfg
}

// Load reads a YAML or TOML config, picked by file extension. A missing
// file is not an error; defaults are returned instead.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return nil, err
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if _, err := toml.Decode(string(data), &cfg); err != nil {
			return nil, fmt.Errorf("failed to decode toml config: %w", err)
		}
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to decode yaml config: %w", err)
		}
	}

	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.ExportDir == "" {
		c.ExportDir = "."
	}
	if c.ExportFileName == "" {
		c.ExportFileName = export.DefaultFileName
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.Gesture.SwipeThreshold <= 0 {
		c.Gesture.SwipeThreshold = gesture.DefaultSwipeThreshold
	}
	if c.Gesture.MoveThreshold <= 0 {
		c.Gesture.MoveThreshold = gesture.DefaultMoveThreshold
	}
	if c.Gesture.EdgeZone <= 0 || c.Gesture.EdgeZone >= 0.5 {
		c.Gesture.EdgeZone = gesture.DefaultEdgeZone
	}
	if c.Gesture.CellWidth <= 0 {
		c.Gesture.CellWidth = DefaultCellWidth
	}
	if c.Anki.URL == "" {
		c.Anki.URL = anki.DefaultAnkiConnectURL
	}
	if c.Anki.DeckName == "" {
		c.Anki.DeckName = DefaultAnkiDeckName
	}
}

func (c *Config) Thresholds() gesture.Thresholds {
	return gesture.Thresholds{
		Swipe:    c.Gesture.SwipeThreshold,
		Move:     c.Gesture.MoveThreshold,
		EdgeZone: c.Gesture.EdgeZone,
	}
}
