package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/juparave/linediff/internal/util"
)

// Config holds all application configuration
type Config struct {
	Render  RenderConfig  `yaml:"render"`
	Limits  LimitsConfig  `yaml:"limits"`
	History HistoryConfig `yaml:"history"`
	Verbose bool          `yaml:"-"` // Set via CLI only
}

// RenderConfig holds output rendering settings
type RenderConfig struct {
	Format  string `yaml:"format"`  // unified, script
	Context int    `yaml:"context"` // unchanged lines around each change
	Color   bool   `yaml:"color"`
}

// LimitsConfig guards the quadratic diff engine against oversized inputs.
// The engine itself accepts any input; this is a calling-layer policy.
type LimitsConfig struct {
	MaxLines int `yaml:"max_lines"` // per side; 0 disables the guard
}

// HistoryConfig holds local diff-history storage settings
type HistoryConfig struct {
	Enabled bool   `yaml:"enabled"`
	DBPath  string `yaml:"db_path"`
}

// Rendering formats accepted by RenderConfig.Format.
const (
	FormatUnified = "unified"
	FormatScript  = "script"
)

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	homeDir, _ := os.UserHomeDir()
	return &Config{
		Render: RenderConfig{
			Format:  FormatUnified,
			Context: 3,
			Color:   true,
		},
		Limits: LimitsConfig{
			MaxLines: 5000,
		},
		History: HistoryConfig{
			Enabled: true,
			DBPath:  filepath.Join(homeDir, ".local", "share", "linediff", "history.db"),
		},
	}
}

// Load reads configuration from file and merges with defaults
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	// Determine config file path
	if path == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return cfg, nil // Use defaults if can't find home
		}
		path = filepath.Join(homeDir, ".config", "linediff", "config.yaml")
	}

	path = util.ExpandPath(path)

	// Read config file if it exists
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil // Use defaults if file doesn't exist
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	cfg.History.DBPath = util.ExpandPath(cfg.History.DBPath)

	return cfg, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	switch c.Render.Format {
	case FormatUnified, FormatScript:
	default:
		return fmt.Errorf("unknown render format: %q", c.Render.Format)
	}

	if c.Render.Context < 0 {
		return fmt.Errorf("render context must be >= 0, got %d", c.Render.Context)
	}

	if c.Limits.MaxLines < 0 {
		return fmt.Errorf("max_lines must be >= 0, got %d", c.Limits.MaxLines)
	}

	if c.History.Enabled && c.History.DBPath == "" {
		return fmt.Errorf("db_path is required when history is enabled")
	}

	return nil
}
