// Package config loads snapdesk's YAML configuration with sane defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds the effective snapdesk configuration.
type Config struct {
	// SnapshotsDir is the root directory snapshots are stored under.
	SnapshotsDir string `yaml:"snapshots_dir"`
	// MatchThreshold is the inclusive minimum fuzzy match score (0-100).
	MatchThreshold int `yaml:"match_threshold"`
	// CheckBounds validates recorded positions against the current display
	// topology before moving windows.
	CheckBounds bool `yaml:"check_bounds"`
	// BoundsMargin is the slack in pixels applied to the bounds check.
	BoundsMargin int `yaml:"bounds_margin"`
	// ReturnToOrigin switches back to the pre-restore desktop afterwards.
	ReturnToOrigin bool `yaml:"return_to_origin"`
	// IgnoredProcesses are executable names never repositioned, in addition
	// to the builtin shell-process list.
	IgnoredProcesses []string `yaml:"ignored_processes"`
}

// DefaultConfigPath returns the standard config file location.
func DefaultConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "snapdesk", "config.yaml"), nil
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		MatchThreshold: 85,
		CheckBounds:    true,
		BoundsMargin:   20,
		ReturnToOrigin: true,
	}
}

// Load reads the configuration from the standard location. A missing file
// yields the defaults.
func Load() (*Config, error) {
	path, err := DefaultConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFromPath(path)
}

// LoadFromPath reads the configuration from path, merged over the defaults.
func LoadFromPath(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	if cfg.MatchThreshold < 0 || cfg.MatchThreshold > 100 {
		return nil, fmt.Errorf("match_threshold must be between 0 and 100, got %d", cfg.MatchThreshold)
	}
	if cfg.BoundsMargin < 0 {
		return nil, fmt.Errorf("bounds_margin must not be negative, got %d", cfg.BoundsMargin)
	}

	return cfg, nil
}
