// Package config provides configuration loading and management for
// balllabel. It handles loading configuration from YAML files and
// provides default values.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration loaded from YAML.
// Command-line flags override any value set here.
type Config struct {
	// Input parameters
	Input struct {
		// Dir is the training image directory.
		Dir string `yaml:"dir"`
	} `yaml:"input"`

	// Capture parameters
	Capture struct {
		// WindowTitle names the interactive annotation window.
		WindowTitle string `yaml:"windowTitle"`

		// StepSize is the initial crosshair step in pixels.
		StepSize int `yaml:"stepSize"`

		// ScriptFile, when set, replays polygons from this YAML file
		// instead of opening a window.
		ScriptFile string `yaml:"scriptFile"`
	} `yaml:"capture"`

	// Output parameters
	Output struct {
		// File is the path of the written sample table.
		File string `yaml:"file"`

		// Delimiter separates output fields; must be a single rune.
		Delimiter string `yaml:"delimiter"`

		// Checkpoint enables per-image dataset checkpointing.
		Checkpoint bool `yaml:"checkpoint"`

		// OverlayDir, when set, receives per-image polygon overlays.
		OverlayDir string `yaml:"overlayDir"`
	} `yaml:"output"`

	// Frame extraction parameters
	Frames struct {
		// FPS is the video sampling rate in frames per second.
		FPS int `yaml:"fps"`

		// MaxWidth, when positive, scales extracted frames down to
		// this width.
		MaxWidth int `yaml:"maxWidth"`
	} `yaml:"frames"`
}

// DefaultConfig returns a configuration with default values
func DefaultConfig() *Config {
	cfg := &Config{}

	// Set default input parameters
	cfg.Input.Dir = "train_images"

	// Set default capture parameters
	cfg.Capture.WindowTitle = "balllabel - draw region of interest"
	cfg.Capture.StepSize = 4

	// Set default output parameters
	cfg.Output.File = "ball.csv"
	cfg.Output.Delimiter = ","
	cfg.Output.Checkpoint = false

	// Set default frame extraction parameters
	cfg.Frames.FPS = 1
	cfg.Frames.MaxWidth = 0

	return cfg
}

// LoadConfig loads configuration from a YAML file
// If the file doesn't exist, it returns the default configuration
func LoadConfig(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	// Check if config file exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return cfg, nil
	}

	// Read config file
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	// Parse YAML
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	return cfg, nil
}

// SaveConfig saves the configuration to a YAML file
func SaveConfig(cfg *Config, configPath string) error {
	// Create directory if it doesn't exist
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}

	// Marshal config to YAML
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("error marshaling config: %w", err)
	}

	// Write to file
	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("error writing config file: %w", err)
	}

	return nil
}

// CreateDefaultConfigFile creates a default configuration file at the specified path
func CreateDefaultConfigFile(configPath string) error {
	cfg := DefaultConfig()
	return SaveConfig(cfg, configPath)
}

// DelimiterRune returns the configured output delimiter as a rune,
// or an error if it is not exactly one rune.
func (c *Config) DelimiterRune() (rune, error) {
	runes := []rune(c.Output.Delimiter)
	if len(runes) != 1 {
		return 0, fmt.Errorf("delimiter must be a single character, got %q", c.Output.Delimiter)
	}
	return runes[0], nil
}
