// Package config loads the runner configuration from spindle.toml.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// FileName is the configuration file looked up next to the working directory.
const FileName = "spindle.toml"

// Config is the runner configuration.
type Config struct {
	Runtime Runtime `toml:"runtime"`
	Demo    Demo    `toml:"demo"`
}

// Runtime configures every universe the runner builds.
type Runtime struct {
	// ChannelCapacity is the message capacity of demo channels.
	ChannelCapacity int `toml:"channel_capacity"`
	// Log is stderr, stdout or off.
	Log string `toml:"log"`
}

// Demo selects and sizes the scenario to run.
type Demo struct {
	Scenario string `toml:"scenario"`
	Anchors  int    `toml:"anchors"`
	Messages int    `toml:"messages"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Runtime: Runtime{ChannelCapacity: 4, Log: "stderr"},
		Demo:    Demo{Scenario: "pingpong", Anchors: 2, Messages: 16},
	}
}

// Validate rejects values no scenario can run with.
func (c Config) Validate() error {
	if c.Runtime.ChannelCapacity < 1 {
		return fmt.Errorf("runtime.channel_capacity must be positive, got %d", c.Runtime.ChannelCapacity)
	}
	switch c.Runtime.Log {
	case "stderr", "stdout", "off":
	default:
		return fmt.Errorf("runtime.log: unknown sink %q", c.Runtime.Log)
	}
	if c.Demo.Anchors < 1 {
		return fmt.Errorf("demo.anchors must be positive, got %d", c.Demo.Anchors)
	}
	if c.Demo.Messages < 0 {
		return fmt.Errorf("demo.messages must not be negative, got %d", c.Demo.Messages)
	}
	return nil
}

// Load reads path over the defaults. A missing file yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config: %w", err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes cfg to path, creating the directory if needed.
func Save(path string, cfg Config) error {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
