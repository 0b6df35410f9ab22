// Package config provides configuration management for execlens.
//
// The configuration is stored in TOML format and supports validation
// and default values for all fields.
package config

import (
	"fmt"
	"time"
)

// Config is the top-level configuration struct for execlens.
// It contains all configuration sections as embedded structs.
type Config struct {
	Backend BackendConfig `toml:"backend"`
	Search  SearchConfig  `toml:"search"`
	Cache   CacheConfig   `toml:"cache"`
	TUI     TUIConfig     `toml:"tui"`
}

// BackendConfig contains backend invocation settings.
type BackendConfig struct {
	// Command is the backend binary invoked for catalog operations.
	Command string `toml:"command"`

	// Args are prepended before the operation name on every call.
	Args []string `toml:"args"`

	// TimeoutSeconds bounds a single backend invocation (default: 30).
	TimeoutSeconds int `toml:"timeout_seconds"`
}

// SearchConfig contains search input settings.
type SearchConfig struct {
	// DebounceMS is the quiescence window applied to search input
	// before it takes effect (default: 300).
	DebounceMS int `toml:"debounce_ms"`
}

// CacheConfig contains query cache settings.
type CacheConfig struct {
	// StaleAfterSeconds makes cached results implicitly stale after
	// the given age; zero disables implicit staleness.
	StaleAfterSeconds int `toml:"stale_after_seconds"`
}

// TUIConfig contains terminal UI settings.
type TUIConfig struct {
	// Enabled controls whether to use the TUI (when false, falls back to CLI).
	Enabled bool `toml:"enabled"`

	// Theme is the TUI theme name.
	Theme string `toml:"theme"`

	// ShowHelp controls whether to show the help panel by default.
	ShowHelp bool `toml:"show_help"`
}

// DefaultConfig returns a Config with all default values set.
func DefaultConfig() *Config {
	return &Config{
		Backend: BackendConfig{
			Command:        "flow",
			Args:           nil,
			TimeoutSeconds: 30,
		},
		Search: SearchConfig{
			DebounceMS: 300,
		},
		Cache: CacheConfig{
			StaleAfterSeconds: 0,
		},
		TUI: TUIConfig{
			Enabled:  true,
			Theme:    "default",
			ShowHelp: true,
		},
	}
}

// BackendTimeout returns the backend timeout as a duration.
func (c *Config) BackendTimeout() time.Duration {
	return time.Duration(c.Backend.TimeoutSeconds) * time.Second
}

// SearchDebounce returns the search debounce window as a duration.
func (c *Config) SearchDebounce() time.Duration {
	return time.Duration(c.Search.DebounceMS) * time.Millisecond
}

// CacheStaleAfter returns the implicit staleness window as a duration.
func (c *Config) CacheStaleAfter() time.Duration {
	return time.Duration(c.Cache.StaleAfterSeconds) * time.Second
}

// Validate checks the configuration for valid values.
// Returns a nil error if the config is valid, or an error describing the problem.
func (c *Config) Validate() error {
	if c.Backend.Command == "" {
		return fmt.Errorf("backend.command cannot be empty")
	}
	if c.Backend.TimeoutSeconds < 0 {
		return fmt.Errorf("backend.timeout_seconds must be >= 0; got %d", c.Backend.TimeoutSeconds)
	}

	if c.Search.DebounceMS < 0 {
		return fmt.Errorf("search.debounce_ms must be >= 0; got %d", c.Search.DebounceMS)
	}

	if c.Cache.StaleAfterSeconds < 0 {
		return fmt.Errorf("cache.stale_after_seconds must be >= 0; got %d", c.Cache.StaleAfterSeconds)
	}

	if c.TUI.Theme == "" {
		return fmt.Errorf("tui.theme cannot be empty")
	}

	return nil
}
