// Package config provides configuration management for execlens.
//
// This file contains config loading functionality including:
// - XDG config path detection
// - TOML file parsing
// - Environment variable overrides
// - Validation
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"execlens/internal/errors"
)

// DetectConfigPath searches for a config file using XDG standard paths.
//
// Search order:
// 1. ~/.config/execlens/config.toml
//
// Returns empty string if no config file is found (caller should use defaults).
func DetectConfigPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	configPath := filepath.Join(homeDir, ".config", "execlens", "config.toml")
	if _, err := os.Stat(configPath); err == nil {
		return configPath
	}

	return ""
}

// Load loads a config from the specified path.
// If the file doesn't exist, returns an error.
// After loading, applies environment variable overrides and validates.
func Load(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, &errors.ConfigError{Path: path, Err: fmt.Errorf("config file not found")}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &errors.ConfigError{Path: path, Err: err}
	}

	// Start with defaults so omitted fields keep their default values.
	cfg := DefaultConfig()

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, &errors.ConfigError{Path: path, Err: err}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, &errors.ConfigError{Path: path, Err: err}
	}

	return cfg, nil
}

// LoadWithDefaults attempts to load a config from XDG standard paths.
// If no config file is found, returns a config with all default values.
// If a config file is found but fails to load/validate, returns an error.
func LoadWithDefaults() (*Config, error) {
	configPath := DetectConfigPath()
	if configPath == "" {
		cfg := DefaultConfig()
		applyEnvOverrides(cfg)

		if err := cfg.Validate(); err != nil {
			return nil, &errors.ConfigError{Err: err}
		}
		return cfg, nil
	}

	return Load(configPath)
}

// applyEnvOverrides applies environment variable overrides to the config.
// Environment variables follow the pattern: EXECLENS_<SECTION>_<FIELD>
//
// Examples:
// - EXECLENS_BACKEND_COMMAND overrides [backend].command
// - EXECLENS_SEARCH_DEBOUNCE_MS overrides [search].debounce_ms
//
// Boolean fields: use "true"/"false" strings
// Array fields: comma-separated values
func applyEnvOverrides(c *Config) {
	applyString := func(key string, target *string) {
		if val, ok := os.LookupEnv(key); ok && val != "" {
			*target = val
		}
	}

	applyBool := func(key string, target *bool) {
		if val, ok := os.LookupEnv(key); ok && val != "" {
			switch strings.ToLower(val) {
			case "true", "1", "yes", "on":
				*target = true
			case "false", "0", "no", "off":
				*target = false
			}
		}
	}

	applyInt := func(key string, target *int) {
		if val, ok := os.LookupEnv(key); ok && val != "" {
			var i int
			if _, err := fmt.Sscanf(val, "%d", &i); err == nil {
				*target = i
			}
		}
	}

	applyList := func(key string, target *[]string) {
		if val, ok := os.LookupEnv(key); ok && val != "" {
			parts := strings.Split(val, ",")
			out := make([]string, 0, len(parts))
			for _, p := range parts {
				if trimmed := strings.TrimSpace(p); trimmed != "" {
					out = append(out, trimmed)
				}
			}
			*target = out
		}
	}

	// Backend section
	applyString("EXECLENS_BACKEND_COMMAND", &c.Backend.Command)
	applyList("EXECLENS_BACKEND_ARGS", &c.Backend.Args)
	applyInt("EXECLENS_BACKEND_TIMEOUT_SECONDS", &c.Backend.TimeoutSeconds)

	// Search section
	applyInt("EXECLENS_SEARCH_DEBOUNCE_MS", &c.Search.DebounceMS)

	// Cache section
	applyInt("EXECLENS_CACHE_STALE_AFTER_SECONDS", &c.Cache.StaleAfterSeconds)

	// TUI section
	applyBool("EXECLENS_TUI_ENABLED", &c.TUI.Enabled)
	applyString("EXECLENS_TUI_THEME", &c.TUI.Theme)
	applyBool("EXECLENS_TUI_SHOW_HELP", &c.TUI.ShowHelp)
}
