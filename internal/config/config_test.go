package config

import (
	"testing"
	"time"
)

// TestDefaultConfig verifies that default values are correctly set.
func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	tests := []struct {
		name string
		got  any
		want any
	}{
		// Backend section defaults
		{"backend.command", cfg.Backend.Command, "flow"},
		{"backend.timeout_seconds", cfg.Backend.TimeoutSeconds, 30},

		// Search section defaults
		{"search.debounce_ms", cfg.Search.DebounceMS, 300},

		// Cache section defaults
		{"cache.stale_after_seconds", cfg.Cache.StaleAfterSeconds, 0},

		// TUI section defaults
		{"tui.enabled", cfg.TUI.Enabled, true},
		{"tui.theme", cfg.TUI.Theme, "default"},
		{"tui.show_help", cfg.TUI.ShowHelp, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %v, want %v", tt.got, tt.want)
			}
		})
	}
}

// TestDefaultConfigValidates ensures the defaults pass validation as-is.
func TestDefaultConfigValidates(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("default config failed validation: %v", err)
	}
}

func TestDurationHelpers(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Backend.TimeoutSeconds = 5
	cfg.Search.DebounceMS = 150
	cfg.Cache.StaleAfterSeconds = 60

	if got := cfg.BackendTimeout(); got != 5*time.Second {
		t.Errorf("BackendTimeout() = %v, want 5s", got)
	}
	if got := cfg.SearchDebounce(); got != 150*time.Millisecond {
		t.Errorf("SearchDebounce() = %v, want 150ms", got)
	}
	if got := cfg.CacheStaleAfter(); got != time.Minute {
		t.Errorf("CacheStaleAfter() = %v, want 1m", got)
	}
}

// TestValidate checks validation of each config section.
func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid defaults", func(c *Config) {}, false},
		{"empty backend command", func(c *Config) { c.Backend.Command = "" }, true},
		{"negative timeout", func(c *Config) { c.Backend.TimeoutSeconds = -1 }, true},
		{"zero timeout allowed", func(c *Config) { c.Backend.TimeoutSeconds = 0 }, false},
		{"negative debounce", func(c *Config) { c.Search.DebounceMS = -1 }, true},
		{"zero debounce allowed", func(c *Config) { c.Search.DebounceMS = 0 }, false},
		{"negative stale window", func(c *Config) { c.Cache.StaleAfterSeconds = -1 }, true},
		{"empty theme", func(c *Config) { c.TUI.Theme = "" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
