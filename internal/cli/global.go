// Package cli provides global state and utilities for CLI commands.
package cli

import (
	"os"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"execlens/internal/backend"
	"execlens/internal/catalog"
	"execlens/internal/config"
	"execlens/internal/counts"
	"execlens/internal/querycache"
)

var (
	// NoTUI indicates that TUI/interactive mode should be disabled.
	// This is set by the global --no-tui flag.
	NoTUI bool

	// Verbose enables debug logging. Set by the global --verbose flag.
	Verbose bool

	// ConfigPath overrides the config file location. Set by the global
	// --config flag.
	ConfigPath string

	// globalMutex protects the global flag values for concurrent access.
	globalMutex sync.RWMutex
)

// AddGlobalFlags adds global flags to a command.
func AddGlobalFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().BoolVar(&NoTUI, "no-tui", false,
		"disable TUI/interactive mode; use plain text or JSON output")
	cmd.PersistentFlags().BoolVar(&Verbose, "verbose", false,
		"enable debug logging")
	cmd.PersistentFlags().StringVar(&ConfigPath, "config", "",
		"config file path (default: ~/.config/execlens/config.toml)")
}

// IsNoTUI returns true if TUI mode is disabled.
func IsNoTUI() bool {
	globalMutex.RLock()
	defer globalMutex.RUnlock()
	return NoTUI
}

// App bundles the shared runtime pieces every command needs: loaded
// config, logger, backend invoker, the query cache, and the catalog
// built on top of them.
type App struct {
	Config  *config.Config
	Logger  *log.Logger
	Invoker backend.Invoker
	Store   *querycache.Store
	Catalog *catalog.Catalog
	Counts  *counts.Aggregator
}

// NewApp loads configuration and wires the shared runtime. CLI
// commands get an undebounced catalog; only the TUI benefits from
// search debouncing.
func NewApp() (*App, error) {
	var cfg *config.Config
	var err error

	globalMutex.RLock()
	path := ConfigPath
	verbose := Verbose
	globalMutex.RUnlock()

	if path != "" {
		cfg, err = config.Load(path)
	} else {
		cfg, err = config.LoadWithDefaults()
	}
	if err != nil {
		return nil, err
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{})
	if verbose {
		logger.SetLevel(log.DebugLevel)
	}

	invoker := backend.NewCLIInvoker(backend.CLIConfig{
		Command: cfg.Backend.Command,
		Args:    cfg.Backend.Args,
		Timeout: cfg.BackendTimeout(),
	}, logger)

	store := querycache.NewStore(querycache.WithStaleAfter(cfg.CacheStaleAfter()))

	return &App{
		Config:  cfg,
		Logger:  logger,
		Invoker: invoker,
		Store:   store,
		Catalog: catalog.New(invoker, store, catalog.WithSearchDebounce(0)),
		Counts:  counts.New(invoker, store, logger),
	}, nil
}
