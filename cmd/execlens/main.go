package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"execlens/internal/cli"
)

// Version is set at build time using ldflags
var Version = "dev"

// Commit is set at build time using ldflags
var Commit = "unknown"

// Date is set at build time using ldflags
var Date = "unknown"

func main() {
	rootCmd := &cobra.Command{
		Use:   "execlens",
		Short: "Browse and query the executable catalog",
		Long: `execlens is a terminal client for an executable catalog backend: it
lists workspaces and executables, filters and searches them through a
cached query layer, and offers an interactive namespace-tree browser.`,
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, Date),
		Run: func(cmd *cobra.Command, args []string) {
			_ = cmd.Help()
		},
	}

	// Add global flags
	cli.AddGlobalFlags(rootCmd)

	rootCmd.CompletionOptions.DisableDefaultCmd = true

	// Add subcommands
	rootCmd.AddCommand(cli.NewListCommand())
	rootCmd.AddCommand(cli.NewWorkspacesCommand())
	rootCmd.AddCommand(cli.NewViewCommand())
	rootCmd.AddCommand(cli.NewBrowseCommand())
	rootCmd.AddCommand(cli.NewVersionCommand(Version, Commit, Date))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
