// Package cli provides Cobra command definitions for execlens.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/rodaine/table"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"execlens/internal/catalog"
	"execlens/internal/display"
	"execlens/internal/entity"
)

// OutputFormat defines the output format for listing commands.
type OutputFormat string

const (
	FormatTable OutputFormat = "table"
	FormatJSON  OutputFormat = "json"
	FormatYAML  OutputFormat = "yaml"
	FormatPlain OutputFormat = "plain"
)

// ListOptions contains the options for the list command.
type ListOptions struct {
	Workspace  string
	Namespace  string
	Root       bool
	Tags       []string
	Verb       string
	Visibility string
	Type       string
	Search     string
	Format     string
}

// NewListCommand creates the list command for listing executables.
func NewListCommand() *cobra.Command {
	opts := &ListOptions{}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List executables with optional filtering",
		Long: `List the executables known to the backend, with filtering options.

Executables can be filtered by:
- --workspace: Only show executables in a workspace
- --namespace: Only show executables in a namespace
- --root: Only show executables without a namespace
- --tag: Filter by tag (can be specified multiple times)
- --verb: Filter by verb
- --visibility: Filter by visibility (public, private, internal, hidden)
- --type: Filter by run mode (exec, serial, parallel, launch, request, render)
- --search: Substring match against ref and description

Examples:
  execlens list                       # List all executables in table format
  execlens list --workspace core      # List executables in the core workspace
  execlens list --root                # List executables without a namespace
  execlens list --search seed         # Search refs and descriptions
  execlens list --format json         # List executables in JSON format`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Workspace, "workspace", "w", "", "filter by workspace")
	cmd.Flags().StringVarP(&opts.Namespace, "namespace", "n", "", "filter by namespace")
	cmd.Flags().BoolVar(&opts.Root, "root", false, "only executables without a namespace")
	cmd.Flags().StringSliceVar(&opts.Tags, "tag", nil, "filter by tag (repeatable)")
	cmd.Flags().StringVar(&opts.Verb, "verb", "", "filter by verb")
	cmd.Flags().StringVar(&opts.Visibility, "visibility", "", "filter by visibility")
	cmd.Flags().StringVar(&opts.Type, "type", "", "filter by run mode")
	cmd.Flags().StringVarP(&opts.Search, "search", "s", "", "search refs and descriptions")
	cmd.Flags().StringVar(&opts.Format, "format", "table", "output format (table, json, yaml, plain)")

	return cmd
}

func runList(opts *ListOptions) error {
	if opts.Root && opts.Namespace != "" {
		return fmt.Errorf("--root and --namespace are mutually exclusive")
	}

	app, err := NewApp()
	if err != nil {
		return err
	}

	update := catalog.FilterUpdate{}
	if opts.Workspace != "" {
		update.Workspace = &opts.Workspace
	}
	if opts.Root {
		ns := catalog.RootNamespace
		update.Namespace = &ns
	} else if opts.Namespace != "" {
		update.Namespace = &opts.Namespace
	}
	if len(opts.Tags) > 0 {
		update.Tags = &opts.Tags
	}
	if opts.Verb != "" {
		update.Verb = &opts.Verb
	}
	if opts.Visibility != "" {
		vis := entity.Visibility(opts.Visibility)
		update.Visibility = &vis
	}
	if opts.Type != "" {
		typ := entity.Type(opts.Type)
		update.Type = &typ
	}
	if opts.Search != "" {
		update.Search = &opts.Search
	}
	app.Catalog.SetFilters(update)

	execs, err := app.Catalog.Executables(context.Background())
	if err != nil {
		return err
	}

	switch OutputFormat(opts.Format) {
	case FormatTable:
		printExecutableTable(execs)
	case FormatJSON:
		return printJSON(execs)
	case FormatYAML:
		return printYAML(execs)
	case FormatPlain:
		printExecutablesPlain(execs)
	default:
		return fmt.Errorf("invalid format: %s (must be table, json, yaml, or plain)", opts.Format)
	}

	return nil
}

// printExecutableTable prints executables in table format.
func printExecutableTable(execs []entity.Executable) {
	if len(execs) == 0 {
		fmt.Println("No executables found.")
		return
	}

	tbl := table.New("REF", "VERB", "TYPE", "NAMESPACE", "TAGS", "DESCRIPTION")
	for _, e := range execs {
		tbl.AddRow(
			e.Ref,
			e.Verb,
			string(e.Type()),
			e.Namespace,
			strings.Join(e.Tags, ", "),
			display.ShortenDescription(e.Description, 60),
		)
	}
	tbl.Print()

	fmt.Printf("\nTotal: %d executable(s)\n", len(execs))
}

// printJSON encodes any value as indented JSON on stdout.
func printJSON(v any) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// printYAML encodes any value as YAML on stdout.
func printYAML(v any) error {
	encoder := yaml.NewEncoder(os.Stdout)
	defer encoder.Close()
	return encoder.Encode(v)
}

// printExecutablesPlain prints executables in plain text format.
func printExecutablesPlain(execs []entity.Executable) {
	if len(execs) == 0 {
		fmt.Println("No executables found.")
		return
	}

	for i, e := range execs {
		fmt.Printf("%d. %s\n", i+1, e.Ref)
		fmt.Printf("   Label: %s\n", e.Label())
		fmt.Printf("   Type: %s\n", e.Type())
		if e.Workspace != "" {
			fmt.Printf("   Workspace: %s\n", e.Workspace)
		}
		if e.Namespace != "" {
			fmt.Printf("   Namespace: %s\n", e.Namespace)
		}
		if len(e.Tags) > 0 {
			fmt.Printf("   Tags: %s\n", strings.Join(e.Tags, ", "))
		}
		if e.Description != "" {
			fmt.Printf("   %s\n", display.ShortenDescription(e.Description, 100))
		}
		fmt.Println()
	}

	fmt.Printf("Total: %d executable(s)\n", len(execs))
}
