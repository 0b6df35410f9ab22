package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rodaine/table"
	"github.com/spf13/cobra"

	"execlens/internal/display"
	"execlens/internal/entity"
)

// WorkspacesOptions contains the options for the workspaces command.
type WorkspacesOptions struct {
	Format string
	Counts bool
}

// NewWorkspacesCommand creates the workspaces command.
func NewWorkspacesCommand() *cobra.Command {
	opts := &WorkspacesOptions{}

	cmd := &cobra.Command{
		Use:   "workspaces",
		Short: "List workspaces with executable counts",
		Long: `List the workspaces known to the backend.

With --counts (the default), each workspace row includes the number of
executables it contains, resolved with one backend call per workspace.
A workspace whose count cannot be resolved shows zero.

Examples:
  execlens workspaces                 # Table with executable counts
  execlens workspaces --counts=false  # Skip the per-workspace count calls
  execlens workspaces --format json   # JSON output`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWorkspaces(opts)
		},
	}

	cmd.Flags().StringVar(&opts.Format, "format", "table", "output format (table, json, yaml, plain)")
	cmd.Flags().BoolVar(&opts.Counts, "counts", true, "resolve per-workspace executable counts")

	return cmd
}

func runWorkspaces(opts *WorkspacesOptions) error {
	app, err := NewApp()
	if err != nil {
		return err
	}
	ctx := context.Background()

	workspaces, err := app.Catalog.Workspaces(ctx)
	if err != nil {
		return err
	}

	if opts.Counts {
		app.Counts.Resolve(ctx, workspaces)
	}

	switch OutputFormat(opts.Format) {
	case FormatTable:
		printWorkspaceTable(app, workspaces, opts.Counts)
	case FormatJSON:
		return printJSON(workspaceRecords(app, workspaces, opts.Counts))
	case FormatYAML:
		return printYAML(workspaceRecords(app, workspaces, opts.Counts))
	case FormatPlain:
		printWorkspacesPlain(app, workspaces, opts.Counts)
	default:
		return fmt.Errorf("invalid format: %s (must be table, json, yaml, or plain)", opts.Format)
	}

	return nil
}

// printWorkspaceTable prints workspaces in table format, each name
// tinted with its deterministic color.
func printWorkspaceTable(app *App, workspaces []entity.Workspace, withCounts bool) {
	if len(workspaces) == 0 {
		fmt.Println("No workspaces found.")
		return
	}

	headers := []any{"WORKSPACE", "PATH", "TAGS"}
	if withCounts {
		headers = append(headers, "EXECUTABLES")
	}

	tbl := table.New(headers...)
	for _, ws := range workspaces {
		style := lipgloss.NewStyle().Foreground(lipgloss.Color(display.ColorFromString(ws.Name)))
		row := []any{
			style.Render(ws.Title()),
			display.ShortenPath(ws.Path, 400, 2),
			strings.Join(ws.Tags, ", "),
		}
		if withCounts {
			count := fmt.Sprintf("%d", app.Counts.CountFor(ws.Name))
			if err := app.Counts.ErrorFor(ws.Name); err != nil {
				count += " (unavailable)"
			}
			row = append(row, count)
		}
		tbl.AddRow(row...)
	}
	tbl.Print()

	if withCounts {
		fmt.Printf("\nTotal: %d executable(s) across %d workspace(s)\n",
			app.Counts.TotalCount(), len(workspaces))
	} else {
		fmt.Printf("\nTotal: %d workspace(s)\n", len(workspaces))
	}
}

// workspaceRecord is the structured output shape for one workspace.
type workspaceRecord struct {
	Name        string   `json:"name" yaml:"name"`
	DisplayName string   `json:"displayName,omitempty" yaml:"displayName,omitempty"`
	Path        string   `json:"path,omitempty" yaml:"path,omitempty"`
	Tags        []string `json:"tags,omitempty" yaml:"tags,omitempty"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
	Executables *int     `json:"executables,omitempty" yaml:"executables,omitempty"`
	CountError  string   `json:"countError,omitempty" yaml:"countError,omitempty"`
}

func workspaceRecords(app *App, workspaces []entity.Workspace, withCounts bool) []workspaceRecord {
	records := make([]workspaceRecord, 0, len(workspaces))
	for _, ws := range workspaces {
		rec := workspaceRecord{
			Name:        ws.Name,
			DisplayName: ws.DisplayName,
			Path:        ws.Path,
			Tags:        ws.Tags,
			Description: ws.Description,
		}
		if withCounts {
			count := app.Counts.CountFor(ws.Name)
			rec.Executables = &count
			if err := app.Counts.ErrorFor(ws.Name); err != nil {
				rec.CountError = err.Error()
			}
		}
		records = append(records, rec)
	}
	return records
}

// printWorkspacesPlain prints workspaces in plain text format.
func printWorkspacesPlain(app *App, workspaces []entity.Workspace, withCounts bool) {
	if len(workspaces) == 0 {
		fmt.Println("No workspaces found.")
		return
	}

	for i, ws := range workspaces {
		fmt.Printf("%d. %s\n", i+1, ws.Title())
		if ws.Path != "" {
			fmt.Printf("   Path: %s\n", ws.Path)
		}
		if len(ws.Tags) > 0 {
			fmt.Printf("   Tags: %s\n", strings.Join(ws.Tags, ", "))
		}
		if withCounts {
			fmt.Printf("   Executables: %d\n", app.Counts.CountFor(ws.Name))
		}
		fmt.Println()
	}

	fmt.Printf("Total: %d workspace(s)\n", len(workspaces))
}
