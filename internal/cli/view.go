package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"execlens/internal/backend"
	"execlens/internal/display"
	"execlens/internal/entity"
	"execlens/internal/errors"
	"execlens/internal/querycache"
)

// ViewOptions contains the options for the view command.
type ViewOptions struct {
	Format string
}

// NewViewCommand creates the view command for inspecting one
// executable.
func NewViewCommand() *cobra.Command {
	opts := &ViewOptions{}

	cmd := &cobra.Command{
		Use:   "view <ref>",
		Short: "Show the details of one executable",
		Long: `Show the full record for one executable: its identity, tags,
visibility, rendered markdown description, and the details of its run
mode (command, child refs, request URL, template, or launch target).

Examples:
  execlens view core/db:migrate
  execlens view core/build --format json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runView(opts, args[0])
		},
	}

	cmd.Flags().StringVar(&opts.Format, "format", "text", "output format (text, json, yaml)")

	return cmd
}

func runView(opts *ViewOptions, ref string) error {
	app, err := NewApp()
	if err != nil {
		return err
	}
	ctx := context.Background()

	exec, err := querycache.Fetch(ctx, app.Store,
		querycache.NewKey(backend.OpGetExecutable, backend.GetExecutableRequest{ExecutableRef: ref}),
		func(ctx context.Context) (*entity.Executable, error) {
			return backend.GetExecutable(ctx, app.Invoker, ref)
		})
	if err != nil {
		if errors.IsNotFound(err) {
			return fmt.Errorf("no executable found with ref %q", ref)
		}
		return err
	}

	switch opts.Format {
	case "text":
		return printExecutableText(exec)
	case "json":
		return printJSON(exec)
	case "yaml":
		return printYAML(exec)
	default:
		return fmt.Errorf("invalid format: %s (must be text, json, or yaml)", opts.Format)
	}
}

// printExecutableText renders the executable for the terminal, with the
// markdown description passed through glamour.
func printExecutableText(e *entity.Executable) error {
	fmt.Printf("%s\n", e.Label())
	fmt.Printf("Ref: %s\n", e.Ref)
	fmt.Printf("Type: %s\n", e.Type())
	if e.Workspace != "" {
		fmt.Printf("Workspace: %s\n", e.Workspace)
	}
	if e.Namespace != "" {
		fmt.Printf("Namespace: %s\n", e.Namespace)
	}
	fmt.Printf("Visibility: %s\n", e.Visibility.OrDefault())
	if len(e.Tags) > 0 {
		fmt.Printf("Tags: %s\n", strings.Join(e.Tags, ", "))
	}
	if len(e.VerbAliases) > 0 {
		fmt.Printf("Verb aliases: %s\n", strings.Join(e.VerbAliases, ", "))
	}

	printModeDetails(e.Mode)

	if e.Description != "" {
		rendered, err := glamour.Render(e.Description, "auto")
		if err != nil {
			// Fall back to the stripped plain text.
			fmt.Printf("\n%s\n", display.CleanMarkdown(e.Description))
			return nil
		}
		fmt.Print(rendered)
	}

	return nil
}

// printModeDetails prints the variant-specific fields of the run mode.
func printModeDetails(m entity.Mode) {
	switch m.Kind {
	case entity.TypeExec:
		if m.Exec.Cmd != "" {
			fmt.Printf("Command: %s\n", m.Exec.Cmd)
		}
		if m.Exec.File != "" {
			fmt.Printf("File: %s\n", m.Exec.File)
		}
		if m.Exec.Dir != "" {
			fmt.Printf("Directory: %s\n", display.ShortenPath(m.Exec.Dir, 400, 2))
		}
	case entity.TypeSerial:
		fmt.Printf("Runs serially: %s\n", strings.Join(m.Serial.Execs, " -> "))
	case entity.TypeParallel:
		fmt.Printf("Runs in parallel: %s\n", strings.Join(m.Parallel.Execs, ", "))
		if m.Parallel.MaxThreads > 0 {
			fmt.Printf("Max threads: %d\n", m.Parallel.MaxThreads)
		}
	case entity.TypeLaunch:
		if m.Launch.URI != "" {
			fmt.Printf("Opens: %s\n", m.Launch.URI)
		}
		if m.Launch.App != "" {
			fmt.Printf("With app: %s\n", m.Launch.App)
		}
	case entity.TypeRequest:
		method := m.Request.Method
		if method == "" {
			method = "GET"
		}
		fmt.Printf("Request: %s %s\n", method, m.Request.URL)
	case entity.TypeRender:
		fmt.Printf("Renders template: %s\n", m.Render.TemplateFile)
		if m.Render.TemplateData != "" {
			fmt.Printf("Template data: %s\n", m.Render.TemplateData)
		}
	default:
		fmt.Println("Run mode: unknown")
	}
}
