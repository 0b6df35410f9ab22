package cli

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"execlens/internal/catalog"
	"execlens/internal/entity"
	"execlens/internal/tui"
)

// BrowseOptions contains the options for the browse command.
type BrowseOptions struct {
	Workspace string
	Filter    bool
}

// NewBrowseCommand creates the browse command launching the TUI.
func NewBrowseCommand() *cobra.Command {
	opts := &BrowseOptions{}

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse the executable catalog interactively",
		Long: `Open the interactive catalog browser: a namespace tree with live
search, filter controls, and a detail preview.

With --filter, an interactive form pre-selects tags, verb, visibility,
and run-mode filters before the browser opens.

Examples:
  execlens browse
  execlens browse --workspace core
  execlens browse --filter`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBrowse(opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Workspace, "workspace", "w", "", "pre-select a workspace")
	cmd.Flags().BoolVar(&opts.Filter, "filter", false, "choose filters interactively before browsing")

	return cmd
}

func runBrowse(opts *BrowseOptions) error {
	app, err := NewApp()
	if err != nil {
		return err
	}

	if IsNoTUI() || !app.Config.TUI.Enabled {
		// Fall back to the plain listing.
		return runList(&ListOptions{Workspace: opts.Workspace, Format: "plain"})
	}

	// The browse catalog debounces search input like the desktop UI.
	browseCatalog := catalog.New(app.Invoker, app.Store,
		catalog.WithSearchDebounce(app.Config.SearchDebounce()))

	if opts.Workspace != "" {
		browseCatalog.SetFilters(catalog.FilterUpdate{Workspace: &opts.Workspace})
	}

	if opts.Filter {
		if err := runFilterForm(browseCatalog); err != nil {
			return err
		}
	}

	model := tui.NewBrowseModel(browseCatalog, tui.BrowseConfig{
		Theme:    app.Config.TUI.Theme,
		ShowHelp: app.Config.TUI.ShowHelp,
		Debounce: app.Config.SearchDebounce(),
	})

	program := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("browser failed: %w", err)
	}
	return nil
}

// runFilterForm collects tag, verb, visibility, and type filters
// interactively, offering the values present in the current catalog.
func runFilterForm(c *catalog.Catalog) error {
	ctx := context.Background()
	opts, err := c.Options(ctx)
	if err != nil {
		return err
	}
	workspaces, err := c.Workspaces(ctx)
	if err != nil {
		return err
	}

	var (
		workspace  string
		tags       []string
		verb       string
		visibility string
		execType   string
	)

	workspaceOptions := []huh.Option[string]{huh.NewOption("Any workspace", "")}
	for _, ws := range workspaces {
		workspaceOptions = append(workspaceOptions, huh.NewOption(ws.Title(), ws.Name))
	}

	tagOptions := make([]huh.Option[string], 0, len(opts.Tags))
	for _, t := range opts.Tags {
		tagOptions = append(tagOptions, huh.NewOption(t, t))
	}

	verbOptions := []huh.Option[string]{huh.NewOption("Any verb", "")}
	for _, v := range opts.Verbs {
		verbOptions = append(verbOptions, huh.NewOption(v, v))
	}

	visibilityOptions := []huh.Option[string]{huh.NewOption("Any visibility", "")}
	for _, v := range entity.Visibilities {
		visibilityOptions = append(visibilityOptions, huh.NewOption(string(v), string(v)))
	}

	typeOptions := []huh.Option[string]{huh.NewOption("Any run mode", "")}
	for _, t := range entity.Types {
		typeOptions = append(typeOptions, huh.NewOption(string(t), string(t)))
	}

	fields := []huh.Field{
		huh.NewSelect[string]().
			Title("Workspace").
			Options(workspaceOptions...).
			Value(&workspace),
		huh.NewSelect[string]().
			Title("Verb").
			Options(verbOptions...).
			Value(&verb),
		huh.NewSelect[string]().
			Title("Visibility").
			Options(visibilityOptions...).
			Value(&visibility),
		huh.NewSelect[string]().
			Title("Run mode").
			Options(typeOptions...).
			Value(&execType),
	}
	if len(tagOptions) > 0 {
		fields = append([]huh.Field{
			huh.NewMultiSelect[string]().
				Title("Tags").
				Options(tagOptions...).
				Value(&tags),
		}, fields...)
	}

	if err := huh.NewForm(huh.NewGroup(fields...)).Run(); err != nil {
		return fmt.Errorf("form error: %w", err)
	}

	update := catalog.FilterUpdate{}
	if workspace != "" {
		update.Workspace = &workspace
	}
	if len(tags) > 0 {
		update.Tags = &tags
	}
	if verb != "" {
		update.Verb = &verb
	}
	if visibility != "" {
		vis := entity.Visibility(visibility)
		update.Visibility = &vis
	}
	if execType != "" {
		typ := entity.Type(execType)
		update.Type = &typ
	}
	c.SetFilters(update)

	return nil
}
