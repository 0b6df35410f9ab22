// Package tui provides Bubble Tea models for terminal UI interactions.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"execlens/internal/catalog"
	"execlens/internal/display"
	"execlens/internal/entity"
)

// BrowseConfig carries the TUI settings the browser honors.
type BrowseConfig struct {
	Theme    string
	ShowHelp bool
	// Debounce is how long to wait after a keystroke before re-running
	// the catalog pipeline; zero re-evaluates immediately.
	Debounce time.Duration
}

// browseRow is one visible line in the tree pane: either a namespace
// group or an executable leaf.
type browseRow struct {
	label       string
	ref         string
	isNamespace bool
	verbType    entity.VerbType
	indent      int
}

// catalogResultMsg delivers an async catalog read to the model.
type catalogResultMsg struct {
	execs []entity.Executable
	err   error
}

// searchSettledMsg fires after the debounce window so the model
// re-reads the catalog with the settled search term.
type searchSettledMsg struct{}

// BrowseModel is the Bubble Tea model for the catalog browser: a
// search input, the namespace tree, and a detail preview.
type BrowseModel struct {
	// Catalog serves filtered executables and the namespace tree.
	Catalog *catalog.Catalog

	// SearchInput is the text input for the search term.
	SearchInput textinput.Model

	rows       []browseRow
	execsByRef map[string]entity.Executable
	cursor     int
	loading    bool
	err        error

	// Quit indicates the user left the browser.
	Quit bool

	cfg BrowseConfig

	// styles
	normalStyle    lipgloss.Style
	selectedStyle  lipgloss.Style
	namespaceStyle lipgloss.Style
	headerStyle    lipgloss.Style
	metadataStyle  lipgloss.Style
	errorStyle     lipgloss.Style
}

// NewBrowseModel creates a browser over the given catalog.
func NewBrowseModel(c *catalog.Catalog, cfg BrowseConfig) BrowseModel {
	ti := textinput.New()
	ti.Placeholder = "Search executables..."
	ti.Focus()

	return BrowseModel{
		Catalog:     c,
		SearchInput: ti,
		execsByRef:  map[string]entity.Executable{},
		loading:     true,
		cfg:         cfg,
		normalStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")),
		selectedStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("229")).
			Bold(true),
		namespaceStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("75")).
			Bold(true),
		headerStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")).
			Bold(true),
		metadataStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")),
		errorStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("203")),
	}
}

// Init implements tea.Model.
func (m BrowseModel) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.loadCatalog())
}

// loadCatalog reads the catalog asynchronously; the cache makes
// repeated reads for an unchanged filter tuple free.
func (m BrowseModel) loadCatalog() tea.Cmd {
	c := m.Catalog
	return func() tea.Msg {
		execs, err := c.Executables(context.Background())
		return catalogResultMsg{execs: execs, err: err}
	}
}

// settleSearch schedules a catalog re-read once the search debounce
// window has passed.
func (m BrowseModel) settleSearch() tea.Cmd {
	delay := m.cfg.Debounce + 20*time.Millisecond
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return searchSettledMsg{}
	})
}

// Update implements tea.Model.
func (m BrowseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case catalogResultMsg:
		m.loading = false
		m.err = msg.err
		if msg.err == nil {
			m.setExecutables(msg.execs)
		}
		return m, nil

	case searchSettledMsg:
		return m, m.loadCatalog()

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.Quit = true
			return m, tea.Quit

		case "up":
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil

		case "down":
			if m.cursor < len(m.rows)-1 {
				m.cursor++
			}
			return m, nil

		case "ctrl+r":
			m.Catalog.Refresh()
			m.loading = true
			return m, m.loadCatalog()

		case "ctrl+x":
			m.Catalog.ClearFilters()
			m.SearchInput.SetValue("")
			m.loading = true
			return m, m.loadCatalog()
		}
	}

	oldTerm := m.SearchInput.Value()
	m.SearchInput, cmd = m.SearchInput.Update(msg)
	if newTerm := m.SearchInput.Value(); newTerm != oldTerm {
		m.Catalog.SetFilters(catalog.FilterUpdate{Search: &newTerm})
		return m, tea.Batch(cmd, m.settleSearch())
	}

	return m, cmd
}

// setExecutables rebuilds the visible rows from a fresh result set.
func (m *BrowseModel) setExecutables(execs []entity.Executable) {
	m.execsByRef = make(map[string]entity.Executable, len(execs))
	for _, e := range execs {
		m.execsByRef[e.Ref] = e
	}

	m.rows = m.rows[:0]
	for _, node := range catalog.BuildTree(execs) {
		if node.IsNamespace {
			m.rows = append(m.rows, browseRow{label: node.Label, isNamespace: true})
			for _, child := range node.Children {
				m.rows = append(m.rows, browseRow{
					label:    child.Label,
					ref:      child.Value,
					verbType: child.VerbType,
					indent:   1,
				})
			}
			continue
		}
		m.rows = append(m.rows, browseRow{
			label:    node.Label,
			ref:      node.Value,
			verbType: node.VerbType,
		})
	}

	if m.cursor >= len(m.rows) {
		m.cursor = max(0, len(m.rows)-1)
	}
}

// View implements tea.Model.
func (m BrowseModel) View() string {
	var b strings.Builder

	b.WriteString("\n  ")
	b.WriteString(m.headerStyle.Render("Executable Catalog"))
	b.WriteString("\n\n")

	if m.cfg.ShowHelp {
		b.WriteString("  ")
		b.WriteString(m.metadataStyle.Render(
			"[Ctrl+R] Refresh • [Ctrl+X] Clear filters • [Esc] Quit"))
		b.WriteString("\n\n")
	}

	left := m.renderTreeColumn(50)
	right := m.renderPreviewColumn(60)
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, left, right))
	b.WriteString("\n")

	return b.String()
}

// renderTreeColumn renders the search input and the namespace tree.
func (m BrowseModel) renderTreeColumn(width int) string {
	var b strings.Builder

	b.WriteString("  Search: ")
	b.WriteString(m.SearchInput.View())
	b.WriteString("\n\n")

	if count := m.Catalog.Filters().ActiveCount(); count > 0 {
		b.WriteString("  ")
		b.WriteString(m.metadataStyle.Render(fmt.Sprintf("%d active filter(s)", count)))
		b.WriteString("\n\n")
	}

	switch {
	case m.err != nil:
		b.WriteString("  ")
		b.WriteString(m.errorStyle.Render("catalog unavailable: " + m.err.Error()))
	case m.loading && len(m.rows) == 0:
		b.WriteString("  loading...")
	case len(m.rows) == 0:
		b.WriteString("  (no executables)")
	default:
		start := max(0, m.cursor-10)
		end := min(len(m.rows), start+21)

		for i := start; i < end; i++ {
			row := m.rows[i]

			line := "  " + strings.Repeat("  ", row.indent)
			if row.isNamespace {
				line += "▸ " + row.label
			} else {
				line += verbGlyph(row.verbType) + " " + row.label
			}

			style := m.normalStyle
			if row.isNamespace {
				style = m.namespaceStyle
			}
			if i == m.cursor {
				style = m.selectedStyle
			}
			b.WriteString(style.Render(line) + "\n")
		}
	}

	return lipgloss.NewStyle().
		Width(width).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(b.String())
}

// renderPreviewColumn renders the detail pane for the selected leaf.
func (m BrowseModel) renderPreviewColumn(width int) string {
	if len(m.rows) == 0 || m.cursor >= len(m.rows) {
		return ""
	}

	row := m.rows[m.cursor]
	if row.isNamespace {
		var b strings.Builder
		b.WriteString("  Namespace\n\n")
		b.WriteString("    " + m.namespaceStyle.Render(row.label) + "\n")
		return m.previewBorder(width, b.String())
	}

	e, ok := m.execsByRef[row.ref]
	if !ok {
		return ""
	}

	var b strings.Builder
	b.WriteString("  " + m.headerStyle.Render(e.Label()) + "\n\n")

	wsStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(display.ColorFromString(e.Workspace)))

	b.WriteString("  Ref:\n")
	b.WriteString("    " + m.metadataStyle.Render(e.Ref) + "\n\n")
	b.WriteString("  Type:\n")
	b.WriteString("    " + m.metadataStyle.Render(string(e.Type())) + "\n\n")
	if e.Workspace != "" {
		b.WriteString("  Workspace:\n")
		b.WriteString("    " + wsStyle.Render(e.Workspace) + "\n\n")
	}
	b.WriteString("  Visibility:\n")
	b.WriteString("    " + m.metadataStyle.Render(string(e.Visibility.OrDefault())) + "\n\n")
	if len(e.Tags) > 0 {
		b.WriteString("  Tags:\n")
		for _, tag := range e.Tags {
			b.WriteString("    • " + tag + "\n")
		}
		b.WriteString("\n")
	}
	if e.Description != "" {
		b.WriteString("  Description:\n")
		b.WriteString("    " + display.ShortenDescription(e.Description, 200) + "\n")
	}

	return m.previewBorder(width, b.String())
}

func (m BrowseModel) previewBorder(width int, content string) string {
	return lipgloss.NewStyle().
		Width(width).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(content)
}

// SelectedRef returns the ref under the cursor, or empty when a
// namespace row is selected.
func (m BrowseModel) SelectedRef() string {
	if m.cursor < len(m.rows) {
		return m.rows[m.cursor].ref
	}
	return ""
}

// DidQuit returns true if the user left the browser.
func (m BrowseModel) DidQuit() bool {
	return m.Quit
}

// verbGlyph maps a verb classification to its tree glyph.
func verbGlyph(vt entity.VerbType) string {
	switch vt {
	case entity.VerbTypeDeactivation:
		return "□"
	case entity.VerbTypeConfiguration:
		return "⚙"
	case entity.VerbTypeDestruction:
		return "✗"
	case entity.VerbTypeRetrieval:
		return "↓"
	case entity.VerbTypeUpdate:
		return "⟳"
	case entity.VerbTypeValidation:
		return "✓"
	case entity.VerbTypeLaunch:
		return "⌘"
	case entity.VerbTypeCreation:
		return "+"
	case entity.VerbTypeRestart:
		return "↻"
	case entity.VerbTypeBuild:
		return "⚒"
	default:
		return "▶"
	}
}
