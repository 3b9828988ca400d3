package ui

// tabbed_table.go provides a multi-page tabbed table viewer.
// Use this for any view that needs several tables with Tab/←/→ switching,
// such as the analytics trends, hospital performance and test-type tabs.
//
// It follows the same patterns as every other page:
//   - RenderTableWithSelection for full-width selection highlighting
//   - InitTable/ApplyTableStyles for consistent table styling
//   - ColumnSpec/CalculateColumns for flexible column widths

import (
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
)

// TabbedTablePage defines a single page/tab of data.
type TabbedTablePage struct {
	Name    string       // Tab label (e.g., "Monthly Trends")
	Columns []ColumnSpec // Column specifications (use columns.go helpers)
	Rows    []table.Row
}

// TabbedTableConfig defines the complete configuration for a tabbed table.
type TabbedTableConfig struct {
	Title    string
	Subtitle string
	Pages    []TabbedTablePage // at least 1
}

// TabbedTableModel holds one table per page and the active tab. It is
// embedded in a page model, which forwards messages and places Content()
// in its own layout.
type TabbedTableModel struct {
	config      TabbedTableConfig
	tables      []table.Model
	currentPage int
	layout      Layout
}

// NewTabbedTableModel creates a new tabbed table viewer.
func NewTabbedTableModel(cfg TabbedTableConfig, layout Layout) TabbedTableModel {
	if len(cfg.Pages) == 0 {
		cfg.Pages = []TabbedTablePage{{
			Name:    "Empty",
			Columns: SingleColumnSpec("No Data"),
			Rows:    []table.Row{{"No pages configured"}},
		}}
	}

	tables := make([]table.Model, len(cfg.Pages))
	for i, page := range cfg.Pages {
		t := InitTable(CalculateColumns(page.Columns, layout.TableWidth), page.Rows, layout)
		t.SetHeight(layout.TabbedTableHeight())
		if i != 0 {
			t.Blur()
		}
		tables[i] = t
	}

	return TabbedTableModel{
		config: cfg,
		tables: tables,
		layout: layout,
	}
}

// Update handles resize, tab switching and scrolling of the active table.
func (m TabbedTableModel) Update(msg tea.Msg) (TabbedTableModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.layout = NewLayout(msg.Width, msg.Height)
		m.updateAllTableSizes()
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "tab", "right", "l":
			m.SwitchPage((m.currentPage + 1) % len(m.config.Pages))
			return m, nil
		case "shift+tab", "left", "h":
			m.SwitchPage((m.currentPage + len(m.config.Pages) - 1) % len(m.config.Pages))
			return m, nil
		}
		HandleTableKeys(&m.tables[m.currentPage], msg.String())
	}
	return m, nil
}

// SwitchPage focuses page i. Out-of-range indexes are ignored.
func (m *TabbedTableModel) SwitchPage(i int) {
	if i < 0 || i >= len(m.config.Pages) || i == m.currentPage {
		return
	}
	m.tables[m.currentPage].Blur()
	m.currentPage = i
	m.tables[m.currentPage].Focus()
	m.tables[m.currentPage].GotoTop()
}

// CurrentPage is the index of the active tab.
func (m TabbedTableModel) CurrentPage() int {
	return m.currentPage
}

func (m *TabbedTableModel) updateAllTableSizes() {
	for i, page := range m.config.Pages {
		m.tables[i].SetColumns(CalculateColumns(page.Columns, m.layout.TableWidth))
		m.tables[i].SetHeight(m.layout.TabbedTableHeight())
	}
}

// Content renders the title, tab indicator and active table, without the
// surrounding boxes.
func (m TabbedTableModel) Content() string {
	var content strings.Builder

	if m.config.Title != "" {
		content.WriteString(RenderTitle(m.config.Title))
		content.WriteString("\n")
	}
	if len(m.config.Pages) > 1 {
		content.WriteString(m.renderTabIndicator())
		content.WriteString("\n")
	}
	if m.config.Subtitle != "" {
		content.WriteString(RenderDim(m.config.Subtitle))
		content.WriteString("\n")
	}
	content.WriteString("\n")
	content.WriteString(RenderTableWithSelection(m.tables[m.currentPage], m.layout))
	return content.String()
}

func (m TabbedTableModel) renderTabIndicator() string {
	parts := make([]string, len(m.config.Pages))
	for i, page := range m.config.Pages {
		if i == m.currentPage {
			parts[i] = RenderTabActive(page.Name)
		} else {
			parts[i] = RenderTabInactive(page.Name)
		}
	}
	return strings.Join(parts, " ") + "  " + RenderDim("(Tab/←/→)")
}

// TabbedTableBuilder provides a fluent API for building TabbedTableConfig.
type TabbedTableBuilder struct {
	config TabbedTableConfig
}

// NewTabbedTable starts building a new tabbed table configuration.
func NewTabbedTable(title string) *TabbedTableBuilder {
	return &TabbedTableBuilder{config: TabbedTableConfig{Title: title}}
}

// WithSubtitle sets the subtitle.
func (b *TabbedTableBuilder) WithSubtitle(subtitle string) *TabbedTableBuilder {
	b.config.Subtitle = subtitle
	return b
}

// AddPage adds a page to the tabbed table.
func (b *TabbedTableBuilder) AddPage(name string, columns []ColumnSpec, rows []table.Row) *TabbedTableBuilder {
	b.config.Pages = append(b.config.Pages, TabbedTablePage{
		Name:    name,
		Columns: columns,
		Rows:    rows,
	})
	return b
}

// Build returns the completed configuration.
func (b *TabbedTableBuilder) Build() TabbedTableConfig {
	return b.config
}
