package ui

// selectors.go is the picker CLI commands open when a required argument,
// such as a page or a saved view name, is left out.

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
)

// Choice is one selectable row: the value returned, plus a description
// shown next to it.
type Choice struct {
	Value  string
	Detail string
}

// SelectorConfig defines a picker.
type SelectorConfig struct {
	Title       string
	Subtitle    string
	ValueHeader string // default "Name"
	Choices     []Choice
}

// SelectorModel is a two-column table picker. Typing narrows the choices to
// values with a matching prefix.
type SelectorModel struct {
	table    table.Model
	config   SelectorConfig
	layout   Layout
	prefix   string
	visible  []Choice
	chosen   string
	quitting bool
}

// NewSelectorModel creates a picker over cfg.Choices.
func NewSelectorModel(cfg SelectorConfig) SelectorModel {
	if cfg.ValueHeader == "" {
		cfg.ValueHeader = "Name"
	}
	m := SelectorModel{config: cfg, layout: DefaultLayout()}
	m.table = InitTable(m.columns(), nil, m.layout)
	m.narrow()
	return m
}

func (m SelectorModel) columns() []table.Column {
	return CalculateColumns([]ColumnSpec{
		{Title: m.config.ValueHeader, MinWidth: 12, FlexRatio: 1},
		{Title: "Description", MinWidth: 20, FlexRatio: 3},
	}, m.layout.TableWidth)
}

// narrow rebuilds the rows for the current prefix.
func (m *SelectorModel) narrow() {
	m.visible = nil
	for _, c := range m.config.Choices {
		if strings.HasPrefix(strings.ToLower(c.Value), m.prefix) {
			m.visible = append(m.visible, c)
		}
	}
	rows := make([]table.Row, len(m.visible))
	for i, c := range m.visible {
		rows[i] = table.Row{c.Value, c.Detail}
	}
	SetTableRows(&m.table, rows)
}

func (m SelectorModel) Init() tea.Cmd {
	return StandardInit()
}

func (m SelectorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.layout = NewLayout(msg.Width, msg.Height)
		m.table.SetColumns(m.columns())
		m.table.SetHeight(m.layout.TableHeight)
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyEsc, tea.KeyCtrlC:
			m.quitting = true
			return m, tea.Quit
		case tea.KeyEnter:
			if i := m.table.Cursor(); i >= 0 && i < len(m.visible) {
				m.chosen = m.visible[i].Value
			}
			m.quitting = true
			return m, tea.Quit
		case tea.KeyBackspace:
			if m.prefix != "" {
				m.prefix = m.prefix[:len(m.prefix)-1]
				m.narrow()
			}
			return m, nil
		case tea.KeyRunes:
			m.prefix += strings.ToLower(sanitizeInput(string(msg.Runes)))
			m.narrow()
			return m, nil
		}
		HandleTableKeys(&m.table, msg.String())
	}
	return m, nil
}

func (m SelectorModel) View() string {
	if m.quitting {
		return ""
	}

	subtitle := m.config.Subtitle
	if m.prefix != "" {
		subtitle = fmt.Sprintf("%d of %d match %q", len(m.visible), len(m.config.Choices), m.prefix)
	}

	var content strings.Builder
	content.WriteString(ViewHeaderWithSubtitle(m.config.Title, subtitle, m.layout.InnerWidth))
	content.WriteString(RenderTableWithSelection(m.table, m.layout))

	return TwoBoxView(content.String(), "↑/↓: navigate | type: narrow | Enter: select | Esc: cancel", m.layout)
}

// Chosen returns the selected value, empty if the picker was cancelled.
func (m SelectorModel) Chosen() string {
	return m.chosen
}

// RunSelectorWithValue runs a picker and returns the chosen value, or an
// empty string when the user cancelled.
func RunSelectorWithValue(cfg SelectorConfig) (string, error) {
	finalModel, err := tea.NewProgram(NewSelectorModel(cfg), tea.WithAltScreen()).Run()
	if err != nil {
		return "", fmt.Errorf("selector error: %w", err)
	}
	return finalModel.(SelectorModel).Chosen(), nil
}
