package ui

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/dustin/go-humanize"

	"github.com/aidmqan/mqan-console/internal/catalog"
	"github.com/aidmqan/mqan-console/internal/export"
	"github.com/aidmqan/mqan-console/internal/models"
)

// errNoStore is shown when saved views are used without a database.
var errNoStore = errors.New("saved views need a database")

type recordsMode int

const (
	modeBrowse recordsMode = iota
	modeSearch
	modeForm
	modeDetail
)

// detailField is one labelled line of the record detail panel.
type detailField struct {
	label string
	value string
}

// recordsScreen is the filterable table shared by every record page:
// a search box, one selector per facet, the aggregates line and the table.
type recordsScreen struct {
	PageState
	env   Env
	page  catalog.Page
	info  catalog.Info
	spec  models.FilterSpec
	view  catalog.View
	table table.Model

	mode   recordsMode
	search textinput.Model
	facet  int // facet the f key cycles

	form     *huh.Form
	onSubmit func() tea.Cmd
	// values bound to the open form
	formName   string
	formFormat string

	// record shown by the detail panel, captured when it opens so live
	// refreshes do not swap it
	detailTitle  string
	detailFields []detailField
}

func newRecordsScreen(env Env, p catalog.Page, layout Layout) *recordsScreen {
	ti := textinput.New()
	ti.Placeholder = "search " + strings.Join(p.Info().Search, ", ")
	ti.Prompt = "/ "
	ti.CharLimit = 120
	ti.Width = layout.InnerWidth - 4

	m := &recordsScreen{
		PageState: NewPageState(layout),
		env:       env,
		page:      p,
		info:      p.Info(),
		spec:      models.FilterSpec{Facets: map[string]string{}},
		search:    ti,
	}
	m.view = p.Query(m.spec)
	m.table = InitTable(m.columns(), toRows(m.view.Rows), layout)
	return m
}

func (m *recordsScreen) Init() tea.Cmd {
	return nil
}

func (m *recordsScreen) Capturing() bool {
	return m.mode != modeBrowse
}

func (m *recordsScreen) columns() []table.Column {
	return CalculateColumns(PageColumns(m.view.Columns), m.Layout.TableWidth)
}

// refresh re-evaluates the page under the current spec.
func (m *recordsScreen) refresh() {
	m.view = m.page.Query(m.spec)
	SetTableRows(&m.table, toRows(m.view.Rows))
}

func (m *recordsScreen) setSpec(spec models.FilterSpec) {
	m.spec = spec.Clone()
	m.search.SetValue(m.spec.Search)
	m.refresh()
	m.table.GotoTop()
}

func (m *recordsScreen) Update(msg tea.Msg) (screen, tea.Cmd) {
	m.ClearExpiredStatus()

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		if m.UpdateLayout(msg.Width, msg.Height) {
			m.table.SetColumns(m.columns())
			m.table.SetHeight(m.Layout.TableHeight)
			m.search.Width = m.Layout.InnerWidth - 4
		}
		if m.form != nil {
			m.form = m.form.WithWidth(m.Layout.InnerWidth - 4)
		}
		return m, nil

	case activityMsg:
		if m.info.Name == "monitor" {
			m.refresh()
		}
		return m, nil
	}

	switch m.mode {
	case modeForm:
		return m.updateForm(msg)
	case modeSearch:
		return m.updateSearch(msg)
	case modeDetail:
		if k, ok := msg.(tea.KeyMsg); ok {
			switch k.String() {
			case "enter", "esc", "q", "backspace":
				m.mode = modeBrowse
			}
		}
		return m, nil
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		return m.handleKey(msg.String())
	}
	return m, nil
}

func (m *recordsScreen) handleKey(key string) (screen, tea.Cmd) {
	if HandleTableKeys(&m.table, key) {
		return m, nil
	}

	switch key {
	case "/":
		m.mode = modeSearch
		return m, m.search.Focus()

	case "enter":
		m.openDetail()

	case "tab":
		if n := len(m.info.Facets); n > 0 {
			m.facet = (m.facet + 1) % n
		}

	case "shift+tab":
		if n := len(m.info.Facets); n > 0 {
			m.facet = (m.facet + n - 1) % n
		}

	case "f", "right", "l":
		m.cycleFacet(1)

	case "F", "left", "h":
		m.cycleFacet(-1)

	case "r":
		m.setSpec(models.FilterSpec{Facets: map[string]string{}})
		m.SetStatus("Filters cleared", StatusTTL)

	case "e":
		m.exportAs(export.Markdown)

	case "E":
		return m, m.openExportForm()

	case "s":
		return m, m.openSaveForm()

	case "v":
		return m, m.openLoadForm()
	}
	return m, nil
}

// openDetail shows every field of the selected record.
func (m *recordsScreen) openDetail() {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.view.Rows) {
		return
	}
	m.detailTitle, m.detailFields = recordFields(m.view, i)
	m.mode = modeDetail
}

// recordFields lists the fields of record i. Hospitals show the fields their
// table leaves out; other pages show their column values.
func recordFields(v catalog.View, i int) (string, []detailField) {
	if hospitals, ok := v.Records.([]models.Hospital); ok && i < len(hospitals) {
		h := hospitals[i]
		return h.Name, []detailField{
			{"Location", h.Location},
			{"Address", h.Address},
			{"Status", h.Status},
			{"Nodes", fmt.Sprint(h.Nodes)},
			{"Compliance", fmt.Sprintf("%.1f%%", h.Compliance)},
			{"Tests today", humanize.Comma(int64(h.TestsToday))},
			{"Staff", fmt.Sprint(h.Staff)},
			{"Established", h.Established},
			{"Last test", h.LastTest},
		}
	}

	row := v.Rows[i]
	fields := make([]detailField, 0, len(row))
	for c, col := range v.Columns {
		if c < len(row) {
			fields = append(fields, detailField{col.Title, row[c]})
		}
	}
	var title string
	if len(row) > 0 {
		title = row[0]
	}
	return title, fields
}

func (m *recordsScreen) renderDetail() string {
	width := 0
	for _, f := range m.detailFields {
		width = max(width, len(f.label))
	}
	var b strings.Builder
	b.WriteString(RenderTitle(m.detailTitle))
	b.WriteString("\n\n")
	for _, f := range m.detailFields {
		value := RenderNormal(f.value)
		if f.label == "Status" {
			value = RenderStatus(f.value)
		}
		b.WriteString(MetricLabelStyle.Render(fmt.Sprintf("%-*s", width+2, f.label)))
		b.WriteString(value)
		b.WriteString("\n")
	}
	return b.String()
}

// cycleFacet steps the focused facet through "all" and its values.
func (m *recordsScreen) cycleFacet(step int) {
	if len(m.info.Facets) == 0 {
		return
	}
	f := m.info.Facets[m.facet]
	values := append([]string{models.FacetAll}, f.Values...)
	cur := 0
	for i, v := range values {
		if v == m.spec.Facet(f.Name) {
			cur = i
			break
		}
	}
	next := (cur + step + len(values)) % len(values)
	m.spec = m.spec.WithFacet(f.Name, values[next])
	m.refresh()
}

func (m *recordsScreen) updateSearch(msg tea.Msg) (screen, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch k.String() {
		case "enter":
			m.mode = modeBrowse
			m.search.Blur()
			return m, nil
		case "esc":
			m.mode = modeBrowse
			m.search.Blur()
			m.search.SetValue("")
			m.spec = m.spec.WithSearch("")
			m.refresh()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if v := m.search.Value(); v != m.spec.Search {
		m.spec = m.spec.WithSearch(v)
		m.refresh()
	}
	return m, cmd
}

func (m *recordsScreen) updateForm(msg tea.Msg) (screen, tea.Cmd) {
	f, cmd := m.form.Update(msg)
	if f, ok := f.(*huh.Form); ok {
		m.form = f
	}
	switch m.form.State {
	case huh.StateCompleted:
		done := m.onSubmit
		m.closeForm()
		if done != nil {
			return m, tea.Batch(cmd, done())
		}
	case huh.StateAborted:
		m.closeForm()
	}
	return m, cmd
}

func (m *recordsScreen) openForm(fields []huh.Field, onSubmit func() tea.Cmd) tea.Cmd {
	km := huh.NewDefaultKeyMap()
	km.Quit = key.NewBinding(key.WithKeys("esc", "ctrl+c"))
	m.form = huh.NewForm(huh.NewGroup(fields...)).
		WithTheme(NewAppTheme()).
		WithKeyMap(km).
		WithShowHelp(false).
		WithWidth(m.Layout.InnerWidth - 4)
	m.onSubmit = onSubmit
	m.mode = modeForm
	return m.form.Init()
}

func (m *recordsScreen) closeForm() {
	m.form = nil
	m.onSubmit = nil
	m.mode = modeBrowse
}

func (m *recordsScreen) openSaveForm() tea.Cmd {
	if m.env.Store == nil {
		m.SetError(errNoStore)
		return nil
	}
	m.formName = ""
	input := huh.NewInput().
		Title("Save view").
		Description("Saves the current search and facets for " + m.info.Title).
		Placeholder("view name").
		Value(&m.formName).
		Validate(func(s string) error {
			if strings.TrimSpace(s) == "" {
				return errors.New("name cannot be empty")
			}
			return nil
		})
	return m.openForm([]huh.Field{input}, func() tea.Cmd {
		name := strings.TrimSpace(sanitizeInput(m.formName))
		if err := m.env.Store.SaveView(m.info.Name, name, m.spec); err != nil {
			m.SetError(err)
			return nil
		}
		if m.env.Logger != nil {
			m.env.Logger.Info("view saved", "page", m.info.Name, "name", name, "filter", m.spec.String())
		}
		m.SetStatus(fmt.Sprintf("Saved view %q", name), StatusTTL)
		return nil
	})
}

func (m *recordsScreen) openLoadForm() tea.Cmd {
	if m.env.Store == nil {
		m.SetError(errNoStore)
		return nil
	}
	views, err := m.env.Store.ListViews(m.info.Name)
	if err != nil {
		m.SetError(err)
		return nil
	}
	if len(views) == 0 {
		m.SetStatus("No saved views for this page", StatusTTL)
		return nil
	}
	opts := make([]huh.Option[string], len(views))
	for i, v := range views {
		opts[i] = huh.NewOption(fmt.Sprintf("%s  (%s)", v.Name, v.Spec.String()), v.Name)
	}
	m.formName = views[0].Name
	sel := huh.NewSelect[string]().
		Title("Load view").
		Options(opts...).
		Value(&m.formName)
	return m.openForm([]huh.Field{sel}, func() tea.Cmd {
		v, err := m.env.Store.GetView(m.info.Name, m.formName)
		if err != nil {
			m.SetError(err)
			return nil
		}
		m.setSpec(v.Spec)
		m.SetStatus(fmt.Sprintf("Loaded view %q", v.Name), StatusTTL)
		return nil
	})
}

func (m *recordsScreen) openExportForm() tea.Cmd {
	m.formFormat = string(export.Markdown)
	sel := huh.NewSelect[string]().
		Title("Export format").
		Options(
			huh.NewOption("Markdown", string(export.Markdown)),
			huh.NewOption("CSV", string(export.CSV)),
			huh.NewOption("Excel workbook", string(export.XLSX)),
		).
		Value(&m.formFormat)
	return m.openForm([]huh.Field{sel}, func() tea.Cmd {
		m.exportAs(export.Format(m.formFormat))
		return nil
	})
}

func (m *recordsScreen) exportAs(f export.Format) {
	path := filepath.Join(m.env.ExportDir, export.Filename(m.info.Name, f, time.Now()))
	written, err := export.ToFile(m.view, f, path)
	if err != nil {
		m.SetError(err)
		return
	}
	if m.env.Logger != nil {
		m.env.Logger.Info("exported", "page", m.info.Name, "format", f, "path", written, "records", m.view.Count)
	}
	m.SetStatus("Exported to "+written, StatusTTL)
}

func (m *recordsScreen) renderFacets() string {
	parts := make([]string, len(m.info.Facets))
	for i, f := range m.info.Facets {
		v := m.spec.Facet(f.Name)
		label := fmt.Sprintf("%s: %s", f.Label, v)
		if i == m.facet {
			parts[i] = RenderTabActive(label)
			continue
		}
		if !models.IsAll(v) {
			parts[i] = TabInactiveStyle.Foreground(ColorAccent).Render(label)
			continue
		}
		parts[i] = RenderTabInactive(label)
	}
	return strings.Join(parts, " ")
}

func (m *recordsScreen) help() string {
	switch m.mode {
	case modeSearch:
		return "type to filter | Enter: done | Esc: clear search"
	case modeForm:
		return "Enter: confirm | Esc: cancel"
	case modeDetail:
		return "Enter/Esc: close"
	}
	return "↑/↓: navigate | Enter: details | /: search | Tab: facet | f/F: value | r: reset | e/E: export | s: save view | v: load view | q: back"
}

func (m *recordsScreen) View() string {
	b := NewPageView(m.Layout).
		Title(m.info.Title).
		Divider()

	if m.mode == modeForm && m.form != nil {
		return b.Spacing(1).CustomContent(m.form.View()).Help(m.help()).Build()
	}
	if m.mode == modeDetail {
		return b.Spacing(1).CustomContent(m.renderDetail()).Help(m.help()).Build()
	}

	if m.mode == modeSearch || m.spec.Search != "" {
		b.CustomContent(m.search.View())
	} else {
		b.DimText("/ to search " + strings.Join(m.info.Search, ", "))
	}
	if len(m.info.Facets) > 0 {
		b.CustomContent(m.renderFacets())
	}
	b.Counts(m.view).Table(m.table)

	if detail := m.detail(); detail != "" {
		b.CustomContent(detail)
	}

	return b.Status(m.StatusMsg).Error(m.Err).Help(m.help()).Build()
}

// detail renders extra information about the selected record on pages
// whose table cannot show it, such as per-stage quality scores.
func (m *recordsScreen) detail() string {
	results, ok := m.view.Records.([]models.TestResult)
	if !ok || len(results) == 0 {
		return ""
	}
	cursor := m.table.Cursor()
	if cursor < 0 || cursor >= len(results) {
		return ""
	}
	threshold := float64(models.DefaultSettings().QualityThreshold)
	if m.env.Settings != nil {
		threshold = float64(m.env.Settings.QualityThreshold)
	}
	return RenderSubTests(results[cursor], threshold)
}

// RenderSubTests renders each analysis stage of r, colouring scores below
// threshold as failures.
func RenderSubTests(r models.TestResult, threshold float64) string {
	parts := make([]string, len(r.SubTests))
	for i, s := range r.SubTests {
		label := MetricLabelStyle.Render(humanLabel(s.Kind) + " ")
		if s.Score == nil {
			parts[i] = label + RenderStatus(s.Status)
			continue
		}
		score := fmt.Sprintf("%.1f%%", *s.Score)
		if s.BelowThreshold(threshold) {
			parts[i] = label + RenderError(score)
		} else {
			parts[i] = label + RenderSuccess(score)
		}
	}
	return fmt.Sprintf("%s %s  %s",
		RenderDim(r.Batch+":"),
		strings.Join(parts, RenderDim("  │  ")),
		RenderDim(fmt.Sprintf("(threshold %.0f%%)", threshold)))
}
