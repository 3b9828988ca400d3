package ui

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aidmqan/mqan-console/internal/catalog"
	"github.com/aidmqan/mqan-console/internal/db"
	"github.com/aidmqan/mqan-console/internal/feed"
	"github.com/aidmqan/mqan-console/internal/models"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var (
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyEsc   = tea.KeyMsg{Type: tea.KeyEsc}
	keyTab   = tea.KeyMsg{Type: tea.KeyTab}
	keyDown  = tea.KeyMsg{Type: tea.KeyDown}
)

func testEnv(t *testing.T) Env {
	t.Helper()
	c := catalog.Seed()
	f := feed.New(feed.Options{Capacity: feed.DefaultCapacity, Seed: 7})
	settings := models.DefaultSettings()
	return Env{
		Catalog:   c,
		Registry:  catalog.NewRegistry(c, f.Snapshot),
		Feed:      f,
		Settings:  &settings,
		Interval:  time.Second,
		ExportDir: t.TempDir(),
	}
}

func recordsFor(t *testing.T, env Env, name string) *recordsScreen {
	t.Helper()
	p, ok := env.Registry.Get(name)
	require.True(t, ok, "page %s", name)
	return newRecordsScreen(env, p, DefaultLayout())
}

func send(s screen, msgs ...tea.Msg) screen {
	for _, msg := range msgs {
		s, _ = s.Update(msg)
	}
	return s
}

func TestNewLayout(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		wantWidth     int
		wantHeight    int
	}{
		{"unknown size", 0, 0, MinViewportWidth, DefaultHeight},
		{"narrow terminal", 80, 40, MinViewportWidth, 40},
		{"wide terminal", 300, 50, MaxViewportWidth, 50},
		{"in range", 130, 30, 130, 30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := NewLayout(tt.width, tt.height)
			assert.Equal(t, tt.wantWidth, l.ViewportWidth)
			assert.Equal(t, tt.wantHeight, l.ViewportHeight)
			assert.Equal(t, l.ViewportWidth-2, l.InnerWidth)
			assert.GreaterOrEqual(t, l.TableHeight, MinTableHeight)
		})
	}

	assert.Equal(t, MinTableHeight, NewLayout(120, 10).TableHeight)
}

func TestCalculateColumns(t *testing.T) {
	cols := CalculateColumns([]ColumnSpec{
		{Title: "Status", FixedWidth: 10},
		{Title: "Hospital", FlexRatio: 1},
		{Title: "Action", FlexRatio: 3, MinWidth: 5},
	}, 100)

	require.Len(t, cols, 3)
	assert.Equal(t, 10, cols[0].Width)
	// 100 - 3*2 cell padding - 10 fixed = 84 split 1:3
	assert.Equal(t, 21, cols[1].Width)
	assert.Equal(t, 63, cols[2].Width)

	cols = CalculateColumns([]ColumnSpec{{Title: "Hospital", FlexRatio: 1, MinWidth: 80}}, 60)
	assert.Equal(t, 80, cols[0].Width, "minimum wins")
}

func TestDistributeWidth(t *testing.T) {
	assert.Equal(t, []int{25, 25, 50}, DistributeWidth(100, []int{1, 1, 2}))
	assert.Equal(t, []int{33, 33, 33}, DistributeWidth(100, []int{0, 0, 0}))
	assert.Nil(t, DistributeWidth(100, nil))
}

func TestPadContentToHeight(t *testing.T) {
	assert.Equal(t, "a\nb\n\n", PadContentToHeight("a\nb\n", 4))
	assert.Equal(t, "a\nb", PadContentToHeight("a\nb\nc", 2))
}

func TestSanitizeInput(t *testing.T) {
	assert.Equal(t, "critical only", sanitizeInput("critical\x00 only\x07"))
}

func TestRecordsSearch(t *testing.T) {
	env := testEnv(t)
	m := recordsFor(t, env, "alerts")
	assert.Equal(t, 6, m.view.Count)

	send(m, runes("/"))
	assert.True(t, m.Capturing(), "search box takes keystrokes")

	send(m, runes("n"), runes("o"), runes("d"), runes("e"))
	assert.Equal(t, "node", m.spec.Search)
	assert.Equal(t, 3, m.view.Count)
	assert.Len(t, m.table.Rows(), 3)

	send(m, keyEnter)
	assert.False(t, m.Capturing())
	assert.Equal(t, "node", m.spec.Search, "enter keeps the search")

	send(m, runes("/"), keyEsc)
	assert.Empty(t, m.spec.Search, "esc clears the search")
	assert.Equal(t, 6, m.view.Count)
}

func TestRecordsFacets(t *testing.T) {
	env := testEnv(t)
	m := recordsFor(t, env, "alerts")
	require.Equal(t, "type", m.info.Facets[0].Name)

	// all -> critical
	send(m, runes("f"))
	assert.Equal(t, "critical", m.spec.Facet("type"))
	assert.Equal(t, 2, m.view.Count)

	// back to all
	send(m, runes("F"))
	assert.Equal(t, models.FacetAll, m.spec.Facet("type"))
	assert.Equal(t, 6, m.view.Count)

	// wraps to the last value
	send(m, runes("F"))
	assert.Equal(t, "success", m.spec.Facet("type"))

	// second facet: status
	send(m, runes("r"), keyTab, runes("f"))
	assert.Equal(t, "active", m.spec.Facet("status"))
	assert.Equal(t, models.FacetAll, m.spec.Facet("type"))
	assert.Equal(t, 2, m.view.Count)
	assert.Equal(t, 2, aggregate(m.view, "active"))

	send(m, runes("r"))
	assert.True(t, m.spec.IsZero())
	assert.Equal(t, "Filters cleared", m.StatusMsg)
}

func aggregate(v catalog.View, name string) int {
	for _, a := range v.Aggregates {
		if a.Name == name {
			return a.Value
		}
	}
	return -1
}

func TestRecordsCursorClamped(t *testing.T) {
	env := testEnv(t)
	m := recordsFor(t, env, "alerts")
	send(m, keyDown, keyDown, keyDown, keyDown, keyDown)
	assert.Equal(t, 5, m.table.Cursor())

	// critical leaves two rows
	send(m, runes("f"))
	assert.Equal(t, 1, m.table.Cursor())
}

func TestSetTableRowsRecoversFromEmpty(t *testing.T) {
	tbl := InitTable([]table.Column{{Title: "Name", Width: 10}}, nil, DefaultLayout())
	rows := []table.Row{{"a"}, {"b"}, {"c"}}

	SetTableRows(&tbl, rows)
	assert.Equal(t, 0, tbl.Cursor())

	SetTableRows(&tbl, nil)
	SetTableRows(&tbl, rows)
	assert.Equal(t, 0, tbl.Cursor(), "cursor returns to the first row")

	tbl.GotoBottom()
	SetTableRows(&tbl, rows[:1])
	assert.Equal(t, 0, tbl.Cursor())
}

func TestRecordsCursorAfterEmptyResult(t *testing.T) {
	env := testEnv(t)
	m := recordsFor(t, env, "alerts")

	send(m, runes("/"), runes("zzz"))
	assert.Equal(t, 0, m.view.Count)

	send(m, keyEsc)
	require.Equal(t, 6, m.view.Count)
	assert.Equal(t, 0, m.table.Cursor())

	send(m, keyDown)
	assert.Equal(t, 1, m.table.Cursor())
}

func TestRecordsDetail(t *testing.T) {
	env := testEnv(t)
	m := recordsFor(t, env, "hospitals")

	send(m, keyEnter)
	require.True(t, m.Capturing(), "detail panel takes keystrokes")
	view := m.View()
	assert.Contains(t, view, "Metro General Hospital")
	assert.Contains(t, view, "123 Medical Center Dr, New York, NY 10001")
	assert.Contains(t, view, "Established")
	assert.Contains(t, view, "2019")
	assert.Contains(t, view, "Staff")

	send(m, keyEsc)
	assert.False(t, m.Capturing())
	assert.Contains(t, m.View(), "Enter: details")

	// the panel follows the cursor
	send(m, keyDown, keyEnter)
	assert.Contains(t, m.View(), "456 Health Plaza")
	send(m, runes("q"))
	assert.False(t, m.Capturing())
}

func TestRecordsDetailColumns(t *testing.T) {
	env := testEnv(t)
	m := recordsFor(t, env, "alerts")

	send(m, keyEnter)
	require.True(t, m.Capturing())
	view := m.View()
	for c, col := range m.view.Columns {
		assert.Contains(t, view, col.Title)
		assert.Contains(t, view, m.view.Rows[0][c])
	}
	send(m, keyEnter)
	assert.False(t, m.Capturing())

	// nothing to show on an empty result
	send(m, runes("/"), runes("zzz"), keyEnter, keyEnter)
	assert.False(t, m.Capturing())
}

func TestAppDetailEscStaysOnPage(t *testing.T) {
	env := testEnv(t)
	app := NewApp(env)
	_, _ = app.Update(openPageMsg{Name: "hospitals"})
	require.NotNil(t, app.active)

	_, _ = app.Update(keyEnter)
	_, _ = app.Update(keyEsc)
	require.NotNil(t, app.active, "esc closes the detail panel first")

	_, _ = app.Update(keyEsc)
	assert.Nil(t, app.active)
}

func TestRecordsExport(t *testing.T) {
	env := testEnv(t)
	m := recordsFor(t, env, "users")

	send(m, runes("e"))
	require.NoError(t, m.Err)
	assert.Contains(t, m.StatusMsg, "Exported to ")

	files, err := filepath.Glob(filepath.Join(env.ExportDir, "users-*.md"))
	require.NoError(t, err)
	require.Len(t, files, 1)
	data, err := os.ReadFile(files[0])
	require.NoError(t, err)
	assert.Contains(t, string(data), "User Management")
}

func TestRecordsSavedViews(t *testing.T) {
	env := testEnv(t)
	store, err := db.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	env.Store = store

	m := recordsFor(t, env, "alerts")
	send(m, runes("f"))

	send(m, runes("s"))
	require.Equal(t, modeForm, m.mode)
	m.formName = " critical\x00 "
	m.onSubmit()
	m.closeForm()
	require.NoError(t, m.Err)
	assert.Equal(t, `Saved view "critical"`, m.StatusMsg)

	send(m, runes("r"))
	assert.Equal(t, 6, m.view.Count)

	send(m, runes("v"))
	require.Equal(t, modeForm, m.mode)
	assert.Equal(t, "critical", m.formName, "first saved view preselected")
	m.onSubmit()
	m.closeForm()
	assert.Equal(t, "critical", m.spec.Facet("type"))
	assert.Equal(t, 2, m.view.Count)
}

func TestRecordsNoStore(t *testing.T) {
	env := testEnv(t)
	m := recordsFor(t, env, "alerts")
	send(m, runes("s"))
	assert.ErrorIs(t, m.Err, errNoStore)
	assert.False(t, m.Capturing())
}

func TestRecordsMonitorRefresh(t *testing.T) {
	env := testEnv(t)
	m := recordsFor(t, env, "monitor")
	assert.Equal(t, 0, m.view.Count)

	ev := env.Feed.Tick()
	send(m, activityMsg{Event: ev})
	assert.Equal(t, 1, m.view.Count)
}

func TestRenderSubTests(t *testing.T) {
	c := catalog.Seed()
	out := RenderSubTests(c.TestResults[0], 85)
	assert.Contains(t, out, "Chemical 67.2%")
	assert.Contains(t, out, "(threshold 85%)")

	pending := RenderSubTests(c.TestResults[2], 85)
	assert.Contains(t, pending, "pending")
}

func TestAppNavigation(t *testing.T) {
	env := testEnv(t)
	app := NewApp(env)
	assert.Contains(t, app.View(), "Dashboard Overview")

	_, _ = app.Update(keyEnter)
	require.NotNil(t, app.active)
	assert.Contains(t, app.View(), "Active Nodes")

	_, _ = app.Update(runes("q"))
	assert.Nil(t, app.active, "q returns to the menu")

	_, _ = app.Update(openPageMsg{Name: "alerts"})
	require.IsType(t, &recordsScreen{}, app.active)

	// q inside the search box is text, not navigation
	_, _ = app.Update(runes("/"))
	_, _ = app.Update(runes("q"))
	require.NotNil(t, app.active)
	assert.Equal(t, "q", app.active.(*recordsScreen).spec.Search)

	_, _ = app.Update(keyEnter)
	_, _ = app.Update(keyEsc)
	assert.Nil(t, app.active)

	_, cmd := app.Update(runes("q"))
	assert.True(t, app.quitting)
	assert.NotNil(t, cmd)
}

func TestAppFeedTick(t *testing.T) {
	env := testEnv(t)
	app := NewApp(env)
	_, _ = app.Update(openPageMsg{Name: "monitor"})

	for i := 0; i < 25; i++ {
		_, _ = app.Update(feedTickMsg(time.Now()))
	}
	assert.Equal(t, feed.DefaultCapacity, env.Feed.Len())
	m := app.active.(*recordsScreen)
	assert.Equal(t, feed.DefaultCapacity, m.view.Count)
	assert.Contains(t, app.feedSummary(), "20/20 events, last #25")
}

func TestMonitorScreen(t *testing.T) {
	env := testEnv(t)
	env.Feed.Prime(3)
	s := newMonitorScreen(env, DefaultLayout())
	view := s.View()
	assert.Contains(t, view, "Node Status")
	assert.Contains(t, view, "Node 1 ")
	assert.Contains(t, view, "#3")

	_, cmd := s.Update(runes("a"))
	require.NotNil(t, cmd)
	assert.Equal(t, openPageMsg{Name: "monitor"}, cmd())
}

func TestAnalyticsTabs(t *testing.T) {
	env := testEnv(t)
	s := newAnalyticsScreen(env, DefaultLayout()).(*analyticsScreen)
	assert.Contains(t, s.View(), "19,291")
	assert.Contains(t, s.View(), "University Medical")
	assert.Equal(t, 0, s.tabs.CurrentPage())

	send(s, keyTab)
	assert.Equal(t, 1, s.tabs.CurrentPage())
	send(s, runes("h"), runes("h"))
	assert.Equal(t, 2, s.tabs.CurrentPage(), "left wraps around")
}

func TestSettingsSave(t *testing.T) {
	env := testEnv(t)
	s := newSettingsScreen(env, DefaultLayout()).(*settingsScreen)
	assert.Contains(t, s.View(), "AID-MQAN Network")

	send(s, runes("e"))
	require.True(t, s.Capturing())

	*s.numbers["threshold"] = "90"
	s.draft.SystemName = "Regional QA"
	s.form = nil
	s.save()
	require.NoError(t, s.Err)
	assert.Equal(t, 90, env.Settings.QualityThreshold)
	assert.Equal(t, "Regional QA", env.Settings.SystemName)

	send(s, runes("e"))
	*s.numbers["threshold"] = "150"
	s.form = nil
	s.save()
	assert.ErrorIs(t, s.Err, models.ErrInvalidSettings)
	assert.Equal(t, 90, env.Settings.QualityThreshold, "invalid settings are not applied")
}

func TestFprintView(t *testing.T) {
	env := testEnv(t)
	p, _ := env.Registry.Get("alerts")
	v := p.Query(models.FilterSpec{Facets: map[string]string{"status": "resolved"}})

	var buf bytes.Buffer
	FprintView(&buf, v)
	out := buf.String()
	assert.Contains(t, out, "Alert Management")
	assert.Contains(t, out, "Filter: status=resolved")
	assert.Contains(t, out, "2 of 6 records")
	assert.Contains(t, out, "Title")
	assert.Equal(t, 1, strings.Count(out, "Unresolved 0"))
}

func TestSelectorNarrowAndChoose(t *testing.T) {
	var m tea.Model = NewSelectorModel(SelectorConfig{
		Title: "Select Page",
		Choices: []Choice{
			{Value: "alerts", Detail: "Alert Management"},
			{Value: "audits", Detail: "Audit History"},
			{Value: "users", Detail: "User Management"},
		},
	})

	m, _ = m.Update(runes("a"))
	m, _ = m.Update(runes("u"))
	assert.Contains(t, m.View(), `1 of 3 match "au"`)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	m, _ = m.Update(keyDown)
	m, cmd := m.Update(keyEnter)
	require.NotNil(t, cmd)
	assert.Equal(t, "audits", m.(SelectorModel).Chosen())
}

func TestSelectorEnterChoosesFirst(t *testing.T) {
	var m tea.Model = NewSelectorModel(SelectorConfig{
		Choices: []Choice{{Value: "alerts"}, {Value: "audits"}},
	})
	m, _ = m.Update(keyEnter)
	assert.Equal(t, "alerts", m.(SelectorModel).Chosen())
}

func TestSelectorNarrowToNothingAndBack(t *testing.T) {
	var m tea.Model = NewSelectorModel(SelectorConfig{
		Choices: []Choice{{Value: "alerts"}, {Value: "audits"}},
	})
	m, _ = m.Update(runes("x"))
	assert.Contains(t, m.View(), `0 of 2 match "x"`)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	m, _ = m.Update(keyEnter)
	assert.Equal(t, "alerts", m.(SelectorModel).Chosen())
}

func TestSelectorCancel(t *testing.T) {
	var m tea.Model = NewSelectorModel(SelectorConfig{Choices: []Choice{{Value: "alerts"}}})
	m, _ = m.Update(keyEsc)
	assert.Empty(t, m.(SelectorModel).Chosen())
	assert.Empty(t, m.View())
}
