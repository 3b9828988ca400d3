package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/dustin/go-humanize"

	"github.com/aidmqan/mqan-console/internal/catalog"
	"github.com/aidmqan/mqan-console/internal/feed"
	"github.com/aidmqan/mqan-console/internal/models"
)

// Store is the persistence the console needs. *db.DB satisfies it.
type Store interface {
	SaveView(page, name string, spec models.FilterSpec) error
	GetView(page, name string) (models.SavedView, error)
	ListViews(page string) ([]models.SavedView, error)
	SaveSettings(s models.Settings) error
}

// Env is everything a console session shares between pages.
type Env struct {
	Catalog  *catalog.Catalog
	Registry *catalog.Registry
	Feed     *feed.Feed
	Store    Store // nil disables saved views and settings persistence
	Settings *models.Settings
	Logger   *log.Logger
	// Interval between monitor feed ticks
	Interval  time.Duration
	ExportDir string
}

// Message types

type feedTickMsg time.Time

// activityMsg is broadcast to the active page after each feed tick.
type activityMsg struct {
	Event models.Activity
}

// openPageMsg asks the app to switch to a named menu entry.
type openPageMsg struct {
	Name string
}

func openPage(name string) tea.Cmd {
	return func() tea.Msg { return openPageMsg{Name: name} }
}

// screen is one console page hosted by the app.
type screen interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (screen, tea.Cmd)
	View() string
	// Capturing reports that the page is consuming keystrokes (a search box
	// or form), so q and esc must not navigate away.
	Capturing() bool
}

type menuEntry struct {
	name  string
	title string
	desc  string
	open  func(env Env, layout Layout) screen
}

// App is the root model: a page menu plus the active page, and the ticker
// that drives the live monitor feed.
type App struct {
	env      Env
	layout   Layout
	entries  []menuEntry
	cursor   int
	active   screen
	quitting bool
}

// NewApp builds the console menu over env.
func NewApp(env Env) *App {
	if env.Interval <= 0 {
		env.Interval = feed.DefaultInterval
	}
	if env.Settings == nil {
		s := models.DefaultSettings()
		env.Settings = &s
	}

	entries := []menuEntry{
		{name: "overview", title: "Dashboard Overview", desc: "Headline figures and recent system alerts", open: newOverviewScreen},
		{name: "live", title: "Real-time Monitor", desc: "Live activity feed and node load", open: newMonitorScreen},
	}
	for _, p := range env.Registry.Pages() {
		info := p.Info()
		entries = append(entries, menuEntry{
			name:  info.Name,
			title: info.Title,
			desc:  "Search: " + strings.Join(info.Search, ", "),
			open: func(env Env, layout Layout) screen {
				return newRecordsScreen(env, p, layout)
			},
		})
	}
	entries = append(entries,
		menuEntry{name: "analytics", title: "Analytics & Reports", desc: "Monthly trends and hospital performance", open: newAnalyticsScreen},
		menuEntry{name: "settings", title: "System Settings", desc: "Network, security and quality settings", open: newSettingsScreen},
	)

	return &App{
		env:     env,
		layout:  DefaultLayout(),
		entries: entries,
	}
}

func (a *App) Init() tea.Cmd {
	return tea.Batch(StandardInit(), a.scheduleTick())
}

func (a *App) scheduleTick() tea.Cmd {
	if a.env.Feed == nil {
		return nil
	}
	return tea.Tick(a.env.Interval, func(t time.Time) tea.Msg {
		return feedTickMsg(t)
	})
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.layout = NewLayout(msg.Width, msg.Height)
		return a, a.forward(msg)

	case feedTickMsg:
		ev := a.env.Feed.Tick()
		return a, tea.Batch(a.scheduleTick(), a.forward(activityMsg{Event: ev}))

	case openPageMsg:
		for i, e := range a.entries {
			if e.name == msg.Name {
				a.cursor = i
				return a, a.open(e)
			}
		}
		return a, nil

	case tea.KeyMsg:
		key := msg.String()
		if quit, cmd := HandleQuitKeys(key); quit {
			a.quitting = true
			return a, cmd
		}
		if a.active != nil {
			if !a.active.Capturing() && (key == "q" || key == "esc") {
				a.active = nil
				return a, nil
			}
			return a, a.forward(msg)
		}
		return a.updateMenu(key)
	}

	return a, a.forward(msg)
}

func (a *App) forward(msg tea.Msg) tea.Cmd {
	if a.active == nil {
		return nil
	}
	var cmd tea.Cmd
	a.active, cmd = a.active.Update(msg)
	return cmd
}

func (a *App) open(e menuEntry) tea.Cmd {
	if a.env.Logger != nil {
		a.env.Logger.Info("open page", "page", e.name)
	}
	a.active = e.open(a.env, a.layout)
	return a.active.Init()
}

func (a *App) updateMenu(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "q", "esc":
		a.quitting = true
		return a, tea.Quit
	case "enter":
		return a, a.open(a.entries[a.cursor])
	case "home", "g":
		a.cursor = 0
	case "end", "G":
		a.cursor = len(a.entries) - 1
	default:
		a.cursor = HandleNavigationKeys(key, a.cursor, len(a.entries))
	}
	return a, nil
}

func (a *App) View() string {
	if a.quitting {
		return ""
	}
	if a.active != nil {
		return a.active.View()
	}

	var b strings.Builder
	b.WriteString(ViewHeaderWithSubtitle(a.env.Settings.SystemName, a.feedSummary(), a.layout.InnerWidth))
	for i, e := range a.entries {
		line := fmt.Sprintf("%-28s %s", e.title, RenderDim(e.desc))
		if i == a.cursor {
			line = fmt.Sprintf("%-28s %s", e.title, e.desc)
		}
		b.WriteString(RenderListItem(line, i == a.cursor, a.layout.InnerWidth))
		b.WriteString("\n")
	}
	return TwoBoxView(b.String(), "↑/↓: navigate | Enter: open | q: quit", a.layout)
}

func (a *App) feedSummary() string {
	if a.env.Feed == nil {
		return "Live feed disabled"
	}
	newest, ok := a.env.Feed.Newest()
	if !ok {
		return fmt.Sprintf("Live feed: 0/%d events", a.env.Feed.Cap())
	}
	return fmt.Sprintf("Live feed: %d/%d events, last #%d %s",
		a.env.Feed.Len(), a.env.Feed.Cap(), newest.Seq, humanize.Time(newest.Timestamp))
}

// Run starts the console on the alternate screen and blocks until it exits.
func Run(env Env) error {
	p := tea.NewProgram(NewApp(env), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("console error: %w", err)
	}
	return nil
}
