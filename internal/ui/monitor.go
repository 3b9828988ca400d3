package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/aidmqan/mqan-console/internal/models"
)

// monitorScreen shows node load bars above the live activity feed.
type monitorScreen struct {
	PageState
	env    Env
	bars   map[models.LoadLevel]progress.Model
	paused bool
}

func newMonitorScreen(env Env, layout Layout) screen {
	m := &monitorScreen{
		PageState: NewPageState(layout),
		env:       env,
	}
	m.buildBars()
	return m
}

// loadColors are the bar gradients per load level.
var loadColors = map[models.LoadLevel][2]string{
	models.LoadNormal:   {"#5FD7AF", "#00AF5F"},
	models.LoadHigh:     {"#FFD75F", "#FFAF00"},
	models.LoadCritical: {"#FF875F", "#FF0000"},
}

func (m *monitorScreen) buildBars() {
	width := m.Layout.InnerWidth / 3
	m.bars = make(map[models.LoadLevel]progress.Model, len(loadColors))
	for level, c := range loadColors {
		p := progress.New(
			progress.WithGradient(c[0], c[1]),
			progress.WithColorProfile(termenv.TrueColor),
			progress.WithWidth(width),
		)
		p.EmptyColor = "241"
		m.bars[level] = p
	}
}

func (m *monitorScreen) Init() tea.Cmd { return nil }

func (m *monitorScreen) Capturing() bool { return false }

func (m *monitorScreen) Update(msg tea.Msg) (screen, tea.Cmd) {
	m.ClearExpiredStatus()

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		if m.UpdateLayout(msg.Width, msg.Height) {
			m.buildBars()
		}
	case activityMsg:
		if !m.paused && msg.Event.Status == "warning" {
			m.SetStatus(fmt.Sprintf("%s: %s on %s (%s)", msg.Event.Hospital, msg.Event.Action, msg.Event.Node, msg.Event.Batch), StatusTTL)
		}
	case tea.KeyMsg:
		switch msg.String() {
		case "p", " ":
			m.paused = !m.paused
			if m.paused {
				m.SetStatus("Display paused; the feed keeps running", 0)
			} else {
				m.SetStatus("", 0)
			}
		case "a", "enter":
			return m, openPage("monitor")
		}
	}
	return m, nil
}

func (m *monitorScreen) View() string {
	b := NewPageView(m.Layout).
		Title("Real-time Monitor").
		Subtitle(fmt.Sprintf("New activity every %s, newest first, %d events kept", m.env.Interval, m.feedCap())).
		Divider()

	b.CustomContent(RenderTitle("Node Status"))
	b.CustomContent(m.renderNodes())
	b.Spacing(1)
	b.CustomContent(RenderTitle("Live Activity"))
	b.CustomContent(m.renderActivity())

	return b.Status(m.StatusMsg).
		Help("p: pause display | a: filter activity | q: back").
		Build()
}

func (m *monitorScreen) feedCap() int {
	if m.env.Feed == nil {
		return 0
	}
	return m.env.Feed.Cap()
}

var statusCell = lipgloss.NewStyle().Width(9)

func (m *monitorScreen) renderNodes() string {
	var b strings.Builder
	for _, n := range m.env.Catalog.Nodes {
		bar := m.bars[n.Level()]
		fmt.Fprintf(&b, "%-8s %-26s %s %s %s\n",
			n.Name,
			truncateToWidth(n.Hospital, 26),
			bar.ViewAs(float64(n.Load)/100),
			statusCell.Render(RenderStatus(n.Status)),
			RenderDim(n.Level().String()),
		)
	}
	return b.String()
}

// renderActivity lists as many of the newest events as fit on screen.
func (m *monitorScreen) renderActivity() string {
	if m.env.Feed == nil {
		return RenderDim("Live feed disabled")
	}
	events := m.env.Feed.Snapshot()
	room := m.Layout.MainBoxHeight() - len(m.env.Catalog.Nodes) - 10
	if room < 3 {
		room = 3
	}
	if len(events) > room {
		events = events[:room]
	}
	var b strings.Builder
	for _, e := range events {
		stamp := fmt.Sprintf("%s  %-7s", e.Timestamp.Format("15:04:05"), fmt.Sprintf("#%d", e.Seq))
		fmt.Fprintf(&b, "%s %-20s %-8s %-18s %s %s\n",
			RenderDim(stamp),
			e.Hospital,
			e.Node,
			e.Action,
			AccentStyle.Render(fmt.Sprintf("%-12s", e.Batch)),
			RenderStatus(e.Status),
		)
	}
	if len(events) == 0 {
		b.WriteString(RenderDim("Waiting for activity..."))
	}
	return b.String()
}
