package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
)

// overviewScreen is the dashboard: headline cards and recent system alerts.
type overviewScreen struct {
	PageState
	env Env
}

func newOverviewScreen(env Env, layout Layout) screen {
	return &overviewScreen{PageState: NewPageState(layout), env: env}
}

func (m *overviewScreen) Init() tea.Cmd { return nil }

func (m *overviewScreen) Capturing() bool { return false }

func (m *overviewScreen) Update(msg tea.Msg) (screen, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.UpdateLayout(msg.Width, msg.Height)
	case tea.KeyMsg:
		switch msg.String() {
		case "a":
			return m, openPage("alerts")
		case "m":
			return m, openPage("live")
		}
	}
	return m, nil
}

type card struct {
	label, value, note string
}

func (m *overviewScreen) cards() []card {
	o := m.env.Catalog.Overview()
	return []card{
		{"Active Nodes", humanize.Comma(int64(o.ActiveNodes)), fmt.Sprintf("across %d hospitals", o.Hospitals)},
		{"Tests Today", humanize.Comma(int64(o.TestsToday)), "all network sites"},
		{"Pass Rate", fmt.Sprintf("%.1f%%", o.PassRate), "last six months"},
		{"Open Alerts", fmt.Sprintf("%d", o.OpenAlerts), fmt.Sprintf("%d critical", o.CriticalCount)},
		{"Compliance", fmt.Sprintf("%.1f%%", o.Compliance), "network average"},
	}
}

func (m *overviewScreen) renderCards() string {
	cards := m.cards()
	ratios := make([]int, len(cards))
	for i := range ratios {
		ratios[i] = 1
	}
	// each card border takes 2 columns and padding 2 more
	widths := DistributeWidth(m.Layout.InnerWidth-4*len(cards), ratios)
	boxes := make([]string, len(cards))
	for i, c := range cards {
		body := MetricLabelStyle.Render(c.label) + "\n" +
			MetricValueStyle.Render(c.value) + "\n" +
			RenderDim(c.note)
		boxes[i] = CardStyle.Width(widths[i]).Render(body)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, boxes...)
}

func (m *overviewScreen) renderAlerts() string {
	var b strings.Builder
	for _, a := range m.env.Catalog.SystemAlerts {
		fmt.Fprintf(&b, "%s %s\n   %s\n",
			lipgloss.NewStyle().Width(10).Render(RenderStatus(a.Type)),
			RenderNormal(a.Title),
			RenderDim(fmt.Sprintf("%s · %s · %s", a.Hospital, a.Age, a.Status)),
		)
	}
	return b.String()
}

func (m *overviewScreen) View() string {
	name := "AID-MQAN Network"
	if m.env.Settings != nil {
		name = m.env.Settings.SystemName
	}
	return NewPageView(m.Layout).
		Title("Dashboard Overview").
		Subtitle(name + ": medicine quality assurance across the hospital network").
		Divider().
		CustomContent(m.renderCards()).
		Spacing(1).
		CustomContent(RenderTitle("Recent System Alerts")).
		CustomContent(m.renderAlerts()).
		Help("a: alerts | m: live monitor | q: back").
		Build()
}
