package ui

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"

	"github.com/aidmqan/mqan-console/internal/catalog"
	"github.com/aidmqan/mqan-console/internal/query"
)

// analyticsScreen shows the network summary and the trend tables.
type analyticsScreen struct {
	PageState
	env     Env
	summary catalog.Analytics
	tabs    TabbedTableModel
}

func newAnalyticsScreen(env Env, layout Layout) screen {
	return &analyticsScreen{
		PageState: NewPageState(layout),
		env:       env,
		summary:   env.Catalog.Analytics(),
		tabs:      NewTabbedTableModel(AnalyticsTables(env.Catalog), layout),
	}
}

// AnalyticsTables builds the monthly, per-hospital and test-type tabs.
func AnalyticsTables(c *catalog.Catalog) TabbedTableConfig {
	monthly := make([]table.Row, len(c.Monthly))
	for i, mm := range c.Monthly {
		monthly[i] = table.Row{
			mm.Month,
			humanize.Comma(int64(mm.Tests)),
			humanize.Comma(int64(mm.Passed)),
			humanize.Comma(int64(mm.Failed)),
			fmt.Sprintf("%.1f%%", query.Round1(query.Percent(mm.Passed, mm.Tests))),
			fmt.Sprintf("%.1f%%", mm.Compliance),
		}
	}

	perf := make([]table.Row, len(c.Performance))
	for i, p := range c.Performance {
		perf[i] = table.Row{
			p.Name,
			humanize.Comma(int64(p.Tests)),
			fmt.Sprintf("%.1f%%", p.Compliance),
			strconv.Itoa(p.Efficiency) + "%",
		}
	}

	types := make([]table.Row, len(c.TestTypes))
	for i, t := range c.TestTypes {
		types[i] = table.Row{t.Name, strconv.Itoa(t.Percent) + "%", humanize.Comma(int64(t.Count))}
	}

	return NewTabbedTable("").
		AddPage("Monthly Trends", MonthlyColumns(), monthly).
		AddPage("Hospital Performance", PerformanceColumns(), perf).
		AddPage("Test Types", TestTypeColumns(), types).
		Build()
}

func (m *analyticsScreen) Init() tea.Cmd { return nil }

func (m *analyticsScreen) Capturing() bool { return false }

func (m *analyticsScreen) Update(msg tea.Msg) (screen, tea.Cmd) {
	if msg, ok := msg.(tea.WindowSizeMsg); ok {
		m.UpdateLayout(msg.Width, msg.Height)
	}
	var cmd tea.Cmd
	m.tabs, cmd = m.tabs.Update(msg)
	return m, cmd
}

func (m *analyticsScreen) View() string {
	s := m.summary
	figures := []catalog.Metric{
		{Label: "Total Tests", Value: humanize.Comma(int64(s.TotalTests))},
		{Label: "Pass Rate", Value: fmt.Sprintf("%.1f%%", s.PassRate)},
		{Label: "Avg. Compliance", Value: fmt.Sprintf("%.1f%%", s.AvgCompliance)},
		{Label: "Avg. Efficiency", Value: fmt.Sprintf("%.1f%%", s.AvgEfficiency)},
		{Label: "Top Hospital", Value: s.TopHospital},
	}
	return NewPageView(m.Layout).
		Title("Analytics & Reports").
		Subtitle("Six-month testing volume, compliance and hospital efficiency").
		Divider().
		CustomContent(RenderFigures(nil, figures)).
		Spacing(1).
		CustomContent(m.tabs.Content()).
		Help("Tab/←/→: switch table | ↑/↓: scroll | q: back").
		Build()
}
