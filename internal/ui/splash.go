package ui

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// SplashDuration is how long the start-up splash stays up.
const SplashDuration = 1500 * time.Millisecond

// SplashModel is the TUI model for the start-up splash screen
type SplashModel struct {
	title  string
	layout Layout
	done   bool
}

type splashTimeoutMsg struct{}

// NewSplashModel creates the splash for a network name.
func NewSplashModel(title string) SplashModel {
	return SplashModel{title: title, layout: DefaultLayout()}
}

func (m SplashModel) Init() tea.Cmd {
	return tea.Batch(StandardInit(), tea.Tick(SplashDuration, func(time.Time) tea.Msg {
		return splashTimeoutMsg{}
	}))
}

func (m SplashModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.layout = NewLayout(msg.Width, msg.Height)
		return m, nil
	case tea.KeyMsg, splashTimeoutMsg:
		m.done = true
		return m, tea.Quit
	}
	return m, nil
}

func (m SplashModel) View() string {
	if m.done {
		return ""
	}

	height := m.layout.MainBoxHeight()
	lines := make([]string, height)
	mid := height/2 - 1
	lines[mid] = CenterText(AccentStyle.Render(m.title), m.layout.InnerWidth)
	lines[mid+1] = CenterText(RenderDim("Medicine Quality Assurance Network"), m.layout.InnerWidth)

	return BorderStyle.
		Width(m.layout.InnerWidth).
		Render(strings.Join(lines, "\n"))
}

// ShowSplash displays the splash screen until a key is pressed or
// SplashDuration passes.
func ShowSplash(title string) error {
	_, err := tea.NewProgram(NewSplashModel(title), tea.WithAltScreen()).Run()
	return err
}
