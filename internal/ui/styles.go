package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Layout constants - single source of truth for all viewport dimensions
const (
	MinViewportWidth = 110
	MaxViewportWidth = 160
	DefaultWidth     = 110 // Used when terminal size is unknown
	DefaultHeight    = 36
	MinTableHeight   = 5
	BorderPadding    = 2 // left/right padding inside borders

	// rows used by the footer box, the main box border and the page header
	// (title, divider, filter line, metrics line, blank lines, status)
	chromeHeight = 15
)

// Layout holds computed dimensions for the current terminal size
type Layout struct {
	ViewportWidth  int // clamped terminal width
	ViewportHeight int // terminal height (DefaultHeight when unknown)
	ContentWidth   int // ViewportWidth - border chars
	TableWidth     int // sum of column widths + separators
	InnerWidth     int // exact width for content inside borders
	TableHeight    int // visible table rows
}

// NewLayout creates a Layout from the terminal size, clamping the width to
// min/max. A zero height falls back to DefaultHeight.
func NewLayout(terminalWidth, terminalHeight int) Layout {
	width := clamp(terminalWidth, MinViewportWidth, MaxViewportWidth)
	if terminalHeight <= 0 {
		terminalHeight = DefaultHeight
	}
	tableHeight := terminalHeight - chromeHeight
	if tableHeight < MinTableHeight {
		tableHeight = MinTableHeight
	}
	return Layout{
		ViewportWidth:  width,
		ViewportHeight: terminalHeight,
		ContentWidth:   width - 2,
		TableWidth:     width - 4,
		InnerWidth:     width - 2,
		TableHeight:    tableHeight,
	}
}

// DefaultLayout returns a layout using the default size
func DefaultLayout() Layout {
	return NewLayout(DefaultWidth, DefaultHeight)
}

// TabbedTableHeight leaves one row for the tab indicator.
func (l Layout) TabbedTableHeight() int {
	if l.TableHeight-1 < MinTableHeight {
		return MinTableHeight
	}
	return l.TableHeight - 1
}

// MainBoxHeight is the content height of the upper box in a two-box view.
func (l Layout) MainBoxHeight() int {
	h := l.ViewportHeight - 5 // footer box (3) + main box border (2)
	if h < MinTableHeight {
		return MinTableHeight
	}
	return h
}

// clamp restricts a value to the given range
func clamp(value, min, max int) int {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

// Color palette - centralized color definitions
var (
	ColorBorder    = lipgloss.Color("39")  // blue
	ColorHighlight = lipgloss.Color("24")  // dark blue background
	ColorText      = lipgloss.Color("15")  // bright white
	ColorAccent    = lipgloss.Color("86")  // cyan
	ColorAccentDim = lipgloss.Color("73")  // teal (progress)
	ColorTextDim   = lipgloss.Color("241") // gray
	ColorBlack     = lipgloss.Color("0")   // black

	ColorSuccess = lipgloss.Color("42")  // green
	ColorWarning = lipgloss.Color("214") // amber
	ColorDanger  = lipgloss.Color("196") // red
	ColorInfo    = lipgloss.Color("117") // light blue
)

// Common styles - reusable style definitions
var (
	// Border style for main viewport.
	// Boxes are sized with .Width(InnerWidth); the border adds the last 2 columns.
	BorderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder)

	// Footer box around the help line
	FooterStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorText).
			Align(lipgloss.Center)

	// Title style for section headers
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorText)

	// Selected row/item style
	SelectedStyle = lipgloss.NewStyle().
			Foreground(ColorText).
			Background(ColorHighlight).
			Bold(true)

	NormalStyle = lipgloss.NewStyle().
			Foreground(ColorText)

	DimStyle = lipgloss.NewStyle().
			Foreground(ColorTextDim)

	HintStyle = lipgloss.NewStyle().
			Foreground(ColorText).
			Italic(true)

	AccentStyle = lipgloss.NewStyle().
			Foreground(ColorAccent).
			Bold(true)

	ProgressStyle = lipgloss.NewStyle().
			Foreground(ColorAccentDim)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorDanger).
			Bold(true)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(ColorSuccess).
			Bold(true)

	StatusMsgStyle = lipgloss.NewStyle().
			Foreground(ColorAccent).
			Italic(true)

	TabActiveStyle = lipgloss.NewStyle().
			Foreground(ColorText).
			Background(ColorHighlight).
			Bold(true).
			Padding(0, 2)

	TabInactiveStyle = lipgloss.NewStyle().
				Foreground(ColorText).
				Padding(0, 2)

	// Headline figure label and value on the overview and metrics lines
	MetricLabelStyle = lipgloss.NewStyle().
				Foreground(ColorTextDim)

	MetricValueStyle = lipgloss.NewStyle().
				Foreground(ColorText).
				Bold(true)

	CardStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(ColorTextDim).
			Padding(0, 1)
)

// StatusColor maps a record status, type or severity to its badge colour.
func StatusColor(status string) lipgloss.Color {
	switch strings.ToLower(status) {
	case "success", "passed", "online", "active", "compliant", "resolved", "pass", "low", "normal":
		return ColorSuccess
	case "warning", "investigating", "testing", "monitoring", "pending", "medium",
		"conditional pass", "remediation", "high":
		return ColorWarning
	case "critical", "failed", "offline", "violation", "suspended", "inactive":
		return ColorDanger
	case "info":
		return ColorInfo
	}
	return ColorText
}

// RenderStatus renders a status word in its badge colour.
func RenderStatus(status string) string {
	return lipgloss.NewStyle().Foreground(StatusColor(status)).Bold(true).Render(status)
}

// RenderTitle renders a section title.
func RenderTitle(s string) string { return TitleStyle.Render(s) }

// RenderDim renders secondary text.
func RenderDim(s string) string { return DimStyle.Render(s) }

// RenderNormal renders body text.
func RenderNormal(s string) string { return NormalStyle.Render(s) }

// RenderError renders an error line.
func RenderError(s string) string { return ErrorStyle.Render(s) }

// RenderSuccess renders a confirmation line.
func RenderSuccess(s string) string { return SuccessStyle.Render(s) }

// RenderTabActive renders the selected tab label.
func RenderTabActive(s string) string { return TabActiveStyle.Render(s) }

// RenderTabInactive renders an unselected tab label.
func RenderTabInactive(s string) string { return TabInactiveStyle.Render(s) }

// RenderSelectedWidth renders s highlighted and padded to width.
func RenderSelectedWidth(s string, width int) string {
	s = stripEscapeCodes(s)
	if w := StringWidth(s); w < width {
		s += strings.Repeat(" ", width-w)
	}
	return SelectedStyle.Render(truncateToWidth(s, width))
}

// StringWidth is the printable cell width of s, ignoring ANSI sequences.
func StringWidth(s string) int {
	return ansi.StringWidth(s)
}

func stripEscapeCodes(s string) string {
	return ansi.Strip(s)
}

func truncateToWidth(s string, width int) string {
	return ansi.Truncate(s, width, "")
}

// PadContentToHeight appends blank lines until content has targetHeight lines.
// Content that is already taller is cut to targetHeight.
func PadContentToHeight(content string, targetHeight int) string {
	content = strings.TrimRight(content, "\n")
	lines := strings.Split(content, "\n")
	if len(lines) > targetHeight {
		lines = lines[:targetHeight]
	}
	for len(lines) < targetHeight {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}

// BuildTwoBoxView renders content in the main bordered box and helpText
// centred in the footer box below it.
func BuildTwoBoxView(content, helpText string, layout Layout) string {
	main := BorderStyle.
		Width(layout.InnerWidth).
		Render(PadContentToHeight(content, layout.MainBoxHeight()))
	footer := FooterStyle.
		Width(layout.InnerWidth).
		Render(HintStyle.Render(helpText))
	return lipgloss.JoinVertical(lipgloss.Left, main, footer)
}

// BorderedBox returns a style for bordered content boxes with the layout width
func BorderedBox(layout Layout) lipgloss.Style {
	return BorderStyle.
		Padding(1, 0).
		Width(layout.InnerWidth)
}

// ApplyTableStyles sets the console's table look. The selected row keeps a
// neutral style; RenderTableWithSelection paints the visible highlight.
func ApplyTableStyles(t *table.Model) {
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(ColorBorder).
		BorderBottom(false).
		Foreground(ColorText).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(ColorText).
		Background(lipgloss.NoColor{}).
		Bold(false)
	s.Cell = s.Cell.Foreground(ColorText)
	t.SetStyles(s)
}

// NewAppSpinner returns the white dot spinner used while work is in flight.
func NewAppSpinner() spinner.Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(ColorText)
	return s
}

// NewAppTheme creates a huh theme matching the console palette:
// white text, blue highlights and selection.
func NewAppTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().
		Foreground(ColorText).
		Bold(true)
	t.Blurred.Title = t.Focused.Title

	t.Focused.Description = lipgloss.NewStyle().
		Foreground(ColorTextDim)
	t.Blurred.Description = t.Focused.Description

	t.Focused.Base = lipgloss.NewStyle().
		Foreground(ColorText)
	t.Blurred.Base = t.Focused.Base

	t.Focused.SelectedOption = lipgloss.NewStyle().
		Foreground(ColorText).
		Background(ColorHighlight).
		Bold(true).
		Padding(0, 1)

	t.Focused.UnselectedOption = lipgloss.NewStyle().
		Foreground(ColorText).
		Padding(0, 1)

	t.Focused.FocusedButton = lipgloss.NewStyle().
		Foreground(ColorText).
		Background(ColorBorder).
		Bold(true).
		Padding(0, 1)

	t.Focused.BlurredButton = lipgloss.NewStyle().
		Foreground(ColorText).
		Padding(0, 1)

	t.Focused.TextInput.Cursor = lipgloss.NewStyle().
		Foreground(ColorBorder)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().
		Foreground(ColorTextDim)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().
		Foreground(ColorBorder)

	t.Focused.ErrorMessage = ErrorStyle
	t.Focused.ErrorIndicator = ErrorStyle

	return t
}
