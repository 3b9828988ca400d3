package ui

// view_helpers.go provides common View() rendering helpers.
// Use these to build consistent two-box layouts across all page models.

import (
	"strings"

	"github.com/charmbracelet/bubbles/table"
)

// RenderTableWithSelection renders a bubbles table with full-width selection highlight.
// The table's Selected style should use a neutral background,
// and this function applies the visible selection styling.
//
// bubbles/table View() output:
//   - Line 0: Header row
//   - Line 1+: Data rows (only visible rows due to viewport scrolling)
//
// A divider is inserted under the header. The visible cursor row is found
// from the table height and cursor, matching the table's own scroll window.
func RenderTableWithSelection(t table.Model, layout Layout) string {
	lines := strings.Split(t.View(), "\n")
	result := make([]string, 0, len(lines)+1)

	cursor := t.Cursor()
	height := t.Height()
	totalRows := len(t.Rows())

	start := 0
	if totalRows > height {
		if cursor >= height {
			start = cursor - height + 1
		}
		if maxStart := totalRows - height; start > maxStart {
			start = maxStart
		}
	}
	visibleCursorIndex := cursor - start

	for i, line := range lines {
		if i == 0 {
			result = append(result, NormalStyle.Render(line))
			result = append(result, FullWidthDivider(layout.InnerWidth))
			continue
		}

		// Strip escape codes first so embedded resets don't kill the background
		if i-1 == visibleCursorIndex {
			result = append(result, RenderSelectedWidth(line, layout.InnerWidth))
			continue
		}

		result = append(result, NormalStyle.Render(line))
	}

	return strings.Join(result, "\n")
}

// ViewHeader renders title + full-width divider + spacing.
//
// Example:
//
//	content := ViewHeader("Settings", layout.InnerWidth)
//	content += m.form.View()
//	return TwoBoxView(content, "Enter: next | Esc: back", layout)
func ViewHeader(title string, innerWidth int) string {
	var b strings.Builder
	b.WriteString(RenderTitle(title))
	b.WriteString("\n")
	b.WriteString(FullWidthDivider(innerWidth))
	b.WriteString("\n\n")
	return b.String()
}

// ViewHeaderWithSubtitle renders title + subtitle + divider + spacing.
func ViewHeaderWithSubtitle(title, subtitle string, innerWidth int) string {
	var b strings.Builder
	b.WriteString(RenderTitle(title))
	b.WriteString("\n")
	if subtitle != "" {
		b.WriteString(RenderDim(subtitle))
		b.WriteString("\n")
	}
	b.WriteString(FullWidthDivider(innerWidth))
	b.WriteString("\n\n")
	return b.String()
}

// CenterText centers text within given width.
func CenterText(text string, width int) string {
	textW := StringWidth(text)
	if textW >= width {
		return text
	}
	return strings.Repeat(" ", (width-textW)/2) + text
}

// TwoBoxView constructs the standard two-box layout.
//
//	╭────────────────────────╮
//	│ Main content           │  <- accent border
//	╰────────────────────────╯
//	╭────────────────────────╮
//	│   Centered help text   │  <- white border, 1 row
//	╰────────────────────────╯
func TwoBoxView(content, helpText string, layout Layout) string {
	return BuildTwoBoxView(content, helpText, layout)
}

// FullWidthDivider returns a horizontal divider spanning the inner width.
func FullWidthDivider(innerWidth int) string {
	return strings.Repeat("─", innerWidth)
}

// RenderListItem renders a list item with a marker and optional selection highlight.
func RenderListItem(text string, selected bool, width int) string {
	if selected {
		return RenderSelectedWidth("› "+text, width)
	}
	return RenderNormal("  " + text)
}
