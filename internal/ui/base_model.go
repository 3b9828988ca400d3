package ui

// base_model.go provides common table helpers for Bubble Tea page models.

import (
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
)

// InitTable creates and configures a table with proper styling and dimensions.
// Use this instead of calling table.New() directly.
//
// Example:
//
//	columns := CalculateColumns(PageColumns(view.Columns), layout.TableWidth)
//	m.table = InitTable(columns, toRows(view.Rows), layout)
func InitTable(columns []table.Column, rows []table.Row, layout Layout) table.Model {
	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(layout.TableHeight),
	)
	ApplyTableStyles(&t)
	t.GotoTop()
	return t
}

// SetTableRows replaces the rows and keeps the cursor inside the new range.
// An empty table leaves bubbles' cursor at -1, so it is moved back onto the
// first row once rows return.
func SetTableRows(t *table.Model, rows []table.Row) {
	t.SetRows(rows)
	if len(rows) == 0 {
		return
	}
	switch c := t.Cursor(); {
	case c < 0:
		t.SetCursor(0)
	case c >= len(rows):
		t.SetCursor(len(rows) - 1)
	}
}

// toRows converts catalog display rows into bubbles rows.
func toRows(rows [][]string) []table.Row {
	out := make([]table.Row, len(rows))
	for i, r := range rows {
		out[i] = table.Row(r)
	}
	return out
}

// StandardInit returns the standard Init command for table models.
func StandardInit() tea.Cmd {
	return tea.WindowSize()
}

// HandleQuitKeys returns true and Quit cmd for ctrl+c.
// Pages use q/esc to go back to the menu, so only the app root quits on them.
func HandleQuitKeys(key string) (bool, tea.Cmd) {
	if key == "ctrl+c" {
		return true, tea.Quit
	}
	return false, nil
}

// HandleTableKeys applies the shared scrolling keys to t and reports
// whether key was one of them.
func HandleTableKeys(t *table.Model, key string) bool {
	switch key {
	case "up", "k":
		t.MoveUp(1)
	case "down", "j":
		t.MoveDown(1)
	case "home", "g":
		t.GotoTop()
	case "end", "G":
		t.GotoBottom()
	case "pgup", "ctrl+u":
		t.MoveUp(t.Height() / 2)
	case "pgdown", "ctrl+d":
		t.MoveDown(t.Height() / 2)
	default:
		return false
	}
	return true
}

// HandleNavigationKeys handles up/down/j/k navigation over a plain list.
// Returns new cursor position (clamped to valid range).
func HandleNavigationKeys(key string, cursor, maxItems int) int {
	switch key {
	case "up", "k":
		if cursor > 0 {
			return cursor - 1
		}
	case "down", "j":
		if cursor < maxItems-1 {
			return cursor + 1
		}
	}
	return cursor
}
