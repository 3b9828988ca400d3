package ui

// columns.go provides generic column width calculation for bubbles/table.
// Use ColumnSpec and CalculateColumns() instead of duplicating percentage-based math.

import (
	"github.com/charmbracelet/bubbles/table"

	"github.com/aidmqan/mqan-console/internal/catalog"
)

// ColumnSpec defines a table column with flexible or fixed width.
// Use FlexRatio for columns that should expand/contract with terminal width.
// Use FixedWidth for columns that should maintain constant width.
type ColumnSpec struct {
	Title      string
	MinWidth   int // Minimum width (0 = no minimum)
	FixedWidth int // If > 0, use this exact width (ignores FlexRatio)
	FlexRatio  int // Relative ratio for flexible columns (0 = fixed-only)
}

// CalculateColumns computes column widths from specs.
// Flexible columns split remaining space by ratio after fixed columns are allocated.
//
// Example:
//
//	columns := CalculateColumns([]ColumnSpec{
//	    {Title: "Hospital", FlexRatio: 30, MinWidth: 20},
//	    {Title: "Action", FlexRatio: 40, MinWidth: 25},
//	    {Title: "Status", FixedWidth: 10},
//	}, layout.TableWidth)
func CalculateColumns(specs []ColumnSpec, totalWidth int) []table.Column {
	if totalWidth < 50 {
		totalWidth = 50
	}

	// bubbles/table pads every cell by one column on each side
	totalWidth -= 2 * len(specs)

	fixedTotal := 0
	flexTotal := 0
	for _, s := range specs {
		if s.FixedWidth > 0 {
			fixedTotal += s.FixedWidth
		} else {
			flexTotal += s.FlexRatio
		}
	}

	remaining := totalWidth - fixedTotal
	if remaining < 0 {
		remaining = 0
	}

	columns := make([]table.Column, len(specs))
	for i, s := range specs {
		var width int
		if s.FixedWidth > 0 {
			width = s.FixedWidth
		} else if flexTotal > 0 {
			width = remaining * s.FlexRatio / flexTotal
		}
		width = ClampWidth(width, s.MinWidth, 0)
		columns[i] = table.Column{Title: s.Title, Width: width}
	}

	return columns
}

// PageColumns converts a catalog page's column layout into specs. Flex
// columns get a minimum of their title width so headers never truncate.
func PageColumns(cols []catalog.Column) []ColumnSpec {
	specs := make([]ColumnSpec, len(cols))
	for i, c := range cols {
		specs[i] = ColumnSpec{
			Title:      c.Title,
			FixedWidth: c.Fixed,
			FlexRatio:  c.Flex,
			MinWidth:   len(c.Title),
		}
	}
	return specs
}

// SingleColumnSpec returns a column spec for single-column selectors.
func SingleColumnSpec(title string) []ColumnSpec {
	return []ColumnSpec{
		{Title: title, FlexRatio: 100},
	}
}

// MonthlyColumns returns column specs for the analytics monthly trend tab.
func MonthlyColumns() []ColumnSpec {
	return []ColumnSpec{
		{Title: "Month", FixedWidth: 8},
		{Title: "Tests", FlexRatio: 25},
		{Title: "Passed", FlexRatio: 25},
		{Title: "Failed", FlexRatio: 25},
		{Title: "Pass Rate", FixedWidth: 10},
		{Title: "Compliance", FixedWidth: 11},
	}
}

// PerformanceColumns returns column specs for the hospital performance tab.
func PerformanceColumns() []ColumnSpec {
	return []ColumnSpec{
		{Title: "Hospital", FlexRatio: 50, MinWidth: 20},
		{Title: "Tests", FlexRatio: 20},
		{Title: "Compliance", FixedWidth: 11},
		{Title: "Efficiency", FixedWidth: 11},
	}
}

// TestTypeColumns returns column specs for the test-type distribution tab.
func TestTypeColumns() []ColumnSpec {
	return []ColumnSpec{
		{Title: "Method", FlexRatio: 50, MinWidth: 20},
		{Title: "Share", FixedWidth: 8},
		{Title: "Count", FlexRatio: 20},
	}
}

// DistributeWidth distributes available width across columns by ratio.
// A zero ratio sum splits the width equally.
func DistributeWidth(totalWidth int, ratios []int) []int {
	if len(ratios) == 0 {
		return nil
	}

	totalRatio := 0
	for _, r := range ratios {
		totalRatio += r
	}

	widths := make([]int, len(ratios))
	for i, r := range ratios {
		if totalRatio == 0 {
			widths[i] = totalWidth / len(ratios)
			continue
		}
		widths[i] = totalWidth * r / totalRatio
	}
	return widths
}

// ClampWidth ensures width is within min/max bounds. A zero bound is ignored.
func ClampWidth(width, minWidth, maxWidth int) int {
	if minWidth > 0 && width < minWidth {
		return minWidth
	}
	if maxWidth > 0 && width > maxWidth {
		return maxWidth
	}
	return width
}
