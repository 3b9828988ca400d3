package ui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/aidmqan/mqan-console/internal/catalog"
	"github.com/aidmqan/mqan-console/internal/models"
)

// report.go prints non-interactive CLI output. Lipgloss is used only for
// colours; table structure comes from plain string formatting so the output
// stays pipe-friendly.

var (
	reportTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorAccent)

	reportHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorText)
)

// FprintView writes v as an aligned text table followed by its aggregates.
func FprintView(w io.Writer, v catalog.View) {
	fmt.Fprintln(w, reportTitleStyle.Render(v.Title))
	if !v.Spec.IsZero() {
		fmt.Fprintln(w, RenderDim("Filter: "+v.Spec.String()))
	}
	fmt.Fprintf(w, "%s\n\n", RenderDim(fmt.Sprintf("%d of %d records", v.Count, v.Total)))

	widths := make([]int, len(v.Columns))
	for i, c := range v.Columns {
		widths[i] = StringWidth(c.Title)
	}
	for _, r := range v.Rows {
		for i, cell := range r {
			if w := StringWidth(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	header := make([]string, len(v.Columns))
	for i, c := range v.Columns {
		header[i] = pad(c.Title, widths[i])
	}
	fmt.Fprintln(w, reportHeaderStyle.Render(strings.Join(header, "  ")))

	sep := make([]string, len(widths))
	for i, n := range widths {
		sep[i] = strings.Repeat("─", n)
	}
	fmt.Fprintln(w, RenderDim(strings.Join(sep, "  ")))

	for _, r := range v.Rows {
		cells := make([]string, len(r))
		for i, cell := range r {
			cells[i] = pad(cell, widths[i])
		}
		fmt.Fprintln(w, strings.Join(cells, "  "))
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, RenderFigures(v.Aggregates, v.Metrics))
}

// PrintView writes v to stdout.
func PrintView(v catalog.View) {
	FprintView(os.Stdout, v)
}

// FprintViews lists saved views, one per line.
func FprintViews(w io.Writer, views []models.SavedView) {
	if len(views) == 0 {
		fmt.Fprintln(w, RenderDim("No saved views"))
		return
	}
	for _, v := range views {
		fmt.Fprintf(w, "%s  %s  %s  %s\n",
			pad(v.Page, 11),
			AccentStyle.Render(pad(v.Name, 20)),
			v.Spec.String(),
			RenderDim(v.UpdatedAt.Local().Format("2006-01-02 15:04")),
		)
	}
}

func pad(s string, width int) string {
	if w := StringWidth(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}

// PrintSuccess prints a success message
func PrintSuccess(message string) {
	fmt.Println(RenderSuccess("✓ " + message))
}

// PrintError prints an error message to stderr
func PrintError(message string) {
	fmt.Fprintln(os.Stderr, RenderError("✗ "+message))
}
