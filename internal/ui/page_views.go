package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"

	"github.com/aidmqan/mqan-console/internal/catalog"
	"github.com/aidmqan/mqan-console/internal/query"
)

// page_views.go provides a fluent API for building consistent page views.
// Use PageViewBuilder to construct views with a standardized layout.

// PageViewBuilder provides a fluent API for building page views.
// It handles the title, dividers, spacing and two-box layout.
//
// Example usage:
//
//	return NewPageView(m.layout).
//	    Title("Alert Management").
//	    Divider().
//	    QueryInfo("Showing 3 of 6 alerts").
//	    Table(m.table).
//	    Status(m.StatusMsg).
//	    Help("↑/↓: navigate | /: search").
//	    Build()
type PageViewBuilder struct {
	layout     Layout
	content    strings.Builder
	helpText   string
	hadContent bool
}

// NewPageView creates a new PageViewBuilder with the given layout.
func NewPageView(layout Layout) *PageViewBuilder {
	return &PageViewBuilder{
		layout: layout,
	}
}

// Title adds a title line (bold white).
func (b *PageViewBuilder) Title(title string) *PageViewBuilder {
	b.content.WriteString(RenderTitle(title))
	b.content.WriteString("\n")
	b.hadContent = true
	return b
}

// Subtitle adds a subtitle line (dim gray).
func (b *PageViewBuilder) Subtitle(subtitle string) *PageViewBuilder {
	b.content.WriteString(RenderDim(subtitle))
	b.content.WriteString("\n")
	b.hadContent = true
	return b
}

// Divider adds a full-width horizontal divider.
func (b *PageViewBuilder) Divider() *PageViewBuilder {
	b.content.WriteString(FullWidthDivider(b.layout.InnerWidth))
	b.content.WriteString("\n")
	b.hadContent = true
	return b
}

// Spacing adds blank lines.
func (b *PageViewBuilder) Spacing(lines int) *PageViewBuilder {
	for i := 0; i < lines; i++ {
		b.content.WriteString("\n")
	}
	return b
}

// QueryInfo adds a query/filter information line (accent colour).
func (b *PageViewBuilder) QueryInfo(info string) *PageViewBuilder {
	b.content.WriteString(AccentStyle.Render(info))
	b.content.WriteString("\n")
	b.hadContent = true
	return b
}

// Counts adds the "x of y" line, then every aggregate and metric of v on
// one line.
func (b *PageViewBuilder) Counts(v catalog.View) *PageViewBuilder {
	b.QueryInfo(fmt.Sprintf("Showing %d of %d", v.Count, v.Total))
	b.content.WriteString(RenderFigures(v.Aggregates, v.Metrics))
	b.content.WriteString("\n")
	return b
}

// Text adds normal text content.
func (b *PageViewBuilder) Text(text string) *PageViewBuilder {
	b.content.WriteString(NormalStyle.Render(text))
	b.content.WriteString("\n")
	b.hadContent = true
	return b
}

// DimText adds dimmed text content.
func (b *PageViewBuilder) DimText(text string) *PageViewBuilder {
	b.content.WriteString(DimStyle.Render(text))
	b.content.WriteString("\n")
	b.hadContent = true
	return b
}

// CustomContent adds pre-rendered content.
func (b *PageViewBuilder) CustomContent(content string) *PageViewBuilder {
	b.content.WriteString(content)
	if !strings.HasSuffix(content, "\n") {
		b.content.WriteString("\n")
	}
	b.hadContent = true
	return b
}

// Table adds a table with full-width selection highlighting.
func (b *PageViewBuilder) Table(t table.Model) *PageViewBuilder {
	if b.hadContent {
		b.content.WriteString("\n")
	}
	if len(t.Rows()) == 0 {
		b.content.WriteString(RenderDim("No records match the current filter."))
		b.content.WriteString("\n")
	} else {
		b.content.WriteString(RenderTableWithSelection(t, b.layout))
		b.content.WriteString("\n")
	}
	b.hadContent = true
	return b
}

// Status adds a status message (if not empty).
func (b *PageViewBuilder) Status(msg string) *PageViewBuilder {
	if msg != "" {
		if b.hadContent {
			b.content.WriteString("\n")
		}
		b.content.WriteString(StatusMsgStyle.Render(msg))
		b.content.WriteString("\n")
		b.hadContent = true
	}
	return b
}

// Error adds an error message.
func (b *PageViewBuilder) Error(err error) *PageViewBuilder {
	if err != nil {
		if b.hadContent {
			b.content.WriteString("\n")
		}
		b.content.WriteString(RenderError("Error: " + err.Error()))
		b.content.WriteString("\n")
		b.hadContent = true
	}
	return b
}

// Help sets the help text for the footer box.
func (b *PageViewBuilder) Help(helpText string) *PageViewBuilder {
	b.helpText = helpText
	return b
}

// Build constructs the final view string with two-box layout.
func (b *PageViewBuilder) Build() string {
	return TwoBoxView(b.content.String(), b.helpText, b.layout)
}

// BuildContent builds just the content portion without the two-box layout.
func (b *PageViewBuilder) BuildContent() string {
	return b.content.String()
}

// RenderFigures renders aggregates and metrics as "Label value" pairs.
func RenderFigures(aggs []query.AggregateValue, metrics []catalog.Metric) string {
	parts := make([]string, 0, len(aggs)+len(metrics))
	for _, a := range aggs {
		parts = append(parts, renderFigure(humanLabel(a.Name), fmt.Sprintf("%d", a.Value)))
	}
	for _, m := range metrics {
		parts = append(parts, renderFigure(m.Label, m.Value))
	}
	return strings.Join(parts, RenderDim("  │  "))
}

func renderFigure(label, value string) string {
	return MetricLabelStyle.Render(label+" ") + MetricValueStyle.Render(value)
}

// humanLabel turns an aggregate name like "high_load" into "High load".
func humanLabel(name string) string {
	s := strings.ReplaceAll(name, "_", " ")
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
