package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/aidmqan/mqan-console/internal/catalog"
)

// Format is an export file format.
type Format string

const (
	Markdown Format = "md"
	CSV      Format = "csv"
	XLSX     Format = "xlsx"
)

// Formats lists the supported formats.
var Formats = []Format{Markdown, CSV, XLSX}

// ParseFormat accepts md, markdown, csv or xlsx.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "md", "markdown", "":
		return Markdown, nil
	case "csv":
		return CSV, nil
	case "xlsx", "excel":
		return XLSX, nil
	}
	return "", fmt.Errorf("unsupported export format %q", s)
}

// Filename builds the default file name for a page export,
// e.g. alerts-2024-01-15-143215.md.
func Filename(page string, f Format, at time.Time) string {
	safe := strings.ReplaceAll(page, "/", "-")
	return fmt.Sprintf("%s-%s.%s", safe, at.Format("2006-01-02-150405"), f)
}

// Write renders v in format f.
func Write(w io.Writer, v catalog.View, f Format, at time.Time) error {
	switch f {
	case Markdown:
		return writeMarkdown(w, v, at)
	case CSV:
		return writeCSV(w, v)
	case XLSX:
		return writeXLSX(w, v)
	}
	return fmt.Errorf("unsupported export format %q", f)
}

// ToFile writes v to path, or to the default file name in the current
// directory when path is empty. It returns the path written.
func ToFile(v catalog.View, f Format, path string) (string, error) {
	now := time.Now()
	if path == "" {
		path = Filename(v.Page, f, now)
	}

	var buf bytes.Buffer
	if err := Write(&buf, v, f, now); err != nil {
		return "", err
	}

	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", fmt.Errorf("failed to create export directory: %w", err)
		}
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return "", fmt.Errorf("failed to write %s file: %w", f, err)
	}
	return path, nil
}

func headers(v catalog.View) []string {
	out := make([]string, len(v.Columns))
	for i, c := range v.Columns {
		out[i] = c.Title
	}
	return out
}

func writeMarkdown(w io.Writer, v catalog.View, at time.Time) error {
	var sb strings.Builder

	title := v.Title
	if title == "" {
		title = v.Page
	}
	sb.WriteString(fmt.Sprintf("# %s\n\n", title))

	sb.WriteString(fmt.Sprintf("**Filter:** %s\n", v.Spec.String()))
	sb.WriteString(fmt.Sprintf("**Records:** %d of %d\n", v.Count, v.Total))
	sb.WriteString(fmt.Sprintf("**Generated:** %s\n\n", at.Format("2006-01-02 15:04:05")))

	cols := headers(v)
	sb.WriteString("| " + strings.Join(cols, " | ") + " |\n")
	seps := make([]string, len(cols))
	for i, c := range cols {
		seps[i] = strings.Repeat("-", max(3, len(c)))
	}
	sb.WriteString("|" + strings.Join(seps, "|") + "|\n")
	for _, row := range v.Rows {
		cells := make([]string, len(row))
		for i, c := range row {
			cells[i] = strings.ReplaceAll(c, "|", `\|`)
		}
		sb.WriteString("| " + strings.Join(cells, " | ") + " |\n")
	}

	if len(v.Aggregates) > 0 || len(v.Metrics) > 0 {
		sb.WriteString("\n## Aggregates\n\n")
		sb.WriteString("| Name | Scope | Value |\n")
		sb.WriteString("|------|-------|-------|\n")
		for _, a := range v.Aggregates {
			sb.WriteString(fmt.Sprintf("| %s | %s | %d |\n", a.Name, a.Scope, a.Value))
		}
		for _, m := range v.Metrics {
			sb.WriteString(fmt.Sprintf("| %s | derived | %s |\n", m.Label, m.Value))
		}
	}

	_, err := io.WriteString(w, sb.String())
	if err != nil {
		return fmt.Errorf("failed to write markdown: %w", err)
	}
	return nil
}

// writeCSV writes the header and rows, a blank line, then name,scope,value
// rows for the aggregates.
func writeCSV(w io.Writer, v catalog.View) error {
	cw := csv.NewWriter(w)
	records := [][]string{headers(v)}
	records = append(records, v.Rows...)
	if len(v.Aggregates) > 0 || len(v.Metrics) > 0 {
		records = append(records, []string{}, []string{"aggregate", "scope", "value"})
		for _, a := range v.Aggregates {
			records = append(records, []string{a.Name, a.Scope, strconv.Itoa(a.Value)})
		}
		for _, m := range v.Metrics {
			records = append(records, []string{m.Name, "derived", m.Value})
		}
	}
	if err := cw.WriteAll(records); err != nil {
		return fmt.Errorf("failed to write csv: %w", err)
	}
	return nil
}

const aggregatesSheet = "Aggregates"

func writeXLSX(w io.Writer, v catalog.View) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := v.Page
	if sheet == "" {
		sheet = "Records"
	}
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	if err := setRow(f, sheet, 1, headers(v)); err != nil {
		return err
	}
	for i, row := range v.Rows {
		if err := setRow(f, sheet, i+2, row); err != nil {
			return err
		}
	}

	if _, err := f.NewSheet(aggregatesSheet); err != nil {
		return fmt.Errorf("failed to create aggregates sheet: %w", err)
	}
	if err := setRow(f, aggregatesSheet, 1, []string{"Name", "Scope", "Value"}); err != nil {
		return err
	}
	r := 2
	for _, a := range v.Aggregates {
		if err := setRow(f, aggregatesSheet, r, []any{a.Name, a.Scope, a.Value}); err != nil {
			return err
		}
		r++
	}
	for _, m := range v.Metrics {
		if err := setRow(f, aggregatesSheet, r, []any{m.Label, "derived", m.Value}); err != nil {
			return err
		}
		r++
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write xlsx: %w", err)
	}
	return nil
}

func setRow[T any](f *excelize.File, sheet string, row int, values []T) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("failed to address row %d: %w", row, err)
	}
	cells := make([]any, len(values))
	for i, v := range values {
		cells[i] = v
	}
	if err := f.SetSheetRow(sheet, cell, &cells); err != nil {
		return fmt.Errorf("failed to write row %d: %w", row, err)
	}
	return nil
}
