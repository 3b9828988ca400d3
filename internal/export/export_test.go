package export

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/aidmqan/mqan-console/internal/catalog"
	"github.com/aidmqan/mqan-console/internal/models"
)

var generated = time.Date(2024, 1, 15, 14, 32, 15, 0, time.UTC)

func resolvedAlerts(t *testing.T) catalog.View {
	t.Helper()
	p, ok := catalog.NewRegistry(catalog.Seed(), nil).Get(catalog.PageAlerts)
	require.True(t, ok)
	return p.Query(models.FilterSpec{}.WithFacet("status", "resolved"))
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{in: "md", want: Markdown},
		{in: "", want: Markdown},
		{in: "Markdown", want: Markdown},
		{in: "CSV", want: CSV},
		{in: "xlsx", want: XLSX},
		{in: "pdf", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFilename(t *testing.T) {
	assert.Equal(t, "alerts-2024-01-15-143215.csv", Filename("alerts", CSV, generated))
}

func TestMarkdown(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, resolvedAlerts(t), Markdown, generated))
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, "# Alert Management\n"))
	assert.Contains(t, out, "**Filter:** status=resolved")
	assert.Contains(t, out, "**Records:** 2 of 6")
	assert.Contains(t, out, "**Generated:** 2024-01-15 14:32:15")
	assert.Contains(t, out, "| Type | Title | Hospital | Status | Priority | Time |")
	assert.Contains(t, out, "Scheduled maintenance completed")
	assert.Contains(t, out, "Quality improvement milestone")
	assert.NotContains(t, out, "Node connectivity issue")
	assert.Contains(t, out, "## Aggregates")
	assert.Contains(t, out, "| unresolved | filtered | 0 |")
}

func TestCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, resolvedAlerts(t), CSV, generated))

	r := csv.NewReader(&buf)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	require.NoError(t, err)

	// header + 2 rows, then aggregate header + 3 aggregates (the blank line is skipped)
	require.Len(t, records, 7)
	assert.Equal(t, "Title", records[0][1])
	assert.Equal(t, "Scheduled maintenance completed", records[1][1])
	assert.Equal(t, []string{"aggregate", "scope", "value"}, records[3])
	assert.Equal(t, []string{"active", "filtered", "0"}, records[4])
}

func TestXLSX(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, resolvedAlerts(t), XLSX, generated))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"alerts", "Aggregates"}, f.GetSheetList())

	rows, err := f.GetRows("alerts")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Type", rows[0][0])
	assert.Equal(t, "Quality improvement milestone", rows[2][1])

	aggs, err := f.GetRows(aggregatesSheet)
	require.NoError(t, err)
	require.Len(t, aggs, 4)
	assert.Equal(t, []string{"critical", "filtered", "0"}, aggs[2])
}

func TestToFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out", "alerts.md")

	got, err := ToFile(resolvedAlerts(t), Markdown, path)
	require.NoError(t, err)
	assert.Equal(t, path, got)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "# Alert Management")
}

func TestBackup(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "mqan.db")
	require.NoError(t, os.WriteFile(dbPath, []byte("sqlite bytes"), 0644))

	backupDir := t.TempDir()
	path, err := Backup(dbPath, backupDir)
	require.NoError(t, err)
	assert.Equal(t, backupDir, filepath.Dir(path))
	assert.True(t, strings.HasPrefix(filepath.Base(path), "mqan-backup-"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "sqlite bytes", string(data))

	_, err = Backup(filepath.Join(dir, "missing.db"), "")
	assert.Error(t, err)
}
