package export

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/de-tools/fmcg-atlas/pkg/models/domain"
)

func sampleReport() *domain.Report {
	return &domain.Report{
		Title:    "FMCG Healthcare Analytics",
		Subtitle: "Comprehensive data analysis dashboard",
		Sections: []domain.ReportSection{
			{
				Name:  "kpis",
				Title: "Key Performance Indicators",
				Summary: []domain.ReportDetail{
					{Name: "Total Revenue", Value: "$5.25M", Description: "+5.0%"},
					{Name: "Active Retailers", Value: "120"},
				},
			},
			{
				Name:    "top_products",
				Title:   "Top 10 Products",
				Columns: []string{"Product", "Category", "Revenue"},
				Rows: [][]string{
					{"Cola 1L", "Beverages", "$45,000"},
					{"Paracetamol 500mg, 24 tabs", "Pharma", "$12,500"},
				},
			},
			{
				Name:  "regions",
				Title: "Regional Performance",
				Error: "data unavailable",
			},
		},
	}
}

func TestReporter_Handle(t *testing.T) {
	var buf bytes.Buffer
	reporter := NewReporter(&buf)

	require.NoError(t, reporter.Handle(sampleReport()))
	out := buf.String()

	assert.Contains(t, out, "FMCG Healthcare Analytics\nComprehensive data analysis dashboard\n")
	assert.Contains(t, out, "=== Key Performance Indicators ===\nTotal Revenue: $5.25M (+5.0%)\nActive Retailers: 120\n")
	assert.Contains(t, out, "| Product                    | Category  | Revenue |\n")
	assert.Contains(t, out, "| Cola 1L                    | Beverages | $45,000 |\n")
	assert.Contains(t, out, "+----------------------------+-----------+---------+\n")
	assert.Contains(t, out, "=== Regional Performance ===\n! data unavailable\n")
}

func TestReporter_TruncatesWideCells(t *testing.T) {
	var buf bytes.Buffer
	reporter := NewReporter(&buf)
	reporter.config.MaxColumnWidth = 8

	out := reporter.table([]string{"Name"}, [][]string{{"Paracetamol 500mg"}})

	assert.Contains(t, out, "| Parac... |")
}

func TestReporter_EmptySection(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewReporter(&buf).Handle(&domain.Report{
		Title:    "Forecast",
		Sections: []domain.ReportSection{{Name: "inventory", Title: "Inventory Requirements"}},
	}))

	assert.Contains(t, buf.String(), "=== Inventory Requirements ===\n(no data)\n")
}

func TestTables(t *testing.T) {
	tables := Tables(sampleReport())
	require.Len(t, tables, 3)

	assert.Equal(t, []string{"Metric", "Value", "Note"}, tables[0].Header)
	assert.Equal(t, [][]string{{"Total Revenue", "$5.25M", "+5.0%"}, {"Active Retailers", "120", ""}}, tables[0].Rows)
	assert.Equal(t, []string{"Product", "Category", "Revenue"}, tables[1].Header)
	assert.Equal(t, [][]string{{"data unavailable"}}, tables[2].Rows)
}

func TestSheetNames(t *testing.T) {
	names := sheetNames([]Table{
		{Name: "a", Title: "Revenue / Retailer [Q1]"},
		{Name: "b", Title: "A very long section title that exceeds the limit"},
		{Name: "c", Title: "A very long section title that exceeds the limit"},
		{Name: "d", Title: ""},
	})

	assert.Equal(t, "Revenue Retailer Q1", strings.Join(strings.Fields(names[0]), " "))
	for _, n := range names {
		assert.LessOrEqual(t, len(n), maxSheetName)
	}
	assert.NotEqual(t, names[1], names[2])
	assert.True(t, strings.HasSuffix(names[2], " (2)"))
	assert.Equal(t, "d", names[3])
}

func TestValidateFormat(t *testing.T) {
	assert.NoError(t, ValidateFormat(FormatCSV))
	assert.NoError(t, ValidateFormat(FormatXLSX))
	assert.EqualError(t, ValidateFormat("pdf"), `unsupported export format "pdf" (want csv or xlsx)`)
}

func TestWriteCSV(t *testing.T) {
	// Given an output directory that does not exist yet
	dir := filepath.Join(t.TempDir(), "out")

	// When the report is exported
	paths, err := WriteCSV(dir, sampleReport())

	// Then one file per section is written
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "kpis.csv"),
		filepath.Join(dir, "top_products.csv"),
		filepath.Join(dir, "regions.csv"),
	}, paths)

	f, err := os.Open(paths[1])
	require.NoError(t, err)
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"Product", "Category", "Revenue"},
		{"Cola 1L", "Beverages", "$45,000"},
		{"Paracetamol 500mg, 24 tabs", "Pharma", "$12,500"},
	}, records)
}

func TestWriteXLSX(t *testing.T) {
	// Given a report with three sections
	var buf bytes.Buffer

	// When it is written as a workbook
	require.NoError(t, WriteXLSX(&buf, sampleReport()))

	// Then every section has its own sheet
	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Key Performance Indicators", "Top 10 Products", "Regional Performance"}, f.GetSheetList())

	rows, err := f.GetRows("Top 10 Products")
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"Product", "Category", "Revenue"},
		{"Cola 1L", "Beverages", "$45,000"},
		{"Paracetamol 500mg, 24 tabs", "Pharma", "$12,500"},
	}, rows)

	value, err := f.GetCellValue("Regional Performance", "A2")
	require.NoError(t, err)
	assert.Equal(t, "data unavailable", value)
}

func TestSaveXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dashboard.xlsx")

	require.NoError(t, SaveXLSX(path, sampleReport()))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()
	value, err := f.GetCellValue("Key Performance Indicators", "B2")
	require.NoError(t, err)
	assert.Equal(t, "$5.25M", value)
}
