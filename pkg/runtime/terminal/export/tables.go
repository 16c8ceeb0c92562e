package export

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/de-tools/fmcg-atlas/pkg/models/domain"
)

const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
)

// maxSheetName is the Excel limit on worksheet names.
const maxSheetName = 31

var unsafeName = regexp.MustCompile(`[:\\/?*\[\]]+`)

// Table is one exported section: a header row followed by data rows.
type Table struct {
	Name   string
	Title  string
	Header []string
	Rows   [][]string
}

// Tables flattens every section of a report into a table. Summary panels
// become Metric/Value/Note rows, failed sections a single Error row.
func Tables(report *domain.Report) []Table {
	tables := make([]Table, 0, len(report.Sections))
	for _, s := range report.Sections {
		t := Table{Name: s.Name, Title: s.Title}
		switch {
		case s.Error != "":
			t.Header = []string{"Error"}
			t.Rows = [][]string{{s.Error}}
		case len(s.Columns) > 0:
			t.Header = s.Columns
			t.Rows = s.Rows
		default:
			t.Header = []string{"Metric", "Value", "Note"}
			for _, d := range s.Summary {
				t.Rows = append(t.Rows, []string{d.Name, d.Value, d.Description})
			}
		}
		tables = append(tables, t)
	}
	return tables
}

func ValidateFormat(format string) error {
	switch format {
	case FormatCSV, FormatXLSX:
		return nil
	default:
		return fmt.Errorf("unsupported export format %q (want %s or %s)", format, FormatCSV, FormatXLSX)
	}
}

// sheetNames derives unique worksheet names from section titles.
func sheetNames(tables []Table) []string {
	seen := make(map[string]bool, len(tables))
	names := make([]string, 0, len(tables))
	for _, t := range tables {
		base := strings.TrimSpace(unsafeName.ReplaceAllString(t.Title, " "))
		if base == "" {
			base = t.Name
		}
		base = truncate(base, maxSheetName)

		name := base
		for i := 2; seen[strings.ToLower(name)]; i++ {
			suffix := fmt.Sprintf(" (%d)", i)
			name = truncate(base, maxSheetName-len(suffix)) + suffix
		}
		seen[strings.ToLower(name)] = true
		names = append(names, name)
	}
	return names
}
