package export

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/template"
	"unicode/utf8"

	"github.com/de-tools/fmcg-atlas/pkg/models/domain"
)

type TableConfig struct {
	// MaxColumnWidth caps a column; longer cells are cut with "...".
	MaxColumnWidth int
	// Padding is the number of spaces on each side of a cell.
	Padding int
}

func DefaultTableConfig() TableConfig {
	return TableConfig{
		MaxColumnWidth: 40,
		Padding:        1,
	}
}

// Reporter prints a report as text tables, one per section.
type Reporter struct {
	writer io.Writer
	config TableConfig
}

func NewReporter(writer io.Writer) *Reporter {
	if writer == nil {
		writer = os.Stdout
	}
	return &Reporter{
		writer: writer,
		config: DefaultTableConfig(),
	}
}

const reportTemplate = `
{{.Title}}
{{if .Subtitle}}{{.Subtitle}}
{{end}}{{range .Sections}}
=== {{.Title}} ===
{{if .Error}}! {{.Error}}
{{else}}{{range .Summary}}{{.Name}}: {{.Value}}{{if .Description}} ({{.Description}}){{end}}
{{end}}{{if .Columns}}{{table .Columns .Rows}}{{else if not .Summary}}(no data)
{{end}}{{end}}{{end}}`

func (c *Reporter) Handle(report *domain.Report) error {
	funcMap := template.FuncMap{
		"table": c.table,
	}

	t, err := template.New("report").Funcs(funcMap).Parse(reportTemplate)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	return t.Execute(c.writer, report)
}

func (c *Reporter) table(columns []string, rows [][]string) string {
	widths := make([]int, len(columns))
	for i, col := range columns {
		widths[i] = c.width(col)
	}
	for _, row := range rows {
		for i := 0; i < len(row) && i < len(widths); i++ {
			widths[i] = max(widths[i], c.width(row[i]))
		}
	}

	var sb strings.Builder
	separator := c.separator(widths)
	sb.WriteString(separator)
	sb.WriteString(c.formatRow(widths, columns))
	sb.WriteString(separator)
	for _, row := range rows {
		sb.WriteString(c.formatRow(widths, row))
	}
	sb.WriteString(separator)
	return sb.String()
}

func (c *Reporter) width(s string) int {
	return min(utf8.RuneCountInString(s), c.config.MaxColumnWidth)
}

func (c *Reporter) separator(widths []int) string {
	var sb strings.Builder
	sb.WriteString("+")
	for _, w := range widths {
		sb.WriteString(strings.Repeat("-", w+2*c.config.Padding))
		sb.WriteString("+")
	}
	sb.WriteString("\n")
	return sb.String()
}

func (c *Reporter) formatRow(widths []int, cells []string) string {
	pad := strings.Repeat(" ", c.config.Padding)
	var sb strings.Builder
	sb.WriteString("|")
	for i, w := range widths {
		cell := ""
		if i < len(cells) {
			cell = truncate(cells[i], w)
		}
		sb.WriteString(pad)
		sb.WriteString(cell)
		sb.WriteString(strings.Repeat(" ", w-utf8.RuneCountInString(cell)))
		sb.WriteString(pad)
		sb.WriteString("|")
	}
	sb.WriteString("\n")
	return sb.String()
}

func truncate(s string, width int) string {
	if utf8.RuneCountInString(s) <= width {
		return s
	}
	runes := []rune(s)
	if width <= 3 {
		return string(runes[:width])
	}
	return string(runes[:width-3]) + "..."
}
