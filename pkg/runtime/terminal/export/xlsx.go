package export

import (
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"

	"github.com/de-tools/fmcg-atlas/pkg/models/domain"
)

const defaultSheet = "Sheet1"

// NewWorkbook lays out a report as a workbook with one sheet per section.
// The caller owns the returned file and must Close it.
func NewWorkbook(report *domain.Report) (*excelize.File, error) {
	tables := Tables(report)
	names := sheetNames(tables)

	f := excelize.NewFile()
	header, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	for i, t := range tables {
		if i == 0 {
			err = f.SetSheetName(defaultSheet, names[i])
		} else {
			_, err = f.NewSheet(names[i])
		}
		if err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("failed to create sheet %q: %w", names[i], err)
		}
		if err := writeSheet(f, names[i], t, header); err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("failed to write sheet %q: %w", names[i], err)
		}
	}
	f.SetActiveSheet(0)
	return f, nil
}

// WriteXLSX streams the workbook for report to w.
func WriteXLSX(w io.Writer, report *domain.Report) error {
	f, err := NewWorkbook(report)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

// SaveXLSX writes the workbook for report to path.
func SaveXLSX(path string, report *domain.Report) error {
	f, err := NewWorkbook(report)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save %s: %w", path, err)
	}
	return nil
}

func writeSheet(f *excelize.File, sheet string, t Table, headerStyle int) error {
	widths := make([]int, len(t.Header))
	rows := append([][]string{t.Header}, t.Rows...)

	for r, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, r+1)
		if err != nil {
			return err
		}
		values := make([]interface{}, len(row))
		for c, v := range row {
			values[c] = v
			if c < len(widths) {
				widths[c] = max(widths[c], utf8.RuneCountInString(v))
			}
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return err
		}
	}

	if len(t.Header) == 0 {
		return nil
	}
	last, err := excelize.CoordinatesToCellName(len(t.Header), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", last, headerStyle); err != nil {
		return err
	}
	for c, w := range widths {
		col, err := excelize.ColumnNumberToName(c + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(sheet, col, col, float64(min(w, 60)+2)); err != nil {
			return err
		}
	}
	return nil
}
