// Package xlsx renders a report workbook with excelize.
package xlsx

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"rally_timecomp/internal/report"
)

const defaultSheet = "Sheet1"

// WriteError wraps any failure reported by excelize together with the sheet
// and cell being written.
type WriteError struct {
	Sheet string
	Cell  string
	Err   error
}

func (e *WriteError) Error() string {
	if e.Cell == "" {
		return fmt.Sprintf("sheet %q: %v", e.Sheet, e.Err)
	}
	return fmt.Sprintf("sheet %q cell %s: %v", e.Sheet, e.Cell, e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}

// Render builds an excelize file for wb. The caller closes the file.
func Render(wb *report.Workbook) (*excelize.File, error) {
	protocol := excelize.NewFile()
	styles, err := newStyleTable(protocol)
	if err != nil {
		protocol.Close()
		return nil, err
	}

	for i, sheet := range wb.Sheets {
		if i == 0 {
			err = protocol.SetSheetName(defaultSheet, sheet.Name)
		} else {
			_, err = protocol.NewSheet(sheet.Name)
		}
		if err != nil {
			protocol.Close()
			return nil, &WriteError{Sheet: sheet.Name, Err: err}
		}
		if err := writeSheet(protocol, sheet, styles); err != nil {
			protocol.Close()
			return nil, err
		}
	}
	protocol.SetActiveSheet(0)
	return protocol, nil
}

// Write renders wb and streams it to w.
func Write(w io.Writer, wb *report.Workbook) error {
	protocol, err := Render(wb)
	if err != nil {
		return err
	}
	defer protocol.Close()
	if err := protocol.Write(w); err != nil {
		return &WriteError{Err: err}
	}
	return nil
}

// Save renders wb into the file at path.
func Save(path string, wb *report.Workbook) error {
	protocol, err := Render(wb)
	if err != nil {
		return err
	}
	defer protocol.Close()
	if err := protocol.SaveAs(path); err != nil {
		return &WriteError{Err: err}
	}
	return nil
}

func writeSheet(protocol *excelize.File, sheet *report.Sheet, styles styleTable) error {
	for _, w := range sheet.Widths {
		col, err := excelize.ColumnNumberToName(w.Col + 1)
		if err != nil {
			return &WriteError{Sheet: sheet.Name, Err: err}
		}
		if err := protocol.SetColWidth(sheet.Name, col, col, w.Width); err != nil {
			return &WriteError{Sheet: sheet.Name, Err: err}
		}
	}
	for _, c := range sheet.Cells {
		if err := addStyledCell(protocol, sheet.Name, c, styles[c.Style]); err != nil {
			return err
		}
	}
	for _, m := range sheet.Merges {
		from, err := excelize.CoordinatesToCellName(m.FirstCol+1, m.FirstRow+1)
		if err != nil {
			return &WriteError{Sheet: sheet.Name, Err: err}
		}
		to, err := excelize.CoordinatesToCellName(m.LastCol+1, m.LastRow+1)
		if err != nil {
			return &WriteError{Sheet: sheet.Name, Err: err}
		}
		if err := protocol.MergeCell(sheet.Name, from, to); err != nil {
			return &WriteError{Sheet: sheet.Name, Cell: from, Err: err}
		}
	}
	return nil
}

func addStyledCell(protocol *excelize.File, sheet string, c report.Cell, style int) error {
	cell, err := excelize.CoordinatesToCellName(c.Col+1, c.Row+1)
	if err != nil {
		return &WriteError{Sheet: sheet, Err: err}
	}
	if err := protocol.SetCellValue(sheet, cell, c.Value); err != nil {
		return &WriteError{Sheet: sheet, Cell: cell, Err: err}
	}
	if err := protocol.SetCellStyle(sheet, cell, cell, style); err != nil {
		return &WriteError{Sheet: sheet, Cell: cell, Err: err}
	}
	return nil
}
