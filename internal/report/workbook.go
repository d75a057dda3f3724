// Package report lays out the driver comparison workbook as plain values.
// Rendering to a file format is left to the caller.
package report

// Cell is a single write. Row and Col are zero based.
type Cell struct {
	Row   int
	Col   int
	Value any
	Style StyleIntent
}

// Merge spans the inclusive rectangle from (FirstRow, FirstCol) to
// (LastRow, LastCol).
type Merge struct {
	FirstRow, FirstCol int
	LastRow, LastCol   int
}

type ColumnWidth struct {
	Col   int
	Width float64
}

type Sheet struct {
	Name   string
	Cells  []Cell
	Merges []Merge
	Widths []ColumnWidth
}

type Workbook struct {
	Sheets []*Sheet
}

func (s *Sheet) set(row, col int, value any, style StyleIntent) {
	s.Cells = append(s.Cells, Cell{Row: row, Col: col, Value: value, Style: style})
}

func (s *Sheet) merge(row, firstCol, lastCol int, value any, style StyleIntent) {
	s.set(row, firstCol, value, style)
	s.Merges = append(s.Merges, Merge{FirstRow: row, FirstCol: firstCol, LastRow: row, LastCol: lastCol})
}

func (s *Sheet) width(col int, w float64) {
	s.Widths = append(s.Widths, ColumnWidth{Col: col, Width: w})
}

// Cell returns the last write to (row, col).
func (s *Sheet) Cell(row, col int) (Cell, bool) {
	for i := len(s.Cells) - 1; i >= 0; i-- {
		if c := s.Cells[i]; c.Row == row && c.Col == col {
			return c, true
		}
	}
	return Cell{}, false
}

// Sheet looks a sheet up by name.
func (w *Workbook) Sheet(name string) (*Sheet, bool) {
	for _, s := range w.Sheets {
		if s.Name == name {
			return s, true
		}
	}
	return nil, false
}
