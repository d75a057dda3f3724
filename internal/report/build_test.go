//nolint:funlen // ok for tests
package report

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rally_timecomp/internal/rally"
	"rally_timecomp/internal/timing"
)

func times(ss ...string) []timing.StageTime {
	out := make([]timing.StageTime, len(ss))
	for i, s := range ss {
		out[i] = timing.MustParse(s)
	}
	return out
}

var sampleIDs = rally.Identities{
	100: {UID: 100, First: "Ada", Last: "Lovelace"},
	101: {UID: 101, First: "Charles", Last: "Babbage"},
	200: {UID: 200, First: "Grace", Last: "Hopper"},
	201: {UID: 201, First: "Alan", Last: "Turing"},
	300: {UID: 300, First: "Edsger", Last: "Dijkstra"},
}

func sampleRally() *rally.Rally {
	return &rally.Rally{
		Title: "Ojibwe Forests Rally",
		Slug:  "ojibwe_forests_rally",
		Stages: []rally.Stage{
			{Name: "Alpha", Length: 10},
			{Name: "Bravo", Length: 6, Splits: []float64{2}},
			{Name: "Charlie", Length: 4},
		},
		Entries: []*rally.Entry{
			{
				Number: 107, Class: rally.ClassO4WD, Category: rally.CategoryNational,
				DriverUID: 100, CodriverUID: 101,
				Times:  times("1:05.0", "5:00.0", ""),
				Colors: []rally.BoxColor{rally.BoxNone, rally.BoxNone, rally.BoxNone},
				Splits: [][]timing.StageTime{nil, times("1:40.0"), nil},
			},
			{
				Number: 1, Class: rally.ClassO4WD, Category: rally.CategoryNational,
				DriverUID: 200, CodriverUID: 201,
				Times:  times("1:00.0", "5:30.0", "3:00.0"),
				Colors: []rally.BoxColor{rally.BoxNone, rally.BoxNone, rally.BoxRed},
				Splits: [][]timing.StageTime{nil, times("1:50.0"), nil},
			},
			{
				Number: 135, Class: rally.ClassO4WD, Category: rally.CategoryRegional,
				DriverUID: 300, CodriverUID: 999,
				Times:  times("1:10.0", "4:50.0", "2:50.0"),
				Colors: []rally.BoxColor{rally.BoxNone, rally.BoxNone, rally.BoxNone},
			},
			{
				Number: 5, Class: rally.ClassL2WD, Category: rally.CategoryNational,
				Times: times("0:50.0", "4:00.0", "2:00.0"),
			},
		},
	}
}

func cellValue(t *testing.T, s *Sheet, row, col int) any {
	t.Helper()
	c, ok := s.Cell(row, col)
	require.True(t, ok, "no cell at %d,%d in %s", row, col, s.Name)
	return c.Value
}

func cellStyle(t *testing.T, s *Sheet, row, col int) StyleIntent {
	t.Helper()
	c, ok := s.Cell(row, col)
	require.True(t, ok, "no cell at %d,%d in %s", row, col, s.Name)
	return c.Style
}

func TestBuildSpreadsheet_unknownDriver(t *testing.T) {
	wb, err := BuildSpreadsheet(sampleRally(), sampleIDs, 42, []int{1})
	assert.Nil(t, wb)

	var ude *UnknownDriverError
	require.True(t, errors.As(err, &ude))
	assert.Equal(t, "Ojibwe Forests Rally", ude.Rally)
	assert.Equal(t, 42, ude.Number)
	assert.Contains(t, err.Error(), "Ojibwe Forests Rally")
	assert.Contains(t, err.Error(), "42")
}

func TestBuildSpreadsheet_sheets(t *testing.T) {
	wb, err := BuildSpreadsheet(sampleRally(), sampleIDs, 107, []int{1, 135})
	require.NoError(t, err)

	names := make([]string, 0, len(wb.Sheets))
	for _, s := range wb.Sheets {
		names = append(names, s.Name)
	}
	assert.Equal(t, []string{"ojibwe_forests_rally", "SS2 Bravo"}, names)
}

func TestBuildSpreadsheet_noSplitSheets(t *testing.T) {
	r := sampleRally()
	r.Stages[1].Splits = nil
	wb, err := BuildSpreadsheet(r, sampleIDs, 107, nil)
	require.NoError(t, err)
	assert.Len(t, wb.Sheets, 1)
}

func TestBuildSpreadsheet_overview(t *testing.T) {
	wb, err := BuildSpreadsheet(sampleRally(), sampleIDs, 107, []int{1, 135, 9999})
	require.NoError(t, err)
	s := wb.Sheets[0]

	// header rows
	assert.Equal(t, "Ojibwe Forests Rally", cellValue(t, s, 0, 0))
	assert.Equal(t, StyleTitle, cellStyle(t, s, 0, 0))
	assert.Equal(t, "Lovelace/Babbage", cellValue(t, s, 0, 2))
	assert.Equal(t, "Hopper/Turing", cellValue(t, s, 0, 4))
	assert.Equal(t, "Dijkstra/#999", cellValue(t, s, 0, 6))
	assert.Equal(t, []Merge{
		{FirstRow: 0, FirstCol: 4, LastRow: 0, LastCol: 5},
		{FirstRow: 0, FirstCol: 6, LastRow: 0, LastCol: 7},
	}, s.Merges, "missing benchmark 9999 gets no columns")

	for col, want := range map[int]string{0: "Stage Name", 1: "Length", 2: "107", 4: "1", 5: "Diff s/mi", 6: "135", 7: "Diff s/mi"} {
		assert.Equal(t, want, cellValue(t, s, 1, col))
		assert.Equal(t, StyleHeading, cellStyle(t, s, 1, col))
	}
	_, ok := s.Cell(1, 8)
	assert.False(t, ok)

	// stage Alpha: 107 1:05.0, #1 1:00.0 (class and category winner), #135 1:10.0
	assert.Equal(t, "Alpha", cellValue(t, s, 2, 0))
	assert.Equal(t, 10.0, cellValue(t, s, 2, 1))
	assert.Equal(t, StyleStageLength, cellStyle(t, s, 2, 1))
	assert.Equal(t, "01:05.00", cellValue(t, s, 2, 2))
	assert.Equal(t, StylePlain, cellStyle(t, s, 2, 2))
	assert.Equal(t, "01:00.00", cellValue(t, s, 2, 4))
	assert.Equal(t, StyleOverallWin, cellStyle(t, s, 2, 4), "L2WD #5 is faster but another class")
	assert.Equal(t, "-0.50", cellValue(t, s, 2, 5))
	assert.Equal(t, StyleDeltaSlower, cellStyle(t, s, 2, 5))
	assert.Equal(t, "0.50", cellValue(t, s, 2, 7))
	assert.Equal(t, StyleDeltaFaster, cellStyle(t, s, 2, 7))

	// stage Bravo: #135 is the class winner, 107 wins the National category
	assert.Equal(t, StyleOverallWin, cellStyle(t, s, 3, 6))
	assert.Equal(t, StyleClassWin, cellStyle(t, s, 3, 2))
	assert.Equal(t, StylePlain, cellStyle(t, s, 3, 4))

	// stage Charlie: 107 has no time, #1 is flagged red
	assert.Equal(t, "00.00", cellValue(t, s, 4, 2))
	assert.Equal(t, StyleInvalidTime, cellStyle(t, s, 4, 2))
	assert.Equal(t, StyleSuperRally, cellStyle(t, s, 4, 4))
	assert.Equal(t, StyleOverallWin, cellStyle(t, s, 4, 6))
	_, ok = s.Cell(4, 5)
	assert.False(t, ok, "no delta against an invalid focal time")
	_, ok = s.Cell(4, 7)
	assert.False(t, ok)

	assert.Equal(t, []ColumnWidth{{Col: 0, Width: 18}, {Col: 1, Width: 8}}, s.Widths)
}

func TestBuildSpreadsheet_splitSheet(t *testing.T) {
	wb, err := BuildSpreadsheet(sampleRally(), sampleIDs, 107, []int{1, 135})
	require.NoError(t, err)
	s, ok := wb.Sheet("SS2 Bravo")
	require.True(t, ok)

	// 107: split 1:40 finish 5:00; #1: split 1:50 finish 5:30; #135: no split, finish 4:50
	want := []Cell{
		{Row: 0, Col: 0, Value: "Number", Style: StyleHeading},
		{Row: 0, Col: 1, Value: 2.0, Style: StyleSplitDistance},
		{Row: 0, Col: 2, Value: "Diff s/mi", Style: StyleHeading},
		{Row: 0, Col: 3, Value: "Cumulative s/mi", Style: StyleHeading},
		{Row: 0, Col: 4, Value: 6.0, Style: StyleSplitDistance},
		{Row: 0, Col: 5, Value: "Diff s/mi", Style: StyleHeading},
		{Row: 0, Col: 6, Value: "Cumulative s/mi", Style: StyleHeading},

		{Row: 1, Col: 0, Value: "107", Style: StyleHeading},
		{Row: 1, Col: 1, Value: "01:40.00", Style: StylePlain},
		{Row: 1, Col: 4, Value: "05:00.00", Style: StylePlain},

		{Row: 2, Col: 0, Value: "1", Style: StyleHeading},
		{Row: 2, Col: 1, Value: "01:50.00", Style: StylePlain},
		{Row: 2, Col: 4, Value: "05:30.00", Style: StylePlain},
		// sector 1: 100s vs 110s over 2mi; cumulative identical
		{Row: 2, Col: 2, Value: "5.00", Style: StyleDeltaFaster},
		{Row: 2, Col: 3, Value: "5.00", Style: StyleDeltaFaster},
		// sector 2: 200s vs 220s over 4mi; cumulative 300s vs 330s over 6mi
		{Row: 2, Col: 5, Value: "5.00", Style: StyleDeltaFaster},
		{Row: 2, Col: 6, Value: "5.00", Style: StyleDeltaFaster},

		{Row: 3, Col: 0, Value: "135", Style: StyleHeading},
		{Row: 3, Col: 1, Value: "00.00", Style: StyleInvalidTime},
		{Row: 3, Col: 4, Value: "04:50.00", Style: StylePlain},
		// sector 2 of #135 spans the whole stage: 200s vs 290s over 4mi.
		// The missing first split leaves the running total in place, so the
		// sector covers two sectors but is divided by one sector length.
		// This pins the chosen missing-split behaviour, not a verified
		// timing rule.
		{Row: 3, Col: 5, Value: "22.50", Style: StyleDeltaFaster},
		// 300s vs 290s over 6mi
		{Row: 3, Col: 6, Value: "-1.67", Style: StyleDeltaSlower},
	}
	if diff := cmp.Diff(want, s.Cells); diff != "" {
		t.Errorf("split sheet mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildSpreadsheet_oneSplitTwoGroups(t *testing.T) {
	wb, err := BuildSpreadsheet(sampleRally(), sampleIDs, 107, nil)
	require.NoError(t, err)
	require.Len(t, wb.Sheets, 2)

	groups := 0
	for _, c := range wb.Sheets[1].Cells {
		if c.Row == 0 && c.Style == StyleSplitDistance {
			groups++
		}
	}
	assert.Equal(t, 2, groups)
}

func TestBuildSpreadsheet_reusedNumber(t *testing.T) {
	r := sampleRally()
	r.Entries = append(r.Entries, &rally.Entry{
		Number: 1, Class: rally.ClassRC2, DriverUID: 300, CodriverUID: 301,
		Times: times("2:00.0", "6:00.0", "4:00.0"),
	})
	wb, err := BuildSpreadsheet(r, sampleIDs, 107, []int{1})
	require.NoError(t, err)
	s := wb.Sheets[0]
	assert.Equal(t, "Dijkstra/#301", cellValue(t, s, 0, 4))
	assert.Len(t, s.Merges, 1)
}

func TestBuildSpreadsheet_zeroLengthStage(t *testing.T) {
	r := sampleRally()
	r.Stages[0].Length = 0
	wb, err := BuildSpreadsheet(r, sampleIDs, 107, []int{1})
	require.NoError(t, err)
	_, ok := wb.Sheets[0].Cell(2, 5)
	assert.False(t, ok)
}

func TestSplitSheetName(t *testing.T) {
	assert.Equal(t, "SS12 Lake Road", SplitSheetName(11, rally.Stage{Name: "Lake Road"}))
}
