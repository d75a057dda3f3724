package report

import (
	"fmt"

	"github.com/samber/lo"

	"rally_timecomp/internal/rally"
)

// UnknownDriverError is returned when the focal number did not race the
// rally.
type UnknownDriverError struct {
	Rally  string
	Number int
}

func (e *UnknownDriverError) Error() string {
	return fmt.Sprintf("driver #%d not in rally %q", e.Number, e.Rally)
}

// BuildSpreadsheet compares the entry racing under focal against the
// entries racing under the benchmark numbers. Benchmark numbers that are not
// in the rally are left out of the report. The first sheet is the overview,
// followed by one split sheet per stage with intermediate timing.
func BuildSpreadsheet(
	r *rally.Rally,
	ids rally.IdentityLookup,
	focal int,
	benchmarks []int,
) (*Workbook, error) {
	driver, ok := r.EntryByNumber(focal)
	if !ok {
		return nil, &UnknownDriverError{Rally: r.Title, Number: focal}
	}
	bench := benchmarkEntries(r, benchmarks)

	wb := &Workbook{Sheets: []*Sheet{overviewSheet(r, ids, driver, bench)}}
	for idx, stage := range r.Stages {
		if !stage.HasSplits() {
			continue
		}
		wb.Sheets = append(wb.Sheets, splitSheet(idx, stage, driver, bench))
	}
	return wb, nil
}

// benchmarkEntries keeps rally order and the latest registration of a
// reused number.
func benchmarkEntries(r *rally.Rally, numbers []int) []*rally.Entry {
	return lo.Filter(r.Entries, func(e *rally.Entry, _ int) bool {
		if !lo.Contains(numbers, e.Number) {
			return false
		}
		latest, _ := r.EntryByNumber(e.Number)
		return latest == e
	})
}

// SplitSheetName is the sheet name used for stage index idx.
func SplitSheetName(idx int, stage rally.Stage) string {
	return fmt.Sprintf("SS%d %s", idx+1, stage.Name)
}
