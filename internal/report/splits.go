package report

import (
	"strconv"

	"rally_timecomp/internal/rally"
	"rally_timecomp/internal/timing"
)

const (
	numberColumn     = 0
	splitStartColumn = 1
	splitGroupWidth  = 3
	splitHeaderRow   = 0
	splitDriverRow   = 1
)

// splitSheet is transposed against the overview: one row per crew and a
// group of three columns (time, sector delta, cumulative delta) per split.
func splitSheet(idx int, stage rally.Stage, driver *rally.Entry, bench []*rally.Entry) *Sheet {
	s := &Sheet{Name: SplitSheetName(idx, stage)}
	s.width(numberColumn, 10)

	points := stage.SplitsWithFinish()
	sectorLengths := stage.SectorLengths()

	s.set(splitHeaderRow, numberColumn, "Number", StyleHeading)
	for g, distance := range points {
		col := splitColumn(g)
		s.set(splitHeaderRow, col, distance, StyleSplitDistance)
		s.set(splitHeaderRow, col+1, diffLabel, StyleHeading)
		s.set(splitHeaderRow, col+2, cumulativeLabel, StyleHeading)
	}

	driverSplits := driver.SplitsWithFinish(idx, stage)
	driverSectors := rally.SectorsWithFinish(driverSplits)
	writeSplitTimes(s, splitDriverRow, idx, driver, driverSplits)

	for i, b := range bench {
		row := splitDriverRow + 1 + i
		splits := b.SplitsWithFinish(idx, stage)
		sectors := rally.SectorsWithFinish(splits)
		writeSplitTimes(s, row, idx, b, splits)

		for g := range points {
			if !driverSplits[g].Valid() || !splits[g].Valid() {
				continue
			}
			col := splitColumn(g)
			if sectorLengths[g] > 0 {
				d := timing.DiffPerMile(driverSectors[g], sectors[g], sectorLengths[g])
				s.set(row, col+1, d.String(), ClassifyDelta(d))
			}
			if points[g] > 0 {
				d := timing.DiffPerMile(driverSplits[g], splits[g], points[g])
				s.set(row, col+2, d.String(), ClassifyDelta(d))
			}
		}
	}
	return s
}

func writeSplitTimes(s *Sheet, row, idx int, e *rally.Entry, splits []timing.StageTime) {
	s.set(row, numberColumn, strconv.Itoa(e.Number), StyleHeading)
	for g, t := range splits {
		s.set(row, splitColumn(g), t.String(),
			Classify(t, timing.StageTime{}, timing.StageTime{}, e.SuperRally(idx)))
	}
}

func splitColumn(g int) int {
	return splitStartColumn + g*splitGroupWidth
}
