package report

import (
	"strconv"

	"rally_timecomp/internal/rally"
	"rally_timecomp/internal/timing"
)

const (
	titleRow      = 0
	headerRow     = 1
	stageStartRow = 2

	stageNameColumn      = 0
	stageLengthColumn    = 1
	driverColumn         = 2
	benchmarkStartColumn = 4

	diffLabel       = "Diff s/mi"
	cumulativeLabel = "Cumulative s/mi"
)

// overviewSheet has one row per stage and a time/delta column pair per
// benchmark. Column 3 stays empty to separate the focal driver.
func overviewSheet(r *rally.Rally, ids rally.IdentityLookup, driver *rally.Entry, bench []*rally.Entry) *Sheet {
	s := &Sheet{Name: r.Slug}
	s.width(stageNameColumn, 18)
	s.width(stageLengthColumn, 8)

	s.set(titleRow, stageNameColumn, r.Title, StyleTitle)
	s.set(titleRow, driverColumn, rally.CrewLabel(ids, driver), StyleTitle)
	s.set(headerRow, stageNameColumn, "Stage Name", StyleHeading)
	s.set(headerRow, stageLengthColumn, "Length", StyleHeading)
	s.set(headerRow, driverColumn, strconv.Itoa(driver.Number), StyleHeading)

	for i, b := range bench {
		col := benchmarkColumn(i)
		s.merge(titleRow, col, col+1, rally.CrewLabel(ids, b), StyleTitle)
		s.set(headerRow, col, strconv.Itoa(b.Number), StyleHeading)
		s.set(headerRow, col+1, diffLabel, StyleHeading)
	}

	for idx, stage := range r.Stages {
		row := stageStartRow + idx
		s.set(row, stageNameColumn, stage.Name, StyleStageName)
		s.set(row, stageLengthColumn, stage.Length, StyleStageLength)

		win := r.StageWinners(idx, driver)
		driverTime := driver.Time(idx)
		s.set(row, driverColumn, driverTime.String(),
			Classify(driverTime, win.Overall, win.Category, driver.SuperRally(idx)))

		for i, b := range bench {
			col := benchmarkColumn(i)
			benchTime := b.Time(idx)
			s.set(row, col, benchTime.String(),
				Classify(benchTime, win.Overall, win.Category, b.SuperRally(idx)))

			if !deltaApplies(driverTime, benchTime, stage.Length) {
				continue
			}
			delta := timing.DiffPerMile(driverTime, benchTime, stage.Length)
			s.set(row, col+1, delta.String(), ClassifyDelta(delta))
		}
	}
	return s
}

func benchmarkColumn(i int) int {
	return benchmarkStartColumn + i*2
}

// deltaApplies guards DiffPerMile: both times recorded and a usable distance.
// Feeds occasionally carry zero length cancelled stages.
func deltaApplies(a, b timing.StageTime, distance float64) bool {
	return a.Valid() && b.Valid() && distance > 0
}
