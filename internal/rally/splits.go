package rally

import "rally_timecomp/internal/timing"

// SplitsWithFinish returns the split distances followed by the stage length.
func (s Stage) SplitsWithFinish() []float64 {
	out := make([]float64, 0, len(s.Splits)+1)
	out = append(out, s.Splits...)
	return append(out, s.Length)
}

// SectorLengths returns the distance covered between consecutive split
// points, finish included.
func (s Stage) SectorLengths() []float64 {
	points := s.SplitsWithFinish()
	out := make([]float64, len(points))
	prev := 0.0
	for i, p := range points {
		out[i] = p - prev
		prev = p
	}
	return out
}

// SplitsWithFinish returns the entry's cumulative split times on stage index
// idx of st with the finish time appended. The result always has one
// element per split point of st; splits that were not recorded are zero.
func (e *Entry) SplitsWithFinish(idx int, st Stage) []timing.StageTime {
	out := make([]timing.StageTime, len(st.Splits), len(st.Splits)+1)
	if idx >= 0 && idx < len(e.Splits) {
		copy(out, e.Splits[idx])
	}
	return append(out, e.Time(idx))
}

// SectorsWithFinish converts cumulative split times into per-sector times.
// Zero entries pass through unchanged. The running total is advanced by
// every derived sector, so a missing split leaves it where it was and the
// next valid sector spans back to the last recorded split.
func SectorsWithFinish(cumulative []timing.StageTime) []timing.StageTime {
	out := make([]timing.StageTime, len(cumulative))
	var previous timing.StageTime
	for i, c := range cumulative {
		sector := c
		if c.Valid() {
			sector = c.Sub(previous)
		}
		out[i] = sector
		previous = previous.Add(sector)
	}
	return out
}
