package rally

import (
	"github.com/samber/lo"

	"rally_timecomp/internal/timing"
)

// StageWinners holds the fastest valid times on one stage. A zero time means
// nobody in the group set a valid time.
type StageWinners struct {
	Overall  timing.StageTime // fastest in the class
	Category timing.StageTime // fastest in the class and category
}

// StageWinners computes the winners of stage idx for the class and category
// of e.
func (r *Rally) StageWinners(idx int, e *Entry) StageWinners {
	inClass := lo.Filter(r.Entries, func(x *Entry, _ int) bool {
		return x.Class == e.Class
	})
	inCategory := lo.Filter(inClass, func(x *Entry, _ int) bool {
		return x.Category == e.Category
	})
	return StageWinners{
		Overall:  fastest(inClass, idx),
		Category: fastest(inCategory, idx),
	}
}

func fastest(entries []*Entry, idx int) timing.StageTime {
	valid := lo.Filter(lo.Map(entries, func(x *Entry, _ int) timing.StageTime {
		return x.Time(idx)
	}), func(t timing.StageTime, _ int) bool {
		return t.Valid()
	})
	if len(valid) == 0 {
		return timing.StageTime{}
	}
	return lo.MinBy(valid, func(a, b timing.StageTime) bool { return a.Less(b) })
}
