package rally

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rally_timecomp/internal/timing"
)

func times(ss ...string) []timing.StageTime {
	out := make([]timing.StageTime, len(ss))
	for i, s := range ss {
		out[i] = timing.MustParse(s)
	}
	return out
}

func sampleRally() *Rally {
	return &Rally{
		Title: "Sample Forest Rally",
		Slug:  "sample_forest_rally",
		Stages: []Stage{
			{Name: "Alpha", Length: 10},
			{Name: "Bravo", Length: 5.5, Splits: []float64{2, 4}},
		},
		Entries: []*Entry{
			{Number: 1, Class: ClassO4WD, Category: CategoryNational, Times: times("5:00.0", "3:00.0")},
			{Number: 2, Class: ClassO4WD, Category: CategoryRegional, Times: times("4:50.0", "")},
			{Number: 3, Class: ClassL4WD, Category: CategoryNational, Times: times("4:00.0", "2:00.0")},
			{Number: 4, Class: ClassO4WD, Category: CategoryNational, Times: times("4:55.0", "3:10.0")},
		},
	}
}

func TestRally_StageWinners(t *testing.T) {
	r := sampleRally()
	focal, ok := r.EntryByNumber(1)
	require.True(t, ok)

	w := r.StageWinners(0, focal)
	assert.Equal(t, timing.MustParse("4:50.0"), w.Overall, "class O4WD across categories")
	assert.Equal(t, timing.MustParse("4:55.0"), w.Category, "O4WD National only")

	w = r.StageWinners(1, focal)
	assert.Equal(t, timing.MustParse("3:00.0"), w.Overall, "invalid time of #2 is ignored")
	assert.Equal(t, timing.MustParse("3:00.0"), w.Category)
}

func TestRally_StageWinners_boundsEveryClassTime(t *testing.T) {
	r := sampleRally()
	focal, _ := r.EntryByNumber(4)
	for idx := range r.Stages {
		w := r.StageWinners(idx, focal)
		for _, e := range r.Entries {
			if e.Class != focal.Class || !e.Times[idx].Valid() {
				continue
			}
			assert.LessOrEqual(t, w.Overall.Compare(e.Times[idx]), 0)
		}
	}
}

func TestRally_StageWinners_none(t *testing.T) {
	r := &Rally{
		Stages: []Stage{{Name: "Alpha", Length: 3}},
		Entries: []*Entry{
			{Number: 7, Class: ClassRC2, Times: times("")},
			{Number: 8, Class: ClassRC2, Times: times("")},
			{Number: 9, Class: ClassO2WD, Times: times("3:00.0")},
		},
	}
	w := r.StageWinners(0, r.Entries[0])
	assert.False(t, w.Overall.Valid())
	assert.False(t, w.Category.Valid())
}

func TestRally_EntryByNumber(t *testing.T) {
	r := sampleRally()
	r.Entries = append(r.Entries, &Entry{Number: 2, Class: ClassRC2, Times: times("6:00.0", "4:00.0")})

	e, ok := r.EntryByNumber(2)
	require.True(t, ok)
	assert.Equal(t, ClassRC2, e.Class, "latest registration wins")

	_, ok = r.EntryByNumber(99)
	assert.False(t, ok)
}

func TestNormalizeClass(t *testing.T) {
	assert.Equal(t, ClassX, NormalizeClass("Class-X"))
	assert.Equal(t, ClassX, NormalizeClass("Class X"))
	assert.Equal(t, ClassO4WD, NormalizeClass("O4WD"))
	assert.Equal(t, Class("Vintage"), NormalizeClass("Vintage"))
}

func TestCrewLabel(t *testing.T) {
	ids := Identities{
		10: {UID: 10, First: "Ken", Last: "Block"},
		11: {UID: 11, First: "Alex", Last: "Gelsomino"},
	}
	assert.Equal(t, "Block/Gelsomino", CrewLabel(ids, &Entry{DriverUID: 10, CodriverUID: 11}))
	assert.Equal(t, "Block/#12", CrewLabel(ids, &Entry{DriverUID: 10, CodriverUID: 12}))
	assert.Equal(t, "#1/#2", CrewLabel(nil, &Entry{DriverUID: 1, CodriverUID: 2}))
	assert.Equal(t, "Ken Block", ids[10].FullName())
}

func TestEntry_SuperRally(t *testing.T) {
	e := &Entry{Colors: []BoxColor{BoxNone, BoxRed}}
	assert.False(t, e.SuperRally(0))
	assert.True(t, e.SuperRally(1))
	assert.False(t, e.SuperRally(5))
}
