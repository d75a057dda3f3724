// Package rally is the read-only result model of a single event.
package rally

import (
	"fmt"
	"strings"

	"rally_timecomp/internal/timing"
)

type Category string

const (
	CategoryNational    Category = "National"
	CategoryRegional    Category = "Regional"
	CategoryRallySprint Category = "RallySprint"
	CategoryExhibition  Category = "Exhibition"
)

type Class string

const (
	ClassO4WD  Class = "O4WD"
	ClassL4WD  Class = "L4WD"
	ClassO2WD  Class = "O2WD"
	ClassL2WD  Class = "L2WD"
	ClassRC2   Class = "RC2"
	ClassNA4WD Class = "NA4WD"
	ClassX     Class = "ClassX"
)

// NormalizeClass maps the feed spellings of Class X onto ClassX.
// Other values are kept verbatim.
func NormalizeClass(s string) Class {
	switch s {
	case "Class-X", "Class X":
		return ClassX
	}
	return Class(s)
}

// BoxColor marks a stage result; red means the time was set under
// super-rally rules.
type BoxColor string

const (
	BoxNone BoxColor = ""
	BoxRed  BoxColor = "red"
)

type RetirementStatus string

const (
	RetirementPermanent RetirementStatus = "Permanent"
	RetirementTemporary RetirementStatus = "Temporary"
	RetirementRejoined  RetirementStatus = "Rejoined"
)

type Retirement struct {
	Control string
	Stage   int
	Status  RetirementStatus
	Reason  string
}

// Entry is one crew's timing record. Times, Colors and Splits hold one slot
// per stage; a nil Splits slot means no intermediate timing was recorded.
type Entry struct {
	Number      int
	Category    Category
	Class       Class
	DriverUID   int
	CodriverUID int
	CarModel    string
	Times       []timing.StageTime
	Colors      []BoxColor
	Splits      [][]timing.StageTime
	Retirements []Retirement
}

// SuperRally reports whether the entry's time on stage carries the red box.
func (e *Entry) SuperRally(stage int) bool {
	return stage < len(e.Colors) && e.Colors[stage] == BoxRed
}

// Time returns the finish time on stage, or the zero time when out of range.
func (e *Entry) Time(stage int) timing.StageTime {
	if stage < 0 || stage >= len(e.Times) {
		return timing.StageTime{}
	}
	return e.Times[stage]
}

// Stage is a timed section. Splits are intermediate distances from the start.
type Stage struct {
	Name   string
	Length float64
	Splits []float64
}

func (s Stage) HasSplits() bool {
	return len(s.Splits) > 0
}

type Rally struct {
	Source     string
	StartDate  string
	FinishDate string
	Title      string
	Slug       string
	Stages     []Stage
	Entries    []*Entry
}

// EntryByNumber finds the entry racing under number. When a number was
// registered more than once the latest registration wins.
func (r *Rally) EntryByNumber(number int) (*Entry, bool) {
	for i := len(r.Entries) - 1; i >= 0; i-- {
		if r.Entries[i].Number == number {
			return r.Entries[i], true
		}
	}
	return nil, false
}

// Identity is the person behind a uid.
type Identity struct {
	UID   int
	First string
	Last  string
}

func (i Identity) FullName() string {
	return strings.TrimSpace(i.First + " " + i.Last)
}

type IdentityLookup interface {
	Identity(uid int) (Identity, bool)
}

// Identities is a uid keyed IdentityLookup.
type Identities map[int]Identity

func (m Identities) Identity(uid int) (Identity, bool) {
	id, ok := m[uid]
	return id, ok
}

// CrewLabel renders "DriverLast/CodriverLast". Unknown uids render as "#uid".
func CrewLabel(ids IdentityLookup, e *Entry) string {
	return lastName(ids, e.DriverUID) + "/" + lastName(ids, e.CodriverUID)
}

func lastName(ids IdentityLookup, uid int) string {
	if ids != nil {
		if id, ok := ids.Identity(uid); ok && id.Last != "" {
			return id.Last
		}
	}
	return fmt.Sprintf("#%d", uid)
}
