// Package feed loads rally results and identities from the published JSON
// files.
package feed

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"rally_timecomp/internal/rally"
	"rally_timecomp/internal/timing"
)

type rawRally struct {
	Source     string     `json:"source"`
	StartDate  string     `json:"startDate"`
	FinishDate string     `json:"finishDate"`
	Title      string     `json:"title"`
	Slug       string     `json:"slug"`
	Entries    []rawEntry `json:"entries"`
	Stages     []rawStage `json:"stages"`
}

type rawEntry struct {
	Category    string          `json:"category"`
	Number      int             `json:"number"`
	DriverUID   int             `json:"driverUID"`
	CodriverUID int             `json:"codriverUID"`
	CarClass    string          `json:"carClass"`
	CarModel    string          `json:"carModel"`
	Times       []string        `json:"times"`
	Colors      []string        `json:"colors"`
	Splits      [][]string      `json:"splits"`
	Retirements []rawRetirement `json:"retirements"`
}

type rawRetirement struct {
	Control string `json:"control"`
	Stage   int    `json:"stage"`
	Status  string `json:"status"`
	Reason  string `json:"reason"`
}

type rawStage struct {
	Name   string    `json:"name"`
	Length float64   `json:"length"`
	Splits []float64 `json:"splits"`
}

type rawIdentity struct {
	UID   json.Number `json:"uid"`
	First string      `json:"f"`
	Last  string      `json:"l"`
}

// ShapeError reports a per-stage array whose length does not match the
// stage count of its rally.
type ShapeError struct {
	Rally string
	Entry int
	Field string
	Got   int
	Want  int
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("rally %q: entry #%d: %s has %d slots, want %d",
		e.Rally, e.Entry, e.Field, e.Got, e.Want)
}

// DecodeRallies reads a season file: either a JSON array of rallies or an
// archive object {"archive": [...]}.
func DecodeRallies(r io.Reader) ([]*rally.Rally, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	var raws []rawRally
	switch trimmed := bytes.TrimSpace(data); {
	case len(trimmed) == 0:
		return nil, fmt.Errorf("empty season file")
	case trimmed[0] == '{':
		var archive struct {
			Archive []rawRally `json:"archive"`
		}
		if err := json.Unmarshal(trimmed, &archive); err != nil {
			return nil, fmt.Errorf("decode archive: %w", err)
		}
		raws = archive.Archive
	default:
		if err := json.Unmarshal(trimmed, &raws); err != nil {
			return nil, fmt.Errorf("decode rallies: %w", err)
		}
	}

	rallies := make([]*rally.Rally, 0, len(raws))
	for i := range raws {
		r, err := convertRally(&raws[i])
		if err != nil {
			return nil, err
		}
		rallies = append(rallies, r)
	}
	return rallies, nil
}

// DecodeIdentities reads a uid file. Uids may be numbers or numeric strings.
func DecodeIdentities(r io.Reader) (rally.Identities, error) {
	var raws []rawIdentity
	if err := json.NewDecoder(r).Decode(&raws); err != nil {
		return nil, fmt.Errorf("decode identities: %w", err)
	}
	ids := make(rally.Identities, len(raws))
	for _, raw := range raws {
		uid, err := raw.UID.Int64()
		if err != nil {
			return nil, fmt.Errorf("identity %q %q: uid %q: %w", raw.First, raw.Last, raw.UID, err)
		}
		ids[int(uid)] = rally.Identity{UID: int(uid), First: raw.First, Last: raw.Last}
	}
	return ids, nil
}

func convertRally(raw *rawRally) (*rally.Rally, error) {
	r := &rally.Rally{
		Source:     raw.Source,
		StartDate:  raw.StartDate,
		FinishDate: raw.FinishDate,
		Title:      raw.Title,
		Slug:       raw.Slug,
		Stages:     make([]rally.Stage, 0, len(raw.Stages)),
		Entries:    make([]*rally.Entry, 0, len(raw.Entries)),
	}
	for _, s := range raw.Stages {
		if err := checkSplitDistances(s); err != nil {
			return nil, fmt.Errorf("rally %q: %w", raw.Slug, err)
		}
		r.Stages = append(r.Stages, rally.Stage{Name: s.Name, Length: s.Length, Splits: s.Splits})
	}
	for _, e := range raw.Entries {
		entry, err := convertEntry(raw.Slug, e, r.Stages)
		if err != nil {
			return nil, err
		}
		r.Entries = append(r.Entries, entry)
	}
	return r, nil
}

func checkSplitDistances(s rawStage) error {
	prev := 0.0
	for _, d := range s.Splits {
		if d <= prev || d >= s.Length {
			return fmt.Errorf("stage %q: split distances %v must increase and stay below length %v",
				s.Name, s.Splits, s.Length)
		}
		prev = d
	}
	return nil
}

func convertEntry(slug string, raw rawEntry, stages []rally.Stage) (*rally.Entry, error) {
	n := len(stages)
	if len(raw.Times) != n {
		return nil, &ShapeError{Rally: slug, Entry: raw.Number, Field: "times", Got: len(raw.Times), Want: n}
	}
	if len(raw.Colors) > n {
		return nil, &ShapeError{Rally: slug, Entry: raw.Number, Field: "colors", Got: len(raw.Colors), Want: n}
	}
	if len(raw.Splits) > n {
		return nil, &ShapeError{Rally: slug, Entry: raw.Number, Field: "splits", Got: len(raw.Splits), Want: n}
	}

	e := &rally.Entry{
		Number:      raw.Number,
		Category:    rally.Category(raw.Category),
		Class:       rally.NormalizeClass(raw.CarClass),
		DriverUID:   raw.DriverUID,
		CodriverUID: raw.CodriverUID,
		CarModel:    raw.CarModel,
		Times:       make([]timing.StageTime, n),
		Colors:      make([]rally.BoxColor, n),
		Splits:      make([][]timing.StageTime, n),
	}
	for i, s := range raw.Times {
		t, err := timing.ParseStageTime(s)
		if err != nil {
			return nil, fmt.Errorf("rally %q: entry #%d: times[%d]: %w", slug, raw.Number, i, err)
		}
		e.Times[i] = t
	}
	for i, c := range raw.Colors {
		e.Colors[i] = rally.BoxColor(c)
	}
	for i, splits := range raw.Splits {
		if len(splits) == 0 {
			continue
		}
		if len(splits) != len(stages[i].Splits) {
			return nil, &ShapeError{
				Rally: slug, Entry: raw.Number, Field: fmt.Sprintf("splits[%d]", i),
				Got: len(splits), Want: len(stages[i].Splits),
			}
		}
		e.Splits[i] = make([]timing.StageTime, len(splits))
		for j, s := range splits {
			t, err := timing.ParseStageTime(s)
			if err != nil {
				return nil, fmt.Errorf("rally %q: entry #%d: splits[%d][%d]: %w", slug, raw.Number, i, j, err)
			}
			e.Splits[i][j] = t
		}
	}
	for _, r := range raw.Retirements {
		e.Retirements = append(e.Retirements, rally.Retirement{
			Control: r.Control,
			Stage:   r.Stage,
			Status:  rally.RetirementStatus(r.Status),
			Reason:  r.Reason,
		})
	}
	return e, nil
}
