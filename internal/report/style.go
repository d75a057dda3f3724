package report

import "rally_timecomp/internal/timing"

// StyleIntent names the formatting a cell should get. The renderer maps
// each intent onto a distinct visual style.
type StyleIntent int

const (
	StylePlain StyleIntent = iota
	StyleTitle
	StyleHeading
	StyleStageName
	StyleStageLength
	StyleSplitDistance
	StyleInvalidTime
	StyleOverallWin
	StyleClassWin
	StyleSuperRally
	StyleDeltaNeutral
	StyleDeltaFaster
	StyleDeltaSlower
)

var styleNames = map[StyleIntent]string{
	StylePlain:         "plain",
	StyleTitle:         "title",
	StyleHeading:       "heading",
	StyleStageName:     "stage-name",
	StyleStageLength:   "stage-length",
	StyleSplitDistance: "split-distance",
	StyleInvalidTime:   "invalid-time",
	StyleOverallWin:    "overall-win",
	StyleClassWin:      "class-win",
	StyleSuperRally:    "super-rally",
	StyleDeltaNeutral:  "delta-neutral",
	StyleDeltaFaster:   "delta-faster",
	StyleDeltaSlower:   "delta-slower",
}

func (s StyleIntent) String() string {
	if n, ok := styleNames[s]; ok {
		return n
	}
	return "unknown"
}

// Intents lists every style intent in declaration order.
func Intents() []StyleIntent {
	out := make([]StyleIntent, 0, len(styleNames))
	for s := StylePlain; s <= StyleDeltaSlower; s++ {
		out = append(out, s)
	}
	return out
}

// Classify picks the style of a time cell. A zero overallWin or classWin
// means the group had no valid time. The first matching rule wins: super
// rally, invalid, overall class win, category class win, plain.
func Classify(t, overallWin, classWin timing.StageTime, superRally bool) StyleIntent {
	switch {
	case superRally:
		return StyleSuperRally
	case !t.Valid():
		return StyleInvalidTime
	case overallWin.Valid() && t == overallWin:
		return StyleOverallWin
	case classWin.Valid() && t == classWin:
		return StyleClassWin
	}
	return StylePlain
}

func ClassifyDelta(d timing.Delta) StyleIntent {
	switch d.Kind {
	case timing.DeltaFaster:
		return StyleDeltaFaster
	case timing.DeltaSlower:
		return StyleDeltaSlower
	}
	return StyleDeltaNeutral
}
