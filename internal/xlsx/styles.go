package xlsx

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"rally_timecomp/internal/report"
)

// number format 2 is "0.00"
const twoDecimals = 2

type styleTable map[report.StyleIntent]int

func border(style int) []excelize.Border {
	return []excelize.Border{
		{Type: "left", Color: "000000", Style: style},
		{Type: "top", Color: "000000", Style: style},
		{Type: "right", Color: "000000", Style: style},
		{Type: "bottom", Color: "000000", Style: style},
	}
}

func fill(color string) excelize.Fill {
	return excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{color}}
}

var centered = &excelize.Alignment{Horizontal: "center"}

// styleDefs maps every intent onto a visually distinct excelize style.
var styleDefs = map[report.StyleIntent]*excelize.Style{
	report.StylePlain: {Alignment: centered},
	report.StyleTitle: {Font: &excelize.Font{Bold: true}},
	report.StyleHeading: {
		Border:    border(2),
		Fill:      fill("1c399e"),
		Alignment: centered,
		Font:      &excelize.Font{Color: "ffffff", Bold: true},
	},
	report.StyleStageName:   {Border: border(1)},
	report.StyleStageLength: {Border: border(1), NumFmt: twoDecimals},
	report.StyleSplitDistance: {
		Border:    border(2),
		Alignment: centered,
		Font:      &excelize.Font{Bold: true},
		NumFmt:    twoDecimals,
	},
	report.StyleInvalidTime: {Fill: fill("999999"), Alignment: centered},
	report.StyleOverallWin: {
		Fill:      fill("8b13c2"),
		Alignment: centered,
		Font:      &excelize.Font{Color: "ffffff", Bold: true},
	},
	report.StyleClassWin:     {Fill: fill("f59236"), Alignment: centered},
	report.StyleSuperRally:   {Fill: fill("f71e1e"), Alignment: centered, Font: &excelize.Font{Bold: true}},
	report.StyleDeltaNeutral: {Alignment: centered, Font: &excelize.Font{Italic: true}},
	report.StyleDeltaFaster:  {Fill: fill("3cb03a"), Alignment: centered},
	report.StyleDeltaSlower:  {Border: border(1), Alignment: centered},
}

func newStyleTable(protocol *excelize.File) (styleTable, error) {
	styles := make(styleTable, len(styleDefs))
	for _, intent := range report.Intents() {
		def, ok := styleDefs[intent]
		if !ok {
			return nil, &WriteError{Err: fmt.Errorf("no style for %s", intent)}
		}
		id, err := protocol.NewStyle(def)
		if err != nil {
			return nil, &WriteError{Err: fmt.Errorf("style %s: %w", intent, err)}
		}
		styles[intent] = id
	}
	return styles, nil
}
