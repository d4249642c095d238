package report

import "tftcomps/internal/results"

// Fixed leading columns, in order
var fixedHeaders = []string{"#", "Participant", "Stage", "Alive"}

// Span is a header label covering columns First..Last (0-based, inclusive)
type Span struct {
	Label string
	First int
	Last  int
}

// Table is the spreadsheet layout: one header row and one row per participant,
// every row exactly Plan.Columns() wide. Blank cells are nil.
type Table struct {
	Plan   results.ColumnPlan
	Header []string
	Groups []Span
	Rows   [][]any
}

// BuildTable lays out the result set using a plan computed beforehand
func BuildTable(o *results.Ordered, plan results.ColumnPlan) *Table {
	width := plan.Columns()
	traitStart := len(fixedHeaders)
	unitStart := traitStart + plan.MaxTraits

	t := &Table{
		Plan:   plan,
		Header: make([]string, width),
	}
	copy(t.Header, fixedHeaders)
	if plan.MaxTraits > 0 {
		t.Header[traitStart] = "Traits"
		t.Groups = append(t.Groups, Span{Label: "Traits", First: traitStart, Last: unitStart - 1})
	}
	if plan.MaxUnits > 0 {
		t.Header[unitStart] = "Units"
		t.Groups = append(t.Groups, Span{Label: "Units", First: unitStart, Last: width - 1})
	}

	for name, rec := range o.All() {
		row := make([]any, width)
		row[0] = rec.Placement
		row[1] = name
		row[2] = FormatStage(rec.LastRound)
		row[3] = FormatDuration(rec.TimeEliminated)
		for i, trait := range rec.Traits {
			if i < plan.MaxTraits {
				row[traitStart+i] = TraitCell(trait)
			}
		}
		for i, unit := range rec.Units {
			if i < plan.MaxUnits {
				row[unitStart+i] = UnitCell(unit)
			}
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}
