package results

// ColumnPlan sizes the variable trait and unit column groups of the spreadsheet
type ColumnPlan struct {
	MaxTraits int
	MaxUnits  int
}

// Columns is the total column count: four fixed columns plus both groups
func (p ColumnPlan) Columns() int {
	return 4 + p.MaxTraits + p.MaxUnits
}

// Plan scans every record once for the largest trait and unit counts.
// An empty set plans no extra columns.
func Plan(o *Ordered) ColumnPlan {
	var plan ColumnPlan
	for _, rec := range o.All() {
		plan.MaxTraits = max(plan.MaxTraits, len(rec.Traits))
		plan.MaxUnits = max(plan.MaxUnits, len(rec.Units))
	}
	return plan
}
