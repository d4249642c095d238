package results

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func recordWith(placement, traits, units int) Record {
	rec := Record{Placement: placement}
	for i := 0; i < traits; i++ {
		rec.Traits = append(rec.Traits, Trait{Name: "T", NumUnits: i})
	}
	for i := 0; i < units; i++ {
		rec.Units = append(rec.Units, Unit{CharacterID: "U", Tier: 1})
	}
	return rec
}

func TestPlan(t *testing.T) {
	tests := []struct {
		name    string
		records []Record
		want    ColumnPlan
	}{
		{"empty", nil, ColumnPlan{}},
		{"single", []Record{recordWith(1, 2, 5)}, ColumnPlan{MaxTraits: 2, MaxUnits: 5}},
		{"two players", []Record{recordWith(1, 3, 2), recordWith(2, 1, 4)}, ColumnPlan{MaxTraits: 3, MaxUnits: 4}},
		{"maxima from different records", []Record{recordWith(1, 0, 9), recordWith(2, 7, 0), recordWith(3, 4, 4)}, ColumnPlan{MaxTraits: 7, MaxUnits: 9}},
		{"no traits or units", []Record{recordWith(1, 0, 0), recordWith(2, 0, 0)}, ColumnPlan{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := NewOrdered()
			for i, rec := range tt.records {
				o.Set(string(rune('a'+i)), rec)
			}
			assert.Equal(t, tt.want, Plan(o))
		})
	}
}

func TestPlan_NilSet(t *testing.T) {
	assert.Equal(t, ColumnPlan{}, Plan(nil))
}

func TestColumnPlan_Columns(t *testing.T) {
	assert.Equal(t, 4, ColumnPlan{}.Columns())
	assert.Equal(t, 11, ColumnPlan{MaxTraits: 3, MaxUnits: 4}.Columns())
}
