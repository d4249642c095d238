package report

import (
	"testing"

	"tftcomps/internal/results"
)

func TestFormatStage(t *testing.T) {
	tests := []struct {
		lastRound int
		want      string
	}{
		{23, "4-3"},
		{5, "1-0"},
		{0, "0-0"},
		{4, "0-4"},
		{36, "7-1"},
	}
	for _, tt := range tests {
		if got := FormatStage(tt.lastRound); got != tt.want {
			t.Errorf("FormatStage(%d) = %q, want %q", tt.lastRound, got, tt.want)
		}
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		seconds float64
		want    string
	}{
		{125, "0:02:05"},
		{125.99, "0:02:05"},
		{0, "0:00:00"},
		{59.5, "0:00:59"},
		{2213.4, "0:36:53"},
		{3600, "1:00:00"},
		{36000 + 61, "10:01:01"},
	}
	for _, tt := range tests {
		if got := FormatDuration(tt.seconds); got != tt.want {
			t.Errorf("FormatDuration(%v) = %q, want %q", tt.seconds, got, tt.want)
		}
	}
}

func TestTraitCell(t *testing.T) {
	got := TraitCell(results.Trait{Name: "Set10_Punk", NumUnits: 4, Style: 2})
	if got != "Set10_Punk (x4)" {
		t.Errorf("TraitCell() = %q", got)
	}
}

func TestUnitCell(t *testing.T) {
	got := UnitCell(results.Unit{CharacterID: "TFT10_Jinx", Tier: 3, Rarity: 4})
	if got != "TFT10_Jinx (★3)" {
		t.Errorf("UnitCell() = %q", got)
	}
}
