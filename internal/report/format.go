package report

import (
	"fmt"

	"tftcomps/internal/results"
)

const (
	// roundsPerStage splits last_round into stage and sub-stage
	roundsPerStage = 5
	starSymbol     = "★"
)

// FormatStage renders a last completed round as "stage-round", e.g. 23 -> "4-3"
func FormatStage(lastRound int) string {
	return fmt.Sprintf("%d-%d", lastRound/roundsPerStage, lastRound%roundsPerStage)
}

// FormatDuration renders elapsed seconds, truncated, as h:mm:ss, e.g. 125 -> "0:02:05"
func FormatDuration(seconds float64) string {
	total := int(seconds)
	return fmt.Sprintf("%d:%02d:%02d", total/3600, total%3600/60, total%60)
}

// TraitCell renders a trait as "Name (xN)"
func TraitCell(t results.Trait) string {
	return fmt.Sprintf("%s (x%d)", t.Name, t.NumUnits)
}

// UnitCell renders a unit as "CharacterID (★Tier)"
func UnitCell(u results.Unit) string {
	return fmt.Sprintf("%s (%s%d)", u.CharacterID, starSymbol, u.Tier)
}
