package results

import (
	"bytes"
	"fmt"
	"iter"
	"sort"

	"tftcomps/internal/riot"

	json "github.com/goccy/go-json"
)

// Record is one participant's normalized result
type Record struct {
	PUUID                string   `json:"puuid"`
	Placement            int      `json:"placement"`
	Level                int      `json:"level"`
	LastRound            int      `json:"last_round"`
	TimeEliminated       float64  `json:"time_eliminated"`
	GoldLeft             int      `json:"gold_left"`
	PlayersEliminated    int      `json:"players_eliminated"`
	TotalDamageToPlayers int      `json:"total_damage_to_players"`
	Augments             []string `json:"augments"`
	Traits               []Trait  `json:"traits"`
	Units                []Unit   `json:"units"`
}

type Trait struct {
	Name        string `json:"name"`
	NumUnits    int    `json:"num_units"`
	Style       int    `json:"style"`
	TierCurrent int    `json:"tier_current"`
	TierTotal   int    `json:"tier_total"`
}

type Unit struct {
	CharacterID string   `json:"character_id"`
	Name        string   `json:"name"`
	Rarity      int      `json:"rarity"`
	Tier        int      `json:"tier"`
	ItemNames   []string `json:"itemNames"`
}

// newRecord copies a match participant verbatim
func newRecord(p riot.MatchParticipant) Record {
	rec := Record{
		PUUID:                p.PUUID,
		Placement:            p.Placement,
		Level:                p.Level,
		LastRound:            p.LastRound,
		TimeEliminated:       p.TimeEliminated,
		GoldLeft:             p.GoldLeft,
		PlayersEliminated:    p.PlayersEliminated,
		TotalDamageToPlayers: p.TotalDamageToPlayers,
		Augments:             p.Augments,
	}
	if p.Traits != nil {
		rec.Traits = make([]Trait, len(p.Traits))
		for i, t := range p.Traits {
			rec.Traits[i] = Trait(t)
		}
	}
	if p.Units != nil {
		rec.Units = make([]Unit, len(p.Units))
		for i, u := range p.Units {
			rec.Units[i] = Unit(u)
		}
	}
	return rec
}

// Ordered maps display names to records and iterates in insertion order.
// Aggregate leaves it sorted by ascending placement.
type Ordered struct {
	names   []string
	records map[string]Record
}

// NewOrdered returns an empty result set
func NewOrdered() *Ordered {
	return &Ordered{records: make(map[string]Record)}
}

// Set stores rec under name. An existing name keeps its position and takes the new record.
func (o *Ordered) Set(name string, rec Record) {
	if _, ok := o.records[name]; !ok {
		o.names = append(o.names, name)
	}
	o.records[name] = rec
}

// Get returns the record stored under name
func (o *Ordered) Get(name string) (Record, bool) {
	rec, ok := o.records[name]
	return rec, ok
}

// Len returns the number of participants
func (o *Ordered) Len() int {
	if o == nil {
		return 0
	}
	return len(o.names)
}

// Names returns display names in iteration order
func (o *Ordered) Names() []string {
	if o == nil {
		return nil
	}
	return append([]string(nil), o.names...)
}

// All yields name/record pairs in iteration order
func (o *Ordered) All() iter.Seq2[string, Record] {
	return func(yield func(string, Record) bool) {
		if o == nil {
			return
		}
		for _, name := range o.names {
			if !yield(name, o.records[name]) {
				return
			}
		}
	}
}

// SortByPlacement reorders iteration to ascending placement, keeping ties in insertion order
func (o *Ordered) SortByPlacement() {
	sort.SliceStable(o.names, func(i, j int) bool {
		return o.records[o.names[i]].Placement < o.records[o.names[j]].Placement
	})
}

// MarshalJSON writes an object whose keys follow iteration order
func (o *Ordered) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range o.names {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(o.records[name])
		if err != nil {
			return nil, fmt.Errorf("failed to marshal record %q: %w", name, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads an object, keeping its key order
func (o *Ordered) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("expected object, got %v", tok)
	}

	*o = Ordered{records: make(map[string]Record)}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		name, ok := tok.(string)
		if !ok {
			return fmt.Errorf("expected string key, got %v", tok)
		}
		var rec Record
		if err := dec.Decode(&rec); err != nil {
			return fmt.Errorf("failed to decode record %q: %w", name, err)
		}
		o.Set(name, rec)
	}

	if _, err := dec.Token(); err != nil {
		return err
	}
	return nil
}
