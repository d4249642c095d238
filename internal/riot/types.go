package riot

// AccountResponse represents the response from /riot/account/v1/accounts/by-riot-id and by-puuid
type AccountResponse struct {
	PUUID    string `json:"puuid"`
	GameName string `json:"gameName"`
	TagLine  string `json:"tagLine"`
}

// SummonerResponse represents the response from /tft/summoner/v1/summoners/by-name
type SummonerResponse struct {
	ID            string `json:"id"`
	PUUID         string `json:"puuid"`
	Name          string `json:"name"`
	SummonerLevel int64  `json:"summonerLevel"`
}

// Identity is a resolved player: an opaque PUUID plus whatever name fields Riot returned
type Identity struct {
	PUUID        string
	GameName     string
	TagLine      string
	SummonerName string
}

// DisplayName prefers the Riot ID and falls back to the legacy summoner name
func (i Identity) DisplayName() string {
	if i.GameName != "" {
		if i.TagLine == "" {
			return i.GameName
		}
		return i.GameName + "#" + i.TagLine
	}
	return i.SummonerName
}

// MatchResponse represents the response from /tft/match/v1/matches/{matchId}
type MatchResponse struct {
	Metadata MatchMetadata `json:"metadata"`
	Info     MatchInfo     `json:"info"`
}

type MatchMetadata struct {
	DataVersion  string   `json:"data_version"`
	MatchID      string   `json:"match_id"`
	Participants []string `json:"participants"` // PUUIDs
}

type MatchInfo struct {
	GameDatetime int64              `json:"game_datetime"`
	GameLength   float64            `json:"game_length"`
	GameVersion  string             `json:"game_version"`
	QueueID      int                `json:"queue_id"`
	TFTSetNumber int                `json:"tft_set_number"`
	TFTGameType  string             `json:"tft_game_type,omitempty"`
	Participants []MatchParticipant `json:"participants"`
}

type MatchParticipant struct {
	PUUID                string   `json:"puuid"`
	Placement            int      `json:"placement"`
	Level                int      `json:"level"`
	LastRound            int      `json:"last_round"`
	TimeEliminated       float64  `json:"time_eliminated"`
	GoldLeft             int      `json:"gold_left"`
	PlayersEliminated    int      `json:"players_eliminated"`
	TotalDamageToPlayers int      `json:"total_damage_to_players"`
	Augments             []string `json:"augments,omitempty"`
	Traits               []Trait  `json:"traits"`
	Units                []Unit   `json:"units"`
}

// Trait is an active synergy group on a participant's board
type Trait struct {
	Name        string `json:"name"`
	NumUnits    int    `json:"num_units"`
	Style       int    `json:"style"`
	TierCurrent int    `json:"tier_current"`
	TierTotal   int    `json:"tier_total"`
}

// Unit is a champion on a participant's board
type Unit struct {
	CharacterID string   `json:"character_id"`
	Name        string   `json:"name,omitempty"`
	Rarity      int      `json:"rarity"`
	Tier        int      `json:"tier"` // star level
	ItemNames   []string `json:"itemNames,omitempty"`
}

// PlatformStatus represents the response from /tft/status/v1/platform-data
type PlatformStatus struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Locales []string `json:"locales"`
}
