package store

import (
	"database/sql"
	"time"
)

// Game represents one ingested game (header record)
type Game struct {
	GameID        int       `json:"game_id" db:"game_id"`
	Date          string    `json:"date" db:"date"`           // display form DD/MM/YYYY
	SortDate      string    `json:"sort_date" db:"sort_date"` // YYYY-MM-DD, chronological key
	Opponent      string    `json:"opponent" db:"opponent"`
	TeamScore     int       `json:"team_score" db:"team_score"`
	OpponentScore int       `json:"opponent_score" db:"opponent_score"`
	Result        string    `json:"result" db:"result"` // W / L
	GameType      string    `json:"game_type" db:"game_type"`
	Source        string    `json:"source" db:"source"` // CSV / PDF / HTML / LIVE
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
}

// PlayerStat represents one player's box-score line in a game.
// Percentage fields are stored on the 0-100 scale; consumers never rescale.
type PlayerStat struct {
	ID         int     `json:"id" db:"id"`
	GameID     int     `json:"game_id" db:"game_id"`
	PlayerName string  `json:"player_name" db:"player_name"`
	Minutes    string  `json:"minutes" db:"minutes"` // "MM:SS" or numeric string
	Points     int     `json:"points" db:"points"`
	FGM        int     `json:"fgm" db:"fgm"`
	FGA        int     `json:"fga" db:"fga"`
	FGPercent  float64 `json:"fg_percent" db:"fg_percent"`
	TPM        int     `json:"tpm" db:"tpm"`
	TPA        int     `json:"tpa" db:"tpa"`
	TPPercent  float64 `json:"tp_percent" db:"tp_percent"`
	FTM        int     `json:"ftm" db:"ftm"`
	FTA        int     `json:"fta" db:"fta"`
	FTPercent  float64 `json:"ft_percent" db:"ft_percent"`
	OREB       int     `json:"oreb" db:"oreb"`
	DREB       int     `json:"dreb" db:"dreb"`
	REB        int     `json:"reb" db:"reb"`
	AST        int     `json:"ast" db:"ast"`
	TOV        int     `json:"tov" db:"tov"`
	STL        int     `json:"stl" db:"stl"`
	BLK        int     `json:"blk" db:"blk"`
	PF         int     `json:"pf" db:"pf"`
	PlusMinus  int     `json:"plus_minus" db:"plus_minus"`
}

// ShotEvent is a single tracked field-goal or free-throw attempt,
// optionally tagged with the play it came out of.
type ShotEvent struct {
	ID         int             `json:"id" db:"id"`
	GameID     int             `json:"game_id" db:"game_id"`
	PlayerName string          `json:"player_name" db:"player_name"`
	ShotType   string          `json:"shot_type" db:"shot_type"` // 2pt / 3pt / ft
	Result     string          `json:"result" db:"result"`       // made / missed
	Points     int             `json:"points" db:"points"`
	PlayID     sql.NullInt32   `json:"play_id,omitempty" db:"play_id"`
	XLoc       sql.NullFloat64 `json:"x_loc,omitempty" db:"x_loc"`
	YLoc       sql.NullFloat64 `json:"y_loc,omitempty" db:"y_loc"`
	Quarter    sql.NullInt32   `json:"quarter,omitempty" db:"quarter"`
	CreatedAt  time.Time       `json:"created_at" db:"created_at"`
}

// GameEvent is a non-shot tracked event (currently turnovers).
type GameEvent struct {
	ID         int           `json:"id" db:"id"`
	GameID     int           `json:"game_id" db:"game_id"`
	EventType  string        `json:"event_type" db:"event_type"` // TURNOVER
	PlayerName string        `json:"player_name" db:"player_name"`
	PlayID     sql.NullInt32 `json:"play_id,omitempty" db:"play_id"`
	Quarter    sql.NullInt32 `json:"quarter,omitempty" db:"quarter"`
	CreatedAt  time.Time     `json:"created_at" db:"created_at"`
}

// Play is one entry of the read-only play catalog.
type Play struct {
	PlayID      int    `json:"play_id" db:"play_id"`
	Name        string `json:"name" db:"name"`
	Description string `json:"description" db:"description"`
	PlayType    string `json:"play_type" db:"play_type"` // Offense / Defense / Special
}

// Event vocabulary shared by the tracking layer and the aggregator.
const (
	ShotType2PT = "2pt"
	ShotType3PT = "3pt"
	ShotTypeFT  = "ft"

	ShotResultMade   = "made"
	ShotResultMissed = "missed"

	EventTypeTurnover = "TURNOVER"
)
