// Package ingest turns raw box-score files (filename-encoded CSV exports,
// PDF scoresheets, HTML exports) into one canonical game payload. Every
// parser in this package produces the same GamePayload shape so persistence
// and analytics never care which source a game came from.
package ingest

import (
	"errors"
	"strconv"
	"strings"
)

// Source identifiers recorded on ingested games.
const (
	SourceCSV  = "CSV"
	SourcePDF  = "PDF"
	SourceHTML = "HTML"
)

var (
	// ErrNoMetadata signals a filename that does not match the expected
	// pattern. Callers skip the file; they must not treat this as fatal.
	ErrNoMetadata = errors.New("ingest: filename does not encode game metadata")

	// ErrStrategyNotApplicable signals a player-row extraction strategy that
	// cannot operate on the given document; the chain moves to the next one.
	ErrStrategyNotApplicable = errors.New("ingest: extraction strategy not applicable")

	// ErrNoPlayers signals a document whose header parsed but which yielded
	// no player rows under any strategy.
	ErrNoPlayers = errors.New("ingest: no player rows extracted")
)

// GameMeta is the header of a canonical game payload.
// Date and SortDate encode the same calendar day: Date in the DD/MM/YYYY
// display form, SortDate as YYYY-MM-DD for chronological ordering. The pair
// (SortDate, Opponent) identifies a game at the persistence boundary.
type GameMeta struct {
	Date          string
	SortDate      string
	Opponent      string
	TeamScore     int
	OpponentScore int
	Result        string // "W" only on a strict win, otherwise "L"
	GameType      string // Friendly / Season / Playoff / Unknown
}

// Tied reports whether the game ended level. Ties are accepted as valid
// input; whether to keep them is an import-policy decision, not a parse one.
func (m GameMeta) Tied() bool {
	return m.TeamScore == m.OpponentScore
}

// PlayerRow is one player's box-score line. Percentage fields are on the
// 0-100 scale for every source.
type PlayerRow struct {
	Name      string
	Minutes   string
	Points    int
	FGM       int
	FGA       int
	FGPercent float64
	TPM       int
	TPA       int
	TPPercent float64
	FTM       int
	FTA       int
	FTPercent float64
	OREB      int
	DREB      int
	REB       int
	AST       int
	TOV       int
	STL       int
	BLK       int
	PF        int
	PlusMinus int
}

// GamePayload is the canonical output of every parser: header metadata plus
// the full list of player rows. A payload is assembled in one piece; callers
// persist it atomically or not at all.
type GamePayload struct {
	Meta    GameMeta
	Source  string
	Players []PlayerRow
}

// safeInt converts a cell that should hold an integer, defaulting to 0.
// Bad numeric cells never abort a row.
func safeInt(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}

// safePct converts a percentage cell ("57%", "57.1", "0") to a float on the
// 0-100 scale, defaulting to 0.0.
func safePct(s string) float64 {
	s = strings.TrimSuffix(strings.TrimSpace(s), "%")
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0.0
	}
	return f
}
