package ingest

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
)

// filenamePattern matches Opponent_TeamScore-OppScore_DD-MM-YYYY_[F|S|P],
// extension already stripped. Opponent may not contain underscores.
var filenamePattern = regexp.MustCompile(`^([^_]+)_(\d+)-(\d+)_(\d{2})-(\d{2})-(\d{4})_([FSP])$`)

// gameTypeByCode maps the filename type code to its display name.
// Unrecognized codes fall back to "Unknown".
var gameTypeByCode = map[string]string{
	"F": "Friendly",
	"S": "Season",
	"P": "Playoff",
}

// ParseFilename decodes game metadata from a box-score filename.
// It returns ErrNoMetadata when the name does not match the pattern; the
// caller counts the file as skipped and moves on.
func ParseFilename(filename string) (GameMeta, error) {
	base := filepath.Base(filename)
	base = strings.TrimSuffix(base, filepath.Ext(base))

	m := filenamePattern.FindStringSubmatch(base)
	if m == nil {
		return GameMeta{}, fmt.Errorf("%w: %q", ErrNoMetadata, base)
	}

	opponent := m[1]
	teamScore, _ := strconv.Atoi(m[2])
	oppScore, _ := strconv.Atoi(m[3])
	day, month, year := m[4], m[5], m[6]

	gameType, ok := gameTypeByCode[m[7]]
	if !ok {
		gameType = "Unknown"
	}

	result := "L"
	if teamScore > oppScore {
		result = "W"
	}

	return GameMeta{
		Date:          fmt.Sprintf("%s/%s/%s", day, month, year),
		SortDate:      fmt.Sprintf("%s-%s-%s", year, month, day),
		Opponent:      opponent,
		TeamScore:     teamScore,
		OpponentScore: oppScore,
		Result:        result,
		GameType:      gameType,
	}, nil
}
