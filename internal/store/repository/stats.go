package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/fortuna/courtvision/internal/store"
)

// StatsRepository handles player stat line data access
type StatsRepository struct {
	db *store.Database
}

// NewStatsRepository creates a new stats repository
func NewStatsRepository(db *store.Database) *StatsRepository {
	return &StatsRepository{db: db}
}

const playerStatColumns = `id, game_id, player_name, minutes, points,
	fgm, fga, fg_percent, tpm, tpa, tp_percent, ftm, fta, ft_percent,
	oreb, dreb, reb, ast, tov, stl, blk, pf, plus_minus`

// GetGameBoxScore returns all player lines for a game, scorers first.
func (r *StatsRepository) GetGameBoxScore(ctx context.Context, gameID int) ([]*store.PlayerStat, error) {
	query := `
		SELECT ` + playerStatColumns + `
		FROM player_stats
		WHERE game_id = $1
		ORDER BY points DESC, player_name
	`

	rows, err := r.db.DB().QueryContext(ctx, query, gameID)
	if err != nil {
		return nil, fmt.Errorf("querying box score: %w", err)
	}
	defer rows.Close()

	return r.scanPlayerStats(rows)
}

// PlayerGameLine is one game of a player's history with the game context
// attached, ordered for timeline charts.
type PlayerGameLine struct {
	*store.PlayerStat
	Date     string `json:"date"`
	SortDate string `json:"sort_date"`
	Opponent string `json:"opponent"`
	Result   string `json:"result"`
	GameType string `json:"game_type"`
}

// GetPlayerHistory returns every stored line for a player in chronological
// order, optionally filtered by game type.
func (r *StatsRepository) GetPlayerHistory(ctx context.Context, playerName, gameType string) ([]*PlayerGameLine, error) {
	query := `
		SELECT ps.id, ps.game_id, ps.player_name, ps.minutes, ps.points,
			ps.fgm, ps.fga, ps.fg_percent, ps.tpm, ps.tpa, ps.tp_percent,
			ps.ftm, ps.fta, ps.ft_percent, ps.oreb, ps.dreb, ps.reb,
			ps.ast, ps.tov, ps.stl, ps.blk, ps.pf, ps.plus_minus,
			g.date, g.sort_date, g.opponent, g.result, g.game_type
		FROM player_stats ps
		JOIN games g ON ps.game_id = g.game_id
		WHERE ps.player_name = $1
	`
	args := []interface{}{playerName}
	if gameType != "" {
		query += ` AND g.game_type = $2`
		args = append(args, gameType)
	}
	query += ` ORDER BY g.sort_date, g.game_id`

	rows, err := r.db.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying player history: %w", err)
	}
	defer rows.Close()

	var lines []*PlayerGameLine
	for rows.Next() {
		stat := &store.PlayerStat{}
		line := &PlayerGameLine{PlayerStat: stat}
		err := rows.Scan(
			&stat.ID, &stat.GameID, &stat.PlayerName, &stat.Minutes, &stat.Points,
			&stat.FGM, &stat.FGA, &stat.FGPercent, &stat.TPM, &stat.TPA, &stat.TPPercent,
			&stat.FTM, &stat.FTA, &stat.FTPercent, &stat.OREB, &stat.DREB, &stat.REB,
			&stat.AST, &stat.TOV, &stat.STL, &stat.BLK, &stat.PF, &stat.PlusMinus,
			&line.Date, &line.SortDate, &line.Opponent, &line.Result, &line.GameType,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning player history: %w", err)
		}
		lines = append(lines, line)
	}

	return lines, rows.Err()
}

// GetAllLines returns every stored player line joined with its game, the
// bulk feed for team-wide aggregation.
func (r *StatsRepository) GetAllLines(ctx context.Context, gameType string) ([]*PlayerGameLine, error) {
	query := `
		SELECT ps.id, ps.game_id, ps.player_name, ps.minutes, ps.points,
			ps.fgm, ps.fga, ps.fg_percent, ps.tpm, ps.tpa, ps.tp_percent,
			ps.ftm, ps.fta, ps.ft_percent, ps.oreb, ps.dreb, ps.reb,
			ps.ast, ps.tov, ps.stl, ps.blk, ps.pf, ps.plus_minus,
			g.date, g.sort_date, g.opponent, g.result, g.game_type
		FROM player_stats ps
		JOIN games g ON ps.game_id = g.game_id
	`
	var args []interface{}
	if gameType != "" {
		query += ` WHERE g.game_type = $1`
		args = append(args, gameType)
	}
	query += ` ORDER BY g.sort_date, g.game_id, ps.points DESC`

	rows, err := r.db.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying stat lines: %w", err)
	}
	defer rows.Close()

	var lines []*PlayerGameLine
	for rows.Next() {
		stat := &store.PlayerStat{}
		line := &PlayerGameLine{PlayerStat: stat}
		err := rows.Scan(
			&stat.ID, &stat.GameID, &stat.PlayerName, &stat.Minutes, &stat.Points,
			&stat.FGM, &stat.FGA, &stat.FGPercent, &stat.TPM, &stat.TPA, &stat.TPPercent,
			&stat.FTM, &stat.FTA, &stat.FTPercent, &stat.OREB, &stat.DREB, &stat.REB,
			&stat.AST, &stat.TOV, &stat.STL, &stat.BLK, &stat.PF, &stat.PlusMinus,
			&line.Date, &line.SortDate, &line.Opponent, &line.Result, &line.GameType,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning stat line: %w", err)
		}
		lines = append(lines, line)
	}

	return lines, rows.Err()
}

// DistinctPlayers returns every player name with at least one stored line.
func (r *StatsRepository) DistinctPlayers(ctx context.Context) ([]string, error) {
	rows, err := r.db.DB().QueryContext(ctx,
		`SELECT DISTINCT player_name FROM player_stats ORDER BY player_name`)
	if err != nil {
		return nil, fmt.Errorf("querying players: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scanning player name: %w", err)
		}
		names = append(names, name)
	}

	return names, rows.Err()
}

// scanPlayerStats scans multiple player stat rows
func (r *StatsRepository) scanPlayerStats(rows *sql.Rows) ([]*store.PlayerStat, error) {
	var allStats []*store.PlayerStat
	for rows.Next() {
		stat := &store.PlayerStat{}
		err := rows.Scan(
			&stat.ID, &stat.GameID, &stat.PlayerName, &stat.Minutes, &stat.Points,
			&stat.FGM, &stat.FGA, &stat.FGPercent, &stat.TPM, &stat.TPA, &stat.TPPercent,
			&stat.FTM, &stat.FTA, &stat.FTPercent, &stat.OREB, &stat.DREB, &stat.REB,
			&stat.AST, &stat.TOV, &stat.STL, &stat.BLK, &stat.PF, &stat.PlusMinus,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning player stats: %w", err)
		}
		allStats = append(allStats, stat)
	}

	return allStats, rows.Err()
}
