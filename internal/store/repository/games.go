package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/fortuna/courtvision/internal/ingest"
	"github.com/fortuna/courtvision/internal/store"
)

// GameRepository handles game data access. It is the concrete
// ingest.GameStore the importer persists through.
type GameRepository struct {
	db *store.Database
}

// NewGameRepository creates a new game repository
func NewGameRepository(db *store.Database) *GameRepository {
	return &GameRepository{db: db}
}

// GameExists reports whether a game with the same chronological key is
// already stored.
func (r *GameRepository) GameExists(ctx context.Context, sortDate, opponent string) (bool, error) {
	var exists bool
	err := r.db.DB().QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM games WHERE sort_date = $1 AND opponent = $2)`,
		sortDate, opponent,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("checking game existence: %w", err)
	}
	return exists, nil
}

// CreateGame stores a parsed box score as one transaction: the game header
// and every player line commit together or not at all.
func (r *GameRepository) CreateGame(ctx context.Context, payload *ingest.GamePayload) (int, error) {
	tx, err := r.db.DB().BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning game transaction: %w", err)
	}
	defer tx.Rollback()

	var gameID int
	err = tx.QueryRowContext(ctx, `
		INSERT INTO games (date, sort_date, opponent, team_score, opponent_score,
			result, game_type, source)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING game_id
	`,
		payload.Meta.Date, payload.Meta.SortDate, payload.Meta.Opponent,
		payload.Meta.TeamScore, payload.Meta.OpponentScore,
		payload.Meta.Result, payload.Meta.GameType, payload.Source,
	).Scan(&gameID)
	if err != nil {
		return 0, fmt.Errorf("inserting game: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO player_stats (game_id, player_name, minutes, points,
			fgm, fga, fg_percent, tpm, tpa, tp_percent, ftm, fta, ft_percent,
			oreb, dreb, reb, ast, tov, stl, blk, pf, plus_minus)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13,
			$14, $15, $16, $17, $18, $19, $20, $21, $22)
	`)
	if err != nil {
		return 0, fmt.Errorf("preparing player insert: %w", err)
	}
	defer stmt.Close()

	for _, p := range payload.Players {
		_, err := stmt.ExecContext(ctx,
			gameID, p.Name, p.Minutes, p.Points,
			p.FGM, p.FGA, p.FGPercent, p.TPM, p.TPA, p.TPPercent,
			p.FTM, p.FTA, p.FTPercent,
			p.OREB, p.DREB, p.REB, p.AST, p.TOV, p.STL, p.BLK, p.PF, p.PlusMinus,
		)
		if err != nil {
			return 0, fmt.Errorf("inserting player line for %q: %w", p.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing game: %w", err)
	}

	return gameID, nil
}

// GetByID finds a game by its database ID
func (r *GameRepository) GetByID(ctx context.Context, gameID int) (*store.Game, error) {
	query := `
		SELECT game_id, date, sort_date, opponent, team_score, opponent_score,
			result, game_type, source, created_at
		FROM games
		WHERE game_id = $1
	`

	game := &store.Game{}
	err := r.db.DB().QueryRowContext(ctx, query, gameID).Scan(
		&game.GameID, &game.Date, &game.SortDate, &game.Opponent,
		&game.TeamScore, &game.OpponentScore, &game.Result,
		&game.GameType, &game.Source, &game.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("game not found: %d", gameID)
	}
	if err != nil {
		return nil, fmt.Errorf("querying game: %w", err)
	}

	return game, nil
}

// List returns games in chronological order, optionally filtered by game
// type. An empty gameType means all games.
func (r *GameRepository) List(ctx context.Context, gameType string) ([]*store.Game, error) {
	query := `
		SELECT game_id, date, sort_date, opponent, team_score, opponent_score,
			result, game_type, source, created_at
		FROM games
	`
	var args []interface{}
	if gameType != "" {
		query += ` WHERE game_type = $1`
		args = append(args, gameType)
	}
	query += ` ORDER BY sort_date, game_id`

	rows, err := r.db.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying games: %w", err)
	}
	defer rows.Close()

	return r.scanGames(rows)
}

// Delete removes a game. Player stats and tracked events cascade.
func (r *GameRepository) Delete(ctx context.Context, gameID int) error {
	result, err := r.db.DB().ExecContext(ctx, `DELETE FROM games WHERE game_id = $1`, gameID)
	if err != nil {
		return fmt.Errorf("deleting game: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting game: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("game not found: %d", gameID)
	}
	return nil
}

// scanGames scans multiple game rows
func (r *GameRepository) scanGames(rows *sql.Rows) ([]*store.Game, error) {
	var games []*store.Game
	for rows.Next() {
		game := &store.Game{}
		err := rows.Scan(
			&game.GameID, &game.Date, &game.SortDate, &game.Opponent,
			&game.TeamScore, &game.OpponentScore, &game.Result,
			&game.GameType, &game.Source, &game.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning game: %w", err)
		}
		games = append(games, game)
	}

	return games, rows.Err()
}
