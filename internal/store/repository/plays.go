package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/fortuna/courtvision/internal/store"
)

// PlayRepository is read-only access to the seeded play catalog.
type PlayRepository struct {
	db *store.Database
}

// NewPlayRepository creates a new play repository
func NewPlayRepository(db *store.Database) *PlayRepository {
	return &PlayRepository{db: db}
}

// GetAll returns the whole catalog grouped by type, then name.
func (r *PlayRepository) GetAll(ctx context.Context) ([]*store.Play, error) {
	return r.queryPlays(ctx, `
		SELECT play_id, name, description, play_type
		FROM plays
		ORDER BY play_type, name
	`)
}

// GetByType returns catalog entries of one play type (Offense, Defense,
// Special).
func (r *PlayRepository) GetByType(ctx context.Context, playType string) ([]*store.Play, error) {
	return r.queryPlays(ctx, `
		SELECT play_id, name, description, play_type
		FROM plays
		WHERE play_type = $1
		ORDER BY name
	`, playType)
}

// GetByID finds one catalog play.
func (r *PlayRepository) GetByID(ctx context.Context, playID int) (*store.Play, error) {
	play := &store.Play{}
	err := r.db.DB().QueryRowContext(ctx, `
		SELECT play_id, name, description, play_type
		FROM plays
		WHERE play_id = $1
	`, playID).Scan(&play.PlayID, &play.Name, &play.Description, &play.PlayType)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("play not found: %d", playID)
	}
	if err != nil {
		return nil, fmt.Errorf("querying play: %w", err)
	}

	return play, nil
}

func (r *PlayRepository) queryPlays(ctx context.Context, query string, args ...interface{}) ([]*store.Play, error) {
	rows, err := r.db.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying plays: %w", err)
	}
	defer rows.Close()

	var plays []*store.Play
	for rows.Next() {
		play := &store.Play{}
		if err := rows.Scan(&play.PlayID, &play.Name, &play.Description, &play.PlayType); err != nil {
			return nil, fmt.Errorf("scanning play: %w", err)
		}
		plays = append(plays, play)
	}

	return plays, rows.Err()
}
