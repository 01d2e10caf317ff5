package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/fortuna/courtvision/internal/store"
)

// EventRepository handles tracked shot and turnover events
type EventRepository struct {
	db *store.Database
}

// NewEventRepository creates a new event repository
func NewEventRepository(db *store.Database) *EventRepository {
	return &EventRepository{db: db}
}

// CreateShotEvent stores one tracked shot attempt.
func (r *EventRepository) CreateShotEvent(ctx context.Context, ev *store.ShotEvent) error {
	err := r.db.DB().QueryRowContext(ctx, `
		INSERT INTO shot_events (game_id, player_name, shot_type, result, points,
			play_id, x_loc, y_loc, quarter)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at
	`,
		ev.GameID, ev.PlayerName, ev.ShotType, ev.Result, ev.Points,
		ev.PlayID, ev.XLoc, ev.YLoc, ev.Quarter,
	).Scan(&ev.ID, &ev.CreatedAt)
	if err != nil {
		return fmt.Errorf("inserting shot event: %w", err)
	}
	return nil
}

// CreateGameEvent stores one non-shot tracked event.
func (r *EventRepository) CreateGameEvent(ctx context.Context, ev *store.GameEvent) error {
	err := r.db.DB().QueryRowContext(ctx, `
		INSERT INTO game_events (game_id, event_type, player_name, play_id, quarter)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`,
		ev.GameID, ev.EventType, ev.PlayerName, ev.PlayID, ev.Quarter,
	).Scan(&ev.ID, &ev.CreatedAt)
	if err != nil {
		return fmt.Errorf("inserting game event: %w", err)
	}
	return nil
}

// GetShotEventsByGame returns a game's field-goal attempts in tracking
// order. Free throws are excluded; the play aggregator counts a trip to the
// line inside the possession that drew the foul.
func (r *EventRepository) GetShotEventsByGame(ctx context.Context, gameID int) ([]*store.ShotEvent, error) {
	query := `
		SELECT id, game_id, player_name, shot_type, result, points,
			play_id, x_loc, y_loc, quarter, created_at
		FROM shot_events
		WHERE game_id = $1 AND shot_type IN ('2pt', '3pt')
		ORDER BY id
	`

	rows, err := r.db.DB().QueryContext(ctx, query, gameID)
	if err != nil {
		return nil, fmt.Errorf("querying shot events: %w", err)
	}
	defer rows.Close()

	return r.scanShotEvents(rows)
}

// GetAllShotEvents returns every tracked field-goal attempt across games.
func (r *EventRepository) GetAllShotEvents(ctx context.Context) ([]*store.ShotEvent, error) {
	query := `
		SELECT id, game_id, player_name, shot_type, result, points,
			play_id, x_loc, y_loc, quarter, created_at
		FROM shot_events
		WHERE shot_type IN ('2pt', '3pt')
		ORDER BY game_id, id
	`

	rows, err := r.db.DB().QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying shot events: %w", err)
	}
	defer rows.Close()

	return r.scanShotEvents(rows)
}

// GetTurnoversByGame returns a game's tracked turnovers.
func (r *EventRepository) GetTurnoversByGame(ctx context.Context, gameID int) ([]*store.GameEvent, error) {
	return r.queryGameEvents(ctx, `
		SELECT id, game_id, event_type, player_name, play_id, quarter, created_at
		FROM game_events
		WHERE game_id = $1 AND event_type = 'TURNOVER'
		ORDER BY id
	`, gameID)
}

// GetAllTurnovers returns every tracked turnover across games.
func (r *EventRepository) GetAllTurnovers(ctx context.Context) ([]*store.GameEvent, error) {
	return r.queryGameEvents(ctx, `
		SELECT id, game_id, event_type, player_name, play_id, quarter, created_at
		FROM game_events
		WHERE event_type = 'TURNOVER'
		ORDER BY game_id, id
	`)
}

func (r *EventRepository) queryGameEvents(ctx context.Context, query string, args ...interface{}) ([]*store.GameEvent, error) {
	rows, err := r.db.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying game events: %w", err)
	}
	defer rows.Close()

	var events []*store.GameEvent
	for rows.Next() {
		ev := &store.GameEvent{}
		err := rows.Scan(
			&ev.ID, &ev.GameID, &ev.EventType, &ev.PlayerName,
			&ev.PlayID, &ev.Quarter, &ev.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning game event: %w", err)
		}
		events = append(events, ev)
	}

	return events, rows.Err()
}

// scanShotEvents scans multiple shot event rows
func (r *EventRepository) scanShotEvents(rows *sql.Rows) ([]*store.ShotEvent, error) {
	var events []*store.ShotEvent
	for rows.Next() {
		ev := &store.ShotEvent{}
		err := rows.Scan(
			&ev.ID, &ev.GameID, &ev.PlayerName, &ev.ShotType, &ev.Result, &ev.Points,
			&ev.PlayID, &ev.XLoc, &ev.YLoc, &ev.Quarter, &ev.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning shot event: %w", err)
		}
		events = append(events, ev)
	}

	return events, rows.Err()
}
