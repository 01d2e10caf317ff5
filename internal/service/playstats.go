package service

import (
	"context"
	"fmt"

	"github.com/fortuna/courtvision/internal/analytics"
	"github.com/fortuna/courtvision/internal/store"
	"github.com/fortuna/courtvision/internal/store/repository"
)

// PlayStatsService joins tracked events with the play catalog and hands
// them to the pure aggregator.
type PlayStatsService struct {
	eventRepo *repository.EventRepository
	playRepo  *repository.PlayRepository
}

// NewPlayStatsService creates a new play stats service
func NewPlayStatsService(db *store.Database) *PlayStatsService {
	return &PlayStatsService{
		eventRepo: repository.NewEventRepository(db),
		playRepo:  repository.NewPlayRepository(db),
	}
}

// DefaultPlayType is the catalog slice analyzed when the caller does not
// pick one.
const DefaultPlayType = "Offense"

// PlayStatsReport is the per-play efficiency table plus tag coverage.
type PlayStatsReport struct {
	PlayType string                      `json:"play_type"`
	Plays    []analytics.PlayStats       `json:"plays"`
	Coverage analytics.UntrackedCoverage `json:"coverage"`
}

// GetPlayStats aggregates tracked events into per-play efficiency. A
// gameID of 0 spans every tracked game.
func (s *PlayStatsService) GetPlayStats(ctx context.Context, gameID int, playType string) (*PlayStatsReport, error) {
	if playType == "" {
		playType = DefaultPlayType
	}

	catalog, shots, turnovers, err := s.load(ctx, gameID, playType)
	if err != nil {
		return nil, err
	}

	return &PlayStatsReport{
		PlayType: playType,
		Plays:    analytics.AggregatePlayStats(catalog, shots, turnovers),
		Coverage: analytics.ComputeUntrackedCoverage(shots, turnovers),
	}, nil
}

// GetPlayBreakdown splits one play's possessions by player.
func (s *PlayStatsService) GetPlayBreakdown(ctx context.Context, gameID, playID int) ([]analytics.PlayerPlayStats, error) {
	play, err := s.playRepo.GetByID(ctx, playID)
	if err != nil {
		return nil, err
	}

	shots, turnovers, err := s.loadEvents(ctx, gameID)
	if err != nil {
		return nil, err
	}

	ref := analytics.PlayRef{PlayID: play.PlayID, Name: play.Name, PlayType: play.PlayType}
	return analytics.PlayPlayerBreakdown(ref, shots, turnovers), nil
}

// GetPlayerBreakdown shows one player's production across every play they
// were tagged in.
func (s *PlayStatsService) GetPlayerBreakdown(ctx context.Context, gameID int, playerName, playType string) ([]analytics.PlayerPlayStats, error) {
	if playType == "" {
		playType = DefaultPlayType
	}

	catalog, shots, turnovers, err := s.load(ctx, gameID, playType)
	if err != nil {
		return nil, err
	}

	return analytics.PlayerPlayBreakdown(playerName, catalog, shots, turnovers), nil
}

// ListPlays returns the catalog, optionally filtered by type.
func (s *PlayStatsService) ListPlays(ctx context.Context, playType string) ([]*store.Play, error) {
	if playType == "" {
		return s.playRepo.GetAll(ctx)
	}
	return s.playRepo.GetByType(ctx, playType)
}

func (s *PlayStatsService) load(ctx context.Context, gameID int, playType string) ([]analytics.PlayRef, []analytics.ShotInput, []analytics.TurnoverInput, error) {
	plays, err := s.playRepo.GetByType(ctx, playType)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("loading play catalog: %w", err)
	}
	catalog := make([]analytics.PlayRef, 0, len(plays))
	for _, p := range plays {
		catalog = append(catalog, analytics.PlayRef{
			PlayID: p.PlayID, Name: p.Name, PlayType: p.PlayType,
		})
	}

	shots, turnovers, err := s.loadEvents(ctx, gameID)
	if err != nil {
		return nil, nil, nil, err
	}
	return catalog, shots, turnovers, nil
}

func (s *PlayStatsService) loadEvents(ctx context.Context, gameID int) ([]analytics.ShotInput, []analytics.TurnoverInput, error) {
	var (
		shotEvents []*store.ShotEvent
		gameEvents []*store.GameEvent
		err        error
	)
	if gameID > 0 {
		shotEvents, err = s.eventRepo.GetShotEventsByGame(ctx, gameID)
	} else {
		shotEvents, err = s.eventRepo.GetAllShotEvents(ctx)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("loading shot events: %w", err)
	}

	if gameID > 0 {
		gameEvents, err = s.eventRepo.GetTurnoversByGame(ctx, gameID)
	} else {
		gameEvents, err = s.eventRepo.GetAllTurnovers(ctx)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("loading turnovers: %w", err)
	}

	shots := make([]analytics.ShotInput, 0, len(shotEvents))
	for _, ev := range shotEvents {
		in := analytics.ShotInput{
			Player:  ev.PlayerName,
			IsThree: ev.ShotType == store.ShotType3PT,
			Made:    ev.Result == store.ShotResultMade,
			Points:  ev.Points,
		}
		if ev.PlayID.Valid {
			in.PlayID = int(ev.PlayID.Int32)
		}
		shots = append(shots, in)
	}

	turnovers := make([]analytics.TurnoverInput, 0, len(gameEvents))
	for _, ev := range gameEvents {
		in := analytics.TurnoverInput{Player: ev.PlayerName}
		if ev.PlayID.Valid {
			in.PlayID = int(ev.PlayID.Int32)
		}
		turnovers = append(turnovers, in)
	}

	return shots, turnovers, nil
}
