package service

import (
	"context"
	"fmt"

	"github.com/fortuna/courtvision/internal/analytics"
	"github.com/fortuna/courtvision/internal/store"
	"github.com/fortuna/courtvision/internal/store/repository"
)

// StatsService handles per-player stat retrieval and aggregation
type StatsService struct {
	statsRepo *repository.StatsRepository
}

// NewStatsService creates a new stats service
func NewStatsService(db *store.Database) *StatsService {
	return &StatsService{
		statsRepo: repository.NewStatsRepository(db),
	}
}

// PlayerGameLog is one game in a player's timeline with derived metrics.
type PlayerGameLog struct {
	GameID   int    `json:"game_id"`
	Date     string `json:"date"`
	SortDate string `json:"sort_date"`
	Opponent string `json:"opponent"`
	Result   string `json:"result"`
	GameType string `json:"game_type"`

	Line *EnrichedLine `json:"line"`
}

// PlayerProfile is a player's full analytical summary.
type PlayerProfile struct {
	PlayerName string             `json:"player_name"`
	Averages   analytics.Averages `json:"averages"`
	GameLog    []*PlayerGameLog   `json:"game_log"`
}

// ListPlayers returns every player with at least one stored line.
func (s *StatsService) ListPlayers(ctx context.Context) ([]string, error) {
	names, err := s.statsRepo.DistinctPlayers(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing players: %w", err)
	}
	return names, nil
}

// GetPlayerProfile returns a player's averages plus their chronological
// game log, optionally filtered by game type.
func (s *StatsService) GetPlayerProfile(ctx context.Context, playerName, gameType string) (*PlayerProfile, error) {
	history, err := s.statsRepo.GetPlayerHistory(ctx, playerName, gameType)
	if err != nil {
		return nil, fmt.Errorf("fetching player history: %w", err)
	}
	if len(history) == 0 {
		return nil, fmt.Errorf("no stats found for player %q", playerName)
	}

	profile := &PlayerProfile{
		PlayerName: playerName,
		Averages:   analytics.ComputeAverages(statLines(history)),
		GameLog:    make([]*PlayerGameLog, 0, len(history)),
	}

	for _, h := range history {
		profile.GameLog = append(profile.GameLog, &PlayerGameLog{
			GameID:   h.GameID,
			Date:     h.Date,
			SortDate: h.SortDate,
			Opponent: h.Opponent,
			Result:   h.Result,
			GameType: h.GameType,
			Line:     enrichLine(h.PlayerStat),
		})
	}

	return profile, nil
}

// GetTeamAverages aggregates every player's averages, ordered by scoring.
func (s *StatsService) GetTeamAverages(ctx context.Context, gameType string) (map[string]analytics.Averages, error) {
	lines, err := s.statsRepo.GetAllLines(ctx, gameType)
	if err != nil {
		return nil, fmt.Errorf("fetching stat lines: %w", err)
	}

	byPlayer := make(map[string][]analytics.StatLine)
	for _, l := range lines {
		byPlayer[l.PlayerName] = append(byPlayer[l.PlayerName], toStatLine(l.PlayerStat))
	}

	averages := make(map[string]analytics.Averages, len(byPlayer))
	for name, playerLines := range byPlayer {
		averages[name] = analytics.ComputeAverages(playerLines)
	}

	return averages, nil
}

func statLines(history []*repository.PlayerGameLine) []analytics.StatLine {
	lines := make([]analytics.StatLine, 0, len(history))
	for _, h := range history {
		lines = append(lines, toStatLine(h.PlayerStat))
	}
	return lines
}

func toStatLine(stat *store.PlayerStat) analytics.StatLine {
	return analytics.StatLine{
		Minutes: analytics.ParseMinutes(stat.Minutes),
		Points:  stat.Points,
		FGM:     stat.FGM,
		FGA:     stat.FGA,
		TPM:     stat.TPM,
		TPA:     stat.TPA,
		FTM:     stat.FTM,
		FTA:     stat.FTA,
		OREB:    stat.OREB,
		DREB:    stat.DREB,
		REB:     stat.REB,
		AST:     stat.AST,
		TOV:     stat.TOV,
		STL:     stat.STL,
		BLK:     stat.BLK,
		PF:      stat.PF,
	}
}
