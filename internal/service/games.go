package service

import (
	"context"
	"fmt"

	"github.com/fortuna/courtvision/internal/analytics"
	"github.com/fortuna/courtvision/internal/store"
	"github.com/fortuna/courtvision/internal/store/repository"
)

// GameService handles game-related business logic
type GameService struct {
	gameRepo  *repository.GameRepository
	statsRepo *repository.StatsRepository
}

// NewGameService creates a new game service
func NewGameService(db *store.Database) *GameService {
	return &GameService{
		gameRepo:  repository.NewGameRepository(db),
		statsRepo: repository.NewStatsRepository(db),
	}
}

// GameSummary is a game header with its full box score and the derived
// shooting metrics attached to every line.
type GameSummary struct {
	Game     *store.Game     `json:"game"`
	BoxScore []*EnrichedLine `json:"box_score"`
}

// EnrichedLine decorates a stored stat line with derived efficiency
// metrics. The raw percentages stay exactly as ingested. UsagePct is a
// team-relative share, so it is filled in once the whole box score is
// assembled.
type EnrichedLine struct {
	*store.PlayerStat
	MinutesPlayed float64 `json:"minutes_played"`
	Possessions   float64 `json:"possessions"`
	TSPct         float64 `json:"ts_pct"`
	EFGPct        float64 `json:"efg_pct"`
	Efficiency    int     `json:"efficiency"`
	GameScore     float64 `json:"game_score"`
	PPP           float64 `json:"ppp"`
	ORtg          float64 `json:"ortg"`
	ASTToTOV      float64 `json:"ast_to_tov"`
	TwoPM         int     `json:"two_pm"`
	TwoPA         int     `json:"two_pa"`
	TwoPPct       float64 `json:"two_p_pct"`
	FTRate        float64 `json:"ft_rate"`
	ORebPct       float64 `json:"oreb_pct"`
	PtsPer100Min  float64 `json:"pts_per_100_min"`
	UsagePct      float64 `json:"usage_pct"`
}

// GetGame retrieves a game with its enriched box score.
func (s *GameService) GetGame(ctx context.Context, gameID int) (*GameSummary, error) {
	game, err := s.gameRepo.GetByID(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("fetching game: %w", err)
	}

	stats, err := s.statsRepo.GetGameBoxScore(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("fetching box score: %w", err)
	}

	summary := &GameSummary{Game: game, BoxScore: make([]*EnrichedLine, 0, len(stats))}
	for _, stat := range stats {
		summary.BoxScore = append(summary.BoxScore, enrichLine(stat))
	}
	applyUsage(summary.BoxScore)

	return summary, nil
}

// ListGames returns game headers in chronological order, optionally
// filtered by game type.
func (s *GameService) ListGames(ctx context.Context, gameType string) ([]*store.Game, error) {
	games, err := s.gameRepo.List(ctx, gameType)
	if err != nil {
		return nil, fmt.Errorf("listing games: %w", err)
	}
	return games, nil
}

// DeleteGame removes a game and everything hanging off it.
func (s *GameService) DeleteGame(ctx context.Context, gameID int) error {
	if err := s.gameRepo.Delete(ctx, gameID); err != nil {
		return fmt.Errorf("deleting game: %w", err)
	}
	return nil
}

// TeamRecord is the win/loss ledger across stored games.
type TeamRecord struct {
	Games  int `json:"games"`
	Wins   int `json:"wins"`
	Losses int `json:"losses"`

	PointsFor     int     `json:"points_for"`
	PointsAgainst int     `json:"points_against"`
	AvgMargin     float64 `json:"avg_margin"`
}

// GetRecord tallies the win/loss record and scoring margin.
func (s *GameService) GetRecord(ctx context.Context, gameType string) (*TeamRecord, error) {
	games, err := s.gameRepo.List(ctx, gameType)
	if err != nil {
		return nil, fmt.Errorf("listing games: %w", err)
	}

	record := &TeamRecord{Games: len(games)}
	for _, g := range games {
		if g.Result == "W" {
			record.Wins++
		} else {
			record.Losses++
		}
		record.PointsFor += g.TeamScore
		record.PointsAgainst += g.OpponentScore
	}
	if record.Games > 0 {
		record.AvgMargin = analytics.SafeDivide(
			float64(record.PointsFor-record.PointsAgainst), float64(record.Games), 0)
	}

	return record, nil
}

// enrichLine computes the derived metrics for one stored line.
func enrichLine(stat *store.PlayerStat) *EnrichedLine {
	minutes := analytics.ParseMinutes(stat.Minutes)
	poss := analytics.Possessions(stat.FGA, stat.FTA, stat.OREB, stat.TOV)
	twoPM, twoPA, twoPPct := analytics.TwoPointStats(stat.FGM, stat.FGA, stat.TPM, stat.TPA)

	return &EnrichedLine{
		PlayerStat:    stat,
		MinutesPlayed: minutes,
		Possessions:   poss,
		TSPct:         analytics.TrueShootingPct(stat.Points, stat.FGA, stat.FTA),
		EFGPct:        analytics.EffectiveFGPct(stat.FGM, stat.TPM, stat.FGA),
		Efficiency: analytics.Efficiency(stat.Points, stat.REB, stat.AST, stat.STL,
			stat.BLK, stat.FGM, stat.FGA, stat.FTM, stat.FTA, stat.TOV),
		GameScore: analytics.GameScore(stat.Points, stat.FGM, stat.FGA, stat.FTM,
			stat.FTA, stat.OREB, stat.DREB, stat.STL, stat.AST, stat.BLK, stat.PF, stat.TOV),
		PPP:          analytics.PointsPerPossession(stat.Points, poss),
		ORtg:         analytics.OffensiveRating(stat.Points, poss),
		ASTToTOV:     analytics.AssistTurnoverRatio(stat.AST, stat.TOV),
		TwoPM:        twoPM,
		TwoPA:        twoPA,
		TwoPPct:      twoPPct,
		FTRate:       analytics.FreeThrowRate(stat.FTA, stat.FGA),
		ORebPct:      analytics.OffensiveReboundPct(stat.OREB, stat.REB),
		PtsPer100Min: analytics.Per100Minutes(float64(stat.Points), minutes),
	}
}

// applyUsage fills each line's share of the team's possessions for the game.
func applyUsage(lines []*EnrichedLine) {
	var teamPoss float64
	for _, line := range lines {
		teamPoss += line.Possessions
	}
	for _, line := range lines {
		line.UsagePct = analytics.UsagePct(line.Possessions, teamPoss)
	}
}
