package service

import (
	"context"
	"fmt"
	"sort"

	"github.com/fortuna/courtvision/internal/analytics"
	"github.com/fortuna/courtvision/internal/store"
	"github.com/fortuna/courtvision/internal/store/repository"
)

// AnalyticsService handles trend and team-wide analytics
type AnalyticsService struct {
	gameRepo  *repository.GameRepository
	statsRepo *repository.StatsRepository
}

// NewAnalyticsService creates a new analytics service
func NewAnalyticsService(db *store.Database) *AnalyticsService {
	return &AnalyticsService{
		gameRepo:  repository.NewGameRepository(db),
		statsRepo: repository.NewStatsRepository(db),
	}
}

// trendMetrics maps a metric name to its extractor over one stat line.
var trendMetrics = map[string]func(*store.PlayerStat) float64{
	"points":     func(s *store.PlayerStat) float64 { return float64(s.Points) },
	"rebounds":   func(s *store.PlayerStat) float64 { return float64(s.REB) },
	"assists":    func(s *store.PlayerStat) float64 { return float64(s.AST) },
	"steals":     func(s *store.PlayerStat) float64 { return float64(s.STL) },
	"blocks":     func(s *store.PlayerStat) float64 { return float64(s.BLK) },
	"turnovers":  func(s *store.PlayerStat) float64 { return float64(s.TOV) },
	"minutes":    func(s *store.PlayerStat) float64 { return analytics.ParseMinutes(s.Minutes) },
	"efficiency": efficiencyMetric,
	"game_score": gameScoreMetric,
}

func efficiencyMetric(s *store.PlayerStat) float64 {
	return float64(analytics.Efficiency(s.Points, s.REB, s.AST, s.STL, s.BLK,
		s.FGM, s.FGA, s.FTM, s.FTA, s.TOV))
}

func gameScoreMetric(s *store.PlayerStat) float64 {
	return analytics.GameScore(s.Points, s.FGM, s.FGA, s.FTM, s.FTA,
		s.OREB, s.DREB, s.STL, s.AST, s.BLK, s.PF, s.TOV)
}

// PlayerTrend is a metric timeline aligned to the full team schedule.
// Values and RollingAvg are nil for games the player missed, so chart lines
// break over absences instead of dipping to zero.
type PlayerTrend struct {
	PlayerName string `json:"player_name"`
	Metric     string `json:"metric"`
	Window     int    `json:"window"`

	Dates      []string   `json:"dates"`
	Opponents  []string   `json:"opponents"`
	Values     []*float64 `json:"values"`
	RollingAvg []*float64 `json:"rolling_avg"`

	GamesPlayed int     `json:"games_played"`
	Mean        float64 `json:"mean"`
	StdDev      float64 `json:"std_dev"`
	CV          float64 `json:"cv"`
	CVDefined   bool    `json:"cv_defined"`
}

// GetPlayerTrend builds the rolling trend of one metric for one player over
// the full team timeline.
func (s *AnalyticsService) GetPlayerTrend(ctx context.Context, playerName, metric, gameType string, window int) (*PlayerTrend, error) {
	extract, ok := trendMetrics[metric]
	if !ok {
		return nil, fmt.Errorf("unknown trend metric %q", metric)
	}
	if window < 1 {
		window = analytics.DefaultRollingWindow
	}

	games, err := s.gameRepo.List(ctx, gameType)
	if err != nil {
		return nil, fmt.Errorf("listing games: %w", err)
	}

	history, err := s.statsRepo.GetPlayerHistory(ctx, playerName, gameType)
	if err != nil {
		return nil, fmt.Errorf("fetching player history: %w", err)
	}
	byGame := make(map[int]*store.PlayerStat, len(history))
	for _, h := range history {
		byGame[h.GameID] = h.PlayerStat
	}

	trend := &PlayerTrend{
		PlayerName: playerName,
		Metric:     metric,
		Window:     window,
		Dates:      make([]string, 0, len(games)),
		Opponents:  make([]string, 0, len(games)),
		Values:     make([]*float64, 0, len(games)),
	}

	var played []float64
	for _, g := range games {
		trend.Dates = append(trend.Dates, g.Date)
		trend.Opponents = append(trend.Opponents, g.Opponent)
		if stat, ok := byGame[g.GameID]; ok {
			v := extract(stat)
			trend.Values = append(trend.Values, &v)
			played = append(played, v)
		} else {
			trend.Values = append(trend.Values, nil)
		}
	}

	trend.RollingAvg = analytics.MovingAverageOnTimeline(trend.Values, window)
	trend.GamesPlayed = len(played)
	trend.Mean = analytics.Mean(played)
	trend.StdDev = analytics.StdDev(played)
	trend.CV, trend.CVDefined = analytics.CoefficientOfVariation(played)

	return trend, nil
}

// TopPerformer is one player's rank entry in the team overview.
type TopPerformer struct {
	PlayerName string  `json:"player_name"`
	Games      int     `json:"games"`
	Value      float64 `json:"value"`
}

// TeamOverview is the dashboard summary: record, scoring trend and leaders.
type TeamOverview struct {
	Record *TeamRecord `json:"record"`

	WinPct float64 `json:"win_pct"`
	PPG    float64 `json:"ppg"`
	OppPPG float64 `json:"opp_ppg"`

	ScoringTrend []*float64 `json:"scoring_trend"`
	TrendDates   []string   `json:"trend_dates"`

	Scoring    []TopPerformer `json:"scoring_leaders"`
	Rebounding []TopPerformer `json:"rebounding_leaders"`
	Assists    []TopPerformer `json:"assist_leaders"`
	Shooting   []TopPerformer `json:"shooting_leaders"`
}

// minShootingAttempts keeps a 2-for-2 game from topping the shooting
// leaderboard over a full season of volume.
const minShootingAttempts = 20

// GetTeamOverview aggregates the stored season into a dashboard payload.
// Counting leaders are per-game averages over games actually played; the
// shooting leaderboard is aggregate FG% from summed makes over summed
// attempts with a minimum attempt threshold.
func (s *AnalyticsService) GetTeamOverview(ctx context.Context, gameType string) (*TeamOverview, error) {
	games, err := s.gameRepo.List(ctx, gameType)
	if err != nil {
		return nil, fmt.Errorf("listing games: %w", err)
	}

	lines, err := s.statsRepo.GetAllLines(ctx, gameType)
	if err != nil {
		return nil, fmt.Errorf("fetching stat lines: %w", err)
	}

	record := &TeamRecord{Games: len(games)}
	scores := make([]float64, 0, len(games))
	dates := make([]string, 0, len(games))
	for _, g := range games {
		if g.Result == "W" {
			record.Wins++
		} else {
			record.Losses++
		}
		record.PointsFor += g.TeamScore
		record.PointsAgainst += g.OpponentScore
		scores = append(scores, float64(g.TeamScore))
		dates = append(dates, g.Date)
	}

	overview := &TeamOverview{
		Record:     record,
		WinPct:     analytics.SafePercentage(float64(record.Wins), float64(record.Games)),
		PPG:        analytics.SafeDivide(float64(record.PointsFor), float64(record.Games), 0),
		OppPPG:     analytics.SafeDivide(float64(record.PointsAgainst), float64(record.Games), 0),
		TrendDates: dates,
	}
	if record.Games > 0 {
		record.AvgMargin = analytics.SafeDivide(
			float64(record.PointsFor-record.PointsAgainst), float64(record.Games), 0)
	}
	overview.ScoringTrend = analytics.MovingAverage(scores, analytics.DefaultRollingWindow)

	byPlayer := make(map[string][]analytics.StatLine)
	for _, l := range lines {
		byPlayer[l.PlayerName] = append(byPlayer[l.PlayerName], toStatLine(l.PlayerStat))
	}

	for name, playerLines := range byPlayer {
		avg := analytics.ComputeAverages(playerLines)
		overview.Scoring = appendPerformer(overview.Scoring, name, avg.GamesPlayed, avg.PPG)
		overview.Rebounding = appendPerformer(overview.Rebounding, name, avg.GamesPlayed, avg.RPG)
		overview.Assists = appendPerformer(overview.Assists, name, avg.GamesPlayed, avg.APG)

		var fga int
		for _, l := range playerLines {
			fga += l.FGA
		}
		if fga >= minShootingAttempts {
			overview.Shooting = appendPerformer(overview.Shooting, name, avg.GamesPlayed, avg.FGPct)
		}
	}

	sortPerformers(overview.Scoring)
	sortPerformers(overview.Rebounding)
	sortPerformers(overview.Assists)
	sortPerformers(overview.Shooting)

	return overview, nil
}

func appendPerformer(list []TopPerformer, name string, games int, value float64) []TopPerformer {
	return append(list, TopPerformer{PlayerName: name, Games: games, Value: value})
}

func sortPerformers(list []TopPerformer) {
	sort.SliceStable(list, func(i, j int) bool {
		if list[i].Value != list[j].Value {
			return list[i].Value > list[j].Value
		}
		return list[i].PlayerName < list[j].PlayerName
	})
}
