package analytics

// StatLine is one game's counting stats for one player, expressed as
// primitives so the engine never depends on persistence types.
type StatLine struct {
	Minutes float64
	Points  int
	FGM     int
	FGA     int
	TPM     int
	TPA     int
	FTM     int
	FTA     int
	OREB    int
	DREB    int
	REB     int
	AST     int
	TOV     int
	STL     int
	BLK     int
	PF      int
}

// Averages holds per-game means plus aggregate shooting percentages.
type Averages struct {
	GamesPlayed int     `json:"games_played"`
	MPG         float64 `json:"mpg"`
	PPG         float64 `json:"ppg"`
	RPG         float64 `json:"rpg"`
	APG         float64 `json:"apg"`
	SPG         float64 `json:"spg"`
	BPG         float64 `json:"bpg"`
	TPG         float64 `json:"tpg"`
	FPG         float64 `json:"fpg"`
	FGPct       float64 `json:"fg_pct"`
	TPPct       float64 `json:"tp_pct"`
	FTPct       float64 `json:"ft_pct"`
	TSPct       float64 `json:"ts_pct"`
	EFGPct      float64 `json:"efg_pct"`
	AvgPoss     float64 `json:"avg_possessions"`
}

// ComputeAverages aggregates N game lines into per-game averages.
//
// Shooting percentages are re-derived from summed makes over summed
// attempts, never averaged per game: the mean of per-game percentages
// overweights low-volume games (1/1 then 0/10 is 9.1%, not 50%).
func ComputeAverages(lines []StatLine) Averages {
	if len(lines) == 0 {
		return Averages{}
	}

	var sum StatLine
	var totalMinutes, totalPoss float64
	for _, l := range lines {
		sum.Points += l.Points
		sum.FGM += l.FGM
		sum.FGA += l.FGA
		sum.TPM += l.TPM
		sum.TPA += l.TPA
		sum.FTM += l.FTM
		sum.FTA += l.FTA
		sum.OREB += l.OREB
		sum.REB += l.REB
		sum.AST += l.AST
		sum.TOV += l.TOV
		sum.STL += l.STL
		sum.BLK += l.BLK
		sum.PF += l.PF
		totalMinutes += l.Minutes
		totalPoss += Possessions(l.FGA, l.FTA, l.OREB, l.TOV)
	}

	games := float64(len(lines))

	return Averages{
		GamesPlayed: len(lines),
		MPG:         round1(totalMinutes / games),
		PPG:         round1(float64(sum.Points) / games),
		RPG:         round1(float64(sum.REB) / games),
		APG:         round1(float64(sum.AST) / games),
		SPG:         round1(float64(sum.STL) / games),
		BPG:         round1(float64(sum.BLK) / games),
		TPG:         round1(float64(sum.TOV) / games),
		FPG:         round1(float64(sum.PF) / games),
		FGPct:       SafePercentage(float64(sum.FGM), float64(sum.FGA)),
		TPPct:       SafePercentage(float64(sum.TPM), float64(sum.TPA)),
		FTPct:       SafePercentage(float64(sum.FTM), float64(sum.FTA)),
		TSPct:       TrueShootingPct(sum.Points, sum.FGA, sum.FTA),
		EFGPct:      EffectiveFGPct(sum.FGM, sum.TPM, sum.FGA),
		AvgPoss:     round1(totalPoss / games),
	}
}
