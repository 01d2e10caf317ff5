package analytics

import "sort"

// ShotInput is one tagged or untagged field-goal attempt fed to the play
// aggregator. PlayID 0 means the shot was not tagged with a play. Free
// throws never enter the aggregator; a trip to the line is credited to the
// possession that drew the foul, not counted again.
type ShotInput struct {
	PlayID  int
	Player  string
	IsThree bool
	Made    bool
	Points  int
}

// TurnoverInput is one turnover event, optionally tagged with a play.
type TurnoverInput struct {
	PlayID int
	Player string
}

// PlayRef identifies a catalog play for labeling aggregated output.
type PlayRef struct {
	PlayID   int
	Name     string
	PlayType string
}

// PlayStats is the per-play efficiency report. A possession here is an
// attempt or a turnover; plays that produced neither are excluded.
type PlayStats struct {
	PlayID      int     `json:"play_id"`
	Name        string  `json:"name"`
	PlayType    string  `json:"play_type"`
	Possessions int     `json:"possessions"`
	Points      int     `json:"points"`
	Attempts    int     `json:"attempts"`
	Makes       int     `json:"makes"`
	Threes      int     `json:"threes_made"`
	Turnovers   int     `json:"turnovers"`
	PPP         float64 `json:"ppp"`
	ScorePct    float64 `json:"score_pct"`
	TurnoverPct float64 `json:"turnover_pct"`
	FGPct       float64 `json:"fg_pct"`
	EFGPct      float64 `json:"efg_pct"`
}

// PlayerPlayStats is one player's production within a single play, used by
// both the play->player and player->play breakdowns.
type PlayerPlayStats struct {
	PlayID      int     `json:"play_id"`
	Name        string  `json:"name"`
	PlayType    string  `json:"play_type"`
	Player      string  `json:"player"`
	Possessions int     `json:"possessions"`
	Points      int     `json:"points"`
	Attempts    int     `json:"attempts"`
	Makes       int     `json:"makes"`
	Turnovers   int     `json:"turnovers"`
	PPP         float64 `json:"ppp"`
	FGPct       float64 `json:"fg_pct"`
}

// UntrackedCoverage reports how much of the shot and turnover volume carried
// a play tag, so a dashboard can show whether the tracked numbers are
// representative of the whole sample.
type UntrackedCoverage struct {
	TotalShots        int     `json:"total_shots"`
	TaggedShots       int     `json:"tagged_shots"`
	TotalTurnovers    int     `json:"total_turnovers"`
	TaggedTurnovers   int     `json:"tagged_turnovers"`
	ShotCoveragePct   float64 `json:"shot_coverage_pct"`
	TurnoverCovPct    float64 `json:"turnover_coverage_pct"`
	OverallCoverage   float64 `json:"overall_coverage_pct"`
	UntrackedPct      float64 `json:"untracked_pct"`
	UntaggedPoints    int     `json:"untagged_points"`
	UntaggedTurnovers int     `json:"untagged_turnovers"`
}

type playAccumulator struct {
	points    int
	attempts  int
	makes     int
	threes    int
	turnovers int
	scores    int
}

// AggregatePlayStats folds tagged shot and turnover events into per-play
// efficiency lines, sorted by possession volume descending. Untagged events
// (PlayID 0) and plays with zero possessions are excluded.
func AggregatePlayStats(catalog []PlayRef, shots []ShotInput, turnovers []TurnoverInput) []PlayStats {
	acc := make(map[int]*playAccumulator)
	get := func(playID int) *playAccumulator {
		a, ok := acc[playID]
		if !ok {
			a = &playAccumulator{}
			acc[playID] = a
		}
		return a
	}

	for _, s := range shots {
		if s.PlayID == 0 {
			continue
		}
		a := get(s.PlayID)
		a.attempts++
		a.points += s.Points
		if s.Made {
			a.makes++
			a.scores++
			if s.IsThree {
				a.threes++
			}
		}
	}
	for _, t := range turnovers {
		if t.PlayID == 0 {
			continue
		}
		get(t.PlayID).turnovers++
	}

	var out []PlayStats
	for _, ref := range catalog {
		a, ok := acc[ref.PlayID]
		if !ok {
			continue
		}
		poss := a.attempts + a.turnovers
		if poss == 0 {
			continue
		}
		out = append(out, PlayStats{
			PlayID:      ref.PlayID,
			Name:        ref.Name,
			PlayType:    ref.PlayType,
			Possessions: poss,
			Points:      a.points,
			Attempts:    a.attempts,
			Makes:       a.makes,
			Threes:      a.threes,
			Turnovers:   a.turnovers,
			PPP:         round2(SafeDivide(float64(a.points), float64(poss), 0)),
			ScorePct:    SafePercentage(float64(a.scores), float64(poss)),
			TurnoverPct: SafePercentage(float64(a.turnovers), float64(poss)),
			FGPct:       SafePercentage(float64(a.makes), float64(a.attempts)),
			EFGPct:      EffectiveFGPct(a.makes, a.threes, a.attempts),
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Possessions > out[j].Possessions
	})
	return out
}

// PlayPlayerBreakdown splits one play's events by player, showing who runs
// the play best. Same possession definition and ordering as the play report.
func PlayPlayerBreakdown(ref PlayRef, shots []ShotInput, turnovers []TurnoverInput) []PlayerPlayStats {
	acc := make(map[string]*playAccumulator)
	get := func(player string) *playAccumulator {
		a, ok := acc[player]
		if !ok {
			a = &playAccumulator{}
			acc[player] = a
		}
		return a
	}

	for _, s := range shots {
		if s.PlayID != ref.PlayID {
			continue
		}
		a := get(s.Player)
		a.attempts++
		a.points += s.Points
		if s.Made {
			a.makes++
		}
	}
	for _, t := range turnovers {
		if t.PlayID != ref.PlayID {
			continue
		}
		get(t.Player).turnovers++
	}

	return finishPlayerLines(ref, acc)
}

// PlayerPlayBreakdown is the inverse view: one player's production across
// every play they were tagged in.
func PlayerPlayBreakdown(player string, catalog []PlayRef, shots []ShotInput, turnovers []TurnoverInput) []PlayerPlayStats {
	acc := make(map[int]*playAccumulator)
	get := func(playID int) *playAccumulator {
		a, ok := acc[playID]
		if !ok {
			a = &playAccumulator{}
			acc[playID] = a
		}
		return a
	}

	for _, s := range shots {
		if s.Player != player || s.PlayID == 0 {
			continue
		}
		a := get(s.PlayID)
		a.attempts++
		a.points += s.Points
		if s.Made {
			a.makes++
		}
	}
	for _, t := range turnovers {
		if t.Player != player || t.PlayID == 0 {
			continue
		}
		get(t.PlayID).turnovers++
	}

	var out []PlayerPlayStats
	for _, ref := range catalog {
		a, ok := acc[ref.PlayID]
		if !ok {
			continue
		}
		poss := a.attempts + a.turnovers
		if poss == 0 {
			continue
		}
		out = append(out, playerLine(ref, player, a, poss))
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Possessions > out[j].Possessions
	})
	return out
}

// ComputeUntrackedCoverage measures tag coverage from the raw event totals,
// including untagged events that the per-play reports filter out.
func ComputeUntrackedCoverage(shots []ShotInput, turnovers []TurnoverInput) UntrackedCoverage {
	var cov UntrackedCoverage
	cov.TotalShots = len(shots)
	cov.TotalTurnovers = len(turnovers)

	for _, s := range shots {
		if s.PlayID != 0 {
			cov.TaggedShots++
		} else if s.Made {
			cov.UntaggedPoints += s.Points
		}
	}
	for _, t := range turnovers {
		if t.PlayID != 0 {
			cov.TaggedTurnovers++
		} else {
			cov.UntaggedTurnovers++
		}
	}

	cov.ShotCoveragePct = SafePercentage(float64(cov.TaggedShots), float64(cov.TotalShots))
	cov.TurnoverCovPct = SafePercentage(float64(cov.TaggedTurnovers), float64(cov.TotalTurnovers))
	cov.OverallCoverage = SafePercentage(
		float64(cov.TaggedShots+cov.TaggedTurnovers),
		float64(cov.TotalShots+cov.TotalTurnovers),
	)
	if cov.TotalShots+cov.TotalTurnovers > 0 {
		cov.UntrackedPct = round1(100 - cov.OverallCoverage)
	}
	return cov
}

func finishPlayerLines(ref PlayRef, acc map[string]*playAccumulator) []PlayerPlayStats {
	var out []PlayerPlayStats
	for player, a := range acc {
		poss := a.attempts + a.turnovers
		if poss == 0 {
			continue
		}
		out = append(out, playerLine(ref, player, a, poss))
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Possessions != out[j].Possessions {
			return out[i].Possessions > out[j].Possessions
		}
		return out[i].Player < out[j].Player
	})
	return out
}

func playerLine(ref PlayRef, player string, a *playAccumulator, poss int) PlayerPlayStats {
	return PlayerPlayStats{
		PlayID:      ref.PlayID,
		Name:        ref.Name,
		PlayType:    ref.PlayType,
		Player:      player,
		Possessions: poss,
		Points:      a.points,
		Attempts:    a.attempts,
		Makes:       a.makes,
		Turnovers:   a.turnovers,
		PPP:         round2(SafeDivide(float64(a.points), float64(poss), 0)),
		FGPct:       SafePercentage(float64(a.makes), float64(a.attempts)),
	}
}
