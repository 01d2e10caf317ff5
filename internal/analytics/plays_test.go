package analytics

import "testing"

func pickAndRoll() PlayRef {
	return PlayRef{PlayID: 1, Name: "Pick and Roll", PlayType: "Offense"}
}

// taggedShots builds 10 attempts for play 1: 6 makes of which 3 are threes.
func taggedShots() []ShotInput {
	shots := []ShotInput{
		{PlayID: 1, Player: "Mills", IsThree: true, Made: true, Points: 3},
		{PlayID: 1, Player: "Mills", IsThree: true, Made: true, Points: 3},
		{PlayID: 1, Player: "Reyes", IsThree: true, Made: true, Points: 3},
		{PlayID: 1, Player: "Reyes", Made: true, Points: 2},
		{PlayID: 1, Player: "Reyes", Made: true, Points: 2},
		{PlayID: 1, Player: "Mills", Made: true, Points: 2},
	}
	for i := 0; i < 4; i++ {
		shots = append(shots, ShotInput{PlayID: 1, Player: "Mills"})
	}
	return shots
}

func TestAggregatePlayStats(t *testing.T) {
	catalog := []PlayRef{
		pickAndRoll(),
		{PlayID: 2, Name: "Horns", PlayType: "Offense"},
	}
	turnovers := []TurnoverInput{
		{PlayID: 1, Player: "Mills"},
		{PlayID: 1, Player: "Reyes"},
	}

	t.Run("possession efficiency", func(t *testing.T) {
		out := AggregatePlayStats(catalog, taggedShots(), turnovers)
		if len(out) != 1 {
			t.Fatalf("got %d plays, want 1 (zero-possession plays excluded)", len(out))
		}

		p := out[0]
		if p.Name != "Pick and Roll" {
			t.Errorf("name = %q", p.Name)
		}
		if p.Possessions != 12 {
			t.Errorf("possessions = %d, want 12 (10 attempts + 2 turnovers)", p.Possessions)
		}
		if p.FGPct != 60.0 {
			t.Errorf("fg%% = %v, want 60.0", p.FGPct)
		}
		if p.EFGPct != 75.0 {
			t.Errorf("efg%% = %v, want 75.0 ((6+0.5*3)/10)", p.EFGPct)
		}
		if p.TurnoverPct != 16.7 {
			t.Errorf("tov%% = %v, want 16.7 (2/12)", p.TurnoverPct)
		}
		// 3*3 + 3*2 = 15 points over 12 possessions.
		if p.Points != 15 {
			t.Errorf("points = %d, want 15", p.Points)
		}
		if p.PPP != 1.25 {
			t.Errorf("ppp = %v, want 1.25", p.PPP)
		}
		if p.ScorePct != 50.0 {
			t.Errorf("score%% = %v, want 50.0 (6 scores / 12)", p.ScorePct)
		}
	})

	t.Run("untagged events excluded", func(t *testing.T) {
		shots := append(taggedShots(), ShotInput{Player: "Okafor", Made: true, Points: 2})
		tovs := append(turnovers, TurnoverInput{Player: "Okafor"})

		out := AggregatePlayStats(catalog, shots, tovs)
		if out[0].Possessions != 12 {
			t.Errorf("possessions = %d, want 12 with untagged events ignored", out[0].Possessions)
		}
	})

	t.Run("sorted by possessions descending", func(t *testing.T) {
		shots := append(taggedShots(), ShotInput{PlayID: 2, Player: "Okafor", Made: true, Points: 2})

		out := AggregatePlayStats(catalog, shots, turnovers)
		if len(out) != 2 {
			t.Fatalf("got %d plays, want 2", len(out))
		}
		if out[0].PlayID != 1 || out[1].PlayID != 2 {
			t.Errorf("order = [%d %d], want [1 2]", out[0].PlayID, out[1].PlayID)
		}
	})

	t.Run("empty input", func(t *testing.T) {
		if out := AggregatePlayStats(catalog, nil, nil); len(out) != 0 {
			t.Errorf("got %d plays, want 0", len(out))
		}
	})
}

func TestPlayPlayerBreakdown(t *testing.T) {
	turnovers := []TurnoverInput{
		{PlayID: 1, Player: "Mills"},
		{PlayID: 1, Player: "Reyes"},
	}

	out := PlayPlayerBreakdown(pickAndRoll(), taggedShots(), turnovers)
	if len(out) != 2 {
		t.Fatalf("got %d players, want 2", len(out))
	}

	// Mills: 7 attempts + 1 turnover = 8 possessions; Reyes: 3 + 1 = 4.
	if out[0].Player != "Mills" || out[0].Possessions != 8 {
		t.Errorf("first = %s/%d, want Mills/8", out[0].Player, out[0].Possessions)
	}
	if out[1].Player != "Reyes" || out[1].Possessions != 4 {
		t.Errorf("second = %s/%d, want Reyes/4", out[1].Player, out[1].Possessions)
	}

	// Mills made two threes and one two for 8 points.
	if out[0].Points != 8 {
		t.Errorf("Mills points = %d, want 8", out[0].Points)
	}
	if out[0].PPP != 1.0 {
		t.Errorf("Mills ppp = %v, want 1.0", out[0].PPP)
	}
}

func TestPlayerPlayBreakdown(t *testing.T) {
	catalog := []PlayRef{
		pickAndRoll(),
		{PlayID: 2, Name: "Horns", PlayType: "Offense"},
	}
	shots := append(taggedShots(),
		ShotInput{PlayID: 2, Player: "Mills", Made: true, Points: 2},
		ShotInput{PlayID: 2, Player: "Reyes", Made: true, Points: 2},
	)

	out := PlayerPlayBreakdown("Mills", catalog, shots, nil)
	if len(out) != 2 {
		t.Fatalf("got %d plays, want 2", len(out))
	}
	if out[0].PlayID != 1 || out[0].Possessions != 7 {
		t.Errorf("first = play %d with %d poss, want play 1 with 7", out[0].PlayID, out[0].Possessions)
	}
	if out[1].PlayID != 2 || out[1].Possessions != 1 {
		t.Errorf("second = play %d with %d poss, want play 2 with 1", out[1].PlayID, out[1].Possessions)
	}

	// Reyes' events must not leak into Mills' breakdown.
	if out[1].Points != 2 {
		t.Errorf("Horns points = %d, want 2", out[1].Points)
	}
}

func TestComputeUntrackedCoverage(t *testing.T) {
	shots := []ShotInput{
		{PlayID: 1, Made: true, Points: 2},
		{PlayID: 1},
		{Made: true, Points: 3},
		{},
	}
	turnovers := []TurnoverInput{
		{PlayID: 1},
		{},
	}

	cov := ComputeUntrackedCoverage(shots, turnovers)
	if cov.TotalShots != 4 || cov.TaggedShots != 2 {
		t.Errorf("shots = %d/%d tagged, want 2/4", cov.TaggedShots, cov.TotalShots)
	}
	if cov.TotalTurnovers != 2 || cov.TaggedTurnovers != 1 {
		t.Errorf("turnovers = %d/%d tagged, want 1/2", cov.TaggedTurnovers, cov.TotalTurnovers)
	}
	if cov.ShotCoveragePct != 50.0 {
		t.Errorf("shot coverage = %v, want 50.0", cov.ShotCoveragePct)
	}
	if cov.OverallCoverage != 50.0 {
		t.Errorf("overall coverage = %v, want 50.0 (3/6)", cov.OverallCoverage)
	}
	if cov.UntrackedPct != 50.0 {
		t.Errorf("untracked = %v, want 50.0", cov.UntrackedPct)
	}
	if cov.UntaggedPoints != 3 {
		t.Errorf("untagged points = %d, want 3", cov.UntaggedPoints)
	}
	if cov.UntaggedTurnovers != 1 {
		t.Errorf("untagged turnovers = %d, want 1", cov.UntaggedTurnovers)
	}

	t.Run("empty input", func(t *testing.T) {
		cov := ComputeUntrackedCoverage(nil, nil)
		if cov.OverallCoverage != 0 {
			t.Errorf("overall coverage = %v, want 0", cov.OverallCoverage)
		}
		if cov.UntrackedPct != 0 {
			t.Errorf("untracked = %v, want 0 with no events", cov.UntrackedPct)
		}
	})

	t.Run("fully tagged", func(t *testing.T) {
		cov := ComputeUntrackedCoverage([]ShotInput{{PlayID: 1}}, []TurnoverInput{{PlayID: 2}})
		if cov.UntrackedPct != 0 {
			t.Errorf("untracked = %v, want 0", cov.UntrackedPct)
		}
	})
}
