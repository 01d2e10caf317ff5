package websocket

import (
	"testing"
	"time"
)

func trackedSession() *session {
	return &session{
		opponent:      "Tigers",
		gameType:      "Season",
		startedAt:     time.Date(2025, time.March, 14, 19, 0, 0, 0, time.UTC),
		teamScore:     9,
		opponentScore: 12,
		shots: []liveShot{
			{player: "Mills", shotType: "3pt", made: true, points: 3, playID: 1},
			{player: "Mills", shotType: "3pt"},
			{player: "Mills", shotType: "2pt", made: true, points: 2},
			{player: "Reyes", shotType: "2pt", made: true, points: 2},
			{player: "Reyes", shotType: "ft", made: true, points: 1},
			{player: "Reyes", shotType: "ft", made: true, points: 1},
		},
		turnovers: []liveTurnover{
			{player: "Mills", playID: 1},
		},
	}
}

func TestBuildPayload(t *testing.T) {
	payload := buildPayload(trackedSession(), nil)

	if payload.Source != sourceLive {
		t.Errorf("source = %q, want %q", payload.Source, sourceLive)
	}
	if payload.Meta.Opponent != "Tigers" || payload.Meta.GameType != "Season" {
		t.Errorf("meta = %+v", payload.Meta)
	}
	if payload.Meta.Date != "14/03/2025" || payload.Meta.SortDate != "2025-03-14" {
		t.Errorf("dates = %q / %q", payload.Meta.Date, payload.Meta.SortDate)
	}
	if payload.Meta.Result != "L" {
		t.Errorf("result = %q, want L (9-12)", payload.Meta.Result)
	}

	if len(payload.Players) != 2 {
		t.Fatalf("got %d players, want 2", len(payload.Players))
	}

	mills := payload.Players[0]
	if mills.Name != "Mills" {
		t.Fatalf("first player = %q, want Mills (event order)", mills.Name)
	}
	if mills.Points != 5 || mills.FGM != 2 || mills.FGA != 3 {
		t.Errorf("Mills line = %d pts %d/%d fg", mills.Points, mills.FGM, mills.FGA)
	}
	if mills.TPM != 1 || mills.TPA != 2 {
		t.Errorf("Mills threes = %d/%d, want 1/2", mills.TPM, mills.TPA)
	}
	if mills.TOV != 1 {
		t.Errorf("Mills turnovers = %d, want 1", mills.TOV)
	}
	// Percentages come from raw makes over raw attempts.
	if mills.FGPercent != 66.7 {
		t.Errorf("Mills fg%% = %v, want 66.7", mills.FGPercent)
	}

	reyes := payload.Players[1]
	if reyes.Points != 4 || reyes.FTM != 2 || reyes.FTA != 2 || reyes.FTPercent != 100.0 {
		t.Errorf("Reyes line = %+v", reyes)
	}
	// Free throws never count as field-goal attempts.
	if reyes.FGA != 1 {
		t.Errorf("Reyes fga = %d, want 1", reyes.FGA)
	}
}

func TestBuildPayloadWin(t *testing.T) {
	sess := trackedSession()
	sess.teamScore = 20
	sess.opponentScore = 12

	if got := buildPayload(sess, nil).Meta.Result; got != "W" {
		t.Errorf("result = %q, want W", got)
	}
}

func TestBuildPayloadMergesBoxScore(t *testing.T) {
	box := []boxScoreLine{
		{Player: "Mills", Minutes: "28:30", OREB: 2, DREB: 5, AST: 4, STL: 1, BLK: 1, PF: 3},
		{Player: "Reyes", Minutes: "31:00", DREB: 3, AST: 2, PF: 2},
		{Player: "Okafor", Minutes: "12:00", OREB: 1, DREB: 1},
	}

	payload := buildPayload(trackedSession(), box)
	if len(payload.Players) != 3 {
		t.Fatalf("got %d players, want 3 (box-only player included)", len(payload.Players))
	}

	mills := payload.Players[0]
	if mills.Minutes != "28:30" {
		t.Errorf("Mills minutes = %q, want 28:30", mills.Minutes)
	}
	if mills.OREB != 2 || mills.DREB != 5 || mills.REB != 7 {
		t.Errorf("Mills rebounds = %d/%d/%d, want 2/5/7 (reb = oreb + dreb)",
			mills.OREB, mills.DREB, mills.REB)
	}
	if mills.AST != 4 || mills.STL != 1 || mills.BLK != 1 || mills.PF != 3 {
		t.Errorf("Mills counters = %+v", mills)
	}
	// Event-derived tallies stay authoritative over anything client-side.
	if mills.Points != 5 || mills.FGM != 2 || mills.FGA != 3 || mills.TOV != 1 {
		t.Errorf("Mills shooting line = %+v", mills)
	}

	reyes := payload.Players[1]
	if reyes.REB != 3 || reyes.AST != 2 {
		t.Errorf("Reyes line = %+v", reyes)
	}

	// Okafor played but recorded no shot or turnover.
	okafor := payload.Players[2]
	if okafor.Name != "Okafor" || okafor.Minutes != "12:00" || okafor.REB != 2 {
		t.Errorf("Okafor line = %+v", okafor)
	}
	if okafor.FGA != 0 || okafor.Points != 0 {
		t.Errorf("Okafor must carry no shooting stats, got %+v", okafor)
	}
}
