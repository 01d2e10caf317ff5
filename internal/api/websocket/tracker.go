package websocket

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/fortuna/courtvision/internal/analytics"
	"github.com/fortuna/courtvision/internal/ingest"
	"github.com/fortuna/courtvision/internal/store"
	"github.com/fortuna/courtvision/internal/store/repository"
)

// sourceLive marks games persisted from the live tracker rather than a
// box-score file.
const sourceLive = "LIVE"

// command is one tracking message from a courtside device.
type command struct {
	Action string `json:"action"`

	// start_game
	Opponent string `json:"opponent,omitempty"`
	GameType string `json:"game_type,omitempty"`

	// shot / turnover
	Player   string   `json:"player,omitempty"`
	ShotType string   `json:"shot_type,omitempty"`
	Made     bool     `json:"made,omitempty"`
	PlayID   int      `json:"play_id,omitempty"`
	XLoc     *float64 `json:"x_loc,omitempty"`
	YLoc     *float64 `json:"y_loc,omitempty"`
	Quarter  int      `json:"quarter,omitempty"`

	// opponent_score
	Points int `json:"points,omitempty"`

	// finalize
	BoxScore []boxScoreLine `json:"box_score,omitempty"`
}

// boxScoreLine is the client-supplied final stat line for one player. The
// tracker only records shots and turnovers, so minutes and the remaining
// counters arrive with the finalize command and are merged with the
// event-derived shooting tallies.
type boxScoreLine struct {
	Player  string `json:"player"`
	Minutes string `json:"minutes,omitempty"`
	OREB    int    `json:"oreb,omitempty"`
	DREB    int    `json:"dreb,omitempty"`
	AST     int    `json:"ast,omitempty"`
	STL     int    `json:"stl,omitempty"`
	BLK     int    `json:"blk,omitempty"`
	PF      int    `json:"pf,omitempty"`
}

type liveShot struct {
	player   string
	shotType string
	made     bool
	points   int
	playID   int
	xLoc     *float64
	yLoc     *float64
	quarter  int
}

type liveTurnover struct {
	player  string
	playID  int
	quarter int
}

// session is one in-progress tracked game.
type session struct {
	opponent      string
	gameType      string
	startedAt     time.Time
	teamScore     int
	opponentScore int
	shots         []liveShot
	turnovers     []liveTurnover
}

var shotPoints = map[string]int{
	store.ShotTypeFT:  1,
	store.ShotType2PT: 2,
	store.ShotType3PT: 3,
}

// Tracker accumulates live events for one game at a time and persists the
// finished game through the same path imported box scores take.
type Tracker struct {
	mu        sync.Mutex
	hub       *Hub
	gameRepo  *repository.GameRepository
	eventRepo *repository.EventRepository
	session   *session
}

// NewTracker creates a new live game tracker
func NewTracker(hub *Hub, db *store.Database) *Tracker {
	return &Tracker{
		hub:       hub,
		gameRepo:  repository.NewGameRepository(db),
		eventRepo: repository.NewEventRepository(db),
	}
}

// Handle applies one tracking command and broadcasts the updated state.
// Errors go back to the issuing client only.
func (t *Tracker) Handle(c *Client, message []byte) {
	var cmd command
	if err := json.Unmarshal(message, &cmd); err != nil {
		c.Send(errorMessage(fmt.Errorf("bad command: %w", err)))
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	switch cmd.Action {
	case "start_game":
		if t.session != nil {
			c.Send(errorMessage(fmt.Errorf("a game against %s is already in progress", t.session.opponent)))
			return
		}
		if cmd.Opponent == "" {
			c.Send(errorMessage(fmt.Errorf("start_game requires an opponent")))
			return
		}
		gameType := cmd.GameType
		if gameType == "" {
			gameType = "Season"
		}
		t.session = &session{
			opponent:  cmd.Opponent,
			gameType:  gameType,
			startedAt: time.Now(),
		}

	case "shot":
		if !t.requireSession(c) {
			return
		}
		points, ok := shotPoints[cmd.ShotType]
		if !ok {
			c.Send(errorMessage(fmt.Errorf("unknown shot type %q", cmd.ShotType)))
			return
		}
		shot := liveShot{
			player:   cmd.Player,
			shotType: cmd.ShotType,
			made:     cmd.Made,
			playID:   cmd.PlayID,
			xLoc:     cmd.XLoc,
			yLoc:     cmd.YLoc,
			quarter:  cmd.Quarter,
		}
		if cmd.Made {
			shot.points = points
			t.session.teamScore += points
		}
		t.session.shots = append(t.session.shots, shot)

	case "turnover":
		if !t.requireSession(c) {
			return
		}
		t.session.turnovers = append(t.session.turnovers, liveTurnover{
			player:  cmd.Player,
			playID:  cmd.PlayID,
			quarter: cmd.Quarter,
		})

	case "opponent_score":
		if !t.requireSession(c) {
			return
		}
		t.session.opponentScore += cmd.Points

	case "finalize":
		if !t.requireSession(c) {
			return
		}
		gameID, err := t.persist(t.session, cmd.BoxScore)
		if err != nil {
			c.Send(errorMessage(fmt.Errorf("finalize: %w", err)))
			return
		}
		finished := t.session
		t.session = nil
		t.hub.Broadcast(mustJSON(map[string]interface{}{
			"type":           "game_final",
			"game_id":        gameID,
			"opponent":       finished.opponent,
			"team_score":     finished.teamScore,
			"opponent_score": finished.opponentScore,
		}))
		return

	case "state":
		// Broadcast below covers it.

	default:
		c.Send(errorMessage(fmt.Errorf("unknown action %q", cmd.Action)))
		return
	}

	t.hub.Broadcast(t.stateMessage())
}

func (t *Tracker) requireSession(c *Client) bool {
	if t.session == nil {
		c.Send(errorMessage(fmt.Errorf("no game in progress")))
		return false
	}
	return true
}

// stateMessage snapshots the live session for broadcast. Caller holds the
// lock.
func (t *Tracker) stateMessage() []byte {
	if t.session == nil {
		return mustJSON(map[string]interface{}{"type": "state", "in_progress": false})
	}
	return mustJSON(map[string]interface{}{
		"type":           "state",
		"in_progress":    true,
		"opponent":       t.session.opponent,
		"game_type":      t.session.gameType,
		"team_score":     t.session.teamScore,
		"opponent_score": t.session.opponentScore,
		"shots":          len(t.session.shots),
		"turnovers":      len(t.session.turnovers),
	})
}

// persist writes the finished session as a game plus its tracked events.
// Shooting and turnover tallies are rebuilt from the raw events; the
// client-supplied box-score lines fill in the rest.
func (t *Tracker) persist(sess *session, box []boxScoreLine) (int, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	payload := buildPayload(sess, box)

	exists, err := t.gameRepo.GameExists(ctx, payload.Meta.SortDate, payload.Meta.Opponent)
	if err != nil {
		return 0, err
	}
	if exists {
		return 0, fmt.Errorf("game on %s vs %s already stored", payload.Meta.SortDate, payload.Meta.Opponent)
	}

	gameID, err := t.gameRepo.CreateGame(ctx, payload)
	if err != nil {
		return 0, err
	}

	for _, s := range sess.shots {
		ev := &store.ShotEvent{
			GameID:     gameID,
			PlayerName: s.player,
			ShotType:   s.shotType,
			Result:     store.ShotResultMissed,
			Points:     s.points,
			PlayID:     nullInt32(s.playID),
			XLoc:       nullFloat(s.xLoc),
			YLoc:       nullFloat(s.yLoc),
			Quarter:    nullInt32(s.quarter),
		}
		if s.made {
			ev.Result = store.ShotResultMade
		}
		if err := t.eventRepo.CreateShotEvent(ctx, ev); err != nil {
			log.Printf("[ws] storing shot event for game %d: %v", gameID, err)
		}
	}
	for _, to := range sess.turnovers {
		ev := &store.GameEvent{
			GameID:     gameID,
			EventType:  store.EventTypeTurnover,
			PlayerName: to.player,
			PlayID:     nullInt32(to.playID),
			Quarter:    nullInt32(to.quarter),
		}
		if err := t.eventRepo.CreateGameEvent(ctx, ev); err != nil {
			log.Printf("[ws] storing turnover for game %d: %v", gameID, err)
		}
	}

	return gameID, nil
}

// buildPayload rebuilds per-player shooting and turnover tallies from raw
// events and merges in the client-supplied box-score lines for the counters
// the tracker never sees (minutes, rebounds, assists, steals, blocks,
// fouls). REB is always oreb + dreb.
func buildPayload(sess *session, box []boxScoreLine) *ingest.GamePayload {
	type tally struct {
		points, fgm, fga, tpm, tpa, ftm, fta, tov int
	}
	byPlayer := make(map[string]*tally)
	var order []string
	get := func(player string) *tally {
		tl, ok := byPlayer[player]
		if !ok {
			tl = &tally{}
			byPlayer[player] = tl
			order = append(order, player)
		}
		return tl
	}

	for _, s := range sess.shots {
		tl := get(s.player)
		tl.points += s.points
		switch s.shotType {
		case store.ShotTypeFT:
			tl.fta++
			if s.made {
				tl.ftm++
			}
		case store.ShotType3PT:
			tl.fga++
			tl.tpa++
			if s.made {
				tl.fgm++
				tl.tpm++
			}
		default:
			tl.fga++
			if s.made {
				tl.fgm++
			}
		}
	}
	for _, to := range sess.turnovers {
		get(to.player).tov++
	}

	boxByPlayer := make(map[string]boxScoreLine, len(box))
	for _, line := range box {
		if line.Player == "" {
			continue
		}
		boxByPlayer[line.Player] = line
		// Players with a box line but no recorded event still get a row.
		get(line.Player)
	}

	players := make([]ingest.PlayerRow, 0, len(order))
	for _, name := range order {
		tl := byPlayer[name]
		line := boxByPlayer[name]
		minutes := line.Minutes
		if minutes == "" {
			minutes = "0"
		}
		players = append(players, ingest.PlayerRow{
			Name:      name,
			Minutes:   minutes,
			Points:    tl.points,
			FGM:       tl.fgm,
			FGA:       tl.fga,
			FGPercent: analytics.SafePercentage(float64(tl.fgm), float64(tl.fga)),
			TPM:       tl.tpm,
			TPA:       tl.tpa,
			TPPercent: analytics.SafePercentage(float64(tl.tpm), float64(tl.tpa)),
			FTM:       tl.ftm,
			FTA:       tl.fta,
			FTPercent: analytics.SafePercentage(float64(tl.ftm), float64(tl.fta)),
			OREB:      line.OREB,
			DREB:      line.DREB,
			REB:       line.OREB + line.DREB,
			AST:       line.AST,
			TOV:       tl.tov,
			STL:       line.STL,
			BLK:       line.BLK,
			PF:        line.PF,
		})
	}

	result := "L"
	if sess.teamScore > sess.opponentScore {
		result = "W"
	}

	return &ingest.GamePayload{
		Meta: ingest.GameMeta{
			Opponent:      sess.opponent,
			TeamScore:     sess.teamScore,
			OpponentScore: sess.opponentScore,
			Date:          sess.startedAt.Format("02/01/2006"),
			SortDate:      sess.startedAt.Format("2006-01-02"),
			Result:        result,
			GameType:      sess.gameType,
		},
		Source:  sourceLive,
		Players: players,
	}
}

func nullInt32(v int) sql.NullInt32 {
	if v == 0 {
		return sql.NullInt32{}
	}
	return sql.NullInt32{Int32: int32(v), Valid: true}
}

func nullFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}

func errorMessage(err error) []byte {
	return mustJSON(map[string]interface{}{"type": "error", "error": err.Error()})
}

func mustJSON(v interface{}) []byte {
	data, err := json.Marshal(v)
	if err != nil {
		return []byte(`{"type":"error","error":"encoding failure"}`)
	}
	return data
}
