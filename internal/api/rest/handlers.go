package rest

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/fortuna/courtvision/internal/cache"
	"github.com/fortuna/courtvision/internal/ingest"
	"github.com/fortuna/courtvision/internal/service"
	"github.com/fortuna/courtvision/internal/store"
	"github.com/fortuna/courtvision/internal/store/repository"
	"github.com/gorilla/mux"
)

// analyticsCachePrefix namespaces every cached aggregate, so one prefix
// delete after an import clears them all.
const (
	analyticsCachePrefix = "analytics:"
	analyticsCacheTTL    = 5 * time.Minute
)

// Handler contains dependencies for HTTP handlers
type Handler struct {
	db               *store.Database
	cache            *cache.RedisCache
	gamesDir         string
	gameService      *service.GameService
	statsService     *service.StatsService
	analyticsService *service.AnalyticsService
	playStatsService *service.PlayStatsService
}

// NewHandler creates a new handler
func NewHandler(db *store.Database, redisCache *cache.RedisCache, gamesDir string) *Handler {
	return &Handler{
		db:               db,
		cache:            redisCache,
		gamesDir:         gamesDir,
		gameService:      service.NewGameService(db),
		statsService:     service.NewStatsService(db),
		analyticsService: service.NewAnalyticsService(db),
		playStatsService: service.NewPlayStatsService(db),
	}
}

// HealthCheck handles health check requests
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	if err := h.db.HealthCheck(r.Context()); err != nil {
		respondError(w, http.StatusServiceUnavailable, "Database unavailable", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "courtvision",
	})
}

// ListGames returns game headers, optionally filtered by game type.
func (h *Handler) ListGames(w http.ResponseWriter, r *http.Request) {
	games, err := h.gameService.ListGames(r.Context(), r.URL.Query().Get("type"))
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch games", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"games": games,
		"count": len(games),
	})
}

// GetGame returns a game with its enriched box score.
func (h *Handler) GetGame(w http.ResponseWriter, r *http.Request) {
	gameID, ok := pathInt(w, r, "gameID")
	if !ok {
		return
	}

	game, err := h.gameService.GetGame(r.Context(), gameID)
	if err != nil {
		respondError(w, http.StatusNotFound, "Game not found", err)
		return
	}

	respondJSON(w, http.StatusOK, game)
}

// DeleteGame removes a game and its stats and events.
func (h *Handler) DeleteGame(w http.ResponseWriter, r *http.Request) {
	gameID, ok := pathInt(w, r, "gameID")
	if !ok {
		return
	}

	if err := h.gameService.DeleteGame(r.Context(), gameID); err != nil {
		respondError(w, http.StatusNotFound, "Failed to delete game", err)
		return
	}

	h.invalidateAnalytics(r)
	respondJSON(w, http.StatusOK, map[string]interface{}{"deleted": gameID})
}

// GetGameBoxScore returns the box score for a game
func (h *Handler) GetGameBoxScore(w http.ResponseWriter, r *http.Request) {
	gameID, ok := pathInt(w, r, "gameID")
	if !ok {
		return
	}

	summary, err := h.gameService.GetGame(r.Context(), gameID)
	if err != nil {
		respondError(w, http.StatusNotFound, "Box score not found", err)
		return
	}

	respondJSON(w, http.StatusOK, summary.BoxScore)
}

// GetGamePlayStats returns per-play efficiency for one game.
func (h *Handler) GetGamePlayStats(w http.ResponseWriter, r *http.Request) {
	gameID, ok := pathInt(w, r, "gameID")
	if !ok {
		return
	}

	report, err := h.playStatsService.GetPlayStats(r.Context(), gameID, r.URL.Query().Get("play_type"))
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to aggregate play stats", err)
		return
	}

	respondJSON(w, http.StatusOK, report)
}

// ListPlayers returns every player with stored stats.
func (h *Handler) ListPlayers(w http.ResponseWriter, r *http.Request) {
	players, err := h.statsService.ListPlayers(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch players", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"players": players})
}

// GetPlayerStats returns a player's averages and game log.
func (h *Handler) GetPlayerStats(w http.ResponseWriter, r *http.Request) {
	playerName := mux.Vars(r)["playerName"]

	profile, err := h.statsService.GetPlayerProfile(r.Context(), playerName, r.URL.Query().Get("type"))
	if err != nil {
		respondError(w, http.StatusNotFound, "Player not found", err)
		return
	}

	respondJSON(w, http.StatusOK, profile)
}

// GetPlayerTrend returns a rolling metric trend for a player.
func (h *Handler) GetPlayerTrend(w http.ResponseWriter, r *http.Request) {
	playerName := mux.Vars(r)["playerName"]

	metric := r.URL.Query().Get("metric")
	if metric == "" {
		metric = "points"
	}

	window := 0
	if windowStr := r.URL.Query().Get("window"); windowStr != "" {
		if wnd, err := strconv.Atoi(windowStr); err == nil && wnd > 0 && wnd <= 20 {
			window = wnd
		}
	}

	trend, err := h.analyticsService.GetPlayerTrend(r.Context(), playerName, metric,
		r.URL.Query().Get("type"), window)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Failed to compute trend", err)
		return
	}

	respondJSON(w, http.StatusOK, trend)
}

// GetPlayerPlayBreakdown returns one player's production per play.
func (h *Handler) GetPlayerPlayBreakdown(w http.ResponseWriter, r *http.Request) {
	playerName := mux.Vars(r)["playerName"]

	gameID := queryInt(r, "game", 0)
	breakdown, err := h.playStatsService.GetPlayerBreakdown(r.Context(), gameID,
		playerName, r.URL.Query().Get("play_type"))
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to compute play breakdown", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"player": playerName,
		"plays":  breakdown,
	})
}

// GetTeamRecord returns the win/loss ledger.
func (h *Handler) GetTeamRecord(w http.ResponseWriter, r *http.Request) {
	record, err := h.gameService.GetRecord(r.Context(), r.URL.Query().Get("type"))
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch record", err)
		return
	}

	respondJSON(w, http.StatusOK, record)
}

// GetTeamOverview returns the cached dashboard summary.
func (h *Handler) GetTeamOverview(w http.ResponseWriter, r *http.Request) {
	gameType := r.URL.Query().Get("type")
	cacheKey := analyticsCachePrefix + "overview:" + gameType

	if h.cache != nil {
		var cached service.TeamOverview
		if hit, err := h.cache.GetJSON(r.Context(), cacheKey, &cached); err == nil && hit {
			respondJSON(w, http.StatusOK, &cached)
			return
		}
	}

	overview, err := h.analyticsService.GetTeamOverview(r.Context(), gameType)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to build team overview", err)
		return
	}

	if h.cache != nil {
		h.cache.SetJSON(r.Context(), cacheKey, overview, analyticsCacheTTL)
	}

	respondJSON(w, http.StatusOK, overview)
}

// GetTeamAverages returns per-player averages across the roster.
func (h *Handler) GetTeamAverages(w http.ResponseWriter, r *http.Request) {
	averages, err := h.statsService.GetTeamAverages(r.Context(), r.URL.Query().Get("type"))
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to compute team averages", err)
		return
	}

	respondJSON(w, http.StatusOK, averages)
}

// ListPlays returns the play catalog.
func (h *Handler) ListPlays(w http.ResponseWriter, r *http.Request) {
	plays, err := h.playStatsService.ListPlays(r.Context(), r.URL.Query().Get("play_type"))
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch plays", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"plays": plays})
}

// GetPlayBreakdown returns per-player production within one play.
func (h *Handler) GetPlayBreakdown(w http.ResponseWriter, r *http.Request) {
	playID, ok := pathInt(w, r, "playID")
	if !ok {
		return
	}

	breakdown, err := h.playStatsService.GetPlayBreakdown(r.Context(), queryInt(r, "game", 0), playID)
	if err != nil {
		respondError(w, http.StatusNotFound, "Failed to compute play breakdown", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"play_id": playID,
		"players": breakdown,
	})
}

// GetPlayStats returns season-wide per-play efficiency, cached.
func (h *Handler) GetPlayStats(w http.ResponseWriter, r *http.Request) {
	playType := r.URL.Query().Get("play_type")
	gameID := queryInt(r, "game", 0)
	cacheKey := analyticsCachePrefix + "playstats:" + strconv.Itoa(gameID) + ":" + playType

	if h.cache != nil {
		var cached service.PlayStatsReport
		if hit, err := h.cache.GetJSON(r.Context(), cacheKey, &cached); err == nil && hit {
			respondJSON(w, http.StatusOK, &cached)
			return
		}
	}

	report, err := h.playStatsService.GetPlayStats(r.Context(), gameID, playType)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to aggregate play stats", err)
		return
	}

	if h.cache != nil {
		h.cache.SetJSON(r.Context(), cacheKey, report, analyticsCacheTTL)
	}

	respondJSON(w, http.StatusOK, report)
}

// RunImport walks the configured games directory and imports every new
// box-score file.
func (h *Handler) RunImport(w http.ResponseWriter, r *http.Request) {
	dir := r.URL.Query().Get("dir")
	if dir == "" {
		dir = h.gamesDir
	}
	if dir == "" {
		respondError(w, http.StatusBadRequest, "No games directory configured", nil)
		return
	}

	importer := ingest.NewImporter(repository.NewGameRepository(h.db))
	summary, err := importer.ImportDir(r.Context(), dir)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Import failed", err)
		return
	}

	h.invalidateAnalytics(r)
	respondJSON(w, http.StatusOK, summary)
}

func (h *Handler) invalidateAnalytics(r *http.Request) {
	if h.cache != nil {
		h.cache.InvalidatePrefix(r.Context(), analyticsCachePrefix)
	}
}

// pathInt parses an integer path variable, responding 400 on failure.
func pathInt(w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	value, err := strconv.Atoi(mux.Vars(r)[name])
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid "+name, err)
		return 0, false
	}
	return value, true
}

// queryInt parses an optional integer query parameter.
func queryInt(r *http.Request, name string, def int) int {
	if s := r.URL.Query().Get(name); s != "" {
		if v, err := strconv.Atoi(s); err == nil {
			return v
		}
	}
	return def
}

// respondJSON writes a JSON response
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondError writes an error response
func respondError(w http.ResponseWriter, status int, message string, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	response := map[string]interface{}{
		"error":  message,
		"status": status,
	}

	if err != nil {
		response["details"] = err.Error()
	}

	json.NewEncoder(w).Encode(response)
}
