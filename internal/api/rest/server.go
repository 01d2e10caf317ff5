package rest

import (
	"context"
	"fmt"
	"net/http"

	"github.com/fortuna/courtvision/internal/cache"
	"github.com/fortuna/courtvision/internal/store"
	"github.com/gorilla/mux"
)

// Server represents the REST API server
type Server struct {
	port    string
	server  *http.Server
	handler *Handler
}

// NewServer creates a new REST API server. redisCache may be nil, in which
// case aggregate endpoints hit the database every time.
func NewServer(port string, db *store.Database, redisCache *cache.RedisCache, gamesDir string) *Server {
	handler := NewHandler(db, redisCache, gamesDir)

	router := mux.NewRouter()

	// Apply middleware
	router.Use(RecoveryMiddleware)
	router.Use(LoggingMiddleware)
	router.Use(CORSMiddleware)

	// Health check
	router.HandleFunc("/health", handler.HealthCheck).Methods("GET")

	// API v1 routes
	api := router.PathPrefix("/api/v1").Subrouter()

	// Games
	api.HandleFunc("/games", handler.ListGames).Methods("GET")
	api.HandleFunc("/games/{gameID}", handler.GetGame).Methods("GET")
	api.HandleFunc("/games/{gameID}", handler.DeleteGame).Methods("DELETE")
	api.HandleFunc("/games/{gameID}/boxscore", handler.GetGameBoxScore).Methods("GET")
	api.HandleFunc("/games/{gameID}/playstats", handler.GetGamePlayStats).Methods("GET")

	// Players
	api.HandleFunc("/players", handler.ListPlayers).Methods("GET")
	api.HandleFunc("/players/{playerName}/stats", handler.GetPlayerStats).Methods("GET")
	api.HandleFunc("/players/{playerName}/trend", handler.GetPlayerTrend).Methods("GET")
	api.HandleFunc("/players/{playerName}/plays", handler.GetPlayerPlayBreakdown).Methods("GET")

	// Team
	api.HandleFunc("/team/record", handler.GetTeamRecord).Methods("GET")
	api.HandleFunc("/team/overview", handler.GetTeamOverview).Methods("GET")
	api.HandleFunc("/team/averages", handler.GetTeamAverages).Methods("GET")

	// Plays
	api.HandleFunc("/plays", handler.ListPlays).Methods("GET")
	api.HandleFunc("/plays/{playID}/breakdown", handler.GetPlayBreakdown).Methods("GET")
	api.HandleFunc("/playstats", handler.GetPlayStats).Methods("GET")

	// Import
	api.HandleFunc("/import", handler.RunImport).Methods("POST")

	return &Server{
		port:    port,
		handler: handler,
		server: &http.Server{
			Addr:    fmt.Sprintf(":%s", port),
			Handler: router,
		},
	}
}

// Start starts the REST API server
func (s *Server) Start() error {
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}
