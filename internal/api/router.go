package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/pocha-games/partyroom/internal/api/handler"
	"github.com/pocha-games/partyroom/internal/api/middleware"
	"github.com/pocha-games/partyroom/internal/services/leaderboard"
	"github.com/pocha-games/partyroom/internal/services/room"
	"github.com/pocha-games/partyroom/internal/ws"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger      *slog.Logger
	Engine      *room.Engine
	Leaderboard *leaderboard.Service
	WSHandler   *ws.Handler
}

// NewRouter creates a new API router with all routes configured.
// Gameplay traffic rides the websocket; the HTTP surface is read-only.
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	healthHandler := handler.NewHealthHandler(cfg.Engine)
	rankingsHandler := handler.NewRankingsHandler(cfg.Leaderboard)

	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)

	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)

	api.HandleFunc("/health", healthHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/rankings/{gameType}", rankingsHandler.Get).Methods(http.MethodGet)

	// The upgrade request never goes through the logging middleware:
	// a hijacked connection has no final status to report
	r.HandleFunc("/ws", cfg.WSHandler.ServeWS)

	return r
}
