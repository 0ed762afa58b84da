package handler

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/pocha-games/partyroom/internal/api/apierr"
	"github.com/pocha-games/partyroom/internal/api/response"
	"github.com/pocha-games/partyroom/internal/game"
	"github.com/pocha-games/partyroom/internal/model"
	"github.com/pocha-games/partyroom/internal/services/leaderboard"
)

// RankingsHandler serves per-game leaderboards
type RankingsHandler struct {
	leaderboard *leaderboard.Service
}

// NewRankingsHandler creates a new rankings handler
func NewRankingsHandler(lb *leaderboard.Service) *RankingsHandler {
	return &RankingsHandler{leaderboard: lb}
}

// Get handles GET /api/v1/rankings/{gameType}
func (h *RankingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	gameType := model.GameType(mux.Vars(r)["gameType"])
	if _, err := game.ForType(gameType); err != nil {
		apierr.WriteError(w, err)
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			apierr.WriteError(w, apierr.NewInvalidRequestError("limit must be a positive integer"))
			return
		}
		limit = parsed
	}

	entries, err := h.leaderboard.Top(r.Context(), gameType, limit)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.RankingsFromEntries(gameType, entries))
}
