package handler

import (
	"net/http"

	"github.com/pocha-games/partyroom/internal/api/response"
	"github.com/pocha-games/partyroom/internal/services/room"
)

// HealthHandler serves the liveness endpoint
type HealthHandler struct {
	engine *room.Engine
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(engine *room.Engine) *HealthHandler {
	return &HealthHandler{engine: engine}
}

// Get handles GET /api/v1/health
func (h *HealthHandler) Get(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, response.HealthResponse{
		Status: "ok",
		Rooms:  h.engine.RoomCount(),
	})
}
