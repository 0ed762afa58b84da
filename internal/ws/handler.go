package ws

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/pocha-games/partyroom/internal/services/registry"
	"github.com/pocha-games/partyroom/internal/services/room"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Clients are served from arbitrary origins (mobile webviews included)
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Handler upgrades HTTP requests to websocket sessions and wires each
// session to the engine
type Handler struct {
	hub      *Hub
	engine   *room.Engine
	registry *registry.Registry
	logger   *slog.Logger
}

// NewHandler creates a new websocket Handler
func NewHandler(hub *Hub, engine *room.Engine, reg *registry.Registry, logger *slog.Logger) *Handler {
	return &Handler{
		hub:      hub,
		engine:   engine,
		registry: reg,
		logger:   logger.With(slog.String("component", "ws")),
	}
}

// ServeWS handles a websocket upgrade request
func (h *Handler) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", slog.String("error", err.Error()))
		return
	}

	client := newClient(conn, h.hub, h.engine, h.registry, h.logger)
	h.logger.Info("client connected", slog.String("conn", string(client.connID)))

	go client.writePump()
	go client.readPump()
}
