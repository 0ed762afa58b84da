package ws

import (
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/pocha-games/partyroom/internal/model"
	"github.com/pocha-games/partyroom/internal/services/room"
)

// Hub tracks which clients are attached to which room and fans engine
// events out to them. It is the engine's Broadcaster: events arrive
// already serialized per room, so the hub only copies bytes out.
type Hub struct {
	mu     sync.RWMutex
	rooms  map[model.RoomCode]map[*Client]bool
	logger *slog.Logger
}

// NewHub creates a new Hub
func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		rooms:  make(map[model.RoomCode]map[*Client]bool),
		logger: logger.With(slog.String("component", "ws-hub")),
	}
}

// Ensure Hub implements the engine's broadcaster
var _ room.Broadcaster = (*Hub)(nil)

// Attach adds a client to a room's broadcast channel
func (h *Hub) Attach(code model.RoomCode, client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	clients, ok := h.rooms[code]
	if !ok {
		clients = make(map[*Client]bool)
		h.rooms[code] = clients
	}
	clients[client] = true
}

// Detach removes a client from a room's broadcast channel
func (h *Hub) Detach(code model.RoomCode, client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	clients, ok := h.rooms[code]
	if !ok {
		return
	}
	delete(clients, client)
	if len(clients) == 0 {
		delete(h.rooms, code)
	}
}

// BroadcastToRoom sends an event to every client attached to the room.
// Slow clients are skipped rather than allowed to stall the engine.
func (h *Hub) BroadcastToRoom(code model.RoomCode, event model.Event) {
	data, err := json.Marshal(event)
	if err != nil {
		h.logger.Error("failed to marshal event",
			slog.String("type", string(event.Type)),
			slog.String("error", err.Error()))
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for client := range h.rooms[code] {
		select {
		case client.send <- data:
		default:
			h.logger.Warn("message dropped - client buffer full",
				slog.String("room", string(code)),
				slog.String("conn", string(client.connID)))
		}
	}
}

// ClientCount returns the number of clients attached to a room
func (h *Hub) ClientCount(code model.RoomCode) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[code])
}
