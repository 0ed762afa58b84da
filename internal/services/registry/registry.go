package registry

import (
	"sync"

	"github.com/pocha-games/partyroom/internal/model"
)

// Registry maps transient connection IDs to stable player identities,
// so a player reconnecting on a new connection is recognized as the
// same participant. Entries live exactly as long as their connection.
type Registry struct {
	mu      sync.RWMutex
	players map[model.ConnID]model.PlayerID
}

// New creates an empty Registry
func New() *Registry {
	return &Registry{
		players: make(map[model.ConnID]model.PlayerID),
	}
}

// Bind associates a connection with a player identity. Rebinding the
// same connection overwrites the previous association.
func (r *Registry) Bind(conn model.ConnID, playerID model.PlayerID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.players[conn] = playerID
}

// Resolve returns the player identity acting on a connection. A false
// result is not an error: callers must treat the action as ignorable.
func (r *Registry) Resolve(conn model.ConnID) (model.PlayerID, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	playerID, ok := r.players[conn]
	return playerID, ok
}

// Unbind removes a connection's association on disconnect. It does not
// remove the player from any room; callers resolve the identity first
// and run the room-side removal themselves.
func (r *Registry) Unbind(conn model.ConnID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.players, conn)
}
