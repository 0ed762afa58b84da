package ws

import (
	"encoding/json"

	"github.com/pocha-games/partyroom/internal/model"
)

// Intent names accepted over the websocket
const (
	IntentCreateRoom = "create_room"
	IntentJoinRoom   = "join_room"
	IntentStartRound = "start_round"
	IntentAct        = "act"
	IntentChat       = "chat"
	IntentForceEnd   = "force_end"
	IntentLeaveRoom  = "leave_room"
)

// Envelope is the wire framing for inbound client intents. Outbound
// traffic is model.Event marshalled directly.
type Envelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// CreateRoomIntent asks for a fresh room with the sender as host
type CreateRoomIntent struct {
	GameType model.GameType `json:"gameType"`
	PlayerID model.PlayerID `json:"playerId,omitempty"`
	Nickname string         `json:"nickname"`
}

// JoinRoomIntent joins (or rejoins) an existing room
type JoinRoomIntent struct {
	RoomCode model.RoomCode `json:"roomCode"`
	PlayerID model.PlayerID `json:"playerId,omitempty"`
	Nickname string         `json:"nickname"`
}

// ActIntent is the game action; index is only used by target-claim games
type ActIntent struct {
	Index int `json:"index"`
}

// ChatIntent relays a chat line to the sender's room
type ChatIntent struct {
	Text string `json:"text"`
}
