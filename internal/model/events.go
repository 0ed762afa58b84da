package model

import "time"

// EventType identifies the type of event
type EventType string

const (
	// Room events
	EventRoomCreated    EventType = "room_created"
	EventMembersChanged EventType = "members_changed"
	EventHostChanged    EventType = "host_changed"
	EventChatMessage    EventType = "chat_message"

	// Round events
	EventRoundStarted EventType = "round_started"
	EventTimeUpdate   EventType = "time_update"
	EventTargetMoved  EventType = "target_moved"
	EventScoreUpdate  EventType = "score_update"
	EventSizeUpdate   EventType = "size_update"
	EventPlayerPopped EventType = "player_popped"
	EventPlayerRolled EventType = "player_rolled"
	EventRoundEnded   EventType = "round_ended"

	// Per-player error events (never broadcast to the whole room)
	EventError EventType = "error"
)

// Event is the base structure for everything the engine emits
type Event struct {
	Type      EventType `json:"type"`
	RoomCode  RoomCode  `json:"roomCode,omitempty"`
	Timestamp time.Time `json:"timestamp"`
	Payload   any       `json:"payload,omitempty"`
}

// RoomCreatedPayload contains data for room created events
type RoomCreatedPayload struct {
	Code     RoomCode `json:"roomCode"`
	GameType GameType `json:"gameType"`
}

// MembersChangedPayload carries the full member list after any
// membership change (join, rejoin, leave, disconnect, reap)
type MembersChangedPayload struct {
	Players []PlayerSummary `json:"players"`
	HostID  PlayerID        `json:"hostId"`
}

// HostChangedPayload contains data for host migration events
type HostChangedPayload struct {
	OldHostID PlayerID `json:"oldHostId"`
	NewHostID PlayerID `json:"newHostId"`
}

// ChatMessagePayload contains a relayed chat message
type ChatMessagePayload struct {
	PlayerID    PlayerID `json:"playerId"`
	DisplayName string   `json:"nickname"`
	Text        string   `json:"text"`
}

// RoundStartedPayload contains the round parameters players need up front
type RoundStartedPayload struct {
	GameType  GameType `json:"gameType"`
	Duration  int      `json:"duration"`
	BoardSize int      `json:"boardSize,omitempty"`
	Threshold int      `json:"threshold,omitempty"`
}

// TimeUpdatePayload contains the seconds remaining, broadcast each tick
type TimeUpdatePayload struct {
	Remaining int `json:"remaining"`
}

// TargetMovedPayload contains the newly active target cell
type TargetMovedPayload struct {
	Index int `json:"index"`
}

// ScoreUpdatePayload contains a player's new score after a successful claim
type ScoreUpdatePayload struct {
	PlayerID PlayerID `json:"playerId"`
	Score    int      `json:"score"`
}

// SizeUpdatePayload contains a player's new accumulator value
type SizeUpdatePayload struct {
	PlayerID PlayerID `json:"playerId"`
	Size     int      `json:"size"`
}

// PlayerPoppedPayload announces an accumulator player reaching terminal state
type PlayerPoppedPayload struct {
	PlayerID    PlayerID `json:"playerId"`
	DisplayName string   `json:"nickname"`
}

// PlayerRolledPayload announces a roll-once player's single roll
type PlayerRolledPayload struct {
	PlayerID PlayerID `json:"playerId"`
	Roll     int      `json:"roll"`
}

// Standing is one entry in the final ordered results of a round
type Standing struct {
	PlayerID    PlayerID `json:"playerId"`
	DisplayName string   `json:"nickname"`
	Score       int      `json:"score,omitempty"`
	Size        int      `json:"size,omitempty"`
	Popped      bool     `json:"popped,omitempty"`
	// PopOrder is the 1-based order in which terminal players popped;
	// 0 for players who never popped
	PopOrder int `json:"popOrder,omitempty"`
	Roll     int `json:"roll,omitempty"`
}

// RoundEndedPayload contains the final ordered standings
type RoundEndedPayload struct {
	Standings []Standing `json:"standings"`
}

// ErrorPayload is sent only to the player whose intent failed
type ErrorPayload struct {
	Intent  string `json:"intent"`
	Message string `json:"message"`
}
