package model

import "time"

// PlayerID uniquely identifies a player; it is stable across reconnects
type PlayerID string

// ConnID identifies a single live connection. A player who reconnects
// gets a new ConnID while keeping the same PlayerID.
type ConnID string

// RoundState holds a player's game-specific mutable fields for the
// current round. It is reset to the zero value at every round start.
type RoundState struct {
	// Score is the target-claim / roll-once score
	Score int

	// Size is the accumulator value (e.g. balloon size)
	Size int

	// Popped marks the accumulator terminal state; PoppedAt records when
	Popped   bool
	PoppedAt time.Time

	// Rolled marks the roll-once terminal state
	Rolled bool
	Roll   int
}

// Player represents a room member
type Player struct {
	ID          PlayerID
	DisplayName string

	// Conn is the most recent connection claiming this player identity.
	// An older connection for the same player is superseded, not removed.
	Conn ConnID

	JoinSeq      int
	JoinedAt     time.Time
	LastActivity time.Time

	Round RoundState
}

// PlayerSummary is the wire-facing view of a member used in
// membership broadcasts
type PlayerSummary struct {
	ID          PlayerID `json:"playerId"`
	DisplayName string   `json:"nickname"`
	IsHost      bool     `json:"isHost"`
}
