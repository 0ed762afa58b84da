package model

import "time"

// RoomCode is the 6-digit numeric code players use to join a room
type RoomCode string

// RoomPhase represents where a room is in its round lifecycle
type RoomPhase string

const (
	PhaseIdle    RoomPhase = "idle"    // accepting joins, no round active
	PhaseRunning RoomPhase = "running" // round timer active, gameplay actions accepted
	PhaseEnded   RoomPhase = "ended"   // last round finished; a new round may start immediately
)

// GameType selects which mini-game rules a room plays
type GameType string

const (
	GameTypeMole    GameType = "mole"
	GameTypeBalloon GameType = "balloon"
	GameTypeDice    GameType = "dice"
)

// TimerHandle is the cancellable countdown owned by a running room.
// It must be stopped on every phase exit so a stale tick can never
// mutate a room after its round ended or the room was deleted.
type TimerHandle interface {
	Stop()
}

// RoundConfig holds the game-specific parameters fixed at round start
type RoundConfig struct {
	Duration  int // round length in seconds
	BoardSize int // target board edge length (target-claim games), 0 otherwise
	Threshold int // accumulator pop threshold (accumulator games), 0 otherwise

	// TargetIndex is the currently active target cell, relocated each tick.
	// -1 means no target is claimable until the next tick.
	TargetIndex int
}

// Room is an isolated game session identified by a short code
type Room struct {
	Code     RoomCode
	GameType GameType
	HostID   PlayerID
	Players  map[PlayerID]*Player
	Phase    RoomPhase
	Round    RoundConfig
	TimeLeft int // seconds remaining in the current round

	// Timer is non-nil only while Phase is PhaseRunning
	Timer TimerHandle

	CreatedAt time.Time

	// NextJoinSeq is the join-order counter backing the host migration policy
	NextJoinSeq int
}

// GetPlayer returns the player with the given ID, or nil if not a member
func (r *Room) GetPlayer(id PlayerID) *Player {
	return r.Players[id]
}

// PlayerCount returns the current number of members
func (r *Room) PlayerCount() int {
	return len(r.Players)
}

// PlayersByJoinOrder returns the members ordered by when they joined.
// Host migration picks the first entry, making the "next host" policy
// explicit rather than depending on map iteration order.
func (r *Room) PlayersByJoinOrder() []*Player {
	ordered := make([]*Player, 0, len(r.Players))
	for _, p := range r.Players {
		ordered = append(ordered, p)
	}
	for i := 1; i < len(ordered); i++ {
		for j := i; j > 0 && ordered[j].JoinSeq < ordered[j-1].JoinSeq; j-- {
			ordered[j], ordered[j-1] = ordered[j-1], ordered[j]
		}
	}
	return ordered
}

// StopTimer cancels the active round timer, if any
func (r *Room) StopTimer() {
	if r.Timer != nil {
		r.Timer.Stop()
		r.Timer = nil
	}
}
