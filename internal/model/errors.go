package model

import "errors"

// Common errors used across the application
var (
	// Room errors
	ErrRoomNotFound        = errors.New("room not found")
	ErrRoomFull            = errors.New("room is full")
	ErrNotInRoom           = errors.New("player is not in the room")
	ErrNotHost             = errors.New("player is not the host")
	ErrRoundInProgress     = errors.New("round is already in progress")
	ErrNoRoundInProgress   = errors.New("no round in progress")
	ErrInsufficientPlayers = errors.New("not enough players to start a round")

	// Game errors
	ErrUnknownGameType = errors.New("unknown game type")
)
