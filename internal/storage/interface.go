package storage

import (
	"context"

	"github.com/pocha-games/partyroom/internal/model"
)

// Storage defines the interface for leaderboard persistence. Room and
// round state never goes through here: rooms are ephemeral and live
// only in the engine's memory.
type Storage interface {
	// RecordScore stores an entry, keeping the best score per nickname
	RecordScore(ctx context.Context, gameType model.GameType, entry model.LeaderboardEntry) error

	// TopScores returns up to limit entries ordered by score descending
	TopScores(ctx context.Context, gameType model.GameType, limit int) ([]model.LeaderboardEntry, error)
}
