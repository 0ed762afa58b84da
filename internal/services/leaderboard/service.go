package leaderboard

import (
	"context"
	"log/slog"

	"github.com/pocha-games/partyroom/internal/model"
	"github.com/pocha-games/partyroom/internal/storage"
)

// DefaultTop is the number of entries served when no limit is given
const DefaultTop = 10

// Service maintains the per-game-type all-time ranking lists. It
// receives final standings from the room engine and serves the REST
// ranking endpoint. Losing a leaderboard on restart is acceptable with
// the memory backend; the Redis backend survives restarts.
type Service struct {
	storage storage.Storage
	logger  *slog.Logger
}

// New creates a new leaderboard service
func New(storage storage.Storage, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		logger:  logger.With(slog.String("component", "leaderboard")),
	}
}

// RecordRound stores each player's result from a finished round,
// keeping every nickname's best score per game type.
func (s *Service) RecordRound(ctx context.Context, gameType model.GameType, standings []model.Standing) error {
	for _, st := range standings {
		// Accumulator standings carry their result in Size
		score := st.Score
		if score == 0 {
			score = st.Size
		}
		entry := model.LeaderboardEntry{DisplayName: st.DisplayName, Score: score}
		if err := s.storage.RecordScore(ctx, gameType, entry); err != nil {
			return err
		}
	}

	s.logger.Debug("round results recorded",
		slog.String("game_type", string(gameType)),
		slog.Int("players", len(standings)))
	return nil
}

// Top returns the ranking list for a game type
func (s *Service) Top(ctx context.Context, gameType model.GameType, limit int) ([]model.LeaderboardEntry, error) {
	if limit <= 0 {
		limit = DefaultTop
	}
	return s.storage.TopScores(ctx, gameType, limit)
}
