package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/pocha-games/partyroom/internal/model"
	"github.com/pocha-games/partyroom/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu sync.RWMutex

	// best score per nickname, per game type
	scores map[model.GameType]map[string]int
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		scores: make(map[model.GameType]map[string]int),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

func (s *Storage) RecordScore(ctx context.Context, gameType model.GameType, entry model.LeaderboardEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	board, ok := s.scores[gameType]
	if !ok {
		board = make(map[string]int)
		s.scores[gameType] = board
	}
	if cur, ok := board[entry.DisplayName]; !ok || entry.Score > cur {
		board[entry.DisplayName] = entry.Score
	}
	return nil
}

func (s *Storage) TopScores(ctx context.Context, gameType model.GameType, limit int) ([]model.LeaderboardEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	board := s.scores[gameType]
	entries := make([]model.LeaderboardEntry, 0, len(board))
	for name, score := range board {
		entries = append(entries, model.LeaderboardEntry{DisplayName: name, Score: score})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Score != entries[j].Score {
			return entries[i].Score > entries[j].Score
		}
		return entries[i].DisplayName < entries[j].DisplayName
	})

	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}
