package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/pocha-games/partyroom/internal/model"
	"github.com/pocha-games/partyroom/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface.
// Leaderboards are sorted sets, one per game type, with ZADD GT keeping
// each nickname's best score.
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

func (s *Storage) RecordScore(ctx context.Context, gameType model.GameType, entry model.LeaderboardEntry) error {
	return s.client.ZAddGT(ctx, leaderboardKey(gameType), redis.Z{
		Score:  float64(entry.Score),
		Member: entry.DisplayName,
	}).Err()
}

func (s *Storage) TopScores(ctx context.Context, gameType model.GameType, limit int) ([]model.LeaderboardEntry, error) {
	stop := int64(-1)
	if limit > 0 {
		stop = int64(limit) - 1
	}

	members, err := s.client.ZRevRangeWithScores(ctx, leaderboardKey(gameType), 0, stop).Result()
	if err != nil {
		return nil, err
	}

	entries := make([]model.LeaderboardEntry, 0, len(members))
	for _, m := range members {
		name, ok := m.Member.(string)
		if !ok {
			continue
		}
		entries = append(entries, model.LeaderboardEntry{
			DisplayName: name,
			Score:       int(m.Score),
		})
	}
	return entries, nil
}
