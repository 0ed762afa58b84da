package redis

import (
	"fmt"

	"github.com/pocha-games/partyroom/internal/model"
)

// Key prefix for all leaderboard data
const keyPrefix = "partyroom"

// leaderboardKey returns the Redis key for a game type's sorted set
func leaderboardKey(gameType model.GameType) string {
	return fmt.Sprintf("%s:leaderboard:%s", keyPrefix, gameType)
}
