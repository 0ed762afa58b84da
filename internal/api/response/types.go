package response

import "github.com/pocha-games/partyroom/internal/model"

// RankingEntry is one row of a leaderboard in API responses
type RankingEntry struct {
	Rank     int    `json:"rank"`
	Nickname string `json:"nickname"`
	Score    int    `json:"score"`
}

// RankingsResponse is the response for the rankings endpoint
type RankingsResponse struct {
	GameType model.GameType `json:"gameType"`
	Entries  []RankingEntry `json:"entries"`
}

// RankingsFromEntries converts leaderboard entries to a response,
// assigning 1-based ranks in list order
func RankingsFromEntries(gameType model.GameType, entries []model.LeaderboardEntry) RankingsResponse {
	out := make([]RankingEntry, len(entries))
	for i, e := range entries {
		out[i] = RankingEntry{
			Rank:     i + 1,
			Nickname: e.DisplayName,
			Score:    e.Score,
		}
	}
	return RankingsResponse{GameType: gameType, Entries: out}
}

// HealthResponse reports liveness plus a couple of cheap gauges
type HealthResponse struct {
	Status string `json:"status"`
	Rooms  int    `json:"rooms"`
}
