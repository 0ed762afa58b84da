package model

// LeaderboardEntry is one row of a game type's all-time ranking list.
// Entries are keyed by nickname and keep each nickname's best score.
type LeaderboardEntry struct {
	DisplayName string `json:"nickname"`
	Score       int    `json:"score"`
}
