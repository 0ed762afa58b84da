package redis

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/pocha-games/partyroom/internal/model"
)

type StorageSuite struct {
	suite.Suite
	mini    *miniredis.Miniredis
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.mini = miniredis.RunT(s.T())
	client := goredis.NewClient(&goredis.Options{Addr: s.mini.Addr()})
	s.storage = NewWithClient(client, DefaultConfig())
	s.ctx = context.Background()
}

func (s *StorageSuite) TearDownTest() {
	_ = s.storage.Close()
}

func (s *StorageSuite) TestTopScoresEmptyBoard() {
	entries, err := s.storage.TopScores(s.ctx, model.GameTypeMole, 10)
	s.Require().NoError(err)
	s.Empty(entries)
}

func (s *StorageSuite) TestRecordAndTop() {
	s.Require().NoError(s.storage.RecordScore(s.ctx, model.GameTypeMole, model.LeaderboardEntry{DisplayName: "alice", Score: 10}))
	s.Require().NoError(s.storage.RecordScore(s.ctx, model.GameTypeMole, model.LeaderboardEntry{DisplayName: "bob", Score: 8}))

	entries, err := s.storage.TopScores(s.ctx, model.GameTypeMole, 10)
	s.Require().NoError(err)
	s.Equal([]model.LeaderboardEntry{
		{DisplayName: "alice", Score: 10},
		{DisplayName: "bob", Score: 8},
	}, entries)
}

func (s *StorageSuite) TestRecordKeepsBestScore() {
	s.Require().NoError(s.storage.RecordScore(s.ctx, model.GameTypeBalloon, model.LeaderboardEntry{DisplayName: "alice", Score: 80}))
	s.Require().NoError(s.storage.RecordScore(s.ctx, model.GameTypeBalloon, model.LeaderboardEntry{DisplayName: "alice", Score: 30}))

	entries, err := s.storage.TopScores(s.ctx, model.GameTypeBalloon, 10)
	s.Require().NoError(err)
	s.Require().Len(entries, 1)
	s.Equal(80, entries[0].Score)
}

func (s *StorageSuite) TestTopScoresHonorsLimit() {
	for i, name := range []string{"a", "b", "c", "d"} {
		s.Require().NoError(s.storage.RecordScore(s.ctx, model.GameTypeDice, model.LeaderboardEntry{DisplayName: name, Score: i + 1}))
	}

	entries, err := s.storage.TopScores(s.ctx, model.GameTypeDice, 2)
	s.Require().NoError(err)
	s.Require().Len(entries, 2)
	s.Equal("d", entries[0].DisplayName)
	s.Equal("c", entries[1].DisplayName)
}

func (s *StorageSuite) TestBoardsAreIndependentPerGameType() {
	s.Require().NoError(s.storage.RecordScore(s.ctx, model.GameTypeMole, model.LeaderboardEntry{DisplayName: "alice", Score: 10}))

	entries, err := s.storage.TopScores(s.ctx, model.GameTypeDice, 10)
	s.Require().NoError(err)
	s.Empty(entries)
}
