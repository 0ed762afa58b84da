package leaderboard

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/pocha-games/partyroom/internal/model"
	"github.com/pocha-games/partyroom/internal/storage/memory"
	"github.com/pocha-games/partyroom/internal/testutil"
)

type ServiceSuite struct {
	suite.Suite
	service *Service
	ctx     context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.service = New(memory.New(), testutil.NopLogger())
	s.ctx = context.Background()
}

func (s *ServiceSuite) TestRecordRoundScoreGame() {
	standings := []model.Standing{
		{PlayerID: "p1", DisplayName: "alice", Score: 5},
		{PlayerID: "p2", DisplayName: "bob", Score: 3},
	}
	s.Require().NoError(s.service.RecordRound(s.ctx, model.GameTypeMole, standings))

	top, err := s.service.Top(s.ctx, model.GameTypeMole, 0)
	s.Require().NoError(err)
	s.Equal([]model.LeaderboardEntry{
		{DisplayName: "alice", Score: 5},
		{DisplayName: "bob", Score: 3},
	}, top)
}

func (s *ServiceSuite) TestRecordRoundAccumulatorGameUsesSize() {
	standings := []model.Standing{
		{PlayerID: "p1", DisplayName: "alice", Size: 80},
		{PlayerID: "p2", DisplayName: "bob", Size: 95, Popped: true, PopOrder: 1},
	}
	s.Require().NoError(s.service.RecordRound(s.ctx, model.GameTypeBalloon, standings))

	top, err := s.service.Top(s.ctx, model.GameTypeBalloon, 0)
	s.Require().NoError(err)
	s.Require().Len(top, 2)
	s.Equal("bob", top[0].DisplayName)
	s.Equal(95, top[0].Score)
}

func (s *ServiceSuite) TestRepeatRoundsKeepBestScore() {
	s.Require().NoError(s.service.RecordRound(s.ctx, model.GameTypeMole,
		[]model.Standing{{DisplayName: "alice", Score: 5}}))
	s.Require().NoError(s.service.RecordRound(s.ctx, model.GameTypeMole,
		[]model.Standing{{DisplayName: "alice", Score: 2}}))

	top, err := s.service.Top(s.ctx, model.GameTypeMole, 0)
	s.Require().NoError(err)
	s.Require().Len(top, 1)
	s.Equal(5, top[0].Score)
}
