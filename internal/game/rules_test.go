package game

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/pocha-games/partyroom/internal/dependencies/mocks"
	"github.com/pocha-games/partyroom/internal/model"
)

type RulesSuite struct {
	suite.Suite
	random *mocks.MockRandom
	now    time.Time
}

func TestRulesSuite(t *testing.T) {
	suite.Run(t, new(RulesSuite))
}

func (s *RulesSuite) SetupTest() {
	s.random = mocks.NewMockRandom()
	s.now = time.Date(2024, 6, 1, 20, 0, 0, 0, time.UTC)
}

func (s *RulesSuite) player(id string) *model.Player {
	return &model.Player{ID: model.PlayerID(id), DisplayName: id}
}

func (s *RulesSuite) TestForTypeKnownTypes() {
	for _, t := range []model.GameType{model.GameTypeMole, model.GameTypeBalloon, model.GameTypeDice} {
		rules, err := ForType(t)
		s.Require().NoError(err)
		s.Equal(t, rules.Type())
	}
}

func (s *RulesSuite) TestForTypeUnknown() {
	_, err := ForType("poker")
	s.ErrorIs(err, model.ErrUnknownGameType)
}

// Mole (target-claim)

func (s *RulesSuite) TestMoleNewRoundPicksInitialTarget() {
	s.random.QueueIntn(4)

	cfg := MoleRules{}.NewRound(s.random)

	s.Equal(20, cfg.Duration)
	s.Equal(3, cfg.BoardSize)
	s.Equal(4, cfg.TargetIndex)
}

func (s *RulesSuite) TestMoleTickRelocatesTarget() {
	room := &model.Room{Round: model.RoundConfig{TargetIndex: 2}}
	s.random.QueueIntn(7)

	event := MoleRules{}.OnTick(room, s.random)

	s.Require().NotNil(event)
	s.Equal(model.EventTargetMoved, event.Type)
	s.Equal(7, room.Round.TargetIndex)
	s.Equal(model.TargetMovedPayload{Index: 7}, event.Payload)
}

func (s *RulesSuite) TestMoleClaimMatchingIndexScoresAndClearsTarget() {
	room := &model.Room{Round: model.RoundConfig{TargetIndex: 5}}
	p := s.player("p1")

	event := MoleRules{}.Act(room, p, Action{Index: 5}, s.random, s.now)

	s.Require().NotNil(event)
	s.Equal(model.EventScoreUpdate, event.Type)
	s.Equal(1, p.Round.Score)
	s.Equal(-1, room.Round.TargetIndex)
}

func (s *RulesSuite) TestMoleClaimWrongIndexIgnored() {
	room := &model.Room{Round: model.RoundConfig{TargetIndex: 5}}
	p := s.player("p1")

	event := MoleRules{}.Act(room, p, Action{Index: 3}, s.random, s.now)

	s.Nil(event)
	s.Zero(p.Round.Score)
	s.Equal(5, room.Round.TargetIndex)
}

func (s *RulesSuite) TestMoleClaimClearedTargetIgnored() {
	// A second claim in the same tick finds the target already cleared
	room := &model.Room{Round: model.RoundConfig{TargetIndex: -1}}
	p := s.player("p2")

	event := MoleRules{}.Act(room, p, Action{Index: 5}, s.random, s.now)

	s.Nil(event)
	s.Zero(p.Round.Score)
}

// Balloon (accumulator)

func (s *RulesSuite) TestBalloonNewRoundThresholdInRange() {
	s.random.QueueIntn(49)

	cfg := BalloonRules{}.NewRound(s.random)

	s.Equal(20, cfg.Duration)
	s.Equal(99, cfg.Threshold)
}

func (s *RulesSuite) TestBalloonBlowGrowsBalloon() {
	room := &model.Room{Round: model.RoundConfig{Threshold: 60}}
	p := s.player("p1")
	s.random.QueueIntn(2) // increment 3

	event := BalloonRules{}.Act(room, p, Action{}, s.random, s.now)

	s.Require().NotNil(event)
	s.Equal(model.EventSizeUpdate, event.Type)
	s.Equal(3, p.Round.Size)
	s.False(p.Round.Popped)
}

func (s *RulesSuite) TestBalloonPopsAtThreshold() {
	room := &model.Room{Round: model.RoundConfig{Threshold: 4}}
	p := s.player("p1")
	s.random.QueueIntn(3) // increment 4

	event := BalloonRules{}.Act(room, p, Action{}, s.random, s.now)

	s.Require().NotNil(event)
	s.Equal(model.EventPlayerPopped, event.Type)
	s.True(p.Round.Popped)
	s.Equal(s.now, p.Round.PoppedAt)
}

func (s *RulesSuite) TestBalloonBlowAfterPopIgnored() {
	room := &model.Room{Round: model.RoundConfig{Threshold: 60}}
	p := s.player("p1")
	p.Round.Popped = true
	p.Round.Size = 62

	event := BalloonRules{}.Act(room, p, Action{}, s.random, s.now)

	s.Nil(event)
	s.Equal(62, p.Round.Size)
}

func (s *RulesSuite) TestBalloonTickHasNoSideEffect() {
	s.Nil(BalloonRules{}.OnTick(&model.Room{}, s.random))
}

// Dice (roll once)

func (s *RulesSuite) TestDiceRollOnce() {
	room := &model.Room{}
	p := s.player("p1")
	s.random.QueueIntn(5) // roll 6

	event := DiceRules{}.Act(room, p, Action{}, s.random, s.now)

	s.Require().NotNil(event)
	s.Equal(model.EventPlayerRolled, event.Type)
	s.Equal(6, p.Round.Roll)
	s.Equal(6, p.Round.Score)
	s.True(p.Round.Rolled)
}

func (s *RulesSuite) TestDiceSecondRollIgnored() {
	room := &model.Room{}
	p := s.player("p1")
	p.Round.Rolled = true
	p.Round.Roll = 2

	event := DiceRules{}.Act(room, p, Action{}, s.random, s.now)

	s.Nil(event)
	s.Equal(2, p.Round.Roll)
}
