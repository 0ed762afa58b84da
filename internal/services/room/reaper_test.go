package room

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/pocha-games/partyroom/internal/dependencies/mocks"
	"github.com/pocha-games/partyroom/internal/model"
	"github.com/pocha-games/partyroom/internal/testutil"
)

type ReaperSuite struct {
	suite.Suite
	broadcaster *recordingBroadcaster
	clock       *mocks.MockClock
	random      *mocks.MockRandom
	engine      *Engine
}

func TestReaperSuite(t *testing.T) {
	suite.Run(t, new(ReaperSuite))
}

func (s *ReaperSuite) SetupTest() {
	s.broadcaster = &recordingBroadcaster{}
	s.clock = mocks.NewMockClock(time.Date(2024, 6, 1, 20, 0, 0, 0, time.UTC))
	s.random = mocks.NewMockRandom()
	s.engine = NewEngine(s.broadcaster, nil, s.clock, s.random, testutil.NopLogger())
	s.engine.tickInterval = time.Hour
}

func (s *ReaperSuite) createRoom(code, hostID string) model.RoomCode {
	s.random.QueueString(code)
	got, err := s.engine.CreateRoom(model.GameTypeBalloon, model.PlayerID(hostID), hostID, model.ConnID("conn-"+hostID))
	s.Require().NoError(err)
	return got
}

func (s *ReaperSuite) TestSweepEvictsIdlePlayersWhileIdle() {
	code := s.createRoom("123456", "host")
	s.Require().NoError(s.engine.JoinRoom(code, "p2", "p2", "conn-p2"))

	s.clock.Advance(200 * time.Second)
	// Only the host stays active
	s.engine.Touch(code, "host")

	evicted := s.engine.SweepIdle(180 * time.Second)

	s.Equal(1, evicted)
	room := s.engine.rooms[code]
	s.Equal(1, room.PlayerCount())
	s.Nil(room.GetPlayer("p2"))
}

func (s *ReaperSuite) TestSweepUsesSameRemovalPathAsLeave() {
	code := s.createRoom("123456", "host")
	s.Require().NoError(s.engine.JoinRoom(code, "p2", "p2", "conn-p2"))

	s.clock.Advance(200 * time.Second)
	s.engine.Touch(code, "p2")
	s.broadcaster.Reset()

	// The idle host is reaped: host migration and membership broadcast
	// fire exactly as they would for an explicit leave
	evicted := s.engine.SweepIdle(180 * time.Second)
	s.Equal(1, evicted)

	s.Equal(model.PlayerID("p2"), s.engine.rooms[code].HostID)
	s.Len(s.broadcaster.OfType(model.EventHostChanged), 1)
	s.Len(s.broadcaster.OfType(model.EventMembersChanged), 1)
}

func (s *ReaperSuite) TestSweepDeletesFullyIdleRoom() {
	s.createRoom("123456", "host")
	s.clock.Advance(200 * time.Second)

	evicted := s.engine.SweepIdle(180 * time.Second)

	s.Equal(1, evicted)
	s.Zero(s.engine.RoomCount())
}

func (s *ReaperSuite) TestSweepSparesActivePlayers() {
	code := s.createRoom("123456", "host")
	s.clock.Advance(60 * time.Second)

	evicted := s.engine.SweepIdle(180 * time.Second)

	s.Zero(evicted)
	s.Equal(1, s.engine.rooms[code].PlayerCount())
}

func (s *ReaperSuite) TestReaperRunsOnCadence() {
	s.createRoom("123456", "host")
	s.clock.Advance(200 * time.Second)

	reaper := NewReaper(s.engine, 10*time.Millisecond, 180*time.Second, testutil.NopLogger())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go reaper.Run(ctx)

	s.Eventually(func() bool {
		return s.engine.RoomCount() == 0
	}, 2*time.Second, 10*time.Millisecond)
}
