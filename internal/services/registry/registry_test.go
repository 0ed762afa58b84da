package registry

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/pocha-games/partyroom/internal/model"
)

type RegistrySuite struct {
	suite.Suite
	registry *Registry
}

func TestRegistrySuite(t *testing.T) {
	suite.Run(t, new(RegistrySuite))
}

func (s *RegistrySuite) SetupTest() {
	s.registry = New()
}

func (s *RegistrySuite) TestBindAndResolve() {
	s.registry.Bind("conn-1", "player-1")

	playerID, ok := s.registry.Resolve("conn-1")
	s.True(ok)
	s.Equal(model.PlayerID("player-1"), playerID)
}

func (s *RegistrySuite) TestResolveUnboundConnection() {
	_, ok := s.registry.Resolve("conn-unknown")
	s.False(ok)
}

func (s *RegistrySuite) TestRebindOverwrites() {
	s.registry.Bind("conn-1", "player-1")
	s.registry.Bind("conn-1", "player-2")

	playerID, ok := s.registry.Resolve("conn-1")
	s.True(ok)
	s.Equal(model.PlayerID("player-2"), playerID)
}

func (s *RegistrySuite) TestTwoConnectionsForSamePlayer() {
	// A reconnecting player binds a new connection; the old binding
	// stays until that connection disconnects
	s.registry.Bind("conn-old", "player-1")
	s.registry.Bind("conn-new", "player-1")

	playerID, ok := s.registry.Resolve("conn-old")
	s.True(ok)
	s.Equal(model.PlayerID("player-1"), playerID)

	playerID, ok = s.registry.Resolve("conn-new")
	s.True(ok)
	s.Equal(model.PlayerID("player-1"), playerID)
}

func (s *RegistrySuite) TestUnbind() {
	s.registry.Bind("conn-1", "player-1")
	s.registry.Unbind("conn-1")

	_, ok := s.registry.Resolve("conn-1")
	s.False(ok)
}

func (s *RegistrySuite) TestUnbindUnknownConnectionIsNoop() {
	s.registry.Unbind("conn-unknown")
}
