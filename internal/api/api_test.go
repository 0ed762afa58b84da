package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/pocha-games/partyroom/internal/api"
	"github.com/pocha-games/partyroom/internal/api/response"
	"github.com/pocha-games/partyroom/internal/dependencies/clock"
	"github.com/pocha-games/partyroom/internal/dependencies/random"
	"github.com/pocha-games/partyroom/internal/model"
	"github.com/pocha-games/partyroom/internal/services/leaderboard"
	"github.com/pocha-games/partyroom/internal/services/registry"
	"github.com/pocha-games/partyroom/internal/services/room"
	"github.com/pocha-games/partyroom/internal/storage/memory"
	"github.com/pocha-games/partyroom/internal/testutil"
	"github.com/pocha-games/partyroom/internal/ws"
)

type APISuite struct {
	suite.Suite

	leaderboard *leaderboard.Service
	router      http.Handler
}

func TestAPISuite(t *testing.T) {
	suite.Run(t, new(APISuite))
}

func (s *APISuite) SetupTest() {
	logger := testutil.NopLogger()
	hub := ws.NewHub(logger)
	s.leaderboard = leaderboard.New(memory.New(), logger)
	engine := room.NewEngine(hub, s.leaderboard, clock.New(), random.New(), logger)

	s.router = api.NewRouter(api.RouterConfig{
		Logger:      logger,
		Engine:      engine,
		Leaderboard: s.leaderboard,
		WSHandler:   ws.NewHandler(hub, engine, registry.New(), logger),
	})
}

func (s *APISuite) get(path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *APISuite) TestHealth() {
	rec := s.get("/api/v1/health")
	s.Equal(http.StatusOK, rec.Code)

	var health response.HealthResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &health))
	s.Equal("ok", health.Status)
	s.Equal(0, health.Rooms)
}

func (s *APISuite) TestRankings() {
	err := s.leaderboard.RecordRound(context.Background(), model.GameTypeMole, []model.Standing{
		{PlayerID: "p1", DisplayName: "alice", Score: 7},
		{PlayerID: "p2", DisplayName: "bob", Score: 4},
	})
	s.Require().NoError(err)

	rec := s.get("/api/v1/rankings/mole")
	s.Equal(http.StatusOK, rec.Code)

	var rankings response.RankingsResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &rankings))
	s.Equal(model.GameTypeMole, rankings.GameType)
	s.Require().Len(rankings.Entries, 2)
	s.Equal(response.RankingEntry{Rank: 1, Nickname: "alice", Score: 7}, rankings.Entries[0])
	s.Equal(response.RankingEntry{Rank: 2, Nickname: "bob", Score: 4}, rankings.Entries[1])
}

func (s *APISuite) TestRankingsLimit() {
	for _, standing := range []model.Standing{
		{PlayerID: "p1", DisplayName: "alice", Score: 3},
		{PlayerID: "p2", DisplayName: "bob", Score: 2},
		{PlayerID: "p3", DisplayName: "carol", Score: 1},
	} {
		err := s.leaderboard.RecordRound(context.Background(), model.GameTypeDice, []model.Standing{standing})
		s.Require().NoError(err)
	}

	rec := s.get("/api/v1/rankings/dice?limit=2")
	s.Equal(http.StatusOK, rec.Code)

	var rankings response.RankingsResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &rankings))
	s.Len(rankings.Entries, 2)
}

func (s *APISuite) TestRankingsUnknownGameType() {
	rec := s.get("/api/v1/rankings/chess")
	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *APISuite) TestRankingsBadLimit() {
	rec := s.get("/api/v1/rankings/mole?limit=zero")
	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *APISuite) TestUnknownRouteIs404() {
	rec := s.get("/api/v1/nope")
	s.Equal(http.StatusNotFound, rec.Code)
}
