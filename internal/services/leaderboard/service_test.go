package leaderboard

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/nexusgamble/nexusgamble-go/internal/dependencies/mocks"
	"github.com/nexusgamble/nexusgamble-go/internal/model"
	"github.com/nexusgamble/nexusgamble-go/internal/services/ledger"
	"github.com/nexusgamble/nexusgamble-go/internal/storage/memory"
	"github.com/nexusgamble/nexusgamble-go/internal/testutil"
)

type LeaderboardSuite struct {
	suite.Suite
	ledger  *ledger.Service
	service *Service
	ctx     context.Context
}

func TestLeaderboardSuite(t *testing.T) {
	suite.Run(t, new(LeaderboardSuite))
}

func (s *LeaderboardSuite) SetupTest() {
	store := memory.New()
	clk := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s.ledger = ledger.New(store, clk, 10000, testutil.NopLogger())
	s.service = New(s.ledger)
	s.ctx = context.Background()
}

func (s *LeaderboardSuite) addPlayer(name string, balance int) model.PlayerID {
	player, err := s.ledger.CreatePlayer(s.ctx, name)
	s.Require().NoError(err)
	_, err = s.ledger.SetBalance(s.ctx, player.ID, balance)
	s.Require().NoError(err)
	return player.ID
}

func (s *LeaderboardSuite) TestRankingOrdersByCreditsDescending() {
	s.addPlayer("alice", 5000)
	bobID := s.addPlayer("bob", 12000)
	s.addPlayer("carol", 8000)

	entries, err := s.service.Ranking(s.ctx, bobID)
	s.Require().NoError(err)
	s.Require().Len(entries, 3)

	s.Equal("bob", entries[0].DisplayName)
	s.Equal(1, entries[0].Rank)
	s.True(entries[0].IsCurrentPlayer)

	s.Equal("carol", entries[1].DisplayName)
	s.Equal(2, entries[1].Rank)

	s.Equal("alice", entries[2].DisplayName)
	s.False(entries[2].IsCurrentPlayer)
}

func (s *LeaderboardSuite) TestRankingBreaksTiesByID() {
	aliceID := s.addPlayer("alice", 5000)
	bobID := s.addPlayer("bob", 5000)

	entries, err := s.service.Ranking(s.ctx, 0)
	s.Require().NoError(err)

	s.Equal(aliceID, entries[0].PlayerID)
	s.Equal(bobID, entries[1].PlayerID)
}

func (s *LeaderboardSuite) TestRankingEmptyLedger() {
	entries, err := s.service.Ranking(s.ctx, 0)
	s.Require().NoError(err)
	s.Empty(entries)
}
