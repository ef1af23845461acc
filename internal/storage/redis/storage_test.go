package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/nexusgamble/nexusgamble-go/internal/model"
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

	client := redis.NewClient(&redis.Options{
		Addr: s.mini.Addr(),
	})

	cfg := DefaultConfig()
	cfg.SessionTTL = time.Hour

	s.storage = NewWithClient(client, cfg)
	s.ctx = context.Background()
}

func (s *StorageSuite) TearDownTest() {
	if s.storage != nil {
		_ = s.storage.Close()
	}
	if s.mini != nil {
		s.mini.Close()
	}
}

// Player tests

func (s *StorageSuite) TestNextPlayerIDIsSequential() {
	a, err := s.storage.NextPlayerID(s.ctx)
	s.Require().NoError(err)
	b, err := s.storage.NextPlayerID(s.ctx)
	s.Require().NoError(err)

	s.Equal(model.PlayerID(1), a)
	s.Equal(model.PlayerID(2), b)
}

func (s *StorageSuite) TestSaveAndGetPlayer() {
	player := &model.Player{
		ID:          1,
		DisplayName: "Alice",
		Balance:     10000,
		CreatedAt:   time.Now().UTC().Truncate(time.Second),
	}

	err := s.storage.SavePlayer(s.ctx, player)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetPlayer(s.ctx, 1)
	s.Require().NoError(err)
	s.Equal(player.DisplayName, retrieved.DisplayName)
	s.Equal(player.Balance, retrieved.Balance)
}

func (s *StorageSuite) TestGetPlayerNotFound() {
	_, err := s.storage.GetPlayer(s.ctx, 99)
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *StorageSuite) TestGetPlayerByName() {
	player := &model.Player{ID: 1, DisplayName: "Alice"}
	s.Require().NoError(s.storage.SavePlayer(s.ctx, player))

	retrieved, err := s.storage.GetPlayerByName(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal(model.PlayerID(1), retrieved.ID)

	_, err = s.storage.GetPlayerByName(s.ctx, "nobody")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *StorageSuite) TestListPlayers() {
	_ = s.storage.SavePlayer(s.ctx, &model.Player{ID: 2, DisplayName: "bob"})
	_ = s.storage.SavePlayer(s.ctx, &model.Player{ID: 1, DisplayName: "alice"})

	players, err := s.storage.ListPlayers(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(players, 2)
	s.Equal(model.PlayerID(1), players[0].ID)
	s.Equal(model.PlayerID(2), players[1].ID)
}

func (s *StorageSuite) TestListPlayersEmpty() {
	players, err := s.storage.ListPlayers(s.ctx)
	s.Require().NoError(err)
	s.Empty(players)
}

// Session tests

func (s *StorageSuite) TestSaveAndGetSession() {
	session := &model.Session{
		ID:       "sess-1",
		PlayerID: 1,
		Phase:    model.PhaseRound2,
		Round:    2,
		Balance:  11500,
		History: []model.RoundResult{
			{Round: 1, Stake: 1000, Choice: 1, Outcome: 1, Multiplier: 2.5, Delta: 1500},
		},
	}

	err := s.storage.SaveSession(s.ctx, session)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetSession(s.ctx, "sess-1")
	s.Require().NoError(err)
	s.Equal(model.PhaseRound2, retrieved.Phase)
	s.Equal(11500, retrieved.Balance)
	s.Require().Len(retrieved.History, 1)
	s.Equal(1500, retrieved.History[0].Delta)
}

func (s *StorageSuite) TestSessionExpiresWithTTL() {
	_ = s.storage.SaveSession(s.ctx, &model.Session{ID: "sess-1"})

	s.mini.FastForward(2 * time.Hour)

	_, err := s.storage.GetSession(s.ctx, "sess-1")
	s.ErrorIs(err, model.ErrSessionNotFound)
}

func (s *StorageSuite) TestDeleteSession() {
	_ = s.storage.SaveSession(s.ctx, &model.Session{ID: "sess-1"})

	err := s.storage.DeleteSession(s.ctx, "sess-1")
	s.Require().NoError(err)

	_, err = s.storage.GetSession(s.ctx, "sess-1")
	s.ErrorIs(err, model.ErrSessionNotFound)
}

// Override tests

func (s *StorageSuite) TestOverridesDefaultEmpty() {
	overrides, err := s.storage.GetOverrides(s.ctx)
	s.Require().NoError(err)
	s.Nil(overrides.RaceWinner)
	s.Nil(overrides.RangeTarget)
}

func (s *StorageSuite) TestSaveAndGetOverrides() {
	winner := 3
	target := 560
	err := s.storage.SaveOverrides(s.ctx, &model.Overrides{
		RaceWinner:  &winner,
		RangeTarget: &target,
	})
	s.Require().NoError(err)

	overrides, err := s.storage.GetOverrides(s.ctx)
	s.Require().NoError(err)
	s.Require().NotNil(overrides.RaceWinner)
	s.Require().NotNil(overrides.RangeTarget)
	s.Equal(3, *overrides.RaceWinner)
	s.Equal(560, *overrides.RangeTarget)
}

// Connection failure tests

func (s *StorageSuite) TestConnectionFailureIsTagged() {
	s.mini.Close()

	_, err := s.storage.GetPlayer(s.ctx, 1)
	s.ErrorIs(err, model.ErrStorageUnavailable)
}
