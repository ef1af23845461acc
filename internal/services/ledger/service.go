package ledger

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"

	"github.com/nexusgamble/nexusgamble-go/internal/dependencies/clock"
	"github.com/nexusgamble/nexusgamble-go/internal/model"
	"github.com/nexusgamble/nexusgamble-go/internal/storage"
)

// MinNameLength is the minimum trimmed display name length
const MinNameLength = 2

// Service owns player records and all balance mutation. Balance writes
// (admin edits and settlement write-through) are serialized per player
// id so concurrent read-modify-write cycles cannot lose updates.
type Service struct {
	storage       storage.Storage
	clock         clock.Clock
	startingGrant int
	logger        *slog.Logger

	locks sync.Map // model.PlayerID -> *sync.Mutex
}

// New creates a new ledger service. New players are seeded with
// startingGrant credits.
func New(storage storage.Storage, clock clock.Clock, startingGrant int, logger *slog.Logger) *Service {
	return &Service{
		storage:       storage,
		clock:         clock,
		startingGrant: startingGrant,
		logger:        logger,
	}
}

// CreatePlayer registers a player. Registering an existing name returns
// the existing record unchanged.
func (s *Service) CreatePlayer(ctx context.Context, name string) (*model.Player, error) {
	trimmed := strings.TrimSpace(name)
	if len(trimmed) < MinNameLength {
		return nil, model.ErrInvalidName
	}

	if existing, err := s.storage.GetPlayerByName(ctx, trimmed); err == nil {
		return existing, nil
	} else if !errors.Is(err, model.ErrPlayerNotFound) {
		return nil, err
	}

	id, err := s.storage.NextPlayerID(ctx)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	player := &model.Player{
		ID:          id,
		DisplayName: trimmed,
		Balance:     s.startingGrant,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.storage.SavePlayer(ctx, player); err != nil {
		return nil, err
	}

	s.logger.Info("player registered",
		slog.Int("player_id", int(id)),
		slog.String("display_name", trimmed),
		slog.Int("balance", player.Balance),
	)

	return player, nil
}

// GetPlayer retrieves a player by id
func (s *Service) GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	return s.storage.GetPlayer(ctx, id)
}

// GetPlayerByName retrieves a player by display name
func (s *Service) GetPlayerByName(ctx context.Context, name string) (*model.Player, error) {
	return s.storage.GetPlayerByName(ctx, strings.TrimSpace(name))
}

// ListPlayers returns all players sorted by id ascending
func (s *Service) ListPlayers(ctx context.Context) ([]*model.Player, error) {
	return s.storage.ListPlayers(ctx)
}

// SetBalance overwrites a player's balance. This is the admin path: it
// does not check session phase and can interleave with settlements,
// which is why it takes the per-player lock.
func (s *Service) SetBalance(ctx context.Context, id model.PlayerID, balance int) (*model.Player, error) {
	if balance < 0 {
		return nil, model.ErrInvalidBalance
	}

	mu := s.lockFor(id)
	mu.Lock()
	defer mu.Unlock()

	player, err := s.storage.GetPlayer(ctx, id)
	if err != nil {
		return nil, err
	}

	player.Balance = balance
	player.UpdatedAt = s.clock.Now()

	if err := s.storage.SavePlayer(ctx, player); err != nil {
		return nil, err
	}

	s.logger.Info("balance set",
		slog.Int("player_id", int(id)),
		slog.Int("balance", balance),
	)

	return player, nil
}

// ApplyDelta adjusts a player's balance by a signed delta under the
// per-player lock. The result is floored at zero: an admin edit can
// shrink the ledger balance below an in-flight stake, and the ledger
// never goes negative.
func (s *Service) ApplyDelta(ctx context.Context, id model.PlayerID, delta int) (*model.Player, error) {
	mu := s.lockFor(id)
	mu.Lock()
	defer mu.Unlock()

	player, err := s.storage.GetPlayer(ctx, id)
	if err != nil {
		return nil, err
	}

	newBalance := player.Balance + delta
	if newBalance < 0 {
		s.logger.Warn("delta would take balance negative, flooring at zero",
			slog.Int("player_id", int(id)),
			slog.Int("balance", player.Balance),
			slog.Int("delta", delta),
		)
		newBalance = 0
	}

	player.Balance = newBalance
	player.UpdatedAt = s.clock.Now()

	if err := s.storage.SavePlayer(ctx, player); err != nil {
		return nil, err
	}

	return player, nil
}

func (s *Service) lockFor(id model.PlayerID) *sync.Mutex {
	mu, _ := s.locks.LoadOrStore(id, &sync.Mutex{})
	return mu.(*sync.Mutex)
}
