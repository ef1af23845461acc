package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/nexusgamble/nexusgamble-go/internal/model"
	"github.com/nexusgamble/nexusgamble-go/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu sync.RWMutex

	nextPlayerID model.PlayerID
	players      map[model.PlayerID]*model.Player
	nameIndex    map[string]model.PlayerID
	sessions     map[model.SessionID]*model.Session
	overrides    model.Overrides
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		nextPlayerID: 1,
		players:      make(map[model.PlayerID]*model.Player),
		nameIndex:    make(map[string]model.PlayerID),
		sessions:     make(map[model.SessionID]*model.Session),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Player operations

func (s *Storage) NextPlayerID(ctx context.Context) (model.PlayerID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextPlayerID
	s.nextPlayerID++
	return id, nil
}

func (s *Storage) SavePlayer(ctx context.Context, player *model.Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *player
	s.players[player.ID] = &copied
	s.nameIndex[nameKey(player.DisplayName)] = player.ID
	return nil
}

func (s *Storage) GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	player, ok := s.players[id]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	copied := *player
	return &copied, nil
}

func (s *Storage) GetPlayerByName(ctx context.Context, name string) (*model.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.nameIndex[nameKey(name)]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	player, ok := s.players[id]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	copied := *player
	return &copied, nil
}

func (s *Storage) ListPlayers(ctx context.Context) ([]*model.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	players := make([]*model.Player, 0, len(s.players))
	for _, p := range s.players {
		copied := *p
		players = append(players, &copied)
	}
	sort.Slice(players, func(i, j int) bool {
		return players[i].ID < players[j].ID
	})
	return players, nil
}

// Session operations

func (s *Storage) SaveSession(ctx context.Context, session *model.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *session
	copied.History = append([]model.RoundResult(nil), session.History...)
	s.sessions[session.ID] = &copied
	return nil
}

func (s *Storage) GetSession(ctx context.Context, id model.SessionID) (*model.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[id]
	if !ok {
		return nil, model.ErrSessionNotFound
	}
	copied := *session
	copied.History = append([]model.RoundResult(nil), session.History...)
	return &copied, nil
}

func (s *Storage) DeleteSession(ctx context.Context, id model.SessionID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}

// Override operations

func (s *Storage) GetOverrides(ctx context.Context) (*model.Overrides, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	copied := s.overrides
	return &copied, nil
}

func (s *Storage) SaveOverrides(ctx context.Context, overrides *model.Overrides) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.overrides = *overrides
	return nil
}

// nameKey normalizes display names for uniqueness checks
func nameKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
