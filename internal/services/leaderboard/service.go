package leaderboard

import (
	"context"
	"sort"

	"github.com/nexusgamble/nexusgamble-go/internal/model"
	"github.com/nexusgamble/nexusgamble-go/internal/services/ledger"
)

// Entry is one ranked row of the interstitial leaderboard
type Entry struct {
	Rank            int
	PlayerID        model.PlayerID
	DisplayName     string
	Credits         int
	IsCurrentPlayer bool
}

// Service ranks players by ledger balance for the interstitial display
type Service struct {
	ledger *ledger.Service
}

// New creates a new leaderboard service
func New(ledger *ledger.Service) *Service {
	return &Service{ledger: ledger}
}

// Ranking returns all players ordered by credits descending, ties
// broken by id ascending. The requesting player's row is flagged.
func (s *Service) Ranking(ctx context.Context, current model.PlayerID) ([]Entry, error) {
	players, err := s.ledger.ListPlayers(ctx)
	if err != nil {
		return nil, err
	}

	sort.Slice(players, func(i, j int) bool {
		if players[i].Balance != players[j].Balance {
			return players[i].Balance > players[j].Balance
		}
		return players[i].ID < players[j].ID
	})

	entries := make([]Entry, len(players))
	for i, p := range players {
		entries[i] = Entry{
			Rank:            i + 1,
			PlayerID:        p.ID,
			DisplayName:     p.DisplayName,
			Credits:         p.Balance,
			IsCurrentPlayer: p.ID == current,
		}
	}
	return entries, nil
}
