package storage

import (
	"context"

	"github.com/nexusgamble/nexusgamble-go/internal/model"
)

// Storage defines the interface for data persistence
type Storage interface {
	// Player operations
	NextPlayerID(ctx context.Context) (model.PlayerID, error)
	SavePlayer(ctx context.Context, player *model.Player) error
	GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error)
	GetPlayerByName(ctx context.Context, name string) (*model.Player, error)
	ListPlayers(ctx context.Context) ([]*model.Player, error)

	// Session operations
	SaveSession(ctx context.Context, session *model.Session) error
	GetSession(ctx context.Context, id model.SessionID) (*model.Session, error)
	DeleteSession(ctx context.Context, id model.SessionID) error

	// Override operations. Overrides are a single process-wide record;
	// Get returns a zero-value Overrides when none have been set.
	GetOverrides(ctx context.Context) (*model.Overrides, error)
	SaveOverrides(ctx context.Context, overrides *model.Overrides) error
}
