package redis

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/nexusgamble/nexusgamble-go/internal/model"
	"github.com/nexusgamble/nexusgamble-go/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Player operations

func (s *Storage) NextPlayerID(ctx context.Context) (model.PlayerID, error) {
	id, err := s.client.Incr(ctx, playerSeqKey()).Result()
	if err != nil {
		return 0, wrapErr(err)
	}
	return model.PlayerID(id), nil
}

func (s *Storage) SavePlayer(ctx context.Context, player *model.Player) error {
	data, err := json.Marshal(player)
	if err != nil {
		return err
	}

	key := playerKey(player.ID)

	// Use pipeline for atomic save + index updates
	pipe := s.client.Pipeline()
	pipe.Set(ctx, key, data, 0)
	pipe.SAdd(ctx, playerIndexKey(), key)
	pipe.Set(ctx, nameIndexKey(player.DisplayName), int64(player.ID), 0)
	_, err = pipe.Exec(ctx)
	return wrapErr(err)
}

func (s *Storage) GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	data, err := s.client.Get(ctx, playerKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrPlayerNotFound
		}
		return nil, wrapErr(err)
	}

	var player model.Player
	if err := json.Unmarshal(data, &player); err != nil {
		return nil, err
	}
	return &player, nil
}

func (s *Storage) GetPlayerByName(ctx context.Context, name string) (*model.Player, error) {
	idStr, err := s.client.Get(ctx, nameIndexKey(name)).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrPlayerNotFound
		}
		return nil, wrapErr(err)
	}

	return s.GetPlayer(ctx, model.PlayerID(idStr))
}

func (s *Storage) ListPlayers(ctx context.Context) ([]*model.Player, error) {
	keys, err := s.client.SMembers(ctx, playerIndexKey()).Result()
	if err != nil {
		return nil, wrapErr(err)
	}

	if len(keys) == 0 {
		return []*model.Player{}, nil
	}

	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, wrapErr(err)
	}

	players := make([]*model.Player, 0, len(values))
	for _, val := range values {
		if val == nil {
			continue
		}
		var player model.Player
		if err := json.Unmarshal([]byte(val.(string)), &player); err != nil {
			continue // Skip invalid data
		}
		players = append(players, &player)
	}

	sort.Slice(players, func(i, j int) bool {
		return players[i].ID < players[j].ID
	})
	return players, nil
}

// Session operations

func (s *Storage) SaveSession(ctx context.Context, session *model.Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return err
	}

	return wrapErr(s.client.Set(ctx, sessionKey(session.ID), data, s.cfg.SessionTTL).Err())
}

func (s *Storage) GetSession(ctx context.Context, id model.SessionID) (*model.Session, error) {
	data, err := s.client.Get(ctx, sessionKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrSessionNotFound
		}
		return nil, wrapErr(err)
	}

	var session model.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func (s *Storage) DeleteSession(ctx context.Context, id model.SessionID) error {
	return wrapErr(s.client.Del(ctx, sessionKey(id)).Err())
}

// Override operations

func (s *Storage) GetOverrides(ctx context.Context) (*model.Overrides, error) {
	data, err := s.client.Get(ctx, overridesKey()).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return &model.Overrides{}, nil
		}
		return nil, wrapErr(err)
	}

	var overrides model.Overrides
	if err := json.Unmarshal(data, &overrides); err != nil {
		return nil, err
	}
	return &overrides, nil
}

func (s *Storage) SaveOverrides(ctx context.Context, overrides *model.Overrides) error {
	data, err := json.Marshal(overrides)
	if err != nil {
		return err
	}

	return wrapErr(s.client.Set(ctx, overridesKey(), data, 0).Err())
}

// wrapErr tags connection-level failures so the API layer can report
// them distinctly from domain errors
func wrapErr(err error) error {
	if err == nil || errors.Is(err, redis.Nil) {
		return err
	}
	return errors.Join(model.ErrStorageUnavailable, err)
}
