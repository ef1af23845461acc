package redis

import (
	"fmt"
	"strings"

	"github.com/nexusgamble/nexusgamble-go/internal/model"
)

// Key prefix for all game-related data
const keyPrefix = "nxgamble"

// playerKey returns the Redis key for a Player
func playerKey(id model.PlayerID) string {
	return fmt.Sprintf("%s:player:%d", keyPrefix, id)
}

// playerSeqKey returns the Redis key for the player ID counter
func playerSeqKey() string {
	return fmt.Sprintf("%s:player_seq", keyPrefix)
}

// playerIndexKey returns the Redis key for the SET of player keys
func playerIndexKey() string {
	return fmt.Sprintf("%s:idx:players", keyPrefix)
}

// nameIndexKey returns the Redis key for the name -> player_id index
func nameIndexKey(name string) string {
	return fmt.Sprintf("%s:idx:name:%s", keyPrefix, strings.ToLower(strings.TrimSpace(name)))
}

// sessionKey returns the Redis key for a Session
func sessionKey(id model.SessionID) string {
	return fmt.Sprintf("%s:session:%s", keyPrefix, id)
}

// overridesKey returns the Redis key for the admin overrides record
func overridesKey() string {
	return fmt.Sprintf("%s:overrides", keyPrefix)
}
