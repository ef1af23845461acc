package response

import (
	"github.com/nexusgamble/nexusgamble-go/internal/model"
	"github.com/nexusgamble/nexusgamble-go/internal/services/auth"
	"github.com/nexusgamble/nexusgamble-go/internal/services/leaderboard"
)

// Player represents a player in API responses
type Player struct {
	ID          int    `json:"id"`
	DisplayName string `json:"display_name"`
	Balance     int    `json:"balance"`
}

// PlayerFromModel converts a model.Player to a response Player
func PlayerFromModel(p *model.Player) Player {
	return Player{
		ID:          int(p.ID),
		DisplayName: p.DisplayName,
		Balance:     p.Balance,
	}
}

// RegisterResponse is the response for player registration
type RegisterResponse struct {
	Player Player `json:"player"`
	Token  string `json:"token"`
}

// RegisterResponseFromToken builds the registration payload
func RegisterResponseFromToken(p *model.Player, t *auth.Token) RegisterResponse {
	return RegisterResponse{
		Player: PlayerFromModel(p),
		Token:  t.Value,
	}
}

// RoundResult represents a settled round in API responses
type RoundResult struct {
	Round      int             `json:"round"`
	Stake      int             `json:"stake"`
	Choice     int             `json:"choice,omitempty"`
	Outcome    int             `json:"outcome,omitempty"`
	Wins       int             `json:"wins,omitempty"`
	Battles    []BattleOutcome `json:"battles,omitempty"`
	Multiplier float64         `json:"multiplier"`
	Delta      int             `json:"delta"`
}

// BattleOutcome represents one resolved battle
type BattleOutcome struct {
	Index   int  `json:"index"`
	Stake   int  `json:"stake"`
	Fighter int  `json:"fighter"`
	Winner  int  `json:"winner"`
	Won     bool `json:"won"`
}

// RoundResultFromModel converts model.RoundResult
func RoundResultFromModel(r model.RoundResult) RoundResult {
	var battles []BattleOutcome
	if len(r.Battles) > 0 {
		battles = make([]BattleOutcome, len(r.Battles))
		for i, b := range r.Battles {
			battles[i] = BattleOutcome{
				Index:   b.Index,
				Stake:   b.Stake,
				Fighter: b.Fighter,
				Winner:  b.Winner,
				Won:     b.Won,
			}
		}
	}
	return RoundResult{
		Round:      r.Round,
		Stake:      r.Stake,
		Choice:     r.Choice,
		Outcome:    r.Outcome,
		Wins:       r.Wins,
		Battles:    battles,
		Multiplier: r.Multiplier,
		Delta:      r.Delta,
	}
}

// Session represents the game session state
type Session struct {
	ID         string        `json:"id"`
	PlayerID   int           `json:"player_id"`
	Phase      string        `json:"phase"`
	Round      int           `json:"round"`
	Balance    int           `json:"balance"`
	RoundPhase string        `json:"round_phase,omitempty"`
	History    []RoundResult `json:"history"`
}

// SessionFromModel converts model.Session
func SessionFromModel(s *model.Session) Session {
	history := make([]RoundResult, len(s.History))
	for i, r := range s.History {
		history[i] = RoundResultFromModel(r)
	}
	return Session{
		ID:         string(s.ID),
		PlayerID:   int(s.PlayerID),
		Phase:      string(s.Phase),
		Round:      s.Round,
		Balance:    s.Balance,
		RoundPhase: string(s.RoundPhase),
		History:    history,
	}
}

// LeaderboardEntry is one ranked leaderboard row
type LeaderboardEntry struct {
	Rank            int    `json:"rank"`
	PlayerID        int    `json:"player_id"`
	DisplayName     string `json:"display_name"`
	Credits         int    `json:"credits"`
	IsCurrentPlayer bool   `json:"is_current_player,omitempty"`
}

// LeaderboardFromEntries converts leaderboard entries
func LeaderboardFromEntries(entries []leaderboard.Entry) []LeaderboardEntry {
	out := make([]LeaderboardEntry, len(entries))
	for i, e := range entries {
		out[i] = LeaderboardEntry{
			Rank:            e.Rank,
			PlayerID:        int(e.PlayerID),
			DisplayName:     e.DisplayName,
			Credits:         e.Credits,
			IsCurrentPlayer: e.IsCurrentPlayer,
		}
	}
	return out
}

// Overrides represents the admin override record
type Overrides struct {
	RaceWinner  *int `json:"race_winner"`
	RangeTarget *int `json:"range_target"`
}

// OverridesFromModel converts model.Overrides
func OverridesFromModel(o *model.Overrides) Overrides {
	return Overrides{
		RaceWinner:  o.RaceWinner,
		RangeTarget: o.RangeTarget,
	}
}
