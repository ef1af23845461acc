package request

import "github.com/nexusgamble/nexusgamble-go/internal/model"

// RegisterRequest is the request body for registering a player
type RegisterRequest struct {
	DisplayName string `json:"display_name"`
}

// RaceBetRequest is the request body for the round 1 bet
type RaceBetRequest struct {
	Stake  int `json:"stake"`
	Rocket int `json:"rocket"`
}

// RangeBetRequest is the request body for the round 2 bet
type RangeBetRequest struct {
	Stake      int `json:"stake"`
	Prediction int `json:"prediction"`
}

// BattleBetsRequest is the request body for the round 3 bets
type BattleBetsRequest struct {
	Battles []model.BattleBet `json:"battles"`
}

// SetBalanceRequest is the request body for the admin balance edit
type SetBalanceRequest struct {
	Balance int `json:"balance"`
}

// RaceOverrideRequest is the request body for pinning the race winner
type RaceOverrideRequest struct {
	Winner int `json:"winner"`
}

// RangeOverrideRequest is the request body for pinning the landing range
type RangeOverrideRequest struct {
	Target int `json:"target"`
}
