package model

import "errors"

// Common errors used across the application
var (
	// Player / ledger errors
	ErrPlayerNotFound      = errors.New("player not found")
	ErrInvalidName         = errors.New("display name must be at least 2 characters")
	ErrInvalidBalance      = errors.New("balance must be a non-negative integer")
	ErrStorageUnavailable  = errors.New("storage unavailable")

	// Session errors
	ErrSessionNotFound = errors.New("session not found")
	ErrWrongPhase      = errors.New("action not valid in current phase")

	// Betting errors
	ErrInvalidStake        = errors.New("stake must be a positive integer")
	ErrInsufficientCredits = errors.New("stake exceeds available balance")
	ErrNoSelection         = errors.New("no rocket selected")
	ErrInvalidRocket       = errors.New("rocket outside valid range")
	ErrInvalidPrediction   = errors.New("prediction outside valid range")
	ErrInvalidBattleCount  = errors.New("wrong number of battle bets")
	ErrInvalidFighter      = errors.New("invalid fighter choice")

	// Override errors
	ErrInvalidOverride = errors.New("override outside allowed range")
)
