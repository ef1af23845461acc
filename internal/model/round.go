package model

// Round numbers for the three betting rounds
const (
	RoundRace    = 1 // pick one of five rockets
	RoundRange   = 2 // predict the projectile's landing range
	RoundBattles = 3 // twenty sequential nexus battles
)

// RoundPhase is the state of the currently active round
type RoundPhase string

const (
	RoundPhaseBetting   RoundPhase = "betting"
	RoundPhaseResolving RoundPhase = "resolving"
	RoundPhaseSettled   RoundPhase = "settled"
)

// BattleBet is a single battle wager within the final round.
// A zero stake skips the battle.
type BattleBet struct {
	Stake   int `json:"stake"`
	Fighter int `json:"fighter"` // 1 or 2
}

// BattleOutcome records how one battle resolved
type BattleOutcome struct {
	Index   int  `json:"index"`
	Stake   int  `json:"stake"`
	Fighter int  `json:"fighter"`
	Winner  int  `json:"winner"`
	Won     bool `json:"won"`
}

// RoundResult is the immutable record of a settled round.
// Invariant: Delta = floor(Stake * Multiplier) - Stake.
type RoundResult struct {
	Round      int             `json:"round"`
	Stake      int             `json:"stake"` // total stake for the round
	Choice     int             `json:"choice,omitempty"`
	Outcome    int             `json:"outcome,omitempty"`
	Battles    []BattleOutcome `json:"battles,omitempty"`
	Wins       int             `json:"wins,omitempty"`
	Multiplier float64         `json:"multiplier"`
	Delta      int             `json:"delta"`
}
