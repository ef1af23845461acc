package model

import "time"

// SessionID uniquely identifies a play-through
type SessionID string

// SessionPhase is the stage of the overall three-round progression
type SessionPhase string

const (
	PhaseLanding       SessionPhase = "landing"
	PhaseRound1        SessionPhase = "round1"
	PhaseInterstitial1 SessionPhase = "interstitial1"
	PhaseRound2        SessionPhase = "round2"
	PhaseInterstitial2 SessionPhase = "interstitial2"
	PhaseRound3        SessionPhase = "round3"
	PhaseComplete      SessionPhase = "complete"
)

// Session is one player's progression through the three rounds.
// Balance is the session's working balance, seeded from the starting
// grant when the first round begins and carried forward between rounds.
type Session struct {
	ID       SessionID
	PlayerID PlayerID
	Phase    SessionPhase
	Round    int // 0 before round 1, then 1..3
	Balance  int

	// RoundPhase tracks the active round's betting state machine.
	// Only meaningful while Phase is one of the round phases.
	RoundPhase RoundPhase

	// Epoch increments on every transition out of betting.
	// A countdown timer captures the epoch it was scheduled under and
	// must find it unchanged to auto-submit.
	Epoch int

	History []RoundResult

	CreatedAt time.Time
	UpdatedAt time.Time
}

// ActiveRound maps the session phase to the round accepting bets, or 0
func (s *Session) ActiveRound() int {
	switch s.Phase {
	case PhaseRound1:
		return RoundRace
	case PhaseRound2:
		return RoundRange
	case PhaseRound3:
		return RoundBattles
	default:
		return 0
	}
}

// InInterstitial reports whether the session is between rounds
func (s *Session) InInterstitial() bool {
	return s.Phase == PhaseInterstitial1 || s.Phase == PhaseInterstitial2
}
