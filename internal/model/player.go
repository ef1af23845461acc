package model

import "time"

// PlayerID uniquely identifies a player across the system.
// IDs are assigned sequentially by storage and never reused.
type PlayerID int

// Player is a registered participant with a persistent credit balance.
// The balance here is the ledger balance; a session carries its own
// working copy that is written through on settlement.
type Player struct {
	ID          PlayerID
	DisplayName string
	Balance     int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
