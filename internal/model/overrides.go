package model

// Overrides is the admin-set ground truth for rounds 1 and 2.
// A nil field means no override: the outcome authority falls back to a
// random draw. Overrides are sticky: they are read at resolution time
// and never cleared, so they apply to every subsequent resolution until
// the admin changes them.
type Overrides struct {
	RaceWinner  *int `json:"race_winner,omitempty"`
	RangeTarget *int `json:"range_target,omitempty"`
}
