package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Rules holds the tunable game parameters. Defaults match the live
// game; operators can override them with a YAML file.
type Rules struct {
	// StartingGrant is the credit balance seeded when round 1 begins
	StartingGrant int `yaml:"starting_grant"`

	// BettingWindowSeconds is the countdown before a round auto-submits
	BettingWindowSeconds int `yaml:"betting_window_seconds"`

	// Race round
	RocketCount    int     `yaml:"rocket_count"`
	RaceMultiplier float64 `yaml:"race_multiplier"`

	// Range round
	RangeMin   int            `yaml:"range_min"`
	RangeMax   int            `yaml:"range_max"`
	RangeTiers []AccuracyTier `yaml:"range_tiers"`

	// Battle round
	BattleCount int           `yaml:"battle_count"`
	BattleTiers []WinRateTier `yaml:"battle_tiers"`

	// OverrideMaxRocket caps which rockets the admin override accepts.
	// Narrower than RocketCount in the live game; kept that way.
	OverrideMaxRocket int `yaml:"override_max_rocket"`
}

// AccuracyTier maps a maximum miss distance to a payout multiplier
type AccuracyTier struct {
	MaxAccuracy int     `yaml:"max_accuracy"`
	Multiplier  float64 `yaml:"multiplier"`
}

// WinRateTier maps a minimum number of battle wins to a payout multiplier
type WinRateTier struct {
	MinWins    int     `yaml:"min_wins"`
	Multiplier float64 `yaml:"multiplier"`
}

// Default returns the standard rule set
func Default() Rules {
	return Rules{
		StartingGrant:        10000,
		BettingWindowSeconds: 30,
		RocketCount:          5,
		RaceMultiplier:       2.5,
		RangeMin:             100,
		RangeMax:             1000,
		RangeTiers: []AccuracyTier{
			{MaxAccuracy: 20, Multiplier: 5},
			{MaxAccuracy: 50, Multiplier: 3},
			{MaxAccuracy: 100, Multiplier: 2},
		},
		BattleCount: 20,
		BattleTiers: []WinRateTier{
			{MinWins: 16, Multiplier: 4},   // win rate >= 0.8
			{MinWins: 12, Multiplier: 2.5}, // >= 0.6
			{MinWins: 8, Multiplier: 1.5},  // >= 0.4
		},
		OverrideMaxRocket: 3,
	}
}

// Load reads a rules file, applying defaults for anything unset.
// An empty path returns the defaults.
func Load(path string) (Rules, error) {
	rules := Default()
	if path == "" {
		return rules, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return rules, fmt.Errorf("reading rules file: %w", err)
	}

	if err := yaml.Unmarshal(data, &rules); err != nil {
		return rules, fmt.Errorf("parsing rules file: %w", err)
	}

	if err := rules.Validate(); err != nil {
		return rules, err
	}
	return rules, nil
}

// Validate checks the rule set for internal consistency
func (r Rules) Validate() error {
	if r.StartingGrant < 0 {
		return fmt.Errorf("starting_grant must be non-negative, got %d", r.StartingGrant)
	}
	if r.RocketCount < 2 {
		return fmt.Errorf("rocket_count must be at least 2, got %d", r.RocketCount)
	}
	if r.RangeMin >= r.RangeMax {
		return fmt.Errorf("range_min %d must be below range_max %d", r.RangeMin, r.RangeMax)
	}
	if r.BattleCount < 1 {
		return fmt.Errorf("battle_count must be positive, got %d", r.BattleCount)
	}
	if r.OverrideMaxRocket < 1 || r.OverrideMaxRocket > r.RocketCount {
		return fmt.Errorf("override_max_rocket %d outside 1..%d", r.OverrideMaxRocket, r.RocketCount)
	}
	for i, tier := range r.RangeTiers {
		if tier.Multiplier < 0 {
			return fmt.Errorf("range tier %d has negative multiplier", i)
		}
	}
	for i, tier := range r.BattleTiers {
		if tier.MinWins < 0 || tier.MinWins > r.BattleCount {
			return fmt.Errorf("battle tier %d min_wins %d outside 0..%d", i, tier.MinWins, r.BattleCount)
		}
		if tier.Multiplier < 0 {
			return fmt.Errorf("battle tier %d has negative multiplier", i)
		}
	}
	return nil
}
