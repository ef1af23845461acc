package settlement

import (
	"math"

	"github.com/nexusgamble/nexusgamble-go/internal/config"
	"github.com/nexusgamble/nexusgamble-go/internal/model"
)

// Service converts (stake, choice, resolved outcome) into a settled
// RoundResult. Settlement is pure arithmetic: once an outcome exists it
// cannot fail. Payouts are floored to whole credits, so the invariant
// is newBalance = oldBalance - stake + floor(stake * multiplier).
type Service struct {
	rules config.Rules
}

// New creates a new settlement service
func New(rules config.Rules) *Service {
	return &Service{rules: rules}
}

// SettleRace settles round 1: fixed multiplier on a matching pick,
// total loss otherwise.
func (s *Service) SettleRace(stake, choice, winner int) model.RoundResult {
	multiplier := 0.0
	if choice == winner {
		multiplier = s.rules.RaceMultiplier
	}

	return model.RoundResult{
		Round:      model.RoundRace,
		Stake:      stake,
		Choice:     choice,
		Outcome:    winner,
		Multiplier: multiplier,
		Delta:      delta(stake, multiplier),
	}
}

// SettleRange settles round 2 on the tiered step function of
// |target - prediction|.
func (s *Service) SettleRange(stake, prediction, target int) model.RoundResult {
	accuracy := target - prediction
	if accuracy < 0 {
		accuracy = -accuracy
	}

	multiplier := 0.0
	for _, tier := range s.rules.RangeTiers {
		if accuracy <= tier.MaxAccuracy {
			multiplier = tier.Multiplier
			break
		}
	}

	return model.RoundResult{
		Round:      model.RoundRange,
		Stake:      stake,
		Choice:     prediction,
		Outcome:    target,
		Multiplier: multiplier,
		Delta:      delta(stake, multiplier),
	}
}

// SettleBattles settles round 3. Each battle resolves independently;
// the win-rate tier multiplier applies once to the summed stake, not
// per battle.
func (s *Service) SettleBattles(bets []model.BattleBet, winners []int) model.RoundResult {
	totalStake := 0
	wins := 0
	outcomes := make([]model.BattleOutcome, len(bets))

	for i, bet := range bets {
		won := bet.Fighter == winners[i]
		if won {
			wins++
		}
		totalStake += bet.Stake
		outcomes[i] = model.BattleOutcome{
			Index:   i,
			Stake:   bet.Stake,
			Fighter: bet.Fighter,
			Winner:  winners[i],
			Won:     won,
		}
	}

	multiplier := s.battleMultiplier(wins)

	return model.RoundResult{
		Round:      model.RoundBattles,
		Stake:      totalStake,
		Battles:    outcomes,
		Wins:       wins,
		Multiplier: multiplier,
		Delta:      delta(totalStake, multiplier),
	}
}

// battleMultiplier maps a win count to its payout tier
func (s *Service) battleMultiplier(wins int) float64 {
	for _, tier := range s.rules.BattleTiers {
		if wins >= tier.MinWins {
			return tier.Multiplier
		}
	}
	return 0
}

// delta is the signed balance change: floor(stake * multiplier) - stake
func delta(stake int, multiplier float64) int {
	payout := int(math.Floor(float64(stake) * multiplier))
	return payout - stake
}
