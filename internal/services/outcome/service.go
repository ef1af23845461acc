package outcome

import (
	"context"
	"log/slog"

	"github.com/nexusgamble/nexusgamble-go/internal/config"
	"github.com/nexusgamble/nexusgamble-go/internal/dependencies/random"
	"github.com/nexusgamble/nexusgamble-go/internal/model"
	"github.com/nexusgamble/nexusgamble-go/internal/storage"
)

// Service decides the ground-truth result of each round. Admin
// overrides win; otherwise the injected random source draws. Overrides
// are read at resolution time and never cleared, so a value stays in
// force for every later resolution until the admin changes it.
type Service struct {
	storage storage.Storage
	random  random.Random
	rules   config.Rules
	logger  *slog.Logger
}

// New creates a new outcome service
func New(storage storage.Storage, random random.Random, rules config.Rules, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		random:  random,
		rules:   rules,
		logger:  logger,
	}
}

// ResolveRace returns the winning rocket for round 1.
// An override is returned verbatim, even though override validation
// only admits rockets 1..3 while the round offers 5.
func (s *Service) ResolveRace(ctx context.Context) (int, error) {
	overrides, err := s.storage.GetOverrides(ctx)
	if err != nil {
		return 0, err
	}

	if overrides.RaceWinner != nil {
		s.logger.Info("race resolved from override", slog.Int("winner", *overrides.RaceWinner))
		return *overrides.RaceWinner, nil
	}

	winner := s.random.Intn(s.rules.RocketCount) + 1
	s.logger.Info("race resolved from draw", slog.Int("winner", winner))
	return winner, nil
}

// ResolveRange returns the projectile's landing range for round 2
func (s *Service) ResolveRange(ctx context.Context) (int, error) {
	overrides, err := s.storage.GetOverrides(ctx)
	if err != nil {
		return 0, err
	}

	if overrides.RangeTarget != nil {
		s.logger.Info("range resolved from override", slog.Int("target", *overrides.RangeTarget))
		return *overrides.RangeTarget, nil
	}

	span := s.rules.RangeMax - s.rules.RangeMin + 1
	target := s.rules.RangeMin + s.random.Intn(span)
	s.logger.Info("range resolved from draw", slog.Int("target", target))
	return target, nil
}

// ResolveBattle returns the winning fighter (1 or 2) for one battle.
// Battles have no override: each is a fair coin regardless of the
// player's pick.
func (s *Service) ResolveBattle(ctx context.Context) (int, error) {
	return s.random.Intn(2) + 1, nil
}

// SetRaceOverride pins the round 1 winner. Only rockets 1..3 are
// accepted, matching the admin panel's selector.
func (s *Service) SetRaceOverride(ctx context.Context, winner int) (*model.Overrides, error) {
	if winner < 1 || winner > s.rules.OverrideMaxRocket {
		return nil, model.ErrInvalidOverride
	}

	overrides, err := s.storage.GetOverrides(ctx)
	if err != nil {
		return nil, err
	}

	overrides.RaceWinner = &winner
	if err := s.storage.SaveOverrides(ctx, overrides); err != nil {
		return nil, err
	}

	s.logger.Info("race override set", slog.Int("winner", winner))
	return overrides, nil
}

// SetRangeOverride pins the round 2 landing range
func (s *Service) SetRangeOverride(ctx context.Context, target int) (*model.Overrides, error) {
	if target < s.rules.RangeMin || target > s.rules.RangeMax {
		return nil, model.ErrInvalidOverride
	}

	overrides, err := s.storage.GetOverrides(ctx)
	if err != nil {
		return nil, err
	}

	overrides.RangeTarget = &target
	if err := s.storage.SaveOverrides(ctx, overrides); err != nil {
		return nil, err
	}

	s.logger.Info("range override set", slog.Int("target", target))
	return overrides, nil
}

// Overrides returns the current override record
func (s *Service) Overrides(ctx context.Context) (*model.Overrides, error) {
	return s.storage.GetOverrides(ctx)
}
