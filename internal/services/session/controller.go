package session

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/nexusgamble/nexusgamble-go/internal/config"
	"github.com/nexusgamble/nexusgamble-go/internal/dependencies/clock"
	"github.com/nexusgamble/nexusgamble-go/internal/model"
	"github.com/nexusgamble/nexusgamble-go/internal/services/ledger"
	"github.com/nexusgamble/nexusgamble-go/internal/services/outcome"
	"github.com/nexusgamble/nexusgamble-go/internal/services/settlement"
	"github.com/nexusgamble/nexusgamble-go/internal/storage"
)

// Controller drives a player's progression through the three rounds.
// Rounds are strictly sequential for one player; each session's state
// transitions run under a per-session mutex. The betting countdown is
// a single-shot timer that auto-submits a zero stake; a manual submit
// bumps the session epoch under the lock, so a stale timer firing
// afterwards finds the epoch changed and does nothing.
type Controller struct {
	storage    storage.Storage
	ledger     *ledger.Service
	outcome    *outcome.Service
	settlement *settlement.Service
	clock      clock.Clock
	rules      config.Rules
	logger     *slog.Logger

	guards sync.Map // model.SessionID -> *guard
}

type guard struct {
	mu    sync.Mutex
	timer clock.Timer
}

// NewController creates a new session controller
func NewController(
	storage storage.Storage,
	ledger *ledger.Service,
	outcome *outcome.Service,
	settlement *settlement.Service,
	clock clock.Clock,
	rules config.Rules,
	logger *slog.Logger,
) *Controller {
	return &Controller{
		storage:    storage,
		ledger:     ledger,
		outcome:    outcome,
		settlement: settlement,
		clock:      clock,
		rules:      rules,
		logger:     logger,
	}
}

// CreateSession creates a fresh session on the landing phase
func (c *Controller) CreateSession(ctx context.Context, playerID model.PlayerID) (*model.Session, error) {
	if _, err := c.ledger.GetPlayer(ctx, playerID); err != nil {
		return nil, err
	}

	now := c.clock.Now()
	session := &model.Session{
		ID:        model.SessionID(uuid.NewString()),
		PlayerID:  playerID,
		Phase:     model.PhaseLanding,
		Round:     0,
		Balance:   c.rules.StartingGrant,
		History:   []model.RoundResult{},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := c.storage.SaveSession(ctx, session); err != nil {
		return nil, err
	}

	c.logger.Info("session created",
		slog.String("session_id", string(session.ID)),
		slog.Int("player_id", int(playerID)),
	)

	return session, nil
}

// GetSession retrieves a session by id
func (c *Controller) GetSession(ctx context.Context, id model.SessionID) (*model.Session, error) {
	return c.storage.GetSession(ctx, id)
}

// Start moves a landing session into round 1, seeding the starting
// grant and opening the betting window.
func (c *Controller) Start(ctx context.Context, id model.SessionID) (*model.Session, error) {
	g := c.guardFor(id)
	g.mu.Lock()
	defer g.mu.Unlock()

	session, err := c.storage.GetSession(ctx, id)
	if err != nil {
		return nil, err
	}

	if session.Phase != model.PhaseLanding {
		return nil, model.ErrWrongPhase
	}

	session.Phase = model.PhaseRound1
	session.Round = model.RoundRace
	session.Balance = c.rules.StartingGrant
	c.openBetting(g, session)
	session.UpdatedAt = c.clock.Now()

	if err := c.storage.SaveSession(ctx, session); err != nil {
		return nil, err
	}

	c.logger.Info("round started",
		slog.String("session_id", string(id)),
		slog.Int("round", session.Round),
		slog.Int("balance", session.Balance),
	)

	return session, nil
}

// SubmitRace places the round 1 bet: a stake on one of the rockets
func (c *Controller) SubmitRace(ctx context.Context, id model.SessionID, stake, choice int) (*model.Session, error) {
	g := c.guardFor(id)
	g.mu.Lock()
	defer g.mu.Unlock()

	session, err := c.loadBetting(ctx, id, model.PhaseRound1)
	if err != nil {
		return nil, err
	}

	if choice == 0 {
		return nil, model.ErrNoSelection
	}
	if choice < 1 || choice > c.rules.RocketCount {
		return nil, model.ErrInvalidRocket
	}
	if err := c.validateStake(stake, session.Balance); err != nil {
		return nil, err
	}

	return c.settleRace(ctx, g, session, stake, choice)
}

// SubmitRange places the round 2 bet: a stake on a range prediction
func (c *Controller) SubmitRange(ctx context.Context, id model.SessionID, stake, prediction int) (*model.Session, error) {
	g := c.guardFor(id)
	g.mu.Lock()
	defer g.mu.Unlock()

	session, err := c.loadBetting(ctx, id, model.PhaseRound2)
	if err != nil {
		return nil, err
	}

	if prediction < c.rules.RangeMin || prediction > c.rules.RangeMax {
		return nil, model.ErrInvalidPrediction
	}
	if err := c.validateStake(stake, session.Balance); err != nil {
		return nil, err
	}

	return c.settleRange(ctx, g, session, stake, prediction)
}

// SubmitBattles places all battle bets for round 3 in one call. A zero
// stake skips that battle but still resolves it.
func (c *Controller) SubmitBattles(ctx context.Context, id model.SessionID, bets []model.BattleBet) (*model.Session, error) {
	g := c.guardFor(id)
	g.mu.Lock()
	defer g.mu.Unlock()

	session, err := c.loadBetting(ctx, id, model.PhaseRound3)
	if err != nil {
		return nil, err
	}

	if len(bets) != c.rules.BattleCount {
		return nil, model.ErrInvalidBattleCount
	}
	totalStake := 0
	for _, bet := range bets {
		if bet.Stake < 0 {
			return nil, model.ErrInvalidStake
		}
		if bet.Fighter != 1 && bet.Fighter != 2 {
			return nil, model.ErrInvalidFighter
		}
		totalStake += bet.Stake
	}
	if totalStake > session.Balance {
		return nil, model.ErrInsufficientCredits
	}

	return c.settleBattles(ctx, g, session, bets)
}

// AdvancePhase is the explicit player transition out of an interstitial
func (c *Controller) AdvancePhase(ctx context.Context, id model.SessionID) (*model.Session, error) {
	g := c.guardFor(id)
	g.mu.Lock()
	defer g.mu.Unlock()

	session, err := c.storage.GetSession(ctx, id)
	if err != nil {
		return nil, err
	}

	switch session.Phase {
	case model.PhaseInterstitial1:
		session.Phase = model.PhaseRound2
		session.Round = model.RoundRange
	case model.PhaseInterstitial2:
		session.Phase = model.PhaseRound3
		session.Round = model.RoundBattles
	default:
		return nil, model.ErrWrongPhase
	}

	c.openBetting(g, session)
	session.UpdatedAt = c.clock.Now()

	if err := c.storage.SaveSession(ctx, session); err != nil {
		return nil, err
	}

	c.logger.Info("round started",
		slog.String("session_id", string(id)),
		slog.Int("round", session.Round),
		slog.Int("balance", session.Balance),
	)

	return session, nil
}

// Reset returns the session to landing: balance back to the starting
// grant, history discarded. It deliberately does not reconcile with
// the ledger balance.
func (c *Controller) Reset(ctx context.Context, id model.SessionID) (*model.Session, error) {
	g := c.guardFor(id)
	g.mu.Lock()
	defer g.mu.Unlock()

	session, err := c.storage.GetSession(ctx, id)
	if err != nil {
		return nil, err
	}

	c.cancelTimer(g, session)

	session.Phase = model.PhaseLanding
	session.Round = 0
	session.Balance = c.rules.StartingGrant
	session.RoundPhase = ""
	session.History = []model.RoundResult{}
	session.UpdatedAt = c.clock.Now()

	if err := c.storage.SaveSession(ctx, session); err != nil {
		return nil, err
	}

	c.logger.Info("session reset", slog.String("session_id", string(id)))
	return session, nil
}

// EndSession tears the session down entirely: countdown disarmed,
// stored record deleted. Unlike Reset there is nothing left to resume;
// playing again means registering again.
func (c *Controller) EndSession(ctx context.Context, id model.SessionID) error {
	g := c.guardFor(id)
	g.mu.Lock()
	defer g.mu.Unlock()

	session, err := c.storage.GetSession(ctx, id)
	if err != nil {
		return err
	}

	c.cancelTimer(g, session)

	if err := c.storage.DeleteSession(ctx, id); err != nil {
		return err
	}
	c.guards.Delete(id)

	c.logger.Info("session ended", slog.String("session_id", string(id)))
	return nil
}

// loadBetting fetches the session and checks it is accepting bets for
// the expected phase. Callers hold the session guard.
func (c *Controller) loadBetting(ctx context.Context, id model.SessionID, phase model.SessionPhase) (*model.Session, error) {
	session, err := c.storage.GetSession(ctx, id)
	if err != nil {
		return nil, err
	}

	if session.Phase != phase || session.RoundPhase != model.RoundPhaseBetting {
		return nil, model.ErrWrongPhase
	}
	return session, nil
}

func (c *Controller) validateStake(stake, balance int) error {
	if stake <= 0 {
		return model.ErrInvalidStake
	}
	if stake > balance {
		return model.ErrInsufficientCredits
	}
	return nil
}

// settleRace runs resolution and settlement for round 1.
// Caller holds the guard and has validated inputs.
func (c *Controller) settleRace(ctx context.Context, g *guard, session *model.Session, stake, choice int) (*model.Session, error) {
	c.closeBetting(g, session)

	winner, err := c.outcome.ResolveRace(ctx)
	if err != nil {
		return nil, err
	}

	result := c.settlement.SettleRace(stake, choice, winner)
	return c.applyResult(ctx, session, result, model.PhaseInterstitial1)
}

func (c *Controller) settleRange(ctx context.Context, g *guard, session *model.Session, stake, prediction int) (*model.Session, error) {
	c.closeBetting(g, session)

	target, err := c.outcome.ResolveRange(ctx)
	if err != nil {
		return nil, err
	}

	result := c.settlement.SettleRange(stake, prediction, target)
	return c.applyResult(ctx, session, result, model.PhaseInterstitial2)
}

func (c *Controller) settleBattles(ctx context.Context, g *guard, session *model.Session, bets []model.BattleBet) (*model.Session, error) {
	c.closeBetting(g, session)

	winners := make([]int, len(bets))
	for i := range bets {
		winner, err := c.outcome.ResolveBattle(ctx)
		if err != nil {
			return nil, err
		}
		winners[i] = winner
	}

	result := c.settlement.SettleBattles(bets, winners)
	return c.applyResult(ctx, session, result, model.PhaseComplete)
}

// applyResult writes the settlement through the ledger, appends the
// round record, and advances the session phase.
func (c *Controller) applyResult(ctx context.Context, session *model.Session, result model.RoundResult, next model.SessionPhase) (*model.Session, error) {
	if _, err := c.ledger.ApplyDelta(ctx, session.PlayerID, result.Delta); err != nil {
		return nil, err
	}

	session.Balance += result.Delta
	session.History = append(session.History, result)
	session.RoundPhase = model.RoundPhaseSettled
	session.Phase = next
	session.UpdatedAt = c.clock.Now()

	if err := c.storage.SaveSession(ctx, session); err != nil {
		return nil, err
	}

	c.logger.Info("round settled",
		slog.String("session_id", string(session.ID)),
		slog.Int("round", result.Round),
		slog.Int("stake", result.Stake),
		slog.Float64("multiplier", result.Multiplier),
		slog.Int("delta", result.Delta),
		slog.Int("balance", session.Balance),
	)

	return session, nil
}

// openBetting arms the countdown for the session's current round.
// Caller holds the guard.
func (c *Controller) openBetting(g *guard, session *model.Session) {
	session.RoundPhase = model.RoundPhaseBetting
	session.Epoch++

	if c.rules.BettingWindowSeconds <= 0 {
		return
	}

	id := session.ID
	epoch := session.Epoch
	window := time.Duration(c.rules.BettingWindowSeconds) * time.Second
	g.timer = c.clock.AfterFunc(window, func() {
		c.autoSubmit(id, epoch)
	})
}

// closeBetting moves the round to resolving and disarms the countdown.
// Bumping the epoch is what makes a late-firing timer harmless.
func (c *Controller) closeBetting(g *guard, session *model.Session) {
	c.cancelTimer(g, session)
	session.RoundPhase = model.RoundPhaseResolving
}

func (c *Controller) cancelTimer(g *guard, session *model.Session) {
	session.Epoch++
	if g.timer != nil {
		g.timer.Stop()
		g.timer = nil
	}
}

// autoSubmit fires when the betting window expires: a zero stake with
// the default choice (the first option). It re-checks phase and epoch
// under the guard because the player may have submitted first.
func (c *Controller) autoSubmit(id model.SessionID, epoch int) {
	ctx := context.Background()

	g := c.guardFor(id)
	g.mu.Lock()
	defer g.mu.Unlock()

	session, err := c.storage.GetSession(ctx, id)
	if err != nil {
		return
	}
	if session.Epoch != epoch || session.RoundPhase != model.RoundPhaseBetting {
		return
	}

	c.logger.Info("betting window expired, auto-submitting",
		slog.String("session_id", string(id)),
		slog.Int("round", session.Round),
	)

	switch session.Phase {
	case model.PhaseRound1:
		_, err = c.settleRace(ctx, g, session, 0, 1)
	case model.PhaseRound2:
		_, err = c.settleRange(ctx, g, session, 0, c.rules.RangeMin)
	case model.PhaseRound3:
		bets := make([]model.BattleBet, c.rules.BattleCount)
		for i := range bets {
			bets[i] = model.BattleBet{Stake: 0, Fighter: 1}
		}
		_, err = c.settleBattles(ctx, g, session, bets)
	default:
		return
	}

	if err != nil {
		c.logger.Error("auto-submit failed",
			slog.String("session_id", string(id)),
			slog.String("error", err.Error()),
		)
	}
}

func (c *Controller) guardFor(id model.SessionID) *guard {
	g, _ := c.guards.LoadOrStore(id, &guard{})
	return g.(*guard)
}
