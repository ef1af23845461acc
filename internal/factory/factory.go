package factory

import (
	"errors"
	"io"
	"log/slog"

	"github.com/nexusgamble/nexusgamble-go/internal/config"
	"github.com/nexusgamble/nexusgamble-go/internal/dependencies/clock"
	"github.com/nexusgamble/nexusgamble-go/internal/dependencies/random"
	"github.com/nexusgamble/nexusgamble-go/internal/services/auth"
	"github.com/nexusgamble/nexusgamble-go/internal/services/leaderboard"
	"github.com/nexusgamble/nexusgamble-go/internal/services/ledger"
	"github.com/nexusgamble/nexusgamble-go/internal/services/outcome"
	"github.com/nexusgamble/nexusgamble-go/internal/services/session"
	"github.com/nexusgamble/nexusgamble-go/internal/services/settlement"
	"github.com/nexusgamble/nexusgamble-go/internal/storage"
	"github.com/nexusgamble/nexusgamble-go/internal/storage/memory"
	redisstorage "github.com/nexusgamble/nexusgamble-go/internal/storage/redis"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock  clock.Clock
	Random random.Random

	// Game rules
	Rules config.Rules

	// Services
	LedgerService      *ledger.Service
	OutcomeService     *outcome.Service
	SettlementService  *settlement.Service
	LeaderboardService *leaderboard.Service
	SessionController  *session.Controller
	AuthService        *auth.Service
}

// Config holds configuration for the application factory
type Config struct {
	// Rules holds the game rules (optional)
	// If zero value, defaults to config.Default()
	Rules config.Rules
	// AuthConfig holds configuration for the auth service (optional)
	// If zero value, defaults to auth.DefaultConfig()
	AuthConfig auth.Config
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	// Use default rules if not provided
	rules := cfg.Rules
	if rules.RocketCount == 0 {
		rules = config.Default()
	}
	if err := rules.Validate(); err != nil {
		return nil, err
	}

	// Create storage based on type
	var store storage.Storage
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		store = memory.New()
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		store = redisStore
	default:
		return nil, errors.New("invalid StorageType: must be 'memory' or 'redis'")
	}

	// Create external dependencies
	clk := clock.New()
	rnd := random.New()

	// Use default auth config if not provided
	authCfg := cfg.AuthConfig
	if authCfg.TokenDuration == 0 {
		authCfg = auth.DefaultConfig()
	}

	return newWithDependencies(store, clk, rnd, rules, authCfg, logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Storage, clk clock.Clock, rnd random.Random, rules config.Rules, authCfg auth.Config, logger *slog.Logger) *App {
	// Create services
	ledgerService := ledger.New(store, clk, rules.StartingGrant, logger)
	outcomeService := outcome.New(store, rnd, rules, logger)
	settlementService := settlement.New(rules)
	leaderboardService := leaderboard.New(ledgerService)
	sessionController := session.NewController(store, ledgerService, outcomeService, settlementService, clk, rules, logger)
	authService := auth.New(clk, authCfg)

	return &App{
		Storage:            store,
		Clock:              clk,
		Random:             rnd,
		Rules:              rules,
		LedgerService:      ledgerService,
		OutcomeService:     outcomeService,
		SettlementService:  settlementService,
		LeaderboardService: leaderboardService,
		SessionController:  sessionController,
		AuthService:        authService,
	}
}
