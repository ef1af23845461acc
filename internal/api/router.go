package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/nexusgamble/nexusgamble-go/internal/api/handler"
	"github.com/nexusgamble/nexusgamble-go/internal/api/middleware"
	"github.com/nexusgamble/nexusgamble-go/internal/services/auth"
	"github.com/nexusgamble/nexusgamble-go/internal/services/leaderboard"
	"github.com/nexusgamble/nexusgamble-go/internal/services/ledger"
	"github.com/nexusgamble/nexusgamble-go/internal/services/outcome"
	"github.com/nexusgamble/nexusgamble-go/internal/services/session"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger             *slog.Logger
	AuthService        *auth.Service
	LedgerService      *ledger.Service
	OutcomeService     *outcome.Service
	LeaderboardService *leaderboard.Service
	SessionController  *session.Controller
	AdminKeyHash       string
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create handlers
	playerHandler := handler.NewPlayerHandler(cfg.LedgerService, cfg.SessionController, cfg.AuthService)
	gameHandler := handler.NewGameHandler(cfg.SessionController, cfg.LeaderboardService, cfg.AuthService)
	adminHandler := handler.NewAdminHandler(cfg.LedgerService, cfg.OutcomeService)

	// Create middleware
	authMiddleware := middleware.Auth(cfg.AuthService)
	adminMiddleware := middleware.AdminAuth(cfg.AdminKeyHash)
	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)

	// Registration is open; it hands back the session token
	api.HandleFunc("/players/register", playerHandler.Register).Methods(http.MethodPost)

	// Protected player routes
	players := api.PathPrefix("/players").Subrouter()
	players.Use(authMiddleware)
	players.HandleFunc("/me", playerHandler.GetMe).Methods(http.MethodGet)

	// Game routes (all require the session token)
	game := api.PathPrefix("/game").Subrouter()
	game.Use(authMiddleware)
	game.HandleFunc("", gameHandler.GetSession).Methods(http.MethodGet)
	game.HandleFunc("", gameHandler.Quit).Methods(http.MethodDelete)
	game.HandleFunc("/start", gameHandler.Start).Methods(http.MethodPost)
	game.HandleFunc("/race", gameHandler.SubmitRace).Methods(http.MethodPost)
	game.HandleFunc("/range", gameHandler.SubmitRange).Methods(http.MethodPost)
	game.HandleFunc("/battles", gameHandler.SubmitBattles).Methods(http.MethodPost)
	game.HandleFunc("/advance", gameHandler.Advance).Methods(http.MethodPost)
	game.HandleFunc("/reset", gameHandler.Reset).Methods(http.MethodPost)
	game.HandleFunc("/leaderboard", gameHandler.Leaderboard).Methods(http.MethodGet)

	// Operator routes (require the admin key header)
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(adminMiddleware)
	admin.HandleFunc("/players", adminHandler.ListPlayers).Methods(http.MethodGet)
	admin.HandleFunc("/players/{playerId}/balance", adminHandler.SetBalance).Methods(http.MethodPut)
	admin.HandleFunc("/overrides", adminHandler.GetOverrides).Methods(http.MethodGet)
	admin.HandleFunc("/overrides/race", adminHandler.SetRaceOverride).Methods(http.MethodPut)
	admin.HandleFunc("/overrides/range", adminHandler.SetRangeOverride).Methods(http.MethodPut)

	// Health check endpoint (no auth)
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
