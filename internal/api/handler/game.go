package handler

import (
	"encoding/json"
	"net/http"

	"github.com/nexusgamble/nexusgamble-go/internal/api/middleware"
	"github.com/nexusgamble/nexusgamble-go/internal/api/request"
	"github.com/nexusgamble/nexusgamble-go/internal/api/response"
	"github.com/nexusgamble/nexusgamble-go/internal/services/auth"
	"github.com/nexusgamble/nexusgamble-go/internal/services/leaderboard"
	"github.com/nexusgamble/nexusgamble-go/internal/services/session"
)

// GameHandler handles game session endpoints
type GameHandler struct {
	sessions    *session.Controller
	leaderboard *leaderboard.Service
	auth        *auth.Service
}

// NewGameHandler creates a new game handler
func NewGameHandler(sessions *session.Controller, leaderboard *leaderboard.Service, auth *auth.Service) *GameHandler {
	return &GameHandler{
		sessions:    sessions,
		leaderboard: leaderboard,
		auth:        auth,
	}
}

// GetSession handles GET /api/v1/game
func (h *GameHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	token := middleware.MustGetToken(r.Context())

	gameSession, err := h.sessions.GetSession(r.Context(), token.SessionID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.SessionFromModel(gameSession))
}

// Start handles POST /api/v1/game/start
func (h *GameHandler) Start(w http.ResponseWriter, r *http.Request) {
	token := middleware.MustGetToken(r.Context())

	gameSession, err := h.sessions.Start(r.Context(), token.SessionID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.SessionFromModel(gameSession))
}

// SubmitRace handles POST /api/v1/game/race
func (h *GameHandler) SubmitRace(w http.ResponseWriter, r *http.Request) {
	token := middleware.MustGetToken(r.Context())

	var req request.RaceBetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	gameSession, err := h.sessions.SubmitRace(r.Context(), token.SessionID, req.Stake, req.Rocket)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.SessionFromModel(gameSession))
}

// SubmitRange handles POST /api/v1/game/range
func (h *GameHandler) SubmitRange(w http.ResponseWriter, r *http.Request) {
	token := middleware.MustGetToken(r.Context())

	var req request.RangeBetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	gameSession, err := h.sessions.SubmitRange(r.Context(), token.SessionID, req.Stake, req.Prediction)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.SessionFromModel(gameSession))
}

// SubmitBattles handles POST /api/v1/game/battles
func (h *GameHandler) SubmitBattles(w http.ResponseWriter, r *http.Request) {
	token := middleware.MustGetToken(r.Context())

	var req request.BattleBetsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	gameSession, err := h.sessions.SubmitBattles(r.Context(), token.SessionID, req.Battles)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.SessionFromModel(gameSession))
}

// Advance handles POST /api/v1/game/advance
func (h *GameHandler) Advance(w http.ResponseWriter, r *http.Request) {
	token := middleware.MustGetToken(r.Context())

	gameSession, err := h.sessions.AdvancePhase(r.Context(), token.SessionID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.SessionFromModel(gameSession))
}

// Reset handles POST /api/v1/game/reset
func (h *GameHandler) Reset(w http.ResponseWriter, r *http.Request) {
	token := middleware.MustGetToken(r.Context())

	gameSession, err := h.sessions.Reset(r.Context(), token.SessionID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.SessionFromModel(gameSession))
}

// Quit handles DELETE /api/v1/game
func (h *GameHandler) Quit(w http.ResponseWriter, r *http.Request) {
	token := middleware.MustGetToken(r.Context())

	if err := h.sessions.EndSession(r.Context(), token.SessionID); err != nil {
		WriteError(w, err)
		return
	}
	h.auth.Revoke(token.Value)

	response.NoContent(w)
}

// Leaderboard handles GET /api/v1/game/leaderboard
func (h *GameHandler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	token := middleware.MustGetToken(r.Context())

	entries, err := h.leaderboard.Ranking(r.Context(), token.PlayerID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.LeaderboardFromEntries(entries))
}
