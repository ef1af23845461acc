package handler

import (
	"encoding/json"
	"net/http"

	"github.com/nexusgamble/nexusgamble-go/internal/api/middleware"
	"github.com/nexusgamble/nexusgamble-go/internal/api/request"
	"github.com/nexusgamble/nexusgamble-go/internal/api/response"
	"github.com/nexusgamble/nexusgamble-go/internal/services/auth"
	"github.com/nexusgamble/nexusgamble-go/internal/services/ledger"
	"github.com/nexusgamble/nexusgamble-go/internal/services/session"
)

// PlayerHandler handles player-related endpoints
type PlayerHandler struct {
	ledger      *ledger.Service
	sessions    *session.Controller
	authService *auth.Service
}

// NewPlayerHandler creates a new player handler
func NewPlayerHandler(ledger *ledger.Service, sessions *session.Controller, authService *auth.Service) *PlayerHandler {
	return &PlayerHandler{
		ledger:      ledger,
		sessions:    sessions,
		authService: authService,
	}
}

// Register handles POST /api/v1/players/register.
// Registration is idempotent on the display name: an existing player
// gets their record back unchanged, with a fresh session and token.
func (h *PlayerHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req request.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	player, err := h.ledger.CreatePlayer(r.Context(), req.DisplayName)
	if err != nil {
		WriteError(w, err)
		return
	}

	gameSession, err := h.sessions.CreateSession(r.Context(), player.ID)
	if err != nil {
		WriteError(w, err)
		return
	}

	token := h.authService.Issue(player.ID, gameSession.ID)
	response.JSON(w, http.StatusCreated, response.RegisterResponseFromToken(player, token))
}

// GetMe handles GET /api/v1/players/me
func (h *PlayerHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	token := middleware.MustGetToken(r.Context())

	player, err := h.ledger.GetPlayer(r.Context(), token.PlayerID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PlayerFromModel(player))
}
