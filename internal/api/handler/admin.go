package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/nexusgamble/nexusgamble-go/internal/api/request"
	"github.com/nexusgamble/nexusgamble-go/internal/api/response"
	"github.com/nexusgamble/nexusgamble-go/internal/model"
	"github.com/nexusgamble/nexusgamble-go/internal/services/ledger"
	"github.com/nexusgamble/nexusgamble-go/internal/services/outcome"
)

// AdminHandler handles operator endpoints
type AdminHandler struct {
	ledger  *ledger.Service
	outcome *outcome.Service
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(ledger *ledger.Service, outcome *outcome.Service) *AdminHandler {
	return &AdminHandler{
		ledger:  ledger,
		outcome: outcome,
	}
}

// ListPlayers handles GET /api/v1/admin/players
func (h *AdminHandler) ListPlayers(w http.ResponseWriter, r *http.Request) {
	players, err := h.ledger.ListPlayers(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	out := make([]response.Player, len(players))
	for i, p := range players {
		out[i] = response.PlayerFromModel(p)
	}
	response.JSON(w, http.StatusOK, out)
}

// SetBalance handles PUT /api/v1/admin/players/{playerId}/balance
func (h *AdminHandler) SetBalance(w http.ResponseWriter, r *http.Request) {
	playerID, err := playerIDParam(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	var req request.SetBalanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	player, err := h.ledger.SetBalance(r.Context(), playerID, req.Balance)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PlayerFromModel(player))
}

// SetRaceOverride handles PUT /api/v1/admin/overrides/race
func (h *AdminHandler) SetRaceOverride(w http.ResponseWriter, r *http.Request) {
	var req request.RaceOverrideRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	overrides, err := h.outcome.SetRaceOverride(r.Context(), req.Winner)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.OverridesFromModel(overrides))
}

// SetRangeOverride handles PUT /api/v1/admin/overrides/range
func (h *AdminHandler) SetRangeOverride(w http.ResponseWriter, r *http.Request) {
	var req request.RangeOverrideRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	overrides, err := h.outcome.SetRangeOverride(r.Context(), req.Target)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.OverridesFromModel(overrides))
}

// GetOverrides handles GET /api/v1/admin/overrides
func (h *AdminHandler) GetOverrides(w http.ResponseWriter, r *http.Request) {
	overrides, err := h.outcome.Overrides(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.OverridesFromModel(overrides))
}

func playerIDParam(r *http.Request) (model.PlayerID, error) {
	raw := mux.Vars(r)["playerId"]
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return 0, NewInvalidRequestError("invalid player id")
	}
	return model.PlayerID(id), nil
}
