package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/nexusgamble/nexusgamble-go/internal/model"
	"github.com/nexusgamble/nexusgamble-go/internal/services/auth"
)

// APIError represents an API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Common error codes
const (
	CodeInvalidRequest      = "INVALID_REQUEST"
	CodeInvalidName         = "INVALID_NAME"
	CodeInvalidBalance      = "INVALID_BALANCE"
	CodeInvalidStake        = "INVALID_STAKE"
	CodeInvalidRocket       = "INVALID_ROCKET"
	CodeInvalidPrediction   = "INVALID_PREDICTION"
	CodeInvalidBattles      = "INVALID_BATTLES"
	CodeInvalidFighter      = "INVALID_FIGHTER"
	CodeInvalidOverride     = "INVALID_OVERRIDE"
	CodeNoSelection         = "NO_SELECTION"
	CodeInsufficientCredits = "INSUFFICIENT_CREDITS"
	CodeWrongPhase          = "WRONG_PHASE"
	CodePlayerNotFound      = "PLAYER_NOT_FOUND"
	CodeSessionNotFound     = "SESSION_NOT_FOUND"
	CodeUnauthorized        = "UNAUTHORIZED"
	CodeStorageUnavailable  = "STORAGE_UNAVAILABLE"
	CodeInternalError       = "INTERNAL_ERROR"
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	// Check for specific error types
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	// Map model errors
	switch {
	case errors.Is(err, model.ErrInvalidName):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidName, "Display name must be at least 2 characters"}}
	case errors.Is(err, model.ErrInvalidBalance):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidBalance, "Balance must be a non-negative integer"}}
	case errors.Is(err, model.ErrInvalidStake):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidStake, "Stake must be a positive integer"}}
	case errors.Is(err, model.ErrInvalidRocket):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidRocket, "Rocket outside valid range"}}
	case errors.Is(err, model.ErrInvalidPrediction):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidPrediction, "Prediction outside valid range"}}
	case errors.Is(err, model.ErrInvalidBattleCount):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidBattles, "Wrong number of battle bets"}}
	case errors.Is(err, model.ErrInvalidFighter):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidFighter, "Fighter must be 1 or 2"}}
	case errors.Is(err, model.ErrInvalidOverride):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidOverride, "Override outside allowed range"}}
	case errors.Is(err, model.ErrNoSelection):
		return &httpError{http.StatusBadRequest, APIError{CodeNoSelection, "A rocket must be selected"}}
	case errors.Is(err, model.ErrInsufficientCredits):
		return &httpError{http.StatusConflict, APIError{CodeInsufficientCredits, "Stake exceeds available balance"}}
	case errors.Is(err, model.ErrWrongPhase):
		return &httpError{http.StatusConflict, APIError{CodeWrongPhase, "Action not valid in current phase"}}
	case errors.Is(err, model.ErrPlayerNotFound):
		return &httpError{http.StatusNotFound, APIError{CodePlayerNotFound, "Player not found"}}
	case errors.Is(err, model.ErrSessionNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeSessionNotFound, "Session not found"}}
	case errors.Is(err, model.ErrStorageUnavailable):
		return &httpError{http.StatusServiceUnavailable, APIError{CodeStorageUnavailable, "Storage unavailable"}}

	// Map auth errors
	case errors.Is(err, auth.ErrInvalidToken):
		return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Invalid or expired token"}}

	default:
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewUnauthorizedError creates an unauthorized error
func NewUnauthorizedError() error {
	return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Authentication required"}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}
