package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/nexusgamble/nexusgamble-go/internal/api/apierr"
	"github.com/nexusgamble/nexusgamble-go/internal/services/auth"
)

type contextKey string

const tokenContextKey contextKey = "token"

// Auth creates player authentication middleware
func Auth(authService *auth.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			value := extractToken(r)
			if value == "" {
				apierr.WriteError(w, apierr.NewUnauthorizedError())
				return
			}

			token, err := authService.Validate(value)
			if err != nil {
				apierr.WriteError(w, err)
				return
			}

			ctx := context.WithValue(r.Context(), tokenContextKey, token)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// extractToken extracts the bearer token from the request
func extractToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	return ""
}

// GetToken returns the validated token from the request context
func GetToken(ctx context.Context) *auth.Token {
	token, _ := ctx.Value(tokenContextKey).(*auth.Token)
	return token
}

// MustGetToken returns the validated token or panics
func MustGetToken(ctx context.Context) *auth.Token {
	token := GetToken(ctx)
	if token == nil {
		panic("no token in context - auth middleware not applied?")
	}
	return token
}
