package middleware

import (
	"net/http"

	"golang.org/x/crypto/bcrypt"

	"github.com/nexusgamble/nexusgamble-go/internal/api/apierr"
)

// AdminKeyHeader carries the shared admin key
const AdminKeyHeader = "X-Admin-Key"

// AdminAuth guards admin routes with a shared key checked against a
// bcrypt hash. An empty hash disables the admin surface entirely.
func AdminAuth(keyHash string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if keyHash == "" {
				apierr.WriteError(w, apierr.NewUnauthorizedError())
				return
			}

			key := r.Header.Get(AdminKeyHeader)
			if key == "" {
				apierr.WriteError(w, apierr.NewUnauthorizedError())
				return
			}

			if err := bcrypt.CompareHashAndPassword([]byte(keyHash), []byte(key)); err != nil {
				apierr.WriteError(w, apierr.NewUnauthorizedError())
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
