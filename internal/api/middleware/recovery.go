package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/nexusgamble/nexusgamble-go/internal/api/apierr"
)

// Recovery creates middleware that recovers from panics
func Recovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					logger.Error("panic in handler",
						slog.Any("panic", rec),
						slog.String("path", r.URL.Path),
						slog.String("stack", string(debug.Stack())),
					)
					apierr.WriteError(w, apierr.NewInternalError())
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
