package server

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"secbrief/internal/contextutil"
)

// RequestLogger tags each request with a generated ID and puts a logger
// carrying request fields into the context for handlers to pick up.
func RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := uuid.New().String()
		logger := slog.Default().With(
			"request_id", requestID,
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
		)
		w.Header().Set("X-Request-Id", requestID)
		ctx := contextutil.With(r.Context(), logger)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
