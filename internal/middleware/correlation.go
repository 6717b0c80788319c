// Package middleware holds HTTP middleware for the service's small admin
// surface.
package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"searchsync/internal/runctx"
)

// Correlation tags each request with an identifier, honoring an inbound
// X-Correlation-ID header when present. The id rides the context the same way
// a sync run id does, so the logging handler picks it up automatically.
func Correlation(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Correlation-ID")
		if id == "" {
			id = runctx.NewRunID()
		}

		ctx := runctx.WithRunID(r.Context(), id)
		w.Header().Set("X-Correlation-ID", id)

		start := time.Now()
		next.ServeHTTP(w, r.WithContext(ctx))
		slog.InfoContext(ctx, "request completed", "method", r.Method, "path", r.URL.Path, "duration", time.Since(start))
	})
}
