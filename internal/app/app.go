package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"searchsync/internal/middleware"
)

// App serves the admin surface: a health endpoint today, wrapped in the
// correlation middleware so probes show up in the structured logs.
type App struct {
	Handler http.Handler
	port    int
}

func New(port int) *App {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	return &App{
		Handler: middleware.Correlation(mux),
		port:    port,
	}
}

// Run serves until the context is cancelled, then shuts the server down
// gracefully.
func (a *App) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", a.port),
		Handler: a.Handler,
	}

	go func() {
		<-ctx.Done()
		slog.Info("shutting down server...")
		if err := srv.Shutdown(context.Background()); err != nil {
			slog.Error("server shutdown failed", "error", err)
		}
	}()

	slog.Info("server starting", "port", a.port)
	if err := srv.ListenAndServe(); err != http.ErrServerClosed {
		return err
	}
	return nil
}
