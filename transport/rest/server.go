package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

const shutdownTimeout = 5 * time.Second

type Server struct {
	logger *slog.Logger
	mux    *http.ServeMux
}

func New(logger *slog.Logger, sessions sessionReader, rounds RoundReader) *Server {
	log := logger.With("component", "rest")

	mux := http.NewServeMux()
	mux.HandleFunc("GET /ping", NewPingHandler(log).PingHandler)
	mux.HandleFunc("GET /session", NewSessionHandler(log, sessions).SessionHandler)
	mux.HandleFunc("GET /session/rounds", NewRoundsHandler(log, rounds).RoundsHandler)

	return &Server{
		logger: log,
		mux:    mux,
	}
}

func (that *Server) Handler() http.Handler {
	return that.mux
}

// Start - starts HTTP server and stops it when ctx is canceled.
func (that *Server) Start(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      that.mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			that.logger.Error("failed to shut down server", "error", err)
		}
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}
