package rest

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/rocketscienceinc/tictactoe-stepback/internal/session"
)

type sessionReader interface {
	Snapshot() session.Snapshot
}

type SessionHandler interface {
	SessionHandler(w http.ResponseWriter, _ *http.Request)
}

type sessionHandler struct {
	logger   *slog.Logger
	sessions sessionReader
}

func NewSessionHandler(logger *slog.Logger, sessions sessionReader) SessionHandler {
	return &sessionHandler{
		logger:   logger,
		sessions: sessions,
	}
}

// SessionHandler - writes the current board, turn, round count and bound roles.
func (that *sessionHandler) SessionHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(that.sessions.Snapshot()); err != nil {
		that.logger.Error("failed to encode session snapshot", "error", err)
	}
}
