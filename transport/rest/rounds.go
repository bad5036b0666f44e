package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/rocketscienceinc/tictactoe-stepback/internal/entity"
)

// RoundReader is where the round history is read from: the live session or the redis journal.
type RoundReader interface {
	Rounds(ctx context.Context) ([]entity.Board, error)
}

type RoundsHandler interface {
	RoundsHandler(w http.ResponseWriter, req *http.Request)
}

type roundsHandler struct {
	logger *slog.Logger
	rounds RoundReader
}

type roundsResponse struct {
	Rounds []entity.Board `json:"rounds"`
}

func NewRoundsHandler(logger *slog.Logger, rounds RoundReader) RoundsHandler {
	return &roundsHandler{
		logger: logger,
		rounds: rounds,
	}
}

// RoundsHandler - writes every recorded board, oldest first.
func (that *roundsHandler) RoundsHandler(w http.ResponseWriter, req *http.Request) {
	log := that.logger.With("method", "RoundsHandler")

	rounds, err := that.rounds.Rounds(req.Context())
	if err != nil {
		log.Error("failed to read rounds", "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)

		return
	}

	if rounds == nil {
		rounds = []entity.Board{}
	}

	w.Header().Set("Content-Type", "application/json")

	if err = json.NewEncoder(w).Encode(roundsResponse{Rounds: rounds}); err != nil {
		log.Error("failed to encode rounds", "error", err)
	}
}
