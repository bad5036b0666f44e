package session

import (
	"context"
	"log/slog"
	"time"

	"github.com/rocketscienceinc/tictactoe-stepback/internal/entity"
)

// Journal mirrors the round history somewhere outside the process.
// The in-memory history stays authoritative; journal failures are only logged.
type Journal interface {
	// Sync - replaces the mirrored history with rounds.
	Sync(ctx context.Context, rounds []entity.Board) error
}

type nopJournal struct{}

// NopJournal - a Journal that records nothing.
func NopJournal() Journal {
	return nopJournal{}
}

func (nopJournal) Sync(context.Context, []entity.Board) error { return nil }

// JournalWriter hands history snapshots to a slower Journal from its own goroutine.
// Only the latest pending snapshot is kept, so Sync never blocks the caller.
type JournalWriter struct {
	logger  *slog.Logger
	journal Journal
	timeout time.Duration

	pending chan []entity.Board
}

func NewJournalWriter(logger *slog.Logger, journal Journal, timeout time.Duration) *JournalWriter {
	return &JournalWriter{
		logger:  logger.With("component", "journal"),
		journal: journal,
		timeout: timeout,
		pending: make(chan []entity.Board, 1),
	}
}

// Sync - queues rounds for the writer goroutine, replacing any snapshot it has not taken yet.
// It has a single producer: the coordinator, under its lock.
func (that *JournalWriter) Sync(_ context.Context, rounds []entity.Board) error {
	for {
		select {
		case that.pending <- rounds:
			return nil
		default:
		}

		select {
		case <-that.pending:
		default:
		}
	}
}

// Run - writes queued snapshots until ctx is canceled. Each write gets its own timeout.
func (that *JournalWriter) Run(ctx context.Context) error {
	log := that.logger.With("method", "Run")

	for {
		select {
		case <-ctx.Done():
			return nil
		case rounds := <-that.pending:
			syncCtx, cancel := context.WithTimeout(ctx, that.timeout)
			err := that.journal.Sync(syncCtx, rounds)
			cancel()

			if err != nil {
				log.Warn("failed to sync round journal", "rounds", len(rounds), "error", err)
			}
		}
	}
}
