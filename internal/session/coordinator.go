package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/rocketscienceinc/tictactoe-stepback/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-stepback/internal/entity"
	"github.com/rocketscienceinc/tictactoe-stepback/internal/history"
)

var ErrUnknownCommand = errors.New("unknown command")

// Conn is the part of a client connection the coordinator needs.
type Conn interface {
	ID() string
	Send(text []byte) error
	Close() error
}

// Coordinator referees the single two-player session.
// Every exported method runs its whole read-validate-mutate-broadcast sequence under one lock.
type Coordinator struct {
	logger  *slog.Logger
	journal Journal

	mu      sync.Mutex
	players map[entity.Role]Conn
	turn    entity.Role
	board   entity.Board
	history *history.Store
}

// NewCoordinator - journal is called under the session lock; wrap a networked journal in a JournalWriter.
func NewCoordinator(logger *slog.Logger, journal Journal) *Coordinator {
	if journal == nil {
		journal = NopJournal()
	}

	return &Coordinator{
		logger:  logger.With("component", "session"),
		journal: journal,

		players: make(map[entity.Role]Conn, 2),
		turn:    entity.RoleX,
		history: history.New(),
	}
}

// OnConnect - binds the connection to the first free role and sends it the current board.
// A third connection is told the session is full and closed; apperror.ErrSessionFull is returned.
func (that *Coordinator) OnConnect(ctx context.Context, conn Conn) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	log := that.logger.With("method", "OnConnect", "conn", conn.ID())

	role := that.freeRole()
	if role == entity.RoleNone {
		that.sendError(conn, apperror.ErrSessionFull)

		if err := conn.Close(); err != nil {
			log.Warn("failed to close rejected connection", "error", err)
		}

		log.Info("rejected connection, session is full")

		return apperror.ErrSessionFull
	}

	that.players[role] = conn
	that.send(conn, playerTurnMessage{PlayerTurn: role})

	if that.history.Len() == 0 {
		that.history.Append(that.board)
		that.syncJournal(ctx)
	}

	that.send(conn, statusMessage{Status: statusConnected})
	that.send(conn, that.board)

	log.Info("player connected", "role", role)

	return nil
}

// OnMessage - decodes and applies one client command.
// The returned error is what the client was told, or ErrMalformedPayload when nothing was sent.
func (that *Coordinator) OnMessage(ctx context.Context, conn Conn, raw []byte) error {
	log := that.logger.With("method", "OnMessage", "conn", conn.ID())

	cmd, err := DecodeCommand(raw)
	if err != nil {
		log.Warn("dropping message", "error", err)
		return err
	}

	that.mu.Lock()
	defer that.mu.Unlock()

	switch cmd := cmd.(type) {
	case Rewind:
		err = that.rewind(ctx, cmd)
	case Move:
		err = that.move(ctx, conn, cmd)
	default:
		return fmt.Errorf("%w: %T", ErrUnknownCommand, cmd)
	}

	if err != nil {
		log.Info("command rejected", "error", err)
		that.sendError(conn, err)

		return err
	}

	return nil
}

// OnDisconnect - frees the role the connection was bound to. Board and turn are kept.
func (that *Coordinator) OnDisconnect(conn Conn) {
	that.mu.Lock()
	defer that.mu.Unlock()

	log := that.logger.With("method", "OnDisconnect", "conn", conn.ID())

	for role, bound := range that.players {
		if bound == conn {
			delete(that.players, role)
			log.Info("player disconnected", "role", role)

			return
		}
	}

	log.Debug("unbound connection closed")
}

// Snapshot - copies the current session state.
func (that *Coordinator) Snapshot() Snapshot {
	that.mu.Lock()
	defer that.mu.Unlock()

	return Snapshot{
		Board:  that.board,
		Turn:   that.turn,
		Rounds: that.history.Len(),
		Players: map[entity.Role]bool{
			entity.RoleX: that.players[entity.RoleX] != nil,
			entity.RoleO: that.players[entity.RoleO] != nil,
		},
	}
}

// Rounds - copies the in-memory round history.
func (that *Coordinator) Rounds(_ context.Context) ([]entity.Board, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.history.Rounds(), nil
}

func (that *Coordinator) rewind(ctx context.Context, cmd Rewind) error {
	snapshot, err := that.history.Get(cmd.Index)
	if err != nil {
		return fmt.Errorf("%w: %w", apperror.ErrInvalidRound, err)
	}

	that.board = snapshot
	that.broadcast(rewindMessage{Board: that.board, Step: cmd.Index})

	if err = that.history.Truncate(cmd.Index + 1); err != nil {
		return fmt.Errorf("%w: %w", apperror.ErrInvalidRound, err)
	}

	that.syncJournal(ctx)

	that.turn = entity.TurnForRound(cmd.Index)
	that.broadcast(turnMessage{Turn: that.turn})

	that.logger.Info("session rewound", "round", cmd.Index, "turn", that.turn)

	return nil
}

func (that *Coordinator) move(ctx context.Context, conn Conn, cmd Move) error {
	if err := that.validateMove(conn, cmd); err != nil {
		return err
	}

	that.board = that.board.Place(cmd.Row, cmd.Col, cmd.Player)
	that.history.Append(that.board)
	that.syncJournal(ctx)

	that.turn = that.turn.Opponent()

	that.broadcast(that.board)
	that.broadcast(turnMessage{Turn: that.turn})

	return nil
}

// validateMove - checks identity, turn, bounds and occupancy, in that order.
func (that *Coordinator) validateMove(conn Conn, cmd Move) error {
	if cmd.Player == entity.RoleNone || that.players[cmd.Player] != conn {
		return apperror.ErrInvalidPlayer
	}

	if cmd.Player != that.turn {
		return apperror.ErrNotYourTurn
	}

	if !entity.InBounds(cmd.Row, cmd.Col) {
		return fmt.Errorf("%w: row %d col %d", apperror.ErrInvalidMove, cmd.Row, cmd.Col)
	}

	if !that.board.IsEmpty(cmd.Row, cmd.Col) {
		return apperror.ErrCellOccupied
	}

	return nil
}

func (that *Coordinator) freeRole() entity.Role {
	for _, role := range []entity.Role{entity.RoleX, entity.RoleO} {
		if that.players[role] == nil {
			return role
		}
	}

	return entity.RoleNone
}

func (that *Coordinator) broadcast(payload any) {
	for _, role := range []entity.Role{entity.RoleX, entity.RoleO} {
		if conn := that.players[role]; conn != nil {
			that.send(conn, payload)
		}
	}
}

// sendError - reports the sentinel text of err, without any wrapping detail.
func (that *Coordinator) sendError(conn Conn, err error) {
	for _, known := range []error{
		apperror.ErrSessionFull,
		apperror.ErrInvalidPlayer,
		apperror.ErrNotYourTurn,
		apperror.ErrInvalidMove,
		apperror.ErrCellOccupied,
		apperror.ErrInvalidRound,
	} {
		if errors.Is(err, known) {
			that.send(conn, errorMessage{Error: known.Error()})
			return
		}
	}

	that.logger.Error("no client message for error", "error", err)
}

func (that *Coordinator) send(conn Conn, payload any) {
	text, err := json.Marshal(payload)
	if err != nil {
		that.logger.Error("failed to marshal message", "error", err)
		return
	}

	if err = conn.Send(text); err != nil {
		that.logger.Warn("failed to send message", "conn", conn.ID(), "error", err)
	}
}

func (that *Coordinator) syncJournal(ctx context.Context) {
	if err := that.journal.Sync(ctx, that.history.Rounds()); err != nil {
		that.logger.Warn("failed to sync round journal", "rounds", that.history.Len(), "error", err)
	}
}
