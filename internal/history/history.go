package history

import (
	"errors"
	"fmt"
	"slices"

	"github.com/rocketscienceinc/tictactoe-stepback/internal/entity"
)

var (
	ErrOutOfRange      = errors.New("round index out of range")
	ErrInvalidArgument = errors.New("invalid history length")
)

// Store is an ordered log of board snapshots indexed by round number.
// It is not safe for concurrent use; the owner serializes access.
type Store struct {
	rounds []entity.Board
}

func New() *Store {
	return &Store{}
}

// Append - records a snapshot as the next round.
func (that *Store) Append(board entity.Board) {
	that.rounds = append(that.rounds, board)
}

// Get - returns the snapshot recorded at index.
func (that *Store) Get(index int) (entity.Board, error) {
	if index < 0 || index >= len(that.rounds) {
		return entity.Board{}, fmt.Errorf("%w: %d not in [0, %d)", ErrOutOfRange, index, len(that.rounds))
	}

	return that.rounds[index], nil
}

// Truncate - keeps the first newLength rounds and discards the rest.
func (that *Store) Truncate(newLength int) error {
	if newLength < 1 || newLength > len(that.rounds) {
		return fmt.Errorf("%w: %d not in [1, %d]", ErrInvalidArgument, newLength, len(that.rounds))
	}

	clear(that.rounds[newLength:])
	that.rounds = that.rounds[:newLength]

	return nil
}

// Rounds - copies every recorded snapshot in order.
func (that *Store) Rounds() []entity.Board {
	return slices.Clone(that.rounds)
}

func (that *Store) Len() int {
	return len(that.rounds)
}
