package history

import (
	"testing"

	"github.com/rocketscienceinc/tictactoe-stepback/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func filledStore(t *testing.T, moves int) *Store {
	t.Helper()

	store := New()

	var board entity.Board
	store.Append(board)

	for i := 0; i < moves; i++ {
		board = board.Place(i/entity.BoardSize, i%entity.BoardSize, entity.TurnForRound(i))
		store.Append(board)
	}

	return store
}

func TestStore_Append(t *testing.T) {
	t.Run("Length grows by one per snapshot", func(t *testing.T) {
		// Given: a store with the empty round and four moves
		store := filledStore(t, 4)

		// Then: it holds five rounds
		assert.Equal(t, 5, store.Len())
	})

	t.Run("Stored snapshots are independent of the caller's board", func(t *testing.T) {
		// Given: a board appended to the store
		store := New()

		var board entity.Board
		store.Append(board)

		// When: the caller mutates its board afterwards
		board[0][0] = entity.RoleX

		// Then: the stored round is still empty
		stored, err := store.Get(0)
		require.NoError(t, err)
		assert.True(t, stored.IsEmpty(0, 0))
	})

	t.Run("Returned snapshots are independent of the store", func(t *testing.T) {
		store := filledStore(t, 1)

		stored, err := store.Get(1)
		require.NoError(t, err)

		stored[2][2] = entity.RoleO

		again, err := store.Get(1)
		require.NoError(t, err)
		assert.True(t, again.IsEmpty(2, 2))
	})
}

func TestStore_Get(t *testing.T) {
	store := filledStore(t, 2)

	t.Run("Returns the recorded round", func(t *testing.T) {
		board, err := store.Get(2)

		require.NoError(t, err)
		assert.Equal(t, entity.RoleX, board[0][0])
		assert.Equal(t, entity.RoleO, board[0][1])
	})

	t.Run("Fails outside [0, length)", func(t *testing.T) {
		for _, index := range []int{-1, 3, 100} {
			_, err := store.Get(index)
			require.ErrorIs(t, err, ErrOutOfRange, "index %d", index)
		}
	})
}

func TestStore_Truncate(t *testing.T) {
	t.Run("Keeps the leading rounds", func(t *testing.T) {
		// Given: five rounds
		store := filledStore(t, 4)

		// When: truncating to two
		err := store.Truncate(2)

		// Then: only rounds 0 and 1 remain
		require.NoError(t, err)
		assert.Equal(t, 2, store.Len())

		_, err = store.Get(2)
		require.ErrorIs(t, err, ErrOutOfRange)
	})

	t.Run("Truncating to the current length is a no-op", func(t *testing.T) {
		store := filledStore(t, 2)

		require.NoError(t, store.Truncate(3))
		assert.Equal(t, 3, store.Len())
	})

	t.Run("Appending after truncation starts from the kept round", func(t *testing.T) {
		store := filledStore(t, 3)
		require.NoError(t, store.Truncate(1))

		var board entity.Board
		board = board.Place(2, 2, entity.RoleX)
		store.Append(board)

		stored, err := store.Get(1)
		require.NoError(t, err)
		assert.Equal(t, board, stored)
		assert.Equal(t, 2, store.Len())
	})

	t.Run("Rejects lengths outside [1, length]", func(t *testing.T) {
		store := filledStore(t, 2)

		for _, length := range []int{-1, 0, 4} {
			err := store.Truncate(length)
			require.ErrorIs(t, err, ErrInvalidArgument, "length %d", length)
		}

		assert.Equal(t, 3, store.Len())
	})
}

func TestStore_Rounds(t *testing.T) {
	// Given: three recorded rounds
	store := filledStore(t, 2)

	// When: copying them out and changing the copy
	rounds := store.Rounds()
	require.Len(t, rounds, 3)
	rounds[0] = rounds[0].Place(1, 1, entity.RoleO)

	// Then: the store is unchanged
	stored, err := store.Get(0)
	require.NoError(t, err)
	assert.True(t, stored.IsEmpty(1, 1))
	assert.Empty(t, New().Rounds())
}
