package repository

import (
	"testing"

	"github.com/rocketscienceinc/tictactoe-stepback/internal/entity"
	"github.com/rocketscienceinc/tictactoe-stepback/testing/suite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func playedRounds() []entity.Board {
	var board entity.Board

	first := board.Place(1, 1, entity.RoleX)
	second := first.Place(0, 2, entity.RoleO)

	return []entity.Board{board, first, second}
}

func TestRoundRepository_Sync(t *testing.T) {
	t.Run("Sync_Success", func(t *testing.T) {
		ctx, st := suite.New(t)

		roundRepo := NewRoundRepository(st.Storage, st.JournalKey)

		// When: three rounds are synced
		rounds := playedRounds()
		require.NoError(t, roundRepo.Sync(ctx, rounds))

		// Then: they are read back in order, one element per round
		stored, err := roundRepo.Rounds(ctx)
		require.NoError(t, err)
		assert.Equal(t, rounds, stored)

		raw := st.Stored(ctx)
		require.Len(t, raw, 3)
		assert.JSONEq(t, `[[null,null,null],[null,"X",null],[null,null,null]]`, raw[1])
	})

	t.Run("Sync_ReplacesLongerList", func(t *testing.T) {
		ctx, st := suite.New(t)

		roundRepo := NewRoundRepository(st.Storage, st.JournalKey)

		// Given: a journal that missed a rewind
		rounds := playedRounds()
		require.NoError(t, roundRepo.Sync(ctx, rounds))

		// When: the rewound history is synced
		require.NoError(t, roundRepo.Sync(ctx, rounds[:1]))

		// Then: only the kept round is stored
		stored, err := roundRepo.Rounds(ctx)
		require.NoError(t, err)
		assert.Equal(t, rounds[:1], stored)
	})

	t.Run("Sync_RepairsStaleList", func(t *testing.T) {
		ctx, st := suite.New(t)

		// Given: leftovers from an earlier session, including an unreadable element
		st.Seed(ctx, `[[null,null,null],[null,null,null],[null,null,null]]`, `garbage`, `garbage`, `garbage`, `garbage`)

		roundRepo := NewRoundRepository(st.Storage, st.JournalKey)

		// When: the current history is synced
		rounds := playedRounds()[:2]
		require.NoError(t, roundRepo.Sync(ctx, rounds))

		// Then: the stored list matches it exactly
		stored, err := roundRepo.Rounds(ctx)
		require.NoError(t, err)
		assert.Equal(t, rounds, stored)
	})

	t.Run("Sync_EmptyHistoryClears", func(t *testing.T) {
		ctx, st := suite.New(t)

		st.Seed(ctx, `[[null,null,null],[null,null,null],[null,null,null]]`)

		roundRepo := NewRoundRepository(st.Storage, st.JournalKey)

		require.NoError(t, roundRepo.Sync(ctx, nil))
		assert.Empty(t, st.Stored(ctx))
	})
}

func TestRoundRepository_Rounds(t *testing.T) {
	t.Run("Rounds_Empty", func(t *testing.T) {
		ctx, st := suite.New(t)

		rounds, err := NewRoundRepository(st.Storage, st.JournalKey).Rounds(ctx)

		require.NoError(t, err)
		assert.Empty(t, rounds)
	})

	t.Run("Rounds_Malformed", func(t *testing.T) {
		ctx, st := suite.New(t)

		// Given: a board with a bad label
		st.Seed(ctx, `[["Z",null,null],[null,null,null],[null,null,null]]`)

		// When: reading the rounds
		_, err := NewRoundRepository(st.Storage, st.JournalKey).Rounds(ctx)

		// Then: the board is rejected
		require.ErrorIs(t, err, entity.ErrMalformedBoard)
	})
}
