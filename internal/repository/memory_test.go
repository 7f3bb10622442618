package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CP468/tictactoe/internal/apperror"
	"github.com/CP468/tictactoe/internal/entity"
)

func TestInMemoryGameRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("Round-trips a game through the shared codec", func(t *testing.T) {
		gameRepo := NewInMemoryGameRepository()

		// Given: a stored mid-game position
		game, err := entity.NewGame("123", 3)
		require.NoError(t, err)
		require.NoError(t, game.ApplyMove(entity.Move{Row: 2, Col: 2, Mark: entity.PlayerX}))
		require.NoError(t, gameRepo.CreateOrUpdate(ctx, game))

		// When: loading it back
		retrieved, err := gameRepo.GetByID(ctx, "123")

		// Then: the copy is detached and geometry is rebuilt
		require.NoError(t, err)
		assert.Equal(t, game.Board.Cells(), retrieved.Board.Cells())
		assert.Len(t, retrieved.Board.WinningLines(), 8)

		retrieved.Board.SetCell(0, 0, entity.PlayerO)
		reloaded, err := gameRepo.GetByID(ctx, "123")
		require.NoError(t, err)
		assert.Equal(t, entity.EmptyCell, reloaded.Board.At(0, 0))
	})

	t.Run("Unknown ID returns ErrGameNotFound", func(t *testing.T) {
		gameRepo := NewInMemoryGameRepository()

		_, err := gameRepo.GetByID(ctx, "missing")

		assert.ErrorIs(t, err, apperror.ErrGameNotFound)
	})

	t.Run("DeleteByID removes the game", func(t *testing.T) {
		gameRepo := NewInMemoryGameRepository()

		game, err := entity.NewGame("123", 3)
		require.NoError(t, err)
		require.NoError(t, gameRepo.CreateOrUpdate(ctx, game))

		require.NoError(t, gameRepo.DeleteByID(ctx, "123"))

		_, err = gameRepo.GetByID(ctx, "123")
		assert.ErrorIs(t, err, apperror.ErrGameNotFound)
	})
}
