package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CP468/tictactoe/internal/apperror"
	"github.com/CP468/tictactoe/internal/entity"
	"github.com/CP468/tictactoe/testing/suite"
)

func TestGameRepository_CreateOrUpdate(t *testing.T) {
	ctx, st := suite.New(t)

	gameRepo := NewGameRepository(st.Storage)

	// Given: a game with a couple of moves on the board
	game, err := entity.NewGame("123", 3)
	require.NoError(t, err)
	require.NoError(t, game.ApplyMove(entity.Move{Row: 0, Col: 0, Mark: entity.PlayerX}))
	require.NoError(t, game.ApplyMove(entity.Move{Row: 1, Col: 1, Mark: entity.PlayerO}))

	// When: CreateOrUpdate is called
	err = gameRepo.CreateOrUpdate(ctx, game)

	// Then: no error should be returned
	require.NoError(t, err)
}

func TestGameRepository_GetByID(t *testing.T) {
	t.Run("Round-trips a game with its geometry intact", func(t *testing.T) {
		ctx, st := suite.New(t)

		gameRepo := NewGameRepository(st.Storage)

		// Given: a stored mid-game position
		game, err := entity.NewGame("123", 3)
		require.NoError(t, err)
		require.NoError(t, game.ApplyMove(entity.Move{Row: 0, Col: 0, Mark: entity.PlayerX}))
		require.NoError(t, gameRepo.CreateOrUpdate(ctx, game))

		// When: loading it back
		retrieved, err := gameRepo.GetByID(ctx, game.ID)

		// Then: cells, turn and the rebuilt winning-line set all match
		require.NoError(t, err)
		assert.Equal(t, game.Board.Cells(), retrieved.Board.Cells())
		assert.Equal(t, game.TurnIndex, retrieved.TurnIndex)
		assert.Equal(t, game.Status, retrieved.Status)
		assert.Len(t, retrieved.Board.WinningLines(), 8)
	})

	t.Run("Unknown ID returns ErrGameNotFound", func(t *testing.T) {
		ctx, st := suite.New(t)

		gameRepo := NewGameRepository(st.Storage)

		_, err := gameRepo.GetByID(ctx, "does-not-exist")

		assert.ErrorIs(t, err, apperror.ErrGameNotFound)
	})
}

func TestGameRepository_DeleteByID(t *testing.T) {
	ctx, st := suite.New(t)

	gameRepo := NewGameRepository(st.Storage)

	// Given: a stored game
	game, err := entity.NewGame("123", 3)
	require.NoError(t, err)
	require.NoError(t, gameRepo.CreateOrUpdate(ctx, game))

	// When: deleting it
	require.NoError(t, gameRepo.DeleteByID(ctx, game.ID))

	// Then: it can no longer be loaded
	_, err = gameRepo.GetByID(ctx, game.ID)
	assert.ErrorIs(t, err, apperror.ErrGameNotFound)
}
