package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CP468/tictactoe/internal/apperror"
)

func newTestGame(t *testing.T) *Game {
	t.Helper()

	game, err := NewGame("123", 3)
	require.NoError(t, err)

	return game
}

// playMoves applies alternating moves for the current player.
func playMoves(t *testing.T, game *Game, cells ...[2]int) {
	t.Helper()

	for _, cell := range cells {
		move := Move{Row: cell[0], Col: cell[1], Mark: game.CurrentPlayer().Mark}
		require.NoError(t, game.ApplyMove(move))
	}
}

func TestNewGame(t *testing.T) {
	t.Run("Starts ongoing with X to move", func(t *testing.T) {
		// Given/When: a fresh default game
		game := newTestGame(t)

		// Then: empty ongoing board, X leads
		assert.Equal(t, StatusOngoing, game.Status)
		assert.Equal(t, PlayerX, game.CurrentPlayer().Mark)
		assert.Equal(t, 9, game.Board.EmptyCount())
	})

	t.Run("Propagates an invalid board size", func(t *testing.T) {
		_, err := NewGame("123", 1)
		assert.ErrorIs(t, err, ErrInvalidBoardSize)
	})
}

func TestGame_ApplyMove(t *testing.T) {
	t.Run("Successful move passes the turn", func(t *testing.T) {
		// Given: a fresh game
		game := newTestGame(t)

		// When: X plays a corner
		err := game.ApplyMove(Move{Row: 0, Col: 0, Mark: PlayerX})

		// Then: the mark lands and O is up
		require.NoError(t, err)
		assert.Equal(t, PlayerX, game.Board.At(0, 0))
		assert.Equal(t, PlayerO, game.CurrentPlayer().Mark)
		assert.Equal(t, StatusOngoing, game.Status)
	})

	t.Run("Occupied cell fails and leaves the game unchanged", func(t *testing.T) {
		// Given: X on (0,0)
		game := newTestGame(t)
		playMoves(t, game, [2]int{0, 0})
		before := game.Board.Cells()

		// When: O targets the same cell
		err := game.ApplyMove(Move{Row: 0, Col: 0, Mark: PlayerO})

		// Then: ErrCellOccupied, nothing moved
		require.ErrorIs(t, err, apperror.ErrCellOccupied)
		assert.Equal(t, before, game.Board.Cells())
		assert.Equal(t, PlayerO, game.CurrentPlayer().Mark)
	})

	t.Run("Out-of-range cell fails and leaves the game unchanged", func(t *testing.T) {
		game := newTestGame(t)
		before := game.Board.Cells()

		for _, cell := range [][2]int{{-1, 0}, {0, -1}, {3, 0}, {0, 3}} {
			err := game.ApplyMove(Move{Row: cell[0], Col: cell[1], Mark: PlayerX})
			require.ErrorIs(t, err, apperror.ErrInvalidCell)
		}

		assert.Equal(t, before, game.Board.Cells())
	})

	t.Run("Out-of-turn mark fails", func(t *testing.T) {
		game := newTestGame(t)

		err := game.ApplyMove(Move{Row: 0, Col: 0, Mark: PlayerO})

		require.ErrorIs(t, err, apperror.ErrNotYourTurn)
		assert.Equal(t, EmptyCell, game.Board.At(0, 0))
	})

	t.Run("Finished game rejects further moves", func(t *testing.T) {
		// Given: X completes the top row
		game := newTestGame(t)
		playMoves(t, game,
			[2]int{0, 0}, [2]int{1, 0},
			[2]int{0, 1}, [2]int{1, 1},
			[2]int{0, 2},
		)
		require.Equal(t, StatusFinished, game.Status)
		before := game.Board.Cells()

		// When: anyone tries to keep playing
		err := game.ApplyMove(Move{Row: 2, Col: 2, Mark: PlayerO})

		// Then: ErrGameFinished, board frozen
		require.ErrorIs(t, err, apperror.ErrGameFinished)
		assert.Equal(t, before, game.Board.Cells())
	})

	t.Run("Winning move records the winner and the line", func(t *testing.T) {
		// Given: X on (0,0),(0,1), O on (1,0),(1,1)
		game := newTestGame(t)
		playMoves(t, game,
			[2]int{0, 0}, [2]int{1, 0},
			[2]int{0, 1}, [2]int{1, 1},
		)
		require.True(t, game.Outcome().IsInProgress())

		// When: X plays (0,2)
		playMoves(t, game, [2]int{0, 2})

		// Then: X wins on the top row
		assert.Equal(t, StatusFinished, game.Status)
		assert.Equal(t, PlayerX, game.Winner)
		assert.Equal(t, []int{0, 1, 2}, game.WinningLine)
	})

	t.Run("Filling the board without a line ends in a tie", func(t *testing.T) {
		// Given: a full game with no three in a row
		game := newTestGame(t)
		playMoves(t, game,
			[2]int{0, 0}, [2]int{0, 1},
			[2]int{0, 2}, [2]int{1, 1},
			[2]int{1, 0}, [2]int{1, 2},
			[2]int{2, 1}, [2]int{2, 0},
			[2]int{2, 2},
		)

		// Then: tie
		assert.Equal(t, StatusFinished, game.Status)
		assert.Equal(t, PlayerTie, game.Winner)
		assert.True(t, game.Outcome().IsTie())
	})
}

func TestGame_Outcome(t *testing.T) {
	t.Run("Repeated evaluation is stable", func(t *testing.T) {
		game := newTestGame(t)
		playMoves(t, game, [2]int{1, 1}, [2]int{0, 0})

		first := game.Outcome()
		second := game.Outcome()

		assert.Equal(t, first, second)
		assert.True(t, first.IsInProgress())
	})

	t.Run("Agrees with the transactional fields after a win", func(t *testing.T) {
		game := newTestGame(t)
		playMoves(t, game,
			[2]int{0, 0}, [2]int{1, 0},
			[2]int{0, 1}, [2]int{1, 1},
			[2]int{0, 2},
		)

		outcome := game.Outcome()

		assert.True(t, outcome.IsWin())
		assert.Equal(t, game.Winner, outcome.Winner)
		assert.Equal(t, game.WinningLine, outcome.WinningLine)
	})
}

func TestGame_ToggleTurn(t *testing.T) {
	// Given: the default two-player lineup
	game := newTestGame(t)
	require.Equal(t, PlayerX, game.CurrentPlayer().Mark)

	// When/Then: the cursor cycles over the player list
	game.ToggleTurn()
	assert.Equal(t, PlayerO, game.CurrentPlayer().Mark)
	game.ToggleTurn()
	assert.Equal(t, PlayerX, game.CurrentPlayer().Mark)
}

func TestGame_IsLegalMove(t *testing.T) {
	game := newTestGame(t)
	playMoves(t, game, [2]int{0, 0})

	assert.True(t, game.IsLegalMove(Move{Row: 1, Col: 1}))
	assert.False(t, game.IsLegalMove(Move{Row: 0, Col: 0}), "occupied cell")
	assert.False(t, game.IsLegalMove(Move{Row: 5, Col: 5}), "out of range")
}

func TestGame_Reset(t *testing.T) {
	// Given: a finished game won by X
	game := newTestGame(t)
	playMoves(t, game,
		[2]int{0, 0}, [2]int{1, 0},
		[2]int{0, 1}, [2]int{1, 1},
		[2]int{0, 2},
	)
	require.True(t, game.IsFinished())

	// When: resetting for a rematch
	game.Reset()

	// Then: empty ongoing board with X to move again
	assert.True(t, game.Outcome().IsInProgress())
	assert.Equal(t, EmptyCell, game.Winner)
	assert.Nil(t, game.WinningLine)
	assert.Equal(t, PlayerX, game.CurrentPlayer().Mark)
	assert.Equal(t, 9, game.Board.EmptyCount())
	assert.Len(t, game.Board.WinningLines(), 8)
}
