package entity

import (
	"fmt"

	"github.com/CP468/tictactoe/internal/apperror"
)

const (
	StatusOngoing  = "ongoing"
	StatusFinished = "finished"
)

// Move is a request to put a mark on a cell.
type Move struct {
	Row  int  `json:"row"`
	Col  int  `json:"col"`
	Mark Mark `json:"mark"`
}

// Outcome is the derived terminal state of a game: still in progress,
// a win with the completed line, or a tie.
type Outcome struct {
	Status      string `json:"status"`
	Winner      Mark   `json:"winner,omitempty"`
	WinningLine []int  `json:"winning_line,omitempty"`
}

func (that Outcome) IsInProgress() bool {
	return that.Status == StatusOngoing
}

func (that Outcome) IsTie() bool {
	return that.Status == StatusFinished && that.Winner == PlayerTie
}

func (that Outcome) IsWin() bool {
	return that.Status == StatusFinished && that.Winner != PlayerTie
}

// Game is the single source of truth for marks, turn order and terminal
// state. Winner, WinningLine and Status are updated transactionally by
// ApplyMove and always agree with Board.Winner().
type Game struct {
	ID          string    `json:"id"`
	Board       *Board    `json:"board"`
	Players     []*Player `json:"players"`
	TurnIndex   int       `json:"turn_index"`
	Winner      Mark      `json:"winner,omitempty"`
	WinningLine []int     `json:"winning_line,omitempty"`
	Status      string    `json:"status"`
}

// NewGame creates an ongoing game on an empty size x size board. With no
// players given, DefaultPlayers is used; the first player in the list
// moves first.
func NewGame(id string, size int, players ...*Player) (*Game, error) {
	board, err := NewBoard(size)
	if err != nil {
		return nil, fmt.Errorf("failed to create board: %w", err)
	}

	if len(players) == 0 {
		players = DefaultPlayers()
	}

	return &Game{
		ID:      id,
		Board:   board,
		Players: players,
		Status:  StatusOngoing,
	}, nil
}

func (that *Game) CurrentPlayer() *Player {
	return that.Players[that.TurnIndex]
}

// ToggleTurn advances the turn cursor cyclically over the player list.
func (that *Game) ToggleTurn() {
	that.TurnIndex = (that.TurnIndex + 1) % len(that.Players)
}

func (that *Game) IsOngoing() bool {
	return that.Status == StatusOngoing
}

func (that *Game) IsFinished() bool {
	return that.Status == StatusFinished
}

// IsLegalMove reports whether the move targets an empty in-range cell of
// a game that has not already finished.
func (that *Game) IsLegalMove(move Move) bool {
	return that.IsOngoing() &&
		that.Board.InRange(move.Row, move.Col) &&
		that.Board.IsEmptyCell(move.Row, move.Col)
}

// ApplyMove validates and applies a single move. On any error the game,
// including the board, is left untouched. A move that finishes the game
// freezes the turn cursor; otherwise the turn passes to the next player.
func (that *Game) ApplyMove(move Move) error {
	if that.IsFinished() {
		return apperror.ErrGameFinished
	}

	if !that.Board.InRange(move.Row, move.Col) {
		return fmt.Errorf("%w: cell (%d,%d)", apperror.ErrInvalidCell, move.Row, move.Col)
	}

	if !that.Board.IsEmptyCell(move.Row, move.Col) {
		return apperror.ErrCellOccupied
	}

	if move.Mark != that.CurrentPlayer().Mark {
		return apperror.ErrNotYourTurn
	}

	that.Board.SetCell(move.Row, move.Col, move.Mark)
	that.updateGameState()

	return nil
}

// updateGameState refreshes Winner, WinningLine and Status from the
// board after a move, and passes the turn when the game continues.
func (that *Game) updateGameState() {
	switch winner, line := that.Board.Winner(); winner {
	case PlayerTie:
		that.Winner = PlayerTie
		that.Status = StatusFinished
	case EmptyCell:
		that.ToggleTurn()
	default:
		that.Winner = winner
		that.WinningLine = line
		that.Status = StatusFinished
	}
}

// Outcome recomputes the terminal state from the board contents. It is a
// pure read: calling it repeatedly without an intervening ApplyMove
// always yields the same result.
func (that *Game) Outcome() Outcome {
	winner, line := that.Board.Winner()
	if winner == EmptyCell {
		return Outcome{Status: StatusOngoing}
	}

	return Outcome{
		Status:      StatusFinished,
		Winner:      winner,
		WinningLine: line,
	}
}

// Reset clears the board and the terminal state for a rematch. The turn
// cursor goes back to the first player, so X leads again; the
// winning-line set is untouched.
func (that *Game) Reset() {
	that.Board.Reset()
	that.Winner = EmptyCell
	that.WinningLine = nil
	that.Status = StatusOngoing
	that.TurnIndex = 0
}
