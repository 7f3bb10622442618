// Package engine selects moves for the computer player with a
// bounded-depth minimax search over the shared board. Every provisional
// placement is undone before the search returns, so the board the caller
// handed in is always left exactly as it was.
package engine

import (
	"math"

	"github.com/CP468/tictactoe/internal/apperror"
	"github.com/CP468/tictactoe/internal/entity"
)

// winMagnitude anchors terminal scores: a win found at depth d scores
// winMagnitude-d, so faster wins and slower losses are preferred. Scores
// are only comparable within one search call with a fixed depth bound.
const winMagnitude = 10

// Config holds the depth-scaling constants. The bound for a single
// search is BaseDepth + floor(filled/total * DepthGrowth): shallow with
// a heuristic fallback while the branching factor is large, effectively
// exhaustive once the board fills up. The defaults are empirical, not
// load-bearing.
type Config struct {
	BaseDepth   int
	DepthGrowth int
}

func DefaultConfig() Config {
	return Config{BaseDepth: 2, DepthGrowth: 2}
}

// Engine is an adversarial move picker for one fixed mark. It assumes a
// two-player game: every cell not owned by its mark belongs to the
// opponent.
type Engine struct {
	player   entity.Mark
	opponent entity.Mark
	conf     Config
}

func New(player, opponent entity.Mark, conf Config) *Engine {
	return &Engine{
		player:   player,
		opponent: opponent,
		conf:     conf,
	}
}

// SelectMove returns the best cell for the engine's mark on an ongoing
// board. Candidates are scanned in row-major order and ties keep the
// first-found cell, so the choice is deterministic for a fixed board.
// A full board is a caller contract violation and returns
// ErrNoAvailableMoves.
func (that *Engine) SelectMove(board *entity.Board) (int, int, error) {
	if board.IsFull() {
		return 0, 0, apperror.ErrNoAvailableMoves
	}

	maxDepth := that.maxDepth(board)
	bestScore := math.MinInt
	bestRow, bestCol := -1, -1

	for row := 0; row < board.Size(); row++ {
		for col := 0; col < board.Size(); col++ {
			if !board.IsEmptyCell(row, col) {
				continue
			}

			board.SetCell(row, col, that.player)
			score := that.minimax(board, false, math.MinInt, math.MaxInt, maxDepth, 1)
			board.SetCell(row, col, entity.EmptyCell)

			if score > bestScore {
				bestScore = score
				bestRow, bestCol = row, col
			}
		}
	}

	return bestRow, bestCol, nil
}

// maxDepth scales the search bound with game progress.
func (that *Engine) maxDepth(board *entity.Board) int {
	total := board.Size() * board.Size()
	return that.conf.BaseDepth + board.FilledCount()*that.conf.DepthGrowth/total
}

// minimax scores the current position for the engine's mark. Decided
// positions and depth cutoffs are scored first; otherwise it recurses
// over every empty cell with a provisional place-and-undo, pruning
// siblings once beta <= alpha. The undo runs before every exit path, so
// the board is unchanged when minimax returns.
func (that *Engine) minimax(board *entity.Board, maximizing bool, alpha, beta, maxDepth, depth int) int {
	winner, _ := board.Winner()
	if depth == maxDepth || winner != entity.EmptyCell {
		switch winner {
		case that.player:
			return winMagnitude - depth
		case that.opponent:
			return -winMagnitude + depth
		case entity.PlayerTie:
			return 0
		default:
			return that.heuristic(board)
		}
	}

	if maximizing {
		best := math.MinInt
		for row := 0; row < board.Size(); row++ {
			for col := 0; col < board.Size(); col++ {
				if !board.IsEmptyCell(row, col) {
					continue
				}

				board.SetCell(row, col, that.player)
				score := that.minimax(board, false, alpha, beta, maxDepth, depth+1)
				board.SetCell(row, col, entity.EmptyCell)

				best = max(best, score)
				alpha = max(alpha, best)
				if beta <= alpha {
					return best
				}
			}
		}
		return best
	}

	best := math.MaxInt
	for row := 0; row < board.Size(); row++ {
		for col := 0; col < board.Size(); col++ {
			if !board.IsEmptyCell(row, col) {
				continue
			}

			board.SetCell(row, col, that.opponent)
			score := that.minimax(board, true, alpha, beta, maxDepth, depth+1)
			board.SetCell(row, col, entity.EmptyCell)

			best = min(best, score)
			beta = min(beta, best)
			if beta <= alpha {
				return best
			}
		}
	}
	return best
}

// heuristic is the static evaluation for undecided cutoffs: +1 for every
// winning line occupied only by the engine's mark, -1 for every line
// occupied only by the opponent; contested and empty lines score 0.
func (that *Engine) heuristic(board *entity.Board) int {
	score := 0

	for _, line := range board.WinningLines() {
		playerIn, opponentIn := false, false
		for _, index := range line {
			switch board.AtIndex(index) {
			case that.player:
				playerIn = true
			case that.opponent:
				opponentIn = true
			}
		}

		if playerIn && !opponentIn {
			score++
		} else if opponentIn && !playerIn {
			score--
		}
	}

	return score
}
