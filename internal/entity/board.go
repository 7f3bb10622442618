package entity

import (
	"encoding/json"
	"errors"
	"fmt"
)

const (
	EmptyCell Mark = ""
	PlayerX   Mark = "X"
	PlayerO   Mark = "O"
	PlayerTie Mark = "-"
)

// Mark is the symbol occupying a cell. The closed set is EmptyCell,
// PlayerX and PlayerO; PlayerTie is only ever used as a winner sentinel.
type Mark string

var ErrInvalidBoardSize = errors.New("board size must be at least 2")

// Board is a size x size grid of marks plus the winning-line set derived
// from the grid geometry. The line set is computed once in NewBoard and
// is immutable afterwards; Reset clears the cells but keeps the lines.
type Board struct {
	size  int
	cells []Mark
	lines [][]int
}

func NewBoard(size int) (*Board, error) {
	if size < 2 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidBoardSize, size)
	}

	return &Board{
		size:  size,
		cells: make([]Mark, size*size),
		lines: winningLines(size),
	}, nil
}

// winningLines enumerates the 2N+2 lines of an NxN board: N rows,
// N columns and both diagonals, each as a slice of cell indices.
func winningLines(size int) [][]int {
	lines := make([][]int, 0, 2*size+2)

	for row := 0; row < size; row++ {
		line := make([]int, size)
		for col := 0; col < size; col++ {
			line[col] = row*size + col
		}
		lines = append(lines, line)
	}

	for col := 0; col < size; col++ {
		line := make([]int, size)
		for row := 0; row < size; row++ {
			line[row] = row*size + col
		}
		lines = append(lines, line)
	}

	first := make([]int, size)
	second := make([]int, size)
	for i := 0; i < size; i++ {
		first[i] = i*size + i
		second[i] = i*size + (size - 1 - i)
	}

	return append(lines, first, second)
}

func (that *Board) Size() int {
	return that.size
}

func (that *Board) InRange(row, col int) bool {
	return row >= 0 && row < that.size && col >= 0 && col < that.size
}

// Index converts (row, col) to the flat cell index used by the
// winning-line set.
func (that *Board) Index(row, col int) int {
	return row*that.size + col
}

// RowCol is the inverse of Index.
func (that *Board) RowCol(index int) (int, int) {
	return index / that.size, index % that.size
}

func (that *Board) At(row, col int) Mark {
	return that.cells[that.Index(row, col)]
}

func (that *Board) AtIndex(index int) Mark {
	return that.cells[index]
}

// SetCell writes a mark without any legality checks. Game.ApplyMove is
// the validated path; the search engine uses SetCell directly for its
// provisional place-and-undo moves.
func (that *Board) SetCell(row, col int, mark Mark) {
	that.cells[that.Index(row, col)] = mark
}

func (that *Board) IsEmptyCell(row, col int) bool {
	return that.At(row, col) == EmptyCell
}

func (that *Board) FilledCount() int {
	count := 0
	for _, cell := range that.cells {
		if cell != EmptyCell {
			count++
		}
	}
	return count
}

func (that *Board) EmptyCount() int {
	return len(that.cells) - that.FilledCount()
}

func (that *Board) IsFull() bool {
	return that.EmptyCount() == 0
}

// WinningLines returns the precomputed line set. Callers must not
// mutate it.
func (that *Board) WinningLines() [][]int {
	return that.lines
}

// Winner scans every winning line and returns the mark that fully
// occupies one, together with that line. With no complete line it
// returns PlayerTie on a full board and EmptyCell otherwise.
func (that *Board) Winner() (Mark, []int) {
	for _, line := range that.lines {
		mark := that.cells[line[0]]
		if mark == EmptyCell {
			continue
		}

		complete := true
		for _, index := range line[1:] {
			if that.cells[index] != mark {
				complete = false
				break
			}
		}

		if complete {
			return mark, line
		}
	}

	if that.IsFull() {
		return PlayerTie, nil
	}

	return EmptyCell, nil
}

// Reset clears every cell back to EmptyCell. The winning-line set is
// geometry-derived and is kept as is.
func (that *Board) Reset() {
	for i := range that.cells {
		that.cells[i] = EmptyCell
	}
}

// Cells returns a copy of the grid contents in row-major order.
func (that *Board) Cells() []Mark {
	cells := make([]Mark, len(that.cells))
	copy(cells, that.cells)
	return cells
}

type boardJSON struct {
	Size  int    `json:"size"`
	Cells []Mark `json:"cells"`
}

func (that *Board) MarshalJSON() ([]byte, error) {
	return json.Marshal(boardJSON{Size: that.size, Cells: that.cells})
}

// UnmarshalJSON restores the cells and rebuilds the winning-line set,
// which is never serialized.
func (that *Board) UnmarshalJSON(data []byte) error {
	var raw boardJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("failed to unmarshal board: %w", err)
	}

	if raw.Size < 2 {
		return fmt.Errorf("%w: got %d", ErrInvalidBoardSize, raw.Size)
	}

	if len(raw.Cells) != raw.Size*raw.Size {
		return fmt.Errorf("board has %d cells, want %d", len(raw.Cells), raw.Size*raw.Size)
	}

	that.size = raw.Size
	that.cells = raw.Cells
	that.lines = winningLines(raw.Size)

	return nil
}
