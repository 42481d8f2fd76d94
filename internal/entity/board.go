package entity

import (
	"fmt"

	"github.com/arenalabs/tictactoe-arena/internal/apperror"
)

const (
	EmptyCell = 0
	PlayerOne = 1
	PlayerTwo = 2
)

// DefaultBoardSize - the classic 3x3 grid.
const DefaultBoardSize = 3

// Board is a square grid of cells. A cell holds EmptyCell until a player
// claims it; claimed cells never change again.
type Board struct {
	cells [][]int
}

func NewBoard(size int) *Board {
	cells := make([][]int, size)
	for i := range cells {
		cells[i] = make([]int, size)
	}

	return &Board{cells: cells}
}

func (that *Board) Size() int {
	return len(that.cells)
}

// Place - claims the cell at (x, y) for player.
// Fails without touching the board if the coordinate is out of range or the
// cell is already taken.
func (that *Board) Place(x, y, player int) error {
	size := that.Size()

	if x < 0 || x >= size {
		return fmt.Errorf("x %w", apperror.ErrOutOfRange)
	}

	if y < 0 || y >= size {
		return fmt.Errorf("y %w", apperror.ErrOutOfRange)
	}

	if that.cells[x][y] != EmptyCell {
		return fmt.Errorf("field [%d][%d]: %w", x, y, apperror.ErrCellOccupied)
	}

	that.cells[x][y] = player

	return nil
}

// HasWinner - reports whether player owns a full row, a full column or one
// of the two diagonals. All 2N+2 lines are checked.
func (that *Board) HasWinner(player int) bool {
	size := that.Size()

	for i := 0; i < size; i++ {
		if that.lineOwned(player, i, 0, 0, 1) { // row i
			return true
		}
		if that.lineOwned(player, 0, i, 1, 0) { // column i
			return true
		}
	}

	if that.lineOwned(player, 0, 0, 1, 1) { // main diagonal
		return true
	}

	return that.lineOwned(player, 0, that.Size()-1, 1, -1) // anti diagonal
}

// lineOwned - walks one line of the grid from (x, y) with step (dx, dy).
func (that *Board) lineOwned(player, x, y, dx, dy int) bool {
	for i := 0; i < that.Size(); i++ {
		if that.cells[x+i*dx][y+i*dy] != player {
			return false
		}
	}

	return true
}

// IsFull - reports whether no empty cell remains.
func (that *Board) IsFull() bool {
	for _, row := range that.cells {
		for _, cell := range row {
			if cell == EmptyCell {
				return false
			}
		}
	}

	return true
}

// Cells - returns a deep copy of the grid, safe to hand out.
func (that *Board) Cells() [][]int {
	cells := make([][]int, len(that.cells))
	for i, row := range that.cells {
		cells[i] = make([]int, len(row))
		copy(cells[i], row)
	}

	return cells
}
