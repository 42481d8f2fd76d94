package client

import (
	"fmt"
	"io"
	"strings"

	"github.com/arenalabs/tictactoe-arena/internal/entity"
)

// renderBoard - prints the board in row-major order with one rune per cell.
func renderBoard(out io.Writer, board [][]int) {
	var builder strings.Builder

	for _, row := range board {
		for _, cell := range row {
			builder.WriteString(cellMark(cell))
			builder.WriteByte(' ')
		}
		builder.WriteByte('\n')
	}

	fmt.Fprint(out, builder.String())
}

func cellMark(cell int) string {
	switch cell {
	case entity.PlayerOne:
		return "X"
	case entity.PlayerTwo:
		return "O"
	default:
		return "."
	}
}

func playerMark(player int) string {
	return cellMark(player)
}
