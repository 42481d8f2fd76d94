package entity

import (
	"fmt"
	"sync"
	"time"

	"github.com/arenalabs/tictactoe-arena/internal/apperror"
)

// WinnerTie - the winner value of a game that filled up with no line.
const WinnerTie = 0

// Game is one contest between two players. The identifier and display name
// are fixed at creation; everything else changes only through AttemptMove,
// which holds the game mutex for the whole transition. That makes a move
// atomic against concurrent moves and guarantees that a snapshot taken after
// a successful move observes it.
type Game struct {
	id   int
	name string

	mu     sync.Mutex
	board  *Board
	next   int
	active bool
	winner int
}

// Snapshot is a consistent read-only view of a game.
type Snapshot struct {
	Board  [][]int
	Next   int
	Active bool
	Winner int
}

// GameResult is the archived outcome of a finished game.
type GameResult struct {
	GameID     int       `json:"game_id"`
	Name       string    `json:"name,omitempty"`
	Winner     int       `json:"winner"`
	FinishedAt time.Time `json:"finished_at"`
}

// NewGame - creates a game with an empty board and player one on the move.
func NewGame(id int, name string) *Game {
	return &Game{
		id:     id,
		name:   name,
		board:  NewBoard(DefaultBoardSize),
		next:   PlayerOne,
		active: true,
	}
}

func (that *Game) ID() int {
	return that.id
}

func (that *Game) DisplayName() string {
	return that.name
}

// AttemptMove - applies one move for player at (x, y).
// Rejections leave the game exactly as it was: finished game, wrong turn and
// board-level failures all return before anything is mutated. On success the
// terminal conditions are evaluated and either the game finishes or the turn
// passes to the other player.
func (that *Game) AttemptMove(player, x, y int) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	if !that.active {
		return apperror.ErrGameFinished
	}

	if player != that.next {
		return fmt.Errorf("player %d %w", player, apperror.ErrNotYourTurn)
	}

	if err := that.board.Place(x, y, player); err != nil {
		return err
	}

	switch {
	case that.board.HasWinner(player):
		that.active = false
		that.winner = player
	case that.board.IsFull():
		that.active = false
		that.winner = WinnerTie
	default:
		that.next = otherPlayer(player)
	}

	return nil
}

// Snapshot - returns a copy of the current state, taken under the game mutex.
func (that *Game) Snapshot() Snapshot {
	that.mu.Lock()
	defer that.mu.Unlock()

	return Snapshot{
		Board:  that.board.Cells(),
		Next:   that.next,
		Active: that.active,
		Winner: that.winner,
	}
}

func otherPlayer(player int) int {
	if player == PlayerOne {
		return PlayerTwo
	}

	return PlayerOne
}
