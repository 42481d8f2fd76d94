package client

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/arenalabs/tictactoe-arena/internal/entity"
)

// Session drives one human player through a whole game: discovery, the
// polling loop, move input and the final verdict. It is strictly sequential;
// the only blocking points are server calls and the bounded poll sleep.
//
// The server stays authoritative throughout. The session only remembers
// which player it is, which game it is in, and whose turn the last rendered
// board belonged to.
type Session struct {
	logger       *slog.Logger
	api          *Client
	in           *bufio.Scanner
	out          io.Writer
	pollInterval time.Duration

	player int
	gameID int
}

func NewSession(logger *slog.Logger, api *Client, in io.Reader, out io.Writer, pollInterval time.Duration) *Session {
	return &Session{
		logger:       logger,
		api:          api,
		in:           bufio.NewScanner(in),
		out:          out,
		pollInterval: pollInterval,
	}
}

// Run - plays one game from discovery to the final verdict.
// Closed input ends the session cleanly; the abandoned game stays on the
// server.
func (that *Session) Run(ctx context.Context) error {
	err := that.chooseGame(ctx)
	if err == nil {
		err = that.playLoop(ctx)
	}

	if errors.Is(err, io.EOF) {
		fmt.Fprintln(that.out, "input closed, leaving the game")
		return nil
	}

	return err
}

// chooseGame - lists the games once and prompts until the player either
// joins an existing game as O or starts a fresh one as X.
func (that *Session) chooseGame(ctx context.Context) error {
	games, err := that.api.ListGames(ctx)
	if err != nil {
		return fmt.Errorf("failed to discover games: %w", err)
	}

	if len(games) == 0 {
		fmt.Fprintln(that.out, "no games on the server yet")
	} else {
		fmt.Fprintln(that.out, "available games:")
		for _, info := range games {
			fmt.Fprintf(that.out, "  %d  %s\n", info.ID, info.Name)
		}
	}

	for {
		line, err := that.readLine(`enter a game id to join as O, or "new [name]" to start as X: `)
		if err != nil {
			return err
		}

		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		if fields[0] == "new" {
			return that.startGame(ctx, strings.Join(fields[1:], " "))
		}

		id, err := strconv.Atoi(fields[0])
		if err != nil {
			fmt.Fprintln(that.out, `that is neither a game id nor a "new" directive`)
			continue
		}

		if _, err = that.api.GameStatus(ctx, id); err != nil {
			fmt.Fprintf(that.out, "cannot join game %d: %v\n", id, err)
			continue
		}

		that.gameID = id
		that.player = entity.PlayerTwo
		fmt.Fprintf(that.out, "joined game %d, you play O\n", id)

		return nil
	}
}

func (that *Session) startGame(ctx context.Context, name string) error {
	id, err := that.api.StartGame(ctx, name)
	if err != nil {
		return fmt.Errorf("failed to create game: %w", err)
	}

	that.gameID = id
	that.player = entity.PlayerOne
	fmt.Fprintf(that.out, "created game %d, you play X\n", id)

	return nil
}

// playLoop - polls the game until it finishes. The board is rendered at most
// once per turn change; while the opponent is on the move the loop sleeps
// for the poll interval instead of hammering the server.
func (that *Session) playLoop(ctx context.Context) error {
	renderedTurn := 0 // next-player value of the last rendered board

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		status, err := that.api.GameStatus(ctx, that.gameID)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}

			// fatal to this poll only, the session keeps trying
			that.logger.Error("status poll failed", "game", that.gameID, "error", err)
			fmt.Fprintf(that.out, "cannot reach server: %v\n", err)
			that.sleep(ctx)
			continue
		}

		if status.Finished() {
			that.reportOutcome(*status.Winner)
			return nil
		}

		if status.Next != renderedTurn {
			renderBoard(that.out, status.Board)
			renderedTurn = status.Next
		}

		if status.Next != that.player {
			that.sleep(ctx)
			continue
		}

		if err = that.submitMove(ctx); err != nil {
			return err
		}
	}
}

// submitMove - solicits moves until the server accepts one. A rejected move
// costs nothing; the turn is still ours, so we just ask again.
func (that *Session) submitMove(ctx context.Context) error {
	for {
		x, y, err := that.readMove()
		if err != nil {
			return err
		}

		verdict, err := that.api.Play(ctx, that.gameID, that.player, x, y)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}

			that.logger.Error("play request failed", "game", that.gameID, "error", err)
			fmt.Fprintf(that.out, "move not delivered: %v\n", err)
			continue
		}

		if verdict.OK() {
			return nil
		}

		fmt.Fprintf(that.out, "move rejected: %s\n", verdict.Message)
	}
}

// readMove - reads a coordinate pair. Malformed input never leaves the
// client; the player is simply asked again.
func (that *Session) readMove() (int, int, error) {
	prompt := fmt.Sprintf("your move (%s), enter x y: ", playerMark(that.player))

	for {
		line, err := that.readLine(prompt)
		if err != nil {
			return 0, 0, err
		}

		fields := strings.Fields(line)
		if len(fields) != 2 {
			fmt.Fprintln(that.out, "please enter two numbers, e.g. 0 2")
			continue
		}

		x, errX := strconv.Atoi(fields[0])
		y, errY := strconv.Atoi(fields[1])
		if errX != nil || errY != nil {
			fmt.Fprintln(that.out, "please enter two numbers, e.g. 0 2")
			continue
		}

		return x, y, nil
	}
}

func (that *Session) reportOutcome(winner int) {
	switch winner {
	case entity.WinnerTie:
		fmt.Fprintln(that.out, "it's a draw")
	case that.player:
		fmt.Fprintln(that.out, "you win!")
	default:
		fmt.Fprintln(that.out, "you lose")
	}
}

func (that *Session) readLine(prompt string) (string, error) {
	fmt.Fprint(that.out, prompt)

	if !that.in.Scan() {
		if err := that.in.Err(); err != nil {
			return "", fmt.Errorf("failed to read input: %w", err)
		}

		return "", io.EOF
	}

	return strings.TrimSpace(that.in.Text()), nil
}

func (that *Session) sleep(ctx context.Context) {
	timer := time.NewTimer(that.pollInterval)
	defer timer.Stop()

	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}
