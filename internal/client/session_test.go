package client

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/arenalabs/tictactoe-arena/internal/entity"
	"github.com/arenalabs/tictactoe-arena/internal/registry"
	"github.com/arenalabs/tictactoe-arena/transport/rest"
	"github.com/stretchr/testify/require"
)

func newTestSession(t *testing.T, input string) (*Session, *registry.GameRegistry, *bytes.Buffer) {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	games := registry.New()

	server := httptest.NewServer(rest.NewRouter(logger, games, nil))
	t.Cleanup(server.Close)

	api := New(strings.TrimPrefix(server.URL, "http://"), time.Second)

	out := &bytes.Buffer{}
	session := NewSession(logger, api, strings.NewReader(input), out, 2*time.Millisecond)

	return session, games, out
}

// driveOpponent - plays the scripted moves for player whenever it is their
// turn, straight against the registry. If the script cannot complete, the
// session side of the test times out and fails.
func driveOpponent(games *registry.GameRegistry, gameID, player int, moves [][2]int) {
	deadline := time.Now().Add(5 * time.Second)

	for len(moves) > 0 && time.Now().Before(deadline) {
		game, err := games.Get(gameID)
		if err != nil {
			time.Sleep(time.Millisecond)
			continue
		}

		snapshot := game.Snapshot()
		if !snapshot.Active {
			return
		}

		if snapshot.Next == player {
			if game.AttemptMove(player, moves[0][0], moves[0][1]) == nil {
				moves = moves[1:]
			}
		}

		time.Sleep(time.Millisecond)
	}
}

func TestSession_WinAsPlayerOne(t *testing.T) {
	// Given: a session that creates a game, fumbles some input, then plays
	// the top row; the opponent answers in the middle row. "what" is neither
	// an id nor a "new" directive, "junk here" never leaves the client and
	// "9 9" is rejected by the server.
	input := "what\nnew demo match\njunk here\n9 9\n0 0\n0 1\n0 2\n"

	session, games, out := newTestSession(t, input)
	go driveOpponent(games, 0, entity.PlayerTwo, [][2]int{{1, 0}, {1, 1}})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// When: the session runs to completion
	require.NoError(t, session.Run(ctx))

	// Then: every stumble was reported and the outcome is a win
	printed := out.String()
	require.Contains(t, printed, `neither a game id nor a "new" directive`)
	require.Contains(t, printed, "created game 0, you play X")
	require.Contains(t, printed, "please enter two numbers")
	require.Contains(t, printed, "move rejected: x coordinate out of range")
	require.Contains(t, printed, "you win!")
}

func TestSession_LoseAsPlayerTwo(t *testing.T) {
	// Given: an existing game the session joins as O while the opponent
	// marches through the top row
	input := "7\n0\n1 0\n1 1\n"

	session, games, out := newTestSession(t, input)
	games.Create("occupied seat")
	go driveOpponent(games, 0, entity.PlayerOne, [][2]int{{0, 0}, {0, 1}, {0, 2}})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	require.NoError(t, session.Run(ctx))

	printed := out.String()
	require.Contains(t, printed, "cannot join game 7")
	require.Contains(t, printed, "joined game 0, you play O")
	require.Contains(t, printed, "you lose")
}

func TestSession_Draw(t *testing.T) {
	// Given: a full-board script with no winning line
	input := "new\n0 0\n0 2\n1 0\n2 1\n2 2\n"

	session, games, out := newTestSession(t, input)
	go driveOpponent(games, 0, entity.PlayerTwo, [][2]int{{0, 1}, {1, 1}, {1, 2}, {2, 0}})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	require.NoError(t, session.Run(ctx))

	require.Contains(t, out.String(), "it's a draw")
}

func TestSession_InputClosed(t *testing.T) {
	// Given: input that ends before a game was chosen
	session, _, out := newTestSession(t, "")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Then: a closed input ends the session cleanly
	require.NoError(t, session.Run(ctx))
	require.Contains(t, out.String(), "input closed, leaving the game")
}
