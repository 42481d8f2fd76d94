package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/arenalabs/tictactoe-arena/internal/registry"
)

var ErrUnexpectedStatus = errors.New("unexpected server response")

// Client is a typed view of the game wire protocol. Every call is bounded by
// the underlying http.Client timeout; a timeout or connection failure comes
// back as an error for that call only.
type Client struct {
	baseURL string
	http    *http.Client
}

// GameStatus is the server's answer to a status request. Winner is nil while
// the game is active; a finished game carries only the winner.
type GameStatus struct {
	Board  [][]int `json:"board,omitempty"`
	Next   int     `json:"next,omitempty"`
	Winner *int    `json:"winner,omitempty"`
}

// PlayVerdict is the server's answer to a play request.
type PlayVerdict struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

func (that *PlayVerdict) OK() bool {
	return that.Status == "ok"
}

func (that *GameStatus) Finished() bool {
	return that.Winner != nil
}

func New(serverAddr string, timeout time.Duration) *Client {
	return &Client{
		baseURL: "http://" + serverAddr,
		http:    &http.Client{Timeout: timeout},
	}
}

// StartGame - creates a game on the server and returns its identifier.
func (that *Client) StartGame(ctx context.Context, name string) (int, error) {
	query := url.Values{}
	if name != "" {
		query.Set("name", name)
	}

	var response struct {
		ID int `json:"id"`
	}

	if err := that.getJSON(ctx, "/start", query, &response); err != nil {
		return 0, fmt.Errorf("failed to start game: %w", err)
	}

	return response.ID, nil
}

// GameStatus - fetches the current state of a game.
func (that *Client) GameStatus(ctx context.Context, gameID int) (*GameStatus, error) {
	query := url.Values{}
	query.Set("game", strconv.Itoa(gameID))

	status := &GameStatus{}
	if err := that.getJSON(ctx, "/status", query, status); err != nil {
		return nil, fmt.Errorf("failed to get game status: %w", err)
	}

	return status, nil
}

// Play - submits one move and returns the server's verdict.
func (that *Client) Play(ctx context.Context, gameID, player, x, y int) (*PlayVerdict, error) {
	query := url.Values{}
	query.Set("game", strconv.Itoa(gameID))
	query.Set("player", strconv.Itoa(player))
	query.Set("x", strconv.Itoa(x))
	query.Set("y", strconv.Itoa(y))

	verdict := &PlayVerdict{}
	if err := that.getJSON(ctx, "/play", query, verdict); err != nil {
		return nil, fmt.Errorf("failed to play move: %w", err)
	}

	return verdict, nil
}

// ListGames - fetches every game known to the server, in creation order.
func (that *Client) ListGames(ctx context.Context) ([]registry.GameInfo, error) {
	var response struct {
		Games []registry.GameInfo `json:"games"`
	}

	if err := that.getJSON(ctx, "/list", url.Values{}, &response); err != nil {
		return nil, fmt.Errorf("failed to list games: %w", err)
	}

	return response.Games, nil
}

func (that *Client) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	requestURL := that.baseURL + path
	if encoded := query.Encode(); encoded != "" {
		requestURL += "?" + encoded
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := that.http.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: %s", ErrUnexpectedStatus, resp.Status)
	}

	if err = json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}
