package rest

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/arenalabs/tictactoe-arena/internal/entity"
	"github.com/arenalabs/tictactoe-arena/internal/registry"
)

// handlers translates the wire protocol into registry and game operations.
// It is stateless: everything mutable lives behind the registry.
//
// Parameter rule, applied uniformly: a required key that is missing from the
// query is a 404; a key that is present but malformed is a 403. Parameters
// are validated before any registry lookup.
type handlers struct {
	logger  *slog.Logger
	games   *registry.GameRegistry
	results ResultArchiver
}

type startResponse struct {
	ID int `json:"id"`
}

type statusResponse struct {
	Board [][]int `json:"board"`
	Next  int     `json:"next"`
}

type winnerResponse struct {
	Winner int `json:"winner"`
}

type playResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

type listResponse struct {
	Games []registry.GameInfo `json:"games"`
}

func newHandlers(logger *slog.Logger, games *registry.GameRegistry, results ResultArchiver) *handlers {
	return &handlers{
		logger:  logger,
		games:   games,
		results: results,
	}
}

// startHandler - creates a new game. Always succeeds.
func (that *handlers) startHandler(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")

	id := that.games.Create(name)
	that.logger.Info("game created", "id", id, "name", name)

	that.writeJSON(w, startResponse{ID: id})
}

// statusHandler - reports the board and the player on the move while a game
// is active, or only the winner once it finished.
func (that *handlers) statusHandler(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	id, ok := that.intParam(w, query, "game", "game ID")
	if !ok {
		return
	}

	game, err := that.games.Get(id)
	if err != nil {
		http.Error(w, "invalid or missing game ID", http.StatusNotFound)
		return
	}

	snapshot := game.Snapshot()
	if snapshot.Active {
		that.writeJSON(w, statusResponse{Board: snapshot.Board, Next: snapshot.Next})
		return
	}

	that.writeJSON(w, winnerResponse{Winner: snapshot.Winner})
}

// playHandler - validates all four parameters, then hands the move to the
// game. A move the game rejects is reported as a normal response with status
// "bad"; it is an expected outcome of play, not a protocol error.
func (that *handlers) playHandler(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	id, ok := that.intParam(w, query, "game", "game ID")
	if !ok {
		return
	}

	player, ok := that.intParam(w, query, "player", "player number")
	if !ok {
		return
	}

	if player != entity.PlayerOne && player != entity.PlayerTwo {
		http.Error(w, "player number must be 1 or 2", http.StatusForbidden)
		return
	}

	x, ok := that.intParam(w, query, "x", "x coordinate")
	if !ok {
		return
	}

	y, ok := that.intParam(w, query, "y", "y coordinate")
	if !ok {
		return
	}

	game, err := that.games.Get(id)
	if err != nil {
		http.Error(w, "invalid or missing game ID", http.StatusNotFound)
		return
	}

	if err = game.AttemptMove(player, x, y); err != nil {
		that.writeJSON(w, playResponse{Status: "bad", Message: err.Error()})
		return
	}

	that.writeJSON(w, playResponse{Status: "ok"})

	if snapshot := game.Snapshot(); !snapshot.Active {
		that.archiveResult(r, game, snapshot)
	}
}

// listHandler - lists every game in creation order for discovery.
func (that *handlers) listHandler(w http.ResponseWriter, _ *http.Request) {
	that.writeJSON(w, listResponse{Games: that.games.List()})
}

func (that *handlers) pingHandler(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("pong")); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
}

func (that *handlers) notFoundHandler(w http.ResponseWriter, r *http.Request) {
	http.Error(w, "request "+r.URL.Path+" is not supported", http.StatusNotFound)
}

// intParam - extracts a required integer query parameter.
// Missing key: 404. Present but non-numeric: 403.
func (that *handlers) intParam(w http.ResponseWriter, query url.Values, key, label string) (int, bool) {
	if !query.Has(key) {
		http.Error(w, "missing "+label, http.StatusNotFound)
		return 0, false
	}

	value, err := strconv.Atoi(query.Get(key))
	if err != nil {
		http.Error(w, label+" must be numeric", http.StatusForbidden)
		return 0, false
	}

	return value, true
}

func (that *handlers) writeJSON(w http.ResponseWriter, body any) {
	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(body); err != nil {
		that.logger.Error("failed to write response", "error", err)
	}
}

// archiveResult - records the outcome of a game that just finished.
// The finishing move was already acknowledged, so archive failures are only
// logged. A successful move racing with the finishing one may archive the
// same outcome twice; the write is idempotent.
func (that *handlers) archiveResult(r *http.Request, game *entity.Game, snapshot entity.Snapshot) {
	if that.results == nil {
		return
	}

	log := that.logger.With("method", "archiveResult")

	result := &entity.GameResult{
		GameID:     game.ID(),
		Name:       game.DisplayName(),
		Winner:     snapshot.Winner,
		FinishedAt: time.Now().UTC(),
	}

	if err := that.results.Record(r.Context(), result); err != nil {
		log.Error("failed to archive result", "game", game.ID(), "error", err)
		return
	}

	log.Info("game finished", "game", game.ID(), "winner", snapshot.Winner)
}
