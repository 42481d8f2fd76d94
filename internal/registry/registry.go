package registry

import (
	"errors"
	"sort"
	"sync"

	"github.com/arenalabs/tictactoe-arena/internal/entity"
)

var ErrGameNotFound = errors.New("game not found")

// GameInfo describes one registered game for discovery.
type GameInfo struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// GameRegistry owns every live game for the lifetime of the process.
// Identifiers come from an explicit monotonic counter, so they are never
// reused even if game removal is ever introduced. Games themselves are never
// removed; an abandoned game simply stays resident.
type GameRegistry struct {
	mu     sync.RWMutex
	games  map[int]*entity.Game
	nextID int
}

func New() *GameRegistry {
	return &GameRegistry{
		games: make(map[int]*entity.Game),
	}
}

// Create - registers a new game under the next sequential identifier,
// starting at 0, and returns that identifier.
func (that *GameRegistry) Create(name string) int {
	that.mu.Lock()
	defer that.mu.Unlock()

	id := that.nextID
	that.nextID++
	that.games[id] = entity.NewGame(id, name)

	return id
}

// Get - looks a game up by identifier.
func (that *GameRegistry) Get(id int) (*entity.Game, error) {
	that.mu.RLock()
	defer that.mu.RUnlock()

	game, ok := that.games[id]
	if !ok {
		return nil, ErrGameNotFound
	}

	return game, nil
}

// List - returns every registered game in creation order.
func (that *GameRegistry) List() []GameInfo {
	that.mu.RLock()
	defer that.mu.RUnlock()

	infos := make([]GameInfo, 0, len(that.games))
	for _, game := range that.games {
		infos = append(infos, GameInfo{ID: game.ID(), Name: game.DisplayName()})
	}

	// identifiers are sequential, so id order is creation order
	sort.Slice(infos, func(i, j int) bool { return infos[i].ID < infos[j].ID })

	return infos
}
