package registry

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGameRegistry_Create(t *testing.T) {
	// Given: an empty registry
	games := New()

	// When: three games are created
	// Then: identifiers are sequential from zero
	require.Equal(t, 0, games.Create("first"))
	require.Equal(t, 1, games.Create("second"))
	require.Equal(t, 2, games.Create(""))
}

func TestGameRegistry_Get(t *testing.T) {
	t.Run("Get existing game", func(t *testing.T) {
		games := New()
		id := games.Create("morning match")

		game, err := games.Get(id)

		require.NoError(t, err)
		require.Equal(t, id, game.ID())
		require.Equal(t, "morning match", game.DisplayName())
	})

	t.Run("Error on unknown id", func(t *testing.T) {
		games := New()

		_, err := games.Get(99)

		require.ErrorIs(t, err, ErrGameNotFound)
	})
}

func TestGameRegistry_List(t *testing.T) {
	// Given: a registry with games created in a known order
	games := New()
	games.Create("a")
	games.Create("b")
	games.Create("c")

	// When: the registry is listed
	infos := games.List()

	// Then: games come back in creation order
	require.Equal(t, []GameInfo{
		{ID: 0, Name: "a"},
		{ID: 1, Name: "b"},
		{ID: 2, Name: "c"},
	}, infos)
}

func TestGameRegistry_ConcurrentCreate(t *testing.T) {
	// Given: many goroutines creating games at once
	games := New()

	const creators = 50

	var wg sync.WaitGroup
	ids := make([]int, creators)

	for i := 0; i < creators; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			ids[n] = games.Create("burst")
		}(i)
	}
	wg.Wait()

	// Then: every creation got a unique identifier and all are listed
	seen := make(map[int]bool, creators)
	for _, id := range ids {
		assert.False(t, seen[id], "identifier %d assigned twice", id)
		seen[id] = true
	}

	require.Len(t, games.List(), creators)
}
