package repository

import (
	"testing"
	"time"

	"github.com/arenalabs/tictactoe-arena/internal/entity"
	"github.com/arenalabs/tictactoe-arena/testing/suite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResultRepository_Record(t *testing.T) {
	ctx, st := suite.New(t)

	resultRepo := NewResultRepository(st.Storage)

	// Given: the outcome of a finished game
	result := &entity.GameResult{
		GameID:     0,
		Name:       "t",
		Winner:     entity.PlayerOne,
		FinishedAt: time.Now().UTC().Truncate(time.Second),
	}

	// When: the outcome is recorded
	err := resultRepo.Record(ctx, result)

	// Then: no error should be returned
	require.NoError(t, err)
}

func TestResultRepository_GetByGameID(t *testing.T) {
	t.Run("GetByGameID_Success", func(t *testing.T) {
		ctx, st := suite.New(t)

		resultRepo := NewResultRepository(st.Storage)

		// Given: a recorded outcome
		result := &entity.GameResult{
			GameID:     3,
			Name:       "evening match",
			Winner:     entity.WinnerTie,
			FinishedAt: time.Now().UTC().Truncate(time.Second),
		}
		require.NoError(t, resultRepo.Record(ctx, result))

		// When: the outcome is fetched back
		retrieved, err := resultRepo.GetByGameID(ctx, result.GameID)

		// Then: the stored outcome matches what was recorded
		require.NoError(t, err)
		require.Equal(t, result, retrieved)
	})

	t.Run("GetByGameID_NotFound", func(t *testing.T) {
		ctx, st := suite.New(t)

		resultRepo := NewResultRepository(st.Storage)

		// When: an unknown game is looked up
		retrieved, err := resultRepo.GetByGameID(ctx, 9999)

		// Then: an ErrResultNotFound error should be returned
		require.ErrorIs(t, err, ErrResultNotFound)
		assert.Nil(t, retrieved)
	})

	t.Run("Record_Overwrite_Is_Idempotent", func(t *testing.T) {
		ctx, st := suite.New(t)

		resultRepo := NewResultRepository(st.Storage)

		result := &entity.GameResult{GameID: 1, Winner: entity.PlayerTwo, FinishedAt: time.Now().UTC().Truncate(time.Second)}

		// When: the same outcome is recorded twice
		require.NoError(t, resultRepo.Record(ctx, result))
		require.NoError(t, resultRepo.Record(ctx, result))

		// Then: a single unchanged record remains
		retrieved, err := resultRepo.GetByGameID(ctx, result.GameID)
		require.NoError(t, err)
		require.Equal(t, result, retrieved)
	})
}
