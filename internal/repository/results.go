package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/arenalabs/tictactoe-arena/internal/entity"
	"github.com/redis/go-redis/v9"
)

var ErrResultNotFound = errors.New("result not found")

// ResultRepository archives the outcome of finished games. It is advisory
// history only: live play never reads it, and a game is never restored from
// it.
type ResultRepository interface {
	Record(ctx context.Context, result *entity.GameResult) error
	GetByGameID(ctx context.Context, gameID int) (*entity.GameResult, error)
}

type dbResult struct {
	client *redis.Client
}

func NewResultRepository(client *redis.Client) ResultRepository {
	return &dbResult{
		client: client,
	}
}

func (that *dbResult) Record(ctx context.Context, result *entity.GameResult) error {
	resultJSON, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("could not marshal result: %w", err)
	}

	if err = that.client.Set(ctx, resultKey(result.GameID), resultJSON, 0).Err(); err != nil {
		return fmt.Errorf("failed to set result: %w", err)
	}

	return nil
}

func (that *dbResult) GetByGameID(ctx context.Context, gameID int) (*entity.GameResult, error) {
	response, err := that.client.Get(ctx, resultKey(gameID)).Result()

	if errors.Is(err, redis.Nil) {
		return nil, ErrResultNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get result: %w", err)
	}

	var result entity.GameResult
	if err = json.Unmarshal([]byte(response), &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal result: %w", err)
	}

	return &result, nil
}

func resultKey(gameID int) string {
	return fmt.Sprintf("result:%d", gameID)
}
