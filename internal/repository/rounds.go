package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rocketscienceinc/tictactoe-stepback/internal/entity"
)

// RoundRepository mirrors the round history into a redis list, one board per element.
type RoundRepository struct {
	client *redis.Client
	key    string
}

func NewRoundRepository(client *redis.Client, key string) *RoundRepository {
	return &RoundRepository{
		client: client,
		key:    key,
	}
}

// Sync - replaces the stored list with rounds in one transaction.
// Every call rewrites the whole list, so a failed write is repaired by the next one.
func (that *RoundRepository) Sync(ctx context.Context, rounds []entity.Board) error {
	elements := make([]any, 0, len(rounds))

	for i, board := range rounds {
		boardJSON, err := json.Marshal(board)
		if err != nil {
			return fmt.Errorf("could not marshal round %d: %w", i, err)
		}

		elements = append(elements, boardJSON)
	}

	if _, err := that.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, that.key)

		if len(elements) > 0 {
			pipe.RPush(ctx, that.key, elements...)
		}

		return nil
	}); err != nil {
		return fmt.Errorf("failed to sync %d rounds: %w", len(rounds), err)
	}

	return nil
}

// Rounds - returns every stored board in order.
func (that *RoundRepository) Rounds(ctx context.Context) ([]entity.Board, error) {
	values, err := that.client.LRange(ctx, that.key, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read rounds: %w", err)
	}

	boards := make([]entity.Board, 0, len(values))

	for i, value := range values {
		var board entity.Board
		if err = json.Unmarshal([]byte(value), &board); err != nil {
			return nil, fmt.Errorf("failed to unmarshal round %d: %w", i, err)
		}

		boards = append(boards, board)
	}

	return boards, nil
}
