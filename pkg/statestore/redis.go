package statestore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "authkit:state:"

// redisStore persists state in Redis for multi-instance deployments.
// Consumption relies on GETDEL so the check-and-remove is atomic even with
// concurrent callbacks racing on the same token.
type redisStore struct {
	client *redis.Client
}

// NewRedis creates a Redis-backed state store using the provided client.
func NewRedis(client *redis.Client) Store {
	return &redisStore{client: client}
}

func (s *redisStore) Save(ctx context.Context, token string, state State, ttl time.Duration) error {
	state.ExpiresAt = time.Now().Add(ttl)

	raw, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("statestore: encode state: %w", err)
	}

	if err := s.client.Set(ctx, redisKeyPrefix+token, raw, ttl).Err(); err != nil {
		return fmt.Errorf("statestore: save state: %w", err)
	}
	return nil
}

func (s *redisStore) Consume(ctx context.Context, token string) (State, error) {
	raw, err := s.client.GetDel(ctx, redisKeyPrefix+token).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return State{}, ErrStateNotFound
		}
		return State{}, fmt.Errorf("statestore: consume state: %w", err)
	}

	var state State
	if err := json.Unmarshal(raw, &state); err != nil {
		return State{}, fmt.Errorf("statestore: decode state: %w", err)
	}

	// Redis TTL expires keys on its own; the timestamp check covers clock
	// skew between the instance that saved and the one consuming.
	if time.Now().After(state.ExpiresAt) {
		return State{}, ErrStateNotFound
	}
	return state, nil
}

var _ Store = (*redisStore)(nil)
