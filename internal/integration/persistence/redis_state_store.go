// Package persistence implements the state store adapters.
package persistence

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/life-index/backend/internal/application/adapter"
	"github.com/life-index/backend/internal/domain/entity"
	domainerror "github.com/life-index/backend/internal/domain/error"
	"github.com/life-index/backend/internal/integration/persistence/model"
)

// redisStateStore implements the adapter.StateStore interface on a Redis key.
type redisStateStore struct {
	client *redis.Client
	key    string
}

// NewRedisStateStore creates a new Redis-backed state store instance.
func NewRedisStateStore(client *redis.Client, key string) adapter.StateStore {
	if key == "" {
		key = DefaultStateKey
	}
	return &redisStateStore{
		client: client,
		key:    key,
	}
}

// Load retrieves the snapshot stored under the store key.
func (s *redisStateStore) Load(ctx context.Context) (*entity.LifeState, error) {
	data, err := s.client.Get(ctx, s.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domainerror.ErrStateNotFound
		}
		return nil, fmt.Errorf("failed to load snapshot: %w", err)
	}
	return model.DecodeLifeState(data)
}

// Save replaces the snapshot stored under the store key. The key never expires.
func (s *redisStateStore) Save(ctx context.Context, state *entity.LifeState) error {
	data, err := model.EncodeLifeState(state)
	if err != nil {
		return err
	}
	if err := s.client.Set(ctx, s.key, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}
	return nil
}

// HealthCheck pings the Redis server.
func (s *redisStateStore) HealthCheck(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := s.client.Ping(ctx).Err(); err != nil {
		slog.Error("State store health check failed", "driver", "redis", "error", err)
		return false
	}
	return true
}
