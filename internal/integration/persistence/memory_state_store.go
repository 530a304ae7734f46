// Package persistence implements the state store adapters.
package persistence

import (
	"context"
	"sync"

	"github.com/life-index/backend/internal/application/adapter"
	"github.com/life-index/backend/internal/domain/entity"
	domainerror "github.com/life-index/backend/internal/domain/error"
	"github.com/life-index/backend/internal/integration/persistence/model"
)

// memoryStateStore keeps the encoded snapshot in process memory. Nothing
// survives a restart.
type memoryStateStore struct {
	mu   sync.RWMutex
	data []byte
}

// NewMemoryStateStore creates a new in-memory state store instance.
func NewMemoryStateStore() adapter.StateStore {
	return &memoryStateStore{}
}

// Load decodes the last saved snapshot.
func (s *memoryStateStore) Load(ctx context.Context) (*entity.LifeState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.data == nil {
		return nil, domainerror.ErrStateNotFound
	}
	return model.DecodeLifeState(s.data)
}

// Save encodes and keeps the snapshot.
func (s *memoryStateStore) Save(ctx context.Context, state *entity.LifeState) error {
	data, err := model.EncodeLifeState(state)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.data = data
	s.mu.Unlock()
	return nil
}

// HealthCheck always succeeds.
func (s *memoryStateStore) HealthCheck(ctx context.Context) bool {
	return true
}
