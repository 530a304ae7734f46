// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/life-index/backend/internal/domain/entity"
)

// StateStore defines the interface for persisting the life state snapshot.
type StateStore interface {
	// Load retrieves the stored snapshot. It returns domainerror.ErrStateNotFound
	// when nothing has been saved and domainerror.ErrCorruptState when the stored
	// snapshot cannot be decoded.
	Load(ctx context.Context) (*entity.LifeState, error)

	// Save replaces the stored snapshot.
	Save(ctx context.Context, state *entity.LifeState) error

	// HealthCheck reports whether the backing store is reachable.
	HealthCheck(ctx context.Context) bool
}
