// Package persistence implements the state store adapters.
package persistence

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/life-index/backend/internal/application/adapter"
	"github.com/life-index/backend/internal/domain/entity"
	domainerror "github.com/life-index/backend/internal/domain/error"
	"github.com/life-index/backend/internal/integration/persistence/model"
)

// DefaultStateKey is the key the single life state snapshot is stored under.
const DefaultStateKey = "life-index-v1"

// gormStateStore implements the adapter.StateStore interface on a SQL table.
// It works with any GORM dialect; the application uses PostgreSQL and SQLite.
type gormStateStore struct {
	db  *gorm.DB
	key string
}

// NewGormStateStore creates a new SQL-backed state store instance.
func NewGormStateStore(db *gorm.DB, key string) adapter.StateStore {
	if key == "" {
		key = DefaultStateKey
	}
	return &gormStateStore{
		db:  db,
		key: key,
	}
}

// Load retrieves the snapshot stored under the store key.
func (s *gormStateStore) Load(ctx context.Context) (*entity.LifeState, error) {
	var snapshot model.StateSnapshotModel
	result := s.db.WithContext(ctx).Where("snapshot_key = ?", s.key).First(&snapshot)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrStateNotFound
		}
		return nil, fmt.Errorf("failed to load snapshot: %w", result.Error)
	}
	return model.DecodeLifeState([]byte(snapshot.Payload))
}

// Save inserts or replaces the snapshot stored under the store key.
func (s *gormStateStore) Save(ctx context.Context, state *entity.LifeState) error {
	payload, err := model.EncodeLifeState(state)
	if err != nil {
		return err
	}

	snapshot := &model.StateSnapshotModel{
		Key:       s.key,
		Payload:   string(payload),
		UpdatedAt: time.Now().UTC(),
	}
	result := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "snapshot_key"}},
			DoUpdates: clause.AssignmentColumns([]string{"payload", "updated_at"}),
		}).
		Create(snapshot)
	if result.Error != nil {
		return fmt.Errorf("failed to save snapshot: %w", result.Error)
	}
	return nil
}

// HealthCheck pings the underlying database.
func (s *gormStateStore) HealthCheck(ctx context.Context) bool {
	sqlDB, err := s.db.DB()
	if err != nil {
		slog.Error("Failed to get sql.DB for health check", "error", err)
		return false
	}

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := sqlDB.PingContext(ctx); err != nil {
		slog.Error("State store health check failed", "driver", s.db.Name(), "error", err)
		return false
	}
	return true
}
