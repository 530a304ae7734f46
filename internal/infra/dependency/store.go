// Package dependency provides dependency injection for the application.
package dependency

import (
	"fmt"
	"log/slog"

	"github.com/life-index/backend/config"
	"github.com/life-index/backend/internal/application/adapter"
	"github.com/life-index/backend/internal/infra/cache"
	"github.com/life-index/backend/internal/infra/db"
	"github.com/life-index/backend/internal/integration/persistence"
	"github.com/life-index/backend/internal/integration/persistence/model"
)

// OpenStateStore opens the state store selected by cfg.Store.Driver. The
// returned close function releases the underlying connection.
func OpenStateStore(cfg *config.Config) (adapter.StateStore, func() error, error) {
	noop := func() error { return nil }

	switch cfg.Store.Driver {
	case config.DriverMemory:
		return persistence.NewMemoryStateStore(), noop, nil

	case config.DriverRedis:
		client, err := cache.NewRedisClient(&cfg.Redis)
		if err != nil {
			return nil, noop, err
		}
		return persistence.NewRedisStateStore(client, cfg.Store.Key), client.Close, nil

	case config.DriverPostgres, config.DriverSQLite:
		var (
			database *db.Database
			err      error
		)
		if cfg.Store.Driver == config.DriverPostgres {
			database, err = db.NewPostgresConnection(&cfg.Database)
		} else {
			database, err = db.NewSQLiteConnection(&cfg.Database)
		}
		if err != nil {
			return nil, noop, err
		}

		if err := database.AutoMigrate(&model.StateSnapshotModel{}); err != nil {
			_ = database.Close()
			return nil, noop, err
		}
		slog.Info("Database migrations completed successfully")

		return persistence.NewGormStateStore(database.DB(), cfg.Store.Key), database.Close, nil

	default:
		return nil, noop, fmt.Errorf("unknown state store driver %q", cfg.Store.Driver)
	}
}

// OpenStateStoreOrMemory opens the configured store and falls back to an
// in-memory store when it cannot be reached.
func OpenStateStoreOrMemory(cfg *config.Config) (adapter.StateStore, string, func() error) {
	store, closeFn, err := OpenStateStore(cfg)
	if err != nil {
		slog.Warn("State store unavailable, running in memory",
			"driver", cfg.Store.Driver,
			"error", err,
		)
		return persistence.NewMemoryStateStore(), config.DriverMemory, func() error { return nil }
	}
	return store, cfg.Store.Driver, closeFn
}
