// Package lifeindex contains the life index use cases and the live state holder.
package lifeindex

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sync"

	"github.com/life-index/backend/internal/application/adapter"
	"github.com/life-index/backend/internal/domain/entity"
	domainerror "github.com/life-index/backend/internal/domain/error"
)

// StateHolder owns the single live LifeState. Mutations are serialized and
// every update is persisted through the injected store before the holder is
// unlocked. Store failures are logged and never returned to callers.
type StateHolder struct {
	mu    sync.Mutex
	state *entity.LifeState
	store adapter.StateStore
	clock adapter.Clock
}

// NewStateHolder loads the stored state (or the seeded default), reconciles
// category scores and persists the state back when reconciliation changed it.
func NewStateHolder(ctx context.Context, store adapter.StateStore, clock adapter.Clock) *StateHolder {
	if clock == nil {
		clock = adapter.SystemClock{}
	}
	h := &StateHolder{
		store: store,
		clock: clock,
	}
	h.state = h.load(ctx)
	return h
}

// Snapshot returns a deep copy of the current state.
func (h *StateHolder) Snapshot() *entity.LifeState {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.state.Clone()
}

// ApplyMetricUpdate replaces the metrics of one category, records a history
// point and persists the result. It returns a copy of the new state. An
// update whose scores overflow is rejected and the state is left unchanged.
func (h *StateHolder) ApplyMetricUpdate(ctx context.Context, id entity.CategoryID, metrics []entity.Metric) (*entity.LifeState, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	return h.commit(ctx, id, metrics)
}

// AppendMetric adds metric after the current metrics of a category. The read
// and the update happen under the same lock.
func (h *StateHolder) AppendMetric(ctx context.Context, id entity.CategoryID, metric entity.Metric) (*entity.LifeState, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	current := h.state.Categories.Get(id)
	if current == nil {
		return nil, unknownCategory(id)
	}

	metrics := make([]entity.Metric, 0, len(current.Metrics)+1)
	metrics = append(metrics, current.Metrics...)
	metrics = append(metrics, metric)
	return h.commit(ctx, id, metrics)
}

// commit must be called with h.mu held.
func (h *StateHolder) commit(ctx context.Context, id entity.CategoryID, metrics []entity.Metric) (*entity.LifeState, error) {
	if !id.IsValid() {
		return nil, unknownCategory(id)
	}
	next := h.state.ApplyMetricUpdate(id, metrics, h.clock.Now())

	score := next.Categories.Get(id).Score
	total := next.TotalIndex()
	if !isFinite(score) || !isFinite(total) {
		slog.Warn("Rejected metrics update with non-finite score",
			"category", id,
			"category_score", score,
			"total_index", total,
		)
		return nil, domainerror.NewLifeIndexError(
			domainerror.ErrCodeInvalidMetrics,
			"scores are too large to record",
			domainerror.ErrInvalidMetrics,
		)
	}

	h.state = next
	h.persist(ctx, next)

	slog.Info("Category metrics updated",
		"category", id,
		"metric_count", len(metrics),
		"category_score", score,
		"total_index", total,
	)

	return next.Clone(), nil
}

func unknownCategory(id entity.CategoryID) error {
	return domainerror.NewLifeIndexError(
		domainerror.ErrCodeUnknownCategory,
		fmt.Sprintf("unknown category %q", id),
		domainerror.ErrUnknownCategory,
	)
}

func isFinite(v float64) bool {
	return !math.IsInf(v, 0) && !math.IsNaN(v)
}

// StoreHealthy reports whether the backing store is reachable.
func (h *StateHolder) StoreHealthy(ctx context.Context) bool {
	return h.store.HealthCheck(ctx)
}

// load never fails: a missing or unreadable snapshot yields the default state.
func (h *StateHolder) load(ctx context.Context) *entity.LifeState {
	state, err := h.store.Load(ctx)
	if err != nil {
		if errors.Is(err, domainerror.ErrStateNotFound) {
			slog.Info("No stored life state found, using default state")
		} else {
			slog.Warn("Failed to load life state, using default state", "error", err)
		}
		state = entity.NewDefaultLifeState(h.clock.Now())
	}

	reconciled, changed := state.Reconcile()
	if changed {
		slog.Info("Category scores reconciled with stored metrics")
		h.persist(ctx, reconciled)
	}
	return reconciled
}

func (h *StateHolder) persist(ctx context.Context, state *entity.LifeState) {
	if err := h.store.Save(ctx, state); err != nil {
		slog.Error("Failed to save life state", "error", err)
	}
}
