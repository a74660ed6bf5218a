package service

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/ijfields/IdeaHub-sub002/internal/domain/models"
	"github.com/ijfields/IdeaHub-sub002/internal/domain/repositories"
)

// CounterReconciler applies best-effort bumps to an idea's denormalized
// counters. The primary path is the store's atomic single-statement
// increment, which is safe under concurrent invocations. If the store
// reports the primitive unsupported, the reconciler falls back to a
// read-modify-write cycle with a floor at zero.
//
// The fallback is NOT safe under concurrency: two bumps can interleave
// between read and write and one update is lost. Serializing fallback
// writes per idea id behind a keyed mutex shrinks that window but does not
// close it; the durable guarantee is convergence via recomputation from
// source rows, not per-operation exactness.
//
// A bump failure never fails the caller. It is logged at warn level and
// otherwise swallowed: the primary entity write always stands.
type CounterReconciler struct {
	ideas  repositories.IdeaRepository
	logger *slog.Logger

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewCounterReconciler creates a counter reconciler.
func NewCounterReconciler(ideas repositories.IdeaRepository, logger *slog.Logger) *CounterReconciler {
	return &CounterReconciler{
		ideas:  ideas,
		logger: logger,
		locks:  make(map[string]*sync.Mutex),
	}
}

// Bump applies delta to the given counter field of an idea, floored at
// zero. It returns the new counter value, or -1 when the bump failed and no
// fresh value is known. Errors are never propagated.
func (r *CounterReconciler) Bump(ctx context.Context, ideaID string, field models.CounterField, delta int) int {
	value, err := r.ideas.IncrementCounter(ctx, ideaID, field, delta)
	if err == nil {
		return value
	}

	if !errors.Is(err, repositories.ErrAtomicIncrementUnsupported) {
		r.logger.Warn("counter bump failed, counters will reconverge on recomputation",
			"idea_id", ideaID,
			"field", string(field),
			"delta", delta,
			"error", err,
		)
		return -1
	}

	return r.bumpFallback(ctx, ideaID, field, delta)
}

// bumpFallback reads, adjusts, and writes back the counter, serialized per
// idea id. Known degradation: a concurrent bump through another process (or
// another replica) can still be lost between the read and the write.
func (r *CounterReconciler) bumpFallback(ctx context.Context, ideaID string, field models.CounterField, delta int) int {
	lock := r.ideaLock(ideaID)
	lock.Lock()
	defer lock.Unlock()

	current, err := r.ideas.GetCounter(ctx, ideaID, field)
	if err != nil {
		r.logger.Warn("counter fallback read failed",
			"idea_id", ideaID,
			"field", string(field),
			"error", err,
		)
		return -1
	}

	next := current + delta
	if next < 0 {
		next = 0
	}

	if err := r.ideas.SetCounter(ctx, ideaID, field, next); err != nil {
		r.logger.Warn("counter fallback write failed",
			"idea_id", ideaID,
			"field", string(field),
			"error", err,
		)
		return -1
	}

	return next
}

// ideaLock returns the serialization point for one idea's fallback writes.
func (r *CounterReconciler) ideaLock(ideaID string) *sync.Mutex {
	r.mu.Lock()
	defer r.mu.Unlock()
	lock, ok := r.locks[ideaID]
	if !ok {
		lock = &sync.Mutex{}
		r.locks[ideaID] = lock
	}
	return lock
}
