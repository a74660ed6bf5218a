package repositories

import (
	"context"
	"errors"

	"github.com/ijfields/IdeaHub-sub002/internal/domain/models"
)

// ErrAtomicIncrementUnsupported is returned by a store that cannot perform
// the single-statement counter increment. The counter reconciler falls back
// to a read-modify-write cycle when it sees this sentinel.
var ErrAtomicIncrementUnsupported = errors.New("atomic increment not supported by store")

// IdeaRepository defines data access for catalog entries.
type IdeaRepository interface {
	// List returns one page of ideas matching the query plus the total
	// match count before pagination.
	List(ctx context.Context, q models.IdeaListQuery) ([]models.Idea, int, error)

	// GetByID retrieves an idea by ID
	GetByID(ctx context.Context, id string) (*models.Idea, error)

	// Exists reports whether an idea row exists
	Exists(ctx context.Context, id string) (bool, error)

	// IncrementCounter atomically applies field = GREATEST(field + delta, 0)
	// and returns the new value. Stores without the atomic primitive return
	// ErrAtomicIncrementUnsupported.
	IncrementCounter(ctx context.Context, id string, field models.CounterField, delta int) (int, error)

	// GetCounter reads the current value of a counter field (fallback path)
	GetCounter(ctx context.Context, id string, field models.CounterField) (int, error)

	// SetCounter writes a counter field directly (fallback path)
	SetCounter(ctx context.Context, id string, field models.CounterField, value int) error
}
