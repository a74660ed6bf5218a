package repositories

import (
	"context"

	"github.com/ijfields/IdeaHub-sub002/internal/domain/models"
)

// CommentRepository defines data access for discussion comments.
type CommentRepository interface {
	// Create inserts a new comment and fills in its generated fields
	Create(ctx context.Context, comment *models.Comment) error

	// GetByID retrieves a comment by ID
	GetByID(ctx context.Context, id string) (*models.Comment, error)

	// ListByIdea returns every comment on an idea ordered by ascending
	// creation time. Flag filtering is deliberately left to callers.
	ListByIdea(ctx context.Context, ideaID string) ([]models.Comment, error)

	// ListByAuthor returns every comment written by a user, newest first
	ListByAuthor(ctx context.Context, authorID string) ([]models.Comment, error)

	// Update persists a comment's body and updated_at
	Update(ctx context.Context, comment *models.Comment) error

	// SetFlagged marks a comment for moderation
	SetFlagged(ctx context.Context, id string, flagged bool) error

	// Delete removes a comment row. The store's referential cascade removes
	// every descendant reply along with it.
	Delete(ctx context.Context, id string) error
}
