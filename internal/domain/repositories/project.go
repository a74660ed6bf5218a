package repositories

import (
	"context"

	"github.com/ijfields/IdeaHub-sub002/internal/domain/models"
)

// ProjectLinkRepository defines data access for project-link submissions.
type ProjectLinkRepository interface {
	// Create inserts a new project link and fills in its generated fields
	Create(ctx context.Context, link *models.ProjectLink) error

	// GetByID retrieves a project link by ID
	GetByID(ctx context.Context, id string) (*models.ProjectLink, error)

	// ListByIdea returns all project links for an idea, newest first
	ListByIdea(ctx context.Context, ideaID string) ([]models.ProjectLink, error)

	// ListByAuthor returns all project links submitted by a user, newest first
	ListByAuthor(ctx context.Context, authorID string) ([]models.ProjectLink, error)

	// Update persists a project link's mutable fields
	Update(ctx context.Context, link *models.ProjectLink) error

	// Delete removes a project link row
	Delete(ctx context.Context, id string) error

	// AllForStats returns the tool list and owning-idea category of every
	// project row. Campaign statistics are always computed live from these.
	AllForStats(ctx context.Context) ([]models.ProjectStatsRow, error)
}
