package services

import (
	"context"

	"github.com/ijfields/IdeaHub-sub002/internal/domain/models"
)

// SubmitProjectRequest represents a new project-link submission.
type SubmitProjectRequest struct {
	IdeaID      string   `json:"-"`
	ActorID     string   `json:"-"`
	Title       string   `json:"title"`
	URL         string   `json:"url"`
	Description string   `json:"description"`
	Tools       []string `json:"tools"`
}

// UpdateProjectRequest is an author-only partial update. Nil fields are left
// untouched; at least one field must be provided. Transport-agnostic: the
// handler maps tri-state JSON fields onto these pointers.
type UpdateProjectRequest struct {
	Title       *string
	URL         *string
	Description *string
	Tools       *[]string
}

// Empty reports whether the update carries no fields at all.
func (r *UpdateProjectRequest) Empty() bool {
	return r.Title == nil && r.URL == nil && r.Description == nil && r.Tools == nil
}

// ContributionService manages project-link submissions and campaign stats.
type ContributionService interface {
	// Submit validates the idea exists, inserts the link, and bumps the
	// idea's project counter
	Submit(ctx context.Context, req *SubmitProjectRequest) (*models.ProjectLink, error)

	// ListByIdea returns all project links for an idea
	ListByIdea(ctx context.Context, ideaID string) ([]models.ProjectLink, error)

	// ListByAuthor returns all project links submitted by a user
	ListByAuthor(ctx context.Context, authorID string) ([]models.ProjectLink, error)

	// Update applies a partial update; only the author may update
	Update(ctx context.Context, id, actorID string, req *UpdateProjectRequest) (*models.ProjectLink, error)

	// Delete removes a project link and bumps the idea's project counter
	// down; only the author may delete
	Delete(ctx context.Context, id, actorID string) error

	// Stats aggregates campaign statistics live from source rows
	Stats(ctx context.Context) (*models.ProjectStats, error)
}
