package services

import (
	"context"

	"github.com/ijfields/IdeaHub-sub002/internal/domain/models"
)

// CreateCommentRequest represents a request to create a root comment or a
// reply. ActorID is the resolved caller identity, passed explicitly so
// ownership logic stays testable without a request harness.
type CreateCommentRequest struct {
	IdeaID   string  `json:"-"`
	ActorID  string  `json:"-"`
	ParentID *string `json:"parent_id"`
	Body     string  `json:"body"`
}

// UpdateCommentRequest represents an author-only body edit.
type UpdateCommentRequest struct {
	Body string `json:"body"`
}

// CommentForest is an idea's full discussion tree plus its node count.
type CommentForest struct {
	Roots []*models.CommentNode
	Total int
}

// DiscussionService answers comment CRUD and moderation requests.
type DiscussionService interface {
	// ListByIdea returns the idea's nested comment forest. Flagged comments
	// are included here; only user-scoped listings exclude them.
	ListByIdea(ctx context.Context, ideaID string) (*CommentForest, error)

	// ListByAuthor returns a user's comments, excluding flagged ones
	ListByAuthor(ctx context.Context, authorID string) ([]models.Comment, error)

	// Create adds a root comment or reply and bumps the idea's comment counter
	Create(ctx context.Context, req *CreateCommentRequest) (*models.Comment, error)

	// Edit updates a comment's body; only the author may edit
	Edit(ctx context.Context, id, actorID string, req *UpdateCommentRequest) (*models.Comment, error)

	// Flag marks a comment for moderation. Flagging twice is a no-op success.
	Flag(ctx context.Context, id string) (*models.Comment, error)

	// Delete removes a comment and every descendant reply; only the author
	// may delete. Returns the total number of comments removed.
	Delete(ctx context.Context, id, actorID string) (int, error)
}
