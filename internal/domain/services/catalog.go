package services

import (
	"context"

	"github.com/ijfields/IdeaHub-sub002/internal/domain/models"
)

// Access levels reported on idea-detail responses.
const (
	AccessFull     = "full"
	AccessFreeTier = "free_tier"
)

// ListIdeasRequest carries the raw, caller-supplied listing parameters.
type ListIdeasRequest struct {
	Search     string `json:"search"`
	Category   string `json:"category"`
	Difficulty string `json:"difficulty"`
	Sort       string `json:"sort"`
	Page       int    `json:"page"`
	Limit      int    `json:"limit"`
}

// IdeaList is one page of catalog results.
type IdeaList struct {
	Ideas      []models.Idea
	Pagination models.Pagination
}

// IdeaDetail is a single catalog entry plus the caller's access level.
type IdeaDetail struct {
	Idea   *models.Idea
	Access string
}

// CatalogService answers idea-listing queries with tier filtering applied
// before search and pagination compose.
type CatalogService interface {
	// ListIdeas returns one page of the catalog visible to the identity
	ListIdeas(ctx context.Context, ident models.Identity, req *ListIdeasRequest) (*IdeaList, error)

	// GetIdea retrieves a single idea, enforcing the tier detail check
	GetIdea(ctx context.Context, ident models.Identity, id string) (*IdeaDetail, error)

	// IncrementView bumps an idea's view counter best-effort and returns
	// the freshest known count. A failed bump never fails the call.
	IncrementView(ctx context.Context, ident models.Identity, id string) (int, error)
}
