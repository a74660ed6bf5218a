package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ijfields/IdeaHub-sub002/internal/domain"
	"github.com/ijfields/IdeaHub-sub002/internal/domain/models"
	"github.com/ijfields/IdeaHub-sub002/internal/domain/repositories"
	"github.com/ijfields/IdeaHub-sub002/internal/domain/services"
	"github.com/ijfields/IdeaHub-sub002/internal/service/access"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// catalogService implements the CatalogService interface
type catalogService struct {
	ideas    repositories.IdeaRepository
	counters *CounterReconciler
	logger   *slog.Logger
}

// NewCatalogService creates a new catalog service
func NewCatalogService(
	ideas repositories.IdeaRepository,
	counters *CounterReconciler,
	logger *slog.Logger,
) services.CatalogService {
	return &catalogService{
		ideas:    ideas,
		counters: counters,
		logger:   logger,
	}
}

// ListIdeas returns one page of the catalog visible to the identity.
// The tier filter narrows the query before search and pagination compose,
// so guest totals count only free-tier rows.
func (s *catalogService) ListIdeas(ctx context.Context, ident models.Identity, req *services.ListIdeasRequest) (*services.IdeaList, error) {
	if err := s.validateListRequest(req); err != nil {
		return nil, &domain.ValidationError{Message: err.Error()}
	}

	sort := models.SortOrder(req.Sort)
	if req.Sort == "" {
		sort = models.SortRecent
	}

	query := models.IdeaListQuery{
		Search:     strings.TrimSpace(req.Search),
		Category:   strings.TrimSpace(req.Category),
		Difficulty: models.Difficulty(req.Difficulty),
		Sort:       sort,
		Page:       models.ClampPage(req.Page),
		Limit:      models.ClampLimit(req.Limit),
	}
	query = access.NarrowList(query, ident)

	ideas, total, err := s.ideas.List(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list ideas: %w", err)
	}

	return &services.IdeaList{
		Ideas:      ideas,
		Pagination: models.NewPagination(total, query.Page, query.Limit),
	}, nil
}

// GetIdea retrieves a single idea. The tier rule becomes a post-fetch
// authorization check here: a gated idea requested by a guest is reported
// as denied, not absent.
func (s *catalogService) GetIdea(ctx context.Context, ident models.Identity, id string) (*services.IdeaDetail, error) {
	idea, err := s.ideas.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := access.CheckDetail(idea, ident); err != nil {
		return nil, err
	}

	return &services.IdeaDetail{
		Idea:   idea,
		Access: access.Level(ident),
	}, nil
}

// IncrementView bumps an idea's view counter. Fire-and-forget with respect
// to the caller: the response is always success-shaped with the freshest
// known count, even when the bump itself failed.
func (s *catalogService) IncrementView(ctx context.Context, ident models.Identity, id string) (int, error) {
	idea, err := s.ideas.GetByID(ctx, id)
	if err != nil {
		return 0, err
	}
	if err := access.CheckDetail(idea, ident); err != nil {
		return 0, err
	}

	if n := s.counters.Bump(ctx, id, models.CounterViews, 1); n >= 0 {
		return n, nil
	}

	// Bump failed and was swallowed; report the last value we saw
	return idea.ViewCount, nil
}

// validateListRequest checks the caller-supplied listing parameters
func (s *catalogService) validateListRequest(req *services.ListIdeasRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.Search, validation.Length(0, 200)),
		validation.Field(&req.Difficulty, validation.In(
			string(models.DifficultyBeginner),
			string(models.DifficultyIntermediate),
			string(models.DifficultyAdvanced),
		)),
		validation.Field(&req.Sort, validation.In(
			string(models.SortPopular),
			string(models.SortRecent),
			string(models.SortDifficulty),
			string(models.SortTitle),
		)),
	)
}
