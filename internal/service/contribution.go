package service

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"strings"

	"github.com/ijfields/IdeaHub-sub002/internal/domain"
	"github.com/ijfields/IdeaHub-sub002/internal/domain/models"
	"github.com/ijfields/IdeaHub-sub002/internal/domain/repositories"
	"github.com/ijfields/IdeaHub-sub002/internal/domain/services"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// contributionService implements the ContributionService interface
type contributionService struct {
	projects     repositories.ProjectLinkRepository
	ideas        repositories.IdeaRepository
	counters     *CounterReconciler
	campaignGoal int
	logger       *slog.Logger
}

// NewContributionService creates a new contribution service
func NewContributionService(
	projects repositories.ProjectLinkRepository,
	ideas repositories.IdeaRepository,
	counters *CounterReconciler,
	campaignGoal int,
	logger *slog.Logger,
) services.ContributionService {
	return &contributionService{
		projects:     projects,
		ideas:        ideas,
		counters:     counters,
		campaignGoal: campaignGoal,
		logger:       logger,
	}
}

// Submit validates the idea exists, inserts the project link, and bumps the
// idea's project counter. The bump never fails the committed insert.
func (s *contributionService) Submit(ctx context.Context, req *services.SubmitProjectRequest) (*models.ProjectLink, error) {
	if err := s.validateSubmitRequest(req); err != nil {
		return nil, &domain.ValidationError{Message: err.Error()}
	}

	exists, err := s.ideas.Exists(ctx, req.IdeaID)
	if err != nil {
		return nil, fmt.Errorf("check idea: %w", err)
	}
	if !exists {
		return nil, &domain.InvalidReferenceError{Message: fmt.Sprintf("idea %s does not exist", req.IdeaID)}
	}

	link := &models.ProjectLink{
		IdeaID:      req.IdeaID,
		AuthorID:    req.ActorID,
		Title:       strings.TrimSpace(req.Title),
		URL:         strings.TrimSpace(req.URL),
		Description: strings.TrimSpace(req.Description),
		Tools:       req.Tools,
	}
	if link.Tools == nil {
		link.Tools = []string{}
	}

	if err := s.projects.Create(ctx, link); err != nil {
		return nil, fmt.Errorf("create project link: %w", err)
	}

	s.counters.Bump(ctx, req.IdeaID, models.CounterProjects, 1)

	s.logger.Info("project link submitted",
		"id", link.ID,
		"idea_id", link.IdeaID,
		"author_id", link.AuthorID,
	)

	return link, nil
}

// ListByIdea returns all project links for an idea
func (s *contributionService) ListByIdea(ctx context.Context, ideaID string) ([]models.ProjectLink, error) {
	exists, err := s.ideas.Exists(ctx, ideaID)
	if err != nil {
		return nil, fmt.Errorf("check idea: %w", err)
	}
	if !exists {
		return nil, &domain.NotFoundError{Message: fmt.Sprintf("idea %s not found", ideaID)}
	}

	links, err := s.projects.ListByIdea(ctx, ideaID)
	if err != nil {
		return nil, fmt.Errorf("list project links: %w", err)
	}
	return links, nil
}

// ListByAuthor returns all project links submitted by a user
func (s *contributionService) ListByAuthor(ctx context.Context, authorID string) ([]models.ProjectLink, error) {
	links, err := s.projects.ListByAuthor(ctx, authorID)
	if err != nil {
		return nil, fmt.Errorf("list project links by author: %w", err)
	}
	return links, nil
}

// Update applies a partial update; only the author may update, and at least
// one field must be provided.
func (s *contributionService) Update(ctx context.Context, id, actorID string, req *services.UpdateProjectRequest) (*models.ProjectLink, error) {
	if req.Empty() {
		return nil, &domain.ValidationError{Message: "at least one field is required"}
	}
	if err := s.validateUpdateRequest(req); err != nil {
		return nil, &domain.ValidationError{Message: err.Error()}
	}

	link, err := s.projects.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if link.AuthorID != actorID {
		return nil, &domain.AccessDeniedError{Message: "only the author may update a project link"}
	}

	if req.Title != nil {
		link.Title = strings.TrimSpace(*req.Title)
	}
	if req.URL != nil {
		link.URL = strings.TrimSpace(*req.URL)
	}
	if req.Description != nil {
		link.Description = strings.TrimSpace(*req.Description)
	}
	if req.Tools != nil {
		link.Tools = *req.Tools
		if link.Tools == nil {
			link.Tools = []string{}
		}
	}

	if err := s.projects.Update(ctx, link); err != nil {
		return nil, fmt.Errorf("update project link: %w", err)
	}

	s.logger.Info("project link updated", "id", id, "author_id", actorID)

	return link, nil
}

// Delete removes a project link; only the author may delete. The project
// counter bump follows the committed delete.
func (s *contributionService) Delete(ctx context.Context, id, actorID string) error {
	link, err := s.projects.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if link.AuthorID != actorID {
		return &domain.AccessDeniedError{Message: "only the author may delete a project link"}
	}

	if err := s.projects.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete project link: %w", err)
	}

	s.counters.Bump(ctx, link.IdeaID, models.CounterProjects, -1)

	s.logger.Info("project link deleted", "id", id, "idea_id", link.IdeaID)

	return nil
}

// Stats aggregates campaign statistics live from source rows. No counter is
// consulted here, which is what makes the numbers immune to counter drift.
func (s *contributionService) Stats(ctx context.Context) (*models.ProjectStats, error) {
	rows, err := s.projects.AllForStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("load project stats rows: %w", err)
	}

	toolCounts := make(map[string]int)
	categoryCounts := make(map[string]int)
	for _, row := range rows {
		for _, tool := range row.Tools {
			name := strings.ToLower(strings.TrimSpace(tool))
			if name == "" {
				continue
			}
			toolCounts[name]++
		}
		if row.Category != "" {
			categoryCounts[row.Category]++
		}
	}

	allTools := make([]string, 0, len(toolCounts))
	for name := range toolCounts {
		allTools = append(allTools, name)
	}
	sort.Strings(allTools)

	total := len(rows)
	progress := 0.0
	if s.campaignGoal > 0 {
		progress = math.Round(float64(total)/float64(s.campaignGoal)*10000) / 100
	}

	return &models.ProjectStats{
		TotalProjects:      total,
		CampaignGoal:       s.campaignGoal,
		ProgressPercentage: progress,
		Tools: models.ToolStats{
			Breakdown: toolCounts,
			AllTools:  allTools,
		},
		Categories: categoryCounts,
	}, nil
}

// validateSubmitRequest checks a new project-link submission
func (s *contributionService) validateSubmitRequest(req *services.SubmitProjectRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.Title, validation.Required, validation.RuneLength(1, 200)),
		validation.Field(&req.URL, validation.Required, is.URL),
		validation.Field(&req.Description, validation.RuneLength(0, 2000)),
	)
}

// validateUpdateRequest checks the provided fields of a partial update
func (s *contributionService) validateUpdateRequest(req *services.UpdateProjectRequest) error {
	if req.Title != nil {
		if err := validation.Validate(*req.Title, validation.Required, validation.RuneLength(1, 200)); err != nil {
			return fmt.Errorf("title: %w", err)
		}
	}
	if req.URL != nil {
		if err := validation.Validate(*req.URL, validation.Required, is.URL); err != nil {
			return fmt.Errorf("url: %w", err)
		}
	}
	if req.Description != nil {
		if err := validation.Validate(*req.Description, validation.RuneLength(0, 2000)); err != nil {
			return fmt.Errorf("description: %w", err)
		}
	}
	return nil
}
