package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ijfields/IdeaHub-sub002/internal/domain"
	"github.com/ijfields/IdeaHub-sub002/internal/domain/models"
	"github.com/ijfields/IdeaHub-sub002/internal/domain/repositories"
	"github.com/ijfields/IdeaHub-sub002/internal/domain/services"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// discussionService implements the DiscussionService interface
type discussionService struct {
	comments repositories.CommentRepository
	ideas    repositories.IdeaRepository
	counters *CounterReconciler
	logger   *slog.Logger
}

// NewDiscussionService creates a new discussion service
func NewDiscussionService(
	comments repositories.CommentRepository,
	ideas repositories.IdeaRepository,
	counters *CounterReconciler,
	logger *slog.Logger,
) services.DiscussionService {
	return &discussionService{
		comments: comments,
		ideas:    ideas,
		counters: counters,
		logger:   logger,
	}
}

// ListByIdea returns the idea's full nested comment forest. Flagged comments
// stay in the tree; hiding them is a user-listing rule, not a tree rule.
func (s *discussionService) ListByIdea(ctx context.Context, ideaID string) (*services.CommentForest, error) {
	exists, err := s.ideas.Exists(ctx, ideaID)
	if err != nil {
		return nil, fmt.Errorf("check idea: %w", err)
	}
	if !exists {
		return nil, &domain.NotFoundError{Message: fmt.Sprintf("idea %s not found", ideaID)}
	}

	rows, err := s.comments.ListByIdea(ctx, ideaID)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}

	return &services.CommentForest{
		Roots: BuildCommentTree(rows),
		Total: len(rows),
	}, nil
}

// ListByAuthor returns a user's comments with flagged ones excluded.
// Deliberately asymmetric with ListByIdea; this is a product rule.
func (s *discussionService) ListByAuthor(ctx context.Context, authorID string) ([]models.Comment, error) {
	rows, err := s.comments.ListByAuthor(ctx, authorID)
	if err != nil {
		return nil, fmt.Errorf("list comments by author: %w", err)
	}

	visible := make([]models.Comment, 0, len(rows))
	for _, c := range rows {
		if !c.Flagged {
			visible = append(visible, c)
		}
	}
	return visible, nil
}

// Create adds a root comment or a reply. The parent, if given, must already
// exist and belong to the same idea. The comment counter bump follows the
// committed insert and never fails it.
func (s *discussionService) Create(ctx context.Context, req *services.CreateCommentRequest) (*models.Comment, error) {
	req.Body = strings.TrimSpace(req.Body)
	if err := s.validateCreateRequest(req); err != nil {
		return nil, &domain.ValidationError{Message: err.Error()}
	}

	exists, err := s.ideas.Exists(ctx, req.IdeaID)
	if err != nil {
		return nil, fmt.Errorf("check idea: %w", err)
	}
	if !exists {
		return nil, &domain.InvalidReferenceError{Message: fmt.Sprintf("idea %s does not exist", req.IdeaID)}
	}

	if req.ParentID != nil {
		parent, err := s.comments.GetByID(ctx, *req.ParentID)
		if err != nil {
			if isNotFound(err) {
				return nil, &domain.InvalidReferenceError{Message: fmt.Sprintf("parent comment %s does not exist", *req.ParentID)}
			}
			return nil, fmt.Errorf("check parent comment: %w", err)
		}
		if parent.IdeaID != req.IdeaID {
			return nil, &domain.InvalidReferenceError{Message: "parent comment belongs to a different idea"}
		}
	}

	comment := &models.Comment{
		IdeaID:   req.IdeaID,
		AuthorID: req.ActorID,
		ParentID: req.ParentID,
		Body:     req.Body,
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}

	s.counters.Bump(ctx, req.IdeaID, models.CounterComments, 1)

	s.logger.Info("comment created",
		"id", comment.ID,
		"idea_id", comment.IdeaID,
		"author_id", comment.AuthorID,
		"is_reply", comment.ParentID != nil,
	)

	return comment, nil
}

// Edit updates a comment's body; only the author may edit.
func (s *discussionService) Edit(ctx context.Context, id, actorID string, req *services.UpdateCommentRequest) (*models.Comment, error) {
	body := strings.TrimSpace(req.Body)
	if err := validateBody(body); err != nil {
		return nil, &domain.ValidationError{Message: err.Error()}
	}

	comment, err := s.comments.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if comment.AuthorID != actorID {
		return nil, &domain.AccessDeniedError{Message: "only the author may edit a comment"}
	}

	comment.Body = body
	if err := s.comments.Update(ctx, comment); err != nil {
		return nil, fmt.Errorf("update comment: %w", err)
	}

	return comment, nil
}

// Flag marks a comment for moderation. Idempotent: flagging an
// already-flagged comment is a no-op success.
func (s *discussionService) Flag(ctx context.Context, id string) (*models.Comment, error) {
	comment, err := s.comments.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if comment.Flagged {
		return comment, nil
	}

	if err := s.comments.SetFlagged(ctx, id, true); err != nil {
		return nil, fmt.Errorf("flag comment: %w", err)
	}
	comment.Flagged = true

	s.logger.Info("comment flagged", "id", id, "idea_id", comment.IdeaID)

	return comment, nil
}

// Delete removes a comment and every descendant reply in one logical
// operation; the store's referential cascade handles the actual row removal
// once the root is deleted. Returns descendants + 1.
func (s *discussionService) Delete(ctx context.Context, id, actorID string) (int, error) {
	comment, err := s.comments.GetByID(ctx, id)
	if err != nil {
		return 0, err
	}
	if comment.AuthorID != actorID {
		return 0, &domain.AccessDeniedError{Message: "only the author may delete a comment"}
	}

	// Descendant set is computed before the delete so the count is exact
	rows, err := s.comments.ListByIdea(ctx, comment.IdeaID)
	if err != nil {
		return 0, fmt.Errorf("list comments: %w", err)
	}
	deleted := len(CollectDescendants(rows, id)) + 1

	if err := s.comments.Delete(ctx, id); err != nil {
		return 0, fmt.Errorf("delete comment: %w", err)
	}

	s.counters.Bump(ctx, comment.IdeaID, models.CounterComments, -deleted)

	s.logger.Info("comment deleted",
		"id", id,
		"idea_id", comment.IdeaID,
		"deleted_count", deleted,
	)

	return deleted, nil
}

// validateCreateRequest checks a new comment request
func (s *discussionService) validateCreateRequest(req *services.CreateCommentRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.Body, validation.Required, validation.RuneLength(1, 2000)),
	)
}

func validateBody(body string) error {
	return validation.Validate(body, validation.Required, validation.RuneLength(1, 2000))
}

func isNotFound(err error) bool {
	return errors.Is(err, domain.ErrNotFound)
}
