package handler

import (
	"log/slog"
	"net/http"

	"github.com/ijfields/IdeaHub-sub002/internal/domain/services"
	"github.com/ijfields/IdeaHub-sub002/internal/httputil"
)

// CommentHandler handles discussion HTTP requests
type CommentHandler struct {
	discussion services.DiscussionService
	logger     *slog.Logger
}

// NewCommentHandler creates a new comment handler
func NewCommentHandler(discussion services.DiscussionService, logger *slog.Logger) *CommentHandler {
	return &CommentHandler{
		discussion: discussion,
		logger:     logger,
	}
}

// ListByIdea returns an idea's nested comment forest
// GET /api/ideas/{id}/comments
func (h *CommentHandler) ListByIdea(w http.ResponseWriter, r *http.Request) {
	ideaID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	forest, err := h.discussion.ListByIdea(r.Context(), ideaID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondData(w, http.StatusOK, map[string]interface{}{
		"comments": forest.Roots,
		"total":    forest.Total,
	})
}

// Create adds a root comment or a reply
// POST /api/ideas/{id}/comments
func (h *CommentHandler) Create(w http.ResponseWriter, r *http.Request) {
	actorID, ok := requireUser(w, r)
	if !ok {
		return
	}
	ideaID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req services.CreateCommentRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "ValidationError", "invalid request body")
		return
	}
	req.IdeaID = ideaID
	req.ActorID = actorID

	comment, err := h.discussion.Create(r.Context(), &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondData(w, http.StatusCreated, comment)
}

// Edit updates a comment's body, author-only
// PATCH /api/comments/{id}
func (h *CommentHandler) Edit(w http.ResponseWriter, r *http.Request) {
	actorID, ok := requireUser(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req services.UpdateCommentRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "ValidationError", "invalid request body")
		return
	}

	comment, err := h.discussion.Edit(r.Context(), id, actorID, &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondData(w, http.StatusOK, comment)
}

// Flag marks a comment for moderation; flagging twice is a no-op success
// POST /api/comments/{id}/flag
func (h *CommentHandler) Flag(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireUser(w, r); !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	comment, err := h.discussion.Flag(r.Context(), id)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondData(w, http.StatusOK, comment)
}

// Delete removes a comment and its descendants, author-only
// DELETE /api/comments/{id}
func (h *CommentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	actorID, ok := requireUser(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	deleted, err := h.discussion.Delete(r.Context(), id, actorID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondData(w, http.StatusOK, map[string]interface{}{
		"deleted_count": deleted,
	})
}

// ListMine returns the caller's comments with flagged ones excluded
// GET /api/users/me/comments
func (h *CommentHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	actorID, ok := requireUser(w, r)
	if !ok {
		return
	}

	comments, err := h.discussion.ListByAuthor(r.Context(), actorID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondData(w, http.StatusOK, comments)
}
