package handler

import (
	"log/slog"
	"net/http"

	"github.com/ijfields/IdeaHub-sub002/internal/domain/services"
	"github.com/ijfields/IdeaHub-sub002/internal/httputil"
)

// ProjectHandler handles project-link HTTP requests
type ProjectHandler struct {
	contributions services.ContributionService
	logger        *slog.Logger
}

// NewProjectHandler creates a new project handler
func NewProjectHandler(contributions services.ContributionService, logger *slog.Logger) *ProjectHandler {
	return &ProjectHandler{
		contributions: contributions,
		logger:        logger,
	}
}

// updateProjectBody carries the tri-state PATCH fields on the wire.
type updateProjectBody struct {
	Title       httputil.OptionalString `json:"title"`
	URL         httputil.OptionalString `json:"url"`
	Description httputil.OptionalString `json:"description"`
	Tools       *[]string               `json:"tools"`
}

// Submit creates a new project link under an idea
// POST /api/ideas/{id}/projects
func (h *ProjectHandler) Submit(w http.ResponseWriter, r *http.Request) {
	actorID, ok := requireUser(w, r)
	if !ok {
		return
	}
	ideaID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req services.SubmitProjectRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "ValidationError", "invalid request body")
		return
	}
	req.IdeaID = ideaID
	req.ActorID = actorID

	link, err := h.contributions.Submit(r.Context(), &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondData(w, http.StatusCreated, link)
}

// ListByIdea returns all project links for an idea
// GET /api/ideas/{id}/projects
func (h *ProjectHandler) ListByIdea(w http.ResponseWriter, r *http.Request) {
	ideaID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	links, err := h.contributions.ListByIdea(r.Context(), ideaID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondData(w, http.StatusOK, links)
}

// Update applies a partial update to a project link, author-only
// PATCH /api/projects/{id}
func (h *ProjectHandler) Update(w http.ResponseWriter, r *http.Request) {
	actorID, ok := requireUser(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var body updateProjectBody
	if err := httputil.ParseJSON(w, r, &body); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "ValidationError", "invalid request body")
		return
	}

	req := &services.UpdateProjectRequest{
		Title:       body.Title.Ptr(),
		URL:         body.URL.Ptr(),
		Description: body.Description.Ptr(),
		Tools:       body.Tools,
	}

	link, err := h.contributions.Update(r.Context(), id, actorID, req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondData(w, http.StatusOK, link)
}

// Delete removes a project link, author-only
// DELETE /api/projects/{id}
func (h *ProjectHandler) Delete(w http.ResponseWriter, r *http.Request) {
	actorID, ok := requireUser(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.contributions.Delete(r.Context(), id, actorID); err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondData(w, http.StatusOK, map[string]bool{"deleted": true})
}

// ListMine returns the caller's project links
// GET /api/users/me/projects
func (h *ProjectHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	actorID, ok := requireUser(w, r)
	if !ok {
		return
	}

	links, err := h.contributions.ListByAuthor(r.Context(), actorID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondData(w, http.StatusOK, links)
}

// Stats returns live campaign statistics
// GET /api/projects/stats
func (h *ProjectHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.contributions.Stats(r.Context())
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondData(w, http.StatusOK, stats)
}
