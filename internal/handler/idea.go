package handler

import (
	"log/slog"
	"net/http"

	"github.com/ijfields/IdeaHub-sub002/internal/domain/services"
	"github.com/ijfields/IdeaHub-sub002/internal/httputil"
)

// IdeaHandler handles catalog HTTP requests
type IdeaHandler struct {
	catalog services.CatalogService
	logger  *slog.Logger
}

// NewIdeaHandler creates a new idea handler
func NewIdeaHandler(catalog services.CatalogService, logger *slog.Logger) *IdeaHandler {
	return &IdeaHandler{
		catalog: catalog,
		logger:  logger,
	}
}

// ListIdeas returns one page of the catalog
// GET /api/ideas
func (h *IdeaHandler) ListIdeas(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := &services.ListIdeasRequest{
		Search:     query.Get("search"),
		Category:   query.Get("category"),
		Difficulty: query.Get("difficulty"),
		Sort:       query.Get("sort"),
		Page:       httputil.QueryInt(r, "page"),
		Limit:      httputil.QueryInt(r, "limit"),
	}

	result, err := h.catalog.ListIdeas(r.Context(), identity(r), req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondList(w, http.StatusOK, result.Ideas, result.Pagination)
}

// GetIdea retrieves a single idea with the caller's access level
// GET /api/ideas/{id}
func (h *IdeaHandler) GetIdea(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	detail, err := h.catalog.GetIdea(r.Context(), identity(r), id)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondData(w, http.StatusOK, map[string]interface{}{
		"idea":   detail.Idea,
		"access": detail.Access,
	})
}

// IncrementView bumps an idea's view counter, fire-and-forget
// POST /api/ideas/{id}/view
func (h *IdeaHandler) IncrementView(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	count, err := h.catalog.IncrementView(r.Context(), identity(r), id)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondData(w, http.StatusOK, map[string]interface{}{
		"view_count": count,
	})
}

// HealthCheck reports liveness
// GET /health
func (h *IdeaHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	httputil.RespondData(w, http.StatusOK, map[string]string{"status": "ok"})
}
