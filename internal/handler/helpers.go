package handler

import (
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/ijfields/IdeaHub-sub002/internal/domain"
	"github.com/ijfields/IdeaHub-sub002/internal/domain/models"
	"github.com/ijfields/IdeaHub-sub002/internal/httputil"
)

// handleError converts domain errors to HTTP responses
func handleError(w http.ResponseWriter, err error) {
	var httpErr domain.HTTPError
	if errors.As(err, &httpErr) {
		httputil.RespondError(w, httpErr.StatusCode(), httpErr.Kind(), httpErr.Error())
		return
	}

	switch {
	case errors.Is(err, domain.ErrValidation):
		httputil.RespondError(w, http.StatusBadRequest, "ValidationError", err.Error())
	case errors.Is(err, domain.ErrNotFound):
		httputil.RespondError(w, http.StatusNotFound, "NotFound", err.Error())
	case errors.Is(err, domain.ErrAccessDenied):
		httputil.RespondError(w, http.StatusForbidden, "AccessDenied", err.Error())
	case errors.Is(err, domain.ErrInvalidReference):
		httputil.RespondError(w, http.StatusUnprocessableEntity, "InvalidReference", err.Error())
	default:
		httputil.RespondError(w, http.StatusInternalServerError, "InternalError", "internal server error")
	}
}

// requireUser extracts an authenticated user id or writes an AccessDenied
// response. Mutations always carry an explicit actor id into the services.
func requireUser(w http.ResponseWriter, r *http.Request) (string, bool) {
	ident := httputil.GetIdentity(r)
	if !ident.Authenticated {
		httputil.RespondError(w, http.StatusUnauthorized, "AccessDenied", "authentication required")
		return "", false
	}
	return ident.UserID, true
}

// pathID extracts and validates a UUID path parameter
func pathID(w http.ResponseWriter, r *http.Request, name string) (string, bool) {
	id := r.PathValue(name)
	if err := uuid.Validate(id); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "ValidationError", "malformed "+name)
		return "", false
	}
	return id, true
}

// identity reads the resolved caller identity
func identity(r *http.Request) models.Identity {
	return httputil.GetIdentity(r)
}
