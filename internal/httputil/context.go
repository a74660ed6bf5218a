package httputil

import (
	"context"
	"net/http"

	"github.com/ijfields/IdeaHub-sub002/internal/domain/models"
)

// Context key type to avoid collisions
type contextKey string

const identityKey contextKey = "identity"

// WithIdentity adds the resolved caller identity to the request context
func WithIdentity(r *http.Request, ident models.Identity) *http.Request {
	ctx := context.WithValue(r.Context(), identityKey, ident)
	return r.WithContext(ctx)
}

// GetIdentity retrieves the caller identity from context. A request that
// never passed through the auth middleware reads as anonymous.
func GetIdentity(r *http.Request) models.Identity {
	ident, _ := r.Context().Value(identityKey).(models.Identity)
	return ident
}
