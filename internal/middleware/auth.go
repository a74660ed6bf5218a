package middleware

import (
	"net/http"
	"strings"

	"github.com/ijfields/IdeaHub-sub002/internal/auth"
	"github.com/ijfields/IdeaHub-sub002/internal/domain/models"
	"github.com/ijfields/IdeaHub-sub002/internal/httputil"
)

// Auth resolves the caller identity for every request. A request without an
// Authorization header proceeds as anonymous; listing endpoints apply tier
// filtering downstream. A bearer token that is present but invalid is
// rejected here, before any handler runs.
func Auth(verifier auth.JWTVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				next.ServeHTTP(w, httputil.WithIdentity(r, models.Anonymous()))
				return
			}

			token := strings.TrimPrefix(header, "Bearer ")
			if token == header || token == "" {
				httputil.RespondError(w, http.StatusUnauthorized, "AccessDenied", "malformed authorization header")
				return
			}

			claims, err := verifier.VerifyToken(token)
			if err != nil {
				httputil.RespondError(w, http.StatusUnauthorized, "AccessDenied", "invalid or expired credential")
				return
			}

			ident := models.AuthenticatedAs(claims.GetUserID())
			next.ServeHTTP(w, httputil.WithIdentity(r, ident))
		})
	}
}
