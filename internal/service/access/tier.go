// Package access implements the tier filter that decides which catalog rows
// a caller may see. All functions are pure: same inputs, same outputs, no
// side effects.
package access

import (
	"github.com/ijfields/IdeaHub-sub002/internal/domain"
	"github.com/ijfields/IdeaHub-sub002/internal/domain/models"
)

// NarrowList forces the free-tier constraint onto a listing query for
// anonymous callers. It must run before pagination and search compose so a
// guest's total reflects only free-tier rows, never the full catalog.
// Authenticated queries pass through unmodified.
func NarrowList(q models.IdeaListQuery, ident models.Identity) models.IdeaListQuery {
	if !ident.Authenticated {
		q.FreeTierOnly = true
	}
	return q
}

// CheckDetail is the post-fetch authorization check for single-resource
// fetches. An anonymous fetch of a non-free idea fails with AccessDenied,
// deliberately distinct from NotFound: the resource exists, the caller may
// not see it.
func CheckDetail(idea *models.Idea, ident models.Identity) error {
	if !idea.FreeTier && !ident.Authenticated {
		return &domain.AccessDeniedError{Message: "this idea requires an account; sign in to view it"}
	}
	return nil
}

// Level reports the access level attached to idea-detail responses.
func Level(ident models.Identity) string {
	if ident.Authenticated {
		return "full"
	}
	return "free_tier"
}
