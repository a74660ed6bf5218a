package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/ijfields/IdeaHub-sub002/internal/domain"
	"github.com/ijfields/IdeaHub-sub002/internal/domain/models"
	"github.com/ijfields/IdeaHub-sub002/internal/domain/services"
)

func catalogIdea(id, title string, freeTier bool) *models.Idea {
	return &models.Idea{
		ID:         id,
		Title:      title,
		Category:   "Developer Tools",
		Difficulty: models.DifficultyBeginner,
		FreeTier:   freeTier,
		CreatedAt:  time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func newCatalogFixture(t *testing.T, ideas ...*models.Idea) (services.CatalogService, *fakeIdeaRepo) {
	t.Helper()
	repo := newFakeIdeaRepo(ideas...)
	counters := NewCounterReconciler(repo, testLogger())
	return NewCatalogService(repo, counters, testLogger()), repo
}

func TestListIdeasGuestSeesOnlyFreeTier(t *testing.T) {
	svc, _ := newCatalogFixture(t,
		catalogIdea("idea-1", "Free one", true),
		catalogIdea("idea-2", "Paid one", false),
		catalogIdea("idea-3", "Free two", true),
	)

	list, err := svc.ListIdeas(context.Background(), models.Anonymous(), &services.ListIdeasRequest{})
	if err != nil {
		t.Fatalf("ListIdeas() unexpected error: %v", err)
	}
	if list.Pagination.Total != 2 {
		t.Errorf("guest total = %d, want 2", list.Pagination.Total)
	}
	for _, idea := range list.Ideas {
		if !idea.FreeTier {
			t.Errorf("guest listing leaked non-free idea %s", idea.ID)
		}
	}
}

func TestListIdeasAuthenticatedSeesAll(t *testing.T) {
	svc, _ := newCatalogFixture(t,
		catalogIdea("idea-1", "Free one", true),
		catalogIdea("idea-2", "Paid one", false),
	)

	list, err := svc.ListIdeas(context.Background(), models.AuthenticatedAs("user-1"), &services.ListIdeasRequest{})
	if err != nil {
		t.Fatalf("ListIdeas() unexpected error: %v", err)
	}
	if list.Pagination.Total != 2 {
		t.Errorf("authenticated total = %d, want 2", list.Pagination.Total)
	}
}

func TestListIdeasPaginationMetadata(t *testing.T) {
	ideas := make([]*models.Idea, 0, 87)
	for i := 0; i < 87; i++ {
		ideas = append(ideas, catalogIdea(fmt.Sprintf("idea-%03d", i), fmt.Sprintf("Idea %03d", i), true))
	}
	svc, _ := newCatalogFixture(t, ideas...)

	list, err := svc.ListIdeas(context.Background(), models.AuthenticatedAs("user-1"), &services.ListIdeasRequest{Page: 1, Limit: 20})
	if err != nil {
		t.Fatalf("ListIdeas() unexpected error: %v", err)
	}

	p := list.Pagination
	if p.Total != 87 || p.TotalPages != 5 {
		t.Errorf("pagination = %+v, want total 87 totalPages 5", p)
	}
	if !p.HasNextPage || p.HasPrevPage {
		t.Errorf("pagination flags = next %v prev %v, want next true prev false", p.HasNextPage, p.HasPrevPage)
	}
	if len(list.Ideas) != 20 {
		t.Errorf("page size = %d, want 20", len(list.Ideas))
	}
}

func TestListIdeasGuestTotalShrinksPagination(t *testing.T) {
	ideas := []*models.Idea{
		catalogIdea("idea-1", "A", true),
		catalogIdea("idea-2", "B", true),
		catalogIdea("idea-3", "C", true),
		catalogIdea("idea-4", "D", true),
		catalogIdea("idea-5", "E", true),
	}
	for i := 0; i < 82; i++ {
		ideas = append(ideas, catalogIdea(fmt.Sprintf("paid-%03d", i), fmt.Sprintf("Paid %03d", i), false))
	}
	svc, _ := newCatalogFixture(t, ideas...)

	list, err := svc.ListIdeas(context.Background(), models.Anonymous(), &services.ListIdeasRequest{Page: 1, Limit: 20})
	if err != nil {
		t.Fatalf("ListIdeas() unexpected error: %v", err)
	}
	p := list.Pagination
	if p.Total != 5 || p.TotalPages != 1 || p.HasNextPage {
		t.Errorf("guest pagination = %+v, want total 5 totalPages 1 hasNext false", p)
	}
}

func TestListIdeasValidation(t *testing.T) {
	svc, _ := newCatalogFixture(t, catalogIdea("idea-1", "A", true))

	tests := []struct {
		name string
		req  services.ListIdeasRequest
	}{
		{name: "unknown sort", req: services.ListIdeasRequest{Sort: "relevance"}},
		{name: "unknown difficulty", req: services.ListIdeasRequest{Difficulty: "expert"}},
		{name: "search too long", req: services.ListIdeasRequest{Search: strings.Repeat("q", 201)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.ListIdeas(context.Background(), models.Anonymous(), &tt.req)
			if !errors.Is(err, domain.ErrValidation) {
				t.Errorf("ListIdeas() error = %v, want ValidationError", err)
			}
		})
	}
}

func TestListIdeasClampsPageAndLimit(t *testing.T) {
	svc, _ := newCatalogFixture(t, catalogIdea("idea-1", "A", true))

	list, err := svc.ListIdeas(context.Background(), models.Anonymous(), &services.ListIdeasRequest{Page: -3, Limit: 9999})
	if err != nil {
		t.Fatalf("ListIdeas() unexpected error: %v", err)
	}
	if list.Pagination.Page != 1 || list.Pagination.Limit != models.MaxLimit {
		t.Errorf("pagination = %+v, want page 1 limit %d", list.Pagination, models.MaxLimit)
	}
}

func TestGetIdeaTierCheck(t *testing.T) {
	svc, _ := newCatalogFixture(t,
		catalogIdea("idea-free", "Free", true),
		catalogIdea("idea-paid", "Paid", false),
	)
	ctx := context.Background()

	t.Run("guest on free idea", func(t *testing.T) {
		detail, err := svc.GetIdea(ctx, models.Anonymous(), "idea-free")
		if err != nil {
			t.Fatalf("GetIdea() unexpected error: %v", err)
		}
		if detail.Access != services.AccessFreeTier {
			t.Errorf("access = %q, want %q", detail.Access, services.AccessFreeTier)
		}
	})

	t.Run("guest on paid idea is denied, not hidden", func(t *testing.T) {
		_, err := svc.GetIdea(ctx, models.Anonymous(), "idea-paid")
		if !errors.Is(err, domain.ErrAccessDenied) {
			t.Fatalf("GetIdea() error = %v, want AccessDenied", err)
		}
		if errors.Is(err, domain.ErrNotFound) {
			t.Errorf("GetIdea() must not report NotFound for an existing idea")
		}
	})

	t.Run("authenticated on paid idea", func(t *testing.T) {
		detail, err := svc.GetIdea(ctx, models.AuthenticatedAs("user-1"), "idea-paid")
		if err != nil {
			t.Fatalf("GetIdea() unexpected error: %v", err)
		}
		if detail.Access != services.AccessFull {
			t.Errorf("access = %q, want %q", detail.Access, services.AccessFull)
		}
	})

	t.Run("missing idea", func(t *testing.T) {
		_, err := svc.GetIdea(ctx, models.AuthenticatedAs("user-1"), "idea-404")
		if !errors.Is(err, domain.ErrNotFound) {
			t.Errorf("GetIdea() error = %v, want NotFound", err)
		}
	})
}

func TestIncrementView(t *testing.T) {
	svc, repo := newCatalogFixture(t, catalogIdea("idea-1", "Free", true))

	count, err := svc.IncrementView(context.Background(), models.Anonymous(), "idea-1")
	if err != nil {
		t.Fatalf("IncrementView() unexpected error: %v", err)
	}
	if count != 1 {
		t.Errorf("view count = %d, want 1", count)
	}
	if repo.ideas["idea-1"].ViewCount != 1 {
		t.Errorf("stored view count = %d, want 1", repo.ideas["idea-1"].ViewCount)
	}
}

func TestIncrementViewRespectsTier(t *testing.T) {
	svc, repo := newCatalogFixture(t, catalogIdea("idea-paid", "Paid", false))

	_, err := svc.IncrementView(context.Background(), models.Anonymous(), "idea-paid")
	if !errors.Is(err, domain.ErrAccessDenied) {
		t.Fatalf("IncrementView() error = %v, want AccessDenied", err)
	}
	if repo.ideas["idea-paid"].ViewCount != 0 {
		t.Errorf("denied request still bumped view count to %d", repo.ideas["idea-paid"].ViewCount)
	}
}

func TestIncrementViewSwallowsCounterFailure(t *testing.T) {
	svc, repo := newCatalogFixture(t, catalogIdea("idea-1", "Free", true))
	repo.ideas["idea-1"].ViewCount = 7
	repo.incrementErr = errors.New("store timeout")

	count, err := svc.IncrementView(context.Background(), models.Anonymous(), "idea-1")
	if err != nil {
		t.Fatalf("IncrementView() must succeed despite counter failure, got %v", err)
	}
	if count != 7 {
		t.Errorf("view count = %d, want stale 7", count)
	}
}
