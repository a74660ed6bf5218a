package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ijfields/IdeaHub-sub002/internal/domain"
	"github.com/ijfields/IdeaHub-sub002/internal/domain/models"
	"github.com/ijfields/IdeaHub-sub002/internal/domain/repositories"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeIdeaRepo is an in-memory IdeaRepository. The atomic increment can be
// switched off to force the reconciler onto its fallback path, and
// individual operations can be failed to exercise the swallow contract.
type fakeIdeaRepo struct {
	ideas map[string]*models.Idea

	atomicUnsupported bool
	incrementErr      error
	getCounterErr     error
	setCounterErr     error

	incrementCalls int
}

func newFakeIdeaRepo(ideas ...*models.Idea) *fakeIdeaRepo {
	repo := &fakeIdeaRepo{ideas: make(map[string]*models.Idea)}
	for _, idea := range ideas {
		repo.ideas[idea.ID] = idea
	}
	return repo
}

func (r *fakeIdeaRepo) List(ctx context.Context, q models.IdeaListQuery) ([]models.Idea, int, error) {
	var matched []models.Idea
	for _, idea := range r.ideas {
		if q.FreeTierOnly && !idea.FreeTier {
			continue
		}
		if q.Category != "" && idea.Category != q.Category {
			continue
		}
		if q.Difficulty != "" && idea.Difficulty != q.Difficulty {
			continue
		}
		if q.Search != "" && !ideaMatches(idea, q.Search) {
			continue
		}
		matched = append(matched, *idea)
	}

	sort.Slice(matched, func(i, j int) bool {
		a, b := matched[i], matched[j]
		switch q.Sort {
		case models.SortPopular:
			return a.ViewCount > b.ViewCount
		case models.SortDifficulty:
			return a.Difficulty.Rank() < b.Difficulty.Rank()
		case models.SortTitle:
			return a.Title < b.Title
		default:
			return a.CreatedAt.After(b.CreatedAt)
		}
	})

	total := len(matched)
	start := q.Offset()
	if start > total {
		start = total
	}
	end := start + q.Limit
	if end > total {
		end = total
	}
	return matched[start:end], total, nil
}

func ideaMatches(idea *models.Idea, search string) bool {
	needle := strings.ToLower(search)
	haystacks := []string{
		idea.Title,
		idea.Description,
		strings.Join(idea.Tags, " "),
		strings.Join(idea.Tools, " "),
	}
	for _, h := range haystacks {
		if strings.Contains(strings.ToLower(h), needle) {
			return true
		}
	}
	return false
}

func (r *fakeIdeaRepo) GetByID(ctx context.Context, id string) (*models.Idea, error) {
	idea, ok := r.ideas[id]
	if !ok {
		return nil, fmt.Errorf("idea %s: %w", id, domain.ErrNotFound)
	}
	copied := *idea
	return &copied, nil
}

func (r *fakeIdeaRepo) Exists(ctx context.Context, id string) (bool, error) {
	_, ok := r.ideas[id]
	return ok, nil
}

func (r *fakeIdeaRepo) counter(id string, field models.CounterField) (*int, error) {
	idea, ok := r.ideas[id]
	if !ok {
		return nil, fmt.Errorf("idea %s: %w", id, domain.ErrNotFound)
	}
	switch field {
	case models.CounterComments:
		return &idea.CommentCount, nil
	case models.CounterProjects:
		return &idea.ProjectCount, nil
	case models.CounterViews:
		return &idea.ViewCount, nil
	default:
		return nil, fmt.Errorf("unknown counter field %q", field)
	}
}

func (r *fakeIdeaRepo) IncrementCounter(ctx context.Context, id string, field models.CounterField, delta int) (int, error) {
	r.incrementCalls++
	if r.atomicUnsupported {
		return 0, repositories.ErrAtomicIncrementUnsupported
	}
	if r.incrementErr != nil {
		return 0, r.incrementErr
	}
	counter, err := r.counter(id, field)
	if err != nil {
		return 0, err
	}
	next := *counter + delta
	if next < 0 {
		next = 0
	}
	*counter = next
	return next, nil
}

func (r *fakeIdeaRepo) GetCounter(ctx context.Context, id string, field models.CounterField) (int, error) {
	if r.getCounterErr != nil {
		return 0, r.getCounterErr
	}
	counter, err := r.counter(id, field)
	if err != nil {
		return 0, err
	}
	return *counter, nil
}

func (r *fakeIdeaRepo) SetCounter(ctx context.Context, id string, field models.CounterField, value int) error {
	if r.setCounterErr != nil {
		return r.setCounterErr
	}
	counter, err := r.counter(id, field)
	if err != nil {
		return err
	}
	*counter = value
	return nil
}

// fakeCommentRepo is an in-memory CommentRepository with cascading delete,
// mirroring the store's ON DELETE CASCADE behavior.
type fakeCommentRepo struct {
	comments map[string]*models.Comment
	clock    time.Time
}

func newFakeCommentRepo() *fakeCommentRepo {
	return &fakeCommentRepo{
		comments: make(map[string]*models.Comment),
		clock:    time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}

func (r *fakeCommentRepo) Create(ctx context.Context, comment *models.Comment) error {
	r.clock = r.clock.Add(time.Second)
	comment.ID = uuid.NewString()
	comment.CreatedAt = r.clock
	comment.UpdatedAt = r.clock
	copied := *comment
	r.comments[comment.ID] = &copied
	return nil
}

func (r *fakeCommentRepo) GetByID(ctx context.Context, id string) (*models.Comment, error) {
	comment, ok := r.comments[id]
	if !ok {
		return nil, fmt.Errorf("comment %s: %w", id, domain.ErrNotFound)
	}
	copied := *comment
	return &copied, nil
}

func (r *fakeCommentRepo) ListByIdea(ctx context.Context, ideaID string) ([]models.Comment, error) {
	var rows []models.Comment
	for _, c := range r.comments {
		if c.IdeaID == ideaID {
			rows = append(rows, *c)
		}
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].CreatedAt.Before(rows[j].CreatedAt) })
	if rows == nil {
		rows = []models.Comment{}
	}
	return rows, nil
}

func (r *fakeCommentRepo) ListByAuthor(ctx context.Context, authorID string) ([]models.Comment, error) {
	var rows []models.Comment
	for _, c := range r.comments {
		if c.AuthorID == authorID {
			rows = append(rows, *c)
		}
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].CreatedAt.After(rows[j].CreatedAt) })
	if rows == nil {
		rows = []models.Comment{}
	}
	return rows, nil
}

func (r *fakeCommentRepo) Update(ctx context.Context, comment *models.Comment) error {
	stored, ok := r.comments[comment.ID]
	if !ok {
		return fmt.Errorf("comment %s: %w", comment.ID, domain.ErrNotFound)
	}
	r.clock = r.clock.Add(time.Second)
	stored.Body = comment.Body
	stored.UpdatedAt = r.clock
	comment.UpdatedAt = r.clock
	return nil
}

func (r *fakeCommentRepo) SetFlagged(ctx context.Context, id string, flagged bool) error {
	stored, ok := r.comments[id]
	if !ok {
		return fmt.Errorf("comment %s: %w", id, domain.ErrNotFound)
	}
	stored.Flagged = flagged
	return nil
}

func (r *fakeCommentRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.comments[id]; !ok {
		return fmt.Errorf("comment %s: %w", id, domain.ErrNotFound)
	}
	// Cascade to descendants, as the store's FK does
	queue := []string{id}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		delete(r.comments, current)
		for cid, c := range r.comments {
			if c.ParentID != nil && *c.ParentID == current {
				queue = append(queue, cid)
			}
		}
	}
	return nil
}

// fakeProjectRepo is an in-memory ProjectLinkRepository. Categories for the
// stats join come from the associated idea repo.
type fakeProjectRepo struct {
	links map[string]*models.ProjectLink
	ideas *fakeIdeaRepo
	clock time.Time
}

func newFakeProjectRepo(ideas *fakeIdeaRepo) *fakeProjectRepo {
	return &fakeProjectRepo{
		links: make(map[string]*models.ProjectLink),
		ideas: ideas,
		clock: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}

func (r *fakeProjectRepo) Create(ctx context.Context, link *models.ProjectLink) error {
	r.clock = r.clock.Add(time.Second)
	link.ID = uuid.NewString()
	link.CreatedAt = r.clock
	link.UpdatedAt = r.clock
	copied := *link
	r.links[link.ID] = &copied
	return nil
}

func (r *fakeProjectRepo) GetByID(ctx context.Context, id string) (*models.ProjectLink, error) {
	link, ok := r.links[id]
	if !ok {
		return nil, fmt.Errorf("project link %s: %w", id, domain.ErrNotFound)
	}
	copied := *link
	return &copied, nil
}

func (r *fakeProjectRepo) ListByIdea(ctx context.Context, ideaID string) ([]models.ProjectLink, error) {
	var rows []models.ProjectLink
	for _, l := range r.links {
		if l.IdeaID == ideaID {
			rows = append(rows, *l)
		}
	}
	if rows == nil {
		rows = []models.ProjectLink{}
	}
	return rows, nil
}

func (r *fakeProjectRepo) ListByAuthor(ctx context.Context, authorID string) ([]models.ProjectLink, error) {
	var rows []models.ProjectLink
	for _, l := range r.links {
		if l.AuthorID == authorID {
			rows = append(rows, *l)
		}
	}
	if rows == nil {
		rows = []models.ProjectLink{}
	}
	return rows, nil
}

func (r *fakeProjectRepo) Update(ctx context.Context, link *models.ProjectLink) error {
	stored, ok := r.links[link.ID]
	if !ok {
		return fmt.Errorf("project link %s: %w", link.ID, domain.ErrNotFound)
	}
	r.clock = r.clock.Add(time.Second)
	*stored = *link
	stored.UpdatedAt = r.clock
	link.UpdatedAt = r.clock
	return nil
}

func (r *fakeProjectRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.links[id]; !ok {
		return fmt.Errorf("project link %s: %w", id, domain.ErrNotFound)
	}
	delete(r.links, id)
	return nil
}

func (r *fakeProjectRepo) AllForStats(ctx context.Context) ([]models.ProjectStatsRow, error) {
	rows := []models.ProjectStatsRow{}
	for _, l := range r.links {
		category := ""
		if idea, ok := r.ideas.ideas[l.IdeaID]; ok {
			category = idea.Category
		}
		rows = append(rows, models.ProjectStatsRow{Tools: l.Tools, Category: category})
	}
	return rows, nil
}
