package service

import (
	"sort"
	"testing"
	"time"

	"github.com/ijfields/IdeaHub-sub002/internal/domain/models"
)

func comment(id, ideaID string, parentID *string, createdAt time.Time) models.Comment {
	return models.Comment{
		ID:        id,
		IdeaID:    ideaID,
		AuthorID:  "author-1",
		ParentID:  parentID,
		Body:      "body of " + id,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}
}

func ptr(s string) *string { return &s }

// forest: a, b roots; a1, a2 under a; a1x under a1
func sampleRows() []models.Comment {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	return []models.Comment{
		comment("a", "idea-1", nil, base),
		comment("b", "idea-1", nil, base.Add(1*time.Second)),
		comment("a1", "idea-1", ptr("a"), base.Add(2*time.Second)),
		comment("a2", "idea-1", ptr("a"), base.Add(3*time.Second)),
		comment("a1x", "idea-1", ptr("a1"), base.Add(4*time.Second)),
	}
}

func TestBuildCommentTree(t *testing.T) {
	roots := BuildCommentTree(sampleRows())

	if len(roots) != 2 {
		t.Fatalf("BuildCommentTree() roots = %d, want 2", len(roots))
	}
	if roots[0].ID != "a" || roots[1].ID != "b" {
		t.Errorf("BuildCommentTree() root order = %s, %s; want a, b", roots[0].ID, roots[1].ID)
	}

	a := roots[0]
	if len(a.Replies) != 2 {
		t.Fatalf("replies of a = %d, want 2", len(a.Replies))
	}
	if a.Replies[0].ID != "a1" || a.Replies[1].ID != "a2" {
		t.Errorf("reply order under a = %s, %s; want a1, a2", a.Replies[0].ID, a.Replies[1].ID)
	}
	if len(a.Replies[0].Replies) != 1 || a.Replies[0].Replies[0].ID != "a1x" {
		t.Errorf("a1 should have exactly one reply a1x")
	}
}

func TestBuildCommentTreeNodeCount(t *testing.T) {
	tests := []struct {
		name string
		rows []models.Comment
	}{
		{name: "empty", rows: nil},
		{name: "single root", rows: sampleRows()[:1]},
		{name: "full forest", rows: sampleRows()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			roots := BuildCommentTree(tt.rows)

			total := 0
			for _, root := range roots {
				total += root.Count()
			}
			if total != len(tt.rows) {
				t.Errorf("tree node count = %d, want %d (input rows)", total, len(tt.rows))
			}
		})
	}
}

func TestBuildCommentTreeKeepsFlagged(t *testing.T) {
	rows := sampleRows()
	rows[2].Flagged = true // a1

	roots := BuildCommentTree(rows)

	total := 0
	for _, root := range roots {
		total += root.Count()
	}
	if total != len(rows) {
		t.Errorf("flagged comments must stay in the tree: count = %d, want %d", total, len(rows))
	}
}

func TestBuildCommentTreeOrphanFailsOpen(t *testing.T) {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	rows := []models.Comment{
		comment("a", "idea-1", nil, base),
		comment("ghost-child", "idea-1", ptr("missing-parent"), base.Add(time.Second)),
	}

	roots := BuildCommentTree(rows)

	if len(roots) != 2 {
		t.Fatalf("orphaned row should surface as a root; roots = %d, want 2", len(roots))
	}
	if roots[1].ID != "ghost-child" {
		t.Errorf("orphan should keep its input position among roots, got %s", roots[1].ID)
	}
}

func TestCollectDescendants(t *testing.T) {
	rows := sampleRows()

	tests := []struct {
		name   string
		rootID string
		want   []string
	}{
		{name: "chain plus sibling", rootID: "a", want: []string{"a1", "a1x", "a2"}},
		{name: "mid-tree node", rootID: "a1", want: []string{"a1x"}},
		{name: "leaf has empty set", rootID: "a1x", want: []string{}},
		{name: "root with no replies", rootID: "b", want: []string{}},
		{name: "unknown id", rootID: "nope", want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CollectDescendants(rows, tt.rootID)

			sort.Strings(got)
			if len(got) != len(tt.want) {
				t.Fatalf("CollectDescendants(%s) = %v, want %v", tt.rootID, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("CollectDescendants(%s) = %v, want %v", tt.rootID, got, tt.want)
					break
				}
			}
		})
	}
}

// Flatten-then-rebuild reproduces the same node set.
func TestBuildCommentTreeRoundTrip(t *testing.T) {
	rows := sampleRows()
	roots := BuildCommentTree(rows)

	var flat []models.Comment
	var walk func(*models.CommentNode)
	walk = func(n *models.CommentNode) {
		flat = append(flat, n.Comment)
		for _, r := range n.Replies {
			walk(r)
		}
	}
	for _, root := range roots {
		walk(root)
	}

	if len(flat) != len(rows) {
		t.Fatalf("flattened %d nodes, want %d", len(flat), len(rows))
	}

	sort.Slice(flat, func(i, j int) bool { return flat[i].CreatedAt.Before(flat[j].CreatedAt) })
	rebuilt := BuildCommentTree(flat)

	total := 0
	for _, root := range rebuilt {
		total += root.Count()
	}
	if total != len(rows) {
		t.Errorf("rebuilt tree count = %d, want %d", total, len(rows))
	}
}
