package service

import (
	"github.com/ijfields/IdeaHub-sub002/internal/domain/models"
)

// BuildCommentTree converts a flat set of comment rows into a nested reply
// forest using a 2-pass algorithm over an id index. Rows are expected in
// ascending creation order (the repository guarantees it) and that order is
// preserved among roots and within each reply list.
//
// A row whose parent id is missing from the set is treated as a root rather
// than dropped or raised on: malformed references fail open. Flagged
// comments are NOT filtered here; that rule belongs to user-scoped listings.
func BuildCommentTree(rows []models.Comment) []*models.CommentNode {
	nodes := make(map[string]*models.CommentNode, len(rows))

	// First pass: create all nodes
	for i := range rows {
		nodes[rows[i].ID] = &models.CommentNode{
			Comment: rows[i],
			Replies: []*models.CommentNode{},
		}
	}

	// Second pass: attach replies to parents, keeping input order
	roots := make([]*models.CommentNode, 0)
	for i := range rows {
		node := nodes[rows[i].ID]
		if rows[i].ParentID == nil {
			roots = append(roots, node)
			continue
		}
		parent, exists := nodes[*rows[i].ParentID]
		if !exists {
			// Orphaned reference; keep the row visible as a root
			roots = append(roots, node)
			continue
		}
		parent.Replies = append(parent.Replies, node)
	}

	return roots
}

// CollectDescendants returns the ids of every comment transitively reachable
// from rootID via parent links, breadth-first over a parentID -> children
// index. The root itself is not included; a leaf yields an empty set.
func CollectDescendants(rows []models.Comment, rootID string) []string {
	children := make(map[string][]string, len(rows))
	for i := range rows {
		if rows[i].ParentID != nil {
			pid := *rows[i].ParentID
			children[pid] = append(children[pid], rows[i].ID)
		}
	}

	descendants := make([]string, 0)
	queue := append([]string(nil), children[rootID]...)
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		descendants = append(descendants, id)
		queue = append(queue, children[id]...)
	}

	return descendants
}
