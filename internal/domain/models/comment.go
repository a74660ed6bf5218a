package models

import "time"

// Comment is a node in a per-idea discussion forest. A nil ParentID marks a
// root comment attached directly to the idea; replies reference an existing
// comment on the same idea.
type Comment struct {
	ID        string    `json:"id"`
	IdeaID    string    `json:"idea_id"`
	AuthorID  string    `json:"author_id"`
	ParentID  *string   `json:"parent_id,omitempty"`
	Body      string    `json:"body"`
	Flagged   bool      `json:"flagged"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CommentNode is a comment with its nested replies, as returned by
// idea-level comment listings. Replies are ordered by ascending creation
// time, as are the roots of the forest.
type CommentNode struct {
	Comment
	Replies []*CommentNode `json:"replies"`
}

// Count returns the number of nodes in the subtree rooted at n, including n.
func (n *CommentNode) Count() int {
	total := 1
	for _, r := range n.Replies {
		total += r.Count()
	}
	return total
}
