package models

import "time"

// Difficulty is the skill level of an idea.
type Difficulty string

const (
	DifficultyBeginner     Difficulty = "Beginner"
	DifficultyIntermediate Difficulty = "Intermediate"
	DifficultyAdvanced     Difficulty = "Advanced"
)

// Rank returns the ordinal position of a difficulty, used for the
// difficulty sort order (Beginner < Intermediate < Advanced).
func (d Difficulty) Rank() int {
	switch d {
	case DifficultyBeginner:
		return 1
	case DifficultyIntermediate:
		return 2
	case DifficultyAdvanced:
		return 3
	default:
		return 0
	}
}

// Valid reports whether d is one of the known difficulty levels.
func (d Difficulty) Valid() bool {
	return d.Rank() != 0
}

// SortOrder selects the ordering of an idea listing.
type SortOrder string

const (
	SortPopular    SortOrder = "popular"    // view count descending
	SortRecent     SortOrder = "recent"     // created time descending (default)
	SortDifficulty SortOrder = "difficulty" // Beginner < Intermediate < Advanced
	SortTitle      SortOrder = "title"      // lexicographic ascending
)

// Valid reports whether s is a known sort order.
func (s SortOrder) Valid() bool {
	switch s {
	case SortPopular, SortRecent, SortDifficulty, SortTitle:
		return true
	}
	return false
}

// CounterField names a denormalized counter column on an idea.
type CounterField string

const (
	CounterComments CounterField = "comment_count"
	CounterProjects CounterField = "project_count"
	CounterViews    CounterField = "view_count"
)

// Idea is a catalog entry. The three counters are denormalized aggregates:
// comment_count and project_count converge to the live child-row counts but
// are not instantaneously exact (see the counter reconciler).
type Idea struct {
	ID           string     `json:"id"`
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	Category     string     `json:"category"`
	Difficulty   Difficulty `json:"difficulty"`
	Tools        []string   `json:"tools"`
	Tags         []string   `json:"tags"`
	FreeTier     bool       `json:"free_tier"`
	ViewCount    int        `json:"view_count"`
	CommentCount int        `json:"comment_count"`
	ProjectCount int        `json:"project_count"`
	CreatedAt    time.Time  `json:"created_at"`
}

// IdeaListQuery carries the narrowed, normalized parameters of an idea
// listing down to the store. FreeTierOnly is set by the access tier filter,
// never by callers directly.
type IdeaListQuery struct {
	Search       string
	Category     string
	Difficulty   Difficulty
	FreeTierOnly bool
	Sort         SortOrder
	Page         int
	Limit        int
}

// Offset converts 1-indexed pagination to OFFSET semantics.
func (q IdeaListQuery) Offset() int {
	return (q.Page - 1) * q.Limit
}
