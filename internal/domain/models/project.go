package models

import "time"

// ProjectLink is a user's claim of having built something from an idea.
type ProjectLink struct {
	ID          string    `json:"id"`
	IdeaID      string    `json:"idea_id"`
	AuthorID    string    `json:"author_id"`
	Title       string    `json:"title"`
	URL         string    `json:"url"`
	Description string    `json:"description,omitempty"`
	Tools       []string  `json:"tools"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ProjectStatsRow is the slice of a project row needed for the campaign
// statistics aggregation: the tools the author used and the category of the
// owning idea.
type ProjectStatsRow struct {
	Tools    []string
	Category string
}

// ProjectStats is the live campaign aggregation over all project rows.
// It has no denormalized counters of its own; every field is recomputed
// from source rows on each call.
type ProjectStats struct {
	TotalProjects      int            `json:"total_projects"`
	CampaignGoal       int            `json:"campaign_goal"`
	ProgressPercentage float64        `json:"progress_percentage"`
	Tools              ToolStats      `json:"tools"`
	Categories         map[string]int `json:"categories"`
}

// ToolStats is the case-normalized tool-usage histogram.
type ToolStats struct {
	Breakdown map[string]int `json:"breakdown"`
	AllTools  []string       `json:"all_tools"`
}
