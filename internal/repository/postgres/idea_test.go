package postgres

import (
	"strings"
	"testing"

	"github.com/ijfields/IdeaHub-sub002/internal/domain/models"
)

func TestEscapeLike(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"plain", "plain"},
		{"50%", `50\%`},
		{"a_c", `a\_c`},
		{`back\slash`, `back\\slash`},
		{`%_\`, `\%\_\\`},
		{"", ""},
	}

	for _, tt := range tests {
		if got := escapeLike(tt.in); got != tt.want {
			t.Errorf("escapeLike(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestBuildIdeaFilterSearchIsLiteral(t *testing.T) {
	tests := []struct {
		search  string
		wantArg string
	}{
		{"api", "%api%"},
		{"a_c", `%a\_c%`},
		{"50% done", `%50\% done%`},
	}

	for _, tt := range tests {
		t.Run(tt.search, func(t *testing.T) {
			where, args := buildIdeaFilter(models.IdeaListQuery{Search: tt.search})
			if len(args) != 1 {
				t.Fatalf("args = %v, want exactly the search pattern", args)
			}
			if args[0] != tt.wantArg {
				t.Errorf("search arg = %q, want %q", args[0], tt.wantArg)
			}
			if !strings.Contains(where, "ILIKE $1") {
				t.Errorf("where clause %q does not bind the search pattern", where)
			}
		})
	}
}

func TestBuildIdeaFilterComposition(t *testing.T) {
	where, args := buildIdeaFilter(models.IdeaListQuery{
		FreeTierOnly: true,
		Category:     "Web Apps",
		Difficulty:   models.DifficultyBeginner,
		Search:       "chat",
	})

	if len(args) != 3 {
		t.Fatalf("args = %v, want category, difficulty, search", args)
	}
	for _, fragment := range []string{"free_tier = TRUE", "category = $1", "difficulty = $2", "ILIKE $3"} {
		if !strings.Contains(where, fragment) {
			t.Errorf("where clause %q missing %q", where, fragment)
		}
	}
	if parts := strings.Count(where, " AND "); parts != 3 {
		t.Errorf("where clause joins %d conditions, want 4", parts+1)
	}
}
