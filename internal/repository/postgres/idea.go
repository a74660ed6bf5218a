package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ijfields/IdeaHub-sub002/internal/domain"
	"github.com/ijfields/IdeaHub-sub002/internal/domain/models"
	"github.com/ijfields/IdeaHub-sub002/internal/domain/repositories"
)

// PostgresIdeaRepository implements the IdeaRepository interface
type PostgresIdeaRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewIdeaRepository creates a new idea repository
func NewIdeaRepository(config *RepositoryConfig) repositories.IdeaRepository {
	return &PostgresIdeaRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

const ideaColumns = `id, title, description, category, difficulty, tools, tags,
       free_tier, view_count, comment_count, project_count, created_at`

// List returns one page of ideas matching the query plus the total match
// count before pagination. Conditions are composed with positional
// parameters; the tier constraint arrives already narrowed into the query.
func (r *PostgresIdeaRepository) List(ctx context.Context, q models.IdeaListQuery) ([]models.Idea, int, error) {
	where, args := buildIdeaFilter(q)

	baseQuery := fmt.Sprintf(`SELECT %s FROM %s`, ideaColumns, r.tables.Ideas)
	if where != "" {
		baseQuery += " WHERE " + where
	}
	baseQuery += " ORDER BY " + orderClause(q.Sort)
	baseQuery += fmt.Sprintf(` LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	pageArgs := append(append([]interface{}{}, args...), q.Limit, q.Offset())

	rows, err := r.pool.Query(ctx, baseQuery, pageArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("list ideas: %w", err)
	}
	defer rows.Close()

	var ideas []models.Idea
	for rows.Next() {
		var idea models.Idea
		err := rows.Scan(
			&idea.ID,
			&idea.Title,
			&idea.Description,
			&idea.Category,
			&idea.Difficulty,
			&idea.Tools,
			&idea.Tags,
			&idea.FreeTier,
			&idea.ViewCount,
			&idea.CommentCount,
			&idea.ProjectCount,
			&idea.CreatedAt,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("scan idea: %w", err)
		}
		ideas = append(ideas, idea)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate ideas: %w", err)
	}
	if ideas == nil {
		ideas = []models.Idea{}
	}

	// Total count over the same conditions, without limit/offset
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM %s`, r.tables.Ideas)
	if where != "" {
		countQuery += " WHERE " + where
	}
	var total int
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count ideas: %w", err)
	}

	return ideas, total, nil
}

// GetByID retrieves an idea by ID
func (r *PostgresIdeaRepository) GetByID(ctx context.Context, id string) (*models.Idea, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE id = $1`, ideaColumns, r.tables.Ideas)

	var idea models.Idea
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&idea.ID,
		&idea.Title,
		&idea.Description,
		&idea.Category,
		&idea.Difficulty,
		&idea.Tools,
		&idea.Tags,
		&idea.FreeTier,
		&idea.ViewCount,
		&idea.CommentCount,
		&idea.ProjectCount,
		&idea.CreatedAt,
	)
	if err != nil {
		if isPgNoRowsError(err) {
			return nil, fmt.Errorf("idea %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get idea: %w", err)
	}

	return &idea, nil
}

// Exists reports whether an idea row exists
func (r *PostgresIdeaRepository) Exists(ctx context.Context, id string) (bool, error) {
	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE id = $1)`, r.tables.Ideas)

	var exists bool
	if err := r.pool.QueryRow(ctx, query, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("check idea exists: %w", err)
	}
	return exists, nil
}

// IncrementCounter applies field = GREATEST(field + delta, 0) in a single
// statement, which is safe under concurrent invocations because the
// arithmetic happens inside the store's own atomic update.
func (r *PostgresIdeaRepository) IncrementCounter(ctx context.Context, id string, field models.CounterField, delta int) (int, error) {
	column, err := counterColumn(field)
	if err != nil {
		return 0, err
	}

	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = GREATEST(%s + $1, 0)
		WHERE id = $2
		RETURNING %s
	`, r.tables.Ideas, column, column, column)

	var value int
	if err := r.pool.QueryRow(ctx, query, delta, id).Scan(&value); err != nil {
		if isPgNoRowsError(err) {
			return 0, fmt.Errorf("idea %s: %w", id, domain.ErrNotFound)
		}
		return 0, fmt.Errorf("increment %s: %w", column, err)
	}

	return value, nil
}

// GetCounter reads the current value of a counter field
func (r *PostgresIdeaRepository) GetCounter(ctx context.Context, id string, field models.CounterField) (int, error) {
	column, err := counterColumn(field)
	if err != nil {
		return 0, err
	}

	query := fmt.Sprintf(`SELECT %s FROM %s WHERE id = $1`, column, r.tables.Ideas)

	var value int
	if err := r.pool.QueryRow(ctx, query, id).Scan(&value); err != nil {
		if isPgNoRowsError(err) {
			return 0, fmt.Errorf("idea %s: %w", id, domain.ErrNotFound)
		}
		return 0, fmt.Errorf("get %s: %w", column, err)
	}

	return value, nil
}

// SetCounter writes a counter field directly
func (r *PostgresIdeaRepository) SetCounter(ctx context.Context, id string, field models.CounterField, value int) error {
	column, err := counterColumn(field)
	if err != nil {
		return err
	}

	query := fmt.Sprintf(`UPDATE %s SET %s = $1 WHERE id = $2`, r.tables.Ideas, column)

	result, err := r.pool.Exec(ctx, query, value, id)
	if err != nil {
		return fmt.Errorf("set %s: %w", column, err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("idea %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// counterColumn whitelists the counter field before it is interpolated into
// SQL. Field names never come from callers outside the module, but the
// whitelist keeps the interpolation provably safe.
func counterColumn(field models.CounterField) (string, error) {
	switch field {
	case models.CounterComments, models.CounterProjects, models.CounterViews:
		return string(field), nil
	default:
		return "", fmt.Errorf("unknown counter field %q", field)
	}
}

// buildIdeaFilter composes WHERE conditions and their positional arguments
func buildIdeaFilter(q models.IdeaListQuery) (string, []interface{}) {
	var conditions []string
	var args []interface{}

	if q.FreeTierOnly {
		conditions = append(conditions, "free_tier = TRUE")
	}
	if q.Category != "" {
		args = append(args, q.Category)
		conditions = append(conditions, fmt.Sprintf("category = $%d", len(args)))
	}
	if q.Difficulty != "" {
		args = append(args, string(q.Difficulty))
		conditions = append(conditions, fmt.Sprintf("difficulty = $%d", len(args)))
	}
	if q.Search != "" {
		args = append(args, "%"+escapeLike(q.Search)+"%")
		n := len(args)
		conditions = append(conditions, fmt.Sprintf(`(
			title ILIKE $%d
			OR description ILIKE $%d
			OR array_to_string(tags, ' ') ILIKE $%d
			OR array_to_string(tools, ' ') ILIKE $%d
		)`, n, n, n, n))
	}

	return strings.Join(conditions, " AND "), args
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike quotes ILIKE metacharacters so a search term always matches
// literally, never as a wildcard pattern.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// orderClause maps a sort order to its ORDER BY expression. The difficulty
// sort is ordinal, not lexicographic.
func orderClause(sort models.SortOrder) string {
	switch sort {
	case models.SortPopular:
		return "view_count DESC, created_at DESC"
	case models.SortDifficulty:
		return `CASE difficulty
			WHEN 'Beginner' THEN 1
			WHEN 'Intermediate' THEN 2
			WHEN 'Advanced' THEN 3
			ELSE 4 END ASC, created_at DESC`
	case models.SortTitle:
		return "title ASC"
	default:
		return "created_at DESC"
	}
}
