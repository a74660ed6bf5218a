package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ijfields/IdeaHub-sub002/internal/domain"
	"github.com/ijfields/IdeaHub-sub002/internal/domain/models"
	"github.com/ijfields/IdeaHub-sub002/internal/domain/repositories"
)

// PostgresProjectLinkRepository implements the ProjectLinkRepository interface
type PostgresProjectLinkRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewProjectLinkRepository creates a new project-link repository
func NewProjectLinkRepository(config *RepositoryConfig) repositories.ProjectLinkRepository {
	return &PostgresProjectLinkRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

const projectColumns = `id, idea_id, author_id, title, url, description, tools, created_at, updated_at`

// Create inserts a new project link
func (r *PostgresProjectLinkRepository) Create(ctx context.Context, link *models.ProjectLink) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (idea_id, author_id, title, url, description, tools, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $7)
		RETURNING id, created_at, updated_at
	`, r.tables.Projects)

	err := r.pool.QueryRow(ctx, query,
		link.IdeaID,
		link.AuthorID,
		link.Title,
		link.URL,
		link.Description,
		link.Tools,
		time.Now(),
	).Scan(&link.ID, &link.CreatedAt, &link.UpdatedAt)

	if err != nil {
		if isPgForeignKeyError(err) {
			return fmt.Errorf("project link references a missing idea: %w", domain.ErrInvalidReference)
		}
		return fmt.Errorf("create project link: %w", err)
	}

	return nil
}

// GetByID retrieves a project link by ID
func (r *PostgresProjectLinkRepository) GetByID(ctx context.Context, id string) (*models.ProjectLink, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE id = $1`, projectColumns, r.tables.Projects)

	var link models.ProjectLink
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&link.ID,
		&link.IdeaID,
		&link.AuthorID,
		&link.Title,
		&link.URL,
		&link.Description,
		&link.Tools,
		&link.CreatedAt,
		&link.UpdatedAt,
	)
	if err != nil {
		if isPgNoRowsError(err) {
			return nil, fmt.Errorf("project link %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get project link: %w", err)
	}

	return &link, nil
}

// ListByIdea returns all project links for an idea, newest first
func (r *PostgresProjectLinkRepository) ListByIdea(ctx context.Context, ideaID string) ([]models.ProjectLink, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM %s
		WHERE idea_id = $1
		ORDER BY created_at DESC
	`, projectColumns, r.tables.Projects)

	return r.queryLinks(ctx, query, ideaID)
}

// ListByAuthor returns all project links submitted by a user, newest first
func (r *PostgresProjectLinkRepository) ListByAuthor(ctx context.Context, authorID string) ([]models.ProjectLink, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM %s
		WHERE author_id = $1
		ORDER BY created_at DESC
	`, projectColumns, r.tables.Projects)

	return r.queryLinks(ctx, query, authorID)
}

// Update persists a project link's mutable fields
func (r *PostgresProjectLinkRepository) Update(ctx context.Context, link *models.ProjectLink) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET title = $1, url = $2, description = $3, tools = $4, updated_at = $5
		WHERE id = $6
		RETURNING updated_at
	`, r.tables.Projects)

	err := r.pool.QueryRow(ctx, query,
		link.Title,
		link.URL,
		link.Description,
		link.Tools,
		time.Now(),
		link.ID,
	).Scan(&link.UpdatedAt)

	if err != nil {
		if isPgNoRowsError(err) {
			return fmt.Errorf("project link %s: %w", link.ID, domain.ErrNotFound)
		}
		return fmt.Errorf("update project link: %w", err)
	}

	return nil
}

// Delete removes a project link row
func (r *PostgresProjectLinkRepository) Delete(ctx context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, r.tables.Projects)

	result, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete project link: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("project link %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// AllForStats returns the tool list of every project row joined with the
// owning idea's category. The stats aggregation always reads live rows.
func (r *PostgresProjectLinkRepository) AllForStats(ctx context.Context) ([]models.ProjectStatsRow, error) {
	query := fmt.Sprintf(`
		SELECT p.tools, i.category
		FROM %s p
		JOIN %s i ON i.id = p.idea_id
	`, r.tables.Projects, r.tables.Ideas)

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("load stats rows: %w", err)
	}
	defer rows.Close()

	var stats []models.ProjectStatsRow
	for rows.Next() {
		var row models.ProjectStatsRow
		if err := rows.Scan(&row.Tools, &row.Category); err != nil {
			return nil, fmt.Errorf("scan stats row: %w", err)
		}
		stats = append(stats, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate stats rows: %w", err)
	}
	if stats == nil {
		stats = []models.ProjectStatsRow{}
	}

	return stats, nil
}

func (r *PostgresProjectLinkRepository) queryLinks(ctx context.Context, query string, args ...interface{}) ([]models.ProjectLink, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list project links: %w", err)
	}
	defer rows.Close()

	var links []models.ProjectLink
	for rows.Next() {
		var link models.ProjectLink
		err := rows.Scan(
			&link.ID,
			&link.IdeaID,
			&link.AuthorID,
			&link.Title,
			&link.URL,
			&link.Description,
			&link.Tools,
			&link.CreatedAt,
			&link.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan project link: %w", err)
		}
		links = append(links, link)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate project links: %w", err)
	}
	if links == nil {
		links = []models.ProjectLink{}
	}

	return links, nil
}
