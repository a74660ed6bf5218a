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

// PostgresCommentRepository implements the CommentRepository interface
type PostgresCommentRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewCommentRepository creates a new comment repository
func NewCommentRepository(config *RepositoryConfig) repositories.CommentRepository {
	return &PostgresCommentRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

const commentColumns = `id, idea_id, author_id, parent_id, body, flagged, created_at, updated_at`

// Create inserts a new comment
func (r *PostgresCommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (idea_id, author_id, parent_id, body, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $5)
		RETURNING id, created_at, updated_at
	`, r.tables.Comments)

	err := r.pool.QueryRow(ctx, query,
		comment.IdeaID,
		comment.AuthorID,
		comment.ParentID,
		comment.Body,
		time.Now(),
	).Scan(&comment.ID, &comment.CreatedAt, &comment.UpdatedAt)

	if err != nil {
		if isPgForeignKeyError(err) {
			return fmt.Errorf("comment references a missing row: %w", domain.ErrInvalidReference)
		}
		return fmt.Errorf("create comment: %w", err)
	}

	return nil
}

// GetByID retrieves a comment by ID
func (r *PostgresCommentRepository) GetByID(ctx context.Context, id string) (*models.Comment, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE id = $1`, commentColumns, r.tables.Comments)

	var comment models.Comment
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&comment.ID,
		&comment.IdeaID,
		&comment.AuthorID,
		&comment.ParentID,
		&comment.Body,
		&comment.Flagged,
		&comment.CreatedAt,
		&comment.UpdatedAt,
	)
	if err != nil {
		if isPgNoRowsError(err) {
			return nil, fmt.Errorf("comment %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get comment: %w", err)
	}

	return &comment, nil
}

// ListByIdea returns every comment on an idea ordered by ascending creation
// time, the order the tree builder relies on.
func (r *PostgresCommentRepository) ListByIdea(ctx context.Context, ideaID string) ([]models.Comment, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM %s
		WHERE idea_id = $1
		ORDER BY created_at ASC, id ASC
	`, commentColumns, r.tables.Comments)

	return r.queryComments(ctx, query, ideaID)
}

// ListByAuthor returns every comment written by a user, newest first
func (r *PostgresCommentRepository) ListByAuthor(ctx context.Context, authorID string) ([]models.Comment, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM %s
		WHERE author_id = $1
		ORDER BY created_at DESC
	`, commentColumns, r.tables.Comments)

	return r.queryComments(ctx, query, authorID)
}

// Update persists a comment's body and refreshes updated_at
func (r *PostgresCommentRepository) Update(ctx context.Context, comment *models.Comment) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET body = $1, updated_at = $2
		WHERE id = $3
		RETURNING updated_at
	`, r.tables.Comments)

	err := r.pool.QueryRow(ctx, query, comment.Body, time.Now(), comment.ID).Scan(&comment.UpdatedAt)
	if err != nil {
		if isPgNoRowsError(err) {
			return fmt.Errorf("comment %s: %w", comment.ID, domain.ErrNotFound)
		}
		return fmt.Errorf("update comment: %w", err)
	}

	return nil
}

// SetFlagged marks a comment for moderation
func (r *PostgresCommentRepository) SetFlagged(ctx context.Context, id string, flagged bool) error {
	query := fmt.Sprintf(`UPDATE %s SET flagged = $1, updated_at = $2 WHERE id = $3`, r.tables.Comments)

	result, err := r.pool.Exec(ctx, query, flagged, time.Now(), id)
	if err != nil {
		return fmt.Errorf("flag comment: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("comment %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// Delete removes a comment row. parent_id carries ON DELETE CASCADE, so the
// store removes every descendant reply with the root.
func (r *PostgresCommentRepository) Delete(ctx context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, r.tables.Comments)

	result, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete comment: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("comment %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

func (r *PostgresCommentRepository) queryComments(ctx context.Context, query string, args ...interface{}) ([]models.Comment, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	defer rows.Close()

	var comments []models.Comment
	for rows.Next() {
		var comment models.Comment
		err := rows.Scan(
			&comment.ID,
			&comment.IdeaID,
			&comment.AuthorID,
			&comment.ParentID,
			&comment.Body,
			&comment.Flagged,
			&comment.CreatedAt,
			&comment.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan comment: %w", err)
		}
		comments = append(comments, comment)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate comments: %w", err)
	}
	if comments == nil {
		comments = []models.Comment{}
	}

	return comments, nil
}
