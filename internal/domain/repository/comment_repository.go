package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"tdsc_backend/internal/common"
	"tdsc_backend/internal/domain/model"
)

type CommentRepository interface {
	Insert(ctx context.Context, comment *model.Comment) error
	FindByID(ctx context.Context, id string) (*model.Comment, error)
	Delete(ctx context.Context, id string) error
	ListByPost(ctx context.Context, postSlug string) ([]model.CommentWithAuthor, error)
}

type pgCommentRepository struct {
	db *sql.DB
}

func NewPgCommentRepository(db *sql.DB) CommentRepository {
	return &pgCommentRepository{db: db}
}

func (r *pgCommentRepository) Insert(ctx context.Context, comment *model.Comment) error {
	query := `INSERT INTO comments (id, user_id, post_slug, body, created_at)
	          VALUES ($1, $2, $3, $4, $5)`
	_, err := r.db.ExecContext(ctx, query, comment.ID, comment.UserID, comment.PostSlug, comment.Text, comment.CreatedAt)
	if err != nil {
		return fmt.Errorf("pgCommentRepository.Insert: %w", err)
	}
	return nil
}

func (r *pgCommentRepository) FindByID(ctx context.Context, id string) (*model.Comment, error) {
	query := `SELECT id, user_id, post_slug, body, created_at FROM comments WHERE id = $1`
	comment := &model.Comment{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&comment.ID, &comment.UserID, &comment.PostSlug, &comment.Text, &comment.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgCommentRepository.FindByID: %w", err)
	}
	return comment, nil
}

func (r *pgCommentRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM comments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("pgCommentRepository.Delete: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return common.ErrNotFound
	}
	return nil
}

// ListByPost returns comments newest-first, each joined with its author's
// username. A comment whose author row is gone still lists, with a
// placeholder name.
func (r *pgCommentRepository) ListByPost(ctx context.Context, postSlug string) ([]model.CommentWithAuthor, error) {
	query := `SELECT c.id, c.user_id, c.post_slug, c.body, c.created_at,
	                 COALESCE(u.username, 'Unknown')
	          FROM comments c
	          LEFT JOIN users u ON u.id = c.user_id
	          WHERE c.post_slug = $1
	          ORDER BY c.created_at DESC`
	rows, err := r.db.QueryContext(ctx, query, postSlug)
	if err != nil {
		return nil, fmt.Errorf("pgCommentRepository.ListByPost: %w", err)
	}
	defer rows.Close()

	var comments []model.CommentWithAuthor
	for rows.Next() {
		var c model.CommentWithAuthor
		if err := rows.Scan(&c.ID, &c.UserID, &c.PostSlug, &c.Text, &c.CreatedAt, &c.Username); err != nil {
			return nil, fmt.Errorf("pgCommentRepository.ListByPost scan: %w", err)
		}
		comments = append(comments, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("pgCommentRepository.ListByPost rows: %w", err)
	}
	return comments, nil
}
