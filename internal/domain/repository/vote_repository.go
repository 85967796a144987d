package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"tdsc_backend/internal/common"
	"tdsc_backend/internal/domain/model"

	"github.com/jackc/pgx/v5/pgconn"
)

// VoteRepository exposes the primitives of the vote ledger; the submit
// state machine lives in the service layer on top of these.
type VoteRepository interface {
	FindByUserAndPost(ctx context.Context, userID, postSlug string) (*model.Vote, error)
	Insert(ctx context.Context, vote *model.Vote) error
	UpdateKind(ctx context.Context, id, kind string) error
	Delete(ctx context.Context, id string) error
	CountByPost(ctx context.Context, postSlug string) (upvotes, downvotes int, err error)
}

type pgVoteRepository struct {
	db *sql.DB
}

func NewPgVoteRepository(db *sql.DB) VoteRepository {
	return &pgVoteRepository{db: db}
}

func (r *pgVoteRepository) FindByUserAndPost(ctx context.Context, userID, postSlug string) (*model.Vote, error) {
	query := `SELECT id, user_id, post_slug, vote_type, created_at, updated_at
	          FROM votes WHERE user_id = $1 AND post_slug = $2`
	vote := &model.Vote{}
	err := r.db.QueryRowContext(ctx, query, userID, postSlug).Scan(
		&vote.ID, &vote.UserID, &vote.PostSlug, &vote.Kind, &vote.CreatedAt, &vote.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgVoteRepository.FindByUserAndPost: %w", err)
	}
	return vote, nil
}

func (r *pgVoteRepository) Insert(ctx context.Context, vote *model.Vote) error {
	query := `INSERT INTO votes (id, user_id, post_slug, vote_type, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.db.ExecContext(ctx, query, vote.ID, vote.UserID, vote.PostSlug, vote.Kind, vote.CreatedAt, vote.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			// Lost the race against a concurrent insert for the same
			// (user, post) pair; the caller re-reads and replays.
			return common.ErrConflict
		}
		return fmt.Errorf("pgVoteRepository.Insert: %w", err)
	}
	return nil
}

func (r *pgVoteRepository) UpdateKind(ctx context.Context, id, kind string) error {
	query := `UPDATE votes SET vote_type = $2, updated_at = $3 WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, id, kind, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("pgVoteRepository.UpdateKind: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *pgVoteRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM votes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("pgVoteRepository.Delete: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *pgVoteRepository) CountByPost(ctx context.Context, postSlug string) (int, int, error) {
	query := `SELECT
	            COUNT(*) FILTER (WHERE vote_type = $2),
	            COUNT(*) FILTER (WHERE vote_type = $3)
	          FROM votes WHERE post_slug = $1`
	var up, down int
	err := r.db.QueryRowContext(ctx, query, postSlug, model.VoteUp, model.VoteDown).Scan(&up, &down)
	if err != nil {
		return 0, 0, fmt.Errorf("pgVoteRepository.CountByPost: %w", err)
	}
	return up, down, nil
}
