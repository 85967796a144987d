package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tdsc_backend/internal/common"
	"tdsc_backend/internal/domain/model"
	"tdsc_backend/internal/domain/repository"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type CommentService struct {
	commentRepo repository.CommentRepository
	userRepo    repository.UserRepository
	validate    *validator.Validate
}

func NewCommentService(commentRepo repository.CommentRepository, userRepo repository.UserRepository) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		userRepo:    userRepo,
		validate:    validator.New(),
	}
}

type CommentCreateRequest struct {
	Text string `json:"text" validate:"required,min=1,max=2000"`
}

type CommentEntry struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
	IsOwn     bool      `json:"is_own"`
}

// List returns a post's comments newest-first. callerID may be empty for
// anonymous callers; IsOwn marks entries authored by the caller.
func (s *CommentService) List(ctx context.Context, postSlug, callerID string) ([]CommentEntry, error) {
	rows, err := s.commentRepo.ListByPost(ctx, postSlug)
	if err != nil {
		return nil, err
	}

	entries := make([]CommentEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, CommentEntry{
			ID:        row.ID,
			Username:  row.Username,
			Text:      row.Text,
			CreatedAt: row.CreatedAt,
			IsOwn:     callerID != "" && row.UserID == callerID,
		})
	}
	return entries, nil
}

func (s *CommentService) Create(ctx context.Context, postSlug, authorID string, req CommentCreateRequest) (*CommentEntry, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, common.Errorf("comment text must be 1-2000 characters: %w", common.ErrValidation)
	}

	author, err := s.userRepo.FindByID(ctx, authorID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			// Token names a user that no longer exists.
			return nil, common.ErrUnauthenticated
		}
		return nil, fmt.Errorf("looking up author: %w", err)
	}

	comment := &model.Comment{
		ID:        uuid.NewString(),
		UserID:    authorID,
		PostSlug:  postSlug,
		Text:      req.Text,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.commentRepo.Insert(ctx, comment); err != nil {
		return nil, err
	}

	zerolog.Ctx(ctx).Info().Str("post_slug", postSlug).Str("comment_id", comment.ID).Msg("comment created")
	return &CommentEntry{
		ID:        comment.ID,
		Username:  author.Username,
		Text:      comment.Text,
		CreatedAt: comment.CreatedAt,
		IsOwn:     true,
	}, nil
}

// Delete removes a comment on behalf of its author. A missing comment is
// NotFound; an existing comment owned by someone else is Forbidden, in
// that order.
func (s *CommentService) Delete(ctx context.Context, commentID, callerID string) error {
	comment, err := s.commentRepo.FindByID(ctx, commentID)
	if err != nil {
		return err
	}
	if comment.UserID != callerID {
		return common.Errorf("you can only delete your own comments: %w", common.ErrForbidden)
	}
	if err := s.commentRepo.Delete(ctx, commentID); err != nil {
		return err
	}
	zerolog.Ctx(ctx).Info().Str("comment_id", commentID).Msg("comment deleted")
	return nil
}
