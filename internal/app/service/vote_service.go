package service

import (
	"context"
	"errors"
	"time"

	"tdsc_backend/internal/common"
	"tdsc_backend/internal/domain/model"
	"tdsc_backend/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type VoteService struct {
	voteRepo repository.VoteRepository
}

func NewVoteService(voteRepo repository.VoteRepository) *VoteService {
	return &VoteService{voteRepo: voteRepo}
}

type VoteCounts struct {
	Upvotes   int     `json:"upvotes"`
	Downvotes int     `json:"downvotes"`
	UserVote  *string `json:"user_vote"`
}

// Counts returns the vote tallies for a post. UserVote reflects only the
// caller's own record and stays null for anonymous callers.
func (s *VoteService) Counts(ctx context.Context, postSlug, callerID string) (*VoteCounts, error) {
	up, down, err := s.voteRepo.CountByPost(ctx, postSlug)
	if err != nil {
		return nil, err
	}

	counts := &VoteCounts{Upvotes: up, Downvotes: down}
	if callerID != "" {
		vote, err := s.voteRepo.FindByUserAndPost(ctx, callerID, postSlug)
		switch {
		case err == nil:
			counts.UserVote = &vote.Kind
		case errors.Is(err, common.ErrNotFound):
			// No vote; UserVote stays null.
		default:
			return nil, err
		}
	}
	return counts, nil
}

// Submit applies one transition of the per-(user, post) vote state machine:
// no vote inserts, resubmitting the same kind removes the vote, and the
// opposite kind updates in place. The unique index on (user_id, post_slug)
// is the source of truth for the insert race; losing it means another
// request created the row first, so the transition is replayed once against
// the winner's row.
func (s *VoteService) Submit(ctx context.Context, userID, postSlug, kind string) (*VoteCounts, error) {
	if !model.ValidVoteKind(kind) {
		return nil, common.Errorf("vote type must be 'up' or 'down': %w", common.ErrValidation)
	}

	for attempt := 0; ; attempt++ {
		existing, err := s.voteRepo.FindByUserAndPost(ctx, userID, postSlug)
		switch {
		case err == nil:
			if existing.Kind == kind {
				zerolog.Ctx(ctx).Info().Str("post_slug", postSlug).Str("vote", kind).Msg("vote toggled off")
				if err := s.voteRepo.Delete(ctx, existing.ID); err != nil {
					return nil, err
				}
			} else {
				zerolog.Ctx(ctx).Info().Str("post_slug", postSlug).Str("vote", kind).Msg("vote flipped")
				if err := s.voteRepo.UpdateKind(ctx, existing.ID, kind); err != nil {
					return nil, err
				}
			}
		case errors.Is(err, common.ErrNotFound):
			now := time.Now().UTC()
			vote := &model.Vote{
				ID:        uuid.NewString(),
				UserID:    userID,
				PostSlug:  postSlug,
				Kind:      kind,
				CreatedAt: now,
				UpdatedAt: now,
			}
			if err := s.voteRepo.Insert(ctx, vote); err != nil {
				if errors.Is(err, common.ErrConflict) && attempt == 0 {
					continue
				}
				return nil, err
			}
			zerolog.Ctx(ctx).Info().Str("post_slug", postSlug).Str("vote", kind).Msg("vote recorded")
		default:
			return nil, err
		}

		return s.Counts(ctx, postSlug, userID)
	}
}
