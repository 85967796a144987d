package service_test

import (
	"context"
	"testing"
	"time"

	"tdsc_backend/internal/app/service"
	"tdsc_backend/internal/common"
	"tdsc_backend/internal/domain/model"
	"tdsc_backend/internal/domain/repository/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func existingVote(kind string) *model.Vote {
	now := time.Now().UTC()
	return &model.Vote{
		ID:        "v1",
		UserID:    "u1",
		PostSlug:  "p1",
		Kind:      kind,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestVoteService_Submit_FirstVoteInserts(t *testing.T) {
	voteRepo := new(mocks.VoteRepository)
	voteService := service.NewVoteService(voteRepo)
	ctx := context.Background()

	voteRepo.On("FindByUserAndPost", ctx, "u1", "p1").Return(nil, common.ErrNotFound).Once()
	voteRepo.On("Insert", ctx, mock.MatchedBy(func(v *model.Vote) bool {
		return v.UserID == "u1" && v.PostSlug == "p1" && v.Kind == model.VoteUp && v.ID != ""
	})).Return(nil).Once()
	voteRepo.On("CountByPost", ctx, "p1").Return(1, 0, nil).Once()
	voteRepo.On("FindByUserAndPost", ctx, "u1", "p1").Return(existingVote(model.VoteUp), nil).Once()

	counts, err := voteService.Submit(ctx, "u1", "p1", model.VoteUp)

	require.NoError(t, err)
	assert.Equal(t, 1, counts.Upvotes)
	assert.Equal(t, 0, counts.Downvotes)
	require.NotNil(t, counts.UserVote)
	assert.Equal(t, model.VoteUp, *counts.UserVote)
	voteRepo.AssertExpectations(t)
}

func TestVoteService_Submit_SameKindTogglesOff(t *testing.T) {
	voteRepo := new(mocks.VoteRepository)
	voteService := service.NewVoteService(voteRepo)
	ctx := context.Background()

	voteRepo.On("FindByUserAndPost", ctx, "u1", "p1").Return(existingVote(model.VoteUp), nil).Once()
	voteRepo.On("Delete", ctx, "v1").Return(nil).Once()
	voteRepo.On("CountByPost", ctx, "p1").Return(0, 0, nil).Once()
	voteRepo.On("FindByUserAndPost", ctx, "u1", "p1").Return(nil, common.ErrNotFound).Once()

	counts, err := voteService.Submit(ctx, "u1", "p1", model.VoteUp)

	require.NoError(t, err)
	assert.Equal(t, 0, counts.Upvotes)
	assert.Nil(t, counts.UserVote)
	voteRepo.AssertExpectations(t)
	voteRepo.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
	voteRepo.AssertNotCalled(t, "UpdateKind", mock.Anything, mock.Anything, mock.Anything)
}

func TestVoteService_Submit_OppositeKindUpdatesInPlace(t *testing.T) {
	voteRepo := new(mocks.VoteRepository)
	voteService := service.NewVoteService(voteRepo)
	ctx := context.Background()

	voteRepo.On("FindByUserAndPost", ctx, "u1", "p1").Return(existingVote(model.VoteUp), nil).Once()
	voteRepo.On("UpdateKind", ctx, "v1", model.VoteDown).Return(nil).Once()
	voteRepo.On("CountByPost", ctx, "p1").Return(0, 1, nil).Once()
	voteRepo.On("FindByUserAndPost", ctx, "u1", "p1").Return(existingVote(model.VoteDown), nil).Once()

	counts, err := voteService.Submit(ctx, "u1", "p1", model.VoteDown)

	require.NoError(t, err)
	assert.Equal(t, 0, counts.Upvotes)
	assert.Equal(t, 1, counts.Downvotes)
	require.NotNil(t, counts.UserVote)
	assert.Equal(t, model.VoteDown, *counts.UserVote)
	voteRepo.AssertExpectations(t)
	voteRepo.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
	voteRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestVoteService_Submit_InsertRaceReplaysOnce(t *testing.T) {
	voteRepo := new(mocks.VoteRepository)
	voteService := service.NewVoteService(voteRepo)
	ctx := context.Background()

	// First read sees no vote, but a concurrent request wins the insert;
	// the retry re-reads the winner's row and applies the transition to it.
	voteRepo.On("FindByUserAndPost", ctx, "u1", "p1").Return(nil, common.ErrNotFound).Once()
	voteRepo.On("Insert", ctx, mock.Anything).Return(common.ErrConflict).Once()
	voteRepo.On("FindByUserAndPost", ctx, "u1", "p1").Return(existingVote(model.VoteDown), nil).Once()
	voteRepo.On("UpdateKind", ctx, "v1", model.VoteUp).Return(nil).Once()
	voteRepo.On("CountByPost", ctx, "p1").Return(1, 0, nil).Once()
	voteRepo.On("FindByUserAndPost", ctx, "u1", "p1").Return(existingVote(model.VoteUp), nil).Once()

	counts, err := voteService.Submit(ctx, "u1", "p1", model.VoteUp)

	require.NoError(t, err)
	assert.Equal(t, 1, counts.Upvotes)
	voteRepo.AssertExpectations(t)
	voteRepo.AssertNumberOfCalls(t, "Insert", 1)
}

func TestVoteService_Submit_ConflictOnRetryPropagates(t *testing.T) {
	voteRepo := new(mocks.VoteRepository)
	voteService := service.NewVoteService(voteRepo)
	ctx := context.Background()

	// A second consecutive conflict is not retried again.
	voteRepo.On("FindByUserAndPost", ctx, "u1", "p1").Return(nil, common.ErrNotFound).Twice()
	voteRepo.On("Insert", ctx, mock.Anything).Return(common.ErrConflict).Twice()

	_, err := voteService.Submit(ctx, "u1", "p1", model.VoteUp)

	assert.ErrorIs(t, err, common.ErrConflict)
	voteRepo.AssertExpectations(t)
}

func TestVoteService_Submit_InvalidKind(t *testing.T) {
	voteRepo := new(mocks.VoteRepository)
	voteService := service.NewVoteService(voteRepo)

	_, err := voteService.Submit(context.Background(), "u1", "p1", "sideways")

	assert.ErrorIs(t, err, common.ErrValidation)
	voteRepo.AssertNotCalled(t, "FindByUserAndPost", mock.Anything, mock.Anything, mock.Anything)
}

func TestVoteService_Counts_Anonymous(t *testing.T) {
	voteRepo := new(mocks.VoteRepository)
	voteService := service.NewVoteService(voteRepo)
	ctx := context.Background()

	voteRepo.On("CountByPost", ctx, "p1").Return(2, 1, nil).Once()

	counts, err := voteService.Counts(ctx, "p1", "")

	require.NoError(t, err)
	assert.Equal(t, 2, counts.Upvotes)
	assert.Equal(t, 1, counts.Downvotes)
	assert.Nil(t, counts.UserVote)
	voteRepo.AssertNotCalled(t, "FindByUserAndPost", mock.Anything, mock.Anything, mock.Anything)
}

func TestVoteService_Counts_CallerWithoutVote(t *testing.T) {
	voteRepo := new(mocks.VoteRepository)
	voteService := service.NewVoteService(voteRepo)
	ctx := context.Background()

	voteRepo.On("CountByPost", ctx, "p1").Return(2, 1, nil).Once()
	voteRepo.On("FindByUserAndPost", ctx, "u9", "p1").Return(nil, common.ErrNotFound).Once()

	counts, err := voteService.Counts(ctx, "p1", "u9")

	require.NoError(t, err)
	assert.Equal(t, 2, counts.Upvotes)
	assert.Equal(t, 1, counts.Downvotes)
	assert.Nil(t, counts.UserVote)
}
