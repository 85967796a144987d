// Package mocks provides testify mocks of the repository interfaces for
// service-level tests.
package mocks

import (
	"context"

	"tdsc_backend/internal/domain/model"

	"github.com/stretchr/testify/mock"
)

type UserRepository struct {
	mock.Mock
}

func (m *UserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *UserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if user := args.Get(0); user != nil {
		return user.(*model.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *UserRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	args := m.Called(ctx, username)
	if user := args.Get(0); user != nil {
		return user.(*model.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *UserRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	args := m.Called(ctx, id)
	if user := args.Get(0); user != nil {
		return user.(*model.User), args.Error(1)
	}
	return nil, args.Error(1)
}

type VoteRepository struct {
	mock.Mock
}

func (m *VoteRepository) FindByUserAndPost(ctx context.Context, userID, postSlug string) (*model.Vote, error) {
	args := m.Called(ctx, userID, postSlug)
	if vote := args.Get(0); vote != nil {
		return vote.(*model.Vote), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *VoteRepository) Insert(ctx context.Context, vote *model.Vote) error {
	args := m.Called(ctx, vote)
	return args.Error(0)
}

func (m *VoteRepository) UpdateKind(ctx context.Context, id, kind string) error {
	args := m.Called(ctx, id, kind)
	return args.Error(0)
}

func (m *VoteRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *VoteRepository) CountByPost(ctx context.Context, postSlug string) (int, int, error) {
	args := m.Called(ctx, postSlug)
	return args.Int(0), args.Int(1), args.Error(2)
}

type CommentRepository struct {
	mock.Mock
}

func (m *CommentRepository) Insert(ctx context.Context, comment *model.Comment) error {
	args := m.Called(ctx, comment)
	return args.Error(0)
}

func (m *CommentRepository) FindByID(ctx context.Context, id string) (*model.Comment, error) {
	args := m.Called(ctx, id)
	if comment := args.Get(0); comment != nil {
		return comment.(*model.Comment), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *CommentRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *CommentRepository) ListByPost(ctx context.Context, postSlug string) ([]model.CommentWithAuthor, error) {
	args := m.Called(ctx, postSlug)
	if rows := args.Get(0); rows != nil {
		return rows.([]model.CommentWithAuthor), args.Error(1)
	}
	return nil, args.Error(1)
}
