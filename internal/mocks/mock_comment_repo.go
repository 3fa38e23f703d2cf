package mocks

import (
	"context"

	"github.com/ozanveral/movie-club-api/internal/domain"
	"github.com/stretchr/testify/mock"
)

type MockCommentRepo struct {
	mock.Mock
	domain.CommentRepository
}

func (m *MockCommentRepo) Create(ctx context.Context, comment *domain.Comment) error {
	args := m.Called(ctx, comment)
	return args.Error(0)
}

func (m *MockCommentRepo) GetById(ctx context.Context, id domain.CommentID) (*domain.Comment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Comment), args.Error(1)
}

func (m *MockCommentRepo) GetByMovie(ctx context.Context, movieID domain.MovieID, pagination domain.Pagination) ([]domain.Comment, *domain.Metadata, error) {
	args := m.Called(ctx, movieID, pagination)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).([]domain.Comment), args.Get(1).(*domain.Metadata), args.Error(2)
}

func (m *MockCommentRepo) Update(ctx context.Context, comment *domain.Comment) error {
	args := m.Called(ctx, comment)
	return args.Error(0)
}

func (m *MockCommentRepo) Delete(ctx context.Context, id domain.CommentID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
