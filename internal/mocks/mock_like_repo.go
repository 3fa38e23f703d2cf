package mocks

import (
	"context"

	"github.com/ozanveral/movie-club-api/internal/domain"
	"github.com/stretchr/testify/mock"
)

type MockLikeRepo struct {
	mock.Mock
	domain.LikeRepository
}

func (m *MockLikeRepo) Add(ctx context.Context, userID domain.UserID, movieID domain.MovieID) error {
	args := m.Called(ctx, userID, movieID)
	return args.Error(0)
}

func (m *MockLikeRepo) Remove(ctx context.Context, userID domain.UserID, movieID domain.MovieID) error {
	args := m.Called(ctx, userID, movieID)
	return args.Error(0)
}

func (m *MockLikeRepo) CountByMovie(ctx context.Context, movieID domain.MovieID) (int, error) {
	args := m.Called(ctx, movieID)
	return args.Int(0), args.Error(1)
}
