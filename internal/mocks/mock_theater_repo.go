package mocks

import (
	"context"

	"github.com/ozanveral/movie-club-api/internal/domain"
	"github.com/stretchr/testify/mock"
)

type MockTheaterRepo struct {
	mock.Mock
	domain.TheaterRepository
}

func (m *MockTheaterRepo) GetAll(ctx context.Context, pagination domain.Pagination) ([]*domain.Theater, *domain.Metadata, error) {
	args := m.Called(ctx, pagination)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).([]*domain.Theater), args.Get(1).(*domain.Metadata), args.Error(2)
}

func (m *MockTheaterRepo) GetById(ctx context.Context, id domain.TheaterID) (*domain.Theater, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Theater), args.Error(1)
}

func (m *MockTheaterRepo) Create(ctx context.Context, theater *domain.Theater) error {
	args := m.Called(ctx, theater)
	return args.Error(0)
}

func (m *MockTheaterRepo) Update(ctx context.Context, theater *domain.Theater) error {
	args := m.Called(ctx, theater)
	return args.Error(0)
}

func (m *MockTheaterRepo) Delete(ctx context.Context, id domain.TheaterID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
