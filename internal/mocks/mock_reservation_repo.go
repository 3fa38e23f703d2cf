package mocks

import (
	"context"
	"time"

	"github.com/ozanveral/movie-club-api/internal/domain"
	"github.com/stretchr/testify/mock"
)

type MockReservationRepo struct {
	mock.Mock
	domain.ReservationRepository
}

func (m *MockReservationRepo) Create(ctx context.Context, reservation *domain.Reservation) error {
	args := m.Called(ctx, reservation)
	return args.Error(0)
}

func (m *MockReservationRepo) GetById(ctx context.Context, id domain.ReservationID) (*domain.Reservation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reservation), args.Error(1)
}

func (m *MockReservationRepo) GetActiveByTheaterAndDate(ctx context.Context, theaterID domain.TheaterID, date time.Time) ([]domain.Reservation, error) {
	args := m.Called(ctx, theaterID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Reservation), args.Error(1)
}

func (m *MockReservationRepo) GetAllVisibleToUser(ctx context.Context, userID domain.UserID, pagination domain.Pagination) ([]domain.Reservation, *domain.Metadata, error) {
	args := m.Called(ctx, userID, pagination)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).([]domain.Reservation), args.Get(1).(*domain.Metadata), args.Error(2)
}

func (m *MockReservationRepo) Update(ctx context.Context, reservation *domain.Reservation) error {
	args := m.Called(ctx, reservation)
	return args.Error(0)
}

func (m *MockReservationRepo) Delete(ctx context.Context, id domain.ReservationID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
