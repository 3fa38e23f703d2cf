package domain

import (
	"context"
	"time"
)

type Theater struct {
	ID          TheaterID
	Name        string
	MaxCapacity int
	Projection  string
	ScreenSize  string
	Description string
	CreatedAt   time.Time
	Version     int
}

type TheaterRepository interface {
	GetAll(ctx context.Context, pagination Pagination) ([]*Theater, *Metadata, error)
	GetById(ctx context.Context, id TheaterID) (*Theater, error)
	Create(ctx context.Context, theater *Theater) error
	Update(ctx context.Context, theater *Theater) error
	Delete(ctx context.Context, id TheaterID) error
}
