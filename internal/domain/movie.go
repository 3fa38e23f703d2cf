package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// MinReleaseYear bounds how far back a movie's release year may go.
const MinReleaseYear = 1900

type Movie struct {
	ID        MovieID
	Title     string
	Overview  string
	Year      int
	Rating    decimal.Decimal
	Category  string
	Duration  int // runtime in minutes
	CreatedAt time.Time
	Version   int
}

// HasDuration reports whether the movie carries a usable runtime for
// duration-fit checking.
func (m *Movie) HasDuration() bool {
	return m.Duration > 0
}

type MovieRepository interface {
	GetAll(ctx context.Context, pagination Pagination) ([]*Movie, *Metadata, error)
	GetById(ctx context.Context, id MovieID) (*Movie, error)
	Create(ctx context.Context, movie *Movie) error
	Update(ctx context.Context, movie *Movie) error
	Delete(ctx context.Context, id MovieID) error
}
