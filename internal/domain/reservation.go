package domain

import (
	"context"
	"time"
)

type ReservationStatus string

const (
	ReservationStatusActive    ReservationStatus = "active"
	ReservationStatusCancelled ReservationStatus = "cancelled"
)

// Reservation is a booking of a theater for a movie within a time window
// on a single calendar day. Start and End are half-open: [Start, End).
type Reservation struct {
	ID        ReservationID
	UserID    UserID
	TheaterID TheaterID
	MovieID   MovieID
	Private   bool
	Date      time.Time // calendar day, time part zero
	Start     TimeOfDay
	End       TimeOfDay
	Status    ReservationStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Overlaps reports whether the reservation's window intersects
// [start, end) on the half-open interval convention, so back-to-back
// windows do not overlap.
func (r *Reservation) Overlaps(start, end TimeOfDay) bool {
	return r.Start.Before(end) && r.End.After(start)
}

type ReservationRepository interface {
	Create(ctx context.Context, reservation *Reservation) error
	GetById(ctx context.Context, id ReservationID) (*Reservation, error)
	// GetActiveByTheaterAndDate returns the active reservations for a
	// theater on a calendar day, ordered by start time ascending.
	GetActiveByTheaterAndDate(ctx context.Context, theaterID TheaterID, date time.Time) ([]Reservation, error)
	GetAllVisibleToUser(ctx context.Context, userID UserID, pagination Pagination) ([]Reservation, *Metadata, error)
	Update(ctx context.Context, reservation *Reservation) error
	Delete(ctx context.Context, id ReservationID) error
}
