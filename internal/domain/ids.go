package domain

// Distinct identifier types per entity so a movie id can never be passed
// where a theater id is expected.
type (
	UserID        int
	MovieID       int
	TheaterID     int
	ReservationID int
	CommentID     int
)
