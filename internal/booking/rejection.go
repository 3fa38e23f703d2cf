package booking

import "fmt"

// RejectionKind classifies why a proposed reservation was refused.
type RejectionKind string

const (
	KindOutOfHours           RejectionKind = "out_of_hours"
	KindSlotConflict         RejectionKind = "slot_conflict"
	KindMovieNotFound        RejectionKind = "movie_not_found"
	KindTheaterNotFound      RejectionKind = "theater_not_found"
	KindUserNotFound         RejectionKind = "user_not_found"
	KindDurationUnspecified  RejectionKind = "duration_unspecified"
	KindInsufficientDuration RejectionKind = "insufficient_duration"
)

// Rejection is a business-level refusal of a reservation request. It is
// distinct from infrastructure errors: a Rejection is always safe to
// show to the caller, and for slot conflicts it carries the free
// intervals of the day as actionable alternatives.
type Rejection struct {
	Kind         RejectionKind
	Message      string
	Description  string
	Alternatives []FreeInterval
}

func (r *Rejection) Error() string {
	return fmt.Sprintf("%s: %s", r.Kind, r.Message)
}

func reject(kind RejectionKind, message, description string) *Rejection {
	return &Rejection{
		Kind:        kind,
		Message:     message,
		Description: description,
	}
}
