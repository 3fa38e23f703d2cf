package booking

import (
	"sort"

	"github.com/ozanveral/movie-club-api/internal/domain"
)

// FreeInterval is a contiguous span within operating hours not covered
// by any active reservation. Like reservations it is half-open.
type FreeInterval struct {
	Start domain.TimeOfDay `json:"start_time"`
	End   domain.TimeOfDay `json:"end_time"`
}

// FreeIntervals computes the free sub-intervals of [OpenTime, CloseTime)
// left by the given reservations. The input does not need to be sorted.
// The result is sorted and pairwise disjoint, and together with the
// booked windows it partitions the operating day.
func FreeIntervals(reservations []domain.Reservation) []FreeInterval {
	sorted := make([]domain.Reservation, len(reservations))
	copy(sorted, reservations)

	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Start.Before(sorted[j].Start)
	})

	free := []FreeInterval{}
	cursor := OpenTime

	for _, reservation := range sorted {
		if cursor.Before(reservation.Start) {
			free = append(free, FreeInterval{Start: cursor, End: reservation.Start})
		}
		if cursor.Before(reservation.End) {
			cursor = reservation.End
		}
	}

	if cursor.Before(CloseTime) {
		free = append(free, FreeInterval{Start: cursor, End: CloseTime})
	}

	return free
}

// findConflicts returns the reservations whose windows overlap the
// proposed [start, end) window.
func findConflicts(reservations []domain.Reservation, start, end domain.TimeOfDay) []domain.Reservation {
	var conflicts []domain.Reservation

	for _, reservation := range reservations {
		if reservation.Overlaps(start, end) {
			conflicts = append(conflicts, reservation)
		}
	}

	return conflicts
}
