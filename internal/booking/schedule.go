package booking

import (
	"fmt"

	"github.com/ozanveral/movie-club-api/internal/domain"
)

// Theaters operate on fixed hours, process-wide.
var (
	OpenTime  = domain.NewTimeOfDay(9, 0)
	CloseTime = domain.NewTimeOfDay(22, 0)
)

// ValidateWindow checks a proposed [start, end) window against the
// operating hours and basic ordering. It consults no storage. A nil
// result means the window is acceptable.
func ValidateWindow(start, end domain.TimeOfDay) *Rejection {
	if start.Before(OpenTime) || end.After(CloseTime) || end.Before(start) {
		return reject(
			KindOutOfHours,
			"time window not allowed",
			fmt.Sprintf("reservations must fall between %s and %s", OpenTime, CloseTime),
		)
	}

	return nil
}
