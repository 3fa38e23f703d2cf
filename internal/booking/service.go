package booking

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/ozanveral/movie-club-api/internal/domain"
)

// Request is a proposed reservation window, before admission.
type Request struct {
	TheaterID domain.TheaterID
	MovieID   domain.MovieID
	Private   bool
	Date      time.Time
	Start     domain.TimeOfDay
	End       domain.TimeOfDay
}

// Service runs the reservation admission pipeline: referenced entities
// must exist, the window must fall within operating hours, the theater
// must be free, and the movie must fit the window. Each check
// short-circuits; nothing is written unless every check passes.
type Service struct {
	reservations domain.ReservationRepository
	movies       domain.MovieRepository
	theaters     domain.TheaterRepository
	users        domain.UserRepository
	logger       *slog.Logger

	// RevalidateOnUpdate controls whether updating a reservation re-runs
	// the admission pipeline against the new window. Defaults to true;
	// setting it to false restores the legacy behavior of replacing
	// fields without any checks.
	RevalidateOnUpdate bool
}

func NewService(
	reservations domain.ReservationRepository,
	movies domain.MovieRepository,
	theaters domain.TheaterRepository,
	users domain.UserRepository,
	logger *slog.Logger,
) *Service {
	return &Service{
		reservations:       reservations,
		movies:             movies,
		theaters:           theaters,
		users:              users,
		logger:             logger,
		RevalidateOnUpdate: true,
	}
}

// CreateReservation admits and persists a new reservation for the user.
// Business refusals are returned as *Rejection; any other error is an
// infrastructure failure.
func (s *Service) CreateReservation(ctx context.Context, req Request, userID domain.UserID) (*domain.Reservation, error) {
	if err := s.admit(ctx, req, userID, 0); err != nil {
		return nil, err
	}

	reservation := &domain.Reservation{
		UserID:    userID,
		TheaterID: req.TheaterID,
		MovieID:   req.MovieID,
		Private:   req.Private,
		Date:      req.Date,
		Start:     req.Start,
		End:       req.End,
		Status:    domain.ReservationStatusActive,
	}

	err := s.reservations.Create(ctx, reservation)
	if err != nil {
		if errors.Is(err, domain.ErrReservationOverlap) {
			// A concurrent request won the slot between our availability
			// read and this write; the exclusion constraint caught it.
			s.logger.Warn("reservation insert lost slot race",
				"theater_id", int(req.TheaterID), "date", req.Date.Format(domain.DateFormat))

			return nil, s.slotConflict(ctx, req.TheaterID, req.Date, 0)
		}

		return nil, err
	}

	return reservation, nil
}

// UpdateReservation applies the requested window to an existing
// reservation. With RevalidateOnUpdate set, the full admission pipeline
// runs first, with the reservation itself excluded from the conflict
// set so it can keep or shrink its own slot.
func (s *Service) UpdateReservation(ctx context.Context, existing *domain.Reservation, req Request) (*domain.Reservation, error) {
	if s.RevalidateOnUpdate {
		err := s.admit(ctx, req, existing.UserID, existing.ID)
		if err != nil {
			return nil, err
		}
	}

	existing.TheaterID = req.TheaterID
	existing.MovieID = req.MovieID
	existing.Private = req.Private
	existing.Date = req.Date
	existing.Start = req.Start
	existing.End = req.End

	err := s.reservations.Update(ctx, existing)
	if err != nil {
		if errors.Is(err, domain.ErrReservationOverlap) {
			return nil, s.slotConflict(ctx, req.TheaterID, req.Date, existing.ID)
		}

		return nil, err
	}

	return existing, nil
}

// CheckAvailability returns the free intervals of the theater's day.
// When a proposed window is supplied and it overlaps an existing active
// reservation, a slot-conflict Rejection carrying those intervals is
// returned instead.
func (s *Service) CheckAvailability(
	ctx context.Context,
	theaterID domain.TheaterID,
	date time.Time,
	window *Request,
) ([]FreeInterval, error) {

	if err := s.theaterExists(ctx, theaterID); err != nil {
		return nil, err
	}

	existing, err := s.reservations.GetActiveByTheaterAndDate(ctx, theaterID, date)
	if err != nil {
		return nil, err
	}

	free := FreeIntervals(existing)

	if window != nil && len(findConflicts(existing, window.Start, window.End)) > 0 {
		return nil, s.newSlotConflict(free)
	}

	return free, nil
}

// admit sequences the admission checks for a proposed window. excludeID
// removes one reservation from the conflict set, used when revalidating
// an update against the reservation's own current slot.
func (s *Service) admit(ctx context.Context, req Request, userID domain.UserID, excludeID domain.ReservationID) error {
	_, err := s.users.GetById(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return reject(KindUserNotFound, "user not found",
				fmt.Sprintf("no user exists with id %d", userID))
		}

		return err
	}

	if err := s.theaterExists(ctx, req.TheaterID); err != nil {
		return err
	}

	if rejection := ValidateWindow(req.Start, req.End); rejection != nil {
		return rejection
	}

	existing, err := s.activeReservations(ctx, req.TheaterID, req.Date, excludeID)
	if err != nil {
		return err
	}

	if len(findConflicts(existing, req.Start, req.End)) > 0 {
		return s.newSlotConflict(FreeIntervals(existing))
	}

	return s.checkDurationFits(ctx, req.MovieID, req.Start, req.End)
}

// checkDurationFits verifies that the movie's runtime fits inside the
// requested window. Window length is whole minutes by construction.
func (s *Service) checkDurationFits(ctx context.Context, movieID domain.MovieID, start, end domain.TimeOfDay) error {
	movie, err := s.movies.GetById(ctx, movieID)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return reject(KindMovieNotFound, "movie not found",
				fmt.Sprintf("no movie exists with id %d", movieID))
		}

		return err
	}

	if !movie.HasDuration() {
		return reject(KindDurationUnspecified, "movie duration not specified",
			"the selected movie does not have a defined runtime")
	}

	windowMinutes := end.Sub(start)
	if movie.Duration > windowMinutes {
		return reject(KindInsufficientDuration, "time window too short for movie",
			fmt.Sprintf("the selected window (%d minutes) is shorter than the movie's runtime (%d minutes)",
				windowMinutes, movie.Duration))
	}

	return nil
}

func (s *Service) theaterExists(ctx context.Context, theaterID domain.TheaterID) error {
	_, err := s.theaters.GetById(ctx, theaterID)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return reject(KindTheaterNotFound, "theater not found",
				fmt.Sprintf("no theater exists with id %d", theaterID))
		}

		return err
	}

	return nil
}

func (s *Service) activeReservations(
	ctx context.Context,
	theaterID domain.TheaterID,
	date time.Time,
	excludeID domain.ReservationID,
) ([]domain.Reservation, error) {

	existing, err := s.reservations.GetActiveByTheaterAndDate(ctx, theaterID, date)
	if err != nil {
		return nil, err
	}

	if excludeID == 0 {
		return existing, nil
	}

	filtered := existing[:0]
	for _, reservation := range existing {
		if reservation.ID != excludeID {
			filtered = append(filtered, reservation)
		}
	}

	return filtered, nil
}

// slotConflict rebuilds a conflict rejection from current storage state,
// used after the database exclusion constraint refuses an insert.
func (s *Service) slotConflict(ctx context.Context, theaterID domain.TheaterID, date time.Time, excludeID domain.ReservationID) error {
	existing, err := s.activeReservations(ctx, theaterID, date, excludeID)
	if err != nil {
		return err
	}

	return s.newSlotConflict(FreeIntervals(existing))
}

func (s *Service) newSlotConflict(free []FreeInterval) *Rejection {
	return &Rejection{
		Kind:         KindSlotConflict,
		Message:      "no availability for the requested window",
		Description:  "the theater already has reservations in this window, check the available slots",
		Alternatives: free,
	}
}
