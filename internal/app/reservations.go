package app

import (
	"errors"
	"net/http"
	"time"

	"github.com/ozanveral/movie-club-api/internal/booking"
	"github.com/ozanveral/movie-club-api/internal/domain"
)

type ReservationRequest struct {
	TheaterId int    `json:"theaterId" validate:"required,min=1"`
	MovieId   int    `json:"movieId" validate:"required,min=1"`
	IsPrivate bool   `json:"isPrivate"`
	Date      string `json:"date" validate:"required,date_ymd"`
	StartTime string `json:"startTime" validate:"required,time_hhmm"`
	EndTime   string `json:"endTime" validate:"required,time_hhmm"`
}

type ReservationUpdateRequest struct {
	TheaterId *int    `json:"theaterId" validate:"omitempty,min=1"`
	MovieId   *int    `json:"movieId" validate:"omitempty,min=1"`
	IsPrivate *bool   `json:"isPrivate"`
	Date      *string `json:"date" validate:"omitempty,date_ymd"`
	StartTime *string `json:"startTime" validate:"omitempty,time_hhmm"`
	EndTime   *string `json:"endTime" validate:"omitempty,time_hhmm"`
}

type ReservationResponse struct {
	Id        int       `json:"id"`
	UserId    int       `json:"userId"`
	TheaterId int       `json:"theaterId"`
	MovieId   int       `json:"movieId"`
	IsPrivate bool      `json:"isPrivate"`
	Date      string    `json:"date"`
	StartTime string    `json:"startTime"`
	EndTime   string    `json:"endTime"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type ReservationListResponse struct {
	Reservations []ReservationResponse `json:"reservations"`
	Metadata     MetadataResponse      `json:"metadata"`
}

func toReservationResponse(reservation *domain.Reservation) ReservationResponse {
	return ReservationResponse{
		Id:        int(reservation.ID),
		UserId:    int(reservation.UserID),
		TheaterId: int(reservation.TheaterID),
		MovieId:   int(reservation.MovieID),
		IsPrivate: reservation.Private,
		Date:      reservation.Date.Format(domain.DateFormat),
		StartTime: reservation.Start.String(),
		EndTime:   reservation.End.String(),
		Status:    string(reservation.Status),
		CreatedAt: reservation.CreatedAt,
		UpdatedAt: reservation.UpdatedAt,
	}
}

// toBookingRequest converts validated wire fields into a booking
// request. The date and time formats have already passed validation,
// so parse failures here are programming errors.
func toBookingRequest(input ReservationRequest) (booking.Request, error) {
	date, err := time.Parse(domain.DateFormat, input.Date)
	if err != nil {
		return booking.Request{}, err
	}

	start, err := domain.ParseTimeOfDay(input.StartTime)
	if err != nil {
		return booking.Request{}, err
	}

	end, err := domain.ParseTimeOfDay(input.EndTime)
	if err != nil {
		return booking.Request{}, err
	}

	return booking.Request{
		TheaterID: domain.TheaterID(input.TheaterId),
		MovieID:   domain.MovieID(input.MovieId),
		Private:   input.IsPrivate,
		Date:      date,
		Start:     start,
		End:       end,
	}, nil
}

func (app *Application) ListReservations(w http.ResponseWriter, r *http.Request) {
	pagination, err := app.readPagination(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	userId := app.contextGetUserId(r)

	reservations, metadata, err := app.reservationRepo.GetAllVisibleToUser(r.Context(), userId, pagination)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	reservationResponses := make([]ReservationResponse, len(reservations))
	for i := range reservations {
		reservationResponses[i] = toReservationResponse(&reservations[i])
	}

	resp := ReservationListResponse{
		Reservations: reservationResponses,
		Metadata:     toMetadataResponse(metadata),
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) CreateReservation(w http.ResponseWriter, r *http.Request) {
	var input ReservationRequest

	err := app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.validator.Struct(input)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	req, err := toBookingRequest(input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	reservation, err := app.booking.CreateReservation(r.Context(), req, app.contextGetUserId(r))
	if err != nil {
		var rejection *booking.Rejection
		switch {
		case errors.As(err, &rejection):
			app.rejectionResponse(w, r, rejection)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	err = app.writeJSON(w, http.StatusCreated, toReservationResponse(reservation), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) GetReservation(w http.ResponseWriter, r *http.Request) {
	reservation, ok := app.loadOwnedReservation(w, r, false)
	if !ok {
		return
	}

	err := app.writeJSON(w, http.StatusOK, toReservationResponse(reservation), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) UpdateReservation(w http.ResponseWriter, r *http.Request) {
	reservation, ok := app.loadOwnedReservation(w, r, true)
	if !ok {
		return
	}

	var input ReservationUpdateRequest

	err := app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.validator.Struct(input)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	// Start from the stored reservation and overlay the provided
	// fields, so a partial update still revalidates the full window.
	merged := ReservationRequest{
		TheaterId: int(reservation.TheaterID),
		MovieId:   int(reservation.MovieID),
		IsPrivate: reservation.Private,
		Date:      reservation.Date.Format(domain.DateFormat),
		StartTime: reservation.Start.String(),
		EndTime:   reservation.End.String(),
	}

	if input.TheaterId != nil {
		merged.TheaterId = *input.TheaterId
	}
	if input.MovieId != nil {
		merged.MovieId = *input.MovieId
	}
	if input.IsPrivate != nil {
		merged.IsPrivate = *input.IsPrivate
	}
	if input.Date != nil {
		merged.Date = *input.Date
	}
	if input.StartTime != nil {
		merged.StartTime = *input.StartTime
	}
	if input.EndTime != nil {
		merged.EndTime = *input.EndTime
	}

	req, err := toBookingRequest(merged)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	updated, err := app.booking.UpdateReservation(r.Context(), reservation, req)
	if err != nil {
		var rejection *booking.Rejection
		if errors.As(err, &rejection) {
			app.rejectionResponse(w, r, rejection)
		} else {
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	err = app.writeJSON(w, http.StatusOK, toReservationResponse(updated), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) DeleteReservation(w http.ResponseWriter, r *http.Request) {
	reservation, ok := app.loadOwnedReservation(w, r, true)
	if !ok {
		return
	}

	err := app.reservationRepo.Delete(r.Context(), reservation.ID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// loadOwnedReservation fetches the reservation in the URL and enforces
// visibility: owners always see their reservations, others only public
// ones. With requireOwner set, non-owners get a 403 instead.
func (app *Application) loadOwnedReservation(w http.ResponseWriter, r *http.Request, requireOwner bool) (*domain.Reservation, bool) {
	id, err := app.readIDParam(r, "reservationId")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return nil, false
	}

	reservation, err := app.reservationRepo.GetById(r.Context(), domain.ReservationID(id))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return nil, false
	}

	userId := app.contextGetUserId(r)

	if reservation.UserID != userId {
		if requireOwner {
			app.forbiddenResponse(w, r)
			return nil, false
		}

		if reservation.Private {
			app.notFoundResponse(w, r)
			return nil, false
		}
	}

	return reservation, true
}
