package app

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/ozanveral/movie-club-api/internal/booking"
	"github.com/ozanveral/movie-club-api/internal/domain"
)

type TheaterRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=200"`
	MaxCapacity int    `json:"maxCapacity" validate:"required,min=1"`
	Projection  string `json:"projection" validate:"max=100"`
	ScreenSize  string `json:"screenSize" validate:"max=100"`
	Description string `json:"description" validate:"max=2000"`
}

type TheaterUpdateRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=200"`
	MaxCapacity *int    `json:"maxCapacity" validate:"omitempty,min=1"`
	Projection  *string `json:"projection" validate:"omitempty,max=100"`
	ScreenSize  *string `json:"screenSize" validate:"omitempty,max=100"`
	Description *string `json:"description" validate:"omitempty,max=2000"`
}

type TheaterResponse struct {
	Id          int       `json:"id"`
	Name        string    `json:"name"`
	MaxCapacity int       `json:"maxCapacity"`
	Projection  string    `json:"projection"`
	ScreenSize  string    `json:"screenSize"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	Version     int       `json:"version"`
}

type TheaterListResponse struct {
	Theaters []TheaterResponse `json:"theaters"`
	Metadata MetadataResponse  `json:"metadata"`
}

type AvailabilityResponse struct {
	TheaterId     int                    `json:"theaterId"`
	Date          string                 `json:"date"`
	FreeIntervals []booking.FreeInterval `json:"freeIntervals"`
}

func toTheaterResponse(theater *domain.Theater) TheaterResponse {
	return TheaterResponse{
		Id:          int(theater.ID),
		Name:        theater.Name,
		MaxCapacity: theater.MaxCapacity,
		Projection:  theater.Projection,
		ScreenSize:  theater.ScreenSize,
		Description: theater.Description,
		CreatedAt:   theater.CreatedAt,
		Version:     theater.Version,
	}
}

func (app *Application) ListTheaters(w http.ResponseWriter, r *http.Request) {
	pagination, err := app.readPagination(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	theaters, metadata, err := app.theaterRepo.GetAll(r.Context(), pagination)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	theaterResponses := make([]TheaterResponse, len(theaters))
	for i, theater := range theaters {
		theaterResponses[i] = toTheaterResponse(theater)
	}

	resp := TheaterListResponse{
		Theaters: theaterResponses,
		Metadata: toMetadataResponse(metadata),
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) GetTheater(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r, "theaterId")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	theater, err := app.theaterRepo.GetById(r.Context(), domain.TheaterID(id))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	err = app.writeJSON(w, http.StatusOK, toTheaterResponse(theater), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) CreateTheater(w http.ResponseWriter, r *http.Request) {
	var input TheaterRequest

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

	theater := domain.Theater{
		Name:        input.Name,
		MaxCapacity: input.MaxCapacity,
		Projection:  input.Projection,
		ScreenSize:  input.ScreenSize,
		Description: input.Description,
	}

	err = app.theaterRepo.Create(r.Context(), &theater)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusCreated, toTheaterResponse(&theater), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) UpdateTheater(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r, "theaterId")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var input TheaterUpdateRequest

	err = app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.validator.Struct(input)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	theater, err := app.theaterRepo.GetById(r.Context(), domain.TheaterID(id))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	if input.Name != nil {
		theater.Name = *input.Name
	}
	if input.MaxCapacity != nil {
		theater.MaxCapacity = *input.MaxCapacity
	}
	if input.Projection != nil {
		theater.Projection = *input.Projection
	}
	if input.ScreenSize != nil {
		theater.ScreenSize = *input.ScreenSize
	}
	if input.Description != nil {
		theater.Description = *input.Description
	}

	err = app.theaterRepo.Update(r.Context(), theater)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrEditConflict):
			app.editConflictResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	err = app.writeJSON(w, http.StatusOK, toTheaterResponse(theater), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) DeleteTheater(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r, "theaterId")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.theaterRepo.Delete(r.Context(), domain.TheaterID(id))
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

// GetTheaterAvailability lists the free intervals of a theater's day.
// An optional start/end pair proposes a window; when it collides with
// an existing reservation the conflict response carries the day's free
// intervals as alternatives.
func (app *Application) GetTheaterAvailability(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r, "theaterId")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	date, err := app.readDateParam(r, "date")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	start, err := app.readTimeOfDayParam(r, "start")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	end, err := app.readTimeOfDayParam(r, "end")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if (start == nil) != (end == nil) {
		app.badRequestResponse(w, r, fmt.Errorf("start and end must be provided together"))
		return
	}

	var window *booking.Request
	if start != nil {
		window = &booking.Request{
			TheaterID: domain.TheaterID(id),
			Date:      date,
			Start:     *start,
			End:       *end,
		}
	}

	free, err := app.booking.CheckAvailability(r.Context(), domain.TheaterID(id), date, window)
	if err != nil {
		var rejection *booking.Rejection
		switch {
		case errors.As(err, &rejection):
			if rejection.Kind == booking.KindTheaterNotFound {
				app.notFoundResponse(w, r)
				return
			}
			app.rejectionResponse(w, r, rejection)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	resp := AvailabilityResponse{
		TheaterId:     id,
		Date:          date.Format(domain.DateFormat),
		FreeIntervals: free,
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
