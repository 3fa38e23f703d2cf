package app

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/ozanveral/movie-club-api/internal/domain"
	"github.com/shopspring/decimal"
)

type MovieRequest struct {
	Title    string          `json:"title" validate:"required,min=1,max=200"`
	Overview string          `json:"overview" validate:"max=2000"`
	Year     int             `json:"year" validate:"required,release_year"`
	Rating   decimal.Decimal `json:"rating"`
	Category string          `json:"category" validate:"required,min=1,max=100"`
	Duration int             `json:"duration" validate:"required,min=1"`
}

type MovieUpdateRequest struct {
	Title    *string          `json:"title" validate:"omitempty,min=1,max=200"`
	Overview *string          `json:"overview" validate:"omitempty,max=2000"`
	Year     *int             `json:"year" validate:"omitempty,release_year"`
	Rating   *decimal.Decimal `json:"rating"`
	Category *string          `json:"category" validate:"omitempty,min=1,max=100"`
	Duration *int             `json:"duration" validate:"omitempty,min=1"`
}

type MovieResponse struct {
	Id        int             `json:"id"`
	Title     string          `json:"title"`
	Overview  string          `json:"overview"`
	Year      int             `json:"year"`
	Rating    decimal.Decimal `json:"rating"`
	Category  string          `json:"category"`
	Duration  int             `json:"duration"`
	CreatedAt time.Time       `json:"createdAt"`
	Version   int             `json:"version"`
}

type MovieListResponse struct {
	Movies   []MovieResponse  `json:"movies"`
	Metadata MetadataResponse `json:"metadata"`
}

type MetadataResponse struct {
	CurrentPage  int `json:"currentPage"`
	FirstPage    int `json:"firstPage"`
	LastPage     int `json:"lastPage"`
	PageSize     int `json:"pageSize"`
	TotalRecords int `json:"totalRecords"`
}

func toMovieResponse(movie *domain.Movie) MovieResponse {
	return MovieResponse{
		Id:        int(movie.ID),
		Title:     movie.Title,
		Overview:  movie.Overview,
		Year:      movie.Year,
		Rating:    movie.Rating,
		Category:  movie.Category,
		Duration:  movie.Duration,
		CreatedAt: movie.CreatedAt,
		Version:   movie.Version,
	}
}

func toMetadataResponse(metadata *domain.Metadata) MetadataResponse {
	if metadata == nil {
		return MetadataResponse{}
	}

	return MetadataResponse{
		CurrentPage:  metadata.CurrentPage,
		FirstPage:    metadata.FirstPage,
		LastPage:     metadata.LastPage,
		PageSize:     metadata.PageSize,
		TotalRecords: metadata.TotalRecords,
	}
}

func validRating(rating decimal.Decimal) bool {
	return !rating.IsNegative() && rating.LessThanOrEqual(decimal.NewFromInt(10))
}

func (app *Application) ListMovies(w http.ResponseWriter, r *http.Request) {
	pagination, err := app.readPagination(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	movies, metadata, err := app.movieRepo.GetAll(r.Context(), pagination)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	movieResponses := make([]MovieResponse, len(movies))
	for i, movie := range movies {
		movieResponses[i] = toMovieResponse(movie)
	}

	resp := MovieListResponse{
		Movies:   movieResponses,
		Metadata: toMetadataResponse(metadata),
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) GetMovie(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r, "movieId")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	movie, err := app.movieRepo.GetById(r.Context(), domain.MovieID(id))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	err = app.writeJSON(w, http.StatusOK, toMovieResponse(movie), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) CreateMovie(w http.ResponseWriter, r *http.Request) {
	var input MovieRequest

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

	if !validRating(input.Rating) {
		app.badRequestResponse(w, r, fmt.Errorf("rating must be between 0 and 10"))
		return
	}

	movie := domain.Movie{
		Title:    input.Title,
		Overview: input.Overview,
		Year:     input.Year,
		Rating:   input.Rating,
		Category: input.Category,
		Duration: input.Duration,
	}

	err = app.movieRepo.Create(r.Context(), &movie)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusCreated, toMovieResponse(&movie), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) UpdateMovie(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r, "movieId")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var input MovieUpdateRequest

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

	if input.Rating != nil && !validRating(*input.Rating) {
		app.badRequestResponse(w, r, fmt.Errorf("rating must be between 0 and 10"))
		return
	}

	movie, err := app.movieRepo.GetById(r.Context(), domain.MovieID(id))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	if input.Title != nil {
		movie.Title = *input.Title
	}
	if input.Overview != nil {
		movie.Overview = *input.Overview
	}
	if input.Year != nil {
		movie.Year = *input.Year
	}
	if input.Rating != nil {
		movie.Rating = *input.Rating
	}
	if input.Category != nil {
		movie.Category = *input.Category
	}
	if input.Duration != nil {
		movie.Duration = *input.Duration
	}

	err = app.movieRepo.Update(r.Context(), movie)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrEditConflict):
			app.editConflictResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	err = app.writeJSON(w, http.StatusOK, toMovieResponse(movie), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) DeleteMovie(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r, "movieId")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.movieRepo.Delete(r.Context(), domain.MovieID(id))
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
