package app

import (
	"errors"
	"net/http"

	"github.com/ozanveral/movie-club-api/internal/domain"
)

type MovieLikesResponse struct {
	MovieId int `json:"movieId"`
	Likes   int `json:"likes"`
}

func (app *Application) GetMovieLikes(w http.ResponseWriter, r *http.Request) {
	movieId, err := app.readIDParam(r, "movieId")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if _, err := app.movieRepo.GetById(r.Context(), domain.MovieID(movieId)); err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	likes, err := app.likeRepo.CountByMovie(r.Context(), domain.MovieID(movieId))
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := MovieLikesResponse{
		MovieId: movieId,
		Likes:   likes,
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) LikeMovie(w http.ResponseWriter, r *http.Request) {
	movieId, err := app.readIDParam(r, "movieId")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	userId := app.contextGetUserId(r)

	err = app.likeRepo.Add(r.Context(), userId, domain.MovieID(movieId))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrMovieAlreadyLiked):
			// liking twice is a no-op
			w.WriteHeader(http.StatusNoContent)
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (app *Application) UnlikeMovie(w http.ResponseWriter, r *http.Request) {
	movieId, err := app.readIDParam(r, "movieId")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	userId := app.contextGetUserId(r)

	err = app.likeRepo.Remove(r.Context(), userId, domain.MovieID(movieId))
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
