package app

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/riandyrn/otelchi"
)

func (app *Application) Routes() http.Handler {
	r := chi.NewRouter()

	r.NotFound(app.notFoundHandler)

	r.Use(middleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(otelchi.Middleware("movie-club-api", otelchi.WithChiRoutes(r)))
	r.Use(app.requestLogger)
	r.Use(app.recoverPanic)
	r.Use(app.sessionManager.LoadAndSave)

	r.Get("/health", app.GetHealth)

	r.Post("/users", app.RegisterUser)
	r.Post("/sessions", app.LoginUser)
	r.Delete("/sessions", app.LogoutUser)

	r.With(app.requireAuthentication).Get("/users/me", app.GetCurrentUser)

	r.Route("/movies", func(r chi.Router) {
		r.Get("/", app.ListMovies)
		r.With(app.requireAuthentication).Post("/", app.CreateMovie)

		r.Route("/{movieId}", func(r chi.Router) {
			r.Get("/", app.GetMovie)
			r.With(app.requireAuthentication).Patch("/", app.UpdateMovie)
			r.With(app.requireAuthentication).Delete("/", app.DeleteMovie)

			r.Get("/comments", app.ListMovieComments)
			r.With(app.requireAuthentication).Post("/comments", app.CreateComment)

			r.Get("/likes", app.GetMovieLikes)
			r.With(app.requireAuthentication).Put("/likes", app.LikeMovie)
			r.With(app.requireAuthentication).Delete("/likes", app.UnlikeMovie)
		})
	})

	r.With(app.requireAuthentication).Route("/comments/{commentId}", func(r chi.Router) {
		r.Patch("/", app.UpdateComment)
		r.Delete("/", app.DeleteComment)
	})

	r.Route("/theaters", func(r chi.Router) {
		r.Get("/", app.ListTheaters)
		r.With(app.requireAuthentication).Post("/", app.CreateTheater)

		r.Route("/{theaterId}", func(r chi.Router) {
			r.Get("/", app.GetTheater)
			r.With(app.requireAuthentication).Patch("/", app.UpdateTheater)
			r.With(app.requireAuthentication).Delete("/", app.DeleteTheater)

			r.Get("/availability", app.GetTheaterAvailability)
		})
	})

	r.With(app.requireAuthentication).Route("/reservations", func(r chi.Router) {
		r.Get("/", app.ListReservations)
		r.Post("/", app.CreateReservation)

		r.Route("/{reservationId}", func(r chi.Router) {
			r.Get("/", app.GetReservation)
			r.Patch("/", app.UpdateReservation)
			r.Delete("/", app.DeleteReservation)
		})
	})

	return r
}
