package app

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/ozanveral/movie-club-api/internal/booking"
	"github.com/ozanveral/movie-club-api/internal/mailer"
	"github.com/ozanveral/movie-club-api/internal/mocks"
	"github.com/ozanveral/movie-club-api/internal/validator"
)

func newTestApplication(opts ...func(*Application)) *Application {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	userRepo := &mocks.MockUserRepo{}
	movieRepo := &mocks.MockMovieRepo{}
	theaterRepo := &mocks.MockTheaterRepo{}
	reservationRepo := &mocks.MockReservationRepo{}

	app := &Application{
		validator:       validator.NewValidator(),
		logger:          logger,
		mailer:          mailer.NewMockMailer(),
		userRepo:        userRepo,
		movieRepo:       movieRepo,
		theaterRepo:     theaterRepo,
		reservationRepo: reservationRepo,
		commentRepo:     &mocks.MockCommentRepo{},
		likeRepo:        &mocks.MockLikeRepo{},
	}

	for _, opt := range opts {
		opt(app)
	}

	app.booking = booking.NewService(
		app.reservationRepo, app.movieRepo, app.theaterRepo, app.userRepo, logger)

	return app
}

func executeRequest(t *testing.T, method, url string, body any) (*httptest.ResponseRecorder, *http.Request) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			t.Fatal(err)
		}
		reader = bytes.NewReader(jsonData)
	}

	r := httptest.NewRequest(method, url, reader)
	r.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	return w, r
}

// withURLParams injects chi route parameters for handlers invoked
// directly, outside a router.
func withURLParams(r *http.Request, params map[string]string) *http.Request {
	routeCtx := chi.NewRouteContext()
	for key, value := range params {
		routeCtx.URLParams.Add(key, value)
	}

	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, routeCtx))
}

// withUser marks the request as authenticated, the way the
// authentication middleware would.
func withUser(r *http.Request, userId int) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), SessionKeyUserId, userId))
}

func checkErrorResponse(t *testing.T, w *httptest.ResponseRecorder, wantStatus int, wantErrMessage string) {
	t.Helper()

	if wantStatus >= 200 && wantStatus < 300 {
		return
	}

	switch wantStatus {
	case http.StatusUnprocessableEntity:
		var validationResp ValidationErrorResponse
		if err := json.Unmarshal(w.Body.Bytes(), &validationResp); err != nil {
			t.Fatalf("Failed to decode validation error response: %v", err)
		}

		errorSet := make(map[string]bool)
		for _, vErr := range validationResp.ValidationErrors {
			errorSet[vErr.Issue] = true
		}

		if !errorSet[wantErrMessage] {
			t.Errorf("Expected validation error message '%s' not found in response", wantErrMessage)
		}

	default:
		var errorResp ErrorResponse
		if err := json.Unmarshal(w.Body.Bytes(), &errorResp); err != nil {
			t.Fatalf("Failed to decode error response: %v", err)
		}

		if wantErrMessage != "" && errorResp.Message != wantErrMessage {
			t.Errorf("Error message = %v, want %v", errorResp.Message, wantErrMessage)
		}
	}
}

func ptr[T any](v T) *T {
	return &v
}
