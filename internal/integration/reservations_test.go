package integration_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type ReservationTestSuite struct {
	BaseSuite
}

func TestReservationSuite(t *testing.T) {
	if testing.Short() {
		t.Skip()
	}
	suite.Run(t, new(ReservationTestSuite))
}

func reservationBody(theaterId, movieId int, date, start, end string) *strings.Reader {
	return strings.NewReader(fmt.Sprintf(
		`{"theaterId": %d, "movieId": %d, "date": %q, "startTime": %q, "endTime": %q}`,
		theaterId, movieId, date, start, end))
}

func (s *ReservationTestSuite) TestReservationLifecycle() {
	executeSQLFile(s.T(), s.app.DB, "testdata/booking_up.sql")
	executeSQLFile(s.T(), s.app.DB, "testdata/reservations_down.sql")

	cookies := s.app.authenticatedUserCookies(s.T())
	date := "2026-10-01"

	scenarios := []Scenario{
		{
			Name:             "returns 401 if user is not authenticated",
			Method:           "POST",
			URL:              "/reservations",
			Body:             reservationBody(1, 1, date, "14:00", "17:00"),
			ExpectedStatus:   http.StatusUnauthorized,
			ExpectedResponse: `{"message": "You must be authenticated to access this resource"}`,
		},
		{
			Name:           "rejects a window outside operating hours",
			Method:         "POST",
			URL:            "/reservations",
			Body:           reservationBody(1, 1, date, "08:00", "10:00"),
			Cookies:        cookies,
			ExpectedStatus: http.StatusBadRequest,
			ExpectedResponse: `{
				"message": "time window not allowed",
				"description": "reservations must fall between 09:00 and 22:00",
				"data": []
			}`,
		},
		{
			Name:           "rejects a window shorter than the movie",
			Method:         "POST",
			URL:            "/reservations",
			Body:           reservationBody(1, 1, date, "14:00", "15:30"),
			Cookies:        cookies,
			ExpectedStatus: http.StatusBadRequest,
			ExpectedResponse: `{
				"message": "time window too short for movie",
				"description": "the selected window (90 minutes) is shorter than the movie's runtime (169 minutes)",
				"data": []
			}`,
		},
		{
			Name:           "rejects a movie without a known runtime",
			Method:         "POST",
			URL:            "/reservations",
			Body:           reservationBody(1, 3, date, "14:00", "17:00"),
			Cookies:        cookies,
			ExpectedStatus: http.StatusBadRequest,
			ExpectedResponse: `{
				"message": "movie duration not specified",
				"description": "the selected movie does not have a defined runtime",
				"data": []
			}`,
		},
		{
			Name:           "creates an admitted reservation",
			Method:         "POST",
			URL:            "/reservations",
			Body:           reservationBody(1, 1, date, "14:00", "17:00"),
			Cookies:        cookies,
			ExpectedStatus: http.StatusCreated,
			ExpectedResponse: `{
				"id": 1,
				"theaterId": 1,
				"movieId": 1,
				"isPrivate": false,
				"date": "2026-10-01",
				"startTime": "14:00",
				"endTime": "17:00",
				"status": "active"
			}`,
		},
		{
			Name:           "rejects an overlapping window with the day's free slots",
			Method:         "POST",
			URL:            "/reservations",
			Body:           reservationBody(1, 2, date, "16:00", "18:00"),
			Cookies:        cookies,
			ExpectedStatus: http.StatusConflict,
			ExpectedResponse: `{
				"message": "no availability for the requested window",
				"description": "the theater already has reservations in this window, check the available slots",
				"data": [
					{"start_time": "09:00", "end_time": "14:00"},
					{"start_time": "17:00", "end_time": "22:00"}
				]
			}`,
		},
		{
			Name:           "other theaters are unaffected",
			Method:         "POST",
			URL:            "/reservations",
			Body:           reservationBody(2, 2, date, "16:00", "18:00"),
			Cookies:        cookies,
			ExpectedStatus: http.StatusCreated,
		},
		{
			Name:           "back-to-back window is admitted",
			Method:         "POST",
			URL:            "/reservations",
			Body:           reservationBody(1, 2, date, "17:00", "18:00"),
			Cookies:        cookies,
			ExpectedStatus: http.StatusCreated,
		},
		{
			Name:           "availability reports the remaining gaps",
			Method:         "GET",
			URL:            "/theaters/1/availability?date=" + date,
			ExpectedStatus: http.StatusOK,
			ExpectedResponse: `{
				"theaterId": 1,
				"date": "2026-10-01",
				"freeIntervals": [
					{"start_time": "09:00", "end_time": "14:00"},
					{"start_time": "18:00", "end_time": "22:00"}
				]
			}`,
		},
		{
			Name:           "updating into a taken slot is refused",
			Method:         "PATCH",
			URL:            "/reservations/3",
			Body:           strings.NewReader(`{"startTime": "16:30", "endTime": "17:30"}`),
			Cookies:        cookies,
			ExpectedStatus: http.StatusConflict,
		},
		{
			Name:           "shrinking a reservation within its own slot succeeds",
			Method:         "PATCH",
			URL:            "/reservations/1",
			Body:           strings.NewReader(`{"movieId": 2, "startTime": "14:00", "endTime": "16:00"}`),
			Cookies:        cookies,
			ExpectedStatus: http.StatusOK,
			ExpectedResponse: `{
				"id": 1,
				"theaterId": 1,
				"movieId": 2,
				"isPrivate": false,
				"date": "2026-10-01",
				"startTime": "14:00",
				"endTime": "16:00",
				"status": "active"
			}`,
		},
		{
			Name:           "deleting a reservation frees its slot",
			Method:         "DELETE",
			URL:            "/reservations/1",
			Cookies:        cookies,
			ExpectedStatus: http.StatusNoContent,
			AfterTestFunc: func(t testing.TB, app *TestApp, _ *http.Response) {
				var count int
				err := app.DB.QueryRow(context.Background(),
					"SELECT count(*) FROM reservations WHERE theater_id = 1").Scan(&count)
				require.NoError(t, err)
				require.Equal(t, 1, count)
			},
		},
		{
			Name:           "freed slot can be booked again",
			Method:         "POST",
			URL:            "/reservations",
			Body:           reservationBody(1, 1, date, "13:00", "16:30"),
			Cookies:        cookies,
			ExpectedStatus: http.StatusCreated,
		},
	}

	for _, scenario := range scenarios {
		scenario.Run(s.T(), s.app)
	}
}

// Two concurrent requests for the same slot must resolve to exactly one
// booking; the exclusion constraint closes the read-then-write race.
func (s *ReservationTestSuite) TestConcurrentBookingRace() {
	executeSQLFile(s.T(), s.app.DB, "testdata/booking_up.sql")
	executeSQLFile(s.T(), s.app.DB, "testdata/reservations_down.sql")

	cookies := s.app.authenticatedUserCookies(s.T())

	statuses := make([]int, 2)
	var wg sync.WaitGroup

	for i := range statuses {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()

			req, err := prepareRequest(http.MethodPost, "/reservations",
				reservationBody(1, 2, "2026-10-02", "10:00", "12:00"), cookies)
			require.NoError(s.T(), err)

			rec := httptest.NewRecorder()
			s.app.App.Routes().ServeHTTP(rec, req)
			statuses[i] = rec.Code
		}(i)
	}

	wg.Wait()

	s.ElementsMatch([]int{http.StatusCreated, http.StatusConflict}, statuses)

	var count int
	err := s.app.DB.QueryRow(context.Background(),
		"SELECT count(*) FROM reservations WHERE status = 'active'").Scan(&count)
	s.Require().NoError(err)
	s.Equal(1, count)
}

func (s *ReservationTestSuite) TestListReservationsVisibility() {
	executeSQLFile(s.T(), s.app.DB, "testdata/booking_up.sql")
	executeSQLFile(s.T(), s.app.DB, "testdata/reservations_down.sql")

	owner := s.app.authenticatedUserCookies(s.T())
	other := s.app.authenticatedUserCookies(s.T())

	create := func(cookies []*http.Cookie, body string) {
		req, err := prepareRequest(http.MethodPost, "/reservations", strings.NewReader(body), cookies)
		require.NoError(s.T(), err)

		rec := httptest.NewRecorder()
		s.app.App.Routes().ServeHTTP(rec, req)
		require.Equal(s.T(), http.StatusCreated, rec.Code, rec.Body.String())
	}

	create(owner, `{"theaterId": 1, "movieId": 2, "date": "2026-10-03", "startTime": "10:00", "endTime": "11:00", "isPrivate": false}`)
	create(owner, `{"theaterId": 1, "movieId": 2, "date": "2026-10-03", "startTime": "12:00", "endTime": "13:00", "isPrivate": true}`)

	req, err := prepareRequest(http.MethodGet, "/reservations", nil, other)
	require.NoError(s.T(), err)

	rec := httptest.NewRecorder()
	s.app.App.Routes().ServeHTTP(rec, req)
	s.Require().Equal(http.StatusOK, rec.Code)

	var resp struct {
		Reservations []struct {
			Id        int  `json:"id"`
			IsPrivate bool `json:"isPrivate"`
		} `json:"reservations"`
	}
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))

	// the other user sees only the public reservation
	s.Require().Len(resp.Reservations, 1)
	s.False(resp.Reservations[0].IsPrivate)
}
