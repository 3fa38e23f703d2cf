package integration_test

const (
	TestUserPassword = "Test123pass"

	TestMovieTitle    = "Interstellar"
	TestMovieDuration = 169

	TestTheaterName = "Grand Hall"
)
