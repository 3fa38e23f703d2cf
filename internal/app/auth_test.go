package app

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/ozanveral/movie-club-api/internal/domain"
	"github.com/ozanveral/movie-club-api/internal/mailer"
	"github.com/ozanveral/movie-club-api/internal/mocks"
	"github.com/ozanveral/movie-club-api/internal/validator"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type AuthTestSuite struct {
	suite.Suite
	app      *Application
	userRepo *mocks.MockUserRepo
	mailer   *mailer.MockMailer
}

func (s *AuthTestSuite) SetupTest() {
	s.userRepo = new(mocks.MockUserRepo)
	s.mailer = mailer.NewMockMailer()

	s.app = newTestApplication(func(a *Application) {
		a.userRepo = s.userRepo
		a.mailer = s.mailer
		a.sessionManager = scs.New()
	})
}

func TestAuthSuite(t *testing.T) {
	suite.Run(t, new(AuthTestSuite))
}

func (s *AuthTestSuite) TestRegisterUser() {
	validBody := RegisterRequest{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@example.com",
		Password:  "Analytical1engine",
	}

	s.Run("weak password fails validation", func() {
		s.SetupTest()

		body := validBody
		body.Password = "short"

		w, r := executeRequest(s.T(), http.MethodPost, "/users", body)

		s.app.RegisterUser(w, r)

		s.Equal(http.StatusUnprocessableEntity, w.Code)
		checkErrorResponse(s.T(), w, http.StatusUnprocessableEntity, validator.ErrPassword)
	})

	s.Run("existing email does not leak", func() {
		s.SetupTest()
		s.userRepo.On("Create", mock.Anything, mock.Anything).
			Return(domain.ErrUserAlreadyExists)

		w, r := executeRequest(s.T(), http.MethodPost, "/users", validBody)

		s.app.RegisterUser(w, r)

		s.Equal(http.StatusBadRequest, w.Code)
		checkErrorResponse(s.T(), w, http.StatusBadRequest, "invalid input data")
	})

	s.Run("successful registration sends a welcome email", func() {
		s.SetupTest()
		s.userRepo.On("Create", mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) {
				user := args.Get(1).(*domain.User)
				user.ID = 1
			}).
			Return(nil)

		w, r := executeRequest(s.T(), http.MethodPost, "/users", validBody)

		s.app.RegisterUser(w, r)

		s.Require().Equal(http.StatusCreated, w.Code)

		var resp UserResponse
		s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
		s.Equal(1, resp.Id)
		s.Equal("ada@example.com", resp.Email)

		// the welcome mail is sent off the request goroutine
		s.Eventually(func() bool {
			return len(s.mailer.GetSentEmails()) == 1
		}, time.Second, 10*time.Millisecond)

		sent := s.mailer.GetSentEmails()[0]
		s.Equal("ada@example.com", sent.Recipient)
		s.Equal("user_welcome.tmpl", sent.TemplateFile)
	})
}

func (s *AuthTestSuite) TestLoginUser() {
	user := func() *domain.User {
		u := &domain.User{ID: 1, Email: "ada@example.com", Activated: true}
		err := u.Password.Set("Analytical1engine")
		s.Require().NoError(err)
		return u
	}

	loadSession := func(r *http.Request) *http.Request {
		ctx, err := s.app.sessionManager.Load(r.Context(), "")
		s.Require().NoError(err)
		return r.WithContext(ctx)
	}

	s.Run("unknown email", func() {
		s.SetupTest()
		s.userRepo.On("GetByEmail", mock.Anything, "ada@example.com").
			Return(nil, domain.ErrRecordNotFound)

		w, r := executeRequest(s.T(), http.MethodPost, "/sessions", LoginRequest{
			Email:    "ada@example.com",
			Password: "Analytical1engine",
		})

		s.app.LoginUser(w, loadSession(r))

		s.Equal(http.StatusUnauthorized, w.Code)
		checkErrorResponse(s.T(), w, http.StatusUnauthorized, "Invalid email or password")
	})

	s.Run("wrong password", func() {
		s.SetupTest()
		s.userRepo.On("GetByEmail", mock.Anything, "ada@example.com").Return(user(), nil)

		w, r := executeRequest(s.T(), http.MethodPost, "/sessions", LoginRequest{
			Email:    "ada@example.com",
			Password: "WrongPassword1",
		})

		s.app.LoginUser(w, loadSession(r))

		s.Equal(http.StatusUnauthorized, w.Code)
	})

	s.Run("successful login stores the user in the session", func() {
		s.SetupTest()
		s.userRepo.On("GetByEmail", mock.Anything, "ada@example.com").Return(user(), nil)

		w, r := executeRequest(s.T(), http.MethodPost, "/sessions", LoginRequest{
			Email:    "ada@example.com",
			Password: "Analytical1engine",
		})
		r = loadSession(r)

		s.app.LoginUser(w, r)

		s.Require().Equal(http.StatusOK, w.Code)
		s.Equal(1, s.app.sessionManager.GetInt(r.Context(), SessionKeyUserId.String()))
	})
}
