package app

import (
	"log/slog"
	"net/http"

	"github.com/ozanveral/movie-club-api/internal/domain"
)

type sessionKey string

const (
	SessionKeyUserId = sessionKey("userID")
)

type contextKey string

const loggerContextKey = contextKey("logger")

func (s sessionKey) String() string {
	return string(s)
}

func (app *Application) contextGetUserId(r *http.Request) domain.UserID {
	userId, ok := r.Context().Value(SessionKeyUserId).(int)
	if !ok {
		panic("missing user id from context")
	}

	return domain.UserID(userId)
}

func (app *Application) contextGetLogger(r *http.Request) *slog.Logger {
	logger, ok := r.Context().Value(loggerContextKey).(*slog.Logger)
	if !ok {
		return app.logger
	}

	return logger
}
