package integration_test

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ozanveral/movie-club-api/internal/app"
	"github.com/ozanveral/movie-club-api/internal/mailer"
)

type TestApp struct {
	App    *app.Application
	DB     *pgxpool.Pool
	Mailer *mailer.MockMailer
}

func newTestApp(dbDSN, redisURL string) (*TestApp, error) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	mockMailer := mailer.NewMockMailer()

	cfg := app.Config{
		Port:               3000,
		Env:                "test",
		RevalidateOnUpdate: true,
		DB: app.DBConfig{
			DSN:          dbDSN,
			MaxOpenConns: 25,
			MaxIdleTime:  2 * time.Minute,
		},
		Redis: app.RedisConfig{
			URL:          redisURL,
			MaxOpenConns: 10,
			MaxIdleConns: 10,
			MaxIdleTime:  2 * time.Minute,
		},
	}

	application, err := app.NewApplication(cfg, logger, app.WithMailer(mockMailer))
	if err != nil {
		return nil, err
	}

	// a dedicated pool for seeding fixtures and asserting on state
	db, err := pgxpool.New(context.Background(), dbDSN)
	if err != nil {
		return nil, err
	}

	return &TestApp{
		App:    application,
		DB:     db,
		Mailer: mockMailer,
	}, nil
}
