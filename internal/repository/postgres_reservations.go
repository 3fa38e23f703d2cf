package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ozanveral/movie-club-api/internal/domain"
)

type PostgresReservationRepository struct {
	db *pgxpool.Pool
}

func NewPostgresReservationRepository(db *pgxpool.Pool) *PostgresReservationRepository {
	return &PostgresReservationRepository{
		db: db,
	}
}

// Create inserts the reservation, anchoring its clock times to the
// reservation date. The exclusion constraint on active reservations is
// the backstop against two concurrent requests booking overlapping
// windows: the loser gets domain.ErrReservationOverlap.
func (p *PostgresReservationRepository) Create(ctx context.Context, reservation *domain.Reservation) error {
	query := `
		INSERT INTO reservations (user_id, theater_id, movie_id, is_private, reservation_date, start_time, end_time, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at
	`

	err := p.db.QueryRow(
		ctx,
		query,
		int(reservation.UserID),
		int(reservation.TheaterID),
		int(reservation.MovieID),
		reservation.Private,
		reservation.Date,
		reservation.Start.On(reservation.Date),
		reservation.End.On(reservation.Date),
		string(reservation.Status),
	).Scan(&reservation.ID, &reservation.CreatedAt, &reservation.UpdatedAt)

	if err != nil {
		return mapReservationError(err)
	}

	return nil
}

func (p *PostgresReservationRepository) GetById(ctx context.Context, id domain.ReservationID) (*domain.Reservation, error) {
	query := `
		SELECT id, user_id, theater_id, movie_id, is_private, reservation_date, start_time, end_time, status, created_at, updated_at
		FROM reservations
		WHERE id = $1
	`

	reservation, err := scanReservation(p.db.QueryRow(ctx, query, int(id)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	return reservation, nil
}

func (p *PostgresReservationRepository) GetActiveByTheaterAndDate(
	ctx context.Context,
	theaterID domain.TheaterID,
	date time.Time) ([]domain.Reservation, error) {

	query := `
		SELECT id, user_id, theater_id, movie_id, is_private, reservation_date, start_time, end_time, status, created_at, updated_at
		FROM reservations
		WHERE theater_id = $1 AND reservation_date = $2 AND status = 'active'
		ORDER BY start_time ASC
	`

	rows, err := p.db.Query(ctx, query, int(theaterID), date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectReservations(rows)
}

// GetAllVisibleToUser returns the user's own reservations plus every
// public reservation of other members, newest first.
func (p *PostgresReservationRepository) GetAllVisibleToUser(
	ctx context.Context,
	userID domain.UserID,
	pagination domain.Pagination) ([]domain.Reservation, *domain.Metadata, error) {

	query := `
		SELECT count(*) OVER(), id, user_id, theater_id, movie_id, is_private, reservation_date, start_time, end_time, status, created_at, updated_at
		FROM reservations
		WHERE user_id = $1 OR is_private = false
		ORDER BY reservation_date DESC, start_time DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := p.db.Query(ctx, query, int(userID), pagination.Limit(), pagination.Offset())
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	reservations := make([]domain.Reservation, 0)
	totalRecords := 0

	for rows.Next() {
		var (
			reservation      domain.Reservation
			startTime        time.Time
			endTime          time.Time
		)

		err := rows.Scan(
			&totalRecords,
			&reservation.ID,
			&reservation.UserID,
			&reservation.TheaterID,
			&reservation.MovieID,
			&reservation.Private,
			&reservation.Date,
			&startTime,
			&endTime,
			&reservation.Status,
			&reservation.CreatedAt,
			&reservation.UpdatedAt,
		)
		if err != nil {
			return nil, nil, err
		}

		reservation.Start = domain.TimeOfDayOf(startTime)
		reservation.End = domain.TimeOfDayOf(endTime)

		reservations = append(reservations, reservation)
	}

	if err = rows.Err(); err != nil {
		return nil, nil, err
	}

	metadata := domain.NewMetadata(totalRecords, pagination.Page, pagination.PageSize)

	return reservations, metadata, nil
}

func (p *PostgresReservationRepository) Update(ctx context.Context, reservation *domain.Reservation) error {
	query := `
		UPDATE reservations
		SET theater_id = $1, movie_id = $2, is_private = $3, reservation_date = $4, start_time = $5, end_time = $6, status = $7, updated_at = now()
		WHERE id = $8
		RETURNING updated_at
	`

	err := p.db.QueryRow(
		ctx,
		query,
		int(reservation.TheaterID),
		int(reservation.MovieID),
		reservation.Private,
		reservation.Date,
		reservation.Start.On(reservation.Date),
		reservation.End.On(reservation.Date),
		string(reservation.Status),
		int(reservation.ID),
	).Scan(&reservation.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrRecordNotFound
		}

		return mapReservationError(err)
	}

	return nil
}

func (p *PostgresReservationRepository) Delete(ctx context.Context, id domain.ReservationID) error {
	result, err := p.db.Exec(ctx, `DELETE FROM reservations WHERE id = $1`, int(id))
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return domain.ErrRecordNotFound
	}

	return nil
}

func scanReservation(row pgx.Row) (*domain.Reservation, error) {
	var (
		reservation domain.Reservation
		startTime   time.Time
		endTime     time.Time
	)

	err := row.Scan(
		&reservation.ID,
		&reservation.UserID,
		&reservation.TheaterID,
		&reservation.MovieID,
		&reservation.Private,
		&reservation.Date,
		&startTime,
		&endTime,
		&reservation.Status,
		&reservation.CreatedAt,
		&reservation.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	reservation.Start = domain.TimeOfDayOf(startTime)
	reservation.End = domain.TimeOfDayOf(endTime)

	return &reservation, nil
}

func collectReservations(rows pgx.Rows) ([]domain.Reservation, error) {
	reservations := make([]domain.Reservation, 0)

	for rows.Next() {
		reservation, err := scanReservation(rows)
		if err != nil {
			return nil, err
		}

		reservations = append(reservations, *reservation)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return reservations, nil
}

func mapReservationError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgerrcode.ExclusionViolation:
			return domain.ErrReservationOverlap
		case pgerrcode.ForeignKeyViolation:
			return domain.ErrForeignKeyViolation
		}
	}

	return err
}
