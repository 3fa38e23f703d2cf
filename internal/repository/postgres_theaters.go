package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ozanveral/movie-club-api/internal/domain"
)

type PostgresTheaterRepository struct {
	db *pgxpool.Pool
}

func NewPostgresTheaterRepository(db *pgxpool.Pool) *PostgresTheaterRepository {
	return &PostgresTheaterRepository{
		db: db,
	}
}

func (p *PostgresTheaterRepository) GetAll(ctx context.Context, pagination domain.Pagination) ([]*domain.Theater, *domain.Metadata, error) {
	query := `
		SELECT count(*) OVER(), id, name, max_capacity, projection, screen_size, description, created_at, version
		FROM theaters
		ORDER BY id ASC
		LIMIT $1 OFFSET $2
	`

	rows, err := p.db.Query(ctx, query, pagination.Limit(), pagination.Offset())
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	totalRecords := 0
	theaters := []*domain.Theater{}

	for rows.Next() {
		var theater domain.Theater

		err := rows.Scan(
			&totalRecords,
			&theater.ID,
			&theater.Name,
			&theater.MaxCapacity,
			&theater.Projection,
			&theater.ScreenSize,
			&theater.Description,
			&theater.CreatedAt,
			&theater.Version,
		)

		if err != nil {
			return nil, nil, err
		}

		theaters = append(theaters, &theater)
	}

	if err = rows.Err(); err != nil {
		return nil, nil, err
	}

	metadata := domain.NewMetadata(totalRecords, pagination.Page, pagination.PageSize)

	return theaters, metadata, nil
}

func (p *PostgresTheaterRepository) GetById(ctx context.Context, id domain.TheaterID) (*domain.Theater, error) {
	query := `
		SELECT id, name, max_capacity, projection, screen_size, description, created_at, version
		FROM theaters
		WHERE id = $1
	`

	var theater domain.Theater

	err := p.db.QueryRow(ctx, query, int(id)).Scan(
		&theater.ID,
		&theater.Name,
		&theater.MaxCapacity,
		&theater.Projection,
		&theater.ScreenSize,
		&theater.Description,
		&theater.CreatedAt,
		&theater.Version,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	return &theater, nil
}

func (p *PostgresTheaterRepository) Create(ctx context.Context, theater *domain.Theater) error {
	query := `
		INSERT INTO theaters (name, max_capacity, projection, screen_size, description)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, version
	`

	return p.db.QueryRow(
		ctx,
		query,
		theater.Name,
		theater.MaxCapacity,
		theater.Projection,
		theater.ScreenSize,
		theater.Description,
	).Scan(&theater.ID, &theater.CreatedAt, &theater.Version)
}

func (p *PostgresTheaterRepository) Update(ctx context.Context, theater *domain.Theater) error {
	query := `
		UPDATE theaters
		SET name = $1, max_capacity = $2, projection = $3, screen_size = $4, description = $5, version = version + 1
		WHERE id = $6 AND version = $7
		RETURNING version
	`

	err := p.db.QueryRow(
		ctx,
		query,
		theater.Name,
		theater.MaxCapacity,
		theater.Projection,
		theater.ScreenSize,
		theater.Description,
		int(theater.ID),
		theater.Version,
	).Scan(&theater.Version)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrEditConflict
		}

		return err
	}

	return nil
}

func (p *PostgresTheaterRepository) Delete(ctx context.Context, id domain.TheaterID) error {
	result, err := p.db.Exec(ctx, `DELETE FROM theaters WHERE id = $1`, int(id))
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return domain.ErrRecordNotFound
	}

	return nil
}
