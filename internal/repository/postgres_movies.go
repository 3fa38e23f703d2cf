package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ozanveral/movie-club-api/internal/domain"
)

type PostgresMovieRepository struct {
	db *pgxpool.Pool
}

func NewPostgresMovieRepository(db *pgxpool.Pool) *PostgresMovieRepository {
	return &PostgresMovieRepository{
		db: db,
	}
}

func (p *PostgresMovieRepository) GetAll(ctx context.Context, pagination domain.Pagination) ([]*domain.Movie, *domain.Metadata, error) {
	query := `
		SELECT count(*) OVER(), id, title, overview, year, rating, category, duration_minutes, created_at, version
		FROM movies
		ORDER BY id ASC
		LIMIT $1 OFFSET $2
	`

	rows, err := p.db.Query(ctx, query, pagination.Limit(), pagination.Offset())
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	totalRecords := 0
	movies := []*domain.Movie{}

	for rows.Next() {
		var movie domain.Movie

		err := rows.Scan(
			&totalRecords,
			&movie.ID,
			&movie.Title,
			&movie.Overview,
			&movie.Year,
			&movie.Rating,
			&movie.Category,
			&movie.Duration,
			&movie.CreatedAt,
			&movie.Version,
		)

		if err != nil {
			return nil, nil, err
		}

		movies = append(movies, &movie)
	}

	if err = rows.Err(); err != nil {
		return nil, nil, err
	}

	metadata := domain.NewMetadata(totalRecords, pagination.Page, pagination.PageSize)

	return movies, metadata, nil
}

func (p *PostgresMovieRepository) GetById(ctx context.Context, id domain.MovieID) (*domain.Movie, error) {
	query := `
		SELECT id, title, overview, year, rating, category, duration_minutes, created_at, version
		FROM movies
		WHERE id = $1
	`

	var movie domain.Movie

	err := p.db.QueryRow(ctx, query, int(id)).Scan(
		&movie.ID,
		&movie.Title,
		&movie.Overview,
		&movie.Year,
		&movie.Rating,
		&movie.Category,
		&movie.Duration,
		&movie.CreatedAt,
		&movie.Version,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	return &movie, nil
}

func (p *PostgresMovieRepository) Create(ctx context.Context, movie *domain.Movie) error {
	query := `
		INSERT INTO movies (title, overview, year, rating, category, duration_minutes)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, version
	`

	return p.db.QueryRow(
		ctx,
		query,
		movie.Title,
		movie.Overview,
		movie.Year,
		movie.Rating,
		movie.Category,
		movie.Duration,
	).Scan(&movie.ID, &movie.CreatedAt, &movie.Version)
}

func (p *PostgresMovieRepository) Update(ctx context.Context, movie *domain.Movie) error {
	query := `
		UPDATE movies
		SET title = $1, overview = $2, year = $3, rating = $4, category = $5, duration_minutes = $6, version = version + 1
		WHERE id = $7 AND version = $8
		RETURNING version
	`

	err := p.db.QueryRow(
		ctx,
		query,
		movie.Title,
		movie.Overview,
		movie.Year,
		movie.Rating,
		movie.Category,
		movie.Duration,
		int(movie.ID),
		movie.Version,
	).Scan(&movie.Version)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrEditConflict
		}

		return err
	}

	return nil
}

func (p *PostgresMovieRepository) Delete(ctx context.Context, id domain.MovieID) error {
	result, err := p.db.Exec(ctx, `DELETE FROM movies WHERE id = $1`, int(id))
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return domain.ErrRecordNotFound
	}

	return nil
}
