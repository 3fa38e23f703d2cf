package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ozanveral/movie-club-api/internal/domain"
)

type PostgresLikeRepository struct {
	db *pgxpool.Pool
}

func NewPostgresLikeRepository(db *pgxpool.Pool) *PostgresLikeRepository {
	return &PostgresLikeRepository{
		db: db,
	}
}

func (p *PostgresLikeRepository) Add(ctx context.Context, userID domain.UserID, movieID domain.MovieID) error {
	query := `INSERT INTO likes (user_id, movie_id) VALUES ($1, $2)`

	_, err := p.db.Exec(ctx, query, int(userID), int(movieID))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case pgerrcode.UniqueViolation:
				return domain.ErrMovieAlreadyLiked
			case pgerrcode.ForeignKeyViolation:
				return domain.ErrRecordNotFound
			}
		}

		return err
	}

	return nil
}

func (p *PostgresLikeRepository) Remove(ctx context.Context, userID domain.UserID, movieID domain.MovieID) error {
	result, err := p.db.Exec(ctx, `DELETE FROM likes WHERE user_id = $1 AND movie_id = $2`, int(userID), int(movieID))
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return domain.ErrRecordNotFound
	}

	return nil
}

func (p *PostgresLikeRepository) CountByMovie(ctx context.Context, movieID domain.MovieID) (int, error) {
	var count int

	err := p.db.QueryRow(ctx, `SELECT count(*) FROM likes WHERE movie_id = $1`, int(movieID)).Scan(&count)
	if err != nil {
		return 0, err
	}

	return count, nil
}
