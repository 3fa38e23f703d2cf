package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ozanveral/movie-club-api/internal/domain"
)

type PostgresCommentRepository struct {
	db *pgxpool.Pool
}

func NewPostgresCommentRepository(db *pgxpool.Pool) *PostgresCommentRepository {
	return &PostgresCommentRepository{
		db: db,
	}
}

func (p *PostgresCommentRepository) Create(ctx context.Context, comment *domain.Comment) error {
	query := `
		INSERT INTO comments (user_id, movie_id, parent_comment_id, content)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`

	var parentID *int
	if comment.ParentCommentID != nil {
		id := int(*comment.ParentCommentID)
		parentID = &id
	}

	err := p.db.QueryRow(
		ctx,
		query,
		int(comment.UserID),
		int(comment.MovieID),
		parentID,
		comment.Content,
	).Scan(&comment.ID, &comment.CreatedAt, &comment.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ForeignKeyViolation {
			return domain.ErrRecordNotFound
		}

		return err
	}

	return nil
}

func (p *PostgresCommentRepository) GetById(ctx context.Context, id domain.CommentID) (*domain.Comment, error) {
	query := `
		SELECT id, user_id, movie_id, parent_comment_id, content, created_at, updated_at
		FROM comments
		WHERE id = $1
	`

	var comment domain.Comment

	err := p.db.QueryRow(ctx, query, int(id)).Scan(
		&comment.ID,
		&comment.UserID,
		&comment.MovieID,
		&comment.ParentCommentID,
		&comment.Content,
		&comment.CreatedAt,
		&comment.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	return &comment, nil
}

func (p *PostgresCommentRepository) GetByMovie(
	ctx context.Context,
	movieID domain.MovieID,
	pagination domain.Pagination) ([]domain.Comment, *domain.Metadata, error) {

	query := `
		SELECT count(*) OVER(), id, user_id, movie_id, parent_comment_id, content, created_at, updated_at
		FROM comments
		WHERE movie_id = $1
		ORDER BY created_at ASC
		LIMIT $2 OFFSET $3
	`

	rows, err := p.db.Query(ctx, query, int(movieID), pagination.Limit(), pagination.Offset())
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	comments := make([]domain.Comment, 0)
	totalRecords := 0

	for rows.Next() {
		var comment domain.Comment

		err := rows.Scan(
			&totalRecords,
			&comment.ID,
			&comment.UserID,
			&comment.MovieID,
			&comment.ParentCommentID,
			&comment.Content,
			&comment.CreatedAt,
			&comment.UpdatedAt,
		)
		if err != nil {
			return nil, nil, err
		}

		comments = append(comments, comment)
	}

	if err = rows.Err(); err != nil {
		return nil, nil, err
	}

	metadata := domain.NewMetadata(totalRecords, pagination.Page, pagination.PageSize)

	return comments, metadata, nil
}

func (p *PostgresCommentRepository) Update(ctx context.Context, comment *domain.Comment) error {
	query := `
		UPDATE comments
		SET content = $1, updated_at = now()
		WHERE id = $2
		RETURNING updated_at
	`

	err := p.db.QueryRow(ctx, query, comment.Content, int(comment.ID)).Scan(&comment.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrRecordNotFound
		}

		return err
	}

	return nil
}

func (p *PostgresCommentRepository) Delete(ctx context.Context, id domain.CommentID) error {
	result, err := p.db.Exec(ctx, `DELETE FROM comments WHERE id = $1`, int(id))
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return domain.ErrRecordNotFound
	}

	return nil
}
