package domain

import "context"

type LikeRepository interface {
	// Add records a like; a second like by the same user on the same
	// movie returns ErrMovieAlreadyLiked.
	Add(ctx context.Context, userID UserID, movieID MovieID) error
	Remove(ctx context.Context, userID UserID, movieID MovieID) error
	CountByMovie(ctx context.Context, movieID MovieID) (int, error)
}
