package domain

import "errors"

var (
	ErrRecordNotFound      = errors.New("record not found")
	ErrUserAlreadyExists   = errors.New("user already exists")
	ErrEditConflict        = errors.New("edit conflict")
	ErrReservationOverlap  = errors.New("reservation overlaps an existing active reservation")
	ErrMovieAlreadyLiked   = errors.New("movie already liked by this user")
	ErrCommentNotOnMovie   = errors.New("parent comment belongs to a different movie")
	ErrForeignKeyViolation = errors.New("referenced record does not exist")
)
