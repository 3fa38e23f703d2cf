package domain

import (
	"context"
	"time"
)

// Comment is a user comment on a movie. A non-nil ParentCommentID makes
// it a reply within the thread of its parent.
type Comment struct {
	ID              CommentID
	UserID          UserID
	MovieID         MovieID
	ParentCommentID *CommentID
	Content         string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

type CommentRepository interface {
	Create(ctx context.Context, comment *Comment) error
	GetById(ctx context.Context, id CommentID) (*Comment, error)
	GetByMovie(ctx context.Context, movieID MovieID, pagination Pagination) ([]Comment, *Metadata, error)
	Update(ctx context.Context, comment *Comment) error
	Delete(ctx context.Context, id CommentID) error
}
