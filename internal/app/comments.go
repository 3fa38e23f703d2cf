package app

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/ozanveral/movie-club-api/internal/domain"
)

type CommentRequest struct {
	Content         string `json:"content" validate:"required,min=1,max=2000"`
	ParentCommentId *int   `json:"parentCommentId" validate:"omitempty,min=1"`
}

type CommentUpdateRequest struct {
	Content string `json:"content" validate:"required,min=1,max=2000"`
}

type CommentResponse struct {
	Id              int       `json:"id"`
	UserId          int       `json:"userId"`
	MovieId         int       `json:"movieId"`
	ParentCommentId *int      `json:"parentCommentId,omitempty"`
	Content         string    `json:"content"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

type CommentListResponse struct {
	Comments []CommentResponse `json:"comments"`
	Metadata MetadataResponse  `json:"metadata"`
}

func toCommentResponse(comment *domain.Comment) CommentResponse {
	resp := CommentResponse{
		Id:        int(comment.ID),
		UserId:    int(comment.UserID),
		MovieId:   int(comment.MovieID),
		Content:   comment.Content,
		CreatedAt: comment.CreatedAt,
		UpdatedAt: comment.UpdatedAt,
	}

	if comment.ParentCommentID != nil {
		parentId := int(*comment.ParentCommentID)
		resp.ParentCommentId = &parentId
	}

	return resp
}

func (app *Application) ListMovieComments(w http.ResponseWriter, r *http.Request) {
	movieId, err := app.readIDParam(r, "movieId")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	pagination, err := app.readPagination(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	comments, metadata, err := app.commentRepo.GetByMovie(r.Context(), domain.MovieID(movieId), pagination)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	commentResponses := make([]CommentResponse, len(comments))
	for i := range comments {
		commentResponses[i] = toCommentResponse(&comments[i])
	}

	resp := CommentListResponse{
		Comments: commentResponses,
		Metadata: toMetadataResponse(metadata),
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) CreateComment(w http.ResponseWriter, r *http.Request) {
	movieId, err := app.readIDParam(r, "movieId")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var input CommentRequest

	err = app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.validator.Struct(input)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	comment := domain.Comment{
		UserID:  app.contextGetUserId(r),
		MovieID: domain.MovieID(movieId),
		Content: input.Content,
	}

	if input.ParentCommentId != nil {
		parentId := domain.CommentID(*input.ParentCommentId)

		parent, err := app.commentRepo.GetById(r.Context(), parentId)
		if err != nil {
			switch {
			case errors.Is(err, domain.ErrRecordNotFound):
				app.badRequestResponse(w, r, fmt.Errorf("parent comment does not exist"))
			default:
				app.serverErrorResponse(w, r, err)
			}

			return
		}

		if parent.MovieID != comment.MovieID {
			app.badRequestResponse(w, r, domain.ErrCommentNotOnMovie)
			return
		}

		comment.ParentCommentID = &parentId
	}

	err = app.commentRepo.Create(r.Context(), &comment)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	err = app.writeJSON(w, http.StatusCreated, toCommentResponse(&comment), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) UpdateComment(w http.ResponseWriter, r *http.Request) {
	commentId, err := app.readIDParam(r, "commentId")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var input CommentUpdateRequest

	err = app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.validator.Struct(input)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	comment, err := app.commentRepo.GetById(r.Context(), domain.CommentID(commentId))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	if comment.UserID != app.contextGetUserId(r) {
		app.forbiddenResponse(w, r)
		return
	}

	comment.Content = input.Content

	err = app.commentRepo.Update(r.Context(), comment)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, toCommentResponse(comment), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) DeleteComment(w http.ResponseWriter, r *http.Request) {
	commentId, err := app.readIDParam(r, "commentId")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	comment, err := app.commentRepo.GetById(r.Context(), domain.CommentID(commentId))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	if comment.UserID != app.contextGetUserId(r) {
		app.forbiddenResponse(w, r)
		return
	}

	err = app.commentRepo.Delete(r.Context(), domain.CommentID(commentId))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	w.WriteHeader(http.StatusNoContent)
}
