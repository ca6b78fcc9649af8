// Copyright (c) 2026 Revora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package reviews

import (
	"net/http"

	requestutil "github.com/taibuivan/revora/internal/platform/request"
	"github.com/taibuivan/revora/internal/platform/respond"
	"github.com/taibuivan/revora/internal/platform/validate"
	"github.com/taibuivan/revora/pkg/pagination"
)

// commentPath extracts the full identifier chain of a comment detail route.
func commentPath(request *http.Request) (titleID, reviewID, commentID string, err error) {
	if titleID, reviewID, err = reviewPath(request); err != nil {
		return "", "", "", err
	}
	if commentID, err = pathID(request, "commentID", "Comment"); err != nil {
		return "", "", "", err
	}
	return titleID, reviewID, commentID, nil
}

// listComments handles GET requests on a review's comment thread.
func (handler *Handler) listComments(writer http.ResponseWriter, request *http.Request) {
	titleID, reviewID, err := reviewPath(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	page := pagination.FromRequest(request)
	comments, total, err := handler.reviewService.ListComments(request.Context(), titleID, reviewID, page.Limit, page.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, comments, pagination.NewMeta(page.Page, page.Limit, total))
}

// commentRequest represents the JSON payload for posting or editing a comment.
type commentRequest struct {
	Text string `json:"text"`
}

// createComment handles POST requests on a review's comment thread.
func (handler *Handler) createComment(writer http.ResponseWriter, request *http.Request) {
	titleID, reviewID, err := reviewPath(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input commentRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	actor, err := requestutil.RequiredActor(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	comment, err := handler.reviewService.CreateComment(request.Context(), actor, titleID, reviewID, CreateCommentInput{
		Text: input.Text,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, comment)
}

// getComment handles GET requests on a single comment.
func (handler *Handler) getComment(writer http.ResponseWriter, request *http.Request) {
	titleID, reviewID, commentID, err := commentPath(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	comment, err := handler.reviewService.GetComment(request.Context(), titleID, reviewID, commentID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, comment)
}

// updateCommentRequest represents the JSON payload for partial comment edits.
type updateCommentRequest struct {
	Text *string `json:"text"`
}

// updateComment handles PUT and PATCH requests on a single comment.
func (handler *Handler) updateComment(writer http.ResponseWriter, request *http.Request) {
	titleID, reviewID, commentID, err := commentPath(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input updateCommentRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	comment, err := handler.reviewService.UpdateComment(
		request.Context(), requestutil.Actor(request), request.Method,
		titleID, reviewID, commentID,
		UpdateCommentInput{Text: input.Text},
	)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, comment)
}

// deleteComment handles DELETE requests on a single comment.
func (handler *Handler) deleteComment(writer http.ResponseWriter, request *http.Request) {
	titleID, reviewID, commentID, err := commentPath(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	err = handler.reviewService.DeleteComment(request.Context(), requestutil.Actor(request), titleID, reviewID, commentID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
