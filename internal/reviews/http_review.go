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

// list handles GET /api/v1/titles/{titleID}/reviews requests.
func (handler *Handler) listReviews(writer http.ResponseWriter, request *http.Request) {
	titleID, err := pathID(request, "titleID", "Title")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	page := pagination.FromRequest(request)
	reviews, total, err := handler.reviewService.ListReviews(request.Context(), titleID, page.Limit, page.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, reviews, pagination.NewMeta(page.Page, page.Limit, total))
}

// createReviewRequest represents the JSON payload for publishing a review.
type createReviewRequest struct {
	Text  string `json:"text"`
	Score int    `json:"score"`
}

// createReview handles POST /api/v1/titles/{titleID}/reviews requests.
func (handler *Handler) createReview(writer http.ResponseWriter, request *http.Request) {
	titleID, err := pathID(request, "titleID", "Title")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input createReviewRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	actor, err := requestutil.RequiredActor(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	review, err := handler.reviewService.CreateReview(request.Context(), actor, titleID, CreateReviewInput{
		Text:  input.Text,
		Score: input.Score,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, review)
}

// getReview handles GET /api/v1/titles/{titleID}/reviews/{reviewID} requests.
func (handler *Handler) getReview(writer http.ResponseWriter, request *http.Request) {
	titleID, reviewID, err := reviewPath(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	review, err := handler.reviewService.GetReview(request.Context(), titleID, reviewID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, review)
}

// updateReviewRequest represents the JSON payload for partial review edits.
type updateReviewRequest struct {
	Text  *string `json:"text"`
	Score *int    `json:"score"`
}

// updateReview handles PUT and PATCH requests on a single review.
func (handler *Handler) updateReview(writer http.ResponseWriter, request *http.Request) {
	titleID, reviewID, err := reviewPath(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input updateReviewRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	review, err := handler.reviewService.UpdateReview(
		request.Context(), requestutil.Actor(request), request.Method,
		titleID, reviewID,
		UpdateReviewInput{Text: input.Text, Score: input.Score},
	)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, review)
}

// deleteReview handles DELETE requests on a single review.
func (handler *Handler) deleteReview(writer http.ResponseWriter, request *http.Request) {
	titleID, reviewID, err := reviewPath(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	err = handler.reviewService.DeleteReview(request.Context(), requestutil.Actor(request), titleID, reviewID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
