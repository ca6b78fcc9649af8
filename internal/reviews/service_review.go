// Copyright (c) 2026 Revora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package reviews

import (
	"context"
	"net/http"
	"time"

	"github.com/taibuivan/revora/internal/platform/perm"
	"github.com/taibuivan/revora/internal/platform/validate"
	"github.com/taibuivan/revora/pkg/uuidv7"
)

// CreateReviewInput defines the fields required to publish a review.
type CreateReviewInput struct {
	Text  string
	Score int
}

/*
ListReviews returns one page of a title's reviews, oldest first.

Parameters:
  - ctx: context.Context
  - titleID: string
  - limit: int
  - offset: int

Returns:
  - []*Review: The page of reviews
  - int: The unpaged total
  - error: apperr.NotFound when the title does not exist, execution failures
*/
func (service *Service) ListReviews(ctx context.Context, titleID string, limit, offset int) ([]*Review, int, error) {
	if err := service.requireTitle(ctx, titleID); err != nil {
		return nil, 0, err
	}
	return service.reviewRepository.ListByTitle(ctx, titleID, limit, offset)
}

/*
CreateReview publishes the actor's review of a title.

Description: Each account gets exactly one review per title. The rule is
enforced by a database unique constraint rather than a pre-check, so two
concurrent submissions race on the constraint and the loser gets a conflict.

Parameters:
  - ctx: context.Context
  - actor: The authenticated author
  - titleID: string
  - input: CreateReviewInput

Returns:
  - *Review: The published review
  - error: apperr.NotFound, apperr.Conflict, apperr.ValidationError
*/
func (service *Service) CreateReview(ctx context.Context, actor *perm.Actor, titleID string, input CreateReviewInput) (*Review, error) {
	// ── 1. Validation ─────────────────────────────────────────────────────

	validator := &validate.Validator{}
	validator.
		Required("text", input.Text).
		Range("score", input.Score, MinScore, MaxScore)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	if err := service.requireTitle(ctx, titleID); err != nil {
		return nil, err
	}

	// ── 2. Persistence ────────────────────────────────────────────────────

	review := &Review{
		ID:       uuidv7.New(),
		TitleID:  titleID,
		AuthorID: actor.ID,
		Author:   actor.Username,
		Text:     input.Text,
		Score:    input.Score,
		PubDate:  time.Now().UTC(),
	}

	if err := service.reviewRepository.Create(ctx, review); err != nil {
		return nil, err
	}

	return review, nil
}

/*
GetReview returns a single review addressed through its title.

Parameters:
  - ctx: context.Context
  - titleID: string
  - reviewID: string

Returns:
  - *Review: The resolved review
  - error: apperr.NotFound on a missing review or a title mismatch
*/
func (service *Service) GetReview(ctx context.Context, titleID, reviewID string) (*Review, error) {
	return service.resolveReview(ctx, titleID, reviewID)
}

// UpdateReviewInput defines the mutable review fields. Nil pointers leave
// the current value untouched.
type UpdateReviewInput struct {
	Text  *string
	Score *int
}

/*
UpdateReview applies a partial set of changes to a review.

Description: Only the author, a moderator, or an admin may edit. The check
runs after resolution so ownership can be judged against the stored author.

Parameters:
  - ctx: context.Context
  - actor: The requesting identity, nil when anonymous
  - method: The raw HTTP method, for the access decision
  - titleID: string
  - reviewID: string
  - input: UpdateReviewInput

Returns:
  - *Review: The updated review
  - error: apperr.NotFound, apperr.Forbidden, apperr.ValidationError
*/
func (service *Service) UpdateReview(ctx context.Context, actor *perm.Actor, method, titleID, reviewID string, input UpdateReviewInput) (*Review, error) {
	// ── 1. Resolution & Access ────────────────────────────────────────────

	review, err := service.resolveReview(ctx, titleID, reviewID)
	if err != nil {
		return nil, err
	}
	if err := authorizeObject(actor, method, review.AuthorID); err != nil {
		return nil, err
	}

	// ── 2. Overlay & Validation ───────────────────────────────────────────

	if input.Text != nil {
		review.Text = *input.Text
	}
	if input.Score != nil {
		review.Score = *input.Score
	}

	validator := &validate.Validator{}
	validator.
		Required("text", review.Text).
		Range("score", review.Score, MinScore, MaxScore)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	// ── 3. Persistence ────────────────────────────────────────────────────

	if err := service.reviewRepository.Update(ctx, review); err != nil {
		return nil, err
	}

	return review, nil
}

/*
DeleteReview removes a review and its comment thread.

Parameters:
  - ctx: context.Context
  - actor: The requesting identity, nil when anonymous
  - titleID: string
  - reviewID: string

Returns:
  - error: apperr.NotFound, apperr.Forbidden, execution failures
*/
func (service *Service) DeleteReview(ctx context.Context, actor *perm.Actor, titleID, reviewID string) error {
	review, err := service.resolveReview(ctx, titleID, reviewID)
	if err != nil {
		return err
	}
	if err := authorizeObject(actor, http.MethodDelete, review.AuthorID); err != nil {
		return err
	}

	return service.reviewRepository.Delete(ctx, review.ID)
}
