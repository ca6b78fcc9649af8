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

// CreateCommentInput defines the fields required to post a comment.
type CreateCommentInput struct {
	Text string
}

/*
ListComments returns one page of a review's comments, oldest first.

Parameters:
  - ctx: context.Context
  - titleID: string
  - reviewID: string
  - limit: int
  - offset: int

Returns:
  - []*Comment: The page of comments
  - int: The unpaged total
  - error: apperr.NotFound when the path chain does not resolve
*/
func (service *Service) ListComments(ctx context.Context, titleID, reviewID string, limit, offset int) ([]*Comment, int, error) {
	if _, err := service.resolveReview(ctx, titleID, reviewID); err != nil {
		return nil, 0, err
	}
	return service.commentRepository.ListByReview(ctx, reviewID, limit, offset)
}

/*
CreateComment posts the actor's comment under a review.

Parameters:
  - ctx: context.Context
  - actor: The authenticated author
  - titleID: string
  - reviewID: string
  - input: CreateCommentInput

Returns:
  - *Comment: The posted comment
  - error: apperr.NotFound, apperr.ValidationError, execution failures
*/
func (service *Service) CreateComment(ctx context.Context, actor *perm.Actor, titleID, reviewID string, input CreateCommentInput) (*Comment, error) {
	validator := &validate.Validator{}
	validator.Required("text", input.Text)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	if _, err := service.resolveReview(ctx, titleID, reviewID); err != nil {
		return nil, err
	}

	comment := &Comment{
		ID:       uuidv7.New(),
		ReviewID: reviewID,
		AuthorID: actor.ID,
		Author:   actor.Username,
		Text:     input.Text,
		PubDate:  time.Now().UTC(),
	}

	if err := service.commentRepository.Create(ctx, comment); err != nil {
		return nil, err
	}

	return comment, nil
}

/*
GetComment returns a single comment addressed through its review and title.

Parameters:
  - ctx: context.Context
  - titleID: string
  - reviewID: string
  - commentID: string

Returns:
  - *Comment: The resolved comment
  - error: apperr.NotFound on any break in the path chain
*/
func (service *Service) GetComment(ctx context.Context, titleID, reviewID, commentID string) (*Comment, error) {
	return service.resolveComment(ctx, titleID, reviewID, commentID)
}

// UpdateCommentInput defines the mutable comment fields.
type UpdateCommentInput struct {
	Text *string
}

/*
UpdateComment applies a partial set of changes to a comment.

Parameters:
  - ctx: context.Context
  - actor: The requesting identity, nil when anonymous
  - method: The raw HTTP method, for the access decision
  - titleID: string
  - reviewID: string
  - commentID: string
  - input: UpdateCommentInput

Returns:
  - *Comment: The updated comment
  - error: apperr.NotFound, apperr.Forbidden, apperr.ValidationError
*/
func (service *Service) UpdateComment(ctx context.Context, actor *perm.Actor, method, titleID, reviewID, commentID string, input UpdateCommentInput) (*Comment, error) {
	comment, err := service.resolveComment(ctx, titleID, reviewID, commentID)
	if err != nil {
		return nil, err
	}
	if err := authorizeObject(actor, method, comment.AuthorID); err != nil {
		return nil, err
	}

	if input.Text != nil {
		comment.Text = *input.Text
	}

	validator := &validate.Validator{}
	validator.Required("text", comment.Text)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	if err := service.commentRepository.Update(ctx, comment); err != nil {
		return nil, err
	}

	return comment, nil
}

/*
DeleteComment removes a comment.

Parameters:
  - ctx: context.Context
  - actor: The requesting identity, nil when anonymous
  - titleID: string
  - reviewID: string
  - commentID: string

Returns:
  - error: apperr.NotFound, apperr.Forbidden, execution failures
*/
func (service *Service) DeleteComment(ctx context.Context, actor *perm.Actor, titleID, reviewID, commentID string) error {
	comment, err := service.resolveComment(ctx, titleID, reviewID, commentID)
	if err != nil {
		return err
	}
	if err := authorizeObject(actor, http.MethodDelete, comment.AuthorID); err != nil {
		return err
	}

	return service.commentRepository.Delete(ctx, comment.ID)
}
