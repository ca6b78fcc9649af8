// Copyright (c) 2026 Revora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package reviews

import (
	"context"

	"github.com/taibuivan/revora/internal/platform/apperr"
	"github.com/taibuivan/revora/internal/platform/perm"
)

// Score bounds for a review.
const (
	MinScore = 1
	MaxScore = 10
)

// Service contains the business logic for reviews and comments.
type Service struct {
	reviewRepository  ReviewRepository
	commentRepository CommentRepository
	titles            TitleDirectory
}

// NewService constructs a new [Service] with its dependencies.
func NewService(
	reviewRepository ReviewRepository,
	commentRepository CommentRepository,
	titles TitleDirectory,
) *Service {
	return &Service{
		reviewRepository:  reviewRepository,
		commentRepository: commentRepository,
		titles:            titles,
	}
}

// requireTitle confirms the parent title exists before any review operation
// touches its subtree.
func (service *Service) requireTitle(ctx context.Context, titleID string) error {
	exists, err := service.titles.Exists(ctx, titleID)
	if err != nil {
		return err
	}
	if !exists {
		return apperr.NotFound("Title")
	}
	return nil
}

// resolveReview fetches a review and verifies it actually hangs off the
// title named in the request path. A review reached through the wrong title
// reads as missing, not as forbidden.
func (service *Service) resolveReview(ctx context.Context, titleID, reviewID string) (*Review, error) {
	review, err := service.reviewRepository.FindByID(ctx, reviewID)
	if err != nil {
		return nil, err
	}
	if review.TitleID != titleID {
		return nil, apperr.NotFound("Review")
	}
	return review, nil
}

// resolveComment fetches a comment and verifies the full path chain:
// the comment belongs to the review, and the review belongs to the title.
func (service *Service) resolveComment(ctx context.Context, titleID, reviewID, commentID string) (*Comment, error) {
	if _, err := service.resolveReview(ctx, titleID, reviewID); err != nil {
		return nil, err
	}

	comment, err := service.commentRepository.FindByID(ctx, commentID)
	if err != nil {
		return nil, err
	}
	if comment.ReviewID != reviewID {
		return nil, apperr.NotFound("Comment")
	}
	return comment, nil
}

// authorizeObject runs the post-lookup stage of the author-or-staff policy
// against a resolved entity.
//
// Ownership is judged against the entity's own author, so a review author
// editing somebody else's comment under their review is still denied.
func authorizeObject(actor *perm.Actor, method, ownerID string) error {
	if perm.CanAccessObject(perm.AuthorOrVIP, actor, method, ownerID) {
		return nil
	}
	if actor == nil {
		return apperr.Unauthorized("Authentication required")
	}
	return apperr.Forbidden("Insufficient permissions")
}
