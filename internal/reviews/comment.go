// Copyright (c) 2026 Revora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package reviews

import (
	"context"
	"time"
)

// Comment is a reply in a review's discussion thread. Comments carry no
// score and never influence the title rating.
type Comment struct {
	ID       string    `json:"id"`
	ReviewID string    `json:"-"`
	AuthorID string    `json:"-"`
	Author   string    `json:"author"`
	Text     string    `json:"text"`
	PubDate  time.Time `json:"pub_date"`
}

// CommentRepository defines persistence operations for comments.
type CommentRepository interface {
	// ListByReview returns one page of a review's comments in publication
	// order, oldest first, plus the unpaged total.
	ListByReview(ctx context.Context, reviewID string, limit, offset int) ([]*Comment, int, error)

	// FindByID returns a single comment or apperr.NotFound.
	FindByID(ctx context.Context, id string) (*Comment, error)

	// Create persists a new comment.
	Create(ctx context.Context, comment *Comment) error

	// Update persists text changes. Unknown id returns apperr.NotFound.
	Update(ctx context.Context, comment *Comment) error

	// Delete removes a comment. Unknown id returns apperr.NotFound.
	Delete(ctx context.Context, id string) error
}
