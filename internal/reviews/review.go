// Copyright (c) 2026 Revora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package reviews implements the user-generated layer of the catalogue:
// scored reviews attached to titles and threaded comments attached to
// reviews. Both resources share the author-or-staff access rules, applied
// after the entity is resolved so ownership can be judged.
package reviews

import (
	"context"
	"time"
)

// # Domain Model

// Review is a single user's verdict on a title. The database enforces one
// review per author per title; the average of all review scores becomes the
// title's derived rating.
type Review struct {
	ID       string    `json:"id"`
	TitleID  string    `json:"-"`
	AuthorID string    `json:"-"`
	Author   string    `json:"author"`
	Text     string    `json:"text"`
	Score    int       `json:"score"`
	PubDate  time.Time `json:"pub_date"`
}

// # Contracts

// ReviewRepository defines persistence operations for reviews.
//
// Implementations hydrate Author with the account username at read time;
// writers fill it from the acting identity instead.
type ReviewRepository interface {
	// ListByTitle returns one page of a title's reviews in publication
	// order, oldest first, plus the unpaged total.
	ListByTitle(ctx context.Context, titleID string, limit, offset int) ([]*Review, int, error)

	// FindByID returns a single review or apperr.NotFound.
	FindByID(ctx context.Context, id string) (*Review, error)

	// Create persists a new review. A second review by the same author on
	// the same title fails with apperr.Conflict.
	Create(ctx context.Context, review *Review) error

	// Update persists text and score changes. Unknown id returns
	// apperr.NotFound.
	Update(ctx context.Context, review *Review) error

	// Delete removes a review and, through the database cascade, its
	// comments. Unknown id returns apperr.NotFound.
	Delete(ctx context.Context, id string) error
}

// TitleDirectory is the slice of the catalogue the review domain needs:
// existence checks for parent titles.
type TitleDirectory interface {
	Exists(ctx context.Context, id string) (bool, error)
}
