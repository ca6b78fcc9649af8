// Copyright (c) 2026 Revora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package title

import "context"

// ListFilter narrows a title listing. All criteria combine with AND.
type ListFilter struct {
	// CategorySlug matches titles whose category carries this slug.
	CategorySlug string

	// GenreSlug matches titles linked to the genre with this slug.
	GenreSlug string

	// Search matches names by case-insensitive substring.
	Search string

	// Year matches the release year exactly. Zero means no year filter.
	Year int

	Limit  int
	Offset int
}

// WriteModel carries the storage-facing shape of a create or update. Genre
// and category arrive as slugs and are resolved inside the store so the
// resolution shares the transaction with the write itself.
type WriteModel struct {
	Title *Title

	// GenreSlugs replaces the title's genre set when non-nil.
	GenreSlugs []string

	// CategorySlug sets the category reference. Empty string clears it.
	CategorySlug string

	// ClearCategory removes the category reference explicitly.
	ClearCategory bool
}

// Repository defines the data access contract for titles.
//
// # Hydration
//
// Every read returns fully hydrated titles: the derived rating, the genre
// set, and the category are all populated.
type Repository interface {
	// List returns a page of titles matching the filter plus the total count.
	List(ctx context.Context, filter ListFilter) ([]*Title, int, error)

	// FindByID returns one hydrated title.
	//
	// Returns [apperr.NotFound] if the title does not exist.
	FindByID(ctx context.Context, id string) (*Title, error)

	// Exists reports whether a title row is present, without hydration.
	// Used by the review domain to resolve path parents cheaply.
	Exists(ctx context.Context, id string) (bool, error)

	// Create persists a new title and its genre junction rows atomically.
	//
	// Returns [apperr.ValidationError] when a genre or category slug does
	// not resolve.
	Create(ctx context.Context, model WriteModel) error

	// Update persists changed fields and, when requested, replaces the genre
	// set and category reference in the same transaction.
	//
	// Returns [apperr.NotFound] if the title does not exist.
	Update(ctx context.Context, model WriteModel) error

	// Delete removes a title. Its reviews, their comments, and the junction
	// rows are removed by the database cascade.
	//
	// Returns [apperr.NotFound] if the title does not exist.
	Delete(ctx context.Context, id string) error
}
