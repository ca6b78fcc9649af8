// Copyright (c) 2026 Revora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package taxonomy manages the "Master Data" of the Revora catalogue.

It handles the lifecycle and retrieval of the two reference entities every
title hangs off: categories (a title belongs to at most one) and genres (a
title carries a set, through an explicit junction).

# Core Responsibility

  - Classification: maintains the [Category] tree-less lookup table.
  - Tagging: maintains the [Genre] lookup table.

Both entities are identified externally by their unique slug; numeric or
surrogate identifiers never leave this package.
*/
package taxonomy

import (
	"context"
	"time"
)

// MaxNameLength bounds the display name of categories and genres.
const MaxNameLength = 256

// MaxSlugLength bounds the URL-facing identifier.
const MaxSlugLength = 50

// Category classifies a title ("film", "book", "music").
// Deleting a category does not delete its titles; their reference is nulled.
type Category struct {
	ID        string    `json:"-"` // Surrogate key, internal only.
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	CreatedAt time.Time `json:"-"`
}

// Genre tags a title with a style ("noir", "comedy"). A title may carry any
// number of genres via the junction table.
type Genre struct {
	ID        string    `json:"-"` // Surrogate key, internal only.
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	CreatedAt time.Time `json:"-"`
}

// ListFilter narrows a taxonomy listing.
type ListFilter struct {
	// Search matches names by case-insensitive substring. Empty means all.
	Search string

	Limit  int
	Offset int
}

// Repository defines the data access contract for both lookup tables.
//
// # Implementations
//
// The canonical implementation is PostgreSQL (store_postgres.go).
type Repository interface {
	// ListCategories returns a name-ordered page plus the total count.
	ListCategories(ctx context.Context, filter ListFilter) ([]*Category, int, error)

	// CreateCategory persists a new category.
	//
	// Returns [apperr.Conflict] when the slug is already taken.
	CreateCategory(ctx context.Context, category *Category) error

	// DeleteCategoryBySlug removes a category. Titles referencing it have
	// their category reference nulled by the database, never cascaded.
	//
	// Returns [apperr.NotFound] for an unknown slug.
	DeleteCategoryBySlug(ctx context.Context, slug string) error

	// ListGenres returns a name-ordered page plus the total count.
	ListGenres(ctx context.Context, filter ListFilter) ([]*Genre, int, error)

	// CreateGenre persists a new genre.
	//
	// Returns [apperr.Conflict] when the slug is already taken.
	CreateGenre(ctx context.Context, genre *Genre) error

	// DeleteGenreBySlug removes a genre. Junction rows survive with a nulled
	// genre reference and are skipped when hydrating title genre sets.
	//
	// Returns [apperr.NotFound] for an unknown slug.
	DeleteGenreBySlug(ctx context.Context, slug string) error
}
