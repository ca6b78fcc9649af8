// Copyright (c) 2026 Revora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package taxonomy

import (
	"context"
	"fmt"

	"github.com/taibuivan/revora/internal/platform/validate"
	"github.com/taibuivan/revora/pkg/slug"
	"github.com/taibuivan/revora/pkg/uuidv7"
)

// Service orchestrates business logic for the catalogue lookup tables.
type Service struct {
	repository Repository
}

// NewService constructs a new [Service] with its repository dependency.
func NewService(repository Repository) *Service {
	return &Service{repository: repository}
}

// CreateInput holds the fields shared by category and genre creation.
type CreateInput struct {
	Name string
	Slug string
}

// validateInput applies the shared boundary rules and derives a slug from
// the name when none is supplied.
func (service *Service) validateInput(input *CreateInput) error {
	if input.Slug == "" && input.Name != "" {
		input.Slug = slug.From(input.Name)
	}

	validator := &validate.Validator{}
	validator.
		Required("name", input.Name).
		MaxLen("name", input.Name, MaxNameLength).
		Required("slug", input.Slug).
		Slug("slug", input.Slug).
		MaxLen("slug", input.Slug, MaxSlugLength)
	return validator.Err()
}

// # Categories

/*
ListCategories returns a name-ordered page of categories.

Parameters:
  - ctx: context.Context
  - filter: ListFilter

Returns:
  - []*Category: The page of categories
  - int: Total matching rows
  - error: Execution failures
*/
func (service *Service) ListCategories(ctx context.Context, filter ListFilter) ([]*Category, int, error) {
	categories, total, err := service.repository.ListCategories(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("taxonomy_service_list_categories_failed: %w", err)
	}
	return categories, total, nil
}

/*
CreateCategory validates and persists a new category.

Parameters:
  - ctx: context.Context
  - input: CreateInput

Returns:
  - *Category: The created category
  - error: apperr.ValidationError or apperr.Conflict on a duplicate slug
*/
func (service *Service) CreateCategory(ctx context.Context, input CreateInput) (*Category, error) {
	if err := service.validateInput(&input); err != nil {
		return nil, err
	}

	category := &Category{
		ID:   uuidv7.New(),
		Name: input.Name,
		Slug: input.Slug,
	}
	if err := service.repository.CreateCategory(ctx, category); err != nil {
		return nil, err
	}

	return category, nil
}

/*
DeleteCategory removes a category by slug.

Description: Titles referencing the category keep existing; the database
nulls their reference. This is deliberate, a classification is metadata, not
a parent.

Parameters:
  - ctx: context.Context
  - categorySlug: string

Returns:
  - error: apperr.NotFound or execution failures
*/
func (service *Service) DeleteCategory(ctx context.Context, categorySlug string) error {
	return service.repository.DeleteCategoryBySlug(ctx, categorySlug)
}

// # Genres

// ListGenres returns a name-ordered page of genres.
func (service *Service) ListGenres(ctx context.Context, filter ListFilter) ([]*Genre, int, error) {
	genres, total, err := service.repository.ListGenres(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("taxonomy_service_list_genres_failed: %w", err)
	}
	return genres, total, nil
}

// CreateGenre validates and persists a new genre.
func (service *Service) CreateGenre(ctx context.Context, input CreateInput) (*Genre, error) {
	if err := service.validateInput(&input); err != nil {
		return nil, err
	}

	genre := &Genre{
		ID:   uuidv7.New(),
		Name: input.Name,
		Slug: input.Slug,
	}
	if err := service.repository.CreateGenre(ctx, genre); err != nil {
		return nil, err
	}

	return genre, nil
}

// DeleteGenre removes a genre by slug.
func (service *Service) DeleteGenre(ctx context.Context, genreSlug string) error {
	return service.repository.DeleteGenreBySlug(ctx, genreSlug)
}
