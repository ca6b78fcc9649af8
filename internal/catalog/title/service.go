// Copyright (c) 2026 Revora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package title

import (
	"context"
	"fmt"

	"github.com/taibuivan/revora/internal/platform/validate"
	"github.com/taibuivan/revora/pkg/uuidv7"
)

// Service orchestrates business logic for the title catalogue.
type Service struct {
	repository Repository
}

// NewService constructs a new [Service] with its repository dependency.
func NewService(repository Repository) *Service {
	return &Service{repository: repository}
}

/*
List returns a page of hydrated titles.

Parameters:
  - ctx: context.Context
  - filter: ListFilter

Returns:
  - []*Title: The page of titles, ratings and genre sets populated
  - int: Total matching rows
  - error: Execution failures
*/
func (service *Service) List(ctx context.Context, filter ListFilter) ([]*Title, int, error) {
	titles, total, err := service.repository.List(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("title_service_list_failed: %w", err)
	}
	return titles, total, nil
}

/*
Get returns one hydrated title by ID.

Parameters:
  - ctx: context.Context
  - id: string

Returns:
  - *Title: The hydrated title
  - error: apperr.NotFound or execution failures
*/
func (service *Service) Get(ctx context.Context, id string) (*Title, error) {
	return service.repository.FindByID(ctx, id)
}

// CreateInput holds the fields for a new title. Genre and category arrive
// as taxonomy slugs, mirroring the API payload.
type CreateInput struct {
	Name         string
	Year         int
	Description  string
	GenreSlugs   []string
	CategorySlug string
}

/*
Create validates and persists a new title.

Description: The release year may not exceed the current wall-clock year,
checked at call time rather than frozen at startup. Genre and category slugs
are resolved inside the store transaction; an unresolvable slug surfaces as
a field-level validation error, exactly like a malformed year.

Parameters:
  - ctx: context.Context
  - input: CreateInput

Returns:
  - *Title: The created title, hydrated
  - error: apperr.ValidationError or execution failures
*/
func (service *Service) Create(ctx context.Context, input CreateInput) (*Title, error) {
	// ── 1. Boundary Validation ────────────────────────────────────────────

	validator := &validate.Validator{}
	validator.
		Required("name", input.Name).
		Custom("year", input.Year <= 0, "must be a positive year").
		YearNotFuture("year", input.Year)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	// ── 2. Persistence ────────────────────────────────────────────────────

	entity := &Title{
		ID:          uuidv7.New(),
		Name:        input.Name,
		Year:        input.Year,
		Description: input.Description,
	}

	err := service.repository.Create(ctx, WriteModel{
		Title:        entity,
		GenreSlugs:   dedupeSlugs(input.GenreSlugs),
		CategorySlug: input.CategorySlug,
	})
	if err != nil {
		return nil, err
	}

	// Re-read for full hydration (category entity, genre names).
	return service.repository.FindByID(ctx, entity.ID)
}

// UpdateInput defines the mutable subset of title fields. Nil pointers leave
// the stored value untouched.
type UpdateInput struct {
	Name        *string
	Year        *int
	Description *string

	// GenreSlugs replaces the whole genre set when non-nil.
	GenreSlugs *[]string

	// CategorySlug replaces the category reference when non-nil; an empty
	// string clears it.
	CategorySlug *string
}

/*
Update applies a partial set of changes to a title.

Parameters:
  - ctx: context.Context
  - id: string
  - input: UpdateInput

Returns:
  - *Title: The updated title, hydrated
  - error: apperr.NotFound, apperr.ValidationError, execution failures
*/
func (service *Service) Update(ctx context.Context, id string, input UpdateInput) (*Title, error) {
	// ── 1. Fetch Current State ────────────────────────────────────────────

	entity, err := service.repository.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// ── 2. Overlay Fields ─────────────────────────────────────────────────

	if input.Name != nil {
		entity.Name = *input.Name
	}
	if input.Year != nil {
		entity.Year = *input.Year
	}
	if input.Description != nil {
		entity.Description = *input.Description
	}

	validator := &validate.Validator{}
	validator.
		Required("name", entity.Name).
		Custom("year", entity.Year <= 0, "must be a positive year").
		YearNotFuture("year", entity.Year)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	// ── 3. Persistence ────────────────────────────────────────────────────

	model := WriteModel{Title: entity}
	if input.GenreSlugs != nil {
		// A nil WriteModel slice means "untouched", so an explicit null in
		// the payload becomes an allocated empty set.
		slugs := *input.GenreSlugs
		if slugs == nil {
			slugs = []string{}
		}
		model.GenreSlugs = dedupeSlugs(slugs)
	}
	if input.CategorySlug != nil {
		model.CategorySlug = *input.CategorySlug
		model.ClearCategory = *input.CategorySlug == ""
	}

	if err := service.repository.Update(ctx, model); err != nil {
		return nil, err
	}

	return service.repository.FindByID(ctx, id)
}

/*
Delete removes a title and, through the database cascade, every review and
comment hanging off it.

Parameters:
  - ctx: context.Context
  - id: string

Returns:
  - error: apperr.NotFound or execution failures
*/
func (service *Service) Delete(ctx context.Context, id string) error {
	return service.repository.Delete(ctx, id)
}

// dedupeSlugs drops repeated slugs while keeping first-seen order, so a
// payload listing the same genre twice links it once. Nil and empty slices
// pass through unchanged; the distinction carries replace-vs-untouched
// semantics in WriteModel.
func dedupeSlugs(slugs []string) []string {
	if len(slugs) < 2 {
		return slugs
	}

	seen := make(map[string]struct{}, len(slugs))
	deduped := make([]string, 0, len(slugs))
	for _, slug := range slugs {
		if _, ok := seen[slug]; ok {
			continue
		}
		seen[slug] = struct{}{}
		deduped = append(deduped, slug)
	}

	return deduped
}
