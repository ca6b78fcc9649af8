// Copyright (c) 2026 Revora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package title

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/revora/internal/catalog/taxonomy"
	"github.com/taibuivan/revora/internal/platform/apperr"
	"github.com/taibuivan/revora/pkg/uuidv7"
)

// PostgresRepository implements [Repository] using pgx.
//
// # Query Shape
//
// Reads join the category and aggregate the review scores in one pass, then
// hydrate the genre sets with a single ANY() query over the page of IDs.
// Writes that touch the junction table run inside one transaction with the
// slug resolution, so a concurrent taxonomy change cannot leave a dangling
// reference.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL implementation of the Repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// selectColumns is the hydration column list shared by List and FindByID.
const selectColumns = `
	t.id, t.name, t.year, t.description, t.createdat, t.updatedat,
	c.id, c.name, c.slug,
	AVG(r.score)::float8`

const fromClause = `
	FROM catalog.title t
	LEFT JOIN catalog.category c ON c.id = t.categoryid
	LEFT JOIN reviews.review r ON r.titleid = t.id`

// buildWhere translates the filter into a WHERE clause with numbered args.
func buildWhere(filter ListFilter) (string, []interface{}) {
	conditions := []string{}
	args := []interface{}{}

	next := func() string { return "$" + strconv.Itoa(len(args)) }

	if filter.CategorySlug != "" {
		args = append(args, filter.CategorySlug)
		conditions = append(conditions, "c.slug = "+next())
	}
	if filter.GenreSlug != "" {
		args = append(args, filter.GenreSlug)
		conditions = append(conditions, `EXISTS (
			SELECT 1 FROM catalog.genretitle gt
			JOIN catalog.genre g ON g.id = gt.genreid
			WHERE gt.titleid = t.id AND g.slug = `+next()+")")
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		conditions = append(conditions, "t.name ILIKE "+next())
	}
	if filter.Year != 0 {
		args = append(args, filter.Year)
		conditions = append(conditions, "t.year = "+next())
	}

	if len(conditions) == 0 {
		return "", args
	}

	where := " WHERE " + conditions[0]
	for _, condition := range conditions[1:] {
		where += " AND " + condition
	}
	return where, args
}

// scanTitle hydrates one joined row. The category columns are nullable.
func scanTitle(rows pgx.Rows) (*Title, error) {
	entity := &Title{}
	var categoryID, categoryName, categorySlug *string

	err := rows.Scan(
		&entity.ID, &entity.Name, &entity.Year, &entity.Description,
		&entity.CreatedAt, &entity.UpdatedAt,
		&categoryID, &categoryName, &categorySlug,
		&entity.Rating,
	)
	if err != nil {
		return nil, err
	}

	if categoryID != nil {
		entity.Category = &taxonomy.Category{
			ID:   *categoryID,
			Name: *categoryName,
			Slug: *categorySlug,
		}
	}
	entity.Genres = make([]taxonomy.Genre, 0)

	return entity, nil
}

// collectTitles drains a joined result set. An error the driver reports
// after iteration surfaces instead of reading as a truncated page.
func collectTitles(rows pgx.Rows) ([]*Title, error) {
	titles := make([]*Title, 0)
	for rows.Next() {
		entity, err := scanTitle(rows)
		if err != nil {
			return nil, fmt.Errorf("postgres_title_repo_scan_failed: %w", err)
		}
		titles = append(titles, entity)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres_title_repo_list_failed: %w", err)
	}

	return titles, nil
}

func (repository *PostgresRepository) List(ctx context.Context, filter ListFilter) ([]*Title, int, error) {
	where, args := buildWhere(filter)

	countQuery := `SELECT COUNT(DISTINCT t.id)` + fromClause + where

	total := 0
	if err := repository.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("postgres_title_repo_count_failed: %w", err)
	}

	query := `SELECT ` + selectColumns + fromClause + where + `
		GROUP BY t.id, t.name, t.year, t.description, t.createdat, t.updatedat, c.id, c.name, c.slug
		ORDER BY t.id ASC
		LIMIT $` + strconv.Itoa(len(args)+1) + ` OFFSET $` + strconv.Itoa(len(args)+2)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := repository.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("postgres_title_repo_list_failed: %w", err)
	}
	defer rows.Close()

	titles, err := collectTitles(rows)
	if err != nil {
		return nil, 0, err
	}
	rows.Close()

	if err := repository.hydrateGenres(ctx, titles); err != nil {
		return nil, 0, err
	}

	return titles, total, nil
}

func (repository *PostgresRepository) FindByID(ctx context.Context, id string) (*Title, error) {
	query := `SELECT ` + selectColumns + fromClause + `
		WHERE t.id = $1
		GROUP BY t.id, t.name, t.year, t.description, t.createdat, t.updatedat, c.id, c.name, c.slug`

	rows, err := repository.pool.Query(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("postgres_title_repo_find_failed: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		// A broken stream must not masquerade as a missing title.
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("postgres_title_repo_find_failed: %w", err)
		}
		return nil, apperr.NotFound("Title")
	}

	entity, err := scanTitle(rows)
	if err != nil {
		return nil, fmt.Errorf("postgres_title_repo_scan_failed: %w", err)
	}
	rows.Close()

	if err := repository.hydrateGenres(ctx, []*Title{entity}); err != nil {
		return nil, err
	}

	return entity, nil
}

func (repository *PostgresRepository) Exists(ctx context.Context, id string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM catalog.title WHERE id = $1)`

	exists := false
	if err := repository.pool.QueryRow(ctx, query, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("postgres_title_repo_exists_failed: %w", err)
	}
	return exists, nil
}

// hydrateGenres populates the genre sets for a page of titles in one query.
// Junction rows whose genre was deleted carry a null reference and are
// skipped by the inner join.
func (repository *PostgresRepository) hydrateGenres(ctx context.Context, titles []*Title) error {
	if len(titles) == 0 {
		return nil
	}

	ids := make([]string, 0, len(titles))
	byID := make(map[string]*Title, len(titles))
	for _, entity := range titles {
		ids = append(ids, entity.ID)
		byID[entity.ID] = entity
	}

	const query = `
		SELECT gt.titleid, g.id, g.name, g.slug
		FROM catalog.genretitle gt
		JOIN catalog.genre g ON g.id = gt.genreid
		WHERE gt.titleid = ANY($1)
		ORDER BY g.name ASC`

	rows, err := repository.pool.Query(ctx, query, ids)
	if err != nil {
		return fmt.Errorf("postgres_title_repo_genres_failed: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var ownerID string
		genre := taxonomy.Genre{}
		if err := rows.Scan(&ownerID, &genre.ID, &genre.Name, &genre.Slug); err != nil {
			return fmt.Errorf("postgres_title_repo_genre_scan_failed: %w", err)
		}
		if owner, ok := byID[ownerID]; ok {
			owner.Genres = append(owner.Genres, genre)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("postgres_title_repo_genres_failed: %w", err)
	}

	return nil
}

func (repository *PostgresRepository) Create(ctx context.Context, model WriteModel) error {
	tx, err := repository.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("postgres_title_repo_begin_failed: %w", err)
	}
	defer tx.Rollback(ctx)

	entity := model.Title
	now := time.Now()
	entity.CreatedAt = now
	entity.UpdatedAt = now

	categoryID, err := resolveCategory(ctx, tx, model.CategorySlug)
	if err != nil {
		return err
	}

	const insert = `
		INSERT INTO catalog.title (id, name, year, description, categoryid, createdat, updatedat)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err = tx.Exec(ctx, insert,
		entity.ID, entity.Name, entity.Year, entity.Description,
		categoryID, entity.CreatedAt, entity.UpdatedAt)
	if err != nil {
		return fmt.Errorf("postgres_title_repo_create_failed: %w", err)
	}

	if err := replaceGenres(ctx, tx, entity.ID, model.GenreSlugs, false); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("postgres_title_repo_commit_failed: %w", err)
	}
	return nil
}

func (repository *PostgresRepository) Update(ctx context.Context, model WriteModel) error {
	tx, err := repository.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("postgres_title_repo_begin_failed: %w", err)
	}
	defer tx.Rollback(ctx)

	entity := model.Title
	entity.UpdatedAt = time.Now()

	// The category reference has three states: untouched, replaced, cleared.
	if model.ClearCategory {
		const clear = `UPDATE catalog.title SET categoryid = NULL WHERE id = $1`
		if _, err := tx.Exec(ctx, clear, entity.ID); err != nil {
			return fmt.Errorf("postgres_title_repo_clear_category_failed: %w", err)
		}
	} else if model.CategorySlug != "" {
		categoryID, err := resolveCategory(ctx, tx, model.CategorySlug)
		if err != nil {
			return err
		}
		const set = `UPDATE catalog.title SET categoryid = $2 WHERE id = $1`
		if _, err := tx.Exec(ctx, set, entity.ID, categoryID); err != nil {
			return fmt.Errorf("postgres_title_repo_set_category_failed: %w", err)
		}
	}

	const update = `
		UPDATE catalog.title
		SET name = $2, year = $3, description = $4, updatedat = $5
		WHERE id = $1`

	tag, err := tx.Exec(ctx, update,
		entity.ID, entity.Name, entity.Year, entity.Description, entity.UpdatedAt)
	if err != nil {
		return fmt.Errorf("postgres_title_repo_update_failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Title")
	}

	if model.GenreSlugs != nil {
		if err := replaceGenres(ctx, tx, entity.ID, model.GenreSlugs, true); err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("postgres_title_repo_commit_failed: %w", err)
	}
	return nil
}

func (repository *PostgresRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM catalog.title WHERE id = $1`

	tag, err := repository.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("postgres_title_repo_delete_failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Title")
	}

	return nil
}

// resolveCategory maps a category slug to its ID inside the transaction.
// An empty slug resolves to no category.
func resolveCategory(ctx context.Context, tx pgx.Tx, slug string) (*string, error) {
	if slug == "" {
		return nil, nil
	}

	const query = `SELECT id FROM catalog.category WHERE slug = $1`

	var id string
	err := tx.QueryRow(ctx, query, slug).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.ValidationError("Unknown category",
				apperr.FieldError{Field: "category", Message: "slug does not exist"})
		}
		return nil, fmt.Errorf("postgres_title_repo_resolve_category_failed: %w", err)
	}

	return &id, nil
}

// replaceGenres rewrites the junction rows for a title. Each slug must
// resolve to exactly one genre; an unknown slug aborts the transaction.
func replaceGenres(ctx context.Context, tx pgx.Tx, titleID string, slugs []string, clearFirst bool) error {
	if clearFirst {
		const clear = `DELETE FROM catalog.genretitle WHERE titleid = $1`
		if _, err := tx.Exec(ctx, clear, titleID); err != nil {
			return fmt.Errorf("postgres_title_repo_clear_genres_failed: %w", err)
		}
	}

	const insert = `
		INSERT INTO catalog.genretitle (id, genreid, titleid)
		SELECT $1, g.id, $2 FROM catalog.genre g WHERE g.slug = $3`

	for _, slug := range slugs {
		tag, err := tx.Exec(ctx, insert, uuidv7.New(), titleID, slug)
		if err != nil {
			return fmt.Errorf("postgres_title_repo_link_genre_failed: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return apperr.ValidationError("Unknown genre",
				apperr.FieldError{Field: "genre", Message: "slug '" + slug + "' does not exist"})
		}
	}

	return nil
}
