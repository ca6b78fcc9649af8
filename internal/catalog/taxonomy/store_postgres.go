// Copyright (c) 2026 Revora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package taxonomy

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/revora/internal/platform/apperr"
	"github.com/taibuivan/revora/internal/platform/database/schema"
	"github.com/taibuivan/revora/internal/platform/dberr"
)

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL implementation of the Repository.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// # Categories

func (repository *PostgresRepository) ListCategories(context context.Context, filter ListFilter) ([]*Category, int, error) {
	where := ""
	args := []interface{}{}
	if filter.Search != "" {
		where = fmt.Sprintf("WHERE %s ILIKE $1", schema.CatalogCategory.Name)
		args = append(args, "%"+filter.Search+"%")
	}

	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM %s %s`, schema.CatalogCategory.Table, where)

	total := 0
	if err := repository.db.QueryRow(context, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_categories")
	}

	query := fmt.Sprintf(`SELECT %s, %s, %s, %s FROM %s %s ORDER BY %s ASC LIMIT $%d OFFSET $%d`,
		schema.CatalogCategory.ID, schema.CatalogCategory.Name,
		schema.CatalogCategory.Slug, schema.CatalogCategory.CreatedAt,
		schema.CatalogCategory.Table, where,
		schema.CatalogCategory.Name, len(args)+1, len(args)+2)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_categories")
	}
	defer rows.Close()

	categories := make([]*Category, 0)
	for rows.Next() {
		category := &Category{}
		if err := rows.Scan(&category.ID, &category.Name, &category.Slug, &category.CreatedAt); err != nil {
			return nil, 0, dberr.Wrap(err, "scan_category")
		}
		categories = append(categories, category)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, "list_categories")
	}

	return categories, total, nil
}

func (repository *PostgresRepository) CreateCategory(context context.Context, category *Category) error {
	query := fmt.Sprintf(`INSERT INTO %s (%s, %s, %s, %s) VALUES ($1, $2, $3, $4)`,
		schema.CatalogCategory.Table,
		schema.CatalogCategory.ID, schema.CatalogCategory.Name,
		schema.CatalogCategory.Slug, schema.CatalogCategory.CreatedAt)

	category.CreatedAt = time.Now()

	_, err := repository.db.Exec(context, query,
		category.ID, category.Name, category.Slug, category.CreatedAt)
	if err != nil {
		return dberr.Wrap(err, "Category slug is already taken")
	}

	return nil
}

func (repository *PostgresRepository) DeleteCategoryBySlug(context context.Context, slug string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
		schema.CatalogCategory.Table, schema.CatalogCategory.Slug)

	tag, err := repository.db.Exec(context, query, slug)
	if err != nil {
		return dberr.Wrap(err, "delete_category")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Category")
	}

	return nil
}

// # Genres

func (repository *PostgresRepository) ListGenres(context context.Context, filter ListFilter) ([]*Genre, int, error) {
	where := ""
	args := []interface{}{}
	if filter.Search != "" {
		where = fmt.Sprintf("WHERE %s ILIKE $1", schema.CatalogGenre.Name)
		args = append(args, "%"+filter.Search+"%")
	}

	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM %s %s`, schema.CatalogGenre.Table, where)

	total := 0
	if err := repository.db.QueryRow(context, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_genres")
	}

	query := fmt.Sprintf(`SELECT %s, %s, %s, %s FROM %s %s ORDER BY %s ASC LIMIT $%d OFFSET $%d`,
		schema.CatalogGenre.ID, schema.CatalogGenre.Name,
		schema.CatalogGenre.Slug, schema.CatalogGenre.CreatedAt,
		schema.CatalogGenre.Table, where,
		schema.CatalogGenre.Name, len(args)+1, len(args)+2)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_genres")
	}
	defer rows.Close()

	genres := make([]*Genre, 0)
	for rows.Next() {
		genre := &Genre{}
		if err := rows.Scan(&genre.ID, &genre.Name, &genre.Slug, &genre.CreatedAt); err != nil {
			return nil, 0, dberr.Wrap(err, "scan_genre")
		}
		genres = append(genres, genre)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, "list_genres")
	}

	return genres, total, nil
}

func (repository *PostgresRepository) CreateGenre(context context.Context, genre *Genre) error {
	query := fmt.Sprintf(`INSERT INTO %s (%s, %s, %s, %s) VALUES ($1, $2, $3, $4)`,
		schema.CatalogGenre.Table,
		schema.CatalogGenre.ID, schema.CatalogGenre.Name,
		schema.CatalogGenre.Slug, schema.CatalogGenre.CreatedAt)

	genre.CreatedAt = time.Now()

	_, err := repository.db.Exec(context, query,
		genre.ID, genre.Name, genre.Slug, genre.CreatedAt)
	if err != nil {
		return dberr.Wrap(err, "Genre slug is already taken")
	}

	return nil
}

func (repository *PostgresRepository) DeleteGenreBySlug(context context.Context, slug string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
		schema.CatalogGenre.Table, schema.CatalogGenre.Slug)

	tag, err := repository.db.Exec(context, query, slug)
	if err != nil {
		return dberr.Wrap(err, "delete_genre")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Genre")
	}

	return nil
}
