// Copyright (c) 2026 Revora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package reviews

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/revora/internal/platform/apperr"
	"github.com/taibuivan/revora/internal/platform/database/schema"
	"github.com/taibuivan/revora/internal/platform/dberr"
)

// PostgresReviewRepository implements [ReviewRepository] using pgx.
type PostgresReviewRepository struct {
	db *pgxpool.Pool
}

// NewPostgresReviewRepository creates a new PostgreSQL implementation of the ReviewRepository.
func NewPostgresReviewRepository(db *pgxpool.Pool) *PostgresReviewRepository {
	return &PostgresReviewRepository{db: db}
}

// reviewColumns lists the selected columns, author username joined in from
// the account table.
func reviewColumns() string {
	r := schema.ReviewsReview
	return fmt.Sprintf("r.%s, r.%s, r.%s, a.%s, r.%s, r.%s, r.%s",
		r.ID, r.TitleID, r.AuthorID, schema.UsersAccount.Username,
		r.Text, r.Score, r.PubDate)
}

func reviewFrom() string {
	return fmt.Sprintf("%s r JOIN %s a ON a.%s = r.%s",
		schema.ReviewsReview.Table, schema.UsersAccount.Table,
		schema.UsersAccount.ID, schema.ReviewsReview.AuthorID)
}

func scanReview(row pgx.Row) (*Review, error) {
	review := &Review{}
	err := row.Scan(&review.ID, &review.TitleID, &review.AuthorID,
		&review.Author, &review.Text, &review.Score, &review.PubDate)
	if err != nil {
		return nil, err
	}
	return review, nil
}

func (repository *PostgresReviewRepository) ListByTitle(ctx context.Context, titleID string, limit, offset int) ([]*Review, int, error) {
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE %s = $1`,
		schema.ReviewsReview.Table, schema.ReviewsReview.TitleID)

	total := 0
	if err := repository.db.QueryRow(ctx, countQuery, titleID).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_reviews")
	}

	query := fmt.Sprintf(`SELECT %s FROM %s WHERE r.%s = $1 ORDER BY r.%s ASC LIMIT $2 OFFSET $3`,
		reviewColumns(), reviewFrom(),
		schema.ReviewsReview.TitleID, schema.ReviewsReview.PubDate)

	rows, err := repository.db.Query(ctx, query, titleID, limit, offset)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_reviews")
	}
	defer rows.Close()

	reviews := make([]*Review, 0)
	for rows.Next() {
		review, err := scanReview(rows)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_review")
		}
		reviews = append(reviews, review)
	}

	return reviews, total, rows.Err()
}

func (repository *PostgresReviewRepository) FindByID(ctx context.Context, id string) (*Review, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE r.%s = $1`,
		reviewColumns(), reviewFrom(), schema.ReviewsReview.ID)

	review, err := scanReview(repository.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Review")
		}
		return nil, dberr.Wrap(err, "find_review")
	}
	return review, nil
}

func (repository *PostgresReviewRepository) Create(ctx context.Context, review *Review) error {
	r := schema.ReviewsReview
	query := fmt.Sprintf(`INSERT INTO %s (%s, %s, %s, %s, %s, %s) VALUES ($1, $2, $3, $4, $5, $6)`,
		r.Table, r.ID, r.TitleID, r.AuthorID, r.Text, r.Score, r.PubDate)

	_, err := repository.db.Exec(ctx, query,
		review.ID, review.TitleID, review.AuthorID, review.Text, review.Score, review.PubDate)
	if err != nil {
		return dberr.Wrap(err, "You have already reviewed this title")
	}
	return nil
}

func (repository *PostgresReviewRepository) Update(ctx context.Context, review *Review) error {
	r := schema.ReviewsReview
	query := fmt.Sprintf(`UPDATE %s SET %s = $1, %s = $2 WHERE %s = $3`,
		r.Table, r.Text, r.Score, r.ID)

	tag, err := repository.db.Exec(ctx, query, review.Text, review.Score, review.ID)
	if err != nil {
		return dberr.Wrap(err, "update_review")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Review")
	}
	return nil
}

func (repository *PostgresReviewRepository) Delete(ctx context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
		schema.ReviewsReview.Table, schema.ReviewsReview.ID)

	tag, err := repository.db.Exec(ctx, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_review")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Review")
	}
	return nil
}
