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

// PostgresCommentRepository implements [CommentRepository] using pgx.
type PostgresCommentRepository struct {
	db *pgxpool.Pool
}

// NewPostgresCommentRepository creates a new PostgreSQL implementation of the CommentRepository.
func NewPostgresCommentRepository(db *pgxpool.Pool) *PostgresCommentRepository {
	return &PostgresCommentRepository{db: db}
}

func commentColumns() string {
	c := schema.ReviewsComment
	return fmt.Sprintf("c.%s, c.%s, c.%s, a.%s, c.%s, c.%s",
		c.ID, c.ReviewID, c.AuthorID, schema.UsersAccount.Username,
		c.Text, c.PubDate)
}

func commentFrom() string {
	return fmt.Sprintf("%s c JOIN %s a ON a.%s = c.%s",
		schema.ReviewsComment.Table, schema.UsersAccount.Table,
		schema.UsersAccount.ID, schema.ReviewsComment.AuthorID)
}

func scanComment(row pgx.Row) (*Comment, error) {
	comment := &Comment{}
	err := row.Scan(&comment.ID, &comment.ReviewID, &comment.AuthorID,
		&comment.Author, &comment.Text, &comment.PubDate)
	if err != nil {
		return nil, err
	}
	return comment, nil
}

func (repository *PostgresCommentRepository) ListByReview(ctx context.Context, reviewID string, limit, offset int) ([]*Comment, int, error) {
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE %s = $1`,
		schema.ReviewsComment.Table, schema.ReviewsComment.ReviewID)

	total := 0
	if err := repository.db.QueryRow(ctx, countQuery, reviewID).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_comments")
	}

	query := fmt.Sprintf(`SELECT %s FROM %s WHERE c.%s = $1 ORDER BY c.%s ASC LIMIT $2 OFFSET $3`,
		commentColumns(), commentFrom(),
		schema.ReviewsComment.ReviewID, schema.ReviewsComment.PubDate)

	rows, err := repository.db.Query(ctx, query, reviewID, limit, offset)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_comments")
	}
	defer rows.Close()

	comments := make([]*Comment, 0)
	for rows.Next() {
		comment, err := scanComment(rows)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_comment")
		}
		comments = append(comments, comment)
	}

	return comments, total, rows.Err()
}

func (repository *PostgresCommentRepository) FindByID(ctx context.Context, id string) (*Comment, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE c.%s = $1`,
		commentColumns(), commentFrom(), schema.ReviewsComment.ID)

	comment, err := scanComment(repository.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Comment")
		}
		return nil, dberr.Wrap(err, "find_comment")
	}
	return comment, nil
}

func (repository *PostgresCommentRepository) Create(ctx context.Context, comment *Comment) error {
	c := schema.ReviewsComment
	query := fmt.Sprintf(`INSERT INTO %s (%s, %s, %s, %s, %s) VALUES ($1, $2, $3, $4, $5)`,
		c.Table, c.ID, c.ReviewID, c.AuthorID, c.Text, c.PubDate)

	_, err := repository.db.Exec(ctx, query,
		comment.ID, comment.ReviewID, comment.AuthorID, comment.Text, comment.PubDate)
	if err != nil {
		return dberr.Wrap(err, "create_comment")
	}
	return nil
}

func (repository *PostgresCommentRepository) Update(ctx context.Context, comment *Comment) error {
	c := schema.ReviewsComment
	query := fmt.Sprintf(`UPDATE %s SET %s = $1 WHERE %s = $2`,
		c.Table, c.Text, c.ID)

	tag, err := repository.db.Exec(ctx, query, comment.Text, comment.ID)
	if err != nil {
		return dberr.Wrap(err, "update_comment")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Comment")
	}
	return nil
}

func (repository *PostgresCommentRepository) Delete(ctx context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
		schema.ReviewsComment.Table, schema.ReviewsComment.ID)

	tag, err := repository.db.Exec(ctx, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_comment")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Comment")
	}
	return nil
}
