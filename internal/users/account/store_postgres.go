// Copyright (c) 2026 Revora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/revora/internal/platform/apperr"
	"github.com/taibuivan/revora/internal/platform/database/schema"
	"github.com/taibuivan/revora/internal/platform/dberr"
	"github.com/taibuivan/revora/internal/users/auth"
)

// # Repository Implementation

// PostgresAccountRepository implements [AccountRepository] using pgx.
type PostgresAccountRepository struct {
	pool *pgxpool.Pool
}

// NewAccountRepository creates a new Postgres implementation for account management.
func NewAccountRepository(pool *pgxpool.Pool) *PostgresAccountRepository {
	return &PostgresAccountRepository{pool: pool}
}

// accountColumns is the shared SELECT column list, aligned with scanAccount.
func accountColumns() string {
	return fmt.Sprintf("%s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s",
		schema.UsersAccount.ID, schema.UsersAccount.Username, schema.UsersAccount.Email,
		schema.UsersAccount.FirstName, schema.UsersAccount.LastName, schema.UsersAccount.Bio,
		schema.UsersAccount.Role, schema.UsersAccount.IsSuperuser, schema.UsersAccount.ConfirmationCode,
		schema.UsersAccount.CreatedAt, schema.UsersAccount.UpdatedAt,
	)
}

// scanAccount hydrates one account row in accountColumns order.
func scanAccount(row pgx.Row) (*auth.User, error) {
	user := &auth.User{}
	err := row.Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.FirstName,
		&user.LastName,
		&user.Bio,
		&user.Role,
		&user.IsSuperuser,
		&user.ConfirmationCodeHash,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return user, nil
}

/*
FindByID retrieves a user record from the users.account table.

Parameters:
  - context: context.Context
  - id: string (UUID)

Returns:
  - *auth.User: Hydrated identity entity
  - error: apperr.NotFound or database execution failure
*/
func (repository *PostgresAccountRepository) FindByID(context context.Context, id string) (*auth.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		accountColumns(), schema.UsersAccount.Table, schema.UsersAccount.ID)

	user, err := scanAccount(repository.pool.QueryRow(context, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Account")
		}
		return nil, fmt.Errorf("postgres_account_repo_find_by_id_failed: %w", err)
	}

	return user, nil
}

/*
FindByUsername retrieves a user record by its unique username.

Parameters:
  - context: context.Context
  - username: string

Returns:
  - *auth.User: Hydrated identity entity
  - error: apperr.NotFound or database execution failure
*/
func (repository *PostgresAccountRepository) FindByUsername(context context.Context, username string) (*auth.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		accountColumns(), schema.UsersAccount.Table, schema.UsersAccount.Username)

	user, err := scanAccount(repository.pool.QueryRow(context, query, username))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Account")
		}
		return nil, fmt.Errorf("postgres_account_repo_find_by_username_failed: %w", err)
	}

	return user, nil
}

/*
List returns a page of accounts plus the total count of matches.

Description: The optional search term matches usernames case-insensitively
by substring. Results are ordered by username for stable paging.

Parameters:
  - context: context.Context
  - filter: ListFilter

Returns:
  - []*auth.User: The page of accounts
  - int: Total matching rows ignoring pagination
  - error: Execution failures
*/
func (repository *PostgresAccountRepository) List(context context.Context, filter ListFilter) ([]*auth.User, int, error) {
	where := ""
	args := []interface{}{}
	if filter.Search != "" {
		where = fmt.Sprintf("WHERE %s ILIKE $1", schema.UsersAccount.Username)
		args = append(args, "%"+filter.Search+"%")
	}

	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM %s %s`, schema.UsersAccount.Table, where)

	total := 0
	if err := repository.pool.QueryRow(context, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("postgres_account_repo_count_failed: %w", err)
	}

	query := fmt.Sprintf(`SELECT %s FROM %s %s ORDER BY %s ASC LIMIT $%d OFFSET $%d`,
		accountColumns(), schema.UsersAccount.Table, where,
		schema.UsersAccount.Username, len(args)+1, len(args)+2)
	args = append(args, filter.Page.Limit, filter.Page.Offset())

	rows, err := repository.pool.Query(context, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("postgres_account_repo_list_failed: %w", err)
	}
	defer rows.Close()

	users := make([]*auth.User, 0)
	for rows.Next() {
		user, err := scanAccount(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("postgres_account_repo_scan_failed: %w", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("postgres_account_repo_list_failed: %w", err)
	}

	return users, total, nil
}

/*
Create persists an admin-created account.

Parameters:
  - context: context.Context
  - user: *auth.User

Returns:
  - error: apperr.Conflict on duplicate username/email, execution failures
*/
func (repository *PostgresAccountRepository) Create(context context.Context, user *auth.User) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		schema.UsersAccount.Table,
		schema.UsersAccount.ID, schema.UsersAccount.Username, schema.UsersAccount.Email,
		schema.UsersAccount.FirstName, schema.UsersAccount.LastName, schema.UsersAccount.Bio,
		schema.UsersAccount.Role, schema.UsersAccount.IsSuperuser, schema.UsersAccount.ConfirmationCode,
		schema.UsersAccount.CreatedAt, schema.UsersAccount.UpdatedAt,
	)

	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	_, err := repository.pool.Exec(context, query,
		user.ID, user.Username, user.Email,
		user.FirstName, user.LastName, user.Bio,
		user.Role, user.IsSuperuser, user.ConfirmationCodeHash,
		user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		if dberr.IsUniqueViolation(err) {
			return apperr.Conflict("Username or email is already taken")
		}
		return fmt.Errorf("postgres_account_repo_create_failed: %w", err)
	}

	return nil
}

/*
Update persists the mutable profile fields plus the role.

Parameters:
  - context: context.Context
  - user: *auth.User (must carry a valid ID)

Returns:
  - error: apperr.NotFound when the row vanished, apperr.Conflict on a
    duplicate email, execution failures
*/
func (repository *PostgresAccountRepository) Update(context context.Context, user *auth.User) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = $5, %s = $6, %s = $7
		WHERE %s = $1`,
		schema.UsersAccount.Table,
		schema.UsersAccount.Email, schema.UsersAccount.FirstName, schema.UsersAccount.LastName,
		schema.UsersAccount.Bio, schema.UsersAccount.Role, schema.UsersAccount.UpdatedAt,
		schema.UsersAccount.ID,
	)

	user.UpdatedAt = time.Now()

	tag, err := repository.pool.Exec(context, query,
		user.ID,
		user.Email, user.FirstName, user.LastName,
		user.Bio, user.Role, user.UpdatedAt,
	)
	if err != nil {
		if dberr.IsUniqueViolation(err) {
			return apperr.Conflict("Email is already taken")
		}
		return fmt.Errorf("postgres_account_repo_update_failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Account")
	}

	return nil
}

/*
DeleteByUsername removes the account row.

Description: Reviews and comments authored by the account are removed by the
ON DELETE CASCADE constraints, mirroring the ownership semantics of the domain.

Parameters:
  - context: context.Context
  - username: string

Returns:
  - error: apperr.NotFound or execution failures
*/
func (repository *PostgresAccountRepository) DeleteByUsername(context context.Context, username string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
		schema.UsersAccount.Table, schema.UsersAccount.Username)

	tag, err := repository.pool.Exec(context, query, username)
	if err != nil {
		return fmt.Errorf("postgres_account_repo_delete_failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Account")
	}

	return nil
}
