// Copyright (c) 2026 Revora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package account manages the administrative and self-service surface of user
accounts.

It builds on the identity entity owned by the auth package and adds the
operations the authentication flow does not need: listing and filtering
accounts, admin-side creation with explicit roles, partial profile updates
with the role-downgrade rule, and deletion.

# Core Responsibility

  - Administration: full CRUD over accounts, restricted to admins.
  - Self-service: the "me" endpoints, where the target is always the requester.
*/
package account

import (
	"context"

	"github.com/taibuivan/revora/internal/users/auth"
	"github.com/taibuivan/revora/pkg/pagination"
)

// ListFilter narrows an account listing.
type ListFilter struct {
	// Search matches usernames by case-insensitive substring. Empty means all.
	Search string

	Page pagination.Params
}

// AccountRepository defines the data access contract for account management.
//
// # Implementations
//
// The canonical implementation is PostgreSQL (store_postgres.go). The
// authentication flow holds its own narrower contract in the auth package;
// both are backed by the same users.account table.
type AccountRepository interface {
	// FindByID returns the account with the given ID.
	//
	// Returns [apperr.NotFound] if the account does not exist.
	FindByID(ctx context.Context, id string) (*auth.User, error)

	// FindByUsername returns the account with the given username.
	//
	// Returns [apperr.NotFound] if the username is available.
	FindByUsername(ctx context.Context, username string) (*auth.User, error)

	// List returns a page of accounts matching the filter plus the total count.
	List(ctx context.Context, filter ListFilter) ([]*auth.User, int, error)

	// Create persists an admin-created account.
	//
	// Returns [apperr.Conflict] when username or email is already taken.
	Create(ctx context.Context, user *auth.User) error

	// Update persists the mutable profile fields plus the role.
	// The confirmation-code hash is never touched here.
	Update(ctx context.Context, user *auth.User) error

	// DeleteByUsername removes the account row. Reviews and comments authored
	// by the account are removed by the database cascade.
	//
	// Returns [apperr.NotFound] if the username does not exist.
	DeleteByUsername(ctx context.Context, username string) error
}
