// Copyright (c) 2026 Revora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"time"
)

// UserRepository defines the data access contract for user accounts as seen
// by the authentication flow.
//
// # Review Process
//
// This interface is placed in a separate file from user.go so entity changes
// and storage-contract changes can be reviewed independently by the team.
//
// # Implementations
//
// The canonical implementation for Revora is PostgreSQL (store_postgres.go).
// The wider account-management contract lives in the account package.
type UserRepository interface {
	// FindByUsername returns the account with the given username.
	//
	// Returns [apperr.NotFound] if the username is available.
	FindByUsername(ctx context.Context, username string) (*User, error)

	// Create persists a brand-new user account to the storage.
	//
	// Uniqueness of username and email is enforced by database constraints so
	// that concurrent signups race on the constraint itself. Returns
	// [apperr.Conflict] when the loser of such a race arrives second.
	Create(ctx context.Context, user *User) error

	// UpdateConfirmationCode replaces only the stored confirmation-code hash.
	// This is separate from profile updates to prevent accidental overwrites.
	UpdateConfirmationCode(ctx context.Context, userID, newHash string) error
}

// CodeDispatchLimiter defines the contract for throttling confirmation-code
// emails per address.
//
// # Domain Ownership
//
// Kept alongside [UserRepository] because the cooldown is owned entirely by
// the signup flow, despite living in a volatile store.
type CodeDispatchLimiter interface {
	// Reserve attempts to claim a dispatch slot for the given email.
	//
	// Returns true when the slot was free (a code may be sent now). Returns
	// false plus the remaining cooldown when a recent dispatch exists.
	Reserve(ctx context.Context, email string, cooldown time.Duration) (bool, time.Duration, error)
}
