// Copyright (c) 2026 Revora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package auth defines the user entity and the signup/token-exchange flow.
//
// # Architecture
//
// The entity in this package represents the "Truth" of the identity system.
// It has no dependencies on outer layers (like databases, APIs, or libraries),
// which keeps the core logic highly testable and resilient to technology changes.
package auth

import (
	"time"

	"github.com/taibuivan/revora/internal/platform/sec"
)

// User represents a registered member of the Revora platform.
//
// # Rules
//   - Username is unique, pattern-constrained, and never the reserved literal "me".
//   - Email is unique and validated.
//   - ConfirmationCodeHash is generated exclusively via the signup Service;
//     the plain code exists only in the dispatched email.
//   - Role defaults to "user"; only elevated actors may change it.
//   - IsSuperuser is orthogonal to Role: a superuser keeps whatever role the
//     row carries but gains admin capability regardless.
//
// There is no persisted "confirmed" flag. An account is confirmed implicitly
// the moment a token exchange supplies a matching code.
type User struct {
	ID                   string       `json:"id"`
	Username             string       `json:"username"`
	Email                string       `json:"email"`
	FirstName            string       `json:"first_name"`
	LastName             string       `json:"last_name"`
	Bio                  string       `json:"bio"`
	Role                 sec.UserRole `json:"role"`
	IsSuperuser          bool         `json:"-"` // Internal capability flag, never exposed.
	ConfirmationCodeHash string       `json:"-"` // Explicitly omitted from JSON for security.
	CreatedAt            time.Time    `json:"created_at"`
	UpdatedAt            time.Time    `json:"updated_at"`
}
