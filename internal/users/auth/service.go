// Copyright (c) 2026 Revora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/taibuivan/revora/internal/platform/apperr"
	"github.com/taibuivan/revora/internal/platform/constants"
	"github.com/taibuivan/revora/internal/platform/mailer"
	"github.com/taibuivan/revora/internal/platform/sec"
	"github.com/taibuivan/revora/internal/platform/validate"
	"github.com/taibuivan/revora/pkg/uuidv7"
)

// TokenProvider defines the contract for generating security tokens.
type TokenProvider interface {
	// GenerateAccessToken creates a signed JWT string for the given user.
	//
	// # Parameters
	//   - userID: The ID of the account.
	//   - username: The username of the account.
	//   - role: The role of the account.
	//   - isSuperuser: The orthogonal elevated flag, carried in the claims so
	//     permission checks never need a database round-trip.
	//   - timeToLive: The duration before the token expires.
	//
	// # Returns
	//   - A signed JWT string, or an error if signing fails.
	GenerateAccessToken(userID, username string, role sec.UserRole, isSuperuser bool, timeToLive time.Duration) (string, error)
}

// Service implements the signup and token-exchange use cases.
//
// # Review Process
//
// This service is critical for security. Any changes to code generation,
// hashing, or exchange logic must be reviewed by the security team.
type Service struct {
	userRepository UserRepository
	dispatchLimit  CodeDispatchLimiter
	tokenProvider  TokenProvider
	mail           mailer.Mailer
	logger         *slog.Logger
}

// NewService constructs a new [Service] with necessary dependencies.
func NewService(
	userRepo UserRepository,
	dispatchLimit CodeDispatchLimiter,
	tokenProv TokenProvider,
	mail mailer.Mailer,
	logger *slog.Logger,
) *Service {
	return &Service{
		userRepository: userRepo,
		dispatchLimit:  dispatchLimit,
		tokenProvider:  tokenProv,
		mail:           mail,
		logger:         logger,
	}
}

// SignupInput holds the data required to enroll a new member.
type SignupInput struct {
	Username string
	Email    string
}

/*
Signup validates and persists a brand new user account, then dispatches a
confirmation code to the supplied email address.

Description: The account is created Unconfirmed. It becomes usable only after
a successful token exchange with the dispatched code. The code itself is
stored hashed; the plain value exists solely in the outbound email.

Parameters:
  - ctx: context.Context
  - input: The user-provided username and email

Returns:
  - *User: The newly created account
  - error: apperr.ValidationError on malformed fields, apperr.Conflict when
    username or email is already taken, apperr.TooManyRequests when a code
    was dispatched to this email too recently

Business Rules:
  - Usernames match a restricted charset and are never the literal "me".
  - Default role is always 'user'.
  - Email dispatch is best-effort; delivery failure does not roll back the account.
*/
func (service *Service) Signup(ctx context.Context, input SignupInput) (*User, error) {
	// ── 1. Boundary Validation ────────────────────────────────────────────

	validator := &validate.Validator{}
	validator.
		Required("username", input.Username).
		Username("username", input.Username).
		MaxLen("username", input.Username, MaxUsernameLength).
		Required("email", input.Email).
		Email("email", input.Email).
		MaxLen("email", input.Email, MaxEmailLength)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	// ── 2. Dispatch Throttling ────────────────────────────────────────────

	// The cooldown guards the mail channel, not the account row. A Redis
	// outage must not block registrations, so limiter errors are logged and
	// the flow continues.
	allowed, remaining, err := service.dispatchLimit.Reserve(ctx, input.Email, constants.SignupCodeCooldown)
	if err != nil {
		service.logger.Warn("signup_cooldown_unavailable", slog.String("error", err.Error()))
	} else if !allowed {
		return nil, apperr.TooManyRequests(
			fmt.Sprintf("A confirmation code was sent recently, retry in %d seconds", int(remaining.Seconds())+1),
		)
	}

	// ── 3. Confirmation Code ──────────────────────────────────────────────

	plainCode, err := sec.GenerateConfirmationCode()
	if err != nil {
		return nil, fmt.Errorf("auth_service_code_generation_failed: %w", err)
	}

	codeHash, err := sec.HashConfirmationCode(plainCode)
	if err != nil {
		return nil, fmt.Errorf("auth_service_code_hash_failed: %w", err)
	}

	// ── 4. Entity Construction & Persistence ──────────────────────────────

	user := &User{
		ID:                   uuidv7.New(), // Time-sortable ID to prevent PG index fragmentation.
		Username:             input.Username,
		Email:                input.Email,
		Role:                 sec.RoleUser, // Rule: Default role is always 'user'
		ConfirmationCodeHash: codeHash,
	}

	// Uniqueness of username/email is decided by the database constraint so
	// concurrent signups cannot both succeed. The store maps the violation
	// to apperr.Conflict.
	if err := service.userRepository.Create(ctx, user); err != nil {
		return nil, err
	}

	// ── 5. Code Dispatch (fire-and-forget) ────────────────────────────────

	go service.dispatchCode(user.Email, plainCode)

	return user, nil
}

// dispatchCode sends the confirmation email outside the request lifecycle.
// Delivery failure is logged, never surfaced: the user can re-trigger a code
// through support, and the account itself is already persisted.
func (service *Service) dispatchCode(email, plainCode string) {
	body := mailer.ConfirmationCodeHTML(plainCode, constants.SignupCodeCooldown)
	if err := service.mail.Send(email, ConfirmationSubject, body); err != nil {
		service.logger.Error("signup_code_dispatch_failed",
			slog.String("email", email),
			slog.String("error", err.Error()),
		)
	}
}

// TokenResult represents a successfully completed code exchange.
type TokenResult struct {
	Token string `json:"token"`
}

/*
ExchangeToken swaps a username plus confirmation code for a bearer token.

Description: Looks up the account by username, verifies the supplied code
against the stored hash, and issues a signed JWT on match. The code is NOT
rotated or invalidated after use; it remains valid for repeated exchanges
until the next signup replaces it.

Parameters:
  - ctx: context.Context
  - username: string
  - code: string

Returns:
  - *TokenResult: The signed bearer token
  - error: apperr.NotFound when the username does not exist,
    apperr.InvalidCredential when the code does not match
*/
func (service *Service) ExchangeToken(ctx context.Context, username, code string) (*TokenResult, error) {
	// ── 1. Account Lookup ─────────────────────────────────────────────────

	// An unknown username is surfaced as NotFound, deliberately distinct from
	// a code mismatch on an existing account.
	user, err := service.userRepository.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	// ── 2. Code Verification ──────────────────────────────────────────────

	// Bcrypt comparison is constant-time. An account that never went through
	// signup has an empty hash and can never match.
	if !sec.CheckConfirmationCode(code, user.ConfirmationCodeHash) {
		return nil, apperr.InvalidCredential("Confirmation code is not valid for this user")
	}

	// ── 3. Token Issue ────────────────────────────────────────────────────

	token, err := service.tokenProvider.GenerateAccessToken(
		user.ID, user.Username, user.Role, user.IsSuperuser, constants.AccessTokenTTL,
	)
	if err != nil {
		return nil, fmt.Errorf("auth_service_token_issue_failed: %w", err)
	}

	return &TokenResult{Token: token}, nil
}
