// Copyright (c) 2026 Revora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/taibuivan/revora/internal/platform/perm"
	"github.com/taibuivan/revora/internal/platform/sec"
	"github.com/taibuivan/revora/internal/platform/validate"
	"github.com/taibuivan/revora/internal/users/auth"
	"github.com/taibuivan/revora/pkg/uuidv7"
)

// # Service Layer

// Service orchestrates business logic for account management.
//
// It ensures that admin-side creation, partial updates, and the
// role-downgrade rule follow established business constraints.
type Service struct {
	accountRepository AccountRepository
	logger            *slog.Logger
}

// NewService constructs a new [Service] with its repository dependency.
func NewService(accountRepo AccountRepository, logger *slog.Logger) *Service {
	return &Service{
		accountRepository: accountRepo,
		logger:            logger,
	}
}

// # Administration

/*
List returns a page of accounts, optionally filtered by username substring.

Parameters:
  - ctx: context.Context
  - filter: ListFilter

Returns:
  - []*auth.User: The page of accounts
  - int: Total number of matching accounts
  - error: Execution failures
*/
func (service *Service) List(ctx context.Context, filter ListFilter) ([]*auth.User, int, error) {
	users, total, err := service.accountRepository.List(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("account_service_list_failed: %w", err)
	}
	return users, total, nil
}

// CreateInput defines the fields an admin supplies when creating an account.
type CreateInput struct {
	Username  string
	Email     string
	FirstName string
	LastName  string
	Bio       string
	Role      string
}

/*
Create persists an admin-created account.

Description: Unlike signup, no confirmation code is issued; an account made
this way cannot pass the token exchange until its owner goes through signup.
The role may be set explicitly and defaults to 'user'.

Parameters:
  - ctx: context.Context
  - input: CreateInput

Returns:
  - *auth.User: The created account
  - error: apperr.ValidationError or apperr.Conflict
*/
func (service *Service) Create(ctx context.Context, input CreateInput) (*auth.User, error) {
	// ── 1. Boundary Validation ────────────────────────────────────────────

	if input.Role == "" {
		input.Role = string(sec.RoleUser)
	}

	validator := &validate.Validator{}
	validator.
		Required("username", input.Username).
		Username("username", input.Username).
		MaxLen("username", input.Username, auth.MaxUsernameLength).
		Required("email", input.Email).
		Email("email", input.Email).
		MaxLen("email", input.Email, auth.MaxEmailLength).
		MaxLen("first_name", input.FirstName, auth.MaxNameLength).
		MaxLen("last_name", input.LastName, auth.MaxNameLength).
		OneOf("role", input.Role, string(sec.RoleUser), string(sec.RoleModerator), string(sec.RoleAdmin))
	if err := validator.Err(); err != nil {
		return nil, err
	}

	// ── 2. Entity Construction & Persistence ──────────────────────────────

	user := &auth.User{
		ID:        uuidv7.New(),
		Username:  input.Username,
		Email:     input.Email,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Bio:       input.Bio,
		Role:      sec.UserRole(input.Role),
	}

	if err := service.accountRepository.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

/*
GetByUsername retrieves the full identity of a user.

Parameters:
  - ctx: context.Context
  - username: string

Returns:
  - *auth.User: The hydrated account
  - error: apperr.NotFound or execution failures
*/
func (service *Service) GetByUsername(ctx context.Context, username string) (*auth.User, error) {
	return service.accountRepository.FindByUsername(ctx, username)
}

/*
GetByID retrieves the full identity of a user by primary key. Self-service
endpoints resolve through the token subject rather than the username, which
an administrator may change while the token is still live.

Parameters:
  - ctx: context.Context
  - id: string

Returns:
  - *auth.User: The hydrated account
  - error: apperr.NotFound or execution failures
*/
func (service *Service) GetByID(ctx context.Context, id string) (*auth.User, error) {
	return service.accountRepository.FindByID(ctx, id)
}

/*
Delete removes an account by username.

Parameters:
  - ctx: context.Context
  - username: string

Returns:
  - error: apperr.NotFound or execution failures
*/
func (service *Service) Delete(ctx context.Context, username string) error {
	return service.accountRepository.DeleteByUsername(ctx, username)
}

// # Profile Updates

// UpdateInput defines the mutable subset of account fields. Nil pointers
// leave the stored value untouched, enabling true PATCH semantics.
type UpdateInput struct {
	Email     *string
	FirstName *string
	LastName  *string
	Bio       *string
	Role      *string
}

/*
Update applies a partial set of changes to an account.

Description: Fetches the existing state, overlays the provided fields, and
persists the result. Role changes pass through the downgrade rule: when the
acting user holds the plain 'user' role without the superuser flag and asks
for 'moderator' or 'admin', the role is silently stored as 'user' while the
rest of the update still applies.

Parameters:
  - ctx: context.Context
  - actor: The authenticated actor performing the update
  - username: The target account's username
  - input: UpdateInput

Returns:
  - *auth.User: The updated account
  - error: apperr.NotFound, apperr.ValidationError, apperr.Conflict
*/
func (service *Service) Update(ctx context.Context, actor *perm.Actor, username string, input UpdateInput) (*auth.User, error) {
	// ── 1. Fetch Current State ────────────────────────────────────────────

	user, err := service.accountRepository.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	// ── 2. Overlay Fields ─────────────────────────────────────────────────

	if input.Email != nil {
		user.Email = *input.Email
	}
	if input.FirstName != nil {
		user.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		user.LastName = *input.LastName
	}
	if input.Bio != nil {
		user.Bio = *input.Bio
	}
	if input.Role != nil {
		user.Role = service.resolveRole(actor, *input.Role)
	}

	// ── 3. Validation & Persistence ───────────────────────────────────────

	validator := &validate.Validator{}
	validator.
		Required("email", user.Email).
		Email("email", user.Email).
		MaxLen("email", user.Email, auth.MaxEmailLength).
		MaxLen("first_name", user.FirstName, auth.MaxNameLength).
		MaxLen("last_name", user.LastName, auth.MaxNameLength).
		OneOf("role", string(user.Role), string(sec.RoleUser), string(sec.RoleModerator), string(sec.RoleAdmin))
	if err := validator.Err(); err != nil {
		return nil, err
	}

	if err := service.accountRepository.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// resolveRole applies the role-downgrade rule.
//
// A plain 'user' without the superuser flag asking for an elevated role is
// written back as 'user'. Nothing is rejected; the request simply does not
// escalate. Every other combination stores the requested role as-is.
func (service *Service) resolveRole(actor *perm.Actor, requested string) sec.UserRole {
	wantsElevated := requested == string(sec.RoleModerator) || requested == string(sec.RoleAdmin)
	if actor != nil && actor.Role == sec.RoleUser && !actor.IsSuperuser && wantsElevated {
		service.logger.Info("role_escalation_downgraded",
			slog.String("actor_id", actor.ID),
			slog.String("requested_role", requested),
		)
		return sec.RoleUser
	}
	return sec.UserRole(requested)
}
