// Copyright (c) 2026 Revora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account_test

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/revora/internal/platform/apperr"
	"github.com/taibuivan/revora/internal/platform/perm"
	"github.com/taibuivan/revora/internal/platform/sec"
	"github.com/taibuivan/revora/internal/users/account"
	"github.com/taibuivan/revora/internal/users/auth"
	"github.com/taibuivan/revora/pkg/pointer"
)

// fakeAccountRepository is an in-memory AccountRepository keyed by username.
type fakeAccountRepository struct {
	byUsername map[string]*auth.User
}

func newFakeAccountRepository() *fakeAccountRepository {
	return &fakeAccountRepository{byUsername: make(map[string]*auth.User)}
}

func (repo *fakeAccountRepository) FindByID(_ context.Context, id string) (*auth.User, error) {
	for _, user := range repo.byUsername {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, apperr.NotFound("Account")
}

func (repo *fakeAccountRepository) FindByUsername(_ context.Context, username string) (*auth.User, error) {
	if user, ok := repo.byUsername[username]; ok {
		copied := *user
		return &copied, nil
	}
	return nil, apperr.NotFound("Account")
}

func (repo *fakeAccountRepository) List(_ context.Context, filter account.ListFilter) ([]*auth.User, int, error) {
	matched := make([]*auth.User, 0)
	for _, user := range repo.byUsername {
		if filter.Search == "" || strings.Contains(strings.ToLower(user.Username), strings.ToLower(filter.Search)) {
			matched = append(matched, user)
		}
	}
	return matched, len(matched), nil
}

func (repo *fakeAccountRepository) Create(_ context.Context, user *auth.User) error {
	if _, ok := repo.byUsername[user.Username]; ok {
		return apperr.Conflict("Username or email is already taken")
	}
	repo.byUsername[user.Username] = user
	return nil
}

func (repo *fakeAccountRepository) Update(_ context.Context, user *auth.User) error {
	for username, existing := range repo.byUsername {
		if existing.ID == user.ID {
			copied := *user
			repo.byUsername[username] = &copied
			return nil
		}
	}
	return apperr.NotFound("Account")
}

func (repo *fakeAccountRepository) DeleteByUsername(_ context.Context, username string) error {
	if _, ok := repo.byUsername[username]; !ok {
		return apperr.NotFound("Account")
	}
	delete(repo.byUsername, username)
	return nil
}

func newTestService(repo *fakeAccountRepository) *account.Service {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	return account.NewService(repo, logger)
}

func seedUser(repo *fakeAccountRepository, username string, role sec.UserRole, superuser bool) *auth.User {
	user := &auth.User{
		ID:          "user-" + username,
		Username:    username,
		Email:       username + "@x.com",
		Role:        role,
		IsSuperuser: superuser,
	}
	repo.byUsername[username] = user
	return user
}

// # Creation

/*
TestCreate_DefaultsAndRoleChoice verifies that an admin may set any valid
role and that an omitted role falls back to 'user'.
*/
func TestCreate_DefaultsAndRoleChoice(t *testing.T) {
	repo := newFakeAccountRepository()
	service := newTestService(repo)

	created, err := service.Create(context.Background(), account.CreateInput{
		Username: "carol", Email: "c@x.com", Role: "moderator",
	})
	require.NoError(t, err)
	assert.Equal(t, sec.RoleModerator, created.Role)

	created, err = service.Create(context.Background(), account.CreateInput{
		Username: "dave", Email: "d@x.com",
	})
	require.NoError(t, err)
	assert.Equal(t, sec.RoleUser, created.Role)

	_, err = service.Create(context.Background(), account.CreateInput{
		Username: "eve", Email: "e@x.com", Role: "emperor",
	})
	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
}

// # Role Downgrade

/*
TestUpdate_RoleDowngrade verifies the silent downgrade rule: a plain 'user'
without the superuser flag asking for an elevated role keeps 'user' while the
rest of the update still applies. Everyone else gets the requested role.
*/
func TestUpdate_RoleDowngrade(t *testing.T) {
	tests := []struct {
		name         string
		actorRole    sec.UserRole
		superuser    bool
		requested    string
		expectedRole sec.UserRole
	}{
		{"user asks admin", sec.RoleUser, false, "admin", sec.RoleUser},
		{"user asks moderator", sec.RoleUser, false, "moderator", sec.RoleUser},
		{"user asks user", sec.RoleUser, false, "user", sec.RoleUser},
		{"superuser with user role asks admin", sec.RoleUser, true, "admin", sec.RoleAdmin},
		{"moderator asks admin", sec.RoleModerator, false, "admin", sec.RoleAdmin},
		{"admin asks moderator", sec.RoleAdmin, false, "moderator", sec.RoleModerator},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			repo := newFakeAccountRepository()
			service := newTestService(repo)
			target := seedUser(repo, "bob", tc.actorRole, tc.superuser)

			actor := &perm.Actor{
				ID: target.ID, Username: target.Username,
				Role: tc.actorRole, IsSuperuser: tc.superuser,
			}

			updated, err := service.Update(context.Background(), actor, "bob", account.UpdateInput{
				Role: pointer.To(tc.requested),
				Bio:  pointer.To("new bio"),
			})

			require.NoError(t, err)
			assert.Equal(t, tc.expectedRole, updated.Role)
			// The rest of the update applies even when the role is downgraded.
			assert.Equal(t, "new bio", updated.Bio)
		})
	}
}

/*
TestUpdate_PartialSemantics verifies that absent fields stay untouched.
*/
func TestUpdate_PartialSemantics(t *testing.T) {
	repo := newFakeAccountRepository()
	service := newTestService(repo)
	target := seedUser(repo, "bob", sec.RoleUser, false)
	target.FirstName = "Robert"
	target.Bio = "old bio"

	actor := &perm.Actor{ID: target.ID, Username: "bob", Role: sec.RoleUser}

	updated, err := service.Update(context.Background(), actor, "bob", account.UpdateInput{
		Bio: pointer.To("fresh"),
	})

	require.NoError(t, err)
	assert.Equal(t, "Robert", updated.FirstName)
	assert.Equal(t, "fresh", updated.Bio)
	assert.Equal(t, "bob@x.com", updated.Email)
}

/*
TestUpdate_UnknownTarget verifies the 404 path.
*/
func TestUpdate_UnknownTarget(t *testing.T) {
	repo := newFakeAccountRepository()
	service := newTestService(repo)

	actor := &perm.Actor{ID: "user-x", Username: "x", Role: sec.RoleAdmin}

	_, err := service.Update(context.Background(), actor, "ghost", account.UpdateInput{
		Bio: pointer.To("anything"),
	})

	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, "NOT_FOUND", appErr.Code)
}
