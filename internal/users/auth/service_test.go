// Copyright (c) 2026 Revora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/revora/internal/platform/apperr"
	"github.com/taibuivan/revora/internal/platform/sec"
	"github.com/taibuivan/revora/internal/users/auth"
)

// # Test Doubles

// fakeUserRepository is an in-memory UserRepository keyed by username.
type fakeUserRepository struct {
	byUsername map[string]*auth.User
}

func newFakeUserRepository() *fakeUserRepository {
	return &fakeUserRepository{byUsername: make(map[string]*auth.User)}
}

func (repo *fakeUserRepository) FindByUsername(_ context.Context, username string) (*auth.User, error) {
	if user, ok := repo.byUsername[username]; ok {
		return user, nil
	}
	return nil, apperr.NotFound("User not found with this username")
}

func (repo *fakeUserRepository) Create(_ context.Context, user *auth.User) error {
	if _, ok := repo.byUsername[user.Username]; ok {
		return apperr.Conflict("Username or email is already taken")
	}
	for _, existing := range repo.byUsername {
		if existing.Email == user.Email {
			return apperr.Conflict("Username or email is already taken")
		}
	}
	repo.byUsername[user.Username] = user
	return nil
}

func (repo *fakeUserRepository) UpdateConfirmationCode(_ context.Context, userID, newHash string) error {
	for _, user := range repo.byUsername {
		if user.ID == userID {
			user.ConfirmationCodeHash = newHash
			return nil
		}
	}
	return apperr.NotFound("User not found with this id")
}

// fakeDispatchLimiter allows or denies every reservation.
type fakeDispatchLimiter struct {
	allowed bool
}

func (limiter *fakeDispatchLimiter) Reserve(_ context.Context, _ string, cooldown time.Duration) (bool, time.Duration, error) {
	if limiter.allowed {
		return true, 0, nil
	}
	return false, cooldown, nil
}

// fakeTokenProvider returns a predictable token embedding the username.
type fakeTokenProvider struct{}

func (fakeTokenProvider) GenerateAccessToken(_, username string, _ sec.UserRole, _ bool, _ time.Duration) (string, error) {
	return "token-for-" + username, nil
}

// channelMailer forwards every send to a channel for synchronization with
// the fire-and-forget dispatch goroutine.
type channelMailer struct {
	sent chan string
}

func (mailer *channelMailer) Send(to, _, _ string) error {
	mailer.sent <- to
	return nil
}

func newTestService(repo *fakeUserRepository, limiter *fakeDispatchLimiter, mail *channelMailer) *auth.Service {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	return auth.NewService(repo, limiter, fakeTokenProvider{}, mail, logger)
}

// # Signup

/*
TestSignup_CreatesUnconfirmedUser verifies the happy path: a fresh signup
creates the account with default role 'user' and dispatches exactly one code.
*/
func TestSignup_CreatesUnconfirmedUser(t *testing.T) {
	repo := newFakeUserRepository()
	mail := &channelMailer{sent: make(chan string, 1)}
	service := newTestService(repo, &fakeDispatchLimiter{allowed: true}, mail)

	user, err := service.Signup(context.Background(), auth.SignupInput{
		Username: "bob",
		Email:    "b@x.com",
	})

	require.NoError(t, err)
	assert.Equal(t, "bob", user.Username)
	assert.Equal(t, sec.RoleUser, user.Role)
	assert.False(t, user.IsSuperuser)
	assert.NotEmpty(t, user.ConfirmationCodeHash)

	// The dispatch runs in a goroutine; wait for it.
	select {
	case to := <-mail.sent:
		assert.Equal(t, "b@x.com", to)
	case <-time.After(2 * time.Second):
		t.Fatal("confirmation code was never dispatched")
	}
}

/*
TestSignup_Validation verifies boundary rules: charset, the reserved literal
"me", and malformed emails are rejected before any persistence happens.
*/
func TestSignup_Validation(t *testing.T) {
	tests := []struct {
		name     string
		username string
		email    string
	}{
		{"reserved me", "me", "me@x.com"},
		{"bad charset", "bob smith", "b@x.com"},
		{"empty username", "", "b@x.com"},
		{"bad email", "bob", "not-an-email"},
		{"empty email", "bob", ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			repo := newFakeUserRepository()
			mail := &channelMailer{sent: make(chan string, 1)}
			service := newTestService(repo, &fakeDispatchLimiter{allowed: true}, mail)

			_, err := service.Signup(context.Background(), auth.SignupInput{
				Username: tc.username,
				Email:    tc.email,
			})

			require.Error(t, err)
			appErr := apperr.As(err)
			require.NotNil(t, appErr)
			assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
			assert.Empty(t, repo.byUsername)
		})
	}
}

/*
TestSignup_Conflict verifies that a second signup with a taken username or
email surfaces a single conflict error.
*/
func TestSignup_Conflict(t *testing.T) {
	repo := newFakeUserRepository()
	mail := &channelMailer{sent: make(chan string, 2)}
	service := newTestService(repo, &fakeDispatchLimiter{allowed: true}, mail)

	_, err := service.Signup(context.Background(), auth.SignupInput{Username: "bob", Email: "b@x.com"})
	require.NoError(t, err)

	_, err = service.Signup(context.Background(), auth.SignupInput{Username: "bob", Email: "other@x.com"})
	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, "CONFLICT", appErr.Code)

	_, err = service.Signup(context.Background(), auth.SignupInput{Username: "carol", Email: "b@x.com"})
	appErr = apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, "CONFLICT", appErr.Code)
}

/*
TestSignup_DispatchCooldown verifies that an active cooldown blocks the
signup with 429 before any account is created.
*/
func TestSignup_DispatchCooldown(t *testing.T) {
	repo := newFakeUserRepository()
	mail := &channelMailer{sent: make(chan string, 1)}
	service := newTestService(repo, &fakeDispatchLimiter{allowed: false}, mail)

	_, err := service.Signup(context.Background(), auth.SignupInput{Username: "bob", Email: "b@x.com"})

	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, "TOO_MANY_REQUESTS", appErr.Code)
	assert.Empty(t, repo.byUsername)
}

// # Token Exchange

func seedConfirmedUser(t *testing.T, repo *fakeUserRepository, username, plainCode string) *auth.User {
	t.Helper()

	hash, err := sec.HashConfirmationCode(plainCode)
	require.NoError(t, err)

	user := &auth.User{
		ID:                   "user-" + username,
		Username:             username,
		Email:                username + "@x.com",
		Role:                 sec.RoleUser,
		ConfirmationCodeHash: hash,
	}
	require.NoError(t, repo.Create(context.Background(), user))
	return user
}

/*
TestExchangeToken verifies the three outcomes of the exchange: token on
match, invalid-credential on mismatch, not-found on unknown username. A code
stays valid after a successful exchange.
*/
func TestExchangeToken(t *testing.T) {
	repo := newFakeUserRepository()
	mail := &channelMailer{sent: make(chan string, 1)}
	service := newTestService(repo, &fakeDispatchLimiter{allowed: true}, mail)
	seedConfirmedUser(t, repo, "bob", "123456")

	// 1. Exact match issues a token
	result, err := service.ExchangeToken(context.Background(), "bob", "123456")
	require.NoError(t, err)
	assert.Equal(t, "token-for-bob", result.Token)

	// 2. The code is not rotated: a second exchange still works
	result, err = service.ExchangeToken(context.Background(), "bob", "123456")
	require.NoError(t, err)
	assert.Equal(t, "token-for-bob", result.Token)

	// 3. Mismatch is an invalid credential, not a 404
	_, err = service.ExchangeToken(context.Background(), "bob", "999999")
	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, "INVALID_CREDENTIAL", appErr.Code)

	// 4. Unknown username is a 404
	_, err = service.ExchangeToken(context.Background(), "ghost", "123456")
	appErr = apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, "NOT_FOUND", appErr.Code)
}

/*
TestExchangeToken_NoSignupNoMatch verifies that an account created without a
signup (empty hash) can never pass the code gate.
*/
func TestExchangeToken_NoSignupNoMatch(t *testing.T) {
	repo := newFakeUserRepository()
	mail := &channelMailer{sent: make(chan string, 1)}
	service := newTestService(repo, &fakeDispatchLimiter{allowed: true}, mail)

	require.NoError(t, repo.Create(context.Background(), &auth.User{
		ID:       "user-admin-made",
		Username: "adminmade",
		Email:    "a@x.com",
		Role:     sec.RoleUser,
	}))

	_, err := service.ExchangeToken(context.Background(), "adminmade", "")
	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, "INVALID_CREDENTIAL", appErr.Code)
}
