// Copyright (c) 2026 Revora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/revora/internal/platform/ctxutil"
	"github.com/taibuivan/revora/internal/platform/sec"
	"github.com/taibuivan/revora/internal/users/account"
)

// authedRequest builds a request carrying verified claims, as the
// authentication middleware would after a valid bearer token.
func authedRequest(method, target string, claims *sec.AuthClaims) *http.Request {
	request := httptest.NewRequest(method, target, nil)
	if claims != nil {
		request = request.WithContext(ctxutil.WithAuthUser(request.Context(), claims))
	}
	return request
}

func memberClaims(username string) *sec.AuthClaims {
	return &sec.AuthClaims{
		UserID:   "user-" + username,
		Username: username,
		Role:     string(sec.RoleUser),
	}
}

func adminClaims(username string) *sec.AuthClaims {
	return &sec.AuthClaims{
		UserID:   "user-" + username,
		Username: username,
		Role:     string(sec.RoleAdmin),
	}
}

/*
TestMeEndpoint_DeleteAlwaysMethodNotAllowed verifies that DELETE /users/me is
405 regardless of actor identity or role, while anonymous DELETE is 401.
*/
func TestMeEndpoint_DeleteAlwaysMethodNotAllowed(t *testing.T) {
	repo := newFakeAccountRepository()
	handler := account.NewHandler(newTestService(repo))
	router := handler.Routes()

	tests := []struct {
		name     string
		claims   *sec.AuthClaims
		expected int
	}{
		{"member", memberClaims("bob"), http.StatusMethodNotAllowed},
		{"admin", adminClaims("alice"), http.StatusMethodNotAllowed},
		{"anonymous", nil, http.StatusUnauthorized},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			recorder := httptest.NewRecorder()
			router.ServeHTTP(recorder, authedRequest(http.MethodDelete, "/me", tc.claims))
			assert.Equal(t, tc.expected, recorder.Code)
		})
	}
}

/*
TestMeEndpoint_ResolvesToRequester verifies that GET /users/me returns the
requester's own profile.
*/
func TestMeEndpoint_ResolvesToRequester(t *testing.T) {
	repo := newFakeAccountRepository()
	seedUser(repo, "bob", sec.RoleUser, false)
	handler := account.NewHandler(newTestService(repo))
	router := handler.Routes()

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, authedRequest(http.MethodGet, "/me", memberClaims("bob")))

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"username":"bob"`)
}

/*
TestMeEndpoint_ResolvesByTokenSubject verifies that /users/me resolves the
account through the token's user ID, not the claimed username. A token minted
before an admin renamed the account must still reach the same record.
*/
func TestMeEndpoint_ResolvesByTokenSubject(t *testing.T) {
	repo := newFakeAccountRepository()
	seedUser(repo, "bob", sec.RoleUser, false)
	handler := account.NewHandler(newTestService(repo))
	router := handler.Routes()

	staleClaims := &sec.AuthClaims{
		UserID:   "user-bob",
		Username: "bob-before-rename",
		Role:     string(sec.RoleUser),
	}

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, authedRequest(http.MethodGet, "/me", staleClaims))

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"username":"bob"`)
}

/*
TestAdminSurface_CollectionGate verifies the collection-level stage of the
admin-only policy: anonymous is 401, authenticated non-admin is 403, admin
passes.
*/
func TestAdminSurface_CollectionGate(t *testing.T) {
	repo := newFakeAccountRepository()
	handler := account.NewHandler(newTestService(repo))
	router := handler.Routes()

	tests := []struct {
		name     string
		claims   *sec.AuthClaims
		expected int
	}{
		{"anonymous", nil, http.StatusUnauthorized},
		{"member", memberClaims("bob"), http.StatusForbidden},
		{"moderator", &sec.AuthClaims{UserID: "user-mia", Username: "mia", Role: string(sec.RoleModerator)}, http.StatusForbidden},
		{"admin", adminClaims("alice"), http.StatusOK},
		{"superuser", &sec.AuthClaims{UserID: "user-sue", Username: "sue", Role: string(sec.RoleUser), IsSuperuser: true}, http.StatusOK},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			recorder := httptest.NewRecorder()
			router.ServeHTTP(recorder, authedRequest(http.MethodGet, "/", tc.claims))
			assert.Equal(t, tc.expected, recorder.Code)
		})
	}
}
