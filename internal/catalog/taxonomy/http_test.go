// Copyright (c) 2026 Revora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package taxonomy_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/revora/internal/catalog/taxonomy"
	"github.com/taibuivan/revora/internal/platform/ctxutil"
	"github.com/taibuivan/revora/internal/platform/sec"
)

func serveAs(t *testing.T, router http.Handler, method, target, body string, claims *sec.AuthClaims) *httptest.ResponseRecorder {
	t.Helper()

	var request *http.Request
	if body == "" {
		request = httptest.NewRequest(method, target, nil)
	} else {
		request = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	if claims != nil {
		request = request.WithContext(ctxutil.WithAuthUser(request.Context(), claims))
	}

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)
	return recorder
}

/*
TestCategoryRoutes_AdminOrReadOnlyGate verifies the collection gate of the
catalogue policy, including its deliberate quirk: an authenticated non-admin
is denied even for reads, while anonymous reads pass.
*/
func TestCategoryRoutes_AdminOrReadOnlyGate(t *testing.T) {
	handler := taxonomy.NewHandler(taxonomy.NewService(newFakeRepository()))
	router := handler.CategoryRoutes()

	member := &sec.AuthClaims{UserID: "u1", Username: "bob", Role: string(sec.RoleUser)}
	admin := &sec.AuthClaims{UserID: "u2", Username: "alice", Role: string(sec.RoleAdmin)}

	tests := []struct {
		name     string
		method   string
		body     string
		claims   *sec.AuthClaims
		expected int
	}{
		{"anonymous list", http.MethodGet, "", nil, http.StatusOK},
		{"member list denied", http.MethodGet, "", member, http.StatusForbidden},
		{"admin list", http.MethodGet, "", admin, http.StatusOK},
		{"anonymous create denied", http.MethodPost, `{"name":"Films"}`, nil, http.StatusUnauthorized},
		{"member create denied", http.MethodPost, `{"name":"Films"}`, member, http.StatusForbidden},
		{"admin create", http.MethodPost, `{"name":"Films"}`, admin, http.StatusCreated},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			recorder := serveAs(t, router, tc.method, "/", tc.body, tc.claims)
			assert.Equal(t, tc.expected, recorder.Code)
		})
	}
}

/*
TestGenreRoutes_DeleteBySlug verifies admin deletion and the 404 for an
unknown slug.
*/
func TestGenreRoutes_DeleteBySlug(t *testing.T) {
	repo := newFakeRepository()
	handler := taxonomy.NewHandler(taxonomy.NewService(repo))
	router := handler.GenreRoutes()

	admin := &sec.AuthClaims{UserID: "u2", Username: "alice", Role: string(sec.RoleAdmin)}

	recorder := serveAs(t, router, http.MethodPost, "/", `{"name":"Noir","slug":"noir"}`, admin)
	assert.Equal(t, http.StatusCreated, recorder.Code)

	recorder = serveAs(t, router, http.MethodDelete, "/noir", "", admin)
	assert.Equal(t, http.StatusNoContent, recorder.Code)

	recorder = serveAs(t, router, http.MethodDelete, "/noir", "", admin)
	assert.Equal(t, http.StatusNotFound, recorder.Code)
}
