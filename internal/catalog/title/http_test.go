// Copyright (c) 2026 Revora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package title_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/revora/internal/catalog/title"
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
TestTitleRoutes_AdminOrReadOnlyGate verifies the catalogue policy on the
title collection: anonymous reads pass, anonymous writes are unauthorized,
member writes are forbidden, admin writes pass.
*/
func TestTitleRoutes_AdminOrReadOnlyGate(t *testing.T) {
	repo := newFakeRepository()
	seedTaxonomy(repo)
	handler := title.NewHandler(title.NewService(repo))
	router := handler.Routes(nil)

	member := &sec.AuthClaims{UserID: "u1", Username: "bob", Role: string(sec.RoleUser)}
	admin := &sec.AuthClaims{UserID: "u2", Username: "alice", Role: string(sec.RoleAdmin)}

	payload := `{"name":"Chinatown","year":1974,"category":"films","genre":["noir"]}`

	tests := []struct {
		name     string
		method   string
		body     string
		claims   *sec.AuthClaims
		expected int
	}{
		{"anonymous list", http.MethodGet, "", nil, http.StatusOK},
		{"anonymous create denied", http.MethodPost, payload, nil, http.StatusUnauthorized},
		{"member create denied", http.MethodPost, payload, member, http.StatusForbidden},
		{"admin create", http.MethodPost, payload, admin, http.StatusCreated},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			recorder := serveAs(t, router, tc.method, "/", tc.body, tc.claims)
			assert.Equal(t, tc.expected, recorder.Code)
		})
	}
}

/*
TestTitleRoutes_DetailLifecycle creates a title as admin, reads it back
anonymously, patches it, and checks the invalid-identifier 404.
*/
func TestTitleRoutes_DetailLifecycle(t *testing.T) {
	repo := newFakeRepository()
	seedTaxonomy(repo)
	handler := title.NewHandler(title.NewService(repo))
	router := handler.Routes(nil)

	admin := &sec.AuthClaims{UserID: "u2", Username: "alice", Role: string(sec.RoleAdmin)}

	recorder := serveAs(t, router, http.MethodPost, "/",
		`{"name":"Chinatown","year":1974,"genre":["noir"]}`, admin)
	require.Equal(t, http.StatusCreated, recorder.Code)

	var envelope struct {
		Data struct {
			ID     string   `json:"id"`
			Name   string   `json:"name"`
			Rating *float64 `json:"rating"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
	created := envelope.Data
	require.NotEmpty(t, created.ID)
	assert.Nil(t, created.Rating)

	// Anonymous detail read passes the catalogue policy.
	recorder = serveAs(t, router, http.MethodGet, "/"+created.ID, "", nil)
	assert.Equal(t, http.StatusOK, recorder.Code)

	recorder = serveAs(t, router, http.MethodPatch, "/"+created.ID,
		`{"name":"Chinatown (Restored)"}`, admin)
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "Chinatown (Restored)")

	// A malformed identifier reads as a missing title, not a bad request.
	recorder = serveAs(t, router, http.MethodGet, "/not-a-uuid", "", nil)
	assert.Equal(t, http.StatusNotFound, recorder.Code)

	recorder = serveAs(t, router, http.MethodDelete, "/"+created.ID, "", admin)
	assert.Equal(t, http.StatusNoContent, recorder.Code)

	recorder = serveAs(t, router, http.MethodGet, "/"+created.ID, "", nil)
	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

/*
TestTitleRoutes_ListFilters verifies the query-parameter filters and the
non-integer year rejection.
*/
func TestTitleRoutes_ListFilters(t *testing.T) {
	repo := newFakeRepository()
	seedTaxonomy(repo)
	handler := title.NewHandler(title.NewService(repo))
	router := handler.Routes(nil)

	admin := &sec.AuthClaims{UserID: "u2", Username: "alice", Role: string(sec.RoleAdmin)}

	recorder := serveAs(t, router, http.MethodPost, "/",
		`{"name":"Alpha Noir","year":1980,"genre":["noir"],"category":"films"}`, admin)
	require.Equal(t, http.StatusCreated, recorder.Code)
	recorder = serveAs(t, router, http.MethodPost, "/",
		`{"name":"Beta Comedy","year":1990,"genre":["comedy"]}`, admin)
	require.Equal(t, http.StatusCreated, recorder.Code)

	type listResponse struct {
		Data []json.RawMessage `json:"data"`
		Meta struct {
			Total int `json:"total"`
		} `json:"meta"`
	}

	readList := func(target string) listResponse {
		recorder := serveAs(t, router, http.MethodGet, target, "", nil)
		require.Equal(t, http.StatusOK, recorder.Code)
		var parsed listResponse
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &parsed))
		return parsed
	}

	assert.Equal(t, 2, readList("/").Meta.Total)
	assert.Equal(t, 1, readList("/?genre=noir").Meta.Total)
	assert.Equal(t, 1, readList("/?category=films").Meta.Total)
	assert.Equal(t, 1, readList(fmt.Sprintf("/?year=%d", 1990)).Meta.Total)
	assert.Equal(t, 0, readList("/?search=gamma").Meta.Total)

	recorder = serveAs(t, router, http.MethodGet, "/?year=ninety", "", nil)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}
