// Copyright (c) 2026 Revora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package dberr_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/revora/internal/platform/apperr"
	"github.com/taibuivan/revora/internal/platform/dberr"
)

/*
TestWrap_Classification verifies the three-way mapping from driver errors to
application errors: missing row, unique-constraint loser, and everything else.
*/
func TestWrap_Classification(t *testing.T) {
	uniqueViolation := &pgconn.PgError{Code: "23505", ConstraintName: "review_titleid_authorid_key"}

	tests := []struct {
		name           string
		err            error
		expectedCode   string
		expectedStatus int
	}{
		{"no rows", pgx.ErrNoRows, "NOT_FOUND", http.StatusNotFound},
		{"wrapped no rows", fmt.Errorf("query: %w", pgx.ErrNoRows), "NOT_FOUND", http.StatusNotFound},
		{"unique violation", uniqueViolation, "CONFLICT", http.StatusConflict},
		{"wrapped unique violation", fmt.Errorf("exec: %w", uniqueViolation), "CONFLICT", http.StatusConflict},
		{"other pg error", &pgconn.PgError{Code: "23503"}, "INTERNAL_ERROR", http.StatusInternalServerError},
		{"plain error", errors.New("connection reset"), "INTERNAL_ERROR", http.StatusInternalServerError},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			wrapped := dberr.Wrap(tc.err, "Duplicate entry")

			appErr := apperr.As(wrapped)
			require.NotNil(t, appErr)
			assert.Equal(t, tc.expectedCode, appErr.Code)
			assert.Equal(t, tc.expectedStatus, appErr.HTTPStatus)
		})
	}
}

/*
TestWrap_ConflictMessage verifies the client-safe message survives the
unique-violation mapping while raw driver detail does not leak.
*/
func TestWrap_ConflictMessage(t *testing.T) {
	raw := &pgconn.PgError{Code: "23505", Message: "duplicate key value violates unique constraint"}

	wrapped := dberr.Wrap(raw, "You have already reviewed this title")

	appErr := apperr.As(wrapped)
	require.NotNil(t, appErr)
	assert.Equal(t, "You have already reviewed this title", appErr.Message)
	assert.NotContains(t, appErr.Message, "duplicate key value")
}

/*
TestWrap_Nil verifies nil passes through untouched.
*/
func TestWrap_Nil(t *testing.T) {
	assert.NoError(t, dberr.Wrap(nil, "unused"))
}

/*
TestIsUniqueViolation verifies SQLSTATE 23505 detection, including wrapped
errors, and rejection of everything else.
*/
func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, dberr.IsUniqueViolation(&pgconn.PgError{Code: "23505"}))
	assert.True(t, dberr.IsUniqueViolation(fmt.Errorf("exec: %w", &pgconn.PgError{Code: "23505"})))

	assert.False(t, dberr.IsUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, dberr.IsUniqueViolation(pgx.ErrNoRows))
	assert.False(t, dberr.IsUniqueViolation(errors.New("23505")))
	assert.False(t, dberr.IsUniqueViolation(nil))
}
