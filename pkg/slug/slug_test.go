// Copyright (c) 2026 Revora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package slug

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFrom(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"simple", "Science Fiction", "science-fiction"},
		{"accents", "Émile Zola's Café", "emile-zola-s-cafe"},
		{"collapses hyphens", "rock --- and  roll", "rock-and-roll"},
		{"trims hyphens", "  drama  ", "drama"},
		{"digits kept", "Top 10 Thrillers", "top-10-thrillers"},
		{"empty", "", ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, From(tc.input))
		})
	}
}

func TestIsValid(t *testing.T) {
	assert.True(t, IsValid("science-fiction"))
	assert.True(t, IsValid("noir_2000"))
	assert.False(t, IsValid(""))
	assert.False(t, IsValid("with space"))
	assert.False(t, IsValid("café"))
}
