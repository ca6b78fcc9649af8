// Copyright (c) 2026 Revora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package title manages the creative works the whole platform revolves around.

A title is a film, book, album, or any other work users review. It hangs off
the taxonomy package twice: a nullable category reference and a genre set
kept in an explicit junction table.

# Rating

The rating is a derived value, the average of the title's review scores. It
is computed at read time and never persisted; a title with no reviews has a
null rating, not a zero.
*/
package title

import (
	"time"

	"github.com/taibuivan/revora/internal/catalog/taxonomy"
)

// Title represents a creative work in the catalogue.
type Title struct {
	ID          string             `json:"id"`
	Name        string             `json:"name"`
	Year        int                `json:"year"`
	Rating      *float64           `json:"rating"` // Derived average score, null with no reviews.
	Description string             `json:"description"`
	Genres      []taxonomy.Genre   `json:"genre"`
	Category    *taxonomy.Category `json:"category"`
	CreatedAt   time.Time          `json:"-"`
	UpdatedAt   time.Time          `json:"-"`
}
