// Copyright (c) 2026 Revora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package title

import (
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubTitleRows replays a fixed set of row IDs, then reports streamErr the
// way pgx surfaces a connection failure mid-iteration: Next returns false
// and the error is only visible through Err.
type stubTitleRows struct {
	ids       []string
	streamErr error
	index     int
}

func (rows *stubTitleRows) Next() bool {
	if rows.index >= len(rows.ids) {
		return false
	}
	rows.index++
	return true
}

func (rows *stubTitleRows) Scan(dest ...any) error {
	*(dest[0].(*string)) = rows.ids[rows.index-1]
	*(dest[1].(*string)) = "Title " + rows.ids[rows.index-1]
	*(dest[2].(*int)) = 1990
	*(dest[3].(*string)) = ""
	return nil
}

func (rows *stubTitleRows) Err() error                                   { return rows.streamErr }
func (rows *stubTitleRows) Close()                                       {}
func (rows *stubTitleRows) CommandTag() pgconn.CommandTag                { return pgconn.CommandTag{} }
func (rows *stubTitleRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (rows *stubTitleRows) Values() ([]any, error)                       { return nil, nil }
func (rows *stubTitleRows) RawValues() [][]byte                          { return nil }
func (rows *stubTitleRows) Conn() *pgx.Conn                              { return nil }

/*
TestCollectTitles_DrainsCleanStream verifies a healthy result set scans into
the full page in row order.
*/
func TestCollectTitles_DrainsCleanStream(t *testing.T) {
	titles, err := collectTitles(&stubTitleRows{ids: []string{"id-a", "id-b"}})

	require.NoError(t, err)
	require.Len(t, titles, 2)
	assert.Equal(t, "id-a", titles[0].ID)
	assert.Equal(t, "id-b", titles[1].ID)
}

/*
TestCollectTitles_SurfacesStreamError verifies an error reported after
iteration surfaces instead of yielding a silently truncated page.
*/
func TestCollectTitles_SurfacesStreamError(t *testing.T) {
	streamErr := errors.New("unexpected EOF on connection")

	titles, err := collectTitles(&stubTitleRows{ids: []string{"id-a"}, streamErr: streamErr})

	require.ErrorIs(t, err, streamErr)
	assert.Nil(t, titles)
}
