package gateway

import (
	"context"
	"errors"
	"testing"
	"time"

	"bookmark-analytics/domain"
	"bookmark-analytics/driver"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockCSVReader struct {
	rows []driver.BookmarkRow
	err  error
}

func (m *mockCSVReader) ReadAll() ([]driver.BookmarkRow, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.rows, nil
}

func TestBookmarkSourceGateway_LoadBookmarks(t *testing.T) {
	ts := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	g := NewBookmarkSourceGateway(&mockCSVReader{
		rows: []driver.BookmarkRow{
			{TweetedAt: ts, ScreenName: "alice", FullText: "first"},
			{TweetedAt: ts, ScreenName: "bob", FullText: "second"},
		},
	})

	records, err := g.LoadBookmarks(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "row-1", records[0].ID())
	assert.Equal(t, "first", records[0].Text())
	assert.Equal(t, "alice", records[0].Author())
	assert.Equal(t, ts, records[0].CreatedAt())
	assert.Equal(t, "row-2", records[1].ID())
}

func TestBookmarkSourceGateway_LoadBookmarks_ReaderError(t *testing.T) {
	g := NewBookmarkSourceGateway(&mockCSVReader{err: errors.New("disk gone")})

	_, err := g.LoadBookmarks(context.Background())
	require.Error(t, err)

	var srcErr *domain.SourceError
	assert.ErrorAs(t, err, &srcErr)
	assert.Equal(t, "LoadBookmarks", srcErr.Op)
}

func TestBookmarkSourceGateway_LoadBookmarks_Empty(t *testing.T) {
	g := NewBookmarkSourceGateway(&mockCSVReader{})

	records, err := g.LoadBookmarks(context.Background())
	require.NoError(t, err)
	assert.Empty(t, records)
}
