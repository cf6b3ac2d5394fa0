package gateway

import (
	"context"
	"fmt"

	"bookmark-analytics/domain"
	"bookmark-analytics/driver"
	"bookmark-analytics/port"
)

// BookmarkCSVReader defines the interface for the CSV data source
type BookmarkCSVReader interface {
	ReadAll() ([]driver.BookmarkRow, error)
}

// BookmarkSourceGateway implements the bookmark source port on top of a
// CSV export file.
type BookmarkSourceGateway struct {
	reader BookmarkCSVReader
}

var _ port.BookmarkSource = (*BookmarkSourceGateway)(nil)

// NewBookmarkSourceGateway creates a new BookmarkSourceGateway
func NewBookmarkSourceGateway(reader BookmarkCSVReader) *BookmarkSourceGateway {
	return &BookmarkSourceGateway{
		reader: reader,
	}
}

// LoadBookmarks reads the export and converts rows to domain records.
// Record IDs are synthesized from the row position since exports carry none.
func (g *BookmarkSourceGateway) LoadBookmarks(ctx context.Context) ([]*domain.BookmarkRecord, error) {
	rows, err := g.reader.ReadAll()
	if err != nil {
		return nil, &domain.SourceError{
			Op:  "LoadBookmarks",
			Err: err.Error(),
		}
	}

	records := make([]*domain.BookmarkRecord, 0, len(rows))
	for i, row := range rows {
		record, err := domain.NewBookmarkRecord(
			fmt.Sprintf("row-%d", i+1),
			row.FullText,
			row.TweetedAt,
			row.ScreenName,
			nil,
		)
		if err != nil {
			return nil, &domain.SourceError{
				Op:  "LoadBookmarks",
				Err: fmt.Sprintf("row %d: %v", i+1, err),
			}
		}
		records = append(records, record)
	}

	return records, nil
}
