package driver

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"time"

	"bookmark-analytics/domain"
)

// Bookmark export columns. The header row must contain all three; extra
// columns are ignored.
const (
	columnTweetedAt  = "tweeted_at"
	columnScreenName = "screen_name"
	columnFullText   = "full_text"
)

var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// CSVDriver reads bookmark export files.
type CSVDriver struct {
	path string
}

func NewCSVDriver(path string) *CSVDriver {
	return &CSVDriver{path: path}
}

// ReadAll parses the whole export. A missing required column fails the
// read; a malformed row fails the read as well since a truncated export
// usually means the file itself is broken.
func (d *CSVDriver) ReadAll() ([]BookmarkRow, error) {
	f, err := os.Open(d.path)
	if err != nil {
		return nil, &domain.DriverError{Op: "ReadAll", Err: err.Error()}
	}
	defer f.Close()

	reader := csv.NewReader(f)

	header, err := reader.Read()
	if err != nil {
		return nil, &domain.DriverError{Op: "ReadAll", Err: fmt.Sprintf("read header: %v", err)}
	}

	idx, err := columnIndexes(header)
	if err != nil {
		return nil, &domain.DriverError{Op: "ReadAll", Err: err.Error()}
	}

	var rows []BookmarkRow
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &domain.DriverError{Op: "ReadAll", Err: fmt.Sprintf("read row: %v", err)}
		}

		ts, err := parseTimestamp(record[idx[columnTweetedAt]])
		if err != nil {
			return nil, &domain.DriverError{Op: "ReadAll", Err: fmt.Sprintf("parse %s: %v", columnTweetedAt, err)}
		}

		rows = append(rows, BookmarkRow{
			TweetedAt:  ts,
			ScreenName: record[idx[columnScreenName]],
			FullText:   record[idx[columnFullText]],
		})
	}

	return rows, nil
}

func columnIndexes(header []string) (map[string]int, error) {
	idx := make(map[string]int, 3)
	for i, name := range header {
		idx[name] = i
	}

	for _, required := range []string{columnTweetedAt, columnScreenName, columnFullText} {
		if _, ok := idx[required]; !ok {
			return nil, fmt.Errorf("missing required column: %s", required)
		}
	}
	return idx, nil
}

func parseTimestamp(value string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, value); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp: %q", value)
}
