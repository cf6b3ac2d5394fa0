package driver

import "time"

// BookmarkRow is one row of a bookmark export file before domain conversion.
type BookmarkRow struct {
	TweetedAt  time.Time
	ScreenName string
	FullText   string
}
