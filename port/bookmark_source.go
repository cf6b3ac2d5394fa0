package port

import (
	"context"

	"bookmark-analytics/domain"
)

// BookmarkSource supplies raw bookmark records from an external collaborator
// (file export, event stream). The analytics core never persists them.
type BookmarkSource interface {
	LoadBookmarks(ctx context.Context) ([]*domain.BookmarkRecord, error)
}
