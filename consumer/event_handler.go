package consumer

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"bookmark-analytics/domain"
)

const (
	batchFlushSize     = 10
	batchFlushInterval = 2 * time.Second
)

// BatchAnalyzer runs the analytics pipeline over a batch of bookmarks.
// *service.AnalyticsService satisfies it.
type BatchAnalyzer interface {
	AnalyzeBatch(ctx context.Context, records []*domain.BookmarkRecord) (*domain.AnalysisResult, error)
}

// BookmarkSavedPayload represents the payload for a BookmarkSaved event.
type BookmarkSavedPayload struct {
	BookmarkID   string   `json:"bookmark_id"`
	Author       string   `json:"author"`
	Text         string   `json:"text"`
	BookmarkedAt string   `json:"bookmarked_at"`
	Tags         []string `json:"tags"`
}

// BookmarksImportedPayload represents the payload for a BookmarksImported
// event, emitted when a bulk export is loaded in one go.
type BookmarksImportedPayload struct {
	Bookmarks []BookmarkSavedPayload `json:"bookmarks"`
}

// AnalyticsEventHandler processes bookmark events from the stream.
// It buffers bookmark records and flushes them in batches so slow
// trickles of saves still get analyzed as one pipeline run.
type AnalyticsEventHandler struct {
	analyzer BatchAnalyzer
	logger   *slog.Logger

	mu      sync.Mutex
	buffer  []*domain.BookmarkRecord
	timer   *time.Timer
	ctx     context.Context
	cancel  context.CancelFunc
	flushed chan struct{} // closed on each flush for testing
}

// NewAnalyticsEventHandler creates a new AnalyticsEventHandler.
func NewAnalyticsEventHandler(analyzer BatchAnalyzer, logger *slog.Logger) *AnalyticsEventHandler {
	if logger == nil {
		logger = slog.Default()
	}
	ctx, cancel := context.WithCancel(context.Background())
	h := &AnalyticsEventHandler{
		analyzer: analyzer,
		logger:   logger,
		buffer:   make([]*domain.BookmarkRecord, 0, batchFlushSize),
		ctx:      ctx,
		cancel:   cancel,
		flushed:  make(chan struct{}, 1),
	}
	return h
}

// Stop drains the buffer and then cancels the flush context. The order
// matters: cancelling first would run the final flush on a dead context
// and drop whatever was still buffered at shutdown.
func (h *AnalyticsEventHandler) Stop() {
	h.mu.Lock()
	if h.timer != nil {
		h.timer.Stop()
	}
	h.mu.Unlock()
	h.flush()
	h.cancel()
}

// HandleEvent processes a single event. Bookmark records are buffered and
// flushed when the batch reaches batchFlushSize or after batchFlushInterval.
func (h *AnalyticsEventHandler) HandleEvent(ctx context.Context, event Event) error {
	switch event.EventType {
	case "BookmarkSaved":
		return h.handleBookmarkSaved(ctx, event)
	case "BookmarksImported":
		return h.handleBookmarksImported(ctx, event)
	default:
		h.logger.Warn("unknown event type, skipping",
			"event_type", event.EventType,
			"event_id", event.EventID,
		)
		return nil
	}
}

func (h *AnalyticsEventHandler) handleBookmarkSaved(ctx context.Context, event Event) error {
	var payload BookmarkSavedPayload
	if err := json.Unmarshal(event.Payload, &payload); err != nil {
		h.logger.Error("failed to unmarshal BookmarkSaved payload",
			"event_id", event.EventID,
			"error", err,
		)
		return err
	}

	record, err := toRecord(payload)
	if err != nil {
		h.logger.Error("invalid BookmarkSaved payload",
			"event_id", event.EventID,
			"error", err,
		)
		return err
	}

	h.logger.Info("buffering BookmarkSaved event",
		"bookmark_id", payload.BookmarkID,
	)

	h.enqueue(record)
	return nil
}

func (h *AnalyticsEventHandler) handleBookmarksImported(ctx context.Context, event Event) error {
	var payload BookmarksImportedPayload
	if err := json.Unmarshal(event.Payload, &payload); err != nil {
		h.logger.Error("failed to unmarshal BookmarksImported payload",
			"event_id", event.EventID,
			"error", err,
		)
		return err
	}

	h.logger.Info("buffering BookmarksImported event",
		"count", len(payload.Bookmarks),
	)

	for _, b := range payload.Bookmarks {
		record, err := toRecord(b)
		if err != nil {
			h.logger.Error("invalid bookmark in BookmarksImported payload",
				"event_id", event.EventID,
				"bookmark_id", b.BookmarkID,
				"error", err,
			)
			return err
		}
		h.enqueue(record)
	}
	return nil
}

// toRecord converts a stream payload into a validated domain record.
// A missing or malformed timestamp falls back to the zero time so the
// record still lands in a bucket rather than failing the whole event.
func toRecord(p BookmarkSavedPayload) (*domain.BookmarkRecord, error) {
	createdAt, err := time.Parse(time.RFC3339, p.BookmarkedAt)
	if err != nil {
		createdAt = time.Time{}
	}
	return domain.NewBookmarkRecord(p.BookmarkID, p.Text, createdAt, p.Author, p.Tags)
}

// enqueue adds a record to the buffer and triggers a flush if the
// batch size threshold is reached. A timer is started on the first enqueue
// to ensure timely flushing even when events arrive slowly.
func (h *AnalyticsEventHandler) enqueue(record *domain.BookmarkRecord) {
	h.mu.Lock()
	h.buffer = append(h.buffer, record)
	size := len(h.buffer)

	if size == 1 {
		// First item in batch: start the flush timer
		h.timer = time.AfterFunc(batchFlushInterval, func() {
			h.flush()
		})
	}
	h.mu.Unlock()

	if size >= batchFlushSize {
		h.flush()
	}
}

// flush runs the pipeline over all buffered records in one batch call.
func (h *AnalyticsEventHandler) flush() {
	h.mu.Lock()
	if len(h.buffer) == 0 {
		h.mu.Unlock()
		return
	}
	records := h.buffer
	h.buffer = make([]*domain.BookmarkRecord, 0, batchFlushSize)
	if h.timer != nil {
		h.timer.Stop()
		h.timer = nil
	}
	h.mu.Unlock()

	// Deduplicate records within the batch by ID
	seen := make(map[string]struct{}, len(records))
	unique := make([]*domain.BookmarkRecord, 0, len(records))
	for _, r := range records {
		if _, ok := seen[r.ID()]; !ok {
			seen[r.ID()] = struct{}{}
			unique = append(unique, r)
		}
	}

	h.logger.Info("flushing batch", "count", len(unique))

	result, err := h.analyzer.AnalyzeBatch(h.ctx, unique)
	if err != nil {
		h.logger.Error("batch analysis failed", "count", len(unique), "error", err)
		return
	}

	h.logger.Info("batch analyzed successfully",
		"run_id", result.RunID,
		"processed", result.Stats.Processed,
		"skipped", result.Stats.Skipped,
	)

	// Signal flush completion (non-blocking for tests)
	select {
	case h.flushed <- struct{}{}:
	default:
	}
}
