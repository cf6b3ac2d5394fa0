package service

import (
	"context"
	"testing"
	"time"

	"bookmark-analytics/domain"
	"bookmark-analytics/tokenfilter"
	"bookmark-analytics/tokenize"
	"bookmark-analytics/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) *AnalyticsService {
	t.Helper()

	cfg, err := domain.NewAnalyticsConfig(2, domain.BucketDay, 0.3, 2, true)
	require.NoError(t, err)

	u := usecase.NewAnalyzeBookmarksUsecase(cfg, tokenize.NewDispatcher(true, nil), tokenfilter.New(), nil)
	return NewAnalyticsService(u, nil)
}

func record(t *testing.T, id, text string) *domain.BookmarkRecord {
	t.Helper()
	rec, err := domain.NewBookmarkRecord(id, text, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), "", nil)
	require.NoError(t, err)
	return rec
}

func TestAnalyticsService_AnalyzeBatchRetainsResult(t *testing.T) {
	s := newTestService(t)

	require.Nil(t, s.LastResult())

	result, err := s.AnalyzeBatch(context.Background(), []*domain.BookmarkRecord{
		record(t, "r1", "docker containers everywhere"),
	})
	require.NoError(t, err)
	assert.Equal(t, result, s.LastResult())
}

func TestAnalyticsService_TopWords(t *testing.T) {
	s := newTestService(t)

	_, err := s.AnalyzeBatch(context.Background(), []*domain.BookmarkRecord{
		record(t, "r1", "docker docker lunch"),
	})
	require.NoError(t, err)

	top, err := s.TopWords(10, false)
	require.NoError(t, err)
	require.NotEmpty(t, top)
	assert.Equal(t, "docker", top[0].Token)
	assert.Equal(t, 2, top[0].Count)

	techOnly, err := s.TopWords(10, true)
	require.NoError(t, err)
	require.Len(t, techOnly, 1)
	assert.Equal(t, "docker", techOnly[0].Token)
}

func TestAnalyticsService_TopWordsBeforeAnyRun(t *testing.T) {
	s := newTestService(t)

	_, err := s.TopWords(10, false)
	assert.Error(t, err)
}
