package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"bookmark-analytics/domain"
	"bookmark-analytics/usecase"
)

// AnalyticsService fronts the analyze usecase for the REST layer and the
// event consumer, and retains the latest result so frequency views can be
// served without re-running the pipeline.
type AnalyticsService struct {
	analyzeUsecase *usecase.AnalyzeBookmarksUsecase
	logger         *slog.Logger

	mu         sync.RWMutex
	lastResult *domain.AnalysisResult
}

func NewAnalyticsService(analyzeUsecase *usecase.AnalyzeBookmarksUsecase, logger *slog.Logger) *AnalyticsService {
	if logger == nil {
		logger = slog.Default()
	}
	return &AnalyticsService{
		analyzeUsecase: analyzeUsecase,
		logger:         logger,
	}
}

// AnalyzeBatch runs one analytics pass and retains its result.
func (s *AnalyticsService) AnalyzeBatch(ctx context.Context, records []*domain.BookmarkRecord) (*domain.AnalysisResult, error) {
	result, err := s.analyzeUsecase.Execute(ctx, records)
	if err != nil {
		s.logger.Error("analytics run failed", "error", err, "records", len(records))
		return nil, fmt.Errorf("analyze batch: %w", err)
	}

	s.mu.Lock()
	s.lastResult = result
	s.mu.Unlock()

	return result, nil
}

// LastResult returns the most recent analysis, or nil when none has run.
func (s *AnalyticsService) LastResult() *domain.AnalysisResult {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastResult
}

// TopWords ranks tokens from the most recent run. With techOnly set, only
// tokens in the tech vocabulary are ranked.
func (s *AnalyticsService) TopWords(limit int, techOnly bool) ([]domain.TokenCount, error) {
	s.mu.RLock()
	result := s.lastResult
	s.mu.RUnlock()

	if result == nil {
		return nil, fmt.Errorf("no analysis has completed yet")
	}

	if techOnly {
		return result.Stats.TopTokensMatching(limit, usecase.IsTechTerm), nil
	}
	return result.Stats.TopTokens(limit), nil
}
