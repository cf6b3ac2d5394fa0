package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"bookmark-analytics/aggregate"
	"bookmark-analytics/domain"
	"bookmark-analytics/langdetect"
	"bookmark-analytics/logger"
	"bookmark-analytics/normalizer"
	"bookmark-analytics/tokenfilter"
	"bookmark-analytics/tokenize"
	"bookmark-analytics/utils"

	"github.com/google/uuid"
)

// AnalyzeBookmarksUsecase is the single entry point for an analytics run:
// it pushes every record through normalize → classify → tokenize → filter,
// aggregates per-worker partial stats, and merges them into one result.
type AnalyzeBookmarksUsecase struct {
	config     *domain.AnalyticsConfig
	normalizer *normalizer.Normalizer
	classifier *langdetect.Classifier
	dispatcher *tokenize.Dispatcher
	filter     *tokenfilter.Filter
	logger     *slog.Logger
	ctxlog     *logger.ContextLogger
}

func NewAnalyzeBookmarksUsecase(cfg *domain.AnalyticsConfig, dispatcher *tokenize.Dispatcher, filter *tokenfilter.Filter, log *slog.Logger) *AnalyzeBookmarksUsecase {
	if log == nil {
		log = slog.Default()
	}
	return &AnalyzeBookmarksUsecase{
		config:     cfg,
		normalizer: normalizer.New(),
		classifier: langdetect.New(cfg.MixedThreshold()),
		dispatcher: dispatcher,
		filter:     filter,
		logger:     log,
		ctxlog:     logger.NewContextLogger(log),
	}
}

// Execute analyzes one batch. A nil or invalid configuration rejects the
// whole call before any record is processed; individual record failures are
// recorded as skips and never abort the batch.
func (u *AnalyzeBookmarksUsecase) Execute(ctx context.Context, records []*domain.BookmarkRecord) (*domain.AnalysisResult, error) {
	if u.config == nil {
		return nil, fmt.Errorf("analytics configuration is required")
	}

	start := time.Now()
	runID := uuid.NewString()
	ctx = logger.WithRunID(ctx, runID)
	log := u.ctxlog.WithContext(ctx)

	log.Info("starting analytics run",
		"records", len(records),
		"parallelism", u.config.MaxParallelism(),
		"degraded", u.dispatcher.Degraded(),
	)

	workers := u.config.MaxParallelism()
	if workers > len(records) && len(records) > 0 {
		workers = len(records)
	}

	analyses := make([]domain.RecordAnalysis, len(records))
	partials := make([]*aggregate.Aggregator, workers)
	for w := range partials {
		partials[w] = aggregate.New(u.config.NgramSize(), u.config.BucketGranularity())
	}

	pool := utils.NewRecordWorkerPool(workers, log)
	err := pool.Process(ctx, len(records), func(workerID, idx int) {
		analyses[idx] = u.processRecord(ctx, records[idx], partials[workerID])
	})
	if err != nil {
		// A partial run must never masquerade as a completed one.
		u.ctxlog.LogError(ctx, "analyze_bookmarks", err)
		return nil, fmt.Errorf("analytics run aborted: %w", err)
	}

	merged := aggregate.New(u.config.NgramSize(), u.config.BucketGranularity())
	for _, partial := range partials {
		merged.Merge(partial)
	}

	stats := merged.Snapshot()
	log.Info("analytics run complete",
		"processed", stats.Processed,
		"skipped", stats.Skipped,
		"unique_tokens", len(stats.TokenCounts),
	)
	u.ctxlog.LogDurationTime(ctx, "analyze_bookmarks", time.Since(start))

	return &domain.AnalysisResult{
		RunID:    runID,
		Stats:    stats,
		Records:  analyses,
		Degraded: u.dispatcher.Degraded(),
	}, nil
}

// processRecord runs the per-record pipeline. A panic from any stage is
// converted into a skip so one bad record cannot take the batch down.
func (u *AnalyzeBookmarksUsecase) processRecord(ctx context.Context, record *domain.BookmarkRecord, agg *aggregate.Aggregator) (analysis domain.RecordAnalysis) {
	analysis = domain.RecordAnalysis{RecordID: record.ID(), Language: domain.LanguageUnknown}
	recCtx := logger.WithRecordID(ctx, record.ID())

	defer func() {
		if r := recover(); r != nil {
			u.ctxlog.LogError(recCtx, "process_record", fmt.Errorf("%v", r))
			agg.MarkSkipped()
			analysis.Skipped = true
			analysis.SkipReason = fmt.Sprintf("processing failure: %v", r)
			analysis.Tokens = nil
		}
	}()

	normalized := u.normalizer.Normalize(record.Text())
	analysis.Hashtags = normalized.Hashtags
	analysis.Mentions = normalized.Mentions
	analysis.HadEmoji = normalized.HadEmoji
	analysis.Category = Categorize(record.Text())

	if normalized.CleanText == "" {
		u.ctxlog.WithContext(logger.WithStage(recCtx, "normalize")).Debug("record skipped",
			"reason", "empty text after normalization")
		agg.MarkSkipped()
		analysis.Skipped = true
		analysis.SkipReason = "empty text after normalization"
		return analysis
	}

	tag := u.classifier.Classify(normalized.CleanText)
	analysis.Language = tag

	tokens := u.dispatcher.Tokenize(normalized.CleanText, tag)
	seq := domain.TokenSequence{
		Tokens:   u.filter.Apply(tokens, tag),
		Language: tag,
	}
	analysis.Tokens = seq.Tokens

	agg.Ingest(record.ID(), seq, record.CreatedAt())
	return analysis
}
