package domain

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// BucketGranularity controls how timestamps are coarsened into bucket keys.
type BucketGranularity string

const (
	BucketHour  BucketGranularity = "hour"
	BucketDay   BucketGranularity = "day"
	BucketWeek  BucketGranularity = "week"
	BucketMonth BucketGranularity = "month"
)

// BucketKey truncates a timestamp to this granularity. Keys are derived in
// UTC so the same instant always lands in the same bucket.
func (g BucketGranularity) BucketKey(ts time.Time) string {
	ts = ts.UTC()
	switch g {
	case BucketHour:
		return ts.Format("2006-01-02T15")
	case BucketWeek:
		year, week := ts.ISOWeek()
		return fmt.Sprintf("%d-W%02d", year, week)
	case BucketMonth:
		return ts.Format("2006-01")
	default:
		return ts.Format("2006-01-02")
	}
}

// CorpusStats accumulates corpus-level counts for one analytics run.
// It is owned by a single aggregator while being written; callers only
// ever see copies produced by Clone.
type CorpusStats struct {
	TokenCounts  map[string]int            `json:"token_counts"`
	NgramCounts  map[string]int            `json:"ngram_counts"`
	BucketCounts map[string]map[string]int `json:"bucket_counts"`
	Processed    int                       `json:"processed_records"`
	Skipped      int                       `json:"skipped_records"`
}

func NewCorpusStats() *CorpusStats {
	return &CorpusStats{
		TokenCounts:  make(map[string]int),
		NgramCounts:  make(map[string]int),
		BucketCounts: make(map[string]map[string]int),
	}
}

// NgramKey joins the tokens of one n-gram into its counting key.
func NgramKey(tokens []string) string {
	return strings.Join(tokens, " ")
}

// Merge folds another partial accumulation into this one.
func (s *CorpusStats) Merge(other *CorpusStats) {
	if other == nil {
		return
	}
	for token, n := range other.TokenCounts {
		s.TokenCounts[token] += n
	}
	for gram, n := range other.NgramCounts {
		s.NgramCounts[gram] += n
	}
	for bucket, counts := range other.BucketCounts {
		dst, ok := s.BucketCounts[bucket]
		if !ok {
			dst = make(map[string]int, len(counts))
			s.BucketCounts[bucket] = dst
		}
		for token, n := range counts {
			dst[token] += n
		}
	}
	s.Processed += other.Processed
	s.Skipped += other.Skipped
}

// Clone returns a deep copy safe to hand out after the run completes.
func (s *CorpusStats) Clone() *CorpusStats {
	out := NewCorpusStats()
	out.Merge(s)
	return out
}

// TotalBucketTokens sums every per-bucket token count. For a completed run
// this equals the summed length of all non-skipped token sequences.
func (s *CorpusStats) TotalBucketTokens() int {
	total := 0
	for _, counts := range s.BucketCounts {
		for _, n := range counts {
			total += n
		}
	}
	return total
}

// TokenCount is one entry of a ranked frequency view.
type TokenCount struct {
	Token string `json:"token"`
	Count int    `json:"count"`
}

// TopTokens returns the n most frequent tokens, ties broken by token order
// so the ranking is deterministic.
func (s *CorpusStats) TopTokens(n int) []TokenCount {
	return s.topTokens(n, nil)
}

// TopTokensMatching ranks only tokens accepted by keep.
func (s *CorpusStats) TopTokensMatching(n int, keep func(string) bool) []TokenCount {
	return s.topTokens(n, keep)
}

func (s *CorpusStats) topTokens(n int, keep func(string) bool) []TokenCount {
	ranked := make([]TokenCount, 0, len(s.TokenCounts))
	for token, count := range s.TokenCounts {
		if keep != nil && !keep(token) {
			continue
		}
		ranked = append(ranked, TokenCount{Token: token, Count: count})
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		return ranked[i].Token < ranked[j].Token
	})

	if n > 0 && len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}
