// Package aggregate accumulates corpus statistics for an analytics run.
// Each worker owns one Aggregator; partials are merged after the run, so
// Ingest never needs a lock.
package aggregate

import (
	"time"

	"bookmark-analytics/domain"
)

type Aggregator struct {
	ngramSize   int
	granularity domain.BucketGranularity
	stats       *domain.CorpusStats
}

func New(ngramSize int, granularity domain.BucketGranularity) *Aggregator {
	return &Aggregator{
		ngramSize:   ngramSize,
		granularity: granularity,
		stats:       domain.NewCorpusStats(),
	}
}

// Ingest counts one record's token sequence. Calling it twice for the same
// record double-counts; the facade guarantees exactly-once ingestion per
// record.
func (a *Aggregator) Ingest(recordID string, seq domain.TokenSequence, ts time.Time) {
	bucket := a.granularity.BucketKey(ts)

	tokens := seq.Tokens
	for _, token := range tokens {
		a.stats.TokenCounts[token]++

		counts, ok := a.stats.BucketCounts[bucket]
		if !ok {
			counts = make(map[string]int)
			a.stats.BucketCounts[bucket] = counts
		}
		counts[token]++
	}

	// N-grams stay within one record; nothing spans record boundaries.
	for i := 0; i+a.ngramSize <= seq.Len(); i++ {
		a.stats.NgramCounts[domain.NgramKey(tokens[i:i+a.ngramSize])]++
	}

	a.stats.Processed++
}

// MarkSkipped records a skipped (empty or unparseable) record.
func (a *Aggregator) MarkSkipped() {
	a.stats.Skipped++
}

// Merge folds another aggregator's partial stats into this one.
func (a *Aggregator) Merge(other *Aggregator) {
	if other != nil {
		a.stats.Merge(other.stats)
	}
}

// Snapshot returns a read-only deep copy of the accumulated statistics.
func (a *Aggregator) Snapshot() *domain.CorpusStats {
	return a.stats.Clone()
}
