package domain

import (
	"fmt"
	"runtime"
)

// AnalyticsConfig represents the validated tuning knobs for one analytics run.
// Construction fails on any out-of-contract value so that a bad configuration
// is rejected before the first record is touched.
type AnalyticsConfig struct {
	ngramSize            int
	bucketGranularity    BucketGranularity
	mixedThreshold       float64
	maxParallelism       int
	morphologicalEnabled bool
}

// NewAnalyticsConfig validates and builds an AnalyticsConfig.
func NewAnalyticsConfig(ngramSize int, granularity BucketGranularity, mixedThreshold float64, maxParallelism int, morphologicalEnabled bool) (*AnalyticsConfig, error) {
	if ngramSize < 1 {
		return nil, fmt.Errorf("ngram size must be at least 1, got %d", ngramSize)
	}

	switch granularity {
	case BucketHour, BucketDay, BucketWeek, BucketMonth:
	default:
		return nil, fmt.Errorf("invalid time bucket granularity: %q", granularity)
	}

	if mixedThreshold <= 0 || mixedThreshold > 0.5 {
		return nil, fmt.Errorf("mixed language threshold must be in (0, 0.5], got %g", mixedThreshold)
	}

	if maxParallelism == 0 {
		maxParallelism = runtime.NumCPU()
	}
	if maxParallelism < 1 {
		return nil, fmt.Errorf("max parallelism must be at least 1, got %d", maxParallelism)
	}

	return &AnalyticsConfig{
		ngramSize:            ngramSize,
		bucketGranularity:    granularity,
		mixedThreshold:       mixedThreshold,
		maxParallelism:       maxParallelism,
		morphologicalEnabled: morphologicalEnabled,
	}, nil
}

// DefaultAnalyticsConfig returns the documented defaults: bigrams, daily
// buckets, 0.3 mixed threshold, parallelism bounded by available cores.
func DefaultAnalyticsConfig() *AnalyticsConfig {
	cfg, err := NewAnalyticsConfig(2, BucketDay, 0.3, runtime.NumCPU(), true)
	if err != nil {
		panic(err) // defaults are always valid
	}
	return cfg
}

func (c *AnalyticsConfig) NgramSize() int {
	return c.ngramSize
}

func (c *AnalyticsConfig) BucketGranularity() BucketGranularity {
	return c.bucketGranularity
}

func (c *AnalyticsConfig) MixedThreshold() float64 {
	return c.mixedThreshold
}

func (c *AnalyticsConfig) MaxParallelism() int {
	return c.maxParallelism
}

func (c *AnalyticsConfig) MorphologicalEnabled() bool {
	return c.morphologicalEnabled
}
