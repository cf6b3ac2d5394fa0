package config

import (
	"testing"

	"bookmark-analytics/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 2, cfg.Analytics.NgramSize)
	assert.Equal(t, "day", cfg.Analytics.BucketGranularity)
	assert.InDelta(t, 0.3, cfg.Analytics.MixedThreshold, 1e-9)
	assert.True(t, cfg.Analytics.MorphologicalEnabled)
	assert.Equal(t, ":9400", cfg.HTTP.Addr)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("ANALYTICS_NGRAM_SIZE", "3")
	t.Setenv("ANALYTICS_TIME_BUCKET", "week")
	t.Setenv("ANALYTICS_MIXED_THRESHOLD", "0.25")
	t.Setenv("ANALYTICS_MAX_PARALLELISM", "8")
	t.Setenv("MORPHOLOGICAL_BACKEND_ENABLED", "false")
	t.Setenv("HTTP_ADDR", ":8088")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 3, cfg.Analytics.NgramSize)
	assert.Equal(t, "week", cfg.Analytics.BucketGranularity)
	assert.InDelta(t, 0.25, cfg.Analytics.MixedThreshold, 1e-9)
	assert.Equal(t, 8, cfg.Analytics.MaxParallelism)
	assert.False(t, cfg.Analytics.MorphologicalEnabled)
	assert.Equal(t, ":8088", cfg.HTTP.Addr)
}

func TestLoad_InvalidValuesFallBackToDefaults(t *testing.T) {
	t.Setenv("ANALYTICS_NGRAM_SIZE", "not-a-number")
	t.Setenv("ANALYTICS_MIXED_THRESHOLD", "huge")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 2, cfg.Analytics.NgramSize)
	assert.InDelta(t, 0.3, cfg.Analytics.MixedThreshold, 1e-9)
}

func TestAnalyticsConfig_Valid(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	domainCfg, err := cfg.AnalyticsConfig()
	require.NoError(t, err)
	assert.Equal(t, 2, domainCfg.NgramSize())
	assert.Equal(t, domain.BucketDay, domainCfg.BucketGranularity())
}

func TestAnalyticsConfig_RejectsInvalidValues(t *testing.T) {
	t.Setenv("ANALYTICS_NGRAM_SIZE", "-2")

	cfg, err := Load()
	require.NoError(t, err)

	_, err = cfg.AnalyticsConfig()
	assert.Error(t, err)
}

func TestAnalyticsConfig_RejectsUnknownBucket(t *testing.T) {
	t.Setenv("ANALYTICS_TIME_BUCKET", "decade")

	cfg, err := Load()
	require.NoError(t, err)

	_, err = cfg.AnalyticsConfig()
	assert.Error(t, err)
}
