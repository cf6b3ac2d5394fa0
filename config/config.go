package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"bookmark-analytics/domain"
)

type Config struct {
	Analytics AnalyticsSettings
	Source    SourceConfig
	HTTP      HTTPConfig
}

// SourceConfig locates the bookmark export to analyze at startup.
// An empty path means no startup batch; records then arrive over
// HTTP or the event stream only.
type SourceConfig struct {
	CSVPath string
}

// AnalyticsSettings carries the raw tuning knobs before domain validation.
type AnalyticsSettings struct {
	NgramSize            int
	BucketGranularity    string
	MixedThreshold       float64
	MaxParallelism       int
	MorphologicalEnabled bool
	StopwordFile         string
}

type HTTPConfig struct {
	Addr              string
	ReadHeaderTimeout time.Duration
}

func Load() (*Config, error) {
	cfg := &Config{
		Analytics: AnalyticsSettings{
			NgramSize:            getEnvInt("ANALYTICS_NGRAM_SIZE", 2),
			BucketGranularity:    getEnvOrDefault("ANALYTICS_TIME_BUCKET", "day"),
			MixedThreshold:       getEnvFloat("ANALYTICS_MIXED_THRESHOLD", 0.3),
			MaxParallelism:       getEnvInt("ANALYTICS_MAX_PARALLELISM", 0),
			MorphologicalEnabled: getEnvBool("MORPHOLOGICAL_BACKEND_ENABLED", true),
			StopwordFile:         getEnvOrDefault("STOPWORD_FILE", ""),
		},
		Source: SourceConfig{
			CSVPath: getEnvOrDefault("BOOKMARK_CSV_PATH", ""),
		},
		HTTP: HTTPConfig{
			Addr:              getEnvOrDefault("HTTP_ADDR", ":9400"),
			ReadHeaderTimeout: 5 * time.Second,
		},
	}

	slog.Info("Configuration loaded",
		"ngram_size", cfg.Analytics.NgramSize,
		"time_bucket", cfg.Analytics.BucketGranularity,
		"morphological_enabled", cfg.Analytics.MorphologicalEnabled,
		"http_addr", cfg.HTTP.Addr,
	)

	return cfg, nil
}

// AnalyticsConfig validates the raw settings into the domain configuration.
// Invalid values reject the whole configuration rather than degrading.
func (c *Config) AnalyticsConfig() (*domain.AnalyticsConfig, error) {
	cfg, err := domain.NewAnalyticsConfig(
		c.Analytics.NgramSize,
		domain.BucketGranularity(c.Analytics.BucketGranularity),
		c.Analytics.MixedThreshold,
		c.Analytics.MaxParallelism,
		c.Analytics.MorphologicalEnabled,
	)
	if err != nil {
		return nil, fmt.Errorf("analytics configuration error: %w", err)
	}
	return cfg, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	// Check for _FILE suffix
	if fileValue := os.Getenv(key + "_FILE"); fileValue != "" {
		content, err := os.ReadFile(fileValue)
		if err == nil {
			return strings.TrimSpace(string(content))
		}
	}

	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if v := getEnvOrDefault(key, ""); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
		slog.Warn("invalid integer in environment, using default", "key", key, "default", defaultValue)
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if v := getEnvOrDefault(key, ""); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
		slog.Warn("invalid float in environment, using default", "key", key, "default", defaultValue)
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if v := getEnvOrDefault(key, ""); v != "" {
		return v == "true" || v == "1"
	}
	return defaultValue
}
