package recurrence

import (
	"io"
	"log/slog"
	"time"
)

// EngineConfig holds configuration options for the recurrence engine
type EngineConfig struct {
	CacheEnabled bool
	Cache        CacheConfig

	// MaxOccurrences caps how many instances ExpandAnchored and
	// HasOccurrenceInRange look at.
	MaxOccurrences int
	// Ranges longer than LargeRangeThreshold are first probed over
	// LargeRangeLimit only.
	LargeRangeThreshold time.Duration
	LargeRangeLimit     time.Duration

	// Location resolves floating UNTIL values. Defaults to time.UTC.
	Location *time.Location
	Logger   *slog.Logger
}

// DefaultEngineConfig provides sensible defaults for production use
var DefaultEngineConfig = EngineConfig{
	CacheEnabled: true,
	Cache:        DefaultCacheConfig,

	MaxOccurrences:      100,
	LargeRangeThreshold: 90 * 24 * time.Hour,
	LargeRangeLimit:     90 * 24 * time.Hour,
}

// LowMemoryConfig keeps the cache small and short-lived.
var LowMemoryConfig = EngineConfig{
	CacheEnabled: true,
	Cache: CacheConfig{
		TTL:             5 * time.Minute,
		MaxEntries:      100,
		CleanupInterval: 2 * time.Minute,
	},

	MaxOccurrences:      200,
	LargeRangeThreshold: 180 * 24 * time.Hour,
	LargeRangeLimit:     180 * 24 * time.Hour,
}

// DisabledCacheConfig turns off caching entirely
var DisabledCacheConfig = EngineConfig{
	CacheEnabled: false,

	MaxOccurrences:      1000,
	LargeRangeThreshold: 365 * 24 * time.Hour,
	LargeRangeLimit:     365 * 24 * time.Hour,
}

func (c EngineConfig) withDefaults() EngineConfig {
	if c.Logger == nil {
		c.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if c.Location == nil {
		c.Location = time.UTC
	}
	if c.MaxOccurrences <= 0 {
		c.MaxOccurrences = DefaultEngineConfig.MaxOccurrences
	}
	if c.LargeRangeThreshold <= 0 {
		c.LargeRangeThreshold = DefaultEngineConfig.LargeRangeThreshold
	}
	if c.LargeRangeLimit <= 0 {
		c.LargeRangeLimit = DefaultEngineConfig.LargeRangeLimit
	}
	return c
}
