// config.go: configuration for mnemo
//
// Copyright (c) 2026 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package mnemo

import (
	"time"

	"github.com/agilira/go-timecache"
)

// Config holds configuration parameters for a Store.
type Config struct {
	// AgeMax is the store-wide time-to-live for cached records.
	// A record is fresh while now - record.Set <= AgeMax (inclusive).
	// Must be > 0. Default: DefaultAgeMax (10 minutes).
	AgeMax time.Duration

	// DisableSingleFlight disables in-flight deduplication in Use.
	// When set, concurrent Use calls for the same (key, args) each
	// invoke the function independently, matching the behavior of
	// stores that predate deduplication. Default: false (deduplicate).
	DisableSingleFlight bool

	// Logger is used for debugging and monitoring.
	// If nil, NoOpLogger is used. Default: NoOpLogger.
	Logger Logger

	// TimeProvider provides current time for freshness calculations.
	// If nil, a default implementation is used. Default: system time.
	TimeProvider TimeProvider

	// MetricsCollector is used for collecting operation metrics.
	// If nil, NoOpMetricsCollector is used (zero overhead).
	MetricsCollector MetricsCollector

	// Codec compresses and decompresses packed store blobs.
	// If nil, a DEFLATE (zlib) codec is used.
	Codec Codec
}

// Validate checks configuration parameters and applies sensible defaults.
// Returns nil (no actual validation errors, only normalization).
//
// This method is automatically called by New and the From* constructors,
// so you typically don't need to call it manually.
//
// Default values applied:
//   - AgeMax: DefaultAgeMax (10 minutes) if <= 0
//   - Logger: NoOpLogger{} if nil
//   - TimeProvider: systemTimeProvider{} if nil
//   - MetricsCollector: NoOpMetricsCollector{} if nil
//   - Codec: zlibCodec{} if nil
func (c *Config) Validate() error {
	if c.AgeMax <= 0 {
		c.AgeMax = DefaultAgeMax
	}

	if c.Logger == nil {
		c.Logger = NoOpLogger{}
	}

	if c.TimeProvider == nil {
		c.TimeProvider = &systemTimeProvider{}
	}

	if c.MetricsCollector == nil {
		c.MetricsCollector = NoOpMetricsCollector{}
	}

	if c.Codec == nil {
		c.Codec = zlibCodec{}
	}

	return nil
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() Config {
	return Config{
		AgeMax:           DefaultAgeMax,
		Logger:           NoOpLogger{},
		TimeProvider:     &systemTimeProvider{},
		MetricsCollector: NoOpMetricsCollector{},
		Codec:            zlibCodec{},
	}
}

// systemTimeProvider is the default time provider using go-timecache.
// This provides much faster time access compared to time.Now() with
// zero allocations.
type systemTimeProvider struct{}

func (t *systemTimeProvider) Now() int64 {
	return timecache.CachedTimeNano()
}
