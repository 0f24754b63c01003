// interfaces.go: public interfaces for mnemo
//
// Copyright (c) 2026 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package mnemo

// CacheStats provides statistics about store activity.
type CacheStats struct {
	// Hits is the number of reads that found a fresh record
	Hits uint64

	// Misses is the number of reads that found no record or a stale one
	Misses uint64

	// Sets is the number of completed write operations
	Sets uint64

	// Changes is the number of writes whose payload differed from the
	// stored one
	Changes uint64

	// Computes is the number of memoized function executions
	Computes uint64

	// Cleaned is the total number of records removed by Clean
	Cleaned uint64

	// Size is the current number of records in the store
	Size int
}

// HitRatio returns the cache hit ratio as a percentage (0-100).
// Returns 0.0 if no read operations have been performed yet.
func (s CacheStats) HitRatio() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total) * 100
}

// Logger defines a minimal logging interface with zero overhead.
// Implementations should use structured logging and be allocation-free.
type Logger interface {
	// Debug logs a debug message with optional key-value pairs.
	Debug(msg string, keyvals ...interface{})

	// Info logs an info message with optional key-value pairs.
	Info(msg string, keyvals ...interface{})

	// Warn logs a warning message with optional key-value pairs.
	Warn(msg string, keyvals ...interface{})

	// Error logs an error message with optional key-value pairs.
	Error(msg string, keyvals ...interface{})
}

// NoOpLogger is a logger that does nothing. Used as default to avoid nil checks.
type NoOpLogger struct{}

// Debug does nothing (no-op implementation).
func (NoOpLogger) Debug(msg string, keyvals ...interface{}) {}

// Info does nothing (no-op implementation).
func (NoOpLogger) Info(msg string, keyvals ...interface{}) {}

// Warn does nothing (no-op implementation).
func (NoOpLogger) Warn(msg string, keyvals ...interface{}) {}

// Error does nothing (no-op implementation).
func (NoOpLogger) Error(msg string, keyvals ...interface{}) {}

// TimeProvider provides current time with caching for performance.
// This interface allows injecting optimized time implementations,
// and fixed clocks in tests.
type TimeProvider interface {
	// Now returns the current time in nanoseconds since epoch.
	// This method must be very fast and allocation-free.
	Now() int64
}

// MetricsCollector defines an interface for collecting cache operation
// metrics. Implementations can send metrics to Prometheus, DataDog,
// StatsD, or other monitoring systems.
//
// All methods must be safe for concurrent use and cheap enough to sit
// on the operation path.
type MetricsCollector interface {
	// RecordGet records a read with its latency and hit/miss result.
	RecordGet(latencyNs int64, hit bool)

	// RecordSet records a write with its latency.
	RecordSet(latencyNs int64)

	// RecordCompute records a memoized function execution with its latency.
	RecordCompute(latencyNs int64)

	// RecordClean records a sweep and the number of records it removed.
	RecordClean(removed int)
}

// NoOpMetricsCollector is a metrics collector that does nothing.
// Used as default to avoid nil checks and ensure zero overhead.
type NoOpMetricsCollector struct{}

// RecordGet does nothing. Inlined by compiler.
func (NoOpMetricsCollector) RecordGet(latencyNs int64, hit bool) {}

// RecordSet does nothing. Inlined by compiler.
func (NoOpMetricsCollector) RecordSet(latencyNs int64) {}

// RecordCompute does nothing. Inlined by compiler.
func (NoOpMetricsCollector) RecordCompute(latencyNs int64) {}

// RecordClean does nothing. Inlined by compiler.
func (NoOpMetricsCollector) RecordClean(removed int) {}

// ByteStream is the byte-stream collaborator used by the file
// serialization variants. Both operations are atomic whole-blob
// transfers; retry policy, if any, belongs to the implementation.
type ByteStream interface {
	// Write replaces the stream contents with data.
	Write(data []byte) error

	// ReadAll returns the entire stream contents.
	ReadAll() ([]byte, error)
}

// Codec is the compression collaborator used by the packed
// serialization variants. Compress and Decompress are single-shot
// whole-buffer operations.
type Codec interface {
	// Compress returns the compressed form of data.
	Compress(data []byte) ([]byte, error)

	// Decompress returns the original form of data.
	// Malformed input must surface a decodable error, not a crash.
	Decompress(data []byte) ([]byte, error)
}
