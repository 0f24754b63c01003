// Package mnemo provides an in-process memoization cache keyed by
// (key, args) pairs, with TTL-based freshness, per-record change/usage
// statistics, multi-store merge and whole-store serialization.
//
// # Overview
//
// A Store maps a normalized key string to a normalized argument
// signature to a Record. A Record holds the memoized payload, the
// timestamp of its last write, and two Stat accumulators: one tracking
// the intervals between writes that actually changed the payload, one
// tracking the intervals between fresh reads. Statistics survive a
// serialize/deserialize round trip through a lossy compact encoding
// (count, min, max, sum, last) instead of persisting every sample.
//
// # Quick Start
//
//	store := mnemo.New(mnemo.Config{AgeMax: 10 * time.Minute})
//
//	// Memoize a computation under its function identity.
//	key := mnemo.KeyOfFunc(fetchUser)
//	user, err := store.Use(key, fetchUser, []any{123}, mnemo.CacheAlways())
//
//	// Or read/write explicitly.
//	_ = store.Set(mnemo.KeyOf("user"), user, []any{123})
//	cached, err := store.Get(mnemo.KeyOf("user"), []any{123})
//
// # Freshness
//
// A record is fresh while now - record.Set <= AgeMax (boundary
// inclusive). The store-wide default is Config.AgeMax (10 minutes);
// individual records may carry an override via SetMaxAge. Stale
// records are never deleted by reads: Clean is the only operation that
// reclaims memory.
//
// # Memoized Execution
//
// Use consults the cache according to a CachePolicy, invokes the
// function on a miss, stores the result and returns it. Concurrent
// calls for the same (key, args) execute the function only once
// (singleflight); set Config.DisableSingleFlight to restore
// independent invocation per caller. Function errors and recovered
// panics propagate to the caller and are never cached; the store is
// left untouched.
//
// # Serialization
//
// ToJSON/FromJSON handle the canonical JSON text form, ToPack/FromPack
// the DEFLATE-compressed byte form, SaveFile/LoadFile the file
// variants (a ".json" suffix selects the text form). Merging any
// number of stores or raw store documents keeps, for every
// (key, args), the record with the greatest write timestamp:
//
//	merged, err := mnemo.FromMerge(mnemo.Config{}, storeA, storeB)
//
// # Configuration
//
//	config := mnemo.Config{
//		// Store-wide TTL for cached records. Default: 10 minutes.
//		AgeMax: time.Hour,
//
//		// Run every concurrent Use computation independently instead
//		// of deduplicating in-flight calls.
//		DisableSingleFlight: false,
//
//		// Optional: Logger, TimeProvider, MetricsCollector, Codec.
//	}
//
// AgeMax can also be changed at runtime with SetAgeMax, or watched
// from a configuration file with HotConfig (Argus-backed).
//
// # Error Handling
//
// Mnemo uses structured errors with error codes:
//
//	value, err := store.Get(key, args)
//	if mnemo.IsNotFound(err) {
//		// missing or stale record
//	}
//
// Available error codes:
//   - MNEMO_KEY_FORMAT: key or args cannot be deterministically serialized
//   - MNEMO_KEY_NOT_FOUND: record missing or stale
//   - MNEMO_INVALID_SOURCE: store constructed from a malformed source
//   - MNEMO_CORRUPTED_PACK: packed blob fails to decompress
//   - MNEMO_SAVE_FAILED / MNEMO_LOAD_FAILED: byte-stream I/O failures
//   - MNEMO_PANIC_RECOVERED: memoized function panicked
//   - MNEMO_INVALID_CONFIG: invalid configuration
//
// # Concurrency
//
// All Store operations are safe for concurrent use. A store-level
// RWMutex is held for the duration of each logical operation; two
// stores are always independent. The read-check-compute-store cycle of
// Use is atomic with respect to other callers unless
// DisableSingleFlight is set.
//
// # License
//
// See LICENSE file in the repository.
//
// Contributions welcome at https://github.com/agilira/mnemo
package mnemo
