// memoize.go: memoized execution with in-flight deduplication
//
// Use wraps an arbitrary computation with the cache: consult the store
// according to a CachePolicy, invoke the function on a miss, write the
// result back and return it. Concurrent callers for the same
// (key, args) share a single execution through singleflight unless the
// store was configured with DisableSingleFlight.
//
// Copyright (c) 2026 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0
package mnemo

import (
	"context"
	"sync/atomic"

	"golang.org/x/sync/singleflight"
)

// flightGroup deduplicates in-flight computations per store.
type flightGroup = singleflight.Group

// Func is a memoizable computation invoked with the positional args of
// the Use call.
type Func func(args ...interface{}) (interface{}, error)

// ContextFunc is a memoizable computation that respects context
// cancellation.
type ContextFunc func(ctx context.Context, args ...interface{}) (interface{}, error)

// CachePolicy controls whether Use may serve a cached value before
// invoking the function.
type CachePolicy struct {
	useCache bool
	stale    func(cached interface{}) bool
}

// CacheAlways serves any fresh cached value without invoking the
// function.
func CacheAlways() CachePolicy {
	return CachePolicy{useCache: true}
}

// CacheNever bypasses the cache read: the function always runs and its
// result still refreshes the record.
func CacheNever() CachePolicy {
	return CachePolicy{}
}

// CacheUnless serves a fresh cached value unless the predicate reports
// it stale from the caller's perspective.
func CacheUnless(stale func(cached interface{}) bool) CachePolicy {
	return CachePolicy{useCache: true, stale: stale}
}

// Use returns the cached value at (key, args) when the policy allows
// and a fresh record exists; otherwise it invokes fn with args, stores
// the result and returns it. A nil fn turns Use into a pure lookup via
// Inspect. Function errors and recovered panics propagate to the
// caller without being cached; the store is left exactly as it was.
//
// Concurrent Use calls for the same (key, args) execute fn only once
// and share the result, unless the store was configured with
// DisableSingleFlight, in which case each caller invokes fn
// independently.
func (s *Store) Use(key Key, fn Func, args []interface{}, policy CachePolicy) (interface{}, error) {
	fk := key.format()
	fa, err := formatArgs(args)
	if err != nil {
		return nil, err
	}

	// Fast path: serve a fresh record the policy accepts.
	if policy.useCache {
		value, err := s.Get(key, args)
		if err == nil {
			if policy.stale == nil || !policy.stale(value) {
				return value, nil
			}
		} else if !IsNotFound(err) {
			return nil, err
		}
	}

	// No function: the key is being reused purely as a lookup handle.
	if fn == nil {
		rec, err := s.Inspect(key, args)
		if err != nil {
			return nil, err
		}
		return rec.Data, nil
	}

	if s.disableSingleFlight {
		return s.compute(key, fk, fn, args)
	}

	value, err, _ := s.inflight.Do(flightKey(fk, fa), func() (interface{}, error) {
		return s.compute(key, fk, fn, args)
	})
	if err != nil {
		return nil, err
	}
	return value, nil
}

// UseWithContext is like Use but respects context cancellation. The
// context is passed to fn; a waiter whose context expires stops
// waiting immediately while the in-flight computation completes on its
// own and still populates the store.
func (s *Store) UseWithContext(ctx context.Context, key Key, fn ContextFunc, args []interface{}, policy CachePolicy) (interface{}, error) {
	fk := key.format()
	fa, err := formatArgs(args)
	if err != nil {
		return nil, err
	}

	if policy.useCache {
		value, err := s.Get(key, args)
		if err == nil {
			if policy.stale == nil || !policy.stale(value) {
				return value, nil
			}
		} else if !IsNotFound(err) {
			return nil, err
		}
	}

	if fn == nil {
		rec, err := s.Inspect(key, args)
		if err != nil {
			return nil, err
		}
		return rec.Data, nil
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if s.disableSingleFlight {
		return s.computeContext(ctx, key, fk, fn, args)
	}

	ch := s.inflight.DoChan(flightKey(fk, fa), func() (interface{}, error) {
		return s.computeContext(ctx, key, fk, fn, args)
	})
	select {
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// compute runs fn with panic recovery and writes the result through
// Set only after fn fully succeeds.
func (s *Store) compute(key Key, fk string, fn Func, args []interface{}) (interface{}, error) {
	start := s.timeProvider.Now()

	var value interface{}
	var err error
	func() {
		defer func() {
			if r := recover(); r != nil {
				err = NewErrPanicRecovered(fk, r)
			}
		}()
		value, err = fn(args...)
	}()
	if err != nil {
		return nil, err
	}

	atomic.AddInt64(&s.computes, 1)
	s.metrics.RecordCompute(s.timeProvider.Now() - start)

	if err := s.Set(key, value, args); err != nil {
		return nil, err
	}
	return value, nil
}

// computeContext is compute for context-aware functions.
func (s *Store) computeContext(ctx context.Context, key Key, fk string, fn ContextFunc, args []interface{}) (interface{}, error) {
	start := s.timeProvider.Now()

	var value interface{}
	var err error
	func() {
		defer func() {
			if r := recover(); r != nil {
				err = NewErrPanicRecovered(fk, r)
			}
		}()
		value, err = fn(ctx, args...)
	}()
	if err != nil {
		return nil, err
	}

	atomic.AddInt64(&s.computes, 1)
	s.metrics.RecordCompute(s.timeProvider.Now() - start)

	if err := s.Set(key, value, args); err != nil {
		return nil, err
	}
	return value, nil
}

// flightKey joins the two normalized identities with a separator that
// cannot appear in JSON-encoded strings unescaped.
func flightKey(fk, fa string) string {
	return fk + "\x1f" + fa
}
