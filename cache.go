// cache.go: memoization store with TTL freshness and usage statistics
//
// Copyright (c) 2026 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package mnemo

import (
	"bytes"
	"encoding/json"
	"reflect"
	"sync"
	"sync/atomic"
	"time"
)

// Record is the stored tuple for one (key, args) pair.
type Record struct {
	// Data is the memoized payload, opaque to the store.
	Data interface{} `json:"data"`

	// Set is the timestamp (ms since epoch) of the most recent write.
	Set int64 `json:"set"`

	// Changed tracks the intervals between writes that actually
	// changed the payload.
	Changed *Stat `json:"changed"`

	// Used tracks the intervals between reads that hit a fresh record.
	Used *Stat `json:"used"`

	// AgeMax is an optional per-record TTL override in milliseconds.
	// 0 means the store-wide default applies.
	AgeMax int64 `json:"age_max,omitempty"`
}

// normalize defaults missing fields of a partially-formed record, so
// records loaded from heterogeneous sources always carry usable Stats.
func (r *Record) normalize() {
	if r.Changed == nil {
		r.Changed = &Stat{}
	}
	if r.Used == nil {
		r.Used = &Stat{}
	}
}

// maxAge returns the record's effective TTL in milliseconds given the
// store-wide default.
func (r *Record) maxAge(storeDefault int64) int64 {
	if r.AgeMax > 0 {
		return r.AgeMax
	}
	return storeDefault
}

// Store is an in-process memoization cache: a two-level mapping from a
// normalized key string to a normalized argument signature to a
// Record. All methods are safe for concurrent use; a store-level lock
// is held for the duration of each logical operation. Two stores are
// always independent.
type Store struct {
	mu   sync.RWMutex
	data map[string]map[string]*Record

	// ageMaxMillis is the store-wide TTL in ms, atomic so SetAgeMax
	// and hot reload can adjust it without taking the store lock.
	ageMaxMillis int64

	logger              Logger
	timeProvider        TimeProvider
	metrics             MetricsCollector
	codec               Codec
	disableSingleFlight bool

	// Atomic statistics counters
	hits     int64
	misses   int64
	sets     int64
	changes  int64
	computes int64
	cleaned  int64

	inflight flightGroup
}

// New creates an empty Store with the given configuration.
func New(config Config) *Store {
	_ = config.Validate()

	return &Store{
		data:                make(map[string]map[string]*Record),
		ageMaxMillis:        config.AgeMax.Milliseconds(),
		logger:              config.Logger,
		timeProvider:        config.TimeProvider,
		metrics:             config.MetricsCollector,
		codec:               config.Codec,
		disableSingleFlight: config.DisableSingleFlight,
	}
}

// nowMillis returns the provider's current time in ms since epoch.
func (s *Store) nowMillis() int64 {
	return s.timeProvider.Now() / int64(time.Millisecond)
}

// AgeMax returns the store-wide default TTL.
func (s *Store) AgeMax() time.Duration {
	return time.Duration(atomic.LoadInt64(&s.ageMaxMillis)) * time.Millisecond
}

// SetAgeMax overrides the store-wide default TTL at runtime.
// Values <= 0 are rejected with MNEMO_INVALID_CONFIG.
func (s *Store) SetAgeMax(ageMax time.Duration) error {
	if ageMax <= 0 {
		return NewErrInvalidConfig("age_max", ageMax)
	}
	atomic.StoreInt64(&s.ageMaxMillis, ageMax.Milliseconds())
	return nil
}

// Set writes data under (key, args), creating the record if needed.
// A nil payload is a no-op: the record is left untouched and no
// statistics are updated. When the new payload structurally differs
// from the stored one, the record's Changed stat receives the elapsed
// time since its last change event; the write timestamp is refreshed
// unconditionally, change or not.
func (s *Store) Set(key Key, data interface{}, args []interface{}) error {
	if data == nil {
		return nil
	}
	fk := key.format()
	fa, err := formatArgs(args)
	if err != nil {
		return err
	}

	start := s.timeProvider.Now()
	now := start / int64(time.Millisecond)

	s.mu.Lock()
	sub := s.data[fk]
	if sub == nil {
		sub = make(map[string]*Record)
		s.data[fk] = sub
	}

	rec := sub[fa]
	if rec == nil {
		rec = &Record{Set: now, Changed: &Stat{}, Used: &Stat{}}
		sub[fa] = rec
	}
	rec.normalize()

	if !payloadEqual(data, rec.Data) {
		rec.Changed.Add(float64(now) - rec.Changed.LastOr(float64(now)))
		atomic.AddInt64(&s.changes, 1)
	}

	rec.Data = data
	rec.Set = now
	s.mu.Unlock()

	atomic.AddInt64(&s.sets, 1)
	s.metrics.RecordSet(s.timeProvider.Now() - start)
	return nil
}

// SetMaxAge sets a per-record TTL override on an existing record.
// Returns MNEMO_KEY_NOT_FOUND when no record exists at (key, args);
// maxAge <= 0 clears the override back to the store-wide default.
func (s *Store) SetMaxAge(key Key, args []interface{}, maxAge time.Duration) error {
	fk := key.format()
	fa, err := formatArgs(args)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	rec := s.data[fk][fa]
	if rec == nil {
		return NewErrKeyNotFound(fk, fa)
	}
	if maxAge <= 0 {
		rec.AgeMax = 0
	} else {
		rec.AgeMax = maxAge.Milliseconds()
	}
	return nil
}

// Inspect returns the raw record at (key, args) without any freshness
// check. This is a structural lookup for diagnostics; mutating the
// returned record bypasses the store's statistics.
func (s *Store) Inspect(key Key, args []interface{}) (*Record, error) {
	fk := key.format()
	fa, err := formatArgs(args)
	if err != nil {
		return nil, err
	}

	s.mu.RLock()
	rec := s.data[fk][fa]
	s.mu.RUnlock()
	if rec == nil {
		return nil, NewErrKeyNotFound(fk, fa)
	}
	return rec, nil
}

// Get returns the payload at (key, args) if a fresh record exists.
// Freshness is now - record.Set <= AgeMax, boundary inclusive. A fresh
// hit appends the elapsed time since the last hit to the record's Used
// stat. Stale and missing records both report MNEMO_KEY_NOT_FOUND; the
// record itself is never deleted here, only Clean reclaims memory.
func (s *Store) Get(key Key, args []interface{}) (interface{}, error) {
	fk := key.format()
	fa, err := formatArgs(args)
	if err != nil {
		return nil, err
	}

	start := s.timeProvider.Now()
	now := start / int64(time.Millisecond)
	ageMax := atomic.LoadInt64(&s.ageMaxMillis)

	s.mu.Lock()
	rec := s.data[fk][fa]
	if rec == nil || now-rec.Set > rec.maxAge(ageMax) {
		s.mu.Unlock()
		atomic.AddInt64(&s.misses, 1)
		s.metrics.RecordGet(s.timeProvider.Now()-start, false)
		return nil, NewErrKeyNotFound(fk, fa)
	}

	rec.normalize()
	rec.Used.Add(float64(now) - rec.Used.LastOr(float64(rec.Set)))
	data := rec.Data
	s.mu.Unlock()

	atomic.AddInt64(&s.hits, 1)
	s.metrics.RecordGet(s.timeProvider.Now()-start, true)
	return data, nil
}

// Clear removes every record from the store.
func (s *Store) Clear() {
	s.mu.Lock()
	s.data = make(map[string]map[string]*Record)
	s.mu.Unlock()
}

// Drop removes the whole sub-map for a key, every args signature
// included.
func (s *Store) Drop(key Key) {
	fk := key.format()
	s.mu.Lock()
	delete(s.data, fk)
	s.mu.Unlock()
}

// DropArgs removes one args signature from every key in the store.
func (s *Store) DropArgs(args []interface{}) error {
	fa, err := formatArgs(args)
	if err != nil {
		return err
	}
	s.mu.Lock()
	for fk, sub := range s.data {
		delete(sub, fa)
		if len(sub) == 0 {
			delete(s.data, fk)
		}
	}
	s.mu.Unlock()
	return nil
}

// Unset removes the single record at (key, args).
func (s *Store) Unset(key Key, args []interface{}) error {
	fk := key.format()
	fa, err := formatArgs(args)
	if err != nil {
		return err
	}
	s.mu.Lock()
	if sub := s.data[fk]; sub != nil {
		delete(sub, fa)
		if len(sub) == 0 {
			delete(s.data, fk)
		}
	}
	s.mu.Unlock()
	return nil
}

// Clean sweeps the store: it removes exactly the records a read would
// report as not found (stale under the freshness test) and then any
// key left with zero records. Returns the number of records removed.
// This is the only operation that reclaims memory for expired entries.
func (s *Store) Clean() int {
	now := s.nowMillis()
	ageMax := atomic.LoadInt64(&s.ageMaxMillis)
	removed := 0

	s.mu.Lock()
	for fk, sub := range s.data {
		for fa, rec := range sub {
			if now-rec.Set > rec.maxAge(ageMax) {
				delete(sub, fa)
				removed++
			}
		}
		if len(sub) == 0 {
			delete(s.data, fk)
		}
	}
	s.mu.Unlock()

	if removed > 0 {
		atomic.AddInt64(&s.cleaned, int64(removed))
		s.logger.Debug("cleaned stale records", "removed", removed)
	}
	s.metrics.RecordClean(removed)
	return removed
}

// Len returns the current number of records in the store.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, sub := range s.data {
		n += len(sub)
	}
	return n
}

// Keys returns the normalized key strings currently present.
// Iteration order is not meaningful.
func (s *Store) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := make([]string, 0, len(s.data))
	for fk := range s.data {
		keys = append(keys, fk)
	}
	return keys
}

// Stats returns a snapshot of store statistics.
func (s *Store) Stats() CacheStats {
	return CacheStats{
		Hits:     uint64(atomic.LoadInt64(&s.hits)),     // #nosec G115 - stats counters are always positive
		Misses:   uint64(atomic.LoadInt64(&s.misses)),   // #nosec G115 - stats counters are always positive
		Sets:     uint64(atomic.LoadInt64(&s.sets)),     // #nosec G115 - stats counters are always positive
		Changes:  uint64(atomic.LoadInt64(&s.changes)),  // #nosec G115 - stats counters are always positive
		Computes: uint64(atomic.LoadInt64(&s.computes)), // #nosec G115 - stats counters are always positive
		Cleaned:  uint64(atomic.LoadInt64(&s.cleaned)),  // #nosec G115 - stats counters are always positive
		Size:     s.Len(),
	}
}

// payloadEqual compares two payloads by their canonical serialized
// form, so a value that round-tripped through JSON still compares
// equal to its freshly computed twin. Payloads that do not serialize
// fall back to structural reflection equality.
func payloadEqual(a, b interface{}) bool {
	ab, errA := json.Marshal(a)
	bb, errB := json.Marshal(b)
	if errA != nil || errB != nil {
		return reflect.DeepEqual(a, b)
	}
	return bytes.Equal(ab, bb)
}
