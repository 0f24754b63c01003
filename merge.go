// merge.go: store construction from heterogeneous sources and multi-store merge
//
// Copyright (c) 2026 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package mnemo

// storeDocument is the persisted shape of a store: formatted key to
// formatted args to record.
type storeDocument = map[string]map[string]*Record

// From constructs a Store from a heterogeneous source:
//   - *Store: its records are adopted by reference
//   - a store document (map of maps of records): adopted by reference
//   - string: parsed as the JSON text form; a string that fails to
//     parse yields an empty store by design (see FromJSON)
//
// Any other source fails loudly with MNEMO_INVALID_SOURCE.
func From(source interface{}, config Config) (*Store, error) {
	switch src := source.(type) {
	case *Store:
		if src == nil {
			return New(config), nil
		}
		out := New(config)
		src.mu.RLock()
		for fk, sub := range src.data {
			dst := make(map[string]*Record, len(sub))
			for fa, rec := range sub {
				rec.normalize()
				dst[fa] = rec
			}
			out.data[fk] = dst
		}
		src.mu.RUnlock()
		return out, nil
	case storeDocument:
		out := New(config)
		for fk, sub := range src {
			dst := make(map[string]*Record, len(sub))
			for fa, rec := range sub {
				if rec == nil {
					rec = &Record{}
				}
				rec.normalize()
				dst[fa] = rec
			}
			out.data[fk] = dst
		}
		return out, nil
	case string:
		return FromJSON(src, config), nil
	default:
		return nil, NewErrInvalidSource(source)
	}
}

// FromMerge builds a new Store out of an ordered collection of sources
// (stores, raw store documents, or JSON text — anything From accepts).
// For every (key, args) appearing in any source the record with the
// greatest write timestamp wins; ties resolve first-seen-wins in
// source order. Records are copied into the merged store by reference.
// Missing fields of partially-formed input records are defaulted
// (empty Stats, zero timestamp) before comparison, so a well-formed
// record always beats a placeholder.
func FromMerge(config Config, sources ...interface{}) (*Store, error) {
	merged := New(config)

	for _, source := range sources {
		st, err := From(source, config)
		if err != nil {
			return nil, err
		}
		for fk, sub := range st.data {
			dst := merged.data[fk]
			if dst == nil {
				dst = make(map[string]*Record, len(sub))
				merged.data[fk] = dst
			}
			for fa, rec := range sub {
				current := dst[fa]
				if current == nil || rec.Set > current.Set {
					dst[fa] = rec
				}
			}
		}
	}

	return merged, nil
}
