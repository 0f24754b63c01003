// serialize.go: whole-store serialization to JSON text and packed byte forms
//
// The persisted layout is a single JSON document:
//
//	{ formattedKey: { formattedArgs: { data, set, changed, used, age_max? } } }
//
// where changed/used appear in their compact Stat encoding. The packed
// form is this document, DEFLATE-compressed through the Codec
// collaborator.
//
// Copyright (c) 2026 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package mnemo

import (
	"encoding/json"
	"strings"
)

// ToJSON serializes the whole store to its canonical JSON text form.
// The 4-space indentation is cosmetic, not a compatibility requirement.
func (s *Store) ToJSON() (string, error) {
	s.mu.RLock()
	b, err := json.MarshalIndent(s.data, "", "    ")
	s.mu.RUnlock()
	if err != nil {
		return "", NewErrSaveFailed("json", err)
	}
	return string(b), nil
}

// FromJSON constructs a Store from its JSON text form. Text that fails
// to parse yields an empty store rather than an error, by design: a
// damaged persisted cache degrades to a cold one.
func FromJSON(text string, config Config) *Store {
	out := New(config)

	var doc storeDocument
	if err := json.Unmarshal([]byte(text), &doc); err != nil {
		out.logger.Warn("store text failed to parse, starting empty", "error", err)
		return out
	}
	for fk, sub := range doc {
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
	return out
}

// ToPack serializes the whole store to its compressed byte form:
// the JSON document, DEFLATE-compressed.
func (s *Store) ToPack() ([]byte, error) {
	s.mu.RLock()
	b, err := json.Marshal(s.data)
	s.mu.RUnlock()
	if err != nil {
		return nil, NewErrSaveFailed("pack", err)
	}
	return s.codec.Compress(b)
}

// FromPack constructs a Store from its compressed byte form. A corrupt
// or truncated blob fails with MNEMO_CORRUPTED_PACK — unlike the JSON
// text path there is no silent fallback, since a packed blob carries
// an integrity check.
func FromPack(blob []byte, config Config) (*Store, error) {
	_ = config.Validate()

	b, err := config.Codec.Decompress(blob)
	if err != nil {
		return nil, err
	}

	var doc storeDocument
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, NewErrCorruptedPack(err)
	}
	return From(doc, config)
}

// SaveFile writes the store to path through the byte-stream
// collaborator. A ".json" suffix selects the text form; any other
// path gets the packed form. The suffix convention is a convenience —
// callers wanting explicit control use ToJSON/ToPack with their own
// ByteStream.
func (s *Store) SaveFile(path string) error {
	return s.SaveStream(NewFileStream(path), strings.HasSuffix(path, ".json"))
}

// SaveStream writes the store to an arbitrary byte stream, as text or
// packed form.
func (s *Store) SaveStream(stream ByteStream, asText bool) error {
	var blob []byte
	if asText {
		text, err := s.ToJSON()
		if err != nil {
			return err
		}
		blob = []byte(text)
	} else {
		var err error
		blob, err = s.ToPack()
		if err != nil {
			return err
		}
	}
	return stream.Write(blob)
}

// LoadFile reads a store from path through the byte-stream
// collaborator, auto-detecting the form by the ".json" suffix.
func LoadFile(path string, config Config) (*Store, error) {
	return LoadStream(NewFileStream(path), strings.HasSuffix(path, ".json"), config)
}

// LoadStream reads a store from an arbitrary byte stream, as text or
// packed form.
func LoadStream(stream ByteStream, asText bool, config Config) (*Store, error) {
	blob, err := stream.ReadAll()
	if err != nil {
		return nil, err
	}
	if asText {
		return FromJSON(string(blob), config), nil
	}
	return FromPack(blob, config)
}
