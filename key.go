// key.go: key and argument normalization
//
// Keys and argument lists are normalized to canonical JSON strings
// before being used as map identities. A Key is an explicit variant
// carrying either a literal string or a function descriptor extracted
// up front; no live callables reach the store.
//
// Copyright (c) 2026 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package mnemo

import (
	"encoding/json"
	"reflect"
	"runtime"
	"strings"
)

// keyKind discriminates the Key variants.
type keyKind uint8

const (
	keyNone keyKind = iota
	keyLiteral
	keyFunc
)

// Key identifies a memoized computation. It carries either a literal
// string (KeyOf) or a function descriptor (KeyOfFunc). The zero Key is
// the unset sentinel: it normalizes to the empty string and passes
// through unchanged.
type Key struct {
	kind keyKind
	name string
}

// KeyOf returns a literal Key. An empty name yields the zero Key.
func KeyOf(name string) Key {
	if name == "" {
		return Key{}
	}
	return Key{kind: keyLiteral, name: name}
}

// KeyOfFunc derives a Key from a function's identity: its fully
// qualified name as reported by the runtime, trimmed. Two distinct
// closures produced by the same function share a name and therefore
// collide under this scheme; that is intentional coarse keying, not a
// bug. A nil or non-function value yields the zero Key.
func KeyOfFunc(fn interface{}) Key {
	v := reflect.ValueOf(fn)
	if !v.IsValid() || v.Kind() != reflect.Func || v.IsNil() {
		return Key{}
	}
	rf := runtime.FuncForPC(v.Pointer())
	if rf == nil {
		return Key{}
	}
	name := strings.TrimSpace(rf.Name())
	if name == "" {
		return Key{}
	}
	return Key{kind: keyFunc, name: name}
}

// IsZero reports whether the Key is the unset sentinel.
func (k Key) IsZero() bool {
	return k.kind == keyNone
}

// String returns the raw key descriptor before normalization.
func (k Key) String() string {
	return k.name
}

// format returns the canonical map identity for the Key: the JSON
// encoding of its descriptor. The zero Key formats to the empty
// string unchanged.
func (k Key) format() string {
	if k.kind == keyNone {
		return ""
	}
	// Encoding a plain string cannot fail.
	b, _ := json.Marshal(k.name)
	return string(b)
}

// formatArgs returns the canonical map identity for an argument list:
// the JSON encoding of the whole array, so argument order and types
// affect the signature. A nil list normalizes as an empty array.
// Values that cannot be deterministically serialized (cycles,
// channels, functions) fail with MNEMO_KEY_FORMAT.
func formatArgs(args []interface{}) (string, error) {
	if args == nil {
		args = []interface{}{}
	}
	b, err := json.Marshal(args)
	if err != nil {
		return "", NewErrKeyFormat("args", err)
	}
	return string(b), nil
}
