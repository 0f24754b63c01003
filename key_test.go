// key_test.go: unit tests for key and argument normalization
//
// Copyright (c) 2026 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package mnemo

import (
	"strings"
	"testing"
)

func namedProbe(args ...interface{}) (interface{}, error) {
	return len(args), nil
}

func TestKeyOf_Format(t *testing.T) {
	k := KeyOf("report")

	if k.IsZero() {
		t.Error("literal key should not be zero")
	}
	if got := k.format(); got != `"report"` {
		t.Errorf("expected %q, got %q", `"report"`, got)
	}
}

func TestKeyOf_EmptyIsSentinel(t *testing.T) {
	k := KeyOf("")

	if !k.IsZero() {
		t.Error("empty name should yield the zero Key")
	}
	if got := k.format(); got != "" {
		t.Errorf("zero key must pass through unchanged, got %q", got)
	}
}

func TestKeyOfFunc(t *testing.T) {
	k := KeyOfFunc(namedProbe)
	if k.IsZero() {
		t.Fatal("function key should not be zero")
	}
	if !strings.Contains(k.String(), "namedProbe") {
		t.Errorf("descriptor should carry the function name, got %q", k.String())
	}

	// Same function, same identity.
	again := KeyOfFunc(namedProbe)
	if k.format() != again.format() {
		t.Errorf("same function should normalize identically: %q vs %q", k.format(), again.format())
	}
}

func TestKeyOfFunc_Invalid(t *testing.T) {
	if !KeyOfFunc(nil).IsZero() {
		t.Error("nil should yield the zero Key")
	}
	if !KeyOfFunc(42).IsZero() {
		t.Error("non-function should yield the zero Key")
	}
	var fn Func
	if !KeyOfFunc(fn).IsZero() {
		t.Error("nil function value should yield the zero Key")
	}
}

func TestFormatArgs(t *testing.T) {
	tests := []struct {
		name string
		args []interface{}
		want string
	}{
		{"nil defaults to empty array", nil, "[]"},
		{"empty", []interface{}{}, "[]"},
		{"mixed types", []interface{}{1, "a", true}, `[1,"a",true]`},
		{"nested", []interface{}{[]int{1, 2}}, `[[1,2]]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := formatArgs(tt.args)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestFormatArgs_OrderMatters(t *testing.T) {
	a, _ := formatArgs([]interface{}{1, 2})
	b, _ := formatArgs([]interface{}{2, 1})
	if a == b {
		t.Error("argument order must affect the signature")
	}
}

func TestFormatArgs_Unserializable(t *testing.T) {
	cyclic := map[string]interface{}{}
	cyclic["self"] = cyclic

	_, err := formatArgs([]interface{}{cyclic})
	if err == nil {
		t.Fatal("expected a key format error for a cyclic value")
	}
	if !IsKeyFormat(err) {
		t.Errorf("expected MNEMO_KEY_FORMAT, got %v", GetErrorCode(err))
	}

	_, err = formatArgs([]interface{}{func() {}})
	if !IsKeyFormat(err) {
		t.Errorf("expected MNEMO_KEY_FORMAT for a function arg, got %v", err)
	}
}
