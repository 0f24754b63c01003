// generic_test.go: unit tests for the type-safe store view
//
// Copyright (c) 2026 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package mnemo

import (
	"context"
	"sync/atomic"
	"testing"
	"time"
)

type testUser struct {
	ID   int
	Name string
}

func TestTypedStore_SetGet(t *testing.T) {
	users := NewTypedStore[testUser](Config{AgeMax: time.Minute})
	key := KeyOf("user")

	if err := users.Set(key, testUser{ID: 1, Name: "alice"}, []interface{}{1}); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	user, err := users.Get(key, []interface{}{1})
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if user.Name != "alice" {
		t.Errorf("expected alice, got %+v", user)
	}

	if _, err := users.Get(key, []interface{}{2}); !IsNotFound(err) {
		t.Errorf("expected not found, got %v", err)
	}
}

func TestTypedStore_TypeMismatch(t *testing.T) {
	store, _ := newTestStore(time.Minute)
	_ = store.Set(KeyOf("k"), "a plain string", nil)

	users := TypedView[testUser](store)
	_, err := users.Get(KeyOf("k"), nil)
	if !IsNotFound(err) {
		t.Errorf("foreign payload type should read as a miss, got %v", err)
	}

	// The record itself is untouched and still readable untyped.
	if value, err := store.Get(KeyOf("k"), nil); err != nil || value != "a plain string" {
		t.Errorf("underlying record damaged: %v, %v", value, err)
	}
}

func TestTypedStore_Use(t *testing.T) {
	users := NewTypedStore[testUser](Config{AgeMax: time.Minute})
	key := KeyOf("user")

	var calls int64
	load := func(args ...interface{}) (testUser, error) {
		atomic.AddInt64(&calls, 1)
		return testUser{ID: args[0].(int), Name: "bob"}, nil
	}

	user, err := users.Use(key, load, []interface{}{7}, CacheAlways())
	if err != nil {
		t.Fatalf("Use failed: %v", err)
	}
	if user.ID != 7 || user.Name != "bob" {
		t.Errorf("unexpected result: %+v", user)
	}

	_, _ = users.Use(key, load, []interface{}{7}, CacheAlways())
	if atomic.LoadInt64(&calls) != 1 {
		t.Errorf("expected 1 invocation, got %d", calls)
	}
}

func TestTypedStore_UseWithContext(t *testing.T) {
	users := NewTypedStore[int](Config{AgeMax: time.Minute})

	value, err := users.UseWithContext(context.Background(), KeyOf("n"),
		func(ctx context.Context, args ...interface{}) (int, error) {
			return 41 + 1, nil
		}, nil, CacheAlways())
	if err != nil || value != 42 {
		t.Errorf("expected 42, got %v, %v", value, err)
	}
}

func TestTypedStore_SharesRecordsWithStore(t *testing.T) {
	store, _ := newTestStore(time.Minute)
	users := TypedView[testUser](store)

	if users.Store() != store {
		t.Fatal("Store() should expose the wrapped store")
	}

	_ = users.Set(KeyOf("u"), testUser{ID: 1}, nil)
	if store.Len() != 1 {
		t.Error("typed writes should land in the shared store")
	}

	if err := users.Unset(KeyOf("u"), nil); err != nil {
		t.Fatalf("Unset failed: %v", err)
	}
	if store.Len() != 0 {
		t.Error("typed Unset should remove the shared record")
	}

	_ = users.Set(KeyOf("u"), testUser{ID: 2}, nil)
	if _, err := users.Get(KeyOf("u"), nil); err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if stats := users.Stats(); stats.Hits != 1 || stats.Sets != 2 {
		t.Errorf("stats should reflect the shared store: %+v", stats)
	}
}
