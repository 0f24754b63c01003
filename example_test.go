// example_test.go: godoc examples for the mnemo cache
//
// These examples appear in the generated documentation on pkg.go.dev
// and are executed as part of the test suite to ensure they remain valid.
//
// Copyright (c) 2026 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package mnemo_test

import (
	"fmt"
	"time"

	"github.com/agilira/mnemo"
)

// ExampleNew demonstrates basic store creation and usage.
func ExampleNew() {
	store := mnemo.New(mnemo.Config{
		AgeMax: time.Hour,
	})

	// Store a value under (key, args)
	_ = store.Set(mnemo.KeyOf("user"), map[string]string{
		"name":  "John Doe",
		"email": "john@example.com",
	}, []interface{}{123})

	// Retrieve it while fresh
	if _, err := store.Get(mnemo.KeyOf("user"), []interface{}{123}); err == nil {
		fmt.Println("Found user in cache")
	}

	// Output: Found user in cache
}

// ExampleStore_Use demonstrates memoized execution.
func ExampleStore_Use() {
	store := mnemo.New(mnemo.Config{AgeMax: time.Hour})

	invocations := 0
	loadGreeting := func(args ...interface{}) (interface{}, error) {
		invocations++
		return fmt.Sprintf("Hello, %v!", args[0]), nil
	}

	key := mnemo.KeyOf("greeting")

	// First call computes and caches
	value, _ := store.Use(key, loadGreeting, []interface{}{"World"}, mnemo.CacheAlways())
	fmt.Println(value)

	// Second call is served from the cache
	value, _ = store.Use(key, loadGreeting, []interface{}{"World"}, mnemo.CacheAlways())
	fmt.Println(value)
	fmt.Println("invocations:", invocations)

	// Output:
	// Hello, World!
	// Hello, World!
	// invocations: 1
}

// ExampleNewTypedStore demonstrates type-safe store usage.
func ExampleNewTypedStore() {
	type User struct {
		ID    int
		Name  string
		Email string
	}

	users := mnemo.NewTypedStore[User](mnemo.Config{AgeMax: time.Hour})

	// Store a user (type-safe!)
	_ = users.Set(mnemo.KeyOf("user"), User{
		ID:    123,
		Name:  "John Doe",
		Email: "john@example.com",
	}, []interface{}{123})

	// Retrieve the user (returns User, not interface{})
	if user, err := users.Get(mnemo.KeyOf("user"), []interface{}{123}); err == nil {
		fmt.Printf("User: %s (%s)\n", user.Name, user.Email)
	}

	// Output: User: John Doe (john@example.com)
}

// ExampleFromMerge demonstrates merging multiple stores.
func ExampleFromMerge() {
	config := mnemo.Config{AgeMax: time.Hour}

	a := mnemo.New(config)
	_ = a.Set(mnemo.KeyOf("region"), "eu-west", nil)

	b := mnemo.New(config)
	_ = b.Set(mnemo.KeyOf("zone"), "1a", nil)

	merged, _ := mnemo.FromMerge(config, a, b)
	fmt.Println("records:", merged.Len())

	// Output: records: 2
}

// ExampleStore_ToJSON demonstrates whole-store serialization.
func ExampleStore_ToJSON() {
	store := mnemo.New(mnemo.Config{AgeMax: time.Hour})
	_ = store.Set(mnemo.KeyOf("answer"), 42, nil)

	text, _ := store.ToJSON()
	loaded := mnemo.FromJSON(text, mnemo.Config{AgeMax: time.Hour})

	value, _ := loaded.Get(mnemo.KeyOf("answer"), nil)
	fmt.Println(value)

	// Output: 42
}
