// generic.go: type-safe store API
//
// Copyright (c) 2026 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package mnemo

import "context"

// TypedStore provides a type-safe view over a Store for callers that
// memoize a single payload type.
//
// Example:
//
//	users := mnemo.NewTypedStore[User](mnemo.Config{AgeMax: time.Hour})
//	user, err := users.Use(mnemo.KeyOf("user"), loadUser, []any{123}, mnemo.CacheAlways())
type TypedStore[V any] struct {
	inner *Store
}

// NewTypedStore creates a new Store wrapped in a type-safe view.
func NewTypedStore[V any](config Config) *TypedStore[V] {
	return &TypedStore[V]{inner: New(config)}
}

// TypedView wraps an existing Store in a type-safe view. The view and
// the store share records.
func TypedView[V any](store *Store) *TypedStore[V] {
	return &TypedStore[V]{inner: store}
}

// Store returns the underlying untyped Store.
func (c *TypedStore[V]) Store() *Store {
	return c.inner
}

// Set writes value under (key, args).
func (c *TypedStore[V]) Set(key Key, value V, args []interface{}) error {
	return c.inner.Set(key, value, args)
}

// Get returns the fresh payload at (key, args). A stored payload of a
// different dynamic type (a store shared across views, or records
// loaded from a serialized document) reports not found, like the
// untyped miss.
func (c *TypedStore[V]) Get(key Key, args []interface{}) (V, error) {
	var zero V
	value, err := c.inner.Get(key, args)
	if err != nil {
		return zero, err
	}
	typed, ok := value.(V)
	if !ok {
		return zero, NewErrKeyNotFound(key.format(), "")
	}
	return typed, nil
}

// Use memoizes fn under (key, args) and returns its typed result.
func (c *TypedStore[V]) Use(key Key, fn func(args ...interface{}) (V, error), args []interface{}, policy CachePolicy) (V, error) {
	var zero V

	var untyped Func
	if fn != nil {
		untyped = func(args ...interface{}) (interface{}, error) {
			return fn(args...)
		}
	}

	value, err := c.inner.Use(key, untyped, args, policy)
	if err != nil {
		return zero, err
	}
	typed, ok := value.(V)
	if !ok {
		return zero, NewErrKeyNotFound(key.format(), "")
	}
	return typed, nil
}

// UseWithContext is like Use but respects context cancellation.
func (c *TypedStore[V]) UseWithContext(ctx context.Context, key Key, fn func(ctx context.Context, args ...interface{}) (V, error), args []interface{}, policy CachePolicy) (V, error) {
	var zero V

	var untyped ContextFunc
	if fn != nil {
		untyped = func(ctx context.Context, args ...interface{}) (interface{}, error) {
			return fn(ctx, args...)
		}
	}

	value, err := c.inner.UseWithContext(ctx, key, untyped, args, policy)
	if err != nil {
		return zero, err
	}
	typed, ok := value.(V)
	if !ok {
		return zero, NewErrKeyNotFound(key.format(), "")
	}
	return typed, nil
}

// Unset removes the single record at (key, args).
func (c *TypedStore[V]) Unset(key Key, args []interface{}) error {
	return c.inner.Unset(key, args)
}

// Stats returns a snapshot of the underlying store statistics.
func (c *TypedStore[V]) Stats() CacheStats {
	return c.inner.Stats()
}
